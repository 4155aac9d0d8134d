// pkg/physics/angle.go
package physics

import "math"

// NormalizeAngle wraps an angle into the half-open interval (-pi, pi].
// Non-finite input returns 0 so steering math never propagates NaN.
func NormalizeAngle(angle float64) float64 {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return 0
	}
	angle = math.Mod(angle, 2*math.Pi)
	if angle <= -math.Pi {
		angle += 2 * math.Pi
	} else if angle > math.Pi {
		angle -= 2 * math.Pi
	}
	return angle
}

// AngleDiff returns the signed shortest angular difference from 'from' to 'to',
// normalized into (-pi, pi].
func AngleDiff(from, to float64) float64 {
	return NormalizeAngle(to - from)
}

// Clamp restricts v to the inclusive range [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Rect represents an axis-aligned rectangular area given by its corners
type Rect struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Width returns the horizontal extent of the rectangle
func (r Rect) Width() float64 {
	return r.MaxX - r.MinX
}

// Height returns the vertical extent of the rectangle
func (r Rect) Height() float64 {
	return r.MaxY - r.MinY
}

// Contains reports whether the point lies inside the rectangle
func (r Rect) Contains(p Vector2D) bool {
	return p.X >= r.MinX && p.X < r.MaxX &&
		p.Y >= r.MinY && p.Y < r.MaxY
}

// Inset returns a rectangle shrunk by pad on every side. If the pad would
// invert the rectangle it collapses to the center point instead.
func (r Rect) Inset(pad float64) Rect {
	inset := Rect{
		MinX: r.MinX + pad,
		MinY: r.MinY + pad,
		MaxX: r.MaxX - pad,
		MaxY: r.MaxY - pad,
	}
	if inset.MinX > inset.MaxX {
		cx := (r.MinX + r.MaxX) / 2
		inset.MinX, inset.MaxX = cx, cx
	}
	if inset.MinY > inset.MaxY {
		cy := (r.MinY + r.MaxY) / 2
		inset.MinY, inset.MaxY = cy, cy
	}
	return inset
}
