// pkg/physics/polygon.go
package physics

import "math"

// PointInPolygon reports whether the point lies inside the polygon using an
// even-odd ray cast. Degenerate polygons (fewer than 3 vertices) contain
// nothing.
func PointInPolygon(point Vector2D, polygon []Vector2D) bool {
	if len(polygon) < 3 {
		return false
	}
	inside := false
	j := len(polygon) - 1
	for i := 0; i < len(polygon); i++ {
		pi := polygon[i]
		pj := polygon[j]
		if (pi.Y > point.Y) != (pj.Y > point.Y) {
			crossX := (pj.X-pi.X)*(point.Y-pi.Y)/(pj.Y-pi.Y) + pi.X
			if point.X < crossX {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// PointSegmentDistance returns the distance from a point to the segment ab.
// A zero-length segment degrades to point distance.
func PointSegmentDistance(point, a, b Vector2D) float64 {
	ab := b.Sub(a)
	lengthSq := ab.LengthSquared()
	if lengthSq == 0 {
		return point.Distance(a)
	}
	t := Clamp(point.Sub(a).Dot(ab)/lengthSq, 0, 1)
	closest := a.Add(ab.Scale(t))
	return point.Distance(closest)
}

// CircleTouchesPolygon reports whether a circle overlaps a polygon: either
// its center is inside, or some edge passes within its radius.
func CircleTouchesPolygon(center Vector2D, radius float64, polygon []Vector2D) bool {
	if len(polygon) < 3 {
		return false
	}
	if PointInPolygon(center, polygon) {
		return true
	}
	radius = math.Max(radius, 0)
	j := len(polygon) - 1
	for i := 0; i < len(polygon); i++ {
		if PointSegmentDistance(center, polygon[j], polygon[i]) <= radius {
			return true
		}
		j = i
	}
	return false
}
