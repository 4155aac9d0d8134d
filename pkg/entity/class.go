// pkg/entity/class.go
package entity

// Class defines the hull type of a vessel and selects its stat preset
type Class int

const (
	Sloop Class = iota
	Brig
	Frigate
	Galleon
)

// String returns the class name
func (c Class) String() string {
	switch c {
	case Sloop:
		return "Sloop"
	case Brig:
		return "Brig"
	case Frigate:
		return "Frigate"
	case Galleon:
		return "Galleon"
	default:
		return "Unknown"
	}
}

// ClassFromString converts a string to a Class value.
func ClassFromString(s string) Class {
	switch s {
	case "Sloop":
		return Sloop
	case "Brig":
		return Brig
	case "Frigate":
		return Frigate
	case "Galleon":
		return Galleon
	default:
		return Sloop // fallback to Sloop if unknown
	}
}

// Stats contains the base statistics for a vessel class
type Stats struct {
	MaxHealth float64

	Length float64
	Width  float64

	MaxSpeed     float64
	ThrustAccel  float64
	ReverseAccel float64
	TurnAccel    float64
	LinearDrag   float64
	AngularDrag  float64
	RudderRate   float64

	MountsPerSide int
	ReloadMin     float64 // per-mount reload, randomized in [ReloadMin, ReloadMax]
	ReloadMax     float64
	ShotDelay     float64 // inter-shot pacing within one broadside
	MuzzleSpeed   float64
	Spread        float64 // random angular spread, radians

	TorpedoTube   bool
	TorpedoReload float64

	SinkDuration float64
}

// ClassStats returns the base statistics for a vessel class
func ClassStats(class Class) Stats {
	switch class {
	case Sloop:
		return Stats{
			MaxHealth:     60,
			Length:        28,
			Width:         9,
			MaxSpeed:      95,
			ThrustAccel:   34,
			ReverseAccel:  14,
			TurnAccel:     2.2,
			LinearDrag:    0.55,
			AngularDrag:   2.4,
			RudderRate:    2.8,
			MountsPerSide: 2,
			ReloadMin:     3.6,
			ReloadMax:     5.2,
			ShotDelay:     0.22,
			MuzzleSpeed:   260,
			Spread:        0.035,
			SinkDuration:  7,
		}
	case Brig:
		return Stats{
			MaxHealth:     110,
			Length:        38,
			Width:         12,
			MaxSpeed:      78,
			ThrustAccel:   26,
			ReverseAccel:  11,
			TurnAccel:     1.7,
			LinearDrag:    0.55,
			AngularDrag:   2.2,
			RudderRate:    2.4,
			MountsPerSide: 3,
			ReloadMin:     4.2,
			ReloadMax:     6.0,
			ShotDelay:     0.25,
			MuzzleSpeed:   260,
			Spread:        0.035,
			SinkDuration:  9,
		}
	case Frigate:
		return Stats{
			MaxHealth:     170,
			Length:        48,
			Width:         14,
			MaxSpeed:      70,
			ThrustAccel:   22,
			ReverseAccel:  9,
			TurnAccel:     1.4,
			LinearDrag:    0.5,
			AngularDrag:   2.0,
			RudderRate:    2.0,
			MountsPerSide: 4,
			ReloadMin:     4.6,
			ReloadMax:     6.6,
			ShotDelay:     0.28,
			MuzzleSpeed:   270,
			Spread:        0.03,
			TorpedoTube:   true,
			TorpedoReload: 14,
			SinkDuration:  11,
		}
	case Galleon:
		return Stats{
			MaxHealth:     260,
			Length:        60,
			Width:         18,
			MaxSpeed:      55,
			ThrustAccel:   16,
			ReverseAccel:  7,
			TurnAccel:     1.0,
			LinearDrag:    0.45,
			AngularDrag:   1.8,
			RudderRate:    1.6,
			MountsPerSide: 5,
			ReloadMin:     5.0,
			ReloadMax:     7.2,
			ShotDelay:     0.3,
			MuzzleSpeed:   270,
			Spread:        0.03,
			TorpedoTube:   true,
			TorpedoReload: 16,
			SinkDuration:  14,
		}
	default:
		return ClassStats(Sloop)
	}
}

// Elite returns a scaled-up copy of the stats. An "elite" vessel is a plain
// vessel built from a larger preset, not a separate type.
func (s Stats) Elite() Stats {
	s.MaxHealth *= 1.8
	s.ThrustAccel *= 1.2
	s.MaxSpeed *= 1.1
	s.TurnAccel *= 1.15
	s.ReloadMin *= 0.8
	s.ReloadMax *= 0.8
	s.ShotDelay *= 0.85
	return s
}
