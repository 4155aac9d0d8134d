// pkg/ai/tuning.go
package ai

// Tuning is the steering and decision surface of a controller. The blend
// weights are the main knobs: steering is one additive signal, not a
// priority list, so behavior is shaped by re-weighting rather than
// re-ordering.
type Tuning struct {
	// Engagement ranges.
	CombatRange  float64 `json:"combatRange"`  // inside this, present the broadside instead of closing
	WeaponRange  float64 `json:"weaponRange"`  // outer fire gate
	MinFireRange float64 `json:"minFireRange"` // hold fire below this, guns cannot depress that far

	// Firing alignment: how far off the broadside normal the target bearing
	// may sit and still justify pulling the trigger.
	AlignTolerance float64 `json:"alignTolerance"`

	// Aggression decays back to passive after this long with no damage.
	PassiveTimeout float64 `json:"passiveTimeout"`

	// Avoidance. Separation distance is SeparationFactor times hull length;
	// edges start pushing back inside EdgeMargin.
	SeparationFactor   float64 `json:"separationFactor"`
	EdgeMargin         float64 `json:"edgeMargin"`
	AvoidWeightCombat  float64 `json:"avoidWeightCombat"`
	AvoidWeightPassive float64 `json:"avoidWeightPassive"`

	// Wandering.
	WanderPad     float64 `json:"wanderPad"`   // keep targets this far inside the bounds
	WanderReach   float64 `json:"wanderReach"` // a target closer than this counts as reached
	WanderTimeMin float64 `json:"wanderTimeMin"`
	WanderTimeMax float64 `json:"wanderTimeMax"`

	// Desired speed as a fraction of hull max speed, by context.
	CloseSpeedFrac  float64 `json:"closeSpeedFrac"`
	HoldSpeedFrac   float64 `json:"holdSpeedFrac"`
	EdgeSpeedFrac   float64 `json:"edgeSpeedFrac"`
	CruiseSpeedFrac float64 `json:"cruiseSpeedFrac"`

	// Control bands.
	ThrottleTolerance float64 `json:"throttleTolerance"` // units/s around the desired speed
	TurnDeadBand      float64 `json:"turnDeadBand"`      // radians of heading error ignored
	TravelReach       float64 `json:"travelReach"`       // arrival tolerance for travel mode
}

// DefaultTuning returns the stock controller tuning
func DefaultTuning() Tuning {
	return Tuning{
		CombatRange:        650,
		WeaponRange:        950,
		MinFireRange:       60,
		AlignTolerance:     0.35,
		PassiveTimeout:     12,
		SeparationFactor:   3.0,
		EdgeMargin:         250,
		AvoidWeightCombat:  0.35,
		AvoidWeightPassive: 0.8,
		WanderPad:          300,
		WanderReach:        120,
		WanderTimeMin:      6,
		WanderTimeMax:      14,
		CloseSpeedFrac:     1.0,
		HoldSpeedFrac:      0.55,
		EdgeSpeedFrac:      0.4,
		CruiseSpeedFrac:    0.9,
		ThrottleTolerance:  6,
		TurnDeadBand:       0.06,
		TravelReach:        150,
	}
}
