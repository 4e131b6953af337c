// Package sim is the runner's simulation step: player physics, obstacle and
// coin spawning, movement, pickups, collisions and the speed skill.
//
// All state lives in a World value. Nothing here renders, plays sound or
// reads the wall clock; those collaborators consume the events a step
// returns.
package sim

import "time"

// ClockMode selects how much simulated time a step covers.
type ClockMode int

const (
	// ClockFixed advances every step by Params.FrameStep regardless of the
	// real elapsed time. Spawn timing then drifts from wall time whenever
	// the host does not tick at exactly 1/FrameStep.
	ClockFixed ClockMode = iota
	// ClockMeasured advances by the delta the caller passes to Step,
	// clamped to Params.MaxDelta.
	ClockMeasured
)

// String returns the config name of the mode.
func (m ClockMode) String() string {
	if m == ClockMeasured {
		return "measured"
	}
	return "fixed"
}

// Params holds every constant of a run. Distances are field units with y
// growing downwards; speeds are units per step.
type Params struct {
	FieldW       float64
	FieldH       float64
	GroundHeight float64

	PlayerX float64
	PlayerW float64
	PlayerH float64

	Gravity     float64
	JumpImpulse float64 // negative = up

	BaseSpeed    float64
	BoostedSpeed float64

	SkillActive   time.Duration
	SkillCooldown time.Duration // measured from activation

	ObstacleInterval time.Duration
	ObstacleMinSize  float64
	ObstacleMaxSize  float64

	CoinInterval time.Duration
	CoinSize     float64
	CoinMaxLift  float64

	Clock     ClockMode
	FrameStep time.Duration
	MaxDelta  time.Duration
}

// DefaultParams returns the classic tuning.
func DefaultParams() Params {
	return Params{
		FieldW:           800,
		FieldH:           400,
		GroundHeight:     100,
		PlayerX:          50,
		PlayerW:          50,
		PlayerH:          50,
		Gravity:          0.6,
		JumpImpulse:      -15,
		BaseSpeed:        6,
		BoostedSpeed:     12,
		SkillActive:      3000 * time.Millisecond,
		SkillCooldown:    5000 * time.Millisecond,
		ObstacleInterval: 1500 * time.Millisecond,
		ObstacleMinSize:  30,
		ObstacleMaxSize:  50,
		CoinInterval:     1200 * time.Millisecond,
		CoinSize:         20,
		CoinMaxLift:      80,
		Clock:            ClockFixed,
		FrameStep:        16670 * time.Microsecond,
		MaxDelta:         100 * time.Millisecond,
	}
}

// GroundLine returns the y-coordinate of the ground surface.
func (p Params) GroundLine() float64 {
	return p.FieldH - p.GroundHeight
}

// RestY returns the player's y when standing on the ground.
func (p Params) RestY() float64 {
	return p.GroundLine() - p.PlayerH
}
