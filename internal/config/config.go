// Package config provides YAML-based configuration loading and validation
// for the runner.
package config

import (
	"math"
	"time"
)

// Clock modes select how much simulated time passes per tick.
const (
	ClockFixed    = "fixed"    // constant frame step, legacy behavior
	ClockMeasured = "measured" // real elapsed time between ticks
)

// RunnerConfig contains all simulation parameters for one run.
type RunnerConfig struct {
	Field     FieldConfig    `yaml:"field"`
	Player    PlayerConfig   `yaml:"player"`
	Physics   PhysicsConfig  `yaml:"physics"`
	Speed     SpeedConfig    `yaml:"speed"`
	Skill     SkillConfig    `yaml:"skill"`
	Obstacles ObstacleConfig `yaml:"obstacles"`
	Coins     CoinConfig     `yaml:"coins"`
	Clock     ClockConfig    `yaml:"clock"`
}

// FieldConfig defines the play field in field units.
type FieldConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundHeight float64 `yaml:"ground_height"`
}

// PlayerConfig defines the player rectangle.
type PlayerConfig struct {
	X      float64 `yaml:"x"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig defines the vertical integrator.
type PhysicsConfig struct {
	Gravity     float64 `yaml:"gravity"`
	JumpImpulse float64 `yaml:"jump_impulse"` // negative = up
}

// SpeedConfig defines horizontal scroll speed per tick.
type SpeedConfig struct {
	Base    float64 `yaml:"base"`
	Boosted float64 `yaml:"boosted"`
}

// SkillConfig defines the speed skill timings.
type SkillConfig struct {
	ActiveMS   float64 `yaml:"active_ms"`
	CooldownMS float64 `yaml:"cooldown_ms"` // measured from activation
}

// ObstacleConfig defines obstacle spawning.
type ObstacleConfig struct {
	IntervalMS float64 `yaml:"interval_ms"`
	MinSize    float64 `yaml:"min_size"`
	MaxSize    float64 `yaml:"max_size"`
}

// CoinConfig defines coin spawning.
type CoinConfig struct {
	IntervalMS float64 `yaml:"interval_ms"`
	Size       float64 `yaml:"size"`
	MaxLift    float64 `yaml:"max_lift"` // max random offset above the ground
}

// ClockConfig defines how the simulation clock advances.
type ClockConfig struct {
	Mode       string  `yaml:"mode"`
	FrameMS    float64 `yaml:"frame_ms"`
	MaxDeltaMS float64 `yaml:"max_delta_ms"`
}

// Millis converts a millisecond count from the config to a duration.
func Millis(ms float64) time.Duration {
	return time.Duration(math.Round(ms * float64(time.Millisecond)))
}

// GroundLine returns the y-coordinate of the ground surface.
func (c RunnerConfig) GroundLine() float64 {
	return c.Field.Height - c.Field.GroundHeight
}
