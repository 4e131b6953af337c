package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the built-in runner parameters.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Field: FieldConfig{
			Width:        800,
			Height:       400,
			GroundHeight: 100,
		},
		Player: PlayerConfig{
			X:      50,
			Width:  50,
			Height: 50,
		},
		Physics: PhysicsConfig{
			Gravity:     0.6,
			JumpImpulse: -15,
		},
		Speed: SpeedConfig{
			Base:    6,
			Boosted: 12,
		},
		Skill: SkillConfig{
			ActiveMS:   3000,
			CooldownMS: 5000,
		},
		Obstacles: ObstacleConfig{
			IntervalMS: 1500,
			MinSize:    30,
			MaxSize:    50,
		},
		Coins: CoinConfig{
			IntervalMS: 1200,
			Size:       20,
			MaxLift:    80,
		},
		Clock: ClockConfig{
			Mode:       ClockFixed,
			FrameMS:    16.67,
			MaxDeltaMS: 100,
		},
	}
}
