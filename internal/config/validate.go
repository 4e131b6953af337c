package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid runner config")

// ErrUnknownClock is returned for clock modes other than fixed and measured.
var ErrUnknownClock = errors.New("unknown clock mode")

// Validate rejects parameter sets the simulation cannot run with, so that
// entities with negative sizes or zero spawn intervals never exist.
func (c RunnerConfig) Validate() error {
	positive := []struct {
		name string
		val  float64
	}{
		{"field.width", c.Field.Width},
		{"field.height", c.Field.Height},
		{"player.width", c.Player.Width},
		{"player.height", c.Player.Height},
		{"speed.base", c.Speed.Base},
		{"speed.boosted", c.Speed.Boosted},
		{"skill.active_ms", c.Skill.ActiveMS},
		{"skill.cooldown_ms", c.Skill.CooldownMS},
		{"obstacles.interval_ms", c.Obstacles.IntervalMS},
		{"obstacles.min_size", c.Obstacles.MinSize},
		{"coins.interval_ms", c.Coins.IntervalMS},
		{"coins.size", c.Coins.Size},
		{"clock.frame_ms", c.Clock.FrameMS},
		{"clock.max_delta_ms", c.Clock.MaxDeltaMS},
	}
	for _, p := range positive {
		if p.val <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalid, p.name, p.val)
		}
	}

	if c.Field.GroundHeight < 0 {
		return fmt.Errorf("%w: field.ground_height must not be negative", ErrInvalid)
	}
	if c.Player.X < 0 {
		return fmt.Errorf("%w: player.x must not be negative", ErrInvalid)
	}
	if c.Coins.MaxLift < 0 {
		return fmt.Errorf("%w: coins.max_lift must not be negative", ErrInvalid)
	}
	if c.Physics.Gravity <= 0 {
		return fmt.Errorf("%w: physics.gravity must be positive", ErrInvalid)
	}
	if c.Physics.JumpImpulse >= 0 {
		return fmt.Errorf("%w: physics.jump_impulse must be negative (upward)", ErrInvalid)
	}
	if c.Obstacles.MaxSize < c.Obstacles.MinSize {
		return fmt.Errorf("%w: obstacles.max_size %v below min_size %v", ErrInvalid, c.Obstacles.MaxSize, c.Obstacles.MinSize)
	}
	if c.Skill.CooldownMS < c.Skill.ActiveMS {
		return fmt.Errorf("%w: skill.cooldown_ms must not be shorter than active_ms", ErrInvalid)
	}

	ground := c.GroundLine()
	if c.Player.Height > ground {
		return fmt.Errorf("%w: player does not fit above the ground", ErrInvalid)
	}
	if c.Obstacles.MaxSize > ground {
		return fmt.Errorf("%w: obstacles.max_size does not fit above the ground", ErrInvalid)
	}
	if c.Coins.Size+c.Coins.MaxLift > ground {
		return fmt.Errorf("%w: coins can spawn above the field", ErrInvalid)
	}

	if c.Clock.Mode != ClockFixed && c.Clock.Mode != ClockMeasured {
		return fmt.Errorf("%w: %w: %q", ErrInvalid, ErrUnknownClock, c.Clock.Mode)
	}
	return nil
}
