package runner

import (
	"github.com/vovakirdan/coin-runner/internal/config"
	"github.com/vovakirdan/coin-runner/internal/games/runner/sim"
)

// paramsFromConfig converts validated YAML settings into simulation constants.
func paramsFromConfig(cfg config.RunnerConfig) sim.Params {
	clock := sim.ClockFixed
	if cfg.Clock.Mode == config.ClockMeasured {
		clock = sim.ClockMeasured
	}

	return sim.Params{
		FieldW:           cfg.Field.Width,
		FieldH:           cfg.Field.Height,
		GroundHeight:     cfg.Field.GroundHeight,
		PlayerX:          cfg.Player.X,
		PlayerW:          cfg.Player.Width,
		PlayerH:          cfg.Player.Height,
		Gravity:          cfg.Physics.Gravity,
		JumpImpulse:      cfg.Physics.JumpImpulse,
		BaseSpeed:        cfg.Speed.Base,
		BoostedSpeed:     cfg.Speed.Boosted,
		SkillActive:      config.Millis(cfg.Skill.ActiveMS),
		SkillCooldown:    config.Millis(cfg.Skill.CooldownMS),
		ObstacleInterval: config.Millis(cfg.Obstacles.IntervalMS),
		ObstacleMinSize:  cfg.Obstacles.MinSize,
		ObstacleMaxSize:  cfg.Obstacles.MaxSize,
		CoinInterval:     config.Millis(cfg.Coins.IntervalMS),
		CoinSize:         cfg.Coins.Size,
		CoinMaxLift:      cfg.Coins.MaxLift,
		Clock:            clock,
		FrameStep:        config.Millis(cfg.Clock.FrameMS),
		MaxDelta:         config.Millis(cfg.Clock.MaxDeltaMS),
	}
}
