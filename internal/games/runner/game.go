// Package runner implements Coin Runner: an endless runner where the player
// jumps over obstacles, collects coins and can trigger a timed speed skill.
// The rules live in package sim; this package adapts them to the platform.
package runner

import (
	"time"

	"github.com/vovakirdan/coin-runner/internal/config"
	"github.com/vovakirdan/coin-runner/internal/core"
	"github.com/vovakirdan/coin-runner/internal/games/runner/sim"
	"github.com/vovakirdan/coin-runner/internal/registry"
)

// Registry ids.
const (
	IDFixed    = "runner"
	IDMeasured = "runner_measured"
)

// Game adapts a sim.World to the registry.Game interface.
type Game struct {
	id    string
	clock string // forced clock mode, empty to follow config

	world   *sim.World
	cfg     config.RunnerConfig
	runtime core.RuntimeConfig

	hud   hudState
	huds  []HUD
	audio AudioSink

	paused  bool
	crashed bool
	crash   sim.Event // PlayerHit of the crashed run

	now      func() time.Time
	lastStep time.Time
}

// configPath stores the custom config path set via CLI
var configPath string

// clockOverride stores the clock mode set via CLI
var clockOverride string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetClockMode overrides the configured clock mode for games created
// afterwards. An empty mode restores the config value. Variants whose id
// pins a clock keep it; see ForcedClock.
func SetClockMode(mode string) {
	clockOverride = mode
}

// ForcedClock returns the clock mode a registry id pins, or "" when the
// variant follows the config and SetClockMode.
func ForcedClock(id string) string {
	if id == IDMeasured {
		return config.ClockMeasured
	}
	return ""
}

// New creates a runner. clock forces a clock mode; pass "" to use the
// configured one.
func New(id, clock string) *Game {
	return &Game{
		id:    id,
		clock: clock,
		now:   time.Now,
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.clock == config.ClockMeasured {
		return "Coin Runner (real time)"
	}
	return "Coin Runner"
}

// Reset builds a fresh world from the loaded config.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadRunner(configPath)
	if err != nil {
		cfg = config.DefaultRunnerConfig()
	}
	if clockOverride != "" {
		config.ApplyClockMode(&cfg, clockOverride) //nolint:errcheck
	}
	if g.clock != "" {
		config.ApplyClockMode(&cfg, g.clock) //nolint:errcheck
	}
	g.cfg = cfg

	g.world = sim.NewWorld(paramsFromConfig(cfg), runtime.Seed)
	g.paused = false
	g.crashed = false
	g.crash = sim.Event{}
	g.lastStep = time.Time{}

	g.setCoins(0)
	g.setStatus(g.world.Skill().Status())
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.crashed {
		if in.Has(core.ActionRestart) || in.Has(core.ActionConfirm) {
			g.crashed = false
			g.crash = sim.Event{}
			g.lastStep = time.Time{}
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
		g.lastStep = time.Time{}
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	res := g.world.Step(g.elapsed(), sim.Input{
		Jump:  in.Has(core.ActionJump),
		Skill: in.Has(core.ActionSkill),
	})
	g.dispatch(res.Events)

	if res.Hit {
		for _, ev := range res.Events {
			if ev.Kind == sim.EventPlayerHit {
				g.crash = ev
			}
		}
		g.crashed = true
	}

	return core.StepResult{State: g.State()}
}

// elapsed returns the wall time since the previous step. The first step
// after a reset or pause uses one nominal frame.
func (g *Game) elapsed() time.Duration {
	now := g.now()
	if g.lastStep.IsZero() {
		g.lastStep = now
		return config.Millis(g.cfg.Clock.FrameMS)
	}
	dt := now.Sub(g.lastStep)
	g.lastStep = now
	return dt
}

// World exposes the simulation for inspection.
func (g *Game) World() *sim.World {
	return g.world
}

// State returns the current game state. While the crash banner is up the
// score is the coin count of the crashed run.
func (g *Game) State() core.GameState {
	if g.crashed {
		return core.GameState{
			Score:    g.crash.Coins,
			Ticks:    g.crash.Ticks,
			GameOver: true,
		}
	}
	st := core.GameState{Paused: g.paused}
	if g.world != nil {
		st.Score = g.world.CoinCount()
		st.Ticks = g.world.Ticks()
	}
	return st
}

func init() {
	registry.Register(IDFixed, func() registry.Game {
		return New(IDFixed, "")
	})
	registry.Register(IDMeasured, func() registry.Game {
		return New(IDMeasured, ForcedClock(IDMeasured))
	})
}
