// runner is an endless runner for the terminal: jump over blocks, collect
// coins and burn the speed skill when the track is clear.
//
// Usage:
//
//	runner list              - List game variants
//	runner play <game>       - Play a variant
//	runner menu              - Start menu to pick a variant interactively
//	runner serve             - Start SSH server for remote play
//	runner scores <game>     - Show best runs for a variant
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.runner/runs.db)
//	--log-level <level>   - debug, info, warn or error (default: warn)
//	--log-file <path>     - Write logs to a file instead of stderr
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/coin-runner/internal/config"
	"github.com/vovakirdan/coin-runner/internal/core"
	"github.com/vovakirdan/coin-runner/internal/games/runner"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string

	// Game flags shared by play and menu
	flagConfig string
	flagClock  string
)

// logFile is closed on exit when --log-file is used.
var logFile io.Closer

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runner",
	Short: "Coin Runner - an endless runner in your terminal",
	Long: `Coin Runner is a terminal endless runner. Jump over the blocks,
collect coins and trigger the speed skill for a short boost.

Available commands:
  list     - Show all game variants
  play     - Play a variant directly
  menu     - Interactive variant picker menu
  serve    - Start SSH server for remote play
  scores   - View best runs

Examples:
  runner list
  runner play runner
  runner play runner --clock measured
  runner menu
  runner serve --ssh :2222
  runner scores runner`,
	PersistentPreRunE: setupLogging,
	SilenceUsage:      true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.runner/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file instead of stderr")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// setupLogging installs the process logger before any command runs.
func setupLogging(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	var out io.Writer = os.Stderr
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		out = f
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
	log.SetDefault(logger)
	return nil
}

// terminalConfig builds the runtime config from the terminal size and the
// global flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// applyGameFlags checks --config and --clock and hands them to the game
// package. Games fall back to defaults on a bad config, so the check
// happens here where the user can see the error.
func applyGameFlags() error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	cfg, err := config.LoadRunner(flagConfig)
	if err != nil {
		return err
	}
	if flagClock != "" {
		if err := config.ApplyClockMode(&cfg, flagClock); err != nil {
			return err
		}
	}

	runner.SetConfigPath(flagConfig)
	runner.SetClockMode(flagClock)

	log.Debug("game config loaded",
		"path", flagConfig,
		"clock", cfg.Clock.Mode,
		"speed", cfg.Speed.Base,
		"boosted", cfg.Speed.Boosted,
	)
	return nil
}

// checkClockFlag rejects a --clock that contradicts the clock pinned by the
// variant id, which would otherwise be ignored.
func checkClockFlag(gameID string) error {
	forced := runner.ForcedClock(gameID)
	if flagClock == "" || forced == "" || flagClock == forced {
		return nil
	}
	return fmt.Errorf("--clock %s conflicts with %s, which always uses the %s clock (play %s instead)",
		flagClock, gameID, forced, runner.IDFixed)
}
