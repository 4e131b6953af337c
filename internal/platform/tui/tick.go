// Package tui runs the runner in a terminal with Bubble Tea: the tick loop,
// key and mouse mapping, the bell, the menu, the scoreboard and SSH sessions.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/coin-runner/internal/core"
)

// TickMsg asks the model to advance the game by one step.
type TickMsg time.Time

// tickInterval is the wall time between ticks at rate per second. A rate
// that is not positive falls back to the default rate.
func tickInterval(rate int) time.Duration {
	if rate <= 0 {
		rate = core.DefaultConfig().TickRate
	}
	return time.Second / time.Duration(rate)
}

func tickCmd(rate int) tea.Cmd {
	return tea.Tick(tickInterval(rate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
