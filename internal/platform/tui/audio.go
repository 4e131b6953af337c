package tui

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/coin-runner/internal/games/runner"
	"github.com/vovakirdan/coin-runner/internal/games/runner/sim"
)

// bellInterval is the minimum gap between two bells; cues in between are
// only logged.
const bellInterval = 150 * time.Millisecond

// BellSink plays audio cues as terminal bells. Terminals have no pitch,
// so every cue sounds the same.
type BellSink struct {
	mu     sync.Mutex
	out    io.Writer
	logger *log.Logger
	now    func() time.Time
	last   time.Time
}

// NewBellSink creates a sink that writes BEL to out. A nil out only logs.
func NewBellSink(out io.Writer, logger *log.Logger) *BellSink {
	if logger == nil {
		logger = log.Default()
	}
	return &BellSink{
		out:    out,
		logger: logger,
		now:    time.Now,
	}
}

// Play rings the bell for a cue. It never blocks on the simulation.
func (b *BellSink) Play(c sim.Cue) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.logger.Debug("audio cue", "cue", c)
	if b.out == nil {
		return
	}

	now := b.now()
	if !b.last.IsZero() && now.Sub(b.last) < bellInterval {
		return
	}
	b.last = now

	//nolint:errcheck // A missed bell is not worth failing a frame over
	b.out.Write([]byte{'\a'})
}

// audioGame is implemented by games that emit audio cues.
type audioGame interface {
	SetAudio(a runner.AudioSink)
}

// attachAudio connects the sink when the game supports audio.
func attachAudio(game any, sink runner.AudioSink) {
	if g, ok := game.(audioGame); ok {
		g.SetAudio(sink)
	}
}
