package tui

import (
	"bytes"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/coin-runner/internal/games/runner/sim"
)

func TestBellSinkRateLimits(t *testing.T) {
	var out bytes.Buffer
	var logs bytes.Buffer
	sink := NewBellSink(&out, log.New(&logs))

	clock := time.Unix(100, 0)
	sink.now = func() time.Time { return clock }

	sink.Play(sim.CueJump)
	sink.Play(sim.CueCoin) // same instant, logged only
	clock = clock.Add(bellInterval)
	sink.Play(sim.CueSkill)

	if got := out.String(); got != "\a\a" {
		t.Errorf("bells = %q, want two", got)
	}
}

func TestBellSinkLogsCues(t *testing.T) {
	var logs bytes.Buffer
	logger := log.New(&logs)
	logger.SetLevel(log.DebugLevel)

	sink := NewBellSink(nil, logger)
	sink.Play(sim.CueCoin)

	if !bytes.Contains(logs.Bytes(), []byte("cue=coin")) {
		t.Errorf("log %q does not name the cue", logs.String())
	}
}
