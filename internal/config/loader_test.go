package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "runner.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadRunner("")
	if err != nil {
		t.Fatalf("LoadRunner() failed: %v", err)
	}
	if cfg != DefaultRunnerConfig() {
		t.Errorf("embedded YAML diverges from DefaultRunnerConfig:\n%+v\n%+v", cfg, DefaultRunnerConfig())
	}
}

func TestDefaultsAreValid(t *testing.T) {
	if err := DefaultRunnerConfig().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestLoadPartialOverride(t *testing.T) {
	path := writeConfig(t, "speed:\n  base: 4\n  boosted: 9\nclock:\n  mode: measured\n")

	cfg, err := LoadRunner(path)
	if err != nil {
		t.Fatalf("LoadRunner() failed: %v", err)
	}
	if cfg.Speed.Base != 4 || cfg.Speed.Boosted != 9 {
		t.Errorf("speed = %+v, expected base 4 boosted 9", cfg.Speed)
	}
	if cfg.Clock.Mode != ClockMeasured {
		t.Errorf("clock mode = %q, expected measured", cfg.Clock.Mode)
	}
	// Untouched keys keep their defaults
	if cfg.Physics.Gravity != 0.6 {
		t.Errorf("gravity = %v, expected default 0.6", cfg.Physics.Gravity)
	}
}

func TestLoadUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".runner", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "runner.yaml"), []byte("coins:\n  size: 10\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRunner("")
	if err != nil {
		t.Fatalf("LoadRunner() failed: %v", err)
	}
	if cfg.Coins.Size != 10 {
		t.Errorf("coin size = %v, expected 10 from user config", cfg.Coins.Size)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		invalid bool
	}{
		{"malformed yaml", "speed: [1, 2", false},
		{"negative size", "obstacles:\n  min_size: -5\n", true},
		{"inverted range", "obstacles:\n  min_size: 60\n  max_size: 40\n", true},
		{"cooldown shorter than active", "skill:\n  active_ms: 6000\n", true},
		{"upward gravity", "physics:\n  gravity: -1\n", true},
		{"unknown clock", "clock:\n  mode: warp\n", true},
		{"player taller than field", "player:\n  height: 500\n", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadRunner(writeConfig(t, tc.body))
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := errors.Is(err, ErrInvalid); got != tc.invalid {
				t.Errorf("errors.Is(err, ErrInvalid) = %v, expected %v (err: %v)", got, tc.invalid, err)
			}
		})
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, err := LoadRunner(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped ErrNotExist, got %v", err)
	}
}

func TestApplyClockMode(t *testing.T) {
	cfg := DefaultRunnerConfig()

	if err := ApplyClockMode(&cfg, ""); err != nil || cfg.Clock.Mode != ClockFixed {
		t.Errorf("empty mode should be a no-op, got %q, %v", cfg.Clock.Mode, err)
	}
	if err := ApplyClockMode(&cfg, ClockMeasured); err != nil || cfg.Clock.Mode != ClockMeasured {
		t.Errorf("measured override failed: %q, %v", cfg.Clock.Mode, err)
	}
	if err := ApplyClockMode(&cfg, "turbo"); !errors.Is(err, ErrUnknownClock) {
		t.Errorf("expected ErrUnknownClock, got %v", err)
	}
}

func TestMillis(t *testing.T) {
	if got := Millis(1500); got != 1500*time.Millisecond {
		t.Errorf("Millis(1500) = %v", got)
	}
	if got := Millis(16.67); got != 16670*time.Microsecond {
		t.Errorf("Millis(16.67) = %v, expected 16.67ms", got)
	}
}

func TestGroundLine(t *testing.T) {
	if got := DefaultRunnerConfig().GroundLine(); got != 300 {
		t.Errorf("GroundLine() = %v, expected 300", got)
	}
}
