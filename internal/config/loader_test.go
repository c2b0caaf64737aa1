package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadEmbeddedDefaults(t *testing.T) {
	// With no custom path and no local files, the embedded YAML applies.
	// Run from a temp dir so a developer's configs/ cannot leak in.
	oldWd, _ := os.Getwd()
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(oldWd)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	def := Default()
	if cfg.Vision != def.Vision {
		t.Errorf("Embedded vision config %+v differs from Default() %+v", cfg.Vision, def.Vision)
	}
	if cfg.Speed != def.Speed {
		t.Errorf("Embedded speed config %+v differs from Default() %+v", cfg.Speed, def.Speed)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("vision:\n  stride: 2\n  noise_threshold: 40\nspeed:\n  base_interval_ms: 100\n  min_interval_ms: 50\n  decrement_ms: 5\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(custom) failed: %v", err)
	}
	if cfg.Vision.Stride != 2 || cfg.Vision.NoiseThreshold != 40 {
		t.Errorf("Custom vision config not applied: %+v", cfg.Vision)
	}
	if got := cfg.Speed.Game().BaseInterval; got != 100*time.Millisecond {
		t.Errorf("Speed conversion = %v, want 100ms", got)
	}
}

func TestLoadMissingCustomPathFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Explicit missing config path should fail loudly")
	}
}

func TestSpeedConversion(t *testing.T) {
	s := SpeedConfig{BaseIntervalMs: 220, MinIntervalMs: 60, DecrementMs: 8}
	g := s.Game()
	if g.BaseInterval != 220*time.Millisecond || g.MinInterval != 60*time.Millisecond || g.Decrement != 8*time.Millisecond {
		t.Errorf("Game() conversion wrong: %+v", g)
	}
}
