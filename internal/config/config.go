// Package config provides YAML-based configuration for the motion
// pipeline, game speed, camera, and commentary link, with embedded
// defaults.
package config

import (
	"time"

	"github.com/vovakirdan/motion-snake/internal/control"
	"github.com/vovakirdan/motion-snake/internal/game"
	"github.com/vovakirdan/motion-snake/internal/vision"
	"github.com/vovakirdan/motion-snake/internal/vision/capture"
)

// Config is the full application configuration.
type Config struct {
	Vision     VisionConfig     `yaml:"vision"`
	Control    ControlConfig    `yaml:"control"`
	Speed      SpeedConfig      `yaml:"speed"`
	Camera     CameraConfig     `yaml:"camera"`
	Commentary CommentaryConfig `yaml:"commentary"`
}

// VisionConfig tunes the motion extractor.
type VisionConfig struct {
	Stride         int     `yaml:"stride"`
	NoiseThreshold int     `yaml:"noise_threshold"`
	MinChangedFrac float64 `yaml:"min_changed_frac"`
	Sensitivity    float64 `yaml:"sensitivity"`
}

// Extractor converts to the vision package's config type.
func (v VisionConfig) Extractor() vision.ExtractorConfig {
	return vision.ExtractorConfig{
		Stride:         v.Stride,
		NoiseThreshold: v.NoiseThreshold,
		MinChangedFrac: v.MinChangedFrac,
		Sensitivity:    v.Sensitivity,
	}
}

// ControlConfig tunes the direction arbiter.
type ControlConfig struct {
	DeadZone float64 `yaml:"dead_zone"`
}

// Arbiter converts to the control package's config type.
func (c ControlConfig) Arbiter() control.ArbiterConfig {
	return control.ArbiterConfig{DeadZone: c.DeadZone}
}

// SpeedConfig is the speed policy in milliseconds, the unit config
// files are written in.
type SpeedConfig struct {
	BaseIntervalMs int `yaml:"base_interval_ms"`
	MinIntervalMs  int `yaml:"min_interval_ms"`
	DecrementMs    int `yaml:"decrement_ms"`
}

// Game converts to the simulation's duration-based config.
func (s SpeedConfig) Game() game.SpeedConfig {
	return game.SpeedConfig{
		BaseInterval: time.Duration(s.BaseIntervalMs) * time.Millisecond,
		MinInterval:  time.Duration(s.MinIntervalMs) * time.Millisecond,
		Decrement:    time.Duration(s.DecrementMs) * time.Millisecond,
	}
}

// CameraConfig selects the capture device.
type CameraConfig struct {
	Device int `yaml:"device"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Webcam converts to the capture package's config type.
func (c CameraConfig) Webcam() capture.WebcamConfig {
	return capture.WebcamConfig{
		Device: c.Device,
		Width:  c.Width,
		Height: c.Height,
	}
}

// CommentaryConfig configures the optional snapshot sink. An empty URL
// disables the link entirely.
type CommentaryConfig struct {
	URL string `yaml:"url"`
}
