package config

import (
	_ "embed"
)

//go:embed defaults/mosnake.yaml
var defaultYAML []byte

// Default returns the default configuration. Matches
// defaults/mosnake.yaml; kept in code as the fallback of last resort.
func Default() Config {
	return Config{
		Vision: VisionConfig{
			Stride:         4,
			NoiseThreshold: 32,
			MinChangedFrac: 0.002,
			Sensitivity:    0.6,
		},
		Control: ControlConfig{
			DeadZone: 0.25,
		},
		Speed: SpeedConfig{
			BaseIntervalMs: 220,
			MinIntervalMs:  60,
			DecrementMs:    8,
		},
		Camera: CameraConfig{
			Device: 0,
			Width:  320,
			Height: 240,
		},
		Commentary: CommentaryConfig{
			URL: "",
		},
	}
}
