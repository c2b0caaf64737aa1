// Package control turns raw motion vectors into discrete snake
// directions. The arbiter owns the exponentially smoothed vector state
// and runs once per display tick, independent of the simulation's
// variable timestep.
package control

import (
	"math"

	"github.com/vovakirdan/motion-snake/internal/game"
	"github.com/vovakirdan/motion-snake/internal/vision"
)

// smoothingAlpha is the EMA decay factor. 0.8 is a tuned constant:
// slow decay favors stability over responsiveness.
const smoothingAlpha = 0.8

// ArbiterConfig tunes direction selection.
type ArbiterConfig struct {
	// DeadZone is the smoothed-magnitude band below which no direction
	// change triggers. Working range 0.2-0.3.
	DeadZone float64
}

// DefaultArbiterConfig returns the tuned defaults.
func DefaultArbiterConfig() ArbiterConfig {
	return ArbiterConfig{DeadZone: 0.25}
}

// Arbiter smooths raw motion vectors and maps them to directions.
// Single writer per tick; state is reset at the start of each run.
type Arbiter struct {
	cfg      ArbiterConfig
	smoothed vision.MotionVector
}

// NewArbiter creates an arbiter. A zero dead zone falls back to the
// default.
func NewArbiter(cfg ArbiterConfig) *Arbiter {
	if cfg.DeadZone <= 0 {
		cfg.DeadZone = DefaultArbiterConfig().DeadZone
	}
	return &Arbiter{cfg: cfg}
}

// Reset zeroes the smoothed vector. Called at the start of each run so
// a previous run's momentum cannot steer the new snake.
func (a *Arbiter) Reset() {
	a.smoothed = vision.MotionVector{}
}

// Smoothed returns the current smoothed vector, for debug display.
func (a *Arbiter) Smoothed() vision.MotionVector {
	return a.smoothed
}

// Arbitrate folds the raw vector into the smoothed state and returns
// the direction to use this tick. Only the dominant axis (larger
// smoothed magnitude) may change direction, which stops diagonal
// motion from flapping between axes. A candidate that exactly reverses
// cur is rejected; below the dead zone, cur is returned unchanged.
func (a *Arbiter) Arbitrate(raw vision.MotionVector, cur game.Direction) game.Direction {
	a.smoothed.X = a.smoothed.X*smoothingAlpha + raw.X*(1-smoothingAlpha)
	a.smoothed.Y = a.smoothed.Y*smoothingAlpha + raw.Y*(1-smoothingAlpha)
	a.smoothed.Intensity = raw.Intensity

	ax := math.Abs(a.smoothed.X)
	ay := math.Abs(a.smoothed.Y)

	var candidate game.Direction
	switch {
	case ax >= ay && ax > a.cfg.DeadZone:
		if a.smoothed.X > 0 {
			candidate = game.DirRight
		} else {
			candidate = game.DirLeft
		}
	case ay > ax && ay > a.cfg.DeadZone:
		if a.smoothed.Y > 0 {
			candidate = game.DirDown
		} else {
			candidate = game.DirUp
		}
	default:
		return cur
	}

	if candidate == cur.Opposite() {
		return cur
	}
	return candidate
}
