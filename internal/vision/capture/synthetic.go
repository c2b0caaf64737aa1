package capture

import (
	"math"

	"github.com/vovakirdan/motion-snake/internal/vision"
)

// Synthetic is a deterministic Source that renders a bright block
// orbiting the frame center. It exists for demo mode (--no-camera) and
// for exercising the full pipeline in tests without a device: the
// orbiting block sweeps the extractor output through all four
// directions.
type Synthetic struct {
	w, h   int
	tick   int
	period int
}

// NewSynthetic creates a generated-motion source. period is the number
// of grabbed frames per full orbit.
func NewSynthetic(w, h, period int) *Synthetic {
	if period <= 0 {
		period = 240
	}
	return &Synthetic{w: w, h: h, period: period}
}

// Grab renders the next frame of the orbit.
func (s *Synthetic) Grab() (*vision.Frame, error) {
	f := vision.NewFrame(s.w, s.h)

	angle := 2 * math.Pi * float64(s.tick) / float64(s.period)
	s.tick++

	// Orbit radius stays inside the saturation band so the extractor
	// reports strong but not constantly-clamped vectors.
	cx := float64(s.w)/2 + math.Cos(angle)*float64(s.w)/3
	cy := float64(s.h)/2 + math.Sin(angle)*float64(s.h)/3

	const half = 12
	for y := int(cy) - half; y < int(cy)+half; y++ {
		if y < 0 || y >= s.h {
			continue
		}
		for x := int(cx) - half; x < int(cx)+half; x++ {
			if x < 0 || x >= s.w {
				continue
			}
			f.SetRGB(x, y, 0xff, 0xff, 0xff)
		}
	}

	return f, nil
}

// Close is a no-op; the synthetic source holds no resources.
func (s *Synthetic) Close() error {
	return nil
}
