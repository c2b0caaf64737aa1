package vision

import (
	"github.com/vovakirdan/motion-snake/internal/core"
)

// MotionVector is the aggregate pixel change between two frames.
// X and Y are the normalized, clamped displacement of the changed-pixel
// centroid relative to frame center, in [-1, 1]. X is mirror-corrected:
// +1 means the user physically moved right. Intensity is the count of
// sampled pixels whose difference exceeded the noise threshold.
type MotionVector struct {
	X, Y      float64
	Intensity int
}

// Zero reports whether no motion was detected.
func (v MotionVector) Zero() bool {
	return v.Intensity == 0
}

// ExtractorConfig tunes the frame-differencing pass.
type ExtractorConfig struct {
	// Stride is the sampling step in pixels; every Stride-th pixel on
	// every Stride-th row is compared. Must stay constant per session.
	Stride int

	// NoiseThreshold is the minimum per-channel-averaged difference
	// (0-255) for a sampled pixel to count as changed. Values below ~25
	// admit sensor noise; above ~40 they miss slow motion.
	NoiseThreshold int

	// MinChangedFrac is the fraction of sampled pixels that must change
	// before a frame pair counts as motion at all. Below it the frame is
	// dead (nobody in view, or nobody moving) and the zero vector is
	// reported.
	MinChangedFrac float64

	// Sensitivity is the fraction of the half-dimension at which the
	// centroid displacement saturates to ±1.
	Sensitivity float64
}

// DefaultExtractorConfig returns the tuned defaults.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		Stride:         4,
		NoiseThreshold: 32,
		MinChangedFrac: 0.002,
		Sensitivity:    0.6,
	}
}

// Extractor compares consecutive frames and produces a MotionVector.
// It retains the most recent frame as its one-deep history; that history
// is owned exclusively by the extractor and mutated once per tick by a
// single writer, so no locking is needed.
type Extractor struct {
	cfg  ExtractorConfig
	prev *Frame
}

// NewExtractor creates an extractor with the given tuning. Zero or
// negative fields fall back to the defaults.
func NewExtractor(cfg ExtractorConfig) *Extractor {
	def := DefaultExtractorConfig()
	if cfg.Stride <= 0 {
		cfg.Stride = def.Stride
	}
	if cfg.NoiseThreshold <= 0 {
		cfg.NoiseThreshold = def.NoiseThreshold
	}
	if cfg.MinChangedFrac <= 0 {
		cfg.MinChangedFrac = def.MinChangedFrac
	}
	if cfg.Sensitivity <= 0 {
		cfg.Sensitivity = def.Sensitivity
	}
	return &Extractor{cfg: cfg}
}

// Reset drops the frame history. The next Extract call reports no motion.
func (e *Extractor) Reset() {
	e.prev = nil
}

// Extract compares cur against the previous frame and returns the motion
// vector. cur is retained as the new history; the caller must not mutate
// it afterwards. A nil frame (camera hiccup) reports zero motion and
// leaves the history in place, so the next good frame still diffs
// against the last one. With no history, or a dimension change
// mid-session, the zero vector is returned.
func (e *Extractor) Extract(cur *Frame) MotionVector {
	if cur == nil {
		return MotionVector{}
	}

	prev := e.prev
	e.prev = cur

	if prev == nil || prev.W != cur.W || prev.H != cur.H {
		return MotionVector{}
	}

	stride := e.cfg.Stride
	threshold := e.cfg.NoiseThreshold * 3 // compare against channel sum, avoids a divide per pixel

	var sampled, changed int
	var sumX, sumY int64

	for y := 0; y < cur.H; y += stride {
		row := y * cur.W * 4
		for x := 0; x < cur.W; x += stride {
			i := row + x*4
			sampled++

			d := core.Abs(int(cur.Pix[i])-int(prev.Pix[i])) +
				core.Abs(int(cur.Pix[i+1])-int(prev.Pix[i+1])) +
				core.Abs(int(cur.Pix[i+2])-int(prev.Pix[i+2]))
			if d > threshold {
				changed++
				sumX += int64(x)
				sumY += int64(y)
			}
		}
	}

	if sampled == 0 || float64(changed) < e.cfg.MinChangedFrac*float64(sampled) {
		return MotionVector{}
	}

	cx := float64(sumX) / float64(changed)
	cy := float64(sumY) / float64(changed)

	halfW := float64(cur.W) / 2
	halfH := float64(cur.H) / 2

	// The camera buffer is unmirrored: a physical rightward move shifts
	// the image centroid left. Negating X here keeps every downstream
	// consumer in mirror-corrected "user space".
	nx := -(cx - halfW) / (halfW * e.cfg.Sensitivity)
	ny := (cy - halfH) / (halfH * e.cfg.Sensitivity)

	return MotionVector{
		X:         core.ClampF(nx, -1, 1),
		Y:         core.ClampF(ny, -1, 1),
		Intensity: changed,
	}
}
