package vision

import (
	"testing"
)

const (
	testW = 160
	testH = 120
)

// blockFrame returns a black frame with a white w×h block whose top-left
// corner is at (x, y).
func blockFrame(x, y, w, h int) *Frame {
	f := NewFrame(testW, testH)
	for py := y; py < y+h && py < testH; py++ {
		for px := x; px < x+w && px < testW; px++ {
			f.SetRGB(px, py, 0xff, 0xff, 0xff)
		}
	}
	return f
}

func TestExtractNoHistory(t *testing.T) {
	e := NewExtractor(DefaultExtractorConfig())

	v := e.Extract(NewFrame(testW, testH))
	if !v.Zero() {
		t.Errorf("First frame should report zero motion, got %+v", v)
	}
}

func TestExtractIdenticalFrames(t *testing.T) {
	e := NewExtractor(DefaultExtractorConfig())

	e.Extract(blockFrame(40, 40, 20, 20))
	v := e.Extract(blockFrame(40, 40, 20, 20))

	if v.Intensity != 0 || v.X != 0 || v.Y != 0 {
		t.Errorf("Identical frames should produce zero vector, got %+v", v)
	}
}

func TestNilFrameKeepsHistory(t *testing.T) {
	// One dropped frame costs one motionless tick, not two: the history
	// survives the hiccup and the next good frame diffs against it.
	e := NewExtractor(DefaultExtractorConfig())

	e.Extract(NewFrame(testW, testH))
	if v := e.Extract(nil); !v.Zero() {
		t.Errorf("Nil frame should report zero motion, got %+v", v)
	}

	v := e.Extract(blockFrame(40, 40, 20, 20))
	if v.Intensity == 0 {
		t.Error("Frame after a dropped frame should diff against the retained history")
	}
}

func TestMirrorCorrection(t *testing.T) {
	// A block appearing left of image center is, on an unmirrored camera,
	// the user moving to their right: X must come out positive.
	e := NewExtractor(DefaultExtractorConfig())

	e.Extract(NewFrame(testW, testH))
	v := e.Extract(blockFrame(10, 50, 20, 20))

	if v.Intensity == 0 {
		t.Fatal("Expected motion to be detected")
	}
	if v.X <= 0 {
		t.Errorf("Block left of center must give positive X, got %v", v.X)
	}
}

func TestMagnitudeMonotonicAndSaturating(t *testing.T) {
	// Moving the changed block further from center must never decrease
	// |X|, and far enough out it saturates at exactly 1.
	offsets := []int{60, 40, 20, 0}

	prevX := 0.0
	for i, x := range offsets {
		e := NewExtractor(DefaultExtractorConfig())
		e.Extract(NewFrame(testW, testH))
		v := e.Extract(blockFrame(x, 50, 16, 16))

		if v.Intensity == 0 {
			t.Fatalf("offset %d: expected motion", x)
		}
		if i > 0 && v.X < prevX {
			t.Errorf("offset %d: X = %v decreased from %v", x, v.X, prevX)
		}
		prevX = v.X
	}

	if prevX != 1 {
		t.Errorf("Block at the frame edge should saturate X to 1, got %v", prevX)
	}
}

func TestVerticalSign(t *testing.T) {
	e := NewExtractor(DefaultExtractorConfig())

	e.Extract(NewFrame(testW, testH))
	v := e.Extract(blockFrame(70, 90, 20, 20))

	if v.Y <= 0 {
		t.Errorf("Block below center must give positive (downward) Y, got %v", v.Y)
	}
}

func TestNoiseRejection(t *testing.T) {
	// Single-digit per-channel deltas are sensor noise and must not count.
	e := NewExtractor(DefaultExtractorConfig())

	a := NewFrame(testW, testH)
	b := NewFrame(testW, testH)
	for i := range b.Pix {
		if i%4 != 3 {
			b.Pix[i] = 6
		}
	}

	e.Extract(a)
	if v := e.Extract(b); !v.Zero() {
		t.Errorf("Uniform +6 delta should be rejected as noise, got %+v", v)
	}
}

func TestDeadFrameThreshold(t *testing.T) {
	// A handful of changed pixels below the relative threshold is a dead
	// frame, not motion.
	e := NewExtractor(ExtractorConfig{Stride: 1, MinChangedFrac: 0.005})

	e.Extract(NewFrame(testW, testH))
	v := e.Extract(blockFrame(0, 0, 3, 3))

	if !v.Zero() {
		t.Errorf("Changed count below MinChangedFrac should give zero vector, got %+v", v)
	}
}

func TestDimensionChangeResetsHistory(t *testing.T) {
	e := NewExtractor(DefaultExtractorConfig())

	e.Extract(blockFrame(40, 40, 20, 20))
	if v := e.Extract(NewFrame(80, 60)); !v.Zero() {
		t.Errorf("Dimension change should report zero motion, got %+v", v)
	}
}

func TestReset(t *testing.T) {
	e := NewExtractor(DefaultExtractorConfig())

	e.Extract(NewFrame(testW, testH))
	e.Reset()
	if v := e.Extract(blockFrame(10, 50, 20, 20)); !v.Zero() {
		t.Errorf("Extract after Reset should have no history, got %+v", v)
	}
}
