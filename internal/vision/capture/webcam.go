package capture

import (
	"fmt"

	"gocv.io/x/gocv"

	"github.com/vovakirdan/motion-snake/internal/vision"
)

// WebcamConfig selects and sizes the camera device.
type WebcamConfig struct {
	// Device is the capture device index (0 = default camera).
	Device int

	// Width and Height are requested capture dimensions. Small frames
	// are plenty for centroid tracking and keep the diff pass cheap.
	Width  int
	Height int
}

// DefaultWebcamConfig returns the default camera settings.
func DefaultWebcamConfig() WebcamConfig {
	return WebcamConfig{
		Device: 0,
		Width:  320,
		Height: 240,
	}
}

// Webcam is a Source backed by a gocv video capture device.
type Webcam struct {
	cap *gocv.VideoCapture
	mat gocv.Mat
}

// OpenWebcam opens the configured capture device.
func OpenWebcam(cfg WebcamConfig) (*Webcam, error) {
	cap, err := gocv.OpenVideoCapture(cfg.Device)
	if err != nil {
		return nil, fmt.Errorf("capture: cannot open device %d: %w", cfg.Device, err)
	}

	if cfg.Width > 0 {
		cap.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
	}
	if cfg.Height > 0 {
		cap.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))
	}

	return &Webcam{
		cap: cap,
		mat: gocv.NewMat(),
	}, nil
}

// Grab reads one frame from the device. An empty read (camera warming
// up, or a dropped frame) returns (nil, nil) rather than an error so a
// missed frame is just a motionless tick.
func (w *Webcam) Grab() (*vision.Frame, error) {
	if ok := w.cap.Read(&w.mat); !ok {
		return nil, nil
	}
	if w.mat.Empty() {
		return nil, nil
	}

	img, err := w.mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("capture: cannot convert frame: %w", err)
	}
	return vision.FrameFromImage(img), nil
}

// Close releases the device and the scratch mat.
func (w *Webcam) Close() error {
	werr := w.mat.Close()
	if err := w.cap.Close(); err != nil {
		return fmt.Errorf("capture: cannot close device: %w", err)
	}
	return werr
}
