// Package capture provides frame sources for the vision pipeline. The
// session consumes the Source interface and does not manage acquisition:
// a webcam, a file, or a synthetic generator all look the same to it.
package capture

import (
	"github.com/vovakirdan/motion-snake/internal/vision"
)

// Source supplies one frame per tick. Grab must not block for longer
// than a frame interval; sources that have no new frame ready should
// return (nil, nil) so the pipeline treats the tick as motionless.
type Source interface {
	Grab() (*vision.Frame, error)
	Close() error
}
