package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate render results.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveLayersJSON saves the declarative pattern layers as JSON.
	SaveLayersJSON(data []byte) error

	// SaveDownsampled saves the resized source bitmap.
	SaveDownsampled(img image.Image) error

	// SaveComposed saves the final composited image.
	SaveComposed(img image.Image) error

	// SaveMetricsJSON saves the render metrics as JSON.
	SaveMetricsJSON(data []byte) error
}
