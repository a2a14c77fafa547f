package avatar

import (
	"context"
	"image"
	"image/color"

	"github.com/ravendarque/beyond-borders/pkg/ports"
)

// =============================================================================
// Common Types
// =============================================================================

// ImageDimensions represents the natural pixel size of a decoded photo.
// Immutable once computed from the decoded bitmap.
type ImageDimensions struct {
	Width  int
	Height int
}

// IsZero reports whether either dimension is missing.
func (d ImageDimensions) IsZero() bool {
	return d.Width <= 0 || d.Height <= 0
}

// Larger returns the larger of the two dimensions.
func (d ImageDimensions) Larger() int {
	if d.Width > d.Height {
		return d.Width
	}
	return d.Height
}

// DimensionsOf returns the natural dimensions of an image.
func DimensionsOf(img image.Image) ImageDimensions {
	b := img.Bounds()
	return ImageDimensions{Width: b.Dx(), Height: b.Dy()}
}

// ImagePosition is the user-facing crop state.
// X and Y are fixed percentages in [-50, +50], independent of zoom; they are
// re-mapped to the actual movement range at each read so changing zoom never
// silently clips stored values. Zoom is a percentage in [0, 200] where
// 0 means no magnification and 100 means 2x.
type ImagePosition struct {
	X    float64
	Y    float64
	Zoom float64
}

// PositionLimits is the per-axis movement range derived from image
// dimensions, container size and zoom. Derived, never stored.
type PositionLimits struct {
	MinX float64
	MaxX float64
	MinY float64
	MaxY float64
}

// =============================================================================
// Flag Descriptor
// =============================================================================

// FlagDescriptor describes a flag as supplied by the external catalog.
// The render core treats it as read-only input.
type FlagDescriptor struct {
	// ID is the catalog identifier, e.g. "rainbow".
	ID string
	// Colors is the ordered stripe palette as hex strings.
	Colors []string
	// ImageRef references the full-resolution flag bitmap for cutout mode.
	// It doubles as the bitmap cache key.
	ImageRef string
	// AspectRatio is width/height of the full flag image (0 = unknown,
	// treated as 3:2).
	AspectRatio float64
	// CutoutDefaultOffset is the default horizontal offset percentage
	// in [-50, +50] for cutout mode.
	CutoutDefaultOffset float64
}

// EffectiveAspectRatio returns the flag aspect ratio, defaulting to 3:2.
func (f FlagDescriptor) EffectiveAspectRatio() float64 {
	if f.AspectRatio > 0 {
		return f.AspectRatio
	}
	return 1.5
}

// =============================================================================
// Render Options and Result
// =============================================================================

// Presentation selects the border rendering style.
type Presentation int

const (
	// PresentationRing draws concentric annular color bands.
	PresentationRing Presentation = iota
	// PresentationSegment draws angular wedges around the circle.
	PresentationSegment
	// PresentationCutout shows the full flag image through the annulus.
	PresentationCutout
)

// String returns the string representation of the presentation.
func (p Presentation) String() string {
	switch p {
	case PresentationRing:
		return "ring"
	case PresentationSegment:
		return "segment"
	case PresentationCutout:
		return "cutout"
	default:
		return "unknown"
	}
}

// ParsePresentation parses a string into a Presentation.
func ParsePresentation(s string) (Presentation, bool) {
	switch s {
	case "ring":
		return PresentationRing, true
	case "segment":
		return PresentationSegment, true
	case "cutout":
		return PresentationCutout, true
	default:
		return PresentationRing, false
	}
}

// RenderOptions configures a single render call. Constructed per call and
// never persisted by the core.
type RenderOptions struct {
	// OutputSize is the diameter of the final square output in pixels.
	OutputSize int
	// ThicknessPercent is the border thickness as a percentage of the
	// output radius.
	ThicknessPercent float64
	// Presentation selects ring, segment or cutout.
	Presentation Presentation
	// FlagOffsetPercent shifts the flag horizontally in cutout mode,
	// in [-50, +50].
	FlagOffsetPercent float64
	// SegmentRotationDegrees rotates the wedge start in segment mode.
	SegmentRotationDegrees float64
	// Background fills behind the composited circle. Nil leaves the
	// corners transparent.
	Background color.Color
	// EnableDownsampling allows resizing oversized sources before drawing.
	EnableDownsampling bool
	// EnablePerformanceTracking collects per-stage timings and memory
	// estimates. Tracking never alters the rendered output.
	EnablePerformanceTracking bool
	// Progress receives values in 0..1 at stage boundaries. Optional.
	Progress ProgressFunc
}

// DefaultRenderOptions returns RenderOptions with default values.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		OutputSize:         1024,
		ThicknessPercent:   10,
		Presentation:       PresentationRing,
		EnableDownsampling: true,
	}
}

// DownsampleThreshold is the factor over the output size beyond which a
// source bitmap is resampled down before compositing.
const DownsampleThreshold = 2.0

// Metrics records per-stage timings and memory estimates for one render.
type Metrics struct {
	TotalMs     int64
	ImageLoadMs int64
	RenderMs    int64
	ExportMs    int64

	InputSize  ImageDimensions
	OutputSize int

	WasDownsampled  bool
	DownsampleRatio float64

	// EstimatedMemoryBytes approximates peak RGBA working-set size.
	EstimatedMemoryBytes int64
}

// RenderResult is the output of one render call. Ownership of EncodedBytes
// transfers to the caller.
type RenderResult struct {
	EncodedBytes []byte
	ByteSize     int
	Metrics      *Metrics
}

// =============================================================================
// Compose Stage Types
// =============================================================================

// FlagLoaderFunc supplies the decoded full flag bitmap for cutout mode on a
// cache miss. The core never fetches network resources itself; the caller
// decides where flag bytes come from.
type FlagLoaderFunc func(ctx context.Context, ref string) (image.Image, error)

// ComposeInput contains everything one render call needs.
type ComposeInput struct {
	// Photo is the already-decoded source bitmap.
	Photo image.Image

	// Position is the crop state to apply.
	Position ImagePosition

	// Flag describes the border to draw.
	Flag FlagDescriptor

	// Options are the per-call render options.
	Options RenderOptions

	// FlagBitmap optionally carries a pre-decoded flag bitmap for cutout
	// mode, consulted after the cache.
	FlagBitmap image.Image

	// Cache is the caller-owned flag bitmap cache. Optional.
	Cache ports.BitmapCache

	// FlagLoader resolves the flag bitmap when neither the cache nor
	// FlagBitmap has it. Optional.
	FlagLoader FlagLoaderFunc
}
