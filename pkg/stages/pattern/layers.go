package pattern

import (
	"fmt"
	"strings"

	"github.com/ravendarque/beyond-borders/pkg/avatar"
)

// LayerKind discriminates declarative paint layers.
type LayerKind string

const (
	// KindGradient is a generated gradient layer.
	KindGradient LayerKind = "gradient"
	// KindImage is a positioned bitmap layer.
	KindImage LayerKind = "image"
)

// PaintLayer is one declarative paint instruction for the live preview
// surface. The expressions are CSS background values derived from the same
// geometry the pixel renderer draws from.
type PaintLayer struct {
	Kind LayerKind `json:"kind"`

	// Image is the background-image expression: a gradient function or a
	// bitmap reference.
	Image string `json:"image"`

	// Position is the background-position expression, when relevant.
	Position string `json:"position,omitempty"`

	// Size is the background-size expression, when relevant.
	Size string `json:"size,omitempty"`
}

// Layers emits the declarative preview form of the pattern.
func (s Spec) Layers() []PaintLayer {
	switch s.Presentation {
	default:
		return []PaintLayer{{Kind: KindGradient, Image: s.ringGradient()}}
	case avatar.PresentationSegment:
		return []PaintLayer{{Kind: KindGradient, Image: s.segmentGradient()}}
	case avatar.PresentationCutout:
		return []PaintLayer{{
			Kind:     KindImage,
			Image:    fmt.Sprintf("url(%s)", s.ImageRef),
			Position: fmt.Sprintf("%.4f%% 50.0000%%", s.Cutout.XPercent),
			Size:     fmt.Sprintf("%.2fpx %.2fpx", s.Cutout.Width, s.Cutout.Height),
		}}
	}
}

// ringGradient renders the bands as a hard-stop radial gradient. Stops are
// the exact band radii, so each band is a flat annulus of its color and the
// disc inside the innermost band stays transparent.
func (s Spec) ringGradient() string {
	var stops []string
	stops = append(stops, fmt.Sprintf("transparent %.2fpx", innermost(s.Bands)))
	for i := len(s.Bands) - 1; i >= 0; i-- {
		b := s.Bands[i]
		stops = append(stops, fmt.Sprintf("%s %.2fpx %.2fpx", b.Hex, b.Inner, b.Outer))
	}
	return fmt.Sprintf("radial-gradient(circle, %s)", strings.Join(stops, ", "))
}

// segmentGradient renders the wedges as a conic gradient. A transition zone
// of SegmentTransitionDegrees is inserted at each boundary so the preview
// anti-aliases the edges; the pixel renderer keeps them hard.
func (s Spec) segmentGradient() string {
	if len(s.Wedges) == 0 {
		return ""
	}
	t := SegmentTransitionDegrees
	from := s.Wedges[0].StartDeg

	var stops []string
	for i, w := range s.Wedges {
		start := w.StartDeg - from
		end := w.EndDeg - from
		if i > 0 {
			start += t
		}
		if i < len(s.Wedges)-1 {
			end -= t
		}
		stops = append(stops, fmt.Sprintf("%s %.2fdeg %.2fdeg", w.Hex, start, end))
	}
	// CSS conic gradients measure from 12 o'clock, matching the -90deg
	// math-convention start the wedges are built on.
	return fmt.Sprintf("conic-gradient(from %.2fdeg, %s)", from-segmentStartDegrees, strings.Join(stops, ", "))
}

func innermost(bands []RingBand) float64 {
	if len(bands) == 0 {
		return 0
	}
	return bands[len(bands)-1].Inner
}
