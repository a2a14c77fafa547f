// Package pattern produces the three border presentations (ring, segment,
// cutout) in two forms: a declarative layer expression for live preview and
// a pixel-drawn form for export. Both forms consume the same geometric
// boundaries computed here, so they cannot drift apart.
package pattern

import (
	"image/color"
	"math"

	"github.com/ravendarque/beyond-borders/pkg/avatar"
	"github.com/ravendarque/beyond-borders/pkg/colorutil"
)

// SegmentTransitionDegrees is the sub-degree transition zone inserted at
// each wedge boundary in the declarative form, purely to anti-alias the
// edge. The pixel-drawn export form uses hard edges; this constant is the
// single documented divergence between the two forms.
const SegmentTransitionDegrees = 0.4

// segmentStartDegrees puts the first wedge boundary at 12 o'clock.
const segmentStartDegrees = -90.0

// RingBand is one annular color band, bounded by outer and inner radii in
// pixels. Bands are ordered outer to inner and tile the annulus exactly.
type RingBand struct {
	Hex   string
	Color color.RGBA
	Outer float64
	Inner float64
}

// Thickness returns the radial thickness of the band.
func (b RingBand) Thickness() float64 {
	return b.Outer - b.Inner
}

// Wedge is one angular segment. Angles are degrees in standard math
// convention; the wedge spans [StartDeg, EndDeg).
type Wedge struct {
	Hex      string
	Color    color.RGBA
	StartDeg float64
	EndDeg   float64
}

// CutoutPlacement positions the full flag image behind the circular
// aperture. The image height equals the viewport diameter and the width
// follows the flag's aspect ratio.
type CutoutPlacement struct {
	// Width and Height are the scaled flag size in pixels.
	Width  float64
	Height float64
	// XPercent is the horizontal background-position percentage, 0..100.
	XPercent float64
	// DX is the equivalent center-relative pixel shift. It is the
	// negation of the offset direction: +50% offset moves the visible
	// window toward the flag's right edge by shifting the image left.
	DX float64
}

// RingBands divides the annulus between outerRadius and innerRadius into
// one band per color, each band's thickness proportional to 1/N of the
// annulus width. Proportional division goes through AllocatePixels so bands
// never gap or overlap; the innermost band absorbs the rounding remainder.
func RingBands(outerRadius, innerRadius float64, colors []string) ([]RingBand, error) {
	parsed, err := parsePalette(colors)
	if err != nil {
		return nil, err
	}

	annulus := int(math.Round(outerRadius - innerRadius))
	if annulus <= 0 {
		return nil, &avatar.PatternUnavailableError{
			Presentation: avatar.PresentationRing,
			Reason:       "annulus thickness is zero or negative",
		}
	}

	weights := make([]float64, len(parsed))
	for i := range weights {
		weights[i] = 1
	}
	thicknesses, err := colorutil.AllocatePixels(annulus, weights)
	if err != nil {
		return nil, err
	}

	bands := make([]RingBand, len(parsed))
	outer := outerRadius
	for i, pc := range parsed {
		inner := outer - float64(thicknesses[i])
		bands[i] = RingBand{
			Hex:   pc.hex,
			Color: pc.rgba,
			Outer: outer,
			Inner: inner,
		}
		outer = inner
	}
	return bands, nil
}

// SegmentWedges divides the full circle into one wedge per color, starting
// at 12 o'clock plus the caller-supplied rotation, each spanning 360/N
// degrees.
func SegmentWedges(colors []string, rotationDegrees float64) ([]Wedge, error) {
	parsed, err := parsePalette(colors)
	if err != nil {
		return nil, err
	}

	span := 360.0 / float64(len(parsed))
	start := segmentStartDegrees + sanitizeDegrees(rotationDegrees)

	wedges := make([]Wedge, len(parsed))
	for i, pc := range parsed {
		wedges[i] = Wedge{
			Hex:      pc.hex,
			Color:    pc.rgba,
			StartDeg: start + float64(i)*span,
			EndDeg:   start + float64(i+1)*span,
		}
	}
	return wedges, nil
}

// ComputeCutout sizes and positions the flag image for cutout mode.
// offsetPercent in [-50, +50] maps linearly onto the pixel range the
// oversized image can shift while still covering the aperture; 0 centers,
// +50 and -50 place an edge flush with the viewport.
func ComputeCutout(flag avatar.FlagDescriptor, diameter int, offsetPercent float64) (CutoutPlacement, error) {
	if flag.ImageRef == "" {
		return CutoutPlacement{}, &avatar.PatternUnavailableError{
			FlagID:       flag.ID,
			Presentation: avatar.PresentationCutout,
			Reason:       "flag has no full image reference",
		}
	}
	if diameter <= 0 {
		return CutoutPlacement{}, &avatar.PatternUnavailableError{
			FlagID:       flag.ID,
			Presentation: avatar.PresentationCutout,
			Reason:       "viewport diameter is zero or negative",
		}
	}

	o := clamp(offsetPercent, -50, 50)
	width := float64(diameter) * flag.EffectiveAspectRatio()
	overflow := width - float64(diameter)
	if overflow < 0 {
		overflow = 0
	}

	return CutoutPlacement{
		Width:    width,
		Height:   float64(diameter),
		XPercent: 50 + o,
		DX:       -overflow * o / 100,
	}, nil
}

type paletteColor struct {
	hex  string
	rgba color.RGBA
}

// parsePalette normalizes the descriptor colors, dropping entries that are
// not valid hex. An empty or fully invalid palette is PatternUnavailable.
func parsePalette(colors []string) ([]paletteColor, error) {
	parsed := make([]paletteColor, 0, len(colors))
	for _, c := range colors {
		hex, err := colorutil.NormalizeHex(c)
		if err != nil {
			continue
		}
		rgba, err := colorutil.ParseHex(hex)
		if err != nil {
			continue
		}
		parsed = append(parsed, paletteColor{hex: hex, rgba: rgba})
	}
	if len(parsed) == 0 {
		return nil, &avatar.PatternUnavailableError{
			Reason: "flag has no usable colors",
		}
	}
	return parsed, nil
}

func sanitizeDegrees(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Mod(v, 360)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(hi, math.Max(lo, v))
}
