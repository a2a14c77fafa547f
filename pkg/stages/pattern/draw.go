package pattern

import (
	"image"
	"math"

	"github.com/ravendarque/beyond-borders/pkg/avatar"
	"github.com/ravendarque/beyond-borders/pkg/ports"
)

// Draw issues the pixel-drawn export form of the pattern onto a surface
// whose viewport circle is centered at (cx, cy). flagBitmap is required for
// cutout mode and ignored otherwise.
//
// The draw calls consume the identical boundaries the declarative layers
// express. Segment edges are hard here where the preview anti-aliases over
// SegmentTransitionDegrees; see that constant.
func (s Spec) Draw(surface ports.Surface, cx, cy float64, flagBitmap image.Image) error {
	surface.ClipCircle(cx, cy, s.OuterRadius)
	defer surface.ResetClip()

	switch s.Presentation {
	case avatar.PresentationRing:
		// Filled discs outer to inner; each band overdraws the interior
		// of the previous one, so the annuli tile without seams.
		for _, b := range s.Bands {
			surface.FillCircle(cx, cy, b.Outer, b.Color)
		}

	case avatar.PresentationSegment:
		for _, w := range s.Wedges {
			a1 := w.StartDeg * math.Pi / 180
			a2 := w.EndDeg * math.Pi / 180
			surface.FillWedge(cx, cy, s.OuterRadius, a1, a2, w.Color)
		}

	case avatar.PresentationCutout:
		if flagBitmap == nil {
			return &avatar.PatternUnavailableError{
				Presentation: avatar.PresentationCutout,
				Reason:       "flag bitmap was not supplied",
			}
		}
		x := cx - s.Cutout.Width/2 + s.Cutout.DX
		y := cy - s.Cutout.Height/2
		surface.DrawImageScaled(flagBitmap, x, y, s.Cutout.Width, s.Cutout.Height)
	}

	return nil
}
