package pattern

import (
	"github.com/ravendarque/beyond-borders/pkg/avatar"
)

// Spec is a border pattern with all geometry resolved against a concrete
// output size. The same Spec feeds both the declarative preview layers and
// the pixel-drawn export.
type Spec struct {
	Presentation avatar.Presentation

	// OuterRadius is the viewport radius; InnerRadius bounds the photo
	// disc. The annulus between them is the border.
	OuterRadius float64
	InnerRadius float64

	Bands  []RingBand
	Wedges []Wedge
	Cutout CutoutPlacement

	// ImageRef carries the flag bitmap reference for cutout mode.
	ImageRef string
}

// Resolve computes the pattern geometry for a flag at a concrete output
// size. It returns PatternUnavailableError when the flag lacks the data the
// presentation needs or the thickness leaves no annulus; callers should
// skip border decoration on that error rather than fail the render.
func Resolve(flag avatar.FlagDescriptor, opts avatar.RenderOptions) (Spec, error) {
	outer := float64(opts.OutputSize) / 2
	inner := outer * (1 - opts.ThicknessPercent/100)
	if inner < 0 {
		inner = 0
	}

	spec := Spec{
		Presentation: opts.Presentation,
		OuterRadius:  outer,
		InnerRadius:  inner,
	}

	switch opts.Presentation {
	case avatar.PresentationRing:
		bands, err := RingBands(outer, inner, flag.Colors)
		if err != nil {
			return Spec{}, tagFlag(err, flag.ID)
		}
		spec.Bands = bands

	case avatar.PresentationSegment:
		if outer-inner <= 0 {
			return Spec{}, &avatar.PatternUnavailableError{
				FlagID:       flag.ID,
				Presentation: avatar.PresentationSegment,
				Reason:       "annulus thickness is zero or negative",
			}
		}
		wedges, err := SegmentWedges(flag.Colors, opts.SegmentRotationDegrees)
		if err != nil {
			return Spec{}, tagFlag(err, flag.ID)
		}
		spec.Wedges = wedges

	case avatar.PresentationCutout:
		offset := opts.FlagOffsetPercent
		if offset == 0 {
			offset = flag.CutoutDefaultOffset
		}
		placement, err := ComputeCutout(flag, opts.OutputSize, offset)
		if err != nil {
			return Spec{}, err
		}
		spec.Cutout = placement
		spec.ImageRef = flag.ImageRef
	}

	return spec, nil
}

// tagFlag fills in the flag ID on pattern errors raised by the geometry
// helpers, which don't know it.
func tagFlag(err error, flagID string) error {
	if pe, ok := err.(*avatar.PatternUnavailableError); ok && pe.FlagID == "" {
		pe.FlagID = flagID
	}
	return err
}
