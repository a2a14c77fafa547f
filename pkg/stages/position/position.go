// Package position converts the abstract crop state (position percentages
// plus zoom) into concrete placement: a background-position expression for
// the declarative preview path and a center-relative pixel offset for the
// pixel-drawn export path. Both derive from the same percentage mapping so
// they agree to sub-pixel precision by construction.
package position

import (
	"fmt"
	"math"

	"github.com/ravendarque/beyond-borders/pkg/avatar"
)

// MaxZoom is the upper bound of the zoom range (100 = 2x magnification).
const MaxZoom = 200.0

// CoverScale returns the scale factor that makes the image fully cover a
// square container of the given size, cropping the overflowing axis.
// Degenerate inputs yield 0.
func CoverScale(dims avatar.ImageDimensions, container int) float64 {
	if container <= 0 || dims.IsZero() {
		return 0
	}
	sx := float64(container) / float64(dims.Width)
	sy := float64(container) / float64(dims.Height)
	return sanitize(math.Max(sx, sy))
}

// ZoomedScale returns the cover scale magnified by the zoom percentage.
func ZoomedScale(dims avatar.ImageDimensions, container int, zoom float64) float64 {
	return sanitize(CoverScale(dims, container) * (1 + clampZoom(zoom)/100))
}

// ScaledSize returns the image size in pixels at the zoomed cover scale.
func ScaledSize(dims avatar.ImageDimensions, container int, zoom float64) (w, h float64) {
	scale := ZoomedScale(dims, container, zoom)
	return float64(dims.Width) * scale, float64(dims.Height) * scale
}

// CalculateLimits computes the per-axis movement range for an image inside
// a circular viewport of the given diameter at the given zoom. The range is
// half the overflow beyond the container, expressed as a percentage of the
// container, symmetric around zero.
//
// At zero zoom exactly one axis is movable for non-square photos (the axis
// the cover scale leaves overflowing); square photos yield all zeros. This
// keeps unzoomed photos from drifting diagonally.
func CalculateLimits(dims avatar.ImageDimensions, container int, zoom float64) avatar.PositionLimits {
	scaledW, scaledH := ScaledSize(dims, container, zoom)
	if scaledW <= 0 || scaledH <= 0 {
		return avatar.PositionLimits{}
	}

	maxX := overflowPercent(scaledW, container)
	maxY := overflowPercent(scaledH, container)

	// The covered axis has zero overflow in exact arithmetic; squash
	// float noise so the axis stays pinned at zero zoom.
	if clampZoom(zoom) == 0 {
		if dims.Width >= dims.Height {
			maxY = 0
		}
		if dims.Height >= dims.Width {
			maxX = 0
		}
	}

	return avatar.PositionLimits{
		MinX: -maxX,
		MaxX: maxX,
		MinY: -maxY,
		MaxY: maxY,
	}
}

// overflowPercent converts the pixels a scaled dimension exceeds the
// container by into the symmetric movement range percentage.
func overflowPercent(scaled float64, container int) float64 {
	overflow := scaled - float64(container)
	if overflow <= 0 {
		return 0
	}
	return sanitize(overflow / float64(container) * 50)
}

// BackgroundPosition is a declarative-surface position expression.
// XPercent and YPercent are in 0..100 where 50 centers the image.
type BackgroundPosition struct {
	XPercent float64
	YPercent float64
}

// Expression returns the position as a CSS background-position value.
func (b BackgroundPosition) Expression() string {
	return fmt.Sprintf("%.4f%% %.4f%%", b.XPercent, b.YPercent)
}

// Offset is a center-relative pixel offset for direct drawing.
type Offset struct {
	DX float64
	DY float64
}

// ToBackgroundPosition maps a fixed-range position onto 0..100 percent
// values for a declarative paint target.
//
// When both the limits at the current zoom and the limits at maximum zoom
// are supplied, the stored value is treated as a fraction of the max-zoom
// range and clamped into the current range, so the mapped screen location
// stays put when the zoom changes. With only current limits the stored value
// maps onto the current range directly. With no limits at all the fixed
// range is folded onto the percent scale as-is.
func ToBackgroundPosition(pos avatar.ImagePosition, limits, maxLimits *avatar.PositionLimits) BackgroundPosition {
	return BackgroundPosition{
		XPercent: axisPercent(pos.X, axisRange(limits, true), axisRange(maxLimits, true)),
		YPercent: axisPercent(pos.Y, axisRange(limits, false), axisRange(maxLimits, false)),
	}
}

// ToRendererOffset reproduces, in pixels, the exact placement the
// background-position expression yields, as a center-relative offset for a
// container of the given diameter. It shares the percentage mapping with
// ToBackgroundPosition, which is the preview/export agreement contract.
func ToRendererOffset(pos avatar.ImagePosition, dims avatar.ImageDimensions, container int, limits, maxLimits *avatar.PositionLimits) Offset {
	if container <= 0 || dims.IsZero() {
		return Offset{}
	}

	bg := ToBackgroundPosition(pos, limits, maxLimits)
	scaledW, scaledH := ScaledSize(dims, container, pos.Zoom)

	return Offset{
		DX: percentToPixels(bg.XPercent, scaledW, container),
		DY: percentToPixels(bg.YPercent, scaledH, container),
	}
}

// percentToPixels converts a background-position percentage into the
// center-relative pixel shift of the oversized image. 0% aligns the left or
// top edges, 100% the right or bottom edges, 50% centers.
func percentToPixels(percent, scaled float64, container int) float64 {
	overflow := scaled - float64(container)
	if overflow <= 0 {
		return 0
	}
	return sanitize(overflow * (50 - percent) / 100)
}

// axisPercent maps one stored axis value in [-50, +50] onto 0..100.
// cur and max are the current and max-zoom movement ranges; either may be
// NaN to mark "not supplied".
func axisPercent(v, cur, max float64) float64 {
	v = clampRange(v, -50, 50)

	if math.IsNaN(cur) {
		// No limits supplied: fold the fixed range directly.
		return 50 + v
	}
	if cur <= 0 {
		return 50
	}

	ref := cur
	if !math.IsNaN(max) && max > 0 {
		ref = max
	}
	offset := clampRange(v/50*ref, -cur, cur)
	return sanitizeCentered(50 + offset/cur*50)
}

// axisRange extracts one axis range from optional limits; NaN means the
// limits were not supplied.
func axisRange(l *avatar.PositionLimits, horizontal bool) float64 {
	if l == nil {
		return math.NaN()
	}
	if horizontal {
		return l.MaxX
	}
	return l.MaxY
}

func clampZoom(zoom float64) float64 {
	if math.IsNaN(zoom) {
		return 0
	}
	return clampRange(zoom, 0, MaxZoom)
}

func clampRange(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(hi, math.Max(lo, v))
}

// sanitize normalizes degenerate math results to zero so NaN/Inf never
// reach drawing calls.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func sanitizeCentered(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 50
	}
	return v
}
