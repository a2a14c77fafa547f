// Package ports defines the interfaces between the render core and its
// adapters.
package ports

import (
	"context"
	"image"
	"image/color"
)

// EnvironmentClass identifies the surface capability class of the runtime.
// The classes mirror the browser families the exported images must round-trip
// through, which impose the effective surface-size ceilings.
type EnvironmentClass string

const (
	// ClassMinimal is the safari-class baseline: 4096x4096.
	ClassMinimal EnvironmentClass = "minimal"
	// ClassBalanced is the firefox-class tier: 11180x11180.
	ClassBalanced EnvironmentClass = "balanced"
	// ClassExtended is the chromium-class tier: 16384x16384.
	ClassExtended EnvironmentClass = "extended"
)

// Capabilities describes what the detected environment can allocate.
// Query it once at startup rather than scattering feature checks.
type Capabilities struct {
	Class EnvironmentClass
	// MaxDimension is the largest safe square edge in pixels.
	MaxDimension int
}

// MaxArea returns the largest safe surface area in pixels squared.
func (c Capabilities) MaxArea() int64 {
	return int64(c.MaxDimension) * int64(c.MaxDimension)
}

// SurfaceFactory creates drawing surfaces, enforcing capability limits
// before any allocation is attempted.
type SurfaceFactory interface {
	// NewSurface creates a surface of the given size, or fails with a
	// size/capability error before allocating.
	NewSurface(width, height int) (Surface, error)

	// Capabilities returns the detected environment capabilities.
	Capabilities() Capabilities
}

// Surface is a 2D pixel buffer exposing the paint operations the compositor
// needs plus a uniform encode-to-PNG operation.
type Surface interface {
	// FillRect fills a rectangle with a color.
	FillRect(x, y, w, h float64, c color.Color)

	// FillCircle fills a circle centered at (cx, cy).
	FillCircle(cx, cy, r float64, c color.Color)

	// FillWedge fills a pie wedge from angle1 to angle2 (radians,
	// standard math convention) of the circle centered at (cx, cy).
	FillWedge(cx, cy, r, angle1, angle2 float64, c color.Color)

	// DrawImage draws an image with its top-left corner at (x, y).
	DrawImage(img image.Image, x, y int)

	// DrawImageScaled draws an image scaled to the given size.
	DrawImageScaled(img image.Image, x, y, width, height float64)

	// ClipCircle restricts subsequent drawing to a circle.
	ClipCircle(cx, cy, r float64)

	// ResetClip removes the current clip.
	ResetClip()

	// Image returns the surface contents as an image.Image.
	Image() image.Image

	// EncodePNG encodes the surface contents to PNG bytes.
	EncodePNG(ctx context.Context) ([]byte, error)
}

// Resampler produces a high-quality resized copy of an image.
type Resampler interface {
	// Resize resizes an image to the specified dimensions.
	Resize(img image.Image, width, height int) image.Image
}
