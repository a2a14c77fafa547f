// Package ggsurface provides a drawing surface implementation using the gg
// library.
package ggsurface

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/ravendarque/beyond-borders/pkg/avatar"
	"github.com/ravendarque/beyond-borders/pkg/ports"
)

// Factory implements ports.SurfaceFactory backed by gg contexts.
type Factory struct {
	caps ports.Capabilities
}

// New creates a Factory with the detected default capabilities.
func New() *Factory {
	return NewWithCapabilities(DetectCapabilities())
}

// NewWithCapabilities creates a Factory pinned to specific capabilities.
func NewWithCapabilities(caps ports.Capabilities) *Factory {
	if caps.MaxDimension <= 0 {
		caps = DetectCapabilities()
	}
	return &Factory{caps: caps}
}

// Capabilities returns the capabilities the factory enforces.
func (f *Factory) Capabilities() ports.Capabilities {
	return f.caps
}

// NewSurface validates the requested size against the capability table
// before any allocation, then creates a transparent surface.
func (f *Factory) NewSurface(width, height int) (ports.Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, &avatar.SurfaceUnavailableError{
			Reason: "surface dimensions must be positive",
		}
	}
	if int64(width)*int64(height) > f.caps.MaxArea() ||
		width > f.caps.MaxDimension || height > f.caps.MaxDimension {
		return nil, &avatar.SizeExceededError{
			Width:        width,
			Height:       height,
			MaxDimension: f.caps.MaxDimension,
			Class:        string(f.caps.Class),
		}
	}

	dc := gg.NewContext(width, height)
	return &Surface{dc: dc}, nil
}

// Resize resizes an image using high-quality resampling.
func (f *Factory) Resize(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// Ensure Factory implements the factory and resampler ports
var _ ports.SurfaceFactory = (*Factory)(nil)
var _ ports.Resampler = (*Factory)(nil)

// Surface implements ports.Surface using gg.Context.
type Surface struct {
	dc *gg.Context
}

// FillRect fills a rectangle with a color.
func (s *Surface) FillRect(x, y, w, h float64, c color.Color) {
	s.dc.SetColor(c)
	s.dc.DrawRectangle(x, y, w, h)
	s.dc.Fill()
}

// FillCircle fills a circle centered at (cx, cy).
func (s *Surface) FillCircle(cx, cy, r float64, c color.Color) {
	s.dc.SetColor(c)
	s.dc.DrawCircle(cx, cy, r)
	s.dc.Fill()
}

// FillWedge fills a pie wedge of the circle centered at (cx, cy) between
// angle1 and angle2 in radians.
func (s *Surface) FillWedge(cx, cy, r, angle1, angle2 float64, c color.Color) {
	s.dc.SetColor(c)
	s.dc.MoveTo(cx, cy)
	s.dc.DrawArc(cx, cy, r, angle1, angle2)
	s.dc.ClosePath()
	s.dc.Fill()
}

// DrawImage draws an image with its top-left corner at (x, y).
func (s *Surface) DrawImage(img image.Image, x, y int) {
	s.dc.DrawImage(img, x, y)
}

// DrawImageScaled draws an image scaled to the given size.
func (s *Surface) DrawImageScaled(img image.Image, x, y, width, height float64) {
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 || width <= 0 || height <= 0 {
		return
	}

	s.dc.Push()
	defer s.dc.Pop()

	scaleX := width / float64(bounds.Dx())
	scaleY := height / float64(bounds.Dy())
	s.dc.Translate(x, y)
	s.dc.Scale(scaleX, scaleY)
	s.dc.DrawImage(img, 0, 0)
}

// ClipCircle restricts subsequent drawing to a circle.
func (s *Surface) ClipCircle(cx, cy, r float64) {
	s.dc.DrawCircle(cx, cy, r)
	s.dc.Clip()
}

// ResetClip removes the current clip.
func (s *Surface) ResetClip() {
	s.dc.ResetClip()
}

// Image returns the surface contents as an image.Image.
func (s *Surface) Image() image.Image {
	return s.dc.Image()
}

// EncodePNG encodes the surface contents to PNG bytes.
func (s *Surface) EncodePNG(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, s.dc.Image()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Ensure Surface implements ports.Surface
var _ ports.Surface = (*Surface)(nil)
