// Package mocks provides mock implementations of the ports interfaces for
// testing.
package mocks

import (
	"context"
	"image"
	"image/color"

	"github.com/ravendarque/beyond-borders/pkg/ports"
)

// SurfaceFactory is a mock implementation of ports.SurfaceFactory.
type SurfaceFactory struct {
	Caps ports.Capabilities

	NewSurfaceFunc func(width, height int) (ports.Surface, error)

	// Created collects the surfaces handed out.
	Created []*Surface
}

// NewSurfaceFactory creates a mock factory with generous capabilities.
func NewSurfaceFactory() *SurfaceFactory {
	return &SurfaceFactory{
		Caps: ports.Capabilities{Class: ports.ClassExtended, MaxDimension: 16384},
	}
}

func (m *SurfaceFactory) NewSurface(width, height int) (ports.Surface, error) {
	if m.NewSurfaceFunc != nil {
		return m.NewSurfaceFunc(width, height)
	}
	s := &Surface{Width: width, Height: height}
	m.Created = append(m.Created, s)
	return s, nil
}

func (m *SurfaceFactory) Capabilities() ports.Capabilities {
	return m.Caps
}

var _ ports.SurfaceFactory = (*SurfaceFactory)(nil)

// Resampler is a mock implementation of ports.Resampler that records calls
// and returns blank images of the requested size.
type Resampler struct {
	Calls int
}

func (m *Resampler) Resize(img image.Image, width, height int) image.Image {
	m.Calls++
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

var _ ports.Resampler = (*Resampler)(nil)

// SurfaceOp records one draw call against a mock surface.
type SurfaceOp struct {
	Op     string
	X, Y   float64
	W, H   float64
	R      float64
	A1, A2 float64
	Color  color.Color
	Img    image.Image
}

// Surface is a mock implementation of ports.Surface recording draw calls.
type Surface struct {
	Width  int
	Height int

	Ops []SurfaceOp

	EncodePNGFunc func(ctx context.Context) ([]byte, error)
}

func (m *Surface) FillRect(x, y, w, h float64, c color.Color) {
	m.Ops = append(m.Ops, SurfaceOp{Op: "fillRect", X: x, Y: y, W: w, H: h, Color: c})
}

func (m *Surface) FillCircle(cx, cy, r float64, c color.Color) {
	m.Ops = append(m.Ops, SurfaceOp{Op: "fillCircle", X: cx, Y: cy, R: r, Color: c})
}

func (m *Surface) FillWedge(cx, cy, r, angle1, angle2 float64, c color.Color) {
	m.Ops = append(m.Ops, SurfaceOp{Op: "fillWedge", X: cx, Y: cy, R: r, A1: angle1, A2: angle2, Color: c})
}

func (m *Surface) DrawImage(img image.Image, x, y int) {
	m.Ops = append(m.Ops, SurfaceOp{Op: "drawImage", X: float64(x), Y: float64(y), Img: img})
}

func (m *Surface) DrawImageScaled(img image.Image, x, y, width, height float64) {
	m.Ops = append(m.Ops, SurfaceOp{Op: "drawImageScaled", X: x, Y: y, W: width, H: height, Img: img})
}

func (m *Surface) ClipCircle(cx, cy, r float64) {
	m.Ops = append(m.Ops, SurfaceOp{Op: "clipCircle", X: cx, Y: cy, R: r})
}

func (m *Surface) ResetClip() {
	m.Ops = append(m.Ops, SurfaceOp{Op: "resetClip"})
}

func (m *Surface) Image() image.Image {
	return image.NewRGBA(image.Rect(0, 0, m.Width, m.Height))
}

func (m *Surface) EncodePNG(ctx context.Context) ([]byte, error) {
	if m.EncodePNGFunc != nil {
		return m.EncodePNGFunc(ctx)
	}
	return []byte{0x89, 'P', 'N', 'G'}, nil
}

// OpsNamed returns the recorded ops matching name, in order.
func (m *Surface) OpsNamed(name string) []SurfaceOp {
	var out []SurfaceOp
	for _, op := range m.Ops {
		if op.Op == name {
			out = append(out, op)
		}
	}
	return out
}

var _ ports.Surface = (*Surface)(nil)
