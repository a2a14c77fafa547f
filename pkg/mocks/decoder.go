package mocks

import (
	"image"

	"github.com/ravendarque/beyond-borders/pkg/ports"
)

// ImageDecoder is a mock implementation of ports.ImageDecoder.
type ImageDecoder struct {
	DecodeFunc func(data []byte) (image.Image, error)

	// Calls counts Decode invocations.
	Calls int
}

func (m *ImageDecoder) Decode(data []byte) (image.Image, error) {
	m.Calls++
	if m.DecodeFunc != nil {
		return m.DecodeFunc(data)
	}
	return image.NewRGBA(image.Rect(0, 0, 100, 100)), nil
}

var _ ports.ImageDecoder = (*ImageDecoder)(nil)
