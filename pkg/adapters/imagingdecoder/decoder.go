// Package imagingdecoder decodes image bytes using the imaging library,
// honoring EXIF orientation so portrait phone photos come out upright.
package imagingdecoder

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ravendarque/beyond-borders/pkg/avatar"
	"github.com/ravendarque/beyond-borders/pkg/ports"
)

// Decoder implements ports.ImageDecoder.
type Decoder struct{}

// New creates a new Decoder.
func New() *Decoder {
	return &Decoder{}
}

// Decode decodes image bytes into a bitmap. Failures are reported as
// DecodeFailureError so callers can branch on the error kind.
func (d *Decoder) Decode(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, &avatar.DecodeFailureError{Source: "image bytes", Err: err}
	}
	return img, nil
}

// Ensure Decoder implements ports.ImageDecoder
var _ ports.ImageDecoder = (*Decoder)(nil)
