package ports

import (
	"image"
)

// ImageDecoder decodes encoded photo or flag bytes into a bitmap.
// Implementations must not fetch network resources; they only decode what
// the caller already holds.
type ImageDecoder interface {
	// Decode decodes image bytes, honoring embedded orientation metadata.
	Decode(data []byte) (image.Image, error)
}
