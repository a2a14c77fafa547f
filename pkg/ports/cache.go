package ports

import (
	"image"
)

// BitmapCache maps stable string keys to decoded flag bitmaps so repeated
// cutout renders of the same flag skip re-decoding. The cache is owned by
// the caller, who is responsible for lifecycle and teardown; the render core
// only reads and inserts, never evicts. Inserting twice for the same key
// overwrites, which is harmless.
type BitmapCache interface {
	// Get returns the cached bitmap for key, if present.
	Get(key string) (image.Image, bool)

	// Put stores a bitmap under key.
	Put(key string, img image.Image)
}
