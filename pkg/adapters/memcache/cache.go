// Package memcache provides an in-memory flag bitmap cache.
package memcache

import (
	"image"
	"sync"

	"github.com/ravendarque/beyond-borders/pkg/ports"
)

// Cache implements ports.BitmapCache with a map. The render core itself is
// single-threaded per call, but the cache outlives calls and library users
// may share it, so access is guarded.
type Cache struct {
	mu      sync.RWMutex
	bitmaps map[string]image.Image
}

// New creates an empty Cache.
func New() *Cache {
	return &Cache{bitmaps: make(map[string]image.Image)}
}

// Get returns the cached bitmap for key, if present.
func (c *Cache) Get(key string) (image.Image, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	img, ok := c.bitmaps[key]
	return img, ok
}

// Put stores a bitmap under key. A second insert for the same key
// overwrites the first.
func (c *Cache) Put(key string, img image.Image) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bitmaps[key] = img
}

// Len returns the number of cached bitmaps.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.bitmaps)
}

// Clear drops every cached bitmap. The owner calls this on teardown.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bitmaps = make(map[string]image.Image)
}

// Ensure Cache implements ports.BitmapCache
var _ ports.BitmapCache = (*Cache)(nil)
