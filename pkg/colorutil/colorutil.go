// Package colorutil provides hex color handling and proportional pixel
// allocation for stripe and ring rendering.
package colorutil

import (
	"fmt"
	"image/color"
	"strings"
)

// IsValidHex reports whether s is a 3- or 6-digit hex color, with or
// without a leading '#'. Matching is case-insensitive.
func IsValidHex(s string) bool {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 3 && len(s) != 6 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if hexValue(s[i]) < 0 {
			return false
		}
	}
	return true
}

// NormalizeHex normalizes a 3- or 6-digit hex color to the canonical
// uppercase 6-digit form with a leading '#'.
func NormalizeHex(s string) (string, error) {
	if !IsValidHex(s) {
		return "", fmt.Errorf("invalid hex color %q", s)
	}
	h := strings.ToUpper(strings.TrimPrefix(s, "#"))
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	return "#" + h, nil
}

// ParseHex parses a 3- or 6-digit hex color into an opaque color.RGBA.
func ParseHex(s string) (color.RGBA, error) {
	normalized, err := NormalizeHex(s)
	if err != nil {
		return color.RGBA{}, err
	}
	h := normalized[1:]
	r := uint8(hexValue(h[0])<<4 | hexValue(h[1]))
	g := uint8(hexValue(h[2])<<4 | hexValue(h[3]))
	b := uint8(hexValue(h[4])<<4 | hexValue(h[5]))
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// Similar reports whether two colors are equal within a per-channel
// tolerance (0-255). Used for palette deduplication.
func Similar(a, b color.Color, tolerance int) bool {
	ar, ag, ab, _ := a.RGBA()
	br, bg, bb, _ := b.RGBA()
	t := uint32(tolerance) << 8
	return absDiff(ar, br) <= t && absDiff(ag, bg) <= t && absDiff(ab, bb) <= t
}

// AllocatePixels distributes total discrete units across bands proportional
// to weights. All bands but the last use floor rounding; the last band
// absorbs the remainder, so the sum is always exactly total. This guarantees
// gapless, non-overlapping stripe and ring rendering.
func AllocatePixels(total int, weights []float64) ([]int, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("allocate pixels: no weights")
	}
	if total < 0 {
		return nil, fmt.Errorf("allocate pixels: negative total %d", total)
	}

	var sum float64
	for i, w := range weights {
		if w <= 0 {
			return nil, fmt.Errorf("allocate pixels: non-positive weight %v at index %d", w, i)
		}
		sum += w
	}

	out := make([]int, len(weights))
	allocated := 0
	for i, w := range weights[:len(weights)-1] {
		out[i] = int(float64(total) * w / sum)
		allocated += out[i]
	}
	out[len(weights)-1] = total - allocated
	return out, nil
}

func hexValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return -1
	}
}

func absDiff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}
