// Package nullsink provides a disabled debug sink.
package nullsink

import (
	"image"

	"github.com/ravendarque/beyond-borders/pkg/ports"
)

// Sink implements ports.DebugSink by discarding everything.
type Sink struct{}

// New creates a disabled sink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false.
func (s *Sink) Enabled() bool { return false }

// SaveLayersJSON discards the data.
func (s *Sink) SaveLayersJSON(data []byte) error { return nil }

// SaveDownsampled discards the image.
func (s *Sink) SaveDownsampled(img image.Image) error { return nil }

// SaveComposed discards the image.
func (s *Sink) SaveComposed(img image.Image) error { return nil }

// SaveMetricsJSON discards the data.
func (s *Sink) SaveMetricsJSON(data []byte) error { return nil }

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
