package mocks

import (
	"image"
	"sync"

	"github.com/ravendarque/beyond-borders/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	LayersJSON  []byte
	Downsampled image.Image
	Composed    image.Image
	MetricsJSON []byte
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{enabled: enabled}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveLayersJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LayersJSON = data
	return nil
}

func (m *DebugSink) SaveDownsampled(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Downsampled = img
	return nil
}

func (m *DebugSink) SaveComposed(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Composed = img
	return nil
}

func (m *DebugSink) SaveMetricsJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MetricsJSON = data
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)
