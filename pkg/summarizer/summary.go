// Package summarizer provides summary generation for render results.
package summarizer

import (
	"time"

	"github.com/ravendarque/beyond-borders/pkg/avatar"
)

// Summary contains all data collected during one render.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Photo information
	Photo PhotoInfo

	// Render settings
	Settings Settings

	// Output details
	Output OutputInfo

	// Metrics is the optional per-stage timing record.
	Metrics *avatar.Metrics
}

// PhotoInfo describes the source photo.
type PhotoInfo struct {
	Path   string
	Width  int
	Height int
}

// Settings contains the render configuration.
type Settings struct {
	FlagID           string
	Presentation     string
	OutputSize       int
	ThicknessPercent float64
}

// OutputInfo describes the written output.
type OutputInfo struct {
	Path     string
	ByteSize int
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithPhoto sets photo information.
func (b *Builder) WithPhoto(path string, dims avatar.ImageDimensions) *Builder {
	b.summary.Photo = PhotoInfo{
		Path:   path,
		Width:  dims.Width,
		Height: dims.Height,
	}
	return b
}

// WithSettings sets the render settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// WithOutput sets output information.
func (b *Builder) WithOutput(path string, byteSize int) *Builder {
	b.summary.Output = OutputInfo{
		Path:     path,
		ByteSize: byteSize,
	}
	return b
}

// WithMetrics attaches the optional metrics record.
func (b *Builder) WithMetrics(metrics *avatar.Metrics) *Builder {
	b.summary.Metrics = metrics
	return b
}

// Build returns the assembled Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}

// FromRunResult builds a Summary from an orchestrated render result.
func FromRunResult(photoPath string, inputSize avatar.ImageDimensions, settings Settings, outputPath string, byteSize int, metrics *avatar.Metrics) *Summary {
	return NewBuilder().
		WithPhoto(photoPath, inputSize).
		WithSettings(settings).
		WithOutput(outputPath, byteSize).
		WithMetrics(metrics).
		Build()
}
