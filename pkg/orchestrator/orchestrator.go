// Package orchestrator coordinates a render from photo bytes to the written
// output file.
package orchestrator

import (
	"context"
	"fmt"
	"image"
	"sync/atomic"

	"github.com/ideamans/go-l10n"

	"github.com/ravendarque/beyond-borders/pkg/avatar"
	"github.com/ravendarque/beyond-borders/pkg/colorutil"
	"github.com/ravendarque/beyond-borders/pkg/ports"
)

// Config contains all configuration for one orchestrated render.
type Config struct {
	// Input/Output
	PhotoPath  string
	OutputPath string

	// Flag selection
	Flag avatar.FlagDescriptor
	// FlagImagePath optionally points at the full flag bitmap file for
	// cutout mode.
	FlagImagePath string

	// Crop state
	Position avatar.ImagePosition

	// Render options
	OutputSize             int
	ThicknessPercent       float64
	Presentation           avatar.Presentation
	FlagOffsetPercent      float64
	SegmentRotationDegrees float64
	// BackgroundColor is a hex color; empty leaves the corners
	// transparent.
	BackgroundColor    string
	EnableDownsampling bool
	TrackPerformance   bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		OutputSize:         1024,
		ThicknessPercent:   10,
		Presentation:       avatar.PresentationRing,
		EnableDownsampling: true,
	}
}

// Orchestrator coordinates decode, compose and output writing.
type Orchestrator struct {
	composeStage avatar.Stage[avatar.ComposeInput, avatar.RenderResult]
	decoder      ports.ImageDecoder
	fs           ports.FileSystem
	cache        ports.BitmapCache
	sink         ports.DebugSink
	logger       ports.Logger

	// sequence numbers renders monotonically so callers juggling
	// concurrent requests can discard stale results.
	sequence atomic.Uint64
}

// New creates a new Orchestrator. The bitmap cache is owned by the caller
// and shared across runs; pass nil to disable caching.
func New(
	composeStage avatar.Stage[avatar.ComposeInput, avatar.RenderResult],
	decoder ports.ImageDecoder,
	fs ports.FileSystem,
	cache ports.BitmapCache,
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		composeStage: composeStage,
		decoder:      decoder,
		fs:           fs,
		cache:        cache,
		sink:         sink,
		logger:       logger,
	}
}

// Run executes one complete render.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	seq := o.sequence.Add(1)
	o.logger.Info(l10n.T("Starting render"))

	// 1. Read and decode the photo.
	data, err := o.fs.ReadFile(config.PhotoPath)
	if err != nil {
		o.logger.Error(l10n.F("Failed to read photo: %s", err))
		return RunResult{}, fmt.Errorf("read photo: %w", err)
	}
	photo, err := o.decoder.Decode(data)
	if err != nil {
		o.logger.Error(l10n.F("Failed to decode photo: %s", err))
		return RunResult{}, err
	}
	dims := avatar.DimensionsOf(photo)
	o.logger.Info(l10n.F("Photo decoded: %dx%d", dims.Width, dims.Height))

	// 2. Compose.
	input, err := o.buildComposeInput(config, photo)
	if err != nil {
		return RunResult{}, err
	}
	result, err := o.composeStage.Execute(ctx, input)
	if err != nil {
		o.logger.Error(l10n.F("Failed to render: %s", err))
		return RunResult{}, fmt.Errorf("compose stage: %w", err)
	}
	o.logger.Info(l10n.F("Rendered %d bytes", result.ByteSize))

	// 3. Write output file.
	if err := o.fs.WriteFile(config.OutputPath, result.EncodedBytes); err != nil {
		o.logger.Error(l10n.F("Failed to write output: %s", err))
		return RunResult{}, fmt.Errorf("write output: %w", err)
	}

	o.logger.Info(l10n.T("Render completed successfully"))

	return RunResult{
		Sequence:     seq,
		PhotoPath:    config.PhotoPath,
		OutputPath:   config.OutputPath,
		FlagID:       config.Flag.ID,
		Presentation: config.Presentation,
		InputSize:    dims,
		OutputSize:   config.OutputSize,
		ByteSize:     result.ByteSize,
		Metrics:      result.Metrics,
	}, nil
}

func (o *Orchestrator) buildComposeInput(config Config, photo image.Image) (avatar.ComposeInput, error) {
	options := avatar.RenderOptions{
		OutputSize:                config.OutputSize,
		ThicknessPercent:          config.ThicknessPercent,
		Presentation:              config.Presentation,
		FlagOffsetPercent:         config.FlagOffsetPercent,
		SegmentRotationDegrees:    config.SegmentRotationDegrees,
		EnableDownsampling:        config.EnableDownsampling,
		EnablePerformanceTracking: config.TrackPerformance,
	}

	if config.BackgroundColor != "" {
		bg, err := colorutil.ParseHex(config.BackgroundColor)
		if err != nil {
			return avatar.ComposeInput{}, fmt.Errorf("background color: %w", err)
		}
		options.Background = bg
	}

	input := avatar.ComposeInput{
		Photo:    photo,
		Position: config.Position,
		Flag:     config.Flag,
		Options:  options,
		Cache:    o.cache,
	}

	// Cutout mode resolves its bitmap through the cache; on a miss the
	// loader reads the configured flag image file from disk.
	if config.FlagImagePath != "" {
		path := config.FlagImagePath
		input.FlagLoader = func(ctx context.Context, ref string) (image.Image, error) {
			data, err := o.fs.ReadFile(path)
			if err != nil {
				return nil, err
			}
			return o.decoder.Decode(data)
		}
	}

	return input, nil
}

// RunResult contains the results of a render for summary generation and
// stale-result filtering.
type RunResult struct {
	// Sequence is the monotonic render request number.
	Sequence uint64

	PhotoPath  string
	OutputPath string

	FlagID       string
	Presentation avatar.Presentation

	InputSize  avatar.ImageDimensions
	OutputSize int
	ByteSize   int

	Metrics *avatar.Metrics
}
