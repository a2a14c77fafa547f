// Package compose implements the render pipeline: validate surface size,
// optionally downsample the source, draw the positioned photo inside its
// circular clip, draw the border pattern, fill the background and encode to
// PNG bytes.
package compose

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"math"
	"time"

	"github.com/ravendarque/beyond-borders/pkg/avatar"
	"github.com/ravendarque/beyond-borders/pkg/ports"
	"github.com/ravendarque/beyond-borders/pkg/stages/pattern"
	"github.com/ravendarque/beyond-borders/pkg/stages/position"
)

// Progress checkpoints reported at stage boundaries.
const (
	progressValidated   = 0.1
	progressDownsampled = 0.3
	progressPhotoDrawn  = 0.6
	progressBorderDrawn = 0.8
	progressComposited  = 0.9
	progressEncoded     = 1.0
)

// Stage composes one avatar render.
type Stage struct {
	surfaces  ports.SurfaceFactory
	resampler ports.Resampler
	sink      ports.DebugSink
	logger    ports.Logger
}

// NewStage creates a new compose stage.
func NewStage(surfaces ports.SurfaceFactory, resampler ports.Resampler, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		surfaces:  surfaces,
		resampler: resampler,
		sink:      sink,
		logger:    logger.WithComponent("compose"),
	}
}

// Execute runs the full render pipeline. Each call is independent and
// idempotent given identical inputs; only the caller-owned flag bitmap
// cache carries state across calls.
func (s *Stage) Execute(ctx context.Context, input avatar.ComposeInput) (avatar.RenderResult, error) {
	if input.Photo == nil {
		return avatar.RenderResult{}, &avatar.DecodeFailureError{
			Source: "photo",
			Err:    errors.New("no decoded bitmap supplied"),
		}
	}

	opts := input.Options
	progress := opts.Progress
	track := opts.EnablePerformanceTracking
	started := time.Now()

	// 1. Validate the output surface against capability limits before
	// anything is allocated or drawn.
	size := opts.OutputSize
	s.logger.Debug("Validating output surface %dx%d", size, size)
	surface, err := s.surfaces.NewSurface(size, size)
	if err != nil {
		return avatar.RenderResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return avatar.RenderResult{}, err
	}
	progress.Report(progressValidated)

	// 2. Downsample oversized sources to bound memory.
	loadStarted := time.Now()
	photo, wasDownsampled, ratio := s.maybeDownsample(input.Photo, size, opts.EnableDownsampling)
	loadMs := time.Since(loadStarted).Milliseconds()
	if err := ctx.Err(); err != nil {
		return avatar.RenderResult{}, err
	}
	progress.Report(progressDownsampled)

	renderStarted := time.Now()
	center := float64(size) / 2
	outerRadius := center
	innerRadius := outerRadius * (1 - opts.ThicknessPercent/100)
	if innerRadius < 0 || math.IsNaN(innerRadius) {
		innerRadius = 0
	}

	// Paint order is background, border, photo: the pattern's pixel form
	// fills the full viewport disc, so the inner-clipped photo must be
	// drawn last to overdraw the pattern interior, matching the preview's
	// layer stacking. The checkpoints still fire in pipeline order below.

	// 5 (paint only): background behind everything.
	if opts.Background != nil {
		surface.FillRect(0, 0, float64(size), float64(size), opts.Background)
	}

	// 4 (paint only): the border pattern. An unavailable pattern
	// downgrades to a borderless render instead of failing the call.
	if err := s.drawBorder(ctx, surface, input, center); err != nil {
		return avatar.RenderResult{}, err
	}

	// 3. Draw the positioned photo inside its circular clip.
	s.drawPhoto(surface, photo, input.Position, center, innerRadius)
	progress.Report(progressPhotoDrawn)

	if err := ctx.Err(); err != nil {
		return avatar.RenderResult{}, err
	}
	progress.Report(progressBorderDrawn)

	// 5. Background checkpoint (paint already issued above).
	progress.Report(progressComposited)
	renderMs := time.Since(renderStarted).Milliseconds()

	// 6. Encode.
	s.logger.Debug("Encoding PNG")
	exportStarted := time.Now()
	encoded, err := surface.EncodePNG(ctx)
	if err != nil {
		return avatar.RenderResult{}, fmt.Errorf("encode stage: %w", err)
	}
	exportMs := time.Since(exportStarted).Milliseconds()
	progress.Report(progressEncoded)

	if s.sink.Enabled() {
		s.sink.SaveComposed(surface.Image())
	}

	result := avatar.RenderResult{
		EncodedBytes: encoded,
		ByteSize:     len(encoded),
	}

	// Metrics are collected after the bytes exist; their absence never
	// alters rendering output.
	if track {
		inputDims := avatar.DimensionsOf(input.Photo)
		workDims := avatar.DimensionsOf(photo)
		metrics := &avatar.Metrics{
			TotalMs:         time.Since(started).Milliseconds(),
			ImageLoadMs:     loadMs,
			RenderMs:        renderMs,
			ExportMs:        exportMs,
			InputSize:       inputDims,
			OutputSize:      size,
			WasDownsampled:  wasDownsampled,
			EstimatedMemoryBytes: 4 * (int64(size)*int64(size) +
				int64(workDims.Width)*int64(workDims.Height)),
		}
		if wasDownsampled {
			metrics.DownsampleRatio = ratio
		}
		result.Metrics = metrics

		if s.sink.Enabled() {
			if data, err := json.MarshalIndent(metrics, "", "  "); err == nil {
				s.sink.SaveMetricsJSON(data)
			}
		}
	}

	return result, nil
}

// maybeDownsample resizes the source when its larger dimension exceeds the
// output size by more than the downsample threshold.
func (s *Stage) maybeDownsample(photo image.Image, outputSize int, enabled bool) (image.Image, bool, float64) {
	dims := avatar.DimensionsOf(photo)
	limit := float64(outputSize) * avatar.DownsampleThreshold
	if !enabled || dims.IsZero() || float64(dims.Larger()) <= limit {
		return photo, false, 1
	}

	ratio := limit / float64(dims.Larger())
	targetW := int(math.Round(float64(dims.Width) * ratio))
	targetH := int(math.Round(float64(dims.Height) * ratio))
	if targetW < 1 {
		targetW = 1
	}
	if targetH < 1 {
		targetH = 1
	}

	s.logger.Debug("Downsampling source %dx%d to %dx%d", dims.Width, dims.Height, targetW, targetH)
	resized := s.resampler.Resize(photo, targetW, targetH)
	if s.sink.Enabled() {
		s.sink.SaveDownsampled(resized)
	}
	return resized, true, ratio
}

// drawPhoto draws the photo inside the inner circle using the renderer
// offset the preview's background-position expression would produce.
func (s *Stage) drawPhoto(surface ports.Surface, photo image.Image, pos avatar.ImagePosition, center, innerRadius float64) {
	dims := avatar.DimensionsOf(photo)
	container := int(math.Round(innerRadius * 2))
	if dims.IsZero() || container <= 0 {
		return
	}

	limits := position.CalculateLimits(dims, container, pos.Zoom)
	maxLimits := position.CalculateLimits(dims, container, position.MaxZoom)
	offset := position.ToRendererOffset(pos, dims, container, &limits, &maxLimits)
	scaledW, scaledH := position.ScaledSize(dims, container, pos.Zoom)

	s.logger.Debug("Drawing photo at offset (%.2f, %.2f)", offset.DX, offset.DY)

	surface.ClipCircle(center, center, innerRadius)
	x := center - scaledW/2 + offset.DX
	y := center - scaledH/2 + offset.DY
	surface.DrawImageScaled(photo, x, y, scaledW, scaledH)
	surface.ResetClip()
}

// drawBorder resolves and draws the flag pattern. PatternUnavailable is
// recoverable: the render continues without a border.
func (s *Stage) drawBorder(ctx context.Context, surface ports.Surface, input avatar.ComposeInput, center float64) error {
	spec, err := pattern.Resolve(input.Flag, input.Options)
	if err != nil {
		return s.skipIfUnavailable(err)
	}

	var flagBitmap image.Image
	if spec.Presentation == avatar.PresentationCutout {
		flagBitmap, err = s.resolveFlagBitmap(ctx, input)
		if err != nil {
			return s.skipIfUnavailable(err)
		}
	}

	s.logger.Debug("Drawing %s border", spec.Presentation)
	if err := spec.Draw(surface, center, center, flagBitmap); err != nil {
		return s.skipIfUnavailable(err)
	}

	if s.sink.Enabled() {
		if data, err := json.MarshalIndent(spec.Layers(), "", "  "); err == nil {
			s.sink.SaveLayersJSON(data)
		}
	}
	return nil
}

// skipIfUnavailable swallows PatternUnavailableError with a warning and
// propagates everything else.
func (s *Stage) skipIfUnavailable(err error) error {
	var unavailable *avatar.PatternUnavailableError
	if errors.As(err, &unavailable) {
		s.logger.Warn("Border unavailable, rendering without")
		s.logger.Debug("%s", unavailable.Error())
		return nil
	}
	return err
}

// resolveFlagBitmap finds the full flag bitmap for cutout mode: cache
// first, then a pre-decoded bitmap on the input, then the caller's loader.
// Whatever is found is inserted into the cache so repeated renders of the
// same flag decode once.
func (s *Stage) resolveFlagBitmap(ctx context.Context, input avatar.ComposeInput) (image.Image, error) {
	key := input.Flag.ImageRef

	if input.Cache != nil {
		if img, ok := input.Cache.Get(key); ok {
			s.logger.Debug("Flag bitmap cache hit for %s", key)
			return img, nil
		}
	}

	if input.FlagBitmap != nil {
		if input.Cache != nil {
			input.Cache.Put(key, input.FlagBitmap)
		}
		return input.FlagBitmap, nil
	}

	if input.FlagLoader != nil {
		img, err := input.FlagLoader(ctx, key)
		if err != nil {
			return nil, &avatar.DecodeFailureError{Source: key, Err: err}
		}
		s.logger.Debug("Decoded flag bitmap for %s", key)
		if input.Cache != nil {
			input.Cache.Put(key, img)
		}
		return img, nil
	}

	return nil, &avatar.PatternUnavailableError{
		FlagID:       input.Flag.ID,
		Presentation: avatar.PresentationCutout,
		Reason:       "no flag bitmap, cache entry or loader supplied",
	}
}

// Ensure Stage implements the pipeline stage interface
var _ avatar.Stage[avatar.ComposeInput, avatar.RenderResult] = (*Stage)(nil)
