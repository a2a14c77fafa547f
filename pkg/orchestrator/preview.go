package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/ravendarque/beyond-borders/pkg/avatar"
	"github.com/ravendarque/beyond-borders/pkg/stages/pattern"
	"github.com/ravendarque/beyond-borders/pkg/stages/position"
)

// PreviewResult is the declarative form of a render: the paint instructions
// an interactive preview surface applies instead of drawing pixels. It is
// derived from the same geometry the export path draws from.
type PreviewResult struct {
	// BackgroundPosition positions the photo inside its circular
	// viewport, as a CSS background-position expression.
	BackgroundPosition string `json:"backgroundPosition"`

	// BackgroundSize is the scaled photo size expression.
	BackgroundSize string `json:"backgroundSize"`

	// Limits is the movement range at the configured zoom.
	Limits avatar.PositionLimits `json:"limits"`

	// Layers are the border paint layers, outermost first.
	Layers []pattern.PaintLayer `json:"layers"`
}

// Preview computes the declarative preview for a config without rendering
// any pixels. Pattern unavailability yields an empty layer list, matching
// the export path's borderless downgrade.
func (o *Orchestrator) Preview(ctx context.Context, config Config) (PreviewResult, error) {
	if err := ctx.Err(); err != nil {
		return PreviewResult{}, err
	}

	data, err := o.fs.ReadFile(config.PhotoPath)
	if err != nil {
		return PreviewResult{}, fmt.Errorf("read photo: %w", err)
	}
	photo, err := o.decoder.Decode(data)
	if err != nil {
		return PreviewResult{}, err
	}
	dims := avatar.DimensionsOf(photo)

	inner := float64(config.OutputSize) / 2 * (1 - config.ThicknessPercent/100)
	container := int(math.Round(inner * 2))

	limits := position.CalculateLimits(dims, container, config.Position.Zoom)
	maxLimits := position.CalculateLimits(dims, container, position.MaxZoom)
	bg := position.ToBackgroundPosition(config.Position, &limits, &maxLimits)
	scaledW, scaledH := position.ScaledSize(dims, container, config.Position.Zoom)

	result := PreviewResult{
		BackgroundPosition: bg.Expression(),
		BackgroundSize:     fmt.Sprintf("%.2fpx %.2fpx", scaledW, scaledH),
		Limits:             limits,
	}

	options := avatar.RenderOptions{
		OutputSize:             config.OutputSize,
		ThicknessPercent:       config.ThicknessPercent,
		Presentation:           config.Presentation,
		FlagOffsetPercent:      config.FlagOffsetPercent,
		SegmentRotationDegrees: config.SegmentRotationDegrees,
	}
	spec, err := pattern.Resolve(config.Flag, options)
	if err != nil {
		var unavailable *avatar.PatternUnavailableError
		if errors.As(err, &unavailable) {
			return result, nil
		}
		return PreviewResult{}, err
	}
	result.Layers = spec.Layers()

	return result, nil
}
