// Package avatar provides the pipeline infrastructure for beyond-borders.
package avatar

import (
	"context"
)

// Stage represents a processing stage in the render pipeline.
// Each stage takes an input and produces an output.
type Stage[In, Out any] interface {
	// Execute runs the stage with the given input and returns the output.
	Execute(ctx context.Context, input In) (Out, error)
}

// StageFunc is a function adapter for Stage interface.
type StageFunc[In, Out any] func(ctx context.Context, input In) (Out, error)

// Execute implements Stage interface.
func (f StageFunc[In, Out]) Execute(ctx context.Context, input In) (Out, error) {
	return f(ctx, input)
}

// ProgressFunc receives render progress in the range 0..1.
// Stages invoke it at stage boundaries; a nil ProgressFunc is safe to call.
type ProgressFunc func(fraction float64)

// Report invokes the callback if it is non-nil.
func (f ProgressFunc) Report(fraction float64) {
	if f != nil {
		f(fraction)
	}
}
