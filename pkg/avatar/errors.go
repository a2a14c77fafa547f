package avatar

import (
	"fmt"
)

// SizeExceededError reports a requested surface larger than the environment
// allows. Fatal to the render call, not retryable; the caller should surface
// the concrete limit.
type SizeExceededError struct {
	Width        int
	Height       int
	MaxDimension int
	Class        string
}

// Error implements the error interface.
func (e *SizeExceededError) Error() string {
	return fmt.Sprintf("surface %dx%d exceeds %s limit of %dx%d pixels",
		e.Width, e.Height, e.Class, e.MaxDimension, e.MaxDimension)
}

// PatternUnavailableError reports that a flag has no usable color or image
// data for the requested presentation. Recoverable: the compositor renders
// the photo without a border.
type PatternUnavailableError struct {
	FlagID       string
	Presentation Presentation
	Reason       string
}

// Error implements the error interface.
func (e *PatternUnavailableError) Error() string {
	return fmt.Sprintf("flag %q has no usable %s border: %s",
		e.FlagID, e.Presentation, e.Reason)
}

// SurfaceUnavailableError reports that no drawing surface capability exists
// at all. Fatal, detected once at startup.
type SurfaceUnavailableError struct {
	Reason string
}

// Error implements the error interface.
func (e *SurfaceUnavailableError) Error() string {
	return fmt.Sprintf("no drawing surface available: %s", e.Reason)
}

// DecodeFailureError reports that a supplied photo or flag image failed to
// decode. Recoverable by the caller choosing a different image.
type DecodeFailureError struct {
	Source string
	Err    error
}

// Error implements the error interface.
func (e *DecodeFailureError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Source, e.Err)
}

// Unwrap exposes the underlying decoder error.
func (e *DecodeFailureError) Unwrap() error {
	return e.Err
}
