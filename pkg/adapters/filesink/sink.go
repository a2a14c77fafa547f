// Package filesink provides a debug sink that writes intermediate render
// results to a directory.
package filesink

import (
	"bytes"
	"image"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/ravendarque/beyond-borders/pkg/ports"
)

// Sink implements ports.DebugSink by writing files into a directory.
type Sink struct {
	dir string
	fs  ports.FileSystem
}

// New creates a sink writing into dir, which must already exist.
func New(dir string, fs ports.FileSystem) *Sink {
	return &Sink{dir: dir, fs: fs}
}

// Enabled returns true; a file sink is always active.
func (s *Sink) Enabled() bool {
	return true
}

// SaveLayersJSON saves the declarative pattern layers as JSON.
func (s *Sink) SaveLayersJSON(data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.dir, "layers.json"), data)
}

// SaveDownsampled saves the resized source bitmap.
func (s *Sink) SaveDownsampled(img image.Image) error {
	return s.savePNG("downsampled.png", img)
}

// SaveComposed saves the final composited image.
func (s *Sink) SaveComposed(img image.Image) error {
	return s.savePNG("composed.png", img)
}

// SaveMetricsJSON saves the render metrics as JSON.
func (s *Sink) SaveMetricsJSON(data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.dir, "metrics.json"), data)
}

func (s *Sink) savePNG(name string, img image.Image) error {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return err
	}
	return s.fs.WriteFile(filepath.Join(s.dir, name), buf.Bytes())
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
