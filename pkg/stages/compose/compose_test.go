package compose

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/ravendarque/beyond-borders/pkg/adapters/logger"
	"github.com/ravendarque/beyond-borders/pkg/adapters/memcache"
	"github.com/ravendarque/beyond-borders/pkg/avatar"
	"github.com/ravendarque/beyond-borders/pkg/mocks"
	"github.com/ravendarque/beyond-borders/pkg/ports"
)

type fixture struct {
	factory   *mocks.SurfaceFactory
	resampler *mocks.Resampler
	sink      *mocks.DebugSink
	stage     *Stage
}

func newFixture() *fixture {
	factory := mocks.NewSurfaceFactory()
	resampler := &mocks.Resampler{}
	sink := mocks.NewDebugSink(false)
	return &fixture{
		factory:   factory,
		resampler: resampler,
		sink:      sink,
		stage:     NewStage(factory, resampler, sink, logger.NewNoop()),
	}
}

func testPhoto(w, h int) image.Image {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

func ringInput(size int) avatar.ComposeInput {
	opts := avatar.DefaultRenderOptions()
	opts.OutputSize = size
	return avatar.ComposeInput{
		Photo:   testPhoto(200, 100),
		Flag:    avatar.FlagDescriptor{ID: "rgb", Colors: []string{"#F00", "#0F0", "#00F"}},
		Options: opts,
	}
}

func (f *fixture) surface(t *testing.T) *mocks.Surface {
	t.Helper()
	if len(f.factory.Created) == 0 {
		t.Fatal("no surface was created")
	}
	return f.factory.Created[len(f.factory.Created)-1]
}

func TestExecute_RingRender(t *testing.T) {
	f := newFixture()
	result, err := f.stage.Execute(context.Background(), ringInput(400))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.ByteSize == 0 || result.ByteSize != len(result.EncodedBytes) {
		t.Errorf("expected encoded bytes, got size %d", result.ByteSize)
	}
	if result.Metrics != nil {
		t.Error("metrics must be nil when tracking is off")
	}

	surface := f.surface(t)
	if surface.Width != 400 || surface.Height != 400 {
		t.Errorf("expected 400x400 surface, got %dx%d", surface.Width, surface.Height)
	}
	if len(surface.OpsNamed("drawImageScaled")) != 1 {
		t.Error("expected exactly one photo draw")
	}
	if got := len(surface.OpsNamed("fillCircle")); got != 3 {
		t.Errorf("expected 3 ring band discs, got %d", got)
	}
	if len(surface.OpsNamed("fillRect")) != 0 {
		t.Error("no background configured, expected no rect fill")
	}
}

func TestExecute_NilPhoto(t *testing.T) {
	f := newFixture()
	input := ringInput(400)
	input.Photo = nil
	_, err := f.stage.Execute(context.Background(), input)
	var derr *avatar.DecodeFailureError
	if !errors.As(err, &derr) {
		t.Fatalf("expected DecodeFailureError, got %v", err)
	}
	if len(f.factory.Created) != 0 {
		t.Error("no surface must be created for a nil photo")
	}
}

func TestExecute_SizeExceededPropagates(t *testing.T) {
	f := newFixture()
	f.factory.NewSurfaceFunc = func(width, height int) (ports.Surface, error) {
		return nil, &avatar.SizeExceededError{Width: width, Height: height, MaxDimension: 4096, Class: "minimal"}
	}
	_, err := f.stage.Execute(context.Background(), ringInput(20000))
	var serr *avatar.SizeExceededError
	if !errors.As(err, &serr) {
		t.Fatalf("expected SizeExceededError, got %v", err)
	}
}

func TestExecute_BackgroundPaintsFirst(t *testing.T) {
	f := newFixture()
	input := ringInput(400)
	input.Options.Background = color.White

	if _, err := f.stage.Execute(context.Background(), input); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	surface := f.surface(t)
	if len(surface.Ops) == 0 || surface.Ops[0].Op != "fillRect" {
		t.Fatalf("background fill must be the first paint, got %+v", surface.Ops[:1])
	}
	if op := surface.Ops[0]; op.W != 400 || op.H != 400 {
		t.Errorf("background must cover the full surface, got %vx%v", op.W, op.H)
	}
}

func TestExecute_BorderPaintsBeforePhoto(t *testing.T) {
	// The ring bands fill full discs, so the photo must be the last paint
	// inside the viewport or the border would cover it.
	f := newFixture()
	if _, err := f.stage.Execute(context.Background(), ringInput(400)); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	surface := f.surface(t)
	firstBand, photoDraw := -1, -1
	for i, op := range surface.Ops {
		if op.Op == "fillCircle" && firstBand == -1 {
			firstBand = i
		}
		if op.Op == "drawImageScaled" {
			photoDraw = i
		}
	}
	if firstBand == -1 || photoDraw == -1 {
		t.Fatalf("expected both band and photo paints, got %+v", surface.Ops)
	}
	if photoDraw < firstBand {
		t.Errorf("photo drawn at op %d before border at op %d", photoDraw, firstBand)
	}
}

func TestExecute_UnavailablePatternRendersBorderless(t *testing.T) {
	f := newFixture()
	input := ringInput(400)
	input.Flag = avatar.FlagDescriptor{ID: "plain"}

	result, err := f.stage.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("unavailable pattern must not fail the render: %v", err)
	}
	if result.ByteSize == 0 {
		t.Error("expected encoded output")
	}
	surface := f.surface(t)
	if len(surface.OpsNamed("fillCircle")) != 0 {
		t.Error("expected no border paint")
	}
	if len(surface.OpsNamed("drawImageScaled")) != 1 {
		t.Error("photo must still be drawn")
	}
}

func TestExecute_ProgressCheckpoints(t *testing.T) {
	f := newFixture()
	input := ringInput(400)

	var reported []float64
	input.Options.Progress = func(fraction float64) {
		reported = append(reported, fraction)
	}
	if _, err := f.stage.Execute(context.Background(), input); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	want := []float64{0.1, 0.3, 0.6, 0.8, 0.9, 1.0}
	if len(reported) != len(want) {
		t.Fatalf("expected %d checkpoints, got %v", len(want), reported)
	}
	for i := range want {
		if reported[i] != want[i] {
			t.Errorf("checkpoint %d: expected %v, got %v", i, want[i], reported[i])
		}
	}
}

func TestExecute_DownsamplesOversizedSource(t *testing.T) {
	f := newFixture()
	input := ringInput(400)
	// 2000 > 400 * 2.0 threshold.
	input.Photo = testPhoto(2000, 1000)
	input.Options.EnablePerformanceTracking = true

	result, err := f.stage.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if f.resampler.Calls != 1 {
		t.Errorf("expected one resample, got %d", f.resampler.Calls)
	}
	if result.Metrics == nil || !result.Metrics.WasDownsampled {
		t.Fatal("expected downsampling recorded in metrics")
	}
	if result.Metrics.DownsampleRatio != 0.4 {
		t.Errorf("expected ratio 0.4, got %v", result.Metrics.DownsampleRatio)
	}
	if result.Metrics.InputSize != (avatar.ImageDimensions{Width: 2000, Height: 1000}) {
		t.Errorf("metrics must record the original size, got %+v", result.Metrics.InputSize)
	}
}

func TestExecute_DownsamplingDisabled(t *testing.T) {
	f := newFixture()
	input := ringInput(400)
	input.Photo = testPhoto(2000, 1000)
	input.Options.EnableDownsampling = false

	if _, err := f.stage.Execute(context.Background(), input); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if f.resampler.Calls != 0 {
		t.Errorf("expected no resample, got %d", f.resampler.Calls)
	}
}

func TestExecute_SmallSourceNotDownsampled(t *testing.T) {
	f := newFixture()
	input := ringInput(400)
	input.Photo = testPhoto(800, 800)

	if _, err := f.stage.Execute(context.Background(), input); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if f.resampler.Calls != 0 {
		t.Errorf("source at the threshold must pass through, got %d resamples", f.resampler.Calls)
	}
}

func TestExecute_MetricsNeverAlterOutput(t *testing.T) {
	plain := newFixture()
	tracked := newFixture()

	input := ringInput(400)
	r1, err := plain.stage.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	input.Options.EnablePerformanceTracking = true
	r2, err := tracked.stage.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if !bytes.Equal(r1.EncodedBytes, r2.EncodedBytes) {
		t.Error("tracking must not change the encoded output")
	}
	if r2.Metrics == nil {
		t.Fatal("expected metrics when tracking is on")
	}
	if r2.Metrics.OutputSize != 400 {
		t.Errorf("expected output size 400, got %d", r2.Metrics.OutputSize)
	}
	if want := int64(4 * (400*400 + 200*100)); r2.Metrics.EstimatedMemoryBytes != want {
		t.Errorf("expected memory estimate %d, got %d", want, r2.Metrics.EstimatedMemoryBytes)
	}
}

func TestExecute_CutoutUsesCacheAcrossRenders(t *testing.T) {
	f := newFixture()
	cache := memcache.New()
	loads := 0

	input := ringInput(400)
	input.Flag = avatar.FlagDescriptor{ID: "rainbow", ImageRef: "rainbow.png", AspectRatio: 1.5}
	input.Options.Presentation = avatar.PresentationCutout
	input.Cache = cache
	input.FlagLoader = func(ctx context.Context, ref string) (image.Image, error) {
		loads++
		return testPhoto(6, 4), nil
	}

	for i := 0; i < 2; i++ {
		if _, err := f.stage.Execute(context.Background(), input); err != nil {
			t.Fatalf("Execute %d: %v", i, err)
		}
	}
	if loads != 1 {
		t.Errorf("expected one flag load across two renders, got %d", loads)
	}
	if cache.Len() != 1 {
		t.Errorf("expected one cached bitmap, got %d", cache.Len())
	}

	// Both renders must have drawn the flag: photo + flag per render.
	for _, surface := range f.factory.Created {
		if got := len(surface.OpsNamed("drawImageScaled")); got != 2 {
			t.Errorf("expected photo and flag draws, got %d", got)
		}
	}
}

func TestExecute_CutoutPreDecodedBitmapSeedsCache(t *testing.T) {
	f := newFixture()
	cache := memcache.New()

	input := ringInput(400)
	input.Flag = avatar.FlagDescriptor{ID: "rainbow", ImageRef: "rainbow.png"}
	input.Options.Presentation = avatar.PresentationCutout
	input.Cache = cache
	input.FlagBitmap = testPhoto(6, 4)

	if _, err := f.stage.Execute(context.Background(), input); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if _, ok := cache.Get("rainbow.png"); !ok {
		t.Error("pre-decoded bitmap must be inserted into the cache")
	}
}

func TestExecute_CutoutWithoutBitmapRendersBorderless(t *testing.T) {
	f := newFixture()
	input := ringInput(400)
	input.Flag = avatar.FlagDescriptor{ID: "rainbow", ImageRef: "rainbow.png"}
	input.Options.Presentation = avatar.PresentationCutout

	if _, err := f.stage.Execute(context.Background(), input); err != nil {
		t.Fatalf("missing bitmap must downgrade, not fail: %v", err)
	}
	surface := f.surface(t)
	if got := len(surface.OpsNamed("drawImageScaled")); got != 1 {
		t.Errorf("expected only the photo draw, got %d", got)
	}
}

func TestExecute_CutoutLoaderFailureIsFatal(t *testing.T) {
	f := newFixture()
	input := ringInput(400)
	input.Flag = avatar.FlagDescriptor{ID: "rainbow", ImageRef: "rainbow.png"}
	input.Options.Presentation = avatar.PresentationCutout
	input.FlagLoader = func(ctx context.Context, ref string) (image.Image, error) {
		return nil, errors.New("corrupt data")
	}

	_, err := f.stage.Execute(context.Background(), input)
	var derr *avatar.DecodeFailureError
	if !errors.As(err, &derr) {
		t.Fatalf("expected DecodeFailureError, got %v", err)
	}
	if derr.Source != "rainbow.png" {
		t.Errorf("error must name the flag reference, got %q", derr.Source)
	}
}

func TestExecute_CancelledContext(t *testing.T) {
	f := newFixture()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := f.stage.Execute(ctx, ringInput(400)); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestExecute_DebugSinkCapturesArtifacts(t *testing.T) {
	factory := mocks.NewSurfaceFactory()
	resampler := &mocks.Resampler{}
	sink := mocks.NewDebugSink(true)
	stage := NewStage(factory, resampler, sink, logger.NewNoop())

	input := ringInput(400)
	input.Photo = testPhoto(2000, 1000)
	input.Options.EnablePerformanceTracking = true

	if _, err := stage.Execute(context.Background(), input); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if sink.LayersJSON == nil {
		t.Error("expected layers JSON saved")
	}
	if sink.Downsampled == nil {
		t.Error("expected downsampled bitmap saved")
	}
	if sink.Composed == nil {
		t.Error("expected composed image saved")
	}
	if sink.MetricsJSON == nil {
		t.Error("expected metrics JSON saved")
	}
}
