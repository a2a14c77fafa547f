package pattern

import (
	"errors"
	"math"
	"testing"

	"github.com/ravendarque/beyond-borders/pkg/avatar"
)

var rainbow = []string{"#E40303", "#FF8C00", "#FFED00", "#008026", "#24408E", "#732982"}

func TestRingBands_TileAnnulusExactly(t *testing.T) {
	bands, err := RingBands(100, 0, []string{"#F00", "#0F0", "#00F"})
	if err != nil {
		t.Fatalf("RingBands: %v", err)
	}
	if len(bands) != 3 {
		t.Fatalf("expected 3 bands, got %d", len(bands))
	}

	// Equal weights over 100 pixels: floor+remainder allocation.
	wantThickness := []float64{33, 33, 34}
	for i, b := range bands {
		if b.Thickness() != wantThickness[i] {
			t.Errorf("band %d thickness: expected %v, got %v", i, wantThickness[i], b.Thickness())
		}
	}

	if bands[0].Outer != 100 {
		t.Errorf("first band outer: expected 100, got %v", bands[0].Outer)
	}
	if bands[len(bands)-1].Inner != 0 {
		t.Errorf("last band inner: expected 0, got %v", bands[len(bands)-1].Inner)
	}
	for i := 1; i < len(bands); i++ {
		if bands[i].Outer != bands[i-1].Inner {
			t.Errorf("gap between bands %d and %d: %v vs %v", i-1, i, bands[i-1].Inner, bands[i].Outer)
		}
	}
}

func TestRingBands_NormalizesColors(t *testing.T) {
	bands, err := RingBands(60, 40, []string{"f00", "not-a-color", "#0f0"})
	if err != nil {
		t.Fatalf("RingBands: %v", err)
	}
	if len(bands) != 2 {
		t.Fatalf("invalid entries must be dropped, got %d bands", len(bands))
	}
	if bands[0].Hex != "#FF0000" || bands[1].Hex != "#00FF00" {
		t.Errorf("expected normalized hex, got %q %q", bands[0].Hex, bands[1].Hex)
	}
}

func TestRingBands_EmptyPalette(t *testing.T) {
	_, err := RingBands(100, 50, nil)
	var perr *avatar.PatternUnavailableError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PatternUnavailableError, got %v", err)
	}

	_, err = RingBands(100, 50, []string{"red", "blue"})
	if !errors.As(err, &perr) {
		t.Fatalf("all-invalid palette: expected PatternUnavailableError, got %v", err)
	}
}

func TestRingBands_ZeroAnnulus(t *testing.T) {
	_, err := RingBands(50, 50, rainbow)
	var perr *avatar.PatternUnavailableError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PatternUnavailableError, got %v", err)
	}
	if perr.Presentation != avatar.PresentationRing {
		t.Errorf("expected ring presentation in error, got %v", perr.Presentation)
	}
}

func TestSegmentWedges(t *testing.T) {
	wedges, err := SegmentWedges([]string{"#F00", "#0F0", "#00F", "#FF0"}, 0)
	if err != nil {
		t.Fatalf("SegmentWedges: %v", err)
	}
	if len(wedges) != 4 {
		t.Fatalf("expected 4 wedges, got %d", len(wedges))
	}

	if wedges[0].StartDeg != -90 {
		t.Errorf("first wedge must start at 12 o'clock (-90deg), got %v", wedges[0].StartDeg)
	}
	for i, w := range wedges {
		if span := w.EndDeg - w.StartDeg; span != 90 {
			t.Errorf("wedge %d span: expected 90, got %v", i, span)
		}
		if i > 0 && wedges[i].StartDeg != wedges[i-1].EndDeg {
			t.Errorf("wedge %d does not abut previous: %v vs %v", i, wedges[i].StartDeg, wedges[i-1].EndDeg)
		}
	}
	if last := wedges[3].EndDeg; last != 270 {
		t.Errorf("wedges must close the full circle at 270, got %v", last)
	}
}

func TestSegmentWedges_Rotation(t *testing.T) {
	wedges, err := SegmentWedges([]string{"#F00", "#0F0"}, 45)
	if err != nil {
		t.Fatalf("SegmentWedges: %v", err)
	}
	if wedges[0].StartDeg != -45 {
		t.Errorf("rotation 45: expected start -45, got %v", wedges[0].StartDeg)
	}

	// Rotation is taken modulo a full turn.
	wedges, err = SegmentWedges([]string{"#F00", "#0F0"}, 360+45)
	if err != nil {
		t.Fatalf("SegmentWedges: %v", err)
	}
	if wedges[0].StartDeg != -45 {
		t.Errorf("rotation 405: expected start -45, got %v", wedges[0].StartDeg)
	}
}

func TestComputeCutout_OffsetMapping(t *testing.T) {
	flag := avatar.FlagDescriptor{ID: "rainbow", ImageRef: "rainbow.png", AspectRatio: 1.5}
	diameter := 400
	overflow := 400*1.5 - 400 // 200

	tests := []struct {
		offset      float64
		wantPercent float64
		wantDX      float64
	}{
		{0, 50, 0},
		{50, 100, -overflow / 2},
		{-50, 0, overflow / 2},
		{25, 75, -overflow / 4},
	}
	for _, tt := range tests {
		got, err := ComputeCutout(flag, diameter, tt.offset)
		if err != nil {
			t.Fatalf("ComputeCutout(%v): %v", tt.offset, err)
		}
		if got.XPercent != tt.wantPercent {
			t.Errorf("offset %v: expected XPercent %v, got %v", tt.offset, tt.wantPercent, got.XPercent)
		}
		if math.Abs(got.DX-tt.wantDX) > 1e-9 {
			t.Errorf("offset %v: expected DX %v, got %v", tt.offset, tt.wantDX, got.DX)
		}
		if got.Width != 600 || got.Height != 400 {
			t.Errorf("offset %v: expected 600x400, got %vx%v", tt.offset, got.Width, got.Height)
		}
	}
}

func TestComputeCutout_ClampsOffset(t *testing.T) {
	flag := avatar.FlagDescriptor{ImageRef: "x.png", AspectRatio: 2}
	got, err := ComputeCutout(flag, 100, 200)
	if err != nil {
		t.Fatalf("ComputeCutout: %v", err)
	}
	if got.XPercent != 100 {
		t.Errorf("expected clamp to 100, got %v", got.XPercent)
	}
}

func TestComputeCutout_DefaultAspectRatio(t *testing.T) {
	flag := avatar.FlagDescriptor{ImageRef: "x.png"}
	got, err := ComputeCutout(flag, 200, 0)
	if err != nil {
		t.Fatalf("ComputeCutout: %v", err)
	}
	if got.Width != 300 {
		t.Errorf("unknown aspect ratio must default to 3:2, got width %v", got.Width)
	}
}

func TestComputeCutout_Errors(t *testing.T) {
	var perr *avatar.PatternUnavailableError
	if _, err := ComputeCutout(avatar.FlagDescriptor{ID: "plain"}, 100, 0); !errors.As(err, &perr) {
		t.Fatalf("missing image ref: expected PatternUnavailableError, got %v", err)
	}
	if perr.FlagID != "plain" {
		t.Errorf("expected flag ID carried in error, got %q", perr.FlagID)
	}
	if _, err := ComputeCutout(avatar.FlagDescriptor{ImageRef: "x.png"}, 0, 0); !errors.As(err, &perr) {
		t.Fatalf("zero diameter: expected PatternUnavailableError, got %v", err)
	}
}
