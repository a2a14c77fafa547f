package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ravendarque/beyond-borders/pkg/avatar"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.FlagID != "rainbow" {
		t.Errorf("expected default flag rainbow, got %q", cfg.FlagID)
	}
	if cfg.OutputSize != 1024 {
		t.Errorf("expected default size 1024, got %d", cfg.OutputSize)
	}
	if cfg.ThicknessPercent != 10 {
		t.Errorf("expected default thickness 10, got %v", cfg.ThicknessPercent)
	}
	if cfg.Presentation != "ring" {
		t.Errorf("expected default presentation ring, got %q", cfg.Presentation)
	}
	if !cfg.Downsampling {
		t.Error("expected downsampling on by default")
	}
	if cfg.Environment != "minimal" {
		t.Errorf("expected minimal environment by default, got %q", cfg.Environment)
	}
}

func TestLoadFromFile(t *testing.T) {
	content := `photo: in.jpg
output: out.png
flag: transgender
position:
  x: 10
  y: -5
  zoom: 50
output_size: 512
presentation: segment
segment_rotation: 30
background: "#FFFFFF"
`
	path := writeTemp(t, "config.yaml", content)

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if cfg.PhotoPath != "in.jpg" || cfg.OutputPath != "out.png" {
		t.Errorf("paths not loaded: %+v", cfg)
	}
	if cfg.FlagID != "transgender" {
		t.Errorf("expected transgender, got %q", cfg.FlagID)
	}
	if cfg.Position.X != 10 || cfg.Position.Y != -5 || cfg.Position.Zoom != 50 {
		t.Errorf("position not loaded: %+v", cfg.Position)
	}
	if cfg.OutputSize != 512 {
		t.Errorf("expected 512, got %d", cfg.OutputSize)
	}
	// Untouched keys keep their defaults.
	if cfg.ThicknessPercent != 10 {
		t.Errorf("expected default thickness preserved, got %v", cfg.ThicknessPercent)
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	if _, err := LoadFromFile("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestToOrchestratorConfig(t *testing.T) {
	cfg := Defaults()
	cfg.PhotoPath = "in.jpg"
	cfg.Presentation = "cutout"
	cfg.FlagOffset = 25
	cfg.Background = "#F00"

	flag := avatar.FlagDescriptor{ID: "rainbow", ImageRef: "rainbow.png"}
	oc := cfg.ToOrchestratorConfig(flag)

	if oc.Presentation != avatar.PresentationCutout {
		t.Errorf("expected cutout presentation, got %v", oc.Presentation)
	}
	if oc.Flag.ID != "rainbow" || oc.FlagImagePath != "rainbow.png" {
		t.Errorf("flag not carried through: %+v", oc)
	}
	if oc.FlagOffsetPercent != 25 {
		t.Errorf("expected offset 25, got %v", oc.FlagOffsetPercent)
	}
	if oc.BackgroundColor != "#F00" {
		t.Errorf("expected background carried, got %q", oc.BackgroundColor)
	}
}

func TestLoadFlags(t *testing.T) {
	content := `flags:
  - id: rainbow
    colors: ["#E40303", "#FF8C00"]
    image: rainbow.png
    aspect_ratio: 1.5
    cutout_offset: 10
  - id: plain
`
	path := writeTemp(t, "flags.yaml", content)

	flags, err := LoadFlags(path)
	if err != nil {
		t.Fatalf("LoadFlags: %v", err)
	}
	if len(flags) != 2 {
		t.Fatalf("expected 2 flags, got %d", len(flags))
	}
	if flags[0].ID != "rainbow" || flags[0].ImageRef != "rainbow.png" {
		t.Errorf("descriptor not mapped: %+v", flags[0])
	}
	if flags[0].AspectRatio != 1.5 || flags[0].CutoutDefaultOffset != 10 {
		t.Errorf("numeric fields not mapped: %+v", flags[0])
	}
}

func TestLoadFlags_BadYAML(t *testing.T) {
	path := writeTemp(t, "flags.yaml", "flags: [not: {valid")
	if _, err := LoadFlags(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestFindFlag(t *testing.T) {
	catalog := []avatar.FlagDescriptor{{ID: "custom", Colors: []string{"#123456"}}}

	got, err := FindFlag(catalog, "custom")
	if err != nil || got.ID != "custom" {
		t.Errorf("expected catalog hit, got %+v, %v", got, err)
	}

	got, err = FindFlag(catalog, "transgender")
	if err != nil {
		t.Fatalf("expected builtin fallback: %v", err)
	}
	if len(got.Colors) != 5 {
		t.Errorf("expected 5 transgender stripes, got %d", len(got.Colors))
	}

	if _, err := FindFlag(catalog, "no-such-flag"); err == nil {
		t.Error("expected error for unknown flag")
	}
}

func TestFindFlag_CatalogShadowsBuiltin(t *testing.T) {
	catalog := []avatar.FlagDescriptor{{ID: "rainbow", Colors: []string{"#000000"}}}
	got, err := FindFlag(catalog, "rainbow")
	if err != nil {
		t.Fatalf("FindFlag: %v", err)
	}
	if len(got.Colors) != 1 {
		t.Errorf("catalog entry must shadow the builtin, got %d colors", len(got.Colors))
	}
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
