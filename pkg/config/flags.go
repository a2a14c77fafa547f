package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ravendarque/beyond-borders/pkg/avatar"
)

// FlagEntry is the YAML form of one catalog flag.
type FlagEntry struct {
	ID           string   `yaml:"id"`
	Colors       []string `yaml:"colors"`
	Image        string   `yaml:"image"`
	AspectRatio  float64  `yaml:"aspect_ratio"`
	CutoutOffset float64  `yaml:"cutout_offset"`
}

// flagFile is the YAML catalog document.
type flagFile struct {
	Flags []FlagEntry `yaml:"flags"`
}

// LoadFlags reads flag descriptors from a YAML catalog file. The catalog
// itself is maintained outside this repo; the descriptors are treated as
// read-only input from here on.
func LoadFlags(path string) ([]avatar.FlagDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc flagFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse flags file: %w", err)
	}

	descriptors := make([]avatar.FlagDescriptor, 0, len(doc.Flags))
	for _, entry := range doc.Flags {
		descriptors = append(descriptors, avatar.FlagDescriptor{
			ID:                  entry.ID,
			Colors:              entry.Colors,
			ImageRef:            entry.Image,
			AspectRatio:         entry.AspectRatio,
			CutoutDefaultOffset: entry.CutoutOffset,
		})
	}
	return descriptors, nil
}

// BuiltinFlags returns the stripe palettes bundled for use without a
// catalog file. Cutout mode needs a catalog entry with an image reference.
func BuiltinFlags() []avatar.FlagDescriptor {
	return []avatar.FlagDescriptor{
		{
			ID:     "rainbow",
			Colors: []string{"#E40303", "#FF8C00", "#FFED00", "#008026", "#24408E", "#732982"},
		},
		{
			ID:     "transgender",
			Colors: []string{"#5BCEFA", "#F5A9B8", "#FFFFFF", "#F5A9B8", "#5BCEFA"},
		},
		{
			ID:     "bisexual",
			Colors: []string{"#D60270", "#9B4F96", "#0038A8"},
		},
		{
			ID:     "nonbinary",
			Colors: []string{"#FCF434", "#FFFFFF", "#9C59D1", "#2C2C2C"},
		},
		{
			ID:     "lesbian",
			Colors: []string{"#D52D00", "#FF9A56", "#FFFFFF", "#D362A4", "#A30262"},
		},
		{
			ID:     "pansexual",
			Colors: []string{"#FF218C", "#FFD800", "#21B1FF"},
		},
	}
}

// FindFlag resolves a flag ID against catalog descriptors, falling back to
// the builtin palettes.
func FindFlag(catalog []avatar.FlagDescriptor, id string) (avatar.FlagDescriptor, error) {
	for _, f := range catalog {
		if f.ID == id {
			return f, nil
		}
	}
	for _, f := range BuiltinFlags() {
		if f.ID == id {
			return f, nil
		}
	}
	return avatar.FlagDescriptor{}, fmt.Errorf("unknown flag %q", id)
}
