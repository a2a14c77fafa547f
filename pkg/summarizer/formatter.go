package summarizer

import (
	"fmt"
	"strings"
)

// Formatter defines the interface for formatting a Summary.
type Formatter interface {
	// Format converts a Summary to a formatted string.
	Format(summary *Summary) string
}

// FormatFunc is a function adapter for the Formatter interface.
type FormatFunc func(summary *Summary) string

// Format implements the Formatter interface.
func (f FormatFunc) Format(summary *Summary) string {
	return f(summary)
}

// Markdown formats a Summary as a markdown document.
func Markdown(summary *Summary) string {
	var b strings.Builder

	b.WriteString("# Render Summary\n\n")
	b.WriteString(fmt.Sprintf("Generated: %s\n\n", summary.GeneratedAt.Format("2006-01-02 15:04:05")))

	b.WriteString("## Photo\n\n")
	b.WriteString(fmt.Sprintf("- Path: %s\n", summary.Photo.Path))
	b.WriteString(fmt.Sprintf("- Size: %dx%d\n\n", summary.Photo.Width, summary.Photo.Height))

	b.WriteString("## Settings\n\n")
	b.WriteString(fmt.Sprintf("- Flag: %s\n", summary.Settings.FlagID))
	b.WriteString(fmt.Sprintf("- Presentation: %s\n", summary.Settings.Presentation))
	b.WriteString(fmt.Sprintf("- Output size: %dpx\n", summary.Settings.OutputSize))
	b.WriteString(fmt.Sprintf("- Border thickness: %.1f%%\n\n", summary.Settings.ThicknessPercent))

	b.WriteString("## Output\n\n")
	b.WriteString(fmt.Sprintf("- Path: %s\n", summary.Output.Path))
	b.WriteString(fmt.Sprintf("- Bytes: %d\n", summary.Output.ByteSize))

	if m := summary.Metrics; m != nil {
		b.WriteString("\n## Performance\n\n")
		b.WriteString(fmt.Sprintf("- Total: %d ms\n", m.TotalMs))
		b.WriteString(fmt.Sprintf("- Image load: %d ms\n", m.ImageLoadMs))
		b.WriteString(fmt.Sprintf("- Render: %d ms\n", m.RenderMs))
		b.WriteString(fmt.Sprintf("- Export: %d ms\n", m.ExportMs))
		if m.WasDownsampled {
			b.WriteString(fmt.Sprintf("- Downsampled: yes (ratio %.3f)\n", m.DownsampleRatio))
		} else {
			b.WriteString("- Downsampled: no\n")
		}
		b.WriteString(fmt.Sprintf("- Estimated memory: %d bytes\n", m.EstimatedMemoryBytes))
	}

	return b.String()
}
