// Package render emits a laid-out row grid as text in one of three
// formats: plain, ANSI-escaped, or HTML. Symbolic color names resolve
// through an optional caller palette keyed by (format, name), falling back
// to a built-in escape table for terminal output. The package also owns
// the fallback color machinery for ranges without an explicit color.
package render

import (
	"html"
	"strings"

	"github.com/wippyai/rangedump/layout"
)

// Format selects the output back-end.
type Format string

const (
	FormatPlain Format = "plain"
	FormatANSI  Format = "ansi"
	FormatHTML  Format = "html"
)

// Config controls rendering of a row grid.
type Config struct {
	Format  Format
	Palette Palette         // optional (format, color) overrides
	Columns []layout.Column // data column display order
}

const (
	htmlPrologue = "<pre style=\"font-family:monospace\">\n"
	htmlEpilogue = "</pre>\n"
)

// Render walks the grid row by row and returns the rendered text. Cells
// are emitted in column display order, the synthetic header and ruler
// columns first; a newline follows every row marked line-terminated.
func Render(rows []layout.Row, cfg Config) string {
	cols := make([]layout.Column, 0, len(cfg.Columns)+2)
	cols = append(cols, layout.ColInformation, layout.ColRuler)
	cols = append(cols, cfg.Columns...)

	var b strings.Builder
	if cfg.Format == FormatHTML {
		b.WriteString(htmlPrologue)
	}
	for _, row := range rows {
		for _, col := range cols {
			for _, frag := range row.Cells[col] {
				writeFragment(&b, frag, cfg)
			}
		}
		if row.EOL {
			b.WriteByte('\n')
		}
	}
	if cfg.Format == FormatHTML {
		b.WriteString(htmlEpilogue)
	}
	return b.String()
}

func writeFragment(b *strings.Builder, f layout.Fragment, cfg Config) {
	switch cfg.Format {
	case FormatANSI:
		esc, ok := cfg.Palette.lookup(FormatANSI, f.Color)
		if !ok {
			esc, ok = ansiEscapes[f.Color]
		}
		if !ok {
			// Unstyled: no escape known for this name.
			b.WriteString(f.Text)
			return
		}
		b.WriteString(esc)
		b.WriteString(f.Text)
		b.WriteString(ansiReset)
	case FormatHTML:
		color, ok := cfg.Palette.lookup(FormatHTML, f.Color)
		if !ok {
			color = f.Color
		}
		if color == "" {
			color = htmlDefaultColor
		}
		b.WriteString(`<span style="color:`)
		b.WriteString(color)
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(f.Text))
		b.WriteString(`</span>`)
	default:
		b.WriteString(f.Text)
	}
}
