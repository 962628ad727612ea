package render

import (
	"strings"
	"testing"

	"github.com/wippyai/rangedump/layout"
)

func row(eol bool, cells map[layout.Column][]layout.Fragment) layout.Row {
	return layout.Row{Cells: cells, EOL: eol}
}

func frag(text, color string) layout.Fragment {
	return layout.Fragment{Text: text, Color: color}
}

var testColumns = []layout.Column{layout.ColOffset, layout.ColHexDump, layout.ColRangeName}

func TestRender_Plain(t *testing.T) {
	rows := []layout.Row{
		row(true, map[layout.Column][]layout.Fragment{
			layout.ColOffset:    {frag("00000000 ", "")},
			layout.ColHexDump:   {frag("61 62 ", "red"), frag("63 64 ", "blue")},
			layout.ColRangeName: {frag("a, ", "red"), frag("b, ", "blue")},
		}),
	}
	got := Render(rows, Config{Format: FormatPlain, Columns: testColumns})
	want := "00000000 61 62 63 64 a, b, \n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRender_ColumnOrder(t *testing.T) {
	// Cell insertion order must not matter; columns render in display order,
	// synthetic header cells first.
	rows := []layout.Row{
		row(true, map[layout.Column][]layout.Fragment{
			layout.ColRangeName:   {frag("name", "")},
			layout.ColOffset:      {frag("off ", "")},
			layout.ColInformation: {frag("TITLE ", "")},
		}),
	}
	got := Render(rows, Config{Format: FormatPlain, Columns: testColumns})
	if got != "TITLE off name\n" {
		t.Errorf("got %q", got)
	}
}

func TestRender_EOL(t *testing.T) {
	rows := []layout.Row{
		row(false, map[layout.Column][]layout.Fragment{layout.ColOffset: {frag("a", "")}}),
		row(true, map[layout.Column][]layout.Fragment{layout.ColOffset: {frag("b", "")}}),
	}
	got := Render(rows, Config{Format: FormatPlain, Columns: testColumns})
	if got != "ab\n" {
		t.Errorf("got %q, want rows joined until the line-terminated one", got)
	}
}

func TestRender_ANSI(t *testing.T) {
	rows := []layout.Row{
		row(true, map[layout.Column][]layout.Fragment{
			layout.ColHexDump: {frag("61 ", "red"), frag("62 ", ""), frag("63 ", "nosuch")},
		}),
	}
	got := Render(rows, Config{Format: FormatANSI, Columns: testColumns})
	if !strings.Contains(got, "\x1b[31m61 \x1b[0m") {
		t.Errorf("got %q, want red escape around the first fragment", got)
	}
	// Colorless and unknown-color fragments stay unstyled.
	if !strings.Contains(got, "\x1b[0m62 63 \n") {
		t.Errorf("got %q, want unstyled trailing fragments", got)
	}
}

func TestRender_PaletteOverride(t *testing.T) {
	palette := Palette{
		FormatANSI: {"red": "\x1b[91m"},
		FormatHTML: {"red": "#ff4444"},
	}
	rows := []layout.Row{
		row(true, map[layout.Column][]layout.Fragment{
			layout.ColHexDump: {frag("ff ", "red")},
		}),
	}

	got := Render(rows, Config{Format: FormatANSI, Palette: palette, Columns: testColumns})
	if !strings.Contains(got, "\x1b[91mff \x1b[0m") {
		t.Errorf("ansi = %q, want palette escape instead of the builtin", got)
	}

	got = Render(rows, Config{Format: FormatHTML, Palette: palette, Columns: testColumns})
	if !strings.Contains(got, `<span style="color:#ff4444">ff </span>`) {
		t.Errorf("html = %q, want palette color", got)
	}
}

func TestRender_HTML(t *testing.T) {
	rows := []layout.Row{
		row(true, map[layout.Column][]layout.Fragment{
			layout.ColHexDump:   {frag("3c 26 ", "red")},
			layout.ColRangeName: {frag("<tag> ", "")},
		}),
	}
	got := Render(rows, Config{Format: FormatHTML, Columns: testColumns})
	if !strings.HasPrefix(got, htmlPrologue) || !strings.HasSuffix(got, htmlEpilogue) {
		t.Errorf("got %q, want pre wrapper", got)
	}
	if !strings.Contains(got, `<span style="color:red">3c 26 </span>`) {
		t.Errorf("got %q, want literal color name carried into the span", got)
	}
	// Colorless fragments default to white; markup in text is escaped.
	if !strings.Contains(got, `<span style="color:white">&lt;tag&gt; </span>`) {
		t.Errorf("got %q, want escaped white span", got)
	}
}

func TestCycler(t *testing.T) {
	c := NewCycler()
	var got []string
	for i := 0; i < len(CyclicColors)+1; i++ {
		got = append(got, c.Next())
	}
	for i, want := range CyclicColors {
		if got[i] != want {
			t.Errorf("color %d = %q, want %q", i, got[i], want)
		}
	}
	if got[len(CyclicColors)] != CyclicColors[0] {
		t.Errorf("cycle did not wrap: %q", got[len(CyclicColors)])
	}

	c.Reset()
	if next := c.Next(); next != CyclicColors[0] {
		t.Errorf("after Reset got %q, want %q", next, CyclicColors[0])
	}
}

func TestCycler_CustomColors(t *testing.T) {
	c := NewCycler("one", "two")
	if c.Next() != "one" || c.Next() != "two" || c.Next() != "one" {
		t.Error("custom color cycle broken")
	}
}
