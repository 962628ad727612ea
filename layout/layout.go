// Package layout turns gathered ranges into a column-aligned grid of
// display rows. Two orientations are supported: horizontal packs ranges
// across shared fixed-width rows, vertical gives every chunk of every
// range its own row. Bit-field ranges decode against their source range's
// bytes into standalone sub-rows.
package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wippyai/rangedump"
)

// Column identifies one display column of the row grid.
type Column string

const (
	ColOffset           Column = "OFFSET"
	ColCumulativeOffset Column = "CUMULATIVE_OFFSET"
	ColHexDump          Column = "HEX_DUMP"
	ColDecDump          Column = "DEC_DUMP"
	ColASCIIDump        Column = "ASCII_DUMP"
	ColRangeName        Column = "RANGE_NAME"
	ColUserInfo         Column = "USER_INFORMATION"
	ColBitfieldSource   Column = "BITFIELD_SOURCE"

	// Synthetic columns carrying the optional header and ruler lines.
	ColInformation Column = "INFORMATION"
	ColRuler       Column = "RULER"
)

// Fragment is one colored run of text inside a cell. An empty Color means
// the fragment renders unstyled.
type Fragment struct {
	Text  string
	Color string
}

// Row maps columns to ordered fragment lists. EOL marks the row as
// terminating a display line. Rows are append-only once emitted; later
// stages must not mutate them.
type Row struct {
	Cells map[Column][]Fragment
	EOL   bool
}

func newRow() Row {
	return Row{Cells: make(map[Column][]Fragment)}
}

func (r *Row) add(col Column, text, color string) {
	r.Cells[col] = append(r.Cells[col], Fragment{Text: text, Color: color})
}

// Config carries the engine's display decisions down to the splitter.
type Config struct {
	DataWidth   int // bytes per display row
	MaxNameSize int // range name truncation width

	Vertical      bool // one row per chunk instead of packed rows
	DecimalOffset bool // offsets in decimal instead of hex

	ShowOffset         bool
	ShowCumulative     bool
	ShowHex            bool
	ShowDec            bool
	ShowASCII          bool
	ShowNames          bool
	ShowInfo           bool
	ShowBitfields      bool
	ShowBitfieldSource bool
	ShowComments       bool
	ShowZeroSize       bool
	ShowHeader         bool
	ShowRuler          bool
}

// Columns returns the enabled data columns in display order for the
// configured orientation. Vertical rows lead with the range name.
func (c Config) Columns() []Column {
	var cols []Column
	add := func(col Column, on bool) {
		if on {
			cols = append(cols, col)
		}
	}
	if c.Vertical {
		add(ColRangeName, c.ShowNames)
		add(ColBitfieldSource, c.ShowBitfieldSource)
		add(ColOffset, c.ShowOffset)
		add(ColCumulativeOffset, c.ShowCumulative)
		add(ColHexDump, c.ShowHex)
		add(ColDecDump, c.ShowDec)
		add(ColASCIIDump, c.ShowASCII)
		add(ColUserInfo, c.ShowInfo)
		return cols
	}
	add(ColOffset, c.ShowOffset)
	add(ColCumulativeOffset, c.ShowCumulative)
	add(ColHexDump, c.ShowHex)
	add(ColDecDump, c.ShowDec)
	add(ColASCIIDump, c.ShowASCII)
	add(ColRangeName, c.ShowNames)
	add(ColBitfieldSource, c.ShowBitfieldSource)
	add(ColUserInfo, c.ShowInfo)
	return cols
}

// Split lays gathered ranges out as display rows for the configured
// orientation, header and ruler rows first.
func Split(ranges []rangedump.Gathered, cfg Config) []Row {
	var rows []Row
	if cfg.ShowHeader {
		rows = append(rows, headerRow(cfg))
	}
	if cfg.ShowRuler {
		rows = append(rows, rulerRow(cfg))
	}
	if cfg.Vertical {
		return splitVertical(rows, ranges, cfg)
	}
	return splitHorizontal(rows, ranges, cfg)
}

// blockWidth returns the fixed character width of a column block including
// its trailing separator space, or 0 for variable-width columns.
func (c Config) blockWidth(col Column) int {
	switch col {
	case ColOffset, ColCumulativeOffset:
		return offsetWidth + 1
	case ColHexDump:
		return 3 * c.DataWidth
	case ColDecDump:
		return 4 * c.DataWidth
	case ColASCIIDump:
		return c.DataWidth + 1
	case ColRangeName:
		if c.Vertical {
			return c.MaxNameSize + 2
		}
	case ColUserInfo:
		if c.Vertical {
			return c.MaxNameSize + 1
		}
	case ColBitfieldSource:
		return c.MaxNameSize + 1
	}
	return 0
}

const offsetWidth = 8

func (c Config) offsetCell(n int) string {
	if c.DecimalOffset {
		return fmt.Sprintf("%08d ", n)
	}
	return fmt.Sprintf("%08x ", n)
}

// clipName truncates a range name to the configured maximum.
func (c Config) clipName(name string) string {
	if len(name) > c.MaxNameSize {
		return name[:c.MaxNameSize]
	}
	return name
}

// padTo truncates text to fit a block of w characters and pads it with
// spaces, always leaving at least one trailing separator space.
func padTo(text string, w int) string {
	if len(text) > w-1 {
		text = text[:w-1]
	}
	return text + strings.Repeat(" ", w-len(text))
}

// Bytes below this value render as '.' in ASCII views.
const printableFloor = 30

func asciiChar(b byte) string {
	if b < printableFloor {
		return "."
	}
	return string(rune(b))
}

// headerRow builds the optional column-title line. Titles live in the
// synthetic INFORMATION cell, each padded to its column's block width.
func headerRow(cfg Config) Row {
	row := newRow()
	row.EOL = true
	for _, col := range cfg.Columns() {
		title := string(col)
		if w := cfg.blockWidth(col); w > 0 {
			title = padTo(title, w)
		} else {
			title += " "
		}
		row.add(ColInformation, title, "")
	}
	return row
}

// rulerRow builds the optional byte-position marker line: a hex nibble
// cycle under the hex dump, decimal digit cycles under the decimal and
// ASCII dumps, blank padding elsewhere.
func rulerRow(cfg Config) Row {
	row := newRow()
	row.EOL = true
	for _, col := range cfg.Columns() {
		var b strings.Builder
		switch col {
		case ColHexDump:
			for i := 0; i < cfg.DataWidth; i++ {
				fmt.Fprintf(&b, "%2x ", i%16)
			}
		case ColDecDump:
			for i := 0; i < cfg.DataWidth; i++ {
				fmt.Fprintf(&b, "%3d ", i%10)
			}
		case ColASCIIDump:
			for i := 0; i < cfg.DataWidth; i++ {
				b.WriteString(strconv.Itoa(i % 10))
			}
			b.WriteByte(' ')
		default:
			b.WriteString(strings.Repeat(" ", cfg.blockWidth(col)))
		}
		row.add(ColRuler, b.String(), "")
	}
	return row
}
