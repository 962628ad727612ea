package layout

import (
	"fmt"
	"strings"

	"github.com/wippyai/rangedump"
)

// Bit spans are zero-extended to 32 bits and shown against a fixed 4-byte
// canvas.
const (
	bitCanvasBytes = 4
	bitCanvasBits  = 32
)

// DecodeBitfield renders one bit-field range as its own display row. The
// range's Data holds the bytes of source, the ordinary range it re-views;
// cum is the cumulative byte count at source's first byte. A source too
// short for the requested span degrades to "?" dump cells instead of
// failing; the identity cells render normally either way.
func DecodeBitfield(g, source rangedump.Gathered, cum int, cfg Config) Row {
	row := newRow()
	row.EOL = true

	// The dot prefix nests the row under its source range visually.
	name := "." + g.Name
	if cfg.ShowNames {
		if cfg.Vertical {
			row.add(ColRangeName, padTo(cfg.clipName(name)+",", cfg.MaxNameSize+2), g.Color)
		} else {
			row.add(ColRangeName, cfg.clipName(name)+", ", g.Color)
		}
	}
	if cfg.ShowBitfieldSource {
		row.add(ColBitfieldSource, padTo(cfg.clipName(source.Name), cfg.MaxNameSize+1), source.Color)
	}
	if cfg.ShowOffset {
		row.add(ColOffset, cfg.offsetCell(source.Offset), "")
	}
	if cfg.ShowCumulative {
		row.add(ColCumulativeOffset, cfg.offsetCell(cum), "")
	}

	spec, err := rangedump.ParseBitSpec(g.Bits)
	if err != nil || len(g.Data) < (spec.Offset()+spec.Width+7)/8 {
		if cfg.ShowHex {
			row.add(ColHexDump, "? ", g.Color)
		}
		if cfg.ShowDec {
			row.add(ColDecDump, "? ", g.Color)
		}
		if cfg.ShowASCII {
			row.add(ColASCIIDump, "? ", g.Color)
		}
		return row
	}

	value := extractBits(g.Data, spec.Offset(), spec.Width)
	canvas := [bitCanvasBytes]byte{
		byte(value >> 24), byte(value >> 16), byte(value >> 8), byte(value),
	}
	unused := bitCanvasBytes - (spec.Width+7)/8

	if cfg.ShowHex {
		var b strings.Builder
		for i, c := range canvas {
			if i < unused {
				b.WriteString("-- ")
			} else {
				fmt.Fprintf(&b, "%02x ", c)
			}
		}
		row.add(ColHexDump, b.String(), g.Color)
		row.add(ColHexDump, dashedBinary(value, spec.Width)+" ", g.Color)
	}
	if cfg.ShowDec {
		var b strings.Builder
		for i, c := range canvas {
			if i < unused {
				b.WriteString("--- ")
			} else {
				fmt.Fprintf(&b, "%03d ", c)
			}
		}
		fmt.Fprintf(&b, "= %d ", value)
		row.add(ColDecDump, b.String(), g.Color)
	}
	if cfg.ShowASCII {
		var b strings.Builder
		for i, c := range canvas {
			if i < unused {
				b.WriteByte('-')
			} else {
				b.WriteString(asciiChar(c))
			}
		}
		b.WriteByte(' ')
		row.add(ColASCIIDump, b.String(), g.Color)
	}
	if cfg.ShowInfo && g.Info != "" {
		row.add(ColUserInfo, "("+g.Info+") ", g.Color)
	}
	return row
}

// extractBits reads width bits starting at bit offset off, where bit 0 is
// the most significant bit of byte 0, and returns them zero-extended.
func extractBits(data []byte, off, width int) uint32 {
	var v uint32
	for i := 0; i < width; i++ {
		bit := off + i
		v = v<<1 | uint32(data[bit/8]>>(7-bit%8)&1)
	}
	return v
}

// dashedBinary shows the extracted span right-aligned on the 32-bit
// canvas, unused positions dashed out.
func dashedBinary(v uint32, width int) string {
	var b strings.Builder
	for i := bitCanvasBits - 1; i >= 0; i-- {
		if i >= width {
			b.WriteByte('-')
		} else {
			b.WriteByte('0' + byte(v>>i&1))
		}
	}
	return b.String()
}
