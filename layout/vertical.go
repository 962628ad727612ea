package layout

import (
	"fmt"
	"strings"

	"github.com/wippyai/rangedump"
)

// splitVertical gives every gathered range its own row per DataWidth-sized
// chunk, each cell padded to a fixed width. Zero-length ranges collapse to
// a single name-only row; bit-field rows follow their source range
// directly.
func splitVertical(rows []Row, ranges []rangedump.Gathered, cfg Config) []Row {
	laidOut := 0
	var src rangedump.Gathered
	srcCum := 0

	for i := range ranges {
		g := &ranges[i]
		switch {
		case g.Comment:
			if cfg.ShowComments && cfg.ShowNames {
				rows = append(rows, annotationRow(`"`+cfg.clipName(g.Name)+`"`, g.Color, cfg))
			}
		case g.IsBitfield():
			if cfg.ShowBitfields {
				rows = append(rows, DecodeBitfield(*g, src, srcCum, cfg))
			}
		default:
			src = *g
			srcCum = laidOut
			if len(g.Data) == 0 {
				if cfg.ShowZeroSize && cfg.ShowNames {
					rows = append(rows, annotationRow("<"+cfg.clipName(g.Name)+">", g.Color, cfg))
				}
				continue
			}
			for start := 0; start < len(g.Data); start += cfg.DataWidth {
				end := start + cfg.DataWidth
				if end > len(g.Data) {
					end = len(g.Data)
				}
				rows = append(rows, chunkRow(g, start, g.Data[start:end], laidOut, cfg))
				laidOut += end - start
			}
		}
	}
	return rows
}

func annotationRow(name, color string, cfg Config) Row {
	row := newRow()
	row.EOL = true
	row.add(ColRangeName, padTo(name, cfg.MaxNameSize+2), color)
	return row
}

// chunkRow renders one DataWidth-or-smaller slice of an ordinary range with
// every enabled column present and padded.
func chunkRow(g *rangedump.Gathered, start int, chunk []byte, cum int, cfg Config) Row {
	row := newRow()
	row.EOL = true

	if cfg.ShowNames {
		row.add(ColRangeName, padTo(cfg.clipName(g.Name)+",", cfg.MaxNameSize+2), g.Color)
	}
	if cfg.ShowBitfieldSource {
		row.add(ColBitfieldSource, strings.Repeat(" ", cfg.MaxNameSize+1), "")
	}
	if cfg.ShowOffset {
		row.add(ColOffset, cfg.offsetCell(g.Offset+start), "")
	}
	if cfg.ShowCumulative {
		row.add(ColCumulativeOffset, cfg.offsetCell(cum), "")
	}
	if cfg.ShowHex {
		var b strings.Builder
		for _, c := range chunk {
			fmt.Fprintf(&b, "%02x ", c)
		}
		row.add(ColHexDump, b.String(), g.Color)
		if pad := cfg.DataWidth - len(chunk); pad > 0 {
			row.add(ColHexDump, strings.Repeat(" ", 3*pad), "")
		}
	}
	if cfg.ShowDec {
		var b strings.Builder
		for _, c := range chunk {
			fmt.Fprintf(&b, "%03d ", c)
		}
		row.add(ColDecDump, b.String(), g.Color)
		if pad := cfg.DataWidth - len(chunk); pad > 0 {
			row.add(ColDecDump, strings.Repeat(" ", 4*pad), "")
		}
	}
	if cfg.ShowASCII {
		var b strings.Builder
		for _, c := range chunk {
			b.WriteString(asciiChar(c))
		}
		row.add(ColASCIIDump, b.String(), g.Color)
		row.add(ColASCIIDump, strings.Repeat(" ", cfg.DataWidth-len(chunk))+" ", "")
	}
	if cfg.ShowInfo {
		info := ""
		if g.Info != "" {
			info = "(" + g.Info + ")"
		}
		row.add(ColUserInfo, padTo(info, cfg.MaxNameSize+1), g.Color)
	}
	return row
}
