package layout

import (
	"fmt"
	"strings"

	"github.com/wippyai/rangedump"
)

// hsplitter packs gathered ranges into shared fixed-width rows. A row stays
// open until DataWidth bytes have been carved into it or the input ends;
// bit-field sub-rows queue up while a row is open and flush right after it
// closes.
type hsplitter struct {
	cfg  Config
	rows []Row

	row      Row
	open     bool
	hasBytes bool // offset cells emitted for the current row
	rowBytes int
	roomLeft int

	laidOut int // ordinary bytes laid out so far (cumulative offset)

	src    rangedump.Gathered // most recent ordinary range
	srcCum int

	pending []Row
}

func splitHorizontal(rows []Row, ranges []rangedump.Gathered, cfg Config) []Row {
	s := &hsplitter{cfg: cfg, rows: rows, roomLeft: cfg.DataWidth}
	for i := range ranges {
		s.push(&ranges[i])
	}
	s.closeRow()
	return s.rows
}

func (s *hsplitter) push(g *rangedump.Gathered) {
	switch {
	case g.Comment:
		if s.cfg.ShowComments && s.cfg.ShowNames {
			s.ensureRow()
			s.row.add(ColRangeName, `"`+s.cfg.clipName(g.Name)+`" `, g.Color)
		}
	case g.IsBitfield():
		if !s.cfg.ShowBitfields {
			return
		}
		row := DecodeBitfield(*g, s.src, s.srcCum, s.cfg)
		if s.open {
			s.pending = append(s.pending, row)
		} else {
			s.rows = append(s.rows, row)
		}
	default:
		s.ordinary(g)
	}
}

func (s *hsplitter) ordinary(g *rangedump.Gathered) {
	s.src = *g
	s.srcCum = s.laidOut

	if len(g.Data) == 0 {
		if s.cfg.ShowZeroSize && s.cfg.ShowNames {
			s.ensureRow()
			s.row.add(ColRangeName, "<"+s.cfg.clipName(g.Name)+"> ", g.Color)
		}
		return
	}

	rest := g.Data
	consumed := 0
	for len(rest) > 0 {
		s.ensureRow()
		if !s.hasBytes {
			s.openOffsets(g.Offset + consumed)
		}
		n := s.roomLeft
		if n > len(rest) {
			n = len(rest)
		}
		s.runCells(g, rest[:n])
		if s.cfg.ShowNames {
			s.row.add(ColRangeName, s.cfg.clipName(g.Name)+", ", g.Color)
		}
		if consumed == 0 && s.cfg.ShowInfo && g.Info != "" {
			s.row.add(ColUserInfo, "("+g.Info+") ", g.Color)
		}
		rest = rest[n:]
		consumed += n
		s.laidOut += n
		s.rowBytes += n
		s.roomLeft -= n
		if s.roomLeft == 0 {
			s.closeRow()
		}
	}
}

func (s *hsplitter) ensureRow() {
	if !s.open {
		s.row = newRow()
		s.open = true
	}
}

// openOffsets emits the offset cells for a freshly started row: the
// absolute buffer position of its first byte and the cumulative count of
// bytes laid out before it.
func (s *hsplitter) openOffsets(offset int) {
	if s.cfg.ShowOffset {
		s.row.add(ColOffset, s.cfg.offsetCell(offset), "")
	}
	if s.cfg.ShowCumulative {
		s.row.add(ColCumulativeOffset, s.cfg.offsetCell(s.laidOut), "")
	}
	s.hasBytes = true
}

func (s *hsplitter) runCells(g *rangedump.Gathered, run []byte) {
	if s.cfg.ShowHex {
		var b strings.Builder
		for _, c := range run {
			fmt.Fprintf(&b, "%02x ", c)
		}
		s.row.add(ColHexDump, b.String(), g.Color)
	}
	if s.cfg.ShowDec {
		var b strings.Builder
		for _, c := range run {
			fmt.Fprintf(&b, "%03d ", c)
		}
		s.row.add(ColDecDump, b.String(), g.Color)
	}
	if s.cfg.ShowASCII {
		var b strings.Builder
		for _, c := range run {
			b.WriteString(asciiChar(c))
		}
		s.row.add(ColASCIIDump, b.String(), g.Color)
	}
}

func (s *hsplitter) closeRow() {
	if s.open {
		s.padRow()
		s.row.EOL = true
		s.rows = append(s.rows, s.row)
		s.open = false
	}
	if len(s.pending) > 0 {
		s.rows = append(s.rows, s.pending...)
		s.pending = nil
	}
	s.roomLeft = s.cfg.DataWidth
	s.rowBytes = 0
	s.hasBytes = false
}

// padRow fills the dump cells of a closing row out to their full block
// widths so columns stay aligned across rows of different content length.
func (s *hsplitter) padRow() {
	if !s.hasBytes {
		if s.cfg.ShowOffset {
			s.row.add(ColOffset, strings.Repeat(" ", offsetWidth+1), "")
		}
		if s.cfg.ShowCumulative {
			s.row.add(ColCumulativeOffset, strings.Repeat(" ", offsetWidth+1), "")
		}
	}
	missing := s.cfg.DataWidth - s.rowBytes
	if missing <= 0 {
		// Full row: only the ASCII block separator is still owed.
		if s.cfg.ShowASCII {
			s.row.add(ColASCIIDump, " ", "")
		}
		return
	}
	if s.cfg.ShowHex {
		s.row.add(ColHexDump, strings.Repeat(" ", 3*missing), "")
	}
	if s.cfg.ShowDec {
		s.row.add(ColDecDump, strings.Repeat(" ", 4*missing), "")
	}
	if s.cfg.ShowASCII {
		s.row.add(ColASCIIDump, strings.Repeat(" ", missing)+" ", "")
	}
}
