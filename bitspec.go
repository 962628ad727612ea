package rangedump

import (
	"fmt"
	"strconv"
)

// BitSpec addresses a span of bits inside a range's bytes. The textual
// grammar is "[X<n>][x<n>]b<n>": an optional byte offset, an optional
// additional bit offset, and the span width in bits. "X2x3b5" reads five
// bits starting at bit 19 (2*8+3).
type BitSpec struct {
	ByteOff int
	BitOff  int
	Width   int
}

// Offset returns the effective bit offset from the start of the data.
func (s BitSpec) Offset() int { return s.ByteOff*8 + s.BitOff }

// bitSpecWidthMax is the decode canvas: extracted spans are zero-extended
// to 32 bits, so wider widths are clamped.
const bitSpecWidthMax = 32

// IsBitSpec reports whether spec matches the bit-field grammar.
func IsBitSpec(spec string) bool {
	_, err := ParseBitSpec(spec)
	return err == nil
}

// ParseBitSpec parses the textual bit-field grammar. The width defaults
// to 1 when 'b' carries no digits, offsets default to 0, and the width is
// clamped to 32.
func ParseBitSpec(spec string) (BitSpec, error) {
	out := BitSpec{Width: 1}
	s := spec

	var err error
	if len(s) > 0 && s[0] == 'X' {
		out.ByteOff, s, err = bitSpecNum(s[1:], spec)
		if err != nil {
			return BitSpec{}, err
		}
	}
	if len(s) > 0 && s[0] == 'x' {
		out.BitOff, s, err = bitSpecNum(s[1:], spec)
		if err != nil {
			return BitSpec{}, err
		}
	}
	if len(s) == 0 || s[0] != 'b' {
		return BitSpec{}, fmt.Errorf("bit spec %q: missing width marker 'b'", spec)
	}
	s = s[1:]
	if len(s) > 0 {
		out.Width, s, err = bitSpecNum(s, spec)
		if err != nil {
			return BitSpec{}, err
		}
	}
	if len(s) != 0 {
		return BitSpec{}, fmt.Errorf("bit spec %q: trailing %q", spec, s)
	}
	if out.Width > bitSpecWidthMax {
		out.Width = bitSpecWidthMax
	}
	return out, nil
}

// bitSpecNum reads a leading decimal run from s. At least one digit is
// required: the marker letters never stand alone except 'b'.
func bitSpecNum(s, spec string) (int, string, error) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, "", fmt.Errorf("bit spec %q: expected digits", spec)
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, "", fmt.Errorf("bit spec %q: %w", spec, err)
	}
	return n, s[i:], nil
}
