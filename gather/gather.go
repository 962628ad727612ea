// Package gather walks a byte buffer against a range provider, producing
// the ordered gathered ranges the layout stage consumes. The walk is a
// single forward pass: ordinary ranges advance the cursor, comment and
// bit-field ranges never do.
package gather

import (
	"fmt"
	"strconv"

	"github.com/wippyai/rangedump"
	"github.com/wippyai/rangedump/errors"
)

// Options configure one walk.
type Options struct {
	// DisplaySize prefixes each ordinary range's resolved size to its
	// name, "<size>:<name>", for display purposes only.
	DisplaySize bool

	// WarnZeroSize emits an advisory for ordinary ranges that resolve to
	// zero bytes. Never fatal.
	WarnZeroSize bool

	// Warn receives advisory messages. When nil, advisories go to the
	// package logger (a no-op by default).
	Warn func(string)

	// NextColor supplies the fallback color for ranges without one. When
	// nil, colorless ranges stay colorless.
	NextColor func() string
}

func (o Options) warn(msg string) {
	if o.Warn != nil {
		o.Warn(msg)
		return
	}
	Logger().Warn(msg)
}

// Gather pulls tuples from p and consumes buf sequentially starting at
// offset, appending one gathered range per tuple to dst (nil is a valid
// empty collector). size limits the window in bytes; negative means "to
// the end of the buffer". It returns the grown collector and the number
// of bytes consumed.
//
// A range whose resolved size exceeds the remaining window is truncated,
// its name prefixed with the shortfall ("-<n>:<name>"), and the walk
// stops there: no further tuples are pulled. The partial collector is
// still returned alongside any fatal error, matching the accumulate
// workflow where earlier walks' output must survive a failed one.
func Gather(dst []rangedump.Gathered, p rangedump.Provider, buf []byte, offset, size int, opt Options) ([]rangedump.Gathered, int, error) {
	if offset < 0 {
		return dst, 0, errors.NegativeOffset(offset)
	}

	winEnd := len(buf)
	if size >= 0 && offset+size < winEnd {
		winEnd = offset + size
	}

	cursor := offset
	var sourceData []byte // bytes of the most recent ordinary range

	for {
		tup, ok, err := p.Next(buf, cursor)
		if err != nil {
			return dst, cursor - offset, err
		}
		if !ok {
			break
		}
		remaining := winEnd - cursor
		if remaining < 0 {
			remaining = 0 // offset beyond the buffer
		}

		name := tup.Name.Resolve(buf, cursor, remaining)
		color := tup.Color.Resolve(buf, cursor, remaining)
		if color == "" && opt.NextColor != nil {
			color = opt.NextColor()
		}

		switch {
		case tup.Size.IsComment():
			dst = append(dst, rangedump.Gathered{
				Name:    name,
				Color:   color,
				Info:    tup.Info,
				Offset:  cursor,
				Comment: true,
			})
			debugf("gathered comment %q at %d", name, cursor)
			continue

		case tup.Size.IsBits():
			dst = append(dst, rangedump.Gathered{
				Name:   name,
				Color:  color,
				Info:   tup.Info,
				Bits:   tup.Size.BitSpec(),
				Data:   sourceData,
				Offset: cursor,
			})
			debugf("gathered bit-field %q (%s) at %d", name, tup.Size.BitSpec(), cursor)
			continue
		}

		n := tup.Size.Resolve(buf, cursor, remaining)
		if n < 0 {
			return dst, cursor - offset, errors.InvalidSize([]string{name}, n)
		}
		if opt.DisplaySize {
			name = strconv.Itoa(n) + ":" + name
		}
		if n == 0 && opt.WarnZeroSize {
			opt.warn(fmt.Sprintf("zero-size range %q at offset %d", name, cursor))
		}

		short := n > remaining
		if short {
			shortfall := n - remaining
			opt.warn(fmt.Sprintf("short data: range %q needs %d more byte(s) at offset %d", name, shortfall, cursor))
			name = "-" + strconv.Itoa(shortfall) + ":" + name
			n = remaining
		}

		var data []byte
		if n > 0 {
			data = buf[cursor : cursor+n]
		}
		dst = append(dst, rangedump.Gathered{
			Name:   name,
			Color:  color,
			Info:   tup.Info,
			Data:   data,
			Offset: cursor,
		})
		debugf("gathered %q: %d byte(s) at %d", name, n, cursor)
		cursor += n
		sourceData = data

		// One short range ends the entire walk. Later tuples in the same
		// description are dropped without a distinct signal; see the
		// short-data note in DESIGN.md before changing this.
		if short {
			break
		}
	}

	return dst, cursor - offset, nil
}
