package dump

import (
	"strconv"

	"github.com/wippyai/rangedump/errors"
	"github.com/wippyai/rangedump/layout"
	"github.com/wippyai/rangedump/render"
)

// ColorMode selects the fallback color policy for ranges without an
// explicit color.
type ColorMode string

const (
	ColorCyclic ColorMode = "cyclic"
	ColorBW     ColorMode = "blackAndWhite"
)

// Orientation selects the row layout.
type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// OffsetFormat selects the offset column base.
type OffsetFormat string

const (
	OffsetHex     OffsetFormat = "hex"
	OffsetDecimal OffsetFormat = "decimal"
)

// Options configures an Engine. Start from DefaultOptions and adjust; the
// zero value has every column disabled and fails enum validation.
type Options struct {
	Format       render.Format
	ColorMode    ColorMode
	Orientation  Orientation
	OffsetFormat OffsetFormat

	DataWidth   int // bytes per display row, floor 1
	MaxNameSize int // range name truncation width, floor 2

	ShowOffset         bool
	ShowCumulative     bool
	ShowHex            bool
	ShowDec            bool
	ShowASCII          bool
	ShowNames          bool
	DisplaySize        bool // prefix each range name with its resolved size
	ShowInfo           bool
	ShowBitfields      bool
	ShowBitfieldSource bool
	ShowComments       bool
	ShowZeroSize       bool
	WarnZeroSize       bool
	ShowHeader         bool
	ShowRuler          bool

	// Palette overrides (format, color name) resolution during rendering.
	Palette render.Palette

	// Warn receives non-fatal walk advisories. nil routes them to the
	// package logger.
	Warn func(string)
}

// DefaultOptions returns the standard dump shape: horizontal hex+ASCII
// with offsets and names, 16 bytes per row, cyclic fallback colors, plain
// text output.
func DefaultOptions() Options {
	return Options{
		Format:        render.FormatPlain,
		ColorMode:     ColorCyclic,
		Orientation:   Horizontal,
		OffsetFormat:  OffsetHex,
		DataWidth:     16,
		MaxNameSize:   16,
		ShowOffset:    true,
		ShowHex:       true,
		ShowASCII:     true,
		ShowNames:     true,
		ShowInfo:      true,
		ShowBitfields: true,
		ShowComments:  true,
		ShowZeroSize:  true,
	}
}

// normalize validates the enum fields and clamps the numeric ones.
func (o *Options) normalize() error {
	switch o.Format {
	case render.FormatPlain, render.FormatANSI, render.FormatHTML:
	default:
		return errors.InvalidOptionValue("format", string(o.Format))
	}
	switch o.ColorMode {
	case ColorCyclic, ColorBW:
	default:
		return errors.InvalidOptionValue("colorMode", string(o.ColorMode))
	}
	switch o.Orientation {
	case Horizontal, Vertical:
	default:
		return errors.InvalidOptionValue("orientation", string(o.Orientation))
	}
	switch o.OffsetFormat {
	case OffsetHex, OffsetDecimal:
	default:
		return errors.InvalidOptionValue("offsetFormat", string(o.OffsetFormat))
	}
	if o.DataWidth < 1 {
		o.DataWidth = 1
	}
	if o.MaxNameSize < 2 {
		o.MaxNameSize = 2
	}
	return nil
}

// Set applies a string-keyed option, the form configuration layers pass
// through. Boolean options accept strconv.ParseBool syntax. An
// unsupported option name or a value outside an option's range is an
// error.
func (o *Options) Set(key, value string) error {
	switch key {
	case "format":
		switch f := render.Format(value); f {
		case render.FormatPlain, render.FormatANSI, render.FormatHTML:
			o.Format = f
		default:
			return errors.InvalidOptionValue(key, value)
		}
	case "colorMode":
		switch m := ColorMode(value); m {
		case ColorCyclic, ColorBW:
			o.ColorMode = m
		default:
			return errors.InvalidOptionValue(key, value)
		}
	case "orientation":
		switch r := Orientation(value); r {
		case Horizontal, Vertical:
			o.Orientation = r
		default:
			return errors.InvalidOptionValue(key, value)
		}
	case "offsetFormat":
		switch f := OffsetFormat(value); f {
		case OffsetHex, OffsetDecimal:
			o.OffsetFormat = f
		default:
			return errors.InvalidOptionValue(key, value)
		}
	case "dataWidth":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return errors.InvalidOptionValue(key, value)
		}
		o.DataWidth = n
	case "maxNameSize":
		n, err := strconv.Atoi(value)
		if err != nil || n < 2 {
			return errors.InvalidOptionValue(key, value)
		}
		o.MaxNameSize = n
	default:
		flag, ok := o.boolOption(key)
		if !ok {
			return errors.InvalidOption(key)
		}
		v, err := strconv.ParseBool(value)
		if err != nil {
			return errors.InvalidOptionValue(key, value)
		}
		*flag = v
	}
	return nil
}

func (o *Options) boolOption(key string) (*bool, bool) {
	switch key {
	case "showOffset":
		return &o.ShowOffset, true
	case "showCumulative":
		return &o.ShowCumulative, true
	case "showHex":
		return &o.ShowHex, true
	case "showDec":
		return &o.ShowDec, true
	case "showASCII":
		return &o.ShowASCII, true
	case "showNames":
		return &o.ShowNames, true
	case "displaySize":
		return &o.DisplaySize, true
	case "showInfo":
		return &o.ShowInfo, true
	case "showBitfields":
		return &o.ShowBitfields, true
	case "showBitfieldSource":
		return &o.ShowBitfieldSource, true
	case "showComments":
		return &o.ShowComments, true
	case "showZeroSize":
		return &o.ShowZeroSize, true
	case "warnZeroSize":
		return &o.WarnZeroSize, true
	case "showHeader":
		return &o.ShowHeader, true
	case "showRuler":
		return &o.ShowRuler, true
	}
	return nil, false
}

func (o Options) layoutConfig() layout.Config {
	return layout.Config{
		DataWidth:          o.DataWidth,
		MaxNameSize:        o.MaxNameSize,
		Vertical:           o.Orientation == Vertical,
		DecimalOffset:      o.OffsetFormat == OffsetDecimal,
		ShowOffset:         o.ShowOffset,
		ShowCumulative:     o.ShowCumulative,
		ShowHex:            o.ShowHex,
		ShowDec:            o.ShowDec,
		ShowASCII:          o.ShowASCII,
		ShowNames:          o.ShowNames,
		ShowInfo:           o.ShowInfo,
		ShowBitfields:      o.ShowBitfields,
		ShowBitfieldSource: o.ShowBitfieldSource,
		ShowComments:       o.ShowComments,
		ShowZeroSize:       o.ShowZeroSize,
		ShowHeader:         o.ShowHeader,
		ShowRuler:          o.ShowRuler,
	}
}

func (o Options) renderConfig() render.Config {
	return render.Config{
		Format:  o.Format,
		Palette: o.Palette,
		Columns: o.layoutConfig().Columns(),
	}
}
