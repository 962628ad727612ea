// Package dump ties the pipeline together behind a configurable Engine:
// compile a range description, walk the buffer against it, lay the
// gathered ranges out as rows, render the rows as text. This is the
// package callers normally use; the stage packages stay importable for
// callers that need only part of the pipeline.
package dump

import (
	"github.com/wippyai/rangedump"
	"github.com/wippyai/rangedump/desc"
	"github.com/wippyai/rangedump/gather"
	"github.com/wippyai/rangedump/layout"
	"github.com/wippyai/rangedump/render"
)

// All as the size argument processes to the end of the buffer.
const All = -1

// Engine runs the dump pipeline under one fixed set of options. The zero
// value is not usable; construct with New or NewWithOptions. An engine is
// not safe for concurrent use: its fallback color cycle advances with
// every dump.
type Engine struct {
	opts   Options
	cycler *render.Cycler
}

// New returns an engine with default options.
func New() *Engine {
	return &Engine{opts: DefaultOptions(), cycler: render.NewCycler()}
}

// NewWithOptions returns an engine using o, which callers usually derive
// from DefaultOptions. nil means defaults. Unknown enum values fail
// construction; numeric fields are clamped to their floors.
func NewWithOptions(o *Options) (*Engine, error) {
	opts := DefaultOptions()
	if o != nil {
		opts = *o
	}
	if err := opts.normalize(); err != nil {
		return nil, err
	}
	return &Engine{opts: opts, cycler: render.NewCycler()}, nil
}

// Dump renders a range description against buf in one shot.
func (e *Engine) Dump(d rangedump.Node, buf []byte) (string, error) {
	text, _, err := e.DumpConsumed(d, buf, 0, All)
	return text, err
}

// DumpConsumed renders a range description against the window
// [offset, offset+size) of buf and also reports how many bytes the
// description consumed, for callers chaining several dumps over one
// buffer. size may be All.
func (e *Engine) DumpConsumed(d rangedump.Node, buf []byte, offset, size int) (string, int, error) {
	p, err := desc.Compile(d)
	if err != nil {
		return "", 0, err
	}
	ranges, used, err := gather.Gather(nil, p, buf, offset, size, e.gatherOptions())
	if err != nil {
		return "", used, err
	}
	rows := layout.Split(ranges, e.opts.layoutConfig())
	return render.Render(rows, e.opts.renderConfig()), used, nil
}

// ResetColorCycle rewinds the fallback color cycle. The cycle otherwise
// keeps advancing across every dump the engine performs.
func (e *Engine) ResetColorCycle() {
	e.cycler.Reset()
}

func (e *Engine) gatherOptions() gather.Options {
	opt := gather.Options{
		DisplaySize:  e.opts.DisplaySize,
		WarnZeroSize: e.opts.WarnZeroSize,
		Warn:         e.opts.Warn,
	}
	if e.opts.ColorMode == ColorBW {
		opt.NextColor = func() string { return render.BlackAndWhite }
	} else {
		opt.NextColor = e.cycler.Next
	}
	return opt
}
