package dump

import (
	"github.com/wippyai/rangedump"
	"github.com/wippyai/rangedump/desc"
	"github.com/wippyai/rangedump/gather"
	"github.com/wippyai/rangedump/layout"
	"github.com/wippyai/rangedump/render"
)

// Session accumulates gathered ranges across multiple Gather calls for one
// later Render, letting several descriptions or buffer windows share a
// single rendered dump. The accumulated list belongs to the session until
// Reset.
type Session struct {
	engine *Engine
	ranges []rangedump.Gathered
}

// NewSession returns an empty accumulation session bound to the engine's
// options and fallback color cycle.
func (e *Engine) NewSession() *Session {
	return &Session{engine: e}
}

// Gather walks buf against a range description and appends the gathered
// ranges to the session, reporting how many bytes the walk consumed. size
// may be All. On error the session keeps only what previous calls
// gathered.
func (s *Session) Gather(d rangedump.Node, buf []byte, offset, size int) (int, error) {
	p, err := desc.Compile(d)
	if err != nil {
		return 0, err
	}
	ranges, used, err := gather.Gather(s.ranges, p, buf, offset, size, s.engine.gatherOptions())
	if err != nil {
		return used, err
	}
	s.ranges = ranges
	return used, nil
}

// Render lays out and renders everything gathered so far. Rendering does
// not consume the accumulator: calling Render twice without touching the
// session yields identical text.
func (s *Session) Render() string {
	rows := layout.Split(s.ranges, s.engine.opts.layoutConfig())
	return render.Render(rows, s.engine.opts.renderConfig())
}

// Reset clears the accumulator.
func (s *Session) Reset() {
	s.ranges = nil
}
