package render

// Palette maps (format, symbolic color name) to a concrete color token: an
// escape sequence for ANSI output, a CSS color for HTML. Caller entries
// take precedence over the built-in table.
type Palette map[Format]map[string]string

func (p Palette) lookup(f Format, color string) (string, bool) {
	m, ok := p[f]
	if !ok {
		return "", false
	}
	token, ok := m[color]
	return token, ok
}

const (
	ansiReset        = "\x1b[0m"
	htmlDefaultColor = "white"
)

// Minimal escape table covering the cyclic palette and the color names
// range descriptions typically use.
var ansiEscapes = map[string]string{
	"black":   "\x1b[30m",
	"red":     "\x1b[31m",
	"green":   "\x1b[32m",
	"yellow":  "\x1b[33m",
	"blue":    "\x1b[34m",
	"magenta": "\x1b[35m",
	"cyan":    "\x1b[36m",
	"white":   "\x1b[37m",
	"gray":    "\x1b[90m",
}

// CyclicColors is the fallback sequence for ranges without an explicit
// color, advanced one entry per colorless range.
var CyclicColors = []string{"red", "green", "yellow", "blue", "magenta", "cyan"}

// BlackAndWhite is the fixed fallback color used when cycling is off.
const BlackAndWhite = "white"

// Cycler steps through a color list, one entry per colorless range. Each
// engine owns its own cycler; the index keeps advancing across dumps until
// Reset. Not safe for concurrent use.
type Cycler struct {
	colors []string
	next   int
}

// NewCycler returns a cycler over colors, defaulting to CyclicColors.
func NewCycler(colors ...string) *Cycler {
	if len(colors) == 0 {
		colors = CyclicColors
	}
	return &Cycler{colors: colors}
}

// Next returns the next fallback color and advances the cycle.
func (c *Cycler) Next() string {
	color := c.colors[c.next%len(c.colors)]
	c.next++
	return color
}

// Reset rewinds the cycle to its first color.
func (c *Cycler) Reset() {
	c.next = 0
}
