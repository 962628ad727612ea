package dump

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/wippyai/rangedump"
	rderr "github.com/wippyai/rangedump/errors"
	"github.com/wippyai/rangedump/render"
)

func newEngine(t *testing.T, o Options) *Engine {
	t.Helper()
	eng, err := NewWithOptions(&o)
	if err != nil {
		t.Fatalf("NewWithOptions: %v", err)
	}
	return eng
}

func TestEngine_DumpExample(t *testing.T) {
	o := DefaultOptions()
	o.DataWidth = 4
	eng := newEngine(t, o)

	out, err := eng.Dump(rangedump.Seq{
		rangedump.RC("a", 2, "red"),
		rangedump.RC("b", 2, "blue"),
	}, []byte{0x61, 0x62, 0x63, 0x64})
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if n := strings.Count(out, "\n"); n != 1 {
		t.Errorf("got %d lines, want 1:\n%s", n, out)
	}
	for _, want := range []string{"00000000", "61 62 63 64", "abcd", "a, b,"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestEngine_DumpText(t *testing.T) {
	eng := New()
	out, err := eng.Dump(rangedump.Text("magic,2,red:rest,2"), []byte{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if !strings.Contains(out, "magic,") || !strings.Contains(out, "rest,") {
		t.Errorf("output %q missing range names", out)
	}
}

func TestEngine_DumpCompileError(t *testing.T) {
	eng := New()
	_, err := eng.Dump(rangedump.Text("onlyname"), []byte{1})
	if err == nil {
		t.Fatal("Dump should fail on a malformed description")
	}
	if !stderrors.Is(err, &rderr.Error{Phase: rderr.PhaseParse, Kind: rderr.KindInvalidArity}) {
		t.Errorf("error = %v, want parse/invalid_arity", err)
	}
}

func TestEngine_DumpConsumed(t *testing.T) {
	eng := New()
	buf := []byte{1, 2, 3, 4, 5, 6, 7, 8}

	_, used, err := eng.DumpConsumed(rangedump.R("head", 3), buf, 0, All)
	if err != nil {
		t.Fatalf("DumpConsumed: %v", err)
	}
	if used != 3 {
		t.Errorf("used = %d, want 3", used)
	}

	// Chain a second dump from where the first stopped.
	out, used, err := eng.DumpConsumed(rangedump.R("tail", 2), buf, used, All)
	if err != nil {
		t.Fatalf("DumpConsumed: %v", err)
	}
	if used != 2 {
		t.Errorf("used = %d, want 2", used)
	}
	if !strings.Contains(out, "00000003") {
		t.Errorf("output %q missing the chained offset", out)
	}
}

func TestEngine_ShortDataDump(t *testing.T) {
	var warned []string
	o := DefaultOptions()
	o.Warn = func(m string) { warned = append(warned, m) }
	eng := newEngine(t, o)

	out, used, err := eng.DumpConsumed(rangedump.R("big", 10), []byte{1, 2, 3, 4}, 0, All)
	if err != nil {
		t.Fatalf("DumpConsumed: %v", err)
	}
	if used != 4 {
		t.Errorf("used = %d, want 4", used)
	}
	if !strings.Contains(out, "-6:big,") {
		t.Errorf("output %q missing the shortfall prefix", out)
	}
	if len(warned) != 1 {
		t.Errorf("warnings = %v, want one", warned)
	}
}

func TestEngine_CyclicColors(t *testing.T) {
	o := DefaultOptions()
	o.Format = render.FormatANSI
	eng := newEngine(t, o)

	desc := rangedump.Seq{rangedump.R("a", 1), rangedump.R("b", 1)}
	out, err := eng.Dump(desc, []byte{1, 2})
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if !strings.Contains(out, "\x1b[31m") || !strings.Contains(out, "\x1b[32m") {
		t.Errorf("output %q missing the first two cycle colors", out)
	}

	// The cycle keeps advancing on the next dump.
	out, err = eng.Dump(desc, []byte{1, 2})
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if !strings.Contains(out, "\x1b[33m") || !strings.Contains(out, "\x1b[34m") {
		t.Errorf("output %q, want the cycle continued", out)
	}

	eng.ResetColorCycle()
	out, err = eng.Dump(desc, []byte{1, 2})
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if !strings.Contains(out, "\x1b[31m") {
		t.Errorf("output %q, want the cycle rewound", out)
	}
}

func TestEngine_CyclerIsolation(t *testing.T) {
	o := DefaultOptions()
	o.Format = render.FormatANSI

	a := newEngine(t, o)
	b := newEngine(t, o)
	desc := rangedump.R("x", 1)

	if _, err := a.Dump(desc, []byte{1}); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	out, err := b.Dump(desc, []byte{1})
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	// A fresh engine starts its own cycle regardless of other engines.
	if !strings.Contains(out, "\x1b[31m") {
		t.Errorf("output %q, want the first cycle color", out)
	}
}

func TestEngine_BlackAndWhite(t *testing.T) {
	o := DefaultOptions()
	o.Format = render.FormatANSI
	o.ColorMode = ColorBW
	eng := newEngine(t, o)

	out, err := eng.Dump(rangedump.Seq{rangedump.R("a", 1), rangedump.R("b", 1)}, []byte{1, 2})
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if !strings.Contains(out, "\x1b[37m") {
		t.Errorf("output %q, want the fixed white fallback", out)
	}
	if strings.Contains(out, "\x1b[31m") {
		t.Errorf("output %q, want no cycling", out)
	}
}

func TestSession_AccumulateAndRender(t *testing.T) {
	o := DefaultOptions()
	o.DataWidth = 4
	eng := newEngine(t, o)
	s := eng.NewSession()

	if _, err := s.Gather(rangedump.RC("first", 2, "red"), []byte{1, 2}, 0, All); err != nil {
		t.Fatalf("Gather: %v", err)
	}
	used, err := s.Gather(rangedump.RC("second", 3, "blue"), []byte{3, 4, 5}, 0, All)
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	if used != 3 {
		t.Errorf("used = %d, want 3", used)
	}

	out := s.Render()
	if !strings.Contains(out, "first,") || !strings.Contains(out, "second,") {
		t.Errorf("output %q missing accumulated ranges", out)
	}

	if again := s.Render(); again != out {
		t.Error("re-rendering the same session changed the output")
	}

	s.Reset()
	if got := s.Render(); got != "" {
		t.Errorf("after Reset got %q, want empty", got)
	}
}

func TestSession_IdempotentFallbackColors(t *testing.T) {
	o := DefaultOptions()
	o.Format = render.FormatANSI
	eng := newEngine(t, o)
	s := eng.NewSession()

	// Colorless ranges take their fallback color at gather time, so two
	// renders agree even though the engine cycle has advanced.
	if _, err := s.Gather(rangedump.R("a", 1), []byte{1}, 0, All); err != nil {
		t.Fatalf("Gather: %v", err)
	}
	first := s.Render()
	if _, err := eng.Dump(rangedump.R("b", 1), []byte{2}); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if second := s.Render(); second != first {
		t.Error("session output changed after an unrelated dump")
	}
}

func TestNewWithOptions_Validation(t *testing.T) {
	o := DefaultOptions()
	o.Format = "sgr"
	if _, err := NewWithOptions(&o); err == nil {
		t.Error("unknown format accepted")
	} else if !stderrors.Is(err, &rderr.Error{Phase: rderr.PhaseConfig, Kind: rderr.KindInvalidOption}) {
		t.Errorf("error = %v, want config/invalid_option", err)
	}

	o = DefaultOptions()
	o.Orientation = "diagonal"
	if _, err := NewWithOptions(&o); err == nil {
		t.Error("unknown orientation accepted")
	}
}

func TestNewWithOptions_Clamps(t *testing.T) {
	o := DefaultOptions()
	o.DataWidth = -3
	o.MaxNameSize = 0
	eng := newEngine(t, o)

	out, err := eng.Dump(rangedump.RC("name", 2, "red"), []byte{1, 2})
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	// Width clamps to one byte per row.
	if n := strings.Count(out, "\n"); n != 2 {
		t.Errorf("got %d rows, want 2:\n%s", n, out)
	}
	// Name size clamps to two characters.
	if !strings.Contains(out, "na,") || strings.Contains(out, "name,") {
		t.Errorf("output %q, want the name clipped to two characters", out)
	}
}

func TestOptions_Set(t *testing.T) {
	o := DefaultOptions()

	sets := [][2]string{
		{"format", "html"},
		{"colorMode", "blackAndWhite"},
		{"orientation", "vertical"},
		{"offsetFormat", "decimal"},
		{"dataWidth", "8"},
		{"maxNameSize", "10"},
		{"showDec", "true"},
		{"showOffset", "false"},
	}
	for _, kv := range sets {
		if err := o.Set(kv[0], kv[1]); err != nil {
			t.Fatalf("Set(%q, %q): %v", kv[0], kv[1], err)
		}
	}
	if o.Format != render.FormatHTML || o.ColorMode != ColorBW ||
		o.Orientation != Vertical || o.OffsetFormat != OffsetDecimal {
		t.Errorf("enum options not applied: %+v", o)
	}
	if o.DataWidth != 8 || o.MaxNameSize != 10 || !o.ShowDec || o.ShowOffset {
		t.Errorf("value options not applied: %+v", o)
	}
}

func TestOptions_SetErrors(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"nosuch", "true"},
		{"format", "sgr"},
		{"orientation", "diagonal"},
		{"dataWidth", "zero"},
		{"dataWidth", "0"},
		{"maxNameSize", "1"},
		{"showHex", "maybe"},
	}
	for _, tt := range tests {
		o := DefaultOptions()
		err := o.Set(tt.key, tt.value)
		if err == nil {
			t.Errorf("Set(%q, %q) accepted", tt.key, tt.value)
			continue
		}
		if !stderrors.Is(err, &rderr.Error{Phase: rderr.PhaseConfig, Kind: rderr.KindInvalidOption}) {
			t.Errorf("Set(%q, %q) error = %v, want config/invalid_option", tt.key, tt.value, err)
		}
	}
}

func TestEngine_VerticalDump(t *testing.T) {
	o := DefaultOptions()
	o.Orientation = Vertical
	o.DataWidth = 4
	eng := newEngine(t, o)

	out, err := eng.Dump(rangedump.Seq{
		rangedump.RC("head", 2, "red"),
		rangedump.RC("body", 6, "blue"),
	}, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	// head gets one row, body spans two.
	if n := strings.Count(out, "\n"); n != 3 {
		t.Errorf("got %d rows, want 3:\n%s", n, out)
	}
	if !strings.HasPrefix(out, "head,") {
		t.Errorf("output %q, want the name column first", out)
	}
}

func TestEngine_HeaderAndRuler(t *testing.T) {
	o := DefaultOptions()
	o.DataWidth = 4
	o.ShowHeader = true
	o.ShowRuler = true
	eng := newEngine(t, o)

	out, err := eng.Dump(rangedump.R("a", 1), []byte{1})
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	lines := strings.Split(out, "\n")
	if len(lines) < 3 {
		t.Fatalf("output %q, want header + ruler + data", out)
	}
	if !strings.Contains(lines[0], "OFFSET") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], " 0  1  2  3") {
		t.Errorf("ruler = %q", lines[1])
	}
}
