package jsondesc

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/rangedump"
	"github.com/wippyai/rangedump/desc"
	rderr "github.com/wippyai/rangedump/errors"
)

func flatten(t *testing.T, src string) []rangedump.Tuple {
	t.Helper()
	n, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tuples, err := desc.Flatten(n)
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	return tuples
}

func TestParse_NestedDescription(t *testing.T) {
	src := `[
		["magic", 4, "red", "file id"],
		[["flags", 1, "blue"], ["note", "#"]],
		["fin", "b1"],
		"crc,4,green"
	]`
	tuples := flatten(t, src)
	if len(tuples) != 5 {
		t.Fatalf("got %d tuples, want 5", len(tuples))
	}

	names := make([]string, len(tuples))
	for i, tp := range tuples {
		names[i] = tp.Name.Resolve(nil, 0, 0)
	}
	want := []string{"magic", "flags", "note", "fin", "crc"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %v, want %v", names, want)
		}
	}

	if tuples[0].Info != "file id" {
		t.Errorf("info = %q", tuples[0].Info)
	}
	if !tuples[2].Size.IsComment() {
		t.Error("note should be a comment range")
	}
	if !tuples[3].Size.IsBits() || tuples[3].Size.BitSpec() != "b1" {
		t.Errorf("fin should be a bit-field, got %+v", tuples[3].Size)
	}
	if tuples[4].Color.Resolve(nil, 0, 0) != "green" {
		t.Error("crc color lost in the text form")
	}
}

func TestParse_TopLevelString(t *testing.T) {
	tuples := flatten(t, `"a,2,red:b,2"`)
	if len(tuples) != 2 {
		t.Fatalf("got %d tuples, want 2", len(tuples))
	}
}

func TestParse_EmptyColorStaysAbsent(t *testing.T) {
	tuples := flatten(t, `[["a", 1, ""]]`)
	if tuples[0].Color.IsSet() {
		t.Error("empty color string should stay absent")
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind rderr.Kind
	}{
		{"malformed json", `[["a", 1]`, rderr.KindInvalidData},
		{"empty array", `[]`, rderr.KindInvalidArity},
		{"nested empty array", `[["a", 1], []]`, rderr.KindInvalidArity},
		{"one field", `[["lonely"]]`, rderr.KindInvalidArity},
		{"five fields", `[["a", 1, "red", "info", "extra"]]`, rderr.KindInvalidArity},
		{"numeric name", `[[7, 1]]`, rderr.KindInvalidField},
		{"negative size", `[["a", -2]]`, rderr.KindInvalidSize},
		{"bad size string", `[["a", "lots"]]`, rderr.KindInvalidField},
		{"boolean size", `[["a", true]]`, rderr.KindInvalidField},
		{"numeric color", `[["a", 1, 3]]`, rderr.KindInvalidField},
		{"numeric info", `[["a", 1, "red", 9]]`, rderr.KindInvalidField},
		{"object input", `{"a": 1}`, rderr.KindInvalidData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			if err == nil {
				t.Fatalf("Parse(%s) accepted", tt.src)
			}
			if !stderrors.Is(err, &rderr.Error{Phase: rderr.PhaseParse, Kind: tt.kind}) {
				t.Errorf("error = %v, want parse/%s", err, tt.kind)
			}
		})
	}
}

func TestParse_CompilesEndToEnd(t *testing.T) {
	n, err := Parse(`[["a", 2, "red"], ["b", 2, "blue"]]`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	p, err := desc.Compile(n)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	tp, ok, err := p.Next(nil, 0)
	if err != nil || !ok {
		t.Fatalf("Next: %v, %v", ok, err)
	}
	if tp.Name.Resolve(nil, 0, 0) != "a" {
		t.Errorf("first tuple = %+v", tp)
	}
}
