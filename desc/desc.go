// Package desc compiles range descriptions into providers of canonical
// range tuples. Nested sequences flatten depth-first, string descriptions
// run through the delimited grammar, and pull-based descriptions wrap
// into lazy providers drained by the walker.
package desc

import (
	"strconv"

	"github.com/wippyai/rangedump"
	"github.com/wippyai/rangedump/errors"
)

// Compile turns a range description into a provider of canonical tuples.
// Every description form funnels through the same validation: a fixed
// tree is flattened eagerly, a Stream is wrapped and validated pull by
// pull.
func Compile(node rangedump.Node) (rangedump.Provider, error) {
	switch v := node.(type) {
	case nil:
		return nil, errors.New(errors.PhaseCompile, errors.KindInvalidData).
			Detail("nil description").Build()
	case rangedump.Stream:
		if v == nil {
			return nil, errors.BadStream("nil stream description")
		}
		return &streamProvider{pull: v}, nil
	default:
		tuples, err := Flatten(node)
		if err != nil {
			return nil, err
		}
		return &listProvider{tuples: tuples}, nil
	}
}

// Flatten resolves a fixed description tree to its canonical tuple
// sequence: depth-first, left to right. Whole-range generators are
// invoked here and their result spliced in place.
func Flatten(node rangedump.Node) ([]rangedump.Tuple, error) {
	return flatten(node, []string{"desc"}, nil)
}

func flatten(node rangedump.Node, path []string, out []rangedump.Tuple) ([]rangedump.Tuple, error) {
	switch v := node.(type) {
	case rangedump.Tuple:
		if err := validateTuple(v, path); err != nil {
			return nil, err
		}
		return append(out, v), nil

	case rangedump.Seq:
		var err error
		for i, child := range v {
			out, err = flatten(child, append(path, strconv.Itoa(i)), out)
			if err != nil {
				return nil, err
			}
		}
		return out, nil

	case rangedump.Text:
		tuples, err := parseText(string(v), path)
		if err != nil {
			return nil, err
		}
		return append(out, tuples...), nil

	case rangedump.Generate:
		if v == nil {
			return nil, errors.BadGenerator(path, "nil generator")
		}
		produced := v()
		if produced == nil {
			return nil, errors.BadGenerator(path, "generator returned nothing, want a range tuple")
		}
		t, ok := produced.(rangedump.Tuple)
		if !ok {
			return nil, errors.BadGenerator(path, "generator returned a "+nodeKind(produced)+", want a range tuple")
		}
		if err := validateTuple(t, path); err != nil {
			return nil, err
		}
		return append(out, t), nil

	case rangedump.Stream:
		return nil, errors.BadStream("stream descriptions cannot be nested")

	case nil:
		return nil, errors.New(errors.PhaseCompile, errors.KindInvalidData).
			Path(path...).Detail("nil description node").Build()

	default:
		return nil, errors.New(errors.PhaseCompile, errors.KindInvalidData).
			Path(path...).Detail("unknown description node %T", node).Build()
	}
}

// validateTuple enforces the canonical-form invariants that are checkable
// without a buffer: a literal size must be non-negative and a bit-field
// spec must parse. Computed sizes are checked when the walker resolves
// them.
func validateTuple(t rangedump.Tuple, path []string) error {
	if t.Size.IsBits() {
		if _, err := rangedump.ParseBitSpec(t.Size.BitSpec()); err != nil {
			return errors.New(errors.PhaseCompile, errors.KindInvalidField).
				Path(path...).Cause(err).Detail("invalid size field %q", t.Size.BitSpec()).Build()
		}
		return nil
	}
	if t.Size.IsComment() || t.Size.IsComputed() {
		return nil
	}
	if n := t.Size.Resolve(nil, 0, 0); n < 0 {
		return errors.New(errors.PhaseCompile, errors.KindInvalidSize).
			Path(path...).Value(n).Detail("size %d is negative", n).Build()
	}
	return nil
}

func nodeKind(n rangedump.Node) string {
	switch n.(type) {
	case rangedump.Tuple:
		return "tuple"
	case rangedump.Seq:
		return "sequence"
	case rangedump.Text:
		return "text"
	case rangedump.Generate:
		return "generator"
	case rangedump.Stream:
		return "stream"
	default:
		return "unknown node"
	}
}

// listProvider serves a pre-flattened tuple sequence.
type listProvider struct {
	tuples []rangedump.Tuple
	pos    int
}

func (p *listProvider) Next(buf []byte, offset int) (rangedump.Tuple, bool, error) {
	if p.pos >= len(p.tuples) {
		return rangedump.Tuple{}, false, nil
	}
	t := p.tuples[p.pos]
	p.pos++
	return t, true, nil
}

// streamProvider drains a pull-based description. Each pulled node is
// compiled on demand: it must be tuple-shaped (a Tuple, or a Text
// describing exactly one range).
type streamProvider struct {
	pull  rangedump.Stream
	pulls int
	done  bool
}

func (p *streamProvider) Next(buf []byte, offset int) (rangedump.Tuple, bool, error) {
	if p.done {
		return rangedump.Tuple{}, false, nil
	}
	node := p.pull(buf, offset)
	if node == nil {
		p.done = true
		return rangedump.Tuple{}, false, nil
	}
	path := []string{"stream", strconv.Itoa(p.pulls)}
	p.pulls++

	switch v := node.(type) {
	case rangedump.Tuple:
		if err := validateTuple(v, path); err != nil {
			return rangedump.Tuple{}, false, err
		}
		return v, true, nil
	case rangedump.Text:
		tuples, err := parseText(string(v), path)
		if err != nil {
			return rangedump.Tuple{}, false, err
		}
		if len(tuples) != 1 {
			return rangedump.Tuple{}, false, errors.BadStream(
				"pull returned " + strconv.Itoa(len(tuples)) + " ranges, want exactly one")
		}
		return tuples[0], true, nil
	default:
		return rangedump.Tuple{}, false, errors.BadStream(
			"pull returned a " + nodeKind(node) + ", want a range tuple")
	}
}
