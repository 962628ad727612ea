// Package jsondesc converts JSON range descriptions into description
// nodes. The accepted shape mirrors the in-code forms: an array of 2-4
// scalars is one range tuple, a nested array is a sequence, a string is
// parsed with the text grammar.
//
//	[["magic", 4, "red", "file id"], [["flags", 1], ["rest", "#"]], "crc,4,green"]
package jsondesc

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/wippyai/rangedump"
	"github.com/wippyai/rangedump/errors"
)

// Parse converts a JSON range description into a description node ready
// for compilation. The top level must be an array or a string.
func Parse(src string) (rangedump.Node, error) {
	if !gjson.Valid(src) {
		return nil, errors.ParseFailed("JSON description", nil)
	}
	return node(gjson.Parse(src), []string{"json"})
}

func node(v gjson.Result, path []string) (rangedump.Node, error) {
	switch {
	case v.Type == gjson.String:
		return rangedump.Text(v.String()), nil
	case v.IsArray():
		items := v.Array()
		if len(items) == 0 {
			// An empty array is neither a tuple nor a usable sequence.
			return nil, errors.InvalidArity(errors.PhaseParse, path, 0, v.Raw)
		}
		if isTupleShape(items) {
			return tuple(items, path)
		}
		seq := make(rangedump.Seq, 0, len(items))
		for i, item := range items {
			n, err := node(item, append(path, strconv.Itoa(i)))
			if err != nil {
				return nil, err
			}
			seq = append(seq, n)
		}
		return seq, nil
	default:
		return nil, errors.New(errors.PhaseParse, errors.KindInvalidData).
			Path(path...).
			Detail("unsupported JSON value %s", v.Raw).
			Build()
	}
}

// isTupleShape reports whether an array holds only scalars, making it a
// range tuple rather than a nested sequence.
func isTupleShape(items []gjson.Result) bool {
	for _, item := range items {
		if item.IsArray() || item.IsObject() {
			return false
		}
	}
	return true
}

func tuple(items []gjson.Result, path []string) (rangedump.Node, error) {
	if len(items) < 2 || len(items) > 4 {
		return nil, errors.InvalidArity(errors.PhaseParse, path, len(items), raw(items))
	}
	if items[0].Type != gjson.String {
		return nil, errors.InvalidField(errors.PhaseParse, path, "name", items[0].Raw)
	}
	t := rangedump.Tuple{Name: rangedump.Name(items[0].String())}

	switch items[1].Type {
	case gjson.Number:
		n := int(items[1].Int())
		if n < 0 {
			return nil, errors.New(errors.PhaseParse, errors.KindInvalidSize).
				Path(path...).
				Value(n).
				Detail("negative size %d", n).
				Build()
		}
		t.Size = rangedump.Size(n)
	case gjson.String:
		switch s := items[1].String(); {
		case s == "#":
			t.Size = rangedump.Comment()
		case rangedump.IsBitSpec(s):
			t.Size = rangedump.Bits(s)
		default:
			return nil, errors.InvalidField(errors.PhaseParse, path, "size", s)
		}
	default:
		return nil, errors.InvalidField(errors.PhaseParse, path, "size", items[1].Raw)
	}

	if len(items) > 2 {
		if items[2].Type != gjson.String {
			return nil, errors.InvalidField(errors.PhaseParse, path, "color", items[2].Raw)
		}
		if c := items[2].String(); c != "" {
			t.Color = rangedump.Color(c)
		}
	}
	if len(items) > 3 {
		if items[3].Type != gjson.String {
			return nil, errors.InvalidField(errors.PhaseParse, path, "info", items[3].Raw)
		}
		t.Info = items[3].String()
	}
	return t, nil
}

func raw(items []gjson.Result) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = item.Raw
	}
	return "[" + strings.Join(parts, ",") + "]"
}
