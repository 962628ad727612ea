package desc

import (
	"strconv"
	"strings"

	"github.com/wippyai/rangedump"
	"github.com/wippyai/rangedump/errors"
)

// parseText parses the delimited string grammar: ':' separates ranges,
// ',' separates the 2–4 fields of one range, surrounding whitespace is
// trimmed per field. The size field is classified as the comment marker,
// a bit-field spec, or a decimal byte count.
func parseText(s string, path []string) ([]rangedump.Tuple, error) {
	var out []rangedump.Tuple
	for i, segment := range strings.Split(s, ":") {
		rpath := append(path, strconv.Itoa(i))
		if strings.TrimSpace(segment) == "" {
			return nil, errors.InvalidArity(errors.PhaseParse, rpath, 0, segment)
		}

		fields := strings.Split(segment, ",")
		for j := range fields {
			fields[j] = strings.TrimSpace(fields[j])
		}
		if len(fields) < 2 || len(fields) > 4 {
			return nil, errors.InvalidArity(errors.PhaseParse, rpath, len(fields), segment)
		}

		size, err := classifySize(fields[1], rpath)
		if err != nil {
			return nil, err
		}

		t := rangedump.Tuple{Name: rangedump.Name(fields[0]), Size: size}
		if len(fields) > 2 && fields[2] != "" {
			t.Color = rangedump.Color(fields[2])
		}
		if len(fields) > 3 {
			t.Info = fields[3]
		}
		out = append(out, t)
	}
	return out, nil
}

// classifySize maps a size field's text to its canonical form. Order
// matters: the comment marker first, then the bit-field grammar, then a
// decimal count; anything else fails the parse.
func classifySize(text string, path []string) (rangedump.SizeField, error) {
	if text == "#" {
		return rangedump.Comment(), nil
	}
	if rangedump.IsBitSpec(text) {
		return rangedump.Bits(text), nil
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return rangedump.SizeField{}, errors.InvalidField(errors.PhaseParse, path, "size", text)
	}
	if n < 0 {
		return rangedump.SizeField{}, errors.New(errors.PhaseParse, errors.KindInvalidSize).
			Path(path...).Value(n).Detail("size %d is negative", n).Build()
	}
	return rangedump.Size(n), nil
}
