package rangedump

// NameFunc computes a range name from the buffer being walked. It receives
// the full buffer, the current cursor offset, and the number of bytes
// remaining in the walk window.
type NameFunc func(buf []byte, offset, remaining int) string

// SizeFunc computes a range size in bytes. The result must be non-negative.
type SizeFunc func(buf []byte, offset, remaining int) int

// ColorFunc computes a range color name. An empty result means "no color",
// which falls back to the engine's color policy.
type ColorFunc func(buf []byte, offset, remaining int) string

// Node is one element of a range description. The concrete forms are
// Tuple, Seq, Text, Generate and Stream.
type Node interface {
	node()
}

// NameField is a range name: a literal string or a computed function.
type NameField struct {
	text string
	fn   NameFunc
}

// Name returns a literal name field.
func Name(text string) NameField {
	return NameField{text: text}
}

// NameBy returns a computed name field, resolved at walk time.
func NameBy(fn NameFunc) NameField {
	return NameField{fn: fn}
}

// Resolve returns the name, invoking a computed field with the walk state.
func (f NameField) Resolve(buf []byte, offset, remaining int) string {
	if f.fn != nil {
		return f.fn(buf, offset, remaining)
	}
	return f.text
}

type sizeKind uint8

const (
	sizeBytes sizeKind = iota
	sizeComputed
	sizeComment
	sizeBits
)

// SizeField is a range size: a byte count, a computed function, the
// comment marker, or a bit-field spec. The zero value is a zero-byte size.
type SizeField struct {
	fn   SizeFunc
	spec string
	n    int
	kind sizeKind
}

// Size returns a literal byte-count size field.
func Size(n int) SizeField {
	return SizeField{kind: sizeBytes, n: n}
}

// SizeBy returns a computed size field, resolved at walk time. The
// function must return a non-negative byte count.
func SizeBy(fn SizeFunc) SizeField {
	return SizeField{kind: sizeComputed, fn: fn}
}

// Comment returns the comment marker: the range consumes no bytes and
// only annotates the dump.
func Comment() SizeField {
	return SizeField{kind: sizeComment}
}

// Bits returns a bit-field size with the given spec string, grammar
// "[X<n>][x<n>]b<n>". The range consumes no bytes; it decodes a bit span
// of the nearest preceding ordinary range.
func Bits(spec string) SizeField {
	return SizeField{kind: sizeBits, spec: spec}
}

// IsComment reports whether the field is the comment marker.
func (f SizeField) IsComment() bool { return f.kind == sizeComment }

// IsBits reports whether the field is a bit-field spec.
func (f SizeField) IsBits() bool { return f.kind == sizeBits }

// IsComputed reports whether the field resolves through a function.
func (f SizeField) IsComputed() bool { return f.kind == sizeComputed }

// BitSpec returns the original bit-field spec string, or "".
func (f SizeField) BitSpec() string { return f.spec }

// Resolve returns the byte count, invoking a computed field with the walk
// state. Comment and bit-field sizes resolve to zero.
func (f SizeField) Resolve(buf []byte, offset, remaining int) int {
	if f.kind == sizeComputed {
		return f.fn(buf, offset, remaining)
	}
	return f.n
}

// ColorField is a range color: absent (the zero value), a literal color
// name, or a computed function.
type ColorField struct {
	name string
	fn   ColorFunc
}

// Color returns a literal color field.
func Color(name string) ColorField {
	return ColorField{name: name}
}

// ColorBy returns a computed color field, resolved at walk time.
func ColorBy(fn ColorFunc) ColorField {
	return ColorField{fn: fn}
}

// IsSet reports whether a color was given at all.
func (f ColorField) IsSet() bool { return f.name != "" || f.fn != nil }

// Resolve returns the color name, invoking a computed field with the walk
// state. An absent color resolves to "".
func (f ColorField) Resolve(buf []byte, offset, remaining int) string {
	if f.fn != nil {
		return f.fn(buf, offset, remaining)
	}
	return f.name
}

// Tuple is one canonical range: name, size, optional color, optional user
// info. The zero value is a zero-size range with an empty name.
type Tuple struct {
	Name  NameField
	Size  SizeField
	Color ColorField
	Info  string
}

func (Tuple) node() {}

// R builds an ordinary range from a literal name and byte size.
func R(name string, size int) Tuple {
	return Tuple{Name: Name(name), Size: Size(size)}
}

// RC builds an ordinary range with a literal color.
func RC(name string, size int, color string) Tuple {
	return Tuple{Name: Name(name), Size: Size(size), Color: Color(color)}
}

// RCI builds a full four-field range: name, size, color and user info.
func RCI(name string, size int, color, info string) Tuple {
	return Tuple{Name: Name(name), Size: Size(size), Color: Color(color), Info: info}
}

// C builds a comment range: consumes nothing, annotates the dump.
func C(text string) Tuple {
	return Tuple{Name: Name(text), Size: Comment()}
}

// B builds a bit-field range over the current source range.
func B(name, spec string) Tuple {
	return Tuple{Name: Name(name), Size: Bits(spec)}
}

// Seq is a nested sequence of description nodes. Sequences flatten
// depth-first, left to right, to a single ordered range list.
type Seq []Node

func (Seq) node() {}

// Text is a range description in the delimited string grammar: ranges
// separated by ':', fields within a range separated by ','. Fields are
// trimmed of surrounding whitespace. A size field may be a decimal byte
// count, the comment marker '#', or a bit-field spec.
//
//	"magic, 4, red : flags, 1 : fin, b1 : rest, 11"
type Text string

func (Text) node() {}

// Generate is a whole-range generator: invoked once, with no arguments,
// while the description is compiled. It must return a Tuple, which is
// spliced into the flattened sequence in place.
type Generate func() Node

func (Generate) node() {}

// Stream is a pull-based description: called repeatedly with the buffer
// and the current offset, it returns one tuple-shaped node per call and
// nil when exhausted. A Stream is consumed lazily by the walker and is
// never flattened; it may describe unbounded sequences, bounded in
// practice by the buffer running out.
type Stream func(buf []byte, offset int) Node

func (Stream) node() {}

// Provider yields canonical range tuples one at a time until exhausted.
// Fixed-list providers ignore the buffer and offset; pull-based providers
// forward them to the underlying callable.
type Provider interface {
	Next(buf []byte, offset int) (Tuple, bool, error)
}

// Gathered is one resolved range produced by walking a buffer: the final
// display name (size and shortfall prefixes already applied), the
// resolved color, the absolute offset, and the consumed bytes.
//
// For ordinary ranges Data is the consumed slice and the next range's
// Offset equals Offset+len(Data). Comment and bit-field ranges consume
// nothing; a bit-field's Data aliases the bytes of the nearest preceding
// ordinary range, kept purely as its decode source.
type Gathered struct {
	Name    string
	Color   string
	Info    string
	Bits    string // original bit-field spec, "" for ordinary ranges
	Data    []byte
	Offset  int
	Comment bool
}

// IsBitfield reports whether the range is a bit-field view.
func (g Gathered) IsBitfield() bool { return g.Bits != "" }
