// Package wasmdesc provides a ready-made range description for
// WebAssembly module binaries: the fixed preamble, then one id/size/
// payload group per section, with the LEB128 size field decoded on the
// fly and its encoding bits broken out as bit-field sub-views.
package wasmdesc

import (
	"fmt"

	"github.com/wippyai/rangedump"
)

// Section IDs define the binary identifiers for each module section.
const (
	SectionCustom    byte = 0  // Custom section (can appear anywhere)
	SectionType      byte = 1  // Type section (function signatures)
	SectionImport    byte = 2  // Import section
	SectionFunction  byte = 3  // Function section (type indices)
	SectionTable     byte = 4  // Table section
	SectionMemory    byte = 5  // Memory section
	SectionGlobal    byte = 6  // Global section
	SectionExport    byte = 7  // Export section
	SectionStart     byte = 8  // Start section
	SectionElement   byte = 9  // Element section
	SectionCode      byte = 10 // Code section (function bodies)
	SectionData      byte = 11 // Data section
	SectionDataCount byte = 12 // Data count section (bulk memory)
	SectionTag       byte = 13 // Tag section (exception handling)
)

var sectionNames = [...]string{
	"custom", "type", "import", "function", "table", "memory", "global",
	"export", "start", "element", "code", "data", "datacount", "tag",
}

// SectionName returns the conventional name for a section id.
func SectionName(id byte) string {
	if int(id) < len(sectionNames) {
		return sectionNames[id]
	}
	return fmt.Sprintf("section%d", id)
}

// Module stages: preamble first, then id/size/bits/payload per section.
const (
	stageMagic = iota
	stageVersion
	stageSectionID
	stageSectionSize
	stageSizeCont
	stageSizeValue
	stagePayload
)

// Module returns a range description covering a WASM module binary. The
// description is pull-based and single-use: it walks the buffer section
// by section, reading each section's LEB128 size field to find the next.
func Module() rangedump.Node {
	stage := stageMagic
	payload := 0
	return rangedump.Stream(func(buf []byte, offset int) rangedump.Node {
		if offset >= len(buf) {
			return nil
		}
		switch stage {
		case stageMagic:
			stage = stageVersion
			return rangedump.RCI("magic", 4, "red", `\0asm`)
		case stageVersion:
			stage = stageSectionID
			return rangedump.RC("version", 4, "green")
		case stageSectionID:
			stage = stageSectionSize
			return rangedump.Tuple{
				Name: rangedump.NameBy(func(b []byte, off, remaining int) string {
					return SectionName(b[off])
				}),
				Size:  rangedump.Size(1),
				Color: rangedump.Color("yellow"),
				Info:  "section id",
			}
		case stageSectionSize:
			stage = stageSizeCont
			return rangedump.Tuple{
				Name: rangedump.Name("size"),
				Size: rangedump.SizeBy(func(b []byte, off, remaining int) int {
					v, n := ReadLEB128u(b, off)
					if n == 0 {
						// Malformed size field: swallow the rest.
						payload = 0
						return remaining
					}
					payload = int(v)
					return n
				}),
				Color: rangedump.Color("cyan"),
			}
		case stageSizeCont:
			stage = stageSizeValue
			return rangedump.B("cont", "b1")
		case stageSizeValue:
			stage = stagePayload
			return rangedump.B("value", "x1b7")
		default:
			stage = stageSectionID
			n := payload
			return rangedump.Tuple{
				Name:  rangedump.Name("payload"),
				Size:  rangedump.SizeBy(func(b []byte, off, remaining int) int { return n }),
				Color: rangedump.Color("magenta"),
			}
		}
	})
}
