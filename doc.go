// Package rangedump renders byte buffers as human-readable, annotated
// dumps: the caller describes named, colored ranges covering the buffer
// (including nested structure, bit-fields, comments, and computed fields)
// and gets back a column-aligned, optionally colorized rendering in plain
// text, ANSI, or HTML.
//
// # Architecture Overview
//
// The library is a four-stage pipeline with one package per stage plus a
// high-level facade:
//
//	rangedump/           Root package with the shared pipeline contracts
//	├── desc/            Range compiler: descriptions → tuple providers
//	├── gather/          Range walker: buffer consumption → gathered ranges
//	├── layout/          Splitter: gathered ranges → rows; bit-field decoding
//	├── render/          Renderer: rows → plain/ANSI/HTML text; palettes
//	├── dump/            Engine, Options and Session facade
//	├── jsondesc/        JSON range descriptions (nested array form)
//	├── wasmdesc/        Ready-made describer for WASM module binaries
//	└── errors/          Structured error types for debugging
//
// Data flows strictly desc → gather → layout → render; each stage consumes
// the previous stage's output plus the original buffer. The dump package
// drives the full pipeline.
//
// # Quick Start
//
// Describe the buffer and dump it:
//
//	eng := dump.New()
//
//	text, err := eng.Dump(rangedump.Seq{
//	    rangedump.RC("magic", 4, "red"),
//	    rangedump.RC("version", 4, "blue"),
//	    rangedump.B("lsb", "x7b1"),
//	    rangedump.C("header ends here"),
//	}, buf)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(text)
//
// The same description in the string grammar:
//
//	text, err := eng.Dump(rangedump.Text("magic,4,red : version,4,blue : lsb,x7b1 : header ends here,#"), buf)
//
// # Descriptions
//
// A description is a tree of nodes: Tuple (one range), Seq (nested
// sequence, flattened depth-first), Text (the ':'/',' string grammar),
// Generate (a whole-range generator spliced at compile time), and Stream
// (a pull-based source the walker drains lazily). Name, size and color
// fields may be literals or functions of (buffer, offset, remaining),
// resolved as the walker reaches the range.
//
// A size may also be the comment marker (consumes nothing, annotates the
// dump) or a bit-field spec "[X<n>][x<n>]b<n>" (consumes nothing, decodes
// a bit span of the most recently gathered ordinary range).
//
// # Accumulation
//
// A Session gathers ranges across several buffers or windows and renders
// them in one pass:
//
//	s := eng.NewSession()
//	s.Gather(hdrDesc, buf, 0, dump.All)
//	s.Gather(bodyDesc, buf, 16, dump.All)
//	text := s.Render()
//
// # Concurrency
//
// The pipeline is synchronous and allocation-only; an Engine's color cycle
// advances across calls, so concurrent use of one Engine needs external
// serialization. Independent Engines never interfere.
package rangedump
