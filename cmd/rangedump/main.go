package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/wippyai/rangedump"
	"github.com/wippyai/rangedump/dump"
	"github.com/wippyai/rangedump/jsondesc"
	"github.com/wippyai/rangedump/render"
	"github.com/wippyai/rangedump/wasmdesc"
)

// settings collects repeatable -set key=value flags.
type settings []string

func (s *settings) String() string { return strings.Join(*s, " ") }

func (s *settings) Set(v string) error {
	if !strings.Contains(v, "=") {
		return fmt.Errorf("expected key=value, got %q", v)
	}
	*s = append(*s, v)
	return nil
}

func main() {
	var sets settings
	var (
		inFile      = flag.String("in", "", "Path to input file (default stdin)")
		ranges      = flag.String("ranges", "", "Range description, \"name, size, color : ...\"")
		jsonRanges  = flag.String("json", "", "Range description as a JSON array")
		wasmInput   = flag.Bool("wasm", false, "Describe the input as a WebAssembly module")
		format      = flag.String("format", "auto", "Output format: plain, ansi, html, auto")
		width       = flag.Int("width", 16, "Bytes per display row")
		vertical    = flag.Bool("vertical", false, "One display row per range chunk")
		offset      = flag.Int("offset", 0, "Start offset into the input")
		size        = flag.Int("size", dump.All, "Bytes to walk (-1 for the rest of the input)")
		showUsed    = flag.Bool("used", false, "Report consumed bytes on stderr")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Var(&sets, "set", "Extra option as key=value (repeatable)")
	flag.Parse()

	if *ranges == "" && *jsonRanges == "" && !*wasmInput {
		fmt.Fprintln(os.Stderr, `Usage: rangedump -ranges "name, size, color : ..." [-in file] [flags]`)
		fmt.Fprintln(os.Stderr, `       rangedump -json '[["name", size, "color"], ...]' [-in file]`)
		fmt.Fprintln(os.Stderr, `       rangedump -wasm -in module.wasm`)
		fmt.Fprintln(os.Stderr, `       rangedump -i ...  (interactive mode)`)
		os.Exit(1)
	}

	opts, err := buildOptions(*format, *width, *vertical, *interactive, sets)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	buf, err := readInput(*inFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: read input: %v\n", err)
		os.Exit(1)
	}

	descFn, err := description(*ranges, *jsonRanges, *wasmInput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if err := runInteractive(inputName(*inFile), buf, descFn, opts, *offset, *size); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(buf, descFn, opts, *offset, *size, *showUsed); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(buf []byte, descFn func() rangedump.Node, opts dump.Options, offset, size int, showUsed bool) error {
	eng, err := dump.NewWithOptions(&opts)
	if err != nil {
		return err
	}
	text, used, err := eng.DumpConsumed(descFn(), buf, offset, size)
	if err != nil {
		return err
	}
	os.Stdout.WriteString(text)
	if showUsed {
		fmt.Fprintf(os.Stderr, "%d bytes consumed\n", used)
	}
	return nil
}

// buildOptions turns the flag set into engine options. The "auto" format
// picks ANSI on a terminal and plain text everywhere else; interactive
// mode always runs on a terminal, so auto resolves to ANSI there.
func buildOptions(format string, width int, vertical, interactive bool, sets settings) (dump.Options, error) {
	o := dump.DefaultOptions()
	switch format {
	case "auto":
		if interactive || term.IsTerminal(int(os.Stdout.Fd())) {
			o.Format = render.FormatANSI
		}
	default:
		o.Format = render.Format(format)
	}
	o.DataWidth = width
	if vertical {
		o.Orientation = dump.Vertical
	}
	for _, kv := range sets {
		parts := strings.SplitN(kv, "=", 2)
		if err := o.Set(parts[0], parts[1]); err != nil {
			return o, err
		}
	}
	return o, nil
}

// description selects the range description source. The returned function
// yields a fresh node per call: the wasm description is a pull-based
// stream and cannot be walked twice.
func description(rangesStr, jsonStr string, wasmInput bool) (func() rangedump.Node, error) {
	switch {
	case wasmInput:
		return wasmdesc.Module, nil
	case jsonStr != "":
		node, err := jsondesc.Parse(jsonStr)
		if err != nil {
			return nil, err
		}
		return func() rangedump.Node { return node }, nil
	default:
		node := rangedump.Text(rangesStr)
		return func() rangedump.Node { return node }, nil
	}
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func inputName(path string) string {
	if path == "" {
		return "stdin"
	}
	return path
}
