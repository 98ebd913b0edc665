// Command wordlisp is the external driver: it turns file paths or literal
// source strings into top-level forms via pkg/reader, feeds them through
// pkg/eval (unless --parse-only), and prints results via pkg/printer.
// None of the parsing, evaluation, or printing logic lives here -- this
// file is argument handling, file I/O, and error-category reporting only.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/kestrels/wordlisp/pkg/eval"
	"github.com/kestrels/wordlisp/pkg/printer"
	"github.com/kestrels/wordlisp/pkg/reader"
	"github.com/kestrels/wordlisp/pkg/value"
)

type source struct {
	label string
	text  string
}

func main() {
	sources, parseOnly, debugHeap, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "wordlisp:", err)
		os.Exit(-1)
	}

	env := value.NewEnvironment()
	eval.Install(env)

	for _, src := range sources {
		runSource(env, src, parseOnly)
	}

	if debugHeap {
		fmt.Fprintln(os.Stderr, env.Heap.Dump())
	}
}

// parseArgs handles the driver's CLI surface: positional file paths,
// --exec/-e for a literal source string, --parse-only, and -- to stop
// flag processing.
func parseArgs(args []string) (sources []source, parseOnly, debugHeap bool, err error) {
	literalNext := false
	noMoreFlags := false

	for _, arg := range args {
		switch {
		case literalNext:
			sources = append(sources, source{label: "<exec>", text: arg})
			literalNext = false

		case noMoreFlags:
			text, ferr := readFile(arg)
			if ferr != nil {
				return nil, false, false, ferr
			}
			sources = append(sources, source{label: arg, text: text})

		case arg == "--":
			noMoreFlags = true

		case arg == "--exec" || arg == "-e":
			literalNext = true

		case arg == "--parse-only":
			parseOnly = true

		case arg == "--debug-heap":
			debugHeap = true

		default:
			text, ferr := readFile(arg)
			if ferr != nil {
				return nil, false, false, ferr
			}
			sources = append(sources, source{label: arg, text: text})
		}
	}

	if literalNext {
		return nil, false, false, fmt.Errorf("--exec/-e requires a source string argument")
	}
	return sources, parseOnly, debugHeap, nil
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("cannot open %q: %w", path, err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%q is empty", path)
	}
	return string(data), nil
}

// runSource reads every top-level form in src and surfaces each form's
// eval error independently: a form that fails to evaluate aborts only that
// form, and processing continues with the next. A parse error anywhere in
// src is reported once and none of src's forms are run.
func runSource(env *value.Environment, src source, parseOnly bool) {
	forms, err := reader.New(env, src.text).ReadAll()
	if err != nil {
		reportError(src.label, err)
		return
	}

	for _, form := range forms {
		if parseOnly {
			fmt.Println(printer.Print(form))
			continue
		}
		result, err := eval.Eval(env, form)
		if err != nil {
			reportError(src.label, err)
			continue
		}
		fmt.Println(printer.Print(result))
	}
}

// reportError prints err to stderr with a prefix naming its error category
// (`Parsing exception:`, `Eval exception:`, `Internal error:`).
func reportError(label string, err error) {
	var parseErr *value.ParseError
	var evalErr *value.EvalError
	var internalErr *value.InternalError

	switch {
	case errors.As(err, &parseErr):
		fmt.Fprintf(os.Stderr, "Parsing exception: %s: %s\n", label, err)
	case errors.As(err, &evalErr):
		fmt.Fprintf(os.Stderr, "Eval exception: %s: %s\n", label, err)
	case errors.As(err, &internalErr):
		fmt.Fprintf(os.Stderr, "Internal error: %s: %s\n", label, err)
	default:
		fmt.Fprintf(os.Stderr, "Internal error: %s: %s\n", label, err)
	}
}
