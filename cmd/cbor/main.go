// Command cbor inspects and produces CBOR data.
//
//	cbor decode  [--hex] [--json] [--first] [--max-depth N] [--strict-simple] [FILE]
//	cbor encode  [--from json|jsonc|yaml] [--hex] [FILE]
//	cbor query   --expr EXPR [--hex] [FILE]
//	cbor example
//
// Input is read from FILE when given, stdin otherwise. Decoded items are
// printed in diagnostic notation, or as JSON with --json, one per line.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/cbor-go/cbor-go/logging"
)

// env carries the process streams so commands can be run from tests.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger logging.Logger
}

type command struct {
	name    string
	summary string
	run     func(e *env, args []string) error
}

var commands = []command{
	{"decode", "print CBOR items in diagnostic notation", runDecode},
	{"encode", "convert JSON, JSONC or YAML to CBOR", runEncode},
	{"query", "evaluate a JMESPath expression over a CBOR item", runQuery},
	{"example", "encode {\"Hello\": \"World\"} and decode it back", runExample},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	e := &env{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		logger: logging.Filter{
			Logger: logging.NewStandardLogger(stderr),
			Allow:  []logging.Classification{logging.Warn},
		},
	}

	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	for _, c := range commands {
		if c.name != args[0] {
			continue
		}
		if err := c.run(e, args[1:]); err != nil {
			if errors.Is(err, pflag.ErrHelp) {
				return 0
			}
			fmt.Fprintf(stderr, "cbor %s: %v\n", c.name, err)
			return 1
		}
		return 0
	}

	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		usage(stdout)
		return 0
	}
	fmt.Fprintf(stderr, "cbor: unknown command %q\n", args[0])
	usage(stderr)
	return 2
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: cbor <command> [flags] [file]")
	fmt.Fprintln(w)
	for _, c := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", c.name, c.summary)
	}
}

// newFlagSet returns a flag set for the named command with the logging
// flags every command shares. Call applyLogFlags after parsing.
func newFlagSet(e *env, name string) (*pflag.FlagSet, *logFlags) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(e.stderr)

	lf := &logFlags{}
	fs.BoolVarP(&lf.verbose, "verbose", "v", false, "log progress to stderr")
	fs.BoolVarP(&lf.quiet, "quiet", "q", false, "suppress warnings")
	return fs, lf
}

type logFlags struct {
	verbose bool
	quiet   bool
}

func (lf *logFlags) apply(e *env) {
	switch {
	case lf.quiet:
		e.logger = logging.Noop{}
	case lf.verbose:
		e.logger = logging.Filter{
			Logger: logging.NewStandardLogger(e.stderr),
			Allow:  []logging.Classification{logging.Warn, logging.Info, logging.Debug},
		}
	}
}
