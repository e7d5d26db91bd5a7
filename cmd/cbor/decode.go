package main

import (
	"fmt"

	"github.com/cbor-go/cbor-go/document"
	"github.com/cbor-go/cbor-go/encoding/cbor"
	"github.com/cbor-go/cbor-go/logging"
)

type decodeParams struct {
	hex          bool
	json         bool
	first        bool
	maxDepth     int
	strictSimple bool
}

func runDecode(e *env, args []string) error {
	var params decodeParams

	fs, lf := newFlagSet(e, "decode")
	fs.BoolVarP(&params.hex, "hex", "x", false, "treat input as hex-encoded CBOR")
	fs.BoolVarP(&params.json, "json", "j", false, "write JSON instead of diagnostic notation")
	fs.BoolVar(&params.first, "first", false, "decode only the first item and ignore trailing bytes")
	fs.IntVar(&params.maxDepth, "max-depth", 0, "maximum nesting of arrays, maps and tags (0 for no limit)")
	fs.BoolVar(&params.strictSimple, "strict-simple", false, "reject simple values below 32 in the two byte form")
	if err := fs.Parse(args); err != nil {
		return err
	}
	lf.apply(e)

	data, err := readInput(e, fs.Args(), params.hex)
	if err != nil {
		return err
	}
	return decodeItems(e, data, params)
}

func (p decodeParams) options() []func(*cbor.DecodeOptions) {
	return []func(*cbor.DecodeOptions){
		cbor.WithMaxDepth(p.maxDepth),
		func(o *cbor.DecodeOptions) {
			o.StrictSimpleValues = p.strictSimple
		},
	}
}

// render returns the output line for v.
func (p decodeParams) render(v cbor.Value) (string, error) {
	if !p.json {
		return cbor.Diagnose(v), nil
	}
	b, err := document.ToJSON(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decodeItems writes every item of the CBOR sequence in data, or only the
// first one, in diagnostic notation or as JSON.
func decodeItems(e *env, data []byte, params decodeParams) error {
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected CBOR data")
	}

	if params.first {
		v, n, err := cbor.DecodeFirst(data, params.options()...)
		if err != nil {
			return fmt.Errorf("decode CBOR: %w", err)
		}
		if n < len(data) {
			e.logger.Logf(logging.Warn, "ignoring %d bytes after the first item", len(data)-n)
		}
		line, err := params.render(v)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(e.stdout, line)
		return err
	}

	vs, err := cbor.DecodeSequence(data, params.options()...)
	if err != nil {
		return fmt.Errorf("decode CBOR: %w", err)
	}
	e.logger.Logf(logging.Debug, "decoded %d items", len(vs))

	for _, v := range vs {
		line, err := params.render(v)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(e.stdout, line); err != nil {
			return err
		}
	}
	return nil
}
