package main

import (
	"fmt"

	"github.com/cbor-go/cbor-go/document"
	"github.com/cbor-go/cbor-go/encoding/cbor"
)

func runQuery(e *env, args []string) error {
	var (
		expr    string
		hexMode bool
	)

	fs, lf := newFlagSet(e, "query")
	fs.StringVarP(&expr, "expr", "e", "", "JMESPath expression")
	fs.BoolVarP(&hexMode, "hex", "x", false, "treat input as hex-encoded CBOR")
	if err := fs.Parse(args); err != nil {
		return err
	}
	lf.apply(e)

	if expr == "" {
		return fmt.Errorf("--expr is required")
	}
	q, err := document.NewQuery(expr)
	if err != nil {
		return err
	}

	data, err := readInput(e, fs.Args(), hexMode)
	if err != nil {
		return err
	}

	v, err := cbor.Decode(data)
	if err != nil {
		return fmt.Errorf("decode CBOR: %w", err)
	}

	result, err := q.Search(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(e.stdout, cbor.Diagnose(result))
	return err
}
