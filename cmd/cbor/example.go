package main

import (
	"encoding/hex"
	"fmt"

	"github.com/cbor-go/cbor-go/document"
	"github.com/cbor-go/cbor-go/encoding/cbor"
)

// runExample encodes {"Hello": "World"}, decodes the bytes back and prints
// both forms.
func runExample(e *env, args []string) error {
	fs, lf := newFlagSet(e, "example")
	if err := fs.Parse(args); err != nil {
		return err
	}
	lf.apply(e)
	if fs.NArg() > 0 {
		return fmt.Errorf("example takes no arguments")
	}

	initial, err := document.FromGo(map[string]interface{}{"Hello": "World"})
	if err != nil {
		return err
	}

	encoded, err := cbor.Encode(initial)
	if err != nil {
		return err
	}

	decoded, err := cbor.Decode(encoded)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(e.stdout, "encoded: %s\ndecoded: %s\n", hex.EncodeToString(encoded), cbor.Diagnose(decoded))
	return err
}
