package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/cbor-go/cbor-go/document"
	"github.com/cbor-go/cbor-go/encoding/cbor"
	"github.com/cbor-go/cbor-go/logging"
)

type encodeParams struct {
	from string
	hex  bool
}

func runEncode(e *env, args []string) error {
	var params encodeParams

	fs, lf := newFlagSet(e, "encode")
	fs.StringVarP(&params.from, "from", "f", "json", "input format: json, jsonc or yaml")
	fs.BoolVarP(&params.hex, "hex", "x", false, "write hex instead of binary")
	if err := fs.Parse(args); err != nil {
		return err
	}
	lf.apply(e)

	data, err := readInput(e, fs.Args(), false)
	if err != nil {
		return err
	}

	v, err := parseDocument(data, params.from)
	if err != nil {
		return err
	}

	p, err := cbor.Encode(v)
	if err != nil {
		return fmt.Errorf("encode CBOR: %w", err)
	}
	e.logger.Logf(logging.Debug, "encoded %d bytes", len(p))

	return writeOutput(e, p, params.hex)
}

// parseDocument converts a JSON, JSONC or YAML document to a data item.
// Integers keep their exact value, including those beyond int64.
func parseDocument(data []byte, format string) (cbor.Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("empty input: expected %s data", format)
	}

	var value interface{}
	switch format {
	case "jsonc":
		data = jsonc.ToJSON(data)
		fallthrough
	case "json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber()
		if err := decoder.Decode(&value); err != nil {
			return nil, fmt.Errorf("decode %s: %w", format, err)
		}
		if err := decoder.Decode(new(interface{})); err != io.EOF {
			return nil, fmt.Errorf("decode %s: unexpected data after the first value", format)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &value); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown input format %q", format)
	}

	v, err := document.FromGo(value)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", format, err)
	}
	return v, nil
}
