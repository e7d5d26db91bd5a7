// Package testing provides assertion helpers for tests of CBOR data items and
// the JSON documents produced from them.
package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/go-cmp/cmp"
)

// T provides the testing interface for capturing failures with testing assert
// utilities.
type T interface {
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
	Helper()
}

// JSONEqual reports an error describing the difference between two JSON
// documents, or nil if they hold the same values. Object member order is
// ignored. Numbers compare by their literal text, so integers beyond the
// float64 range are compared exactly.
func JSONEqual(expectBytes, actualBytes []byte) error {
	expect, err := decodeJSON(expectBytes)
	if err != nil {
		return fmt.Errorf("decode expected JSON, %v", err)
	}

	actual, err := decodeJSON(actualBytes)
	if err != nil {
		return fmt.Errorf("decode actual JSON, %v", err)
	}

	if diff := cmp.Diff(expect, actual); len(diff) != 0 {
		return fmt.Errorf("JSON mismatch (-expect +actual):\n%s", diff)
	}
	return nil
}

func decodeJSON(p []byte) (interface{}, error) {
	d := json.NewDecoder(bytes.NewReader(p))
	d.UseNumber()

	var v interface{}
	if err := d.Decode(&v); err != nil {
		return nil, err
	}
	if err := d.Decode(new(interface{})); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after the document")
	}
	return v, nil
}

// AssertJSONEqual fails t and returns false if the two JSON documents differ.
func AssertJSONEqual(t T, expect, actual []byte) bool {
	t.Helper()

	if err := JSONEqual(expect, actual); err != nil {
		t.Errorf("expect JSON equal, %v", err)
		return false
	}
	return true
}
