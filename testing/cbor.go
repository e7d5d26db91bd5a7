package testing

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"math"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/cbor-go/cbor-go/encoding/cbor"
)

// ValueOptions are the go-cmp options used to compare cbor.Value trees. They
// mirror cbor.Equal: NaN floats are equal, and byte strings compare by
// content.
var ValueOptions = cmp.Options{
	cmp.Comparer(func(a, b cbor.Float) bool {
		return a == b || (math.IsNaN(float64(a)) && math.IsNaN(float64(b)))
	}),
	cmp.Comparer(func(a, b cbor.Bytes) bool {
		return bytes.Equal(a, b)
	}),
}

// ValueEqual compares two data items. Returns an error describing the
// difference if they are not equal.
func ValueEqual(expect, actual cbor.Value) error {
	if diff := cmp.Diff(expect, actual, ValueOptions...); len(diff) != 0 {
		return fmt.Errorf("value mismatch (-expect +actual):\n%s\nexpect: %s\nactual: %s",
			diff, cbor.Diagnose(expect), cbor.Diagnose(actual))
	}
	return nil
}

// AssertValueEqual compares two data items. Emits a testing error, and
// returns false if they are not equal.
func AssertValueEqual(t T, expect, actual cbor.Value) bool {
	t.Helper()

	if err := ValueEqual(expect, actual); err != nil {
		t.Errorf("expect values equal, %v", err)
		return false
	}

	return true
}

// CBOREqual decodes two encoded data items and compares the results, so
// alternate encodings of the same item (indefinite lengths, wider arguments,
// half-precision floats) are equal. Returns an error if either fails to
// decode or the items differ.
func CBOREqual(expectBytes, actualBytes []byte) error {
	expect, err := cbor.Decode(expectBytes)
	if err != nil {
		return fmt.Errorf("failed to decode expected bytes, %v", err)
	}

	actual, err := cbor.Decode(actualBytes)
	if err != nil {
		return fmt.Errorf("failed to decode actual bytes, %v", err)
	}

	return ValueEqual(expect, actual)
}

// AssertCBOREqual decodes two encoded data items and compares the results.
// Emits a testing error, and returns false if they are not equal.
func AssertCBOREqual(t T, expect, actual []byte) bool {
	t.Helper()

	if err := CBOREqual(expect, actual); err != nil {
		t.Errorf("expect CBOR equal, %v", err)
		return false
	}

	return true
}

// MustDecodeHex returns the bytes of a hex string. Whitespace is ignored so
// long vectors can be split into readable groups.
func MustDecodeHex(t T, s string) []byte {
	t.Helper()

	p, err := hex.DecodeString(strings.Join(strings.Fields(s), ""))
	if err != nil {
		t.Fatalf("invalid hex %q, %v", s, err)
	}
	return p
}
