package cbor_test

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/cbor-go/cbor-go/encoding/cbor"
)

// FuzzDecode checks that arbitrary input never panics, that every failure
// is a *DecodeError within the input, and that anything decoded re-encodes to
// an item that decodes to an equal value.
func FuzzDecode(f *testing.F) {
	for _, v := range vectors {
		p, _ := hex.DecodeString(v.Hex)
		f.Add(p)
	}
	for _, seed := range []string{
		"1e", "1f", "5f00", "5f5f", "0000", "ff", "df00",
		"83d81203d9456708f8f0",
		"9b00ffffffffffffff",
		"bf61610161629f0203ffff",
		"7f6161ff",
	} {
		p, _ := hex.DecodeString(seed)
		f.Add(p)
	}

	f.Fuzz(func(t *testing.T, p []byte) {
		v, err := cbor.Decode(p, cbor.WithMaxDepth(64))
		if err != nil {
			var derr *cbor.DecodeError
			if !errors.As(err, &derr) {
				t.Fatalf("expect *DecodeError, got %T", err)
			}
			if derr.Offset < 0 || derr.Offset > len(p) {
				t.Fatalf("offset %d outside input of %d bytes", derr.Offset, len(p))
			}
			return
		}

		encoded, err := cbor.Encode(v)
		if err != nil {
			t.Fatalf("re-encode %s: %v", cbor.Diagnose(v), err)
		}
		redecoded, err := cbor.Decode(encoded)
		if err != nil {
			t.Fatalf("decode re-encoded %x: %v", encoded, err)
		}
		if !cbor.Equal(v, redecoded) {
			t.Fatalf("round trip mismatch: %s != %s", cbor.Diagnose(v), cbor.Diagnose(redecoded))
		}
	})
}
