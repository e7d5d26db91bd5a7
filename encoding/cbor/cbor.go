// Package cbor implements encoding and decoding of the concise binary object
// representation (CBOR) described in RFC 8949.
//
// Data items are modeled by the closed set of Value variants below. The
// encoder operates strictly off of a constructed Value tree, so the length of
// every container is known up front and the encoder always produces
// definite-length containers, minimal-width integer arguments and 64-bit
// floats.
//
// The decoder accepts both definite and indefinite encodings of byte strings,
// text strings, arrays and maps, as well as half, single and double precision
// floats. Tags and unassigned simple values may be intercepted per call with a
// TagHook or SimpleHook.
package cbor

import (
	"math"
	"math/big"
)

// MajorType enumerates CBOR major types.
type MajorType byte

// Enumeration of CBOR major types
const (
	MajorTypeUint MajorType = iota
	MajorTypeNegInt
	MajorTypeBytes
	MajorTypeString
	MajorTypeArray
	MajorTypeMap
	MajorTypeTag
	MajorType7
)

func (t MajorType) String() string {
	switch t {
	case MajorTypeUint:
		return "unsigned integer"
	case MajorTypeNegInt:
		return "negative integer"
	case MajorTypeBytes:
		return "byte string"
	case MajorTypeString:
		return "text string"
	case MajorTypeArray:
		return "array"
	case MajorTypeMap:
		return "map"
	case MajorTypeTag:
		return "tag"
	default:
		return "simple/float"
	}
}

// TagSelfDescribe is the self-describe CBOR tag (RFC 8949 section 3.4.6). It
// is unwrapped transparently by the decoder unless a TagHook is installed.
const TagSelfDescribe = 55799

// Value describes a CBOR data item.
//
// The following types implement Value:
//   - Uint
//   - NegInt
//   - Bytes
//   - String
//   - Array
//   - Map
//   - *Tag
//   - Bool
//   - Null
//   - Undefined
//   - Simple
//   - Float
type Value interface {
	size() (int, error)
	encode(p []byte) int
}

var (
	_ Value = Uint(0)
	_ Value = NegInt(0)
	_ Value = Bytes(nil)
	_ Value = String("")
	_ Value = Array(nil)
	_ Value = Map(nil)
	_ Value = (*Tag)(nil)
	_ Value = Bool(false)
	_ Value = Null{}
	_ Value = Undefined{}
	_ Value = Simple(0)
	_ Value = Float(0)
)

// Uint describes a CBOR unsigned integer (major type 0).
type Uint uint64

// NegInt describes a CBOR negative integer (major type 1).
//
// The stored value is the encoded argument n, which represents the integer
// -1-n. NegInt(0) is -1 and NegInt(math.MaxUint64) is -2^64.
type NegInt uint64

// Int64 returns the integer represented by n, and false if it does not fit
// in an int64.
func (n NegInt) Int64() (int64, bool) {
	if uint64(n) > math.MaxInt64 {
		return 0, false
	}
	return -1 - int64(n), true
}

// BigInt returns the exact integer represented by n.
func (n NegInt) BigInt() *big.Int {
	v := new(big.Int).SetUint64(uint64(n))
	return v.Neg(v.Add(v, big.NewInt(1)))
}

// Int returns the Uint or NegInt describing i.
func Int(i int64) Value {
	if i >= 0 {
		return Uint(i)
	}
	return NegInt(-1 - i)
}

var maxNegIntMagnitude = new(big.Int).Lsh(big.NewInt(1), 64)

// FromBigInt returns the Uint or NegInt describing i. Integers outside the
// range [-2^64, 2^64-1] cannot be expressed with major types 0 and 1 and
// result in an UnsupportedValue error.
func FromBigInt(i *big.Int) (Value, error) {
	if i == nil {
		return nil, newEncodeError(UnsupportedValue, "nil big.Int")
	}
	if i.Sign() >= 0 {
		if !i.IsUint64() {
			return nil, newEncodeError(UnsupportedValue, "integer %s overflows major type 0", i)
		}
		return Uint(i.Uint64()), nil
	}

	// -1-i
	n := new(big.Int).Neg(i)
	if n.Cmp(maxNegIntMagnitude) > 0 {
		return nil, newEncodeError(UnsupportedValue, "integer %s overflows major type 1", i)
	}
	return NegInt(n.Sub(n, big.NewInt(1)).Uint64()), nil
}

// Bytes describes a CBOR byte string (major type 2).
type Bytes []byte

// String describes a CBOR text string (major type 3). The content must be
// valid UTF-8.
type String string

// Array describes a CBOR array (major type 4).
type Array []Value

// Entry is a single key/value pair of a Map.
type Entry struct {
	Key   Value
	Value Value
}

// Map describes a CBOR map (major type 5).
//
// Entries keep the order in which they were decoded or constructed. Keys may
// be any Value and are not required to be unique.
type Map []Entry

// Lookup returns the value of the first entry whose key is Equal to key.
func (m Map) Lookup(key Value) (Value, bool) {
	for _, e := range m {
		if Equal(e.Key, key) {
			return e.Value, true
		}
	}
	return nil, false
}

// Tag describes a CBOR-tagged value (major type 6).
type Tag struct {
	Number uint64
	Value  Value
}

// Bool describes a boolean value (major type 7, argument 20/21).
type Bool bool

// Null is the `null` literal (major type 7, argument 22).
type Null struct{}

// Undefined is the `undefined` literal (major type 7, argument 23).
type Undefined struct{}

// Simple describes a simple value that has no dedicated variant: codes 0-19
// and 32-255. Codes 20-23 are expressed with Bool, Null and Undefined, and
// codes 24-31 are reserved.
type Simple uint8

// Float describes an IEEE 754 floating-point number (major type 7, argument
// 25/26/27). Values decoded from half or single precision are widened to
// float64.
type Float float64
