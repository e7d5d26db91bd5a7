package cbor

import (
	"encoding/binary"
	"math"
	"unicode/utf8"
)

// Encode returns a byte slice that encodes the given Value.
//
// Integers and container lengths always use the shortest argument form,
// containers are always definite-length and floats are always written at
// double precision. Encode fails with an UnsupportedValue error for nil
// values or Simple codes 20-31, and with an InvalidUTF8 error for a String
// that is not valid UTF-8.
func Encode(v Value) ([]byte, error) {
	n, err := sizeOf(v)
	if err != nil {
		return nil, err
	}

	p := make([]byte, n)
	v.encode(p)
	return p, nil
}

func sizeOf(v Value) (int, error) {
	if v == nil {
		return 0, newEncodeError(UnsupportedValue, "nil value")
	}
	return v.size()
}

func (i Uint) size() (int, error) {
	return headerLen(uint64(i)), nil
}

func (i Uint) encode(p []byte) int {
	return encodeHeader(MajorTypeUint, uint64(i), p)
}

func (i NegInt) size() (int, error) {
	return headerLen(uint64(i)), nil
}

func (i NegInt) encode(p []byte) int {
	return encodeHeader(MajorTypeNegInt, uint64(i), p)
}

func (s Bytes) size() (int, error) {
	return headerLen(uint64(len(s))) + len(s), nil
}

func (s Bytes) encode(p []byte) int {
	off := encodeHeader(MajorTypeBytes, uint64(len(s)), p)
	return off + copy(p[off:], s)
}

func (s String) size() (int, error) {
	if !utf8.ValidString(string(s)) {
		return 0, newEncodeError(InvalidUTF8, "text string is not valid utf-8")
	}
	return headerLen(uint64(len(s))) + len(s), nil
}

func (s String) encode(p []byte) int {
	off := encodeHeader(MajorTypeString, uint64(len(s)), p)
	return off + copy(p[off:], s)
}

func (a Array) size() (int, error) {
	total := headerLen(uint64(len(a)))
	for _, v := range a {
		n, err := sizeOf(v)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

func (a Array) encode(p []byte) int {
	off := encodeHeader(MajorTypeArray, uint64(len(a)), p)
	for _, v := range a {
		off += v.encode(p[off:])
	}
	return off
}

func (m Map) size() (int, error) {
	total := headerLen(uint64(len(m)))
	for _, e := range m {
		kn, err := sizeOf(e.Key)
		if err != nil {
			return 0, err
		}
		vn, err := sizeOf(e.Value)
		if err != nil {
			return 0, err
		}
		total += kn + vn
	}
	return total, nil
}

func (m Map) encode(p []byte) int {
	off := encodeHeader(MajorTypeMap, uint64(len(m)), p)
	for _, e := range m {
		off += e.Key.encode(p[off:])
		off += e.Value.encode(p[off:])
	}
	return off
}

func (t *Tag) size() (int, error) {
	if t == nil {
		return 0, newEncodeError(UnsupportedValue, "nil tag")
	}
	n, err := sizeOf(t.Value)
	if err != nil {
		return 0, err
	}
	return headerLen(t.Number) + n, nil
}

func (t *Tag) encode(p []byte) int {
	off := encodeHeader(MajorTypeTag, t.Number, p)
	return off + t.Value.encode(p[off:])
}

func (b Bool) size() (int, error) {
	return 1, nil
}

func (b Bool) encode(p []byte) int {
	if b {
		p[0] = compose(MajorType7, major7True)
	} else {
		p[0] = compose(MajorType7, major7False)
	}
	return 1
}

func (Null) size() (int, error) {
	return 1, nil
}

func (Null) encode(p []byte) int {
	p[0] = compose(MajorType7, major7Null)
	return 1
}

func (Undefined) size() (int, error) {
	return 1, nil
}

func (Undefined) encode(p []byte) int {
	p[0] = compose(MajorType7, major7Undefined)
	return 1
}

func (s Simple) size() (int, error) {
	if s >= major7False && s < 32 {
		return 0, newEncodeError(UnsupportedValue, "simple value %d has no Simple encoding", uint8(s))
	}
	return headerLen(uint64(s)), nil
}

func (s Simple) encode(p []byte) int {
	return encodeHeader(MajorType7, uint64(s), p)
}

func (f Float) size() (int, error) {
	return 9, nil
}

func (f Float) encode(p []byte) int {
	p[0] = compose(MajorType7, minorArg8)
	binary.BigEndian.PutUint64(p[1:], math.Float64bits(float64(f)))
	return 9
}
