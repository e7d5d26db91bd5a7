package cbor

import "unicode/utf8"

const (
	major7False = iota + 0b_10100
	major7True
	major7Null
	major7Undefined
)

// Decode returns the Value encoded in the given byte slice. The slice must
// hold exactly one data item; any bytes left after it result in a
// TrailingData error.
func Decode(p []byte, optFns ...func(*DecodeOptions)) (Value, error) {
	d := newDecoder(p, optFns)
	v, err := d.decode()
	if err != nil {
		return nil, err
	}
	if d.off != len(p) {
		return nil, d.errorf(TrailingData, d.off, "%d bytes remain after data item", len(p)-d.off)
	}
	return v, nil
}

// DecodeFirst returns the first Value encoded in the given byte slice and the
// number of bytes it occupies. Bytes following the data item are ignored.
func DecodeFirst(p []byte, optFns ...func(*DecodeOptions)) (Value, int, error) {
	d := newDecoder(p, optFns)
	v, err := d.decode()
	if err != nil {
		return nil, 0, err
	}
	return v, d.off, nil
}

// DecodeSequence returns every Value of a CBOR sequence (RFC 8742), the
// concatenation of zero or more data items.
func DecodeSequence(p []byte, optFns ...func(*DecodeOptions)) ([]Value, error) {
	d := newDecoder(p, optFns)

	var vs []Value
	for d.off < len(p) {
		v, err := d.decode()
		if err != nil {
			return nil, err
		}
		vs = append(vs, v)
	}
	return vs, nil
}

type decoder struct {
	p     []byte
	off   int
	depth int
	opts  DecodeOptions
}

func newDecoder(p []byte, optFns []func(*DecodeOptions)) *decoder {
	var o DecodeOptions
	for _, fn := range optFns {
		fn(&o)
	}
	return &decoder{p: p, opts: o}
}

func (d *decoder) errorf(kind ErrorKind, offset int, format string, v ...interface{}) error {
	return newDecodeError(kind, offset, format, v...)
}

func (d *decoder) decode() (Value, error) {
	start := d.off
	major, minor, arg, err := d.readHeader()
	if err != nil {
		return nil, err
	}

	switch major {
	case MajorTypeUint, MajorTypeNegInt:
		if minor == minorIndefinite {
			return nil, d.errorf(InvalidLength, start, "indefinite length %s", major)
		}
		if major == MajorTypeUint {
			return Uint(arg), nil
		}
		return NegInt(arg), nil
	case MajorTypeBytes:
		b, err := d.decodeString(major, minor, arg)
		if err != nil {
			return nil, err
		}
		return Bytes(b), nil
	case MajorTypeString:
		b, err := d.decodeString(major, minor, arg)
		if err != nil {
			return nil, err
		}
		return String(b), nil
	case MajorTypeArray:
		return d.decodeArray(start, minor, arg)
	case MajorTypeMap:
		return d.decodeMap(start, minor, arg)
	case MajorTypeTag:
		return d.decodeTag(start, minor, arg)
	default:
		return d.decodeMajor7(start, minor, arg)
	}
}

// enter records one more level of nesting for the container or tag whose
// header starts at start.
func (d *decoder) enter(start int) error {
	d.depth++
	if d.opts.MaxDepth > 0 && d.depth > d.opts.MaxDepth {
		return d.errorf(MaxDepthExceeded, start, "nesting exceeds %d levels", d.opts.MaxDepth)
	}
	return nil
}

func (d *decoder) leave() {
	d.depth--
}

// this routine is used for both string and byte string major types, the value
// of major specifies which context we're in (needed for validating chunks
// inside indefinite encodings)
//
// The returned slice never aliases the input.
func (d *decoder) decodeString(major MajorType, minor byte, n uint64) ([]byte, error) {
	if minor != minorIndefinite {
		payload, err := d.readPayload(major, n)
		if err != nil {
			return nil, err
		}
		return append(make([]byte, 0, len(payload)), payload...), nil
	}

	s := []byte{}
	for {
		if d.off >= len(d.p) {
			return nil, d.errorf(UnexpectedEndOfInput, d.off, "expected break marker in indefinite %s", major)
		}
		if d.p[d.off] == breakMarker {
			d.off++
			return s, nil
		}

		chunkStart := d.off
		chunkMajor, chunkMinor, chunkLen, err := d.readHeader()
		if err != nil {
			return nil, err
		}
		if chunkMajor != major {
			return nil, d.errorf(InvalidIndefiniteElementType, chunkStart,
				"unexpected %s chunk in indefinite %s", chunkMajor, major)
		}
		if chunkMinor == minorIndefinite {
			return nil, d.errorf(InvalidIndefiniteElementType, chunkStart,
				"nested indefinite %s chunk", major)
		}

		chunk, err := d.readPayload(major, chunkLen)
		if err != nil {
			return nil, err
		}
		s = append(s, chunk...)
	}
}

// readPayload returns the next n bytes of string content. Text string content
// is validated per chunk.
func (d *decoder) readPayload(major MajorType, n uint64) ([]byte, error) {
	start := d.off
	if remain := uint64(len(d.p) - start); remain < n {
		return nil, d.errorf(UnexpectedEndOfInput, start, "%s length %d greater than remaining %d bytes", major, n, remain)
	}

	payload := d.p[start : start+int(n)]
	if major == MajorTypeString && !utf8.Valid(payload) {
		return nil, d.errorf(InvalidUTF8, start, "text string is not valid utf-8")
	}
	d.off += int(n)
	return payload, nil
}

// capHint bounds preallocation for a container that claims n elements of at
// least width bytes each by what the remaining input could possibly hold.
func (d *decoder) capHint(n uint64, width int) int {
	remain := uint64((len(d.p) - d.off) / width)
	if n < remain {
		return int(n)
	}
	return int(remain)
}

// atBreak reports whether the cursor sits on a break marker, failing if the
// input ended before an indefinite container was closed.
func (d *decoder) atBreak(major MajorType) (bool, error) {
	if d.off >= len(d.p) {
		return false, d.errorf(UnexpectedEndOfInput, d.off, "expected break marker in indefinite %s", major)
	}
	if d.p[d.off] == breakMarker {
		d.off++
		return true, nil
	}
	return false, nil
}

func (d *decoder) decodeArray(start int, minor byte, n uint64) (Array, error) {
	if err := d.enter(start); err != nil {
		return nil, err
	}
	defer d.leave()

	if minor == minorIndefinite {
		a := Array{}
		for {
			done, err := d.atBreak(MajorTypeArray)
			if err != nil {
				return nil, err
			}
			if done {
				return a, nil
			}

			item, err := d.decode()
			if err != nil {
				return nil, err
			}
			a = append(a, item)
		}
	}

	a := make(Array, 0, d.capHint(n, 1))
	for i := uint64(0); i < n; i++ {
		item, err := d.decode()
		if err != nil {
			return nil, err
		}
		a = append(a, item)
	}
	return a, nil
}

func (d *decoder) decodeMap(start int, minor byte, n uint64) (Map, error) {
	if err := d.enter(start); err != nil {
		return nil, err
	}
	defer d.leave()

	if minor == minorIndefinite {
		m := Map{}
		for {
			done, err := d.atBreak(MajorTypeMap)
			if err != nil {
				return nil, err
			}
			if done {
				return m, nil
			}

			e, err := d.decodeEntry()
			if err != nil {
				return nil, err
			}
			m = append(m, e)
		}
	}

	m := make(Map, 0, d.capHint(n, 2))
	for i := uint64(0); i < n; i++ {
		e, err := d.decodeEntry()
		if err != nil {
			return nil, err
		}
		m = append(m, e)
	}
	return m, nil
}

func (d *decoder) decodeEntry() (Entry, error) {
	key, err := d.decode()
	if err != nil {
		return Entry{}, err
	}
	value, err := d.decode()
	if err != nil {
		return Entry{}, err
	}
	return Entry{Key: key, Value: value}, nil
}

func (d *decoder) decodeTag(start int, minor byte, number uint64) (Value, error) {
	if minor == minorIndefinite {
		return nil, d.errorf(InvalidLength, start, "indefinite length tag")
	}
	if err := d.enter(start); err != nil {
		return nil, err
	}
	defer d.leave()

	v, err := d.decode()
	if err != nil {
		return nil, err
	}

	if d.opts.TagHook != nil {
		return d.opts.TagHook(v, number), nil
	}
	if number == TagSelfDescribe {
		return v, nil
	}
	return &Tag{Number: number, Value: v}, nil
}

func (d *decoder) decodeMajor7(start int, minor byte, arg uint64) (Value, error) {
	switch minor {
	case minorArg1:
		return d.decodeSimple(start, uint8(arg), true)
	case minorArg2:
		return Float(float16to64(uint16(arg))), nil
	case minorArg4:
		return Float(float32to64(uint32(arg))), nil
	case minorArg8:
		return Float(float64frombits(arg)), nil
	case minorIndefinite:
		return nil, d.errorf(InvalidLength, start, "unexpected break marker")
	default:
		return d.decodeSimple(start, minor, false)
	}
}

func (d *decoder) decodeSimple(start int, code uint8, extended bool) (Value, error) {
	if extended && code < 32 && d.opts.StrictSimpleValues {
		return nil, d.errorf(InvalidSimpleValue, start, "simple value %d in extension form", code)
	}

	switch code {
	case major7False, major7True:
		return Bool(code == major7True), nil
	case major7Null:
		return Null{}, nil
	case major7Undefined:
		return Undefined{}, nil
	}

	if d.opts.SimpleHook != nil {
		return d.opts.SimpleHook(code), nil
	}
	return Undefined{}, nil
}
