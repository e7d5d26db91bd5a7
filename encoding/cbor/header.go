package cbor

import "encoding/binary"

// additional information values
const (
	minorArg1       = 24
	minorArg2       = 25
	minorArg4       = 26
	minorArg8       = 27
	minorIndefinite = 31
)

const breakMarker = 0xff

func compose(major MajorType, minor byte) byte {
	return byte(major)<<5 | minor
}

func peekMajor(b byte) MajorType {
	return MajorType(b & 0b_111_00000 >> 5)
}

func peekMinor(b byte) byte {
	return b & 0b_11111
}

// minor value to argument length in bytes, minor must be one of the sized
// arguments
func mtol(minor byte) int {
	switch minor {
	case minorArg1:
		return 1
	case minorArg2:
		return 2
	case minorArg4:
		return 4
	}
	return 8
}

// headerLen returns the number of bytes needed for a header carrying arg in
// its shortest form.
func headerLen(arg uint64) int {
	if arg < 24 {
		return 1 // type and arg in single byte
	} else if arg < 0x100 {
		return 2 // type + 1-byte arg
	} else if arg < 0x10000 {
		return 3 // type + 2-byte arg
	} else if arg < 0x100000000 {
		return 5 // type + 4-byte arg
	}
	return 9 // type + 8-byte arg
}

// encodeHeader writes the shortest header for major type t and argument arg
// into p, returning the number of bytes written.
func encodeHeader(t MajorType, arg uint64, p []byte) int {
	if arg < 24 {
		p[0] = compose(t, byte(arg))
		return 1
	} else if arg < 0x100 {
		p[0] = compose(t, minorArg1)
		p[1] = byte(arg)
		return 2
	} else if arg < 0x10000 {
		p[0] = compose(t, minorArg2)
		binary.BigEndian.PutUint16(p[1:], uint16(arg))
		return 3
	} else if arg < 0x100000000 {
		p[0] = compose(t, minorArg4)
		binary.BigEndian.PutUint32(p[1:], uint32(arg))
		return 5
	}

	p[0] = compose(t, minorArg8)
	binary.BigEndian.PutUint64(p[1:], arg)
	return 9
}

// readHeader pulls the next header out of the buffer and advances the cursor
// past it.
//
// For minor values 24-27 the argument is read from the extension bytes. The
// indefinite marker (31) is returned as-is with a zero argument; callers that
// do not allow it must check for it themselves. Minor values 28-30 are
// reserved for every major type.
func (d *decoder) readHeader() (MajorType, byte, uint64, error) {
	start := d.off
	if start >= len(d.p) {
		return 0, 0, 0, d.errorf(UnexpectedEndOfInput, start, "expected data item header")
	}

	major, minor := peekMajor(d.p[start]), peekMinor(d.p[start])
	switch {
	case minor < 24:
		d.off++
		return major, minor, uint64(minor), nil
	case minor <= minorArg8:
		argLen := mtol(minor)
		if len(d.p)-start-1 < argLen {
			return 0, 0, 0, d.errorf(UnexpectedEndOfInput, start,
				"%s argument needs %d bytes, %d remain", major, argLen, len(d.p)-start-1)
		}
		d.off += 1 + argLen
		return major, minor, readArgument(d.p[start+1:], argLen), nil
	case minor == minorIndefinite:
		d.off++
		return major, minor, 0, nil
	default:
		return 0, 0, 0, d.errorf(InvalidLengthEncoding, start,
			"reserved additional information %d for %s", minor, major)
	}
}

func readArgument(p []byte, n int) uint64 {
	switch n {
	case 1:
		return uint64(p[0])
	case 2:
		return uint64(binary.BigEndian.Uint16(p))
	case 4:
		return uint64(binary.BigEndian.Uint32(p))
	}
	return binary.BigEndian.Uint64(p)
}
