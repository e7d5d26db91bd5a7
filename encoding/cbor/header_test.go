package cbor

import (
	"encoding/hex"
	"math"
	"testing"
)

func TestEncodeHeader_ShortestForm(t *testing.T) {
	for name, c := range map[string]struct {
		Major  MajorType
		Arg    uint64
		Expect string
	}{
		"0/min":        {MajorTypeUint, 0, "00"},
		"0/max":        {MajorTypeUint, 23, "17"},
		"1/min":        {MajorTypeUint, 24, "1818"},
		"1/max":        {MajorTypeUint, 0xff, "18ff"},
		"2/min":        {MajorTypeUint, 0x100, "190100"},
		"2/max":        {MajorTypeUint, 0xffff, "19ffff"},
		"4/min":        {MajorTypeUint, 0x10000, "1a00010000"},
		"4/max":        {MajorTypeUint, 0xffffffff, "1affffffff"},
		"8/min":        {MajorTypeUint, 0x100000000, "1b0000000100000000"},
		"8/max":        {MajorTypeUint, math.MaxUint64, "1bffffffffffffffff"},
		"negint":       {MajorTypeNegInt, 999, "3903e7"},
		"bytes":        {MajorTypeBytes, 4, "44"},
		"string":       {MajorTypeString, 24, "7818"},
		"array":        {MajorTypeArray, 25, "9819"},
		"map":          {MajorTypeMap, 0, "a0"},
		"tag":          {MajorTypeTag, TagSelfDescribe, "d9d9f7"},
		"major7/short": {MajorType7, 16, "f0"},
		"major7/long":  {MajorType7, 255, "f8ff"},
	} {
		t.Run(name, func(t *testing.T) {
			p := make([]byte, 9)
			n := encodeHeader(c.Major, c.Arg, p)
			if actual := hex.EncodeToString(p[:n]); actual != c.Expect {
				t.Errorf("expect %s, got %s", c.Expect, actual)
			}
			if l := headerLen(c.Arg); l != n {
				t.Errorf("headerLen %d != written %d", l, n)
			}
		})
	}
}

func TestReadHeader(t *testing.T) {
	for name, c := range map[string]struct {
		In     []byte
		Major  MajorType
		Minor  byte
		Arg    uint64
		Offset int
	}{
		"literal": {
			[]byte{3<<5 | 5}, MajorTypeString, 5, 5, 1,
		},
		"1 byte": {
			[]byte{0<<5 | 24, 0x64}, MajorTypeUint, 24, 100, 2,
		},
		"2 bytes": {
			[]byte{1<<5 | 25, 0x03, 0xe7}, MajorTypeNegInt, 25, 999, 3,
		},
		"4 bytes": {
			[]byte{0<<5 | 26, 0x00, 0x0f, 0x42, 0x40}, MajorTypeUint, 26, 1000000, 5,
		},
		"8 bytes": {
			[]byte{0<<5 | 27, 0, 0, 0, 0xe8, 0xd4, 0xa5, 0x10, 0x00}, MajorTypeUint, 27, 1000000000000, 9,
		},
		"indefinite": {
			[]byte{4<<5 | 31}, MajorTypeArray, 31, 0, 1,
		},
		"extra bytes untouched": {
			[]byte{0<<5 | 1, 0xff}, MajorTypeUint, 1, 1, 1,
		},
	} {
		t.Run(name, func(t *testing.T) {
			d := &decoder{p: c.In}
			major, minor, arg, err := d.readHeader()
			if err != nil {
				t.Fatalf("expect no err, got %v", err)
			}
			if major != c.Major {
				t.Errorf("major %v != %v", c.Major, major)
			}
			if minor != c.Minor {
				t.Errorf("minor %d != %d", c.Minor, minor)
			}
			if arg != c.Arg {
				t.Errorf("arg %d != %d", c.Arg, arg)
			}
			assertEqInt(t, c.Offset, d.off, "cursor")
		})
	}
}

func TestReadHeader_Invalid(t *testing.T) {
	for name, c := range map[string]struct {
		In   []byte
		Kind ErrorKind
	}{
		"empty":      {[]byte{}, UnexpectedEndOfInput},
		"1 byte/eof": {[]byte{0<<5 | 24}, UnexpectedEndOfInput},
		"2 byte/eof": {[]byte{0<<5 | 25, 0}, UnexpectedEndOfInput},
		"4 byte/eof": {[]byte{0<<5 | 26, 0, 0, 0}, UnexpectedEndOfInput},
		"8 byte/eof": {[]byte{0<<5 | 27, 0, 0, 0, 0, 0, 0, 0}, UnexpectedEndOfInput},
		"28":         {[]byte{0<<5 | 28}, InvalidLengthEncoding},
		"29":         {[]byte{2<<5 | 29}, InvalidLengthEncoding},
		"30":         {[]byte{7<<5 | 30}, InvalidLengthEncoding},
	} {
		t.Run(name, func(t *testing.T) {
			d := &decoder{p: c.In}
			_, _, _, err := d.readHeader()
			assertDecodeError(t, err, c.Kind, 0)
		})
	}
}
