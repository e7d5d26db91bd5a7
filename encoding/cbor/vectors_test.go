package cbor_test

import (
	"encoding/hex"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cbor-go/cbor-go/encoding/cbor"
	cbortesting "github.com/cbor-go/cbor-go/testing"
)

func ints(n int) cbor.Array {
	a := make(cbor.Array, n)
	for i := range a {
		a[i] = cbor.Uint(i + 1)
	}
	return a
}

func text(s string) cbor.Value { return cbor.String(s) }

// Each vector decodes to Expect and re-encodes to a value that decodes equal
// to Expect. Vectors without NonCanonical also re-encode byte for byte.
var vectors = []struct {
	Name         string
	Hex          string
	Expect       cbor.Value
	NonCanonical bool
}{
	{"PositiveIntegerFix 0", "00", cbor.Uint(0), false},
	{"PositiveIntegerFix 1", "01", cbor.Uint(1), false},
	{"PositiveIntegerFix 10", "0a", cbor.Uint(10), false},
	{"PositiveIntegerFix 23", "17", cbor.Uint(23), false},
	{"PositiveIntegerFix 24", "1818", cbor.Uint(24), false},
	{"PositiveInteger8 25", "1819", cbor.Uint(25), false},
	{"PositiveInteger8 100", "1864", cbor.Uint(100), false},
	{"PositiveInteger16 1000", "1903e8", cbor.Uint(1000), false},
	{"PositiveInteger32 1000000", "1a000f4240", cbor.Uint(1000000), false},
	{"PositiveInteger64 1000000000000", "1b000000e8d4a51000", cbor.Uint(1000000000000), false},
	{"PositiveInteger64 9007199254740991", "1b001fffffffffffff", cbor.Uint(9007199254740991), false},
	{"PositiveInteger64 9007199254740992", "1b0020000000000000", cbor.Uint(9007199254740992), false},
	{"PositiveInteger64 18446744073709551615", "1bffffffffffffffff", cbor.Uint(math.MaxUint64), false},
	{"NegativeIntegerFix -1", "20", cbor.Int(-1), false},
	{"NegativeIntegerFix -10", "29", cbor.Int(-10), false},
	{"NegativeIntegerFix -24", "37", cbor.Int(-24), false},
	{"NegativeInteger8 -25", "3818", cbor.Int(-25), false},
	{"NegativeInteger8 -26", "3819", cbor.Int(-26), false},
	{"NegativeInteger8 -100", "3863", cbor.Int(-100), false},
	{"NegativeInteger16 -1000", "3903e7", cbor.Int(-1000), false},
	{"NegativeInteger32 -1000000", "3a000f423f", cbor.Int(-1000000), false},
	{"NegativeInteger64 -1000000000000", "3b000000e8d4a50fff", cbor.Int(-1000000000000), false},
	{"NegativeInteger64 -9007199254740992", "3b001fffffffffffff", cbor.Int(-9007199254740992), false},
	{"NegativeInteger64 -18446744073709551616", "3bffffffffffffffff", cbor.NegInt(math.MaxUint64), false},
	{"ByteString []", "40", cbor.Bytes{}, false},
	{"Bytestring [1,2,3,4]", "4401020304", cbor.Bytes{1, 2, 3, 4}, false},
	{"Bytestring [1,2,3,4,5]", "5f42010243030405ff", cbor.Bytes{1, 2, 3, 4, 5}, true},
	{"String ''", "60", text(""), false},
	{"String 'a'", "6161", text("a"), false},
	{"String 'IETF'", "6449455446", text("IETF"), false},
	{`String '"\'`, "62225c", text(`"\`), false},
	{"String U+00FC", "62c3bc", text("ü"), false},
	{"String U+6C34", "63e6b0b4", text("水"), false},
	{"String U+10151", "64f0908591", text("\U00010151"), false},
	{"String 'あ'", "63e38182", text("あ"), false},
	{"String 'あいう'", "69e38182e38184e38186", text("あいう"), false},
	{"String 'Ｅ'", "63efbca5", text("Ｅ"), false},
	{"String 'ＥＢＰＭ'", "6cefbca5efbca2efbcb0efbcad", text("ＥＢＰＭ"), false},
	{"String 'streaming'", "7f657374726561646d696e67ff", text("streaming"), true},
	{"Array []", "80", cbor.Array{}, false},
	{"Array ['a', {'b': 'c'}]", "826161a161626163",
		cbor.Array{text("a"), cbor.Map{{Key: text("b"), Value: text("c")}}}, false},
	{"Array ['a', {_ 'b': 'c'}]", "826161bf61626163ff",
		cbor.Array{text("a"), cbor.Map{{Key: text("b"), Value: text("c")}}}, true},
	{"Array [1,2,3]", "83010203", ints(3), false},
	{"Array [1, [2, 3], [4, 5]]", "8301820203820405",
		cbor.Array{cbor.Uint(1), cbor.Array{cbor.Uint(2), cbor.Uint(3)}, cbor.Array{cbor.Uint(4), cbor.Uint(5)}}, false},
	{"Array [1, [2, 3], [_ 4, 5]]", "83018202039f0405ff",
		cbor.Array{cbor.Uint(1), cbor.Array{cbor.Uint(2), cbor.Uint(3)}, cbor.Array{cbor.Uint(4), cbor.Uint(5)}}, true},
	{"Array [1, [_ 2, 3], [4, 5]]", "83019f0203ff820405",
		cbor.Array{cbor.Uint(1), cbor.Array{cbor.Uint(2), cbor.Uint(3)}, cbor.Array{cbor.Uint(4), cbor.Uint(5)}}, true},
	{"Array [1..25]", "98190102030405060708090a0b0c0d0e0f101112131415161718181819", ints(25), false},
	{"Array [_ 1..25]", "9f0102030405060708090a0b0c0d0e0f101112131415161718181819ff", ints(25), true},
	{"Array [_ 1, [2, 3], [4, 5]]", "9f01820203820405ff",
		cbor.Array{cbor.Uint(1), cbor.Array{cbor.Uint(2), cbor.Uint(3)}, cbor.Array{cbor.Uint(4), cbor.Uint(5)}}, true},
	{"Array [_ 1, [2, 3], [_ 4, 5]]", "9f018202039f0405ffff",
		cbor.Array{cbor.Uint(1), cbor.Array{cbor.Uint(2), cbor.Uint(3)}, cbor.Array{cbor.Uint(4), cbor.Uint(5)}}, true},
	{"Array [_ ]", "9fff", cbor.Array{}, true},
	{"Object {}", "a0", cbor.Map{}, false},
	{"Object {1: 2, 3: 4}", "a201020304",
		cbor.Map{{Key: cbor.Uint(1), Value: cbor.Uint(2)}, {Key: cbor.Uint(3), Value: cbor.Uint(4)}}, false},
	{"Object {'a': 1, 'b': [2, 3]}", "a26161016162820203",
		cbor.Map{{Key: text("a"), Value: cbor.Uint(1)}, {Key: text("b"), Value: cbor.Array{cbor.Uint(2), cbor.Uint(3)}}}, false},
	{"Object {'a': 'A', ..., 'e': 'E'}", "a56161614161626142616361436164614461656145",
		cbor.Map{
			{Key: text("a"), Value: text("A")},
			{Key: text("b"), Value: text("B")},
			{Key: text("c"), Value: text("C")},
			{Key: text("d"), Value: text("D")},
			{Key: text("e"), Value: text("E")},
		}, false},
	{"Object {_ 'a': 1, 'b': [_ 2, 3]}", "bf61610161629f0203ffff",
		cbor.Map{{Key: text("a"), Value: cbor.Uint(1)}, {Key: text("b"), Value: cbor.Array{cbor.Uint(2), cbor.Uint(3)}}}, true},
	{"Object {_ 'Fun': true, 'Amt': -2}", "bf6346756ef563416d7421ff",
		cbor.Map{{Key: text("Fun"), Value: cbor.Bool(true)}, {Key: text("Amt"), Value: cbor.Int(-2)}}, true},
	{"Tag Self-describe CBOR 0", "d9d9f700", cbor.Uint(0), true},
	{"false", "f4", cbor.Bool(false), false},
	{"true", "f5", cbor.Bool(true), false},
	{"null", "f6", cbor.Null{}, false},
	{"undefined", "f7", cbor.Undefined{}, false},
	{"UnassignedSimpleValue 255", "f8ff", cbor.Undefined{}, true},
	{"Float16 0.0", "f90000", cbor.Float(0), true},
	{"Float16 -0.0", "f98000", cbor.Float(math.Copysign(0, -1)), true},
	{"Float16 1.0", "f93c00", cbor.Float(1), true},
	{"Float16 1.5", "f93e00", cbor.Float(1.5), true},
	{"Float16 65504.0", "f97bff", cbor.Float(65504), true},
	{"Float16 5.960464477539063e-8", "f90001", cbor.Float(5.960464477539063e-8), true},
	{"Float16 0.00006103515625", "f90400", cbor.Float(0.00006103515625), true},
	{"Float16 -5.960464477539063e-8", "f98001", cbor.Float(-5.960464477539063e-8), true},
	{"Float16 -4.0", "f9c400", cbor.Float(-4), true},
	{"Float16 +Infinity", "f97c00", cbor.Float(math.Inf(1)), true},
	{"Float16 NaN", "f97e00", cbor.Float(math.NaN()), true},
	{"Float16 -Infinity", "f9fc00", cbor.Float(math.Inf(-1)), true},
	{"Float32 100000.0", "fa47c35000", cbor.Float(100000), true},
	{"Float32 3.4028234663852886e+38", "fa7f7fffff", cbor.Float(3.4028234663852886e+38), true},
	{"Float32 +Infinity", "fa7f800000", cbor.Float(math.Inf(1)), true},
	{"Float32 NaN", "fa7fc00000", cbor.Float(math.NaN()), true},
	{"Float32 -Infinity", "faff800000", cbor.Float(math.Inf(-1)), true},
	{"Float64 1.1", "fb3ff199999999999a", cbor.Float(1.1), false},
	{"Float64 9007199254740994", "fb4340000000000001", cbor.Float(9007199254740994), false},
	{"Float64 1.0e+300", "fb7e37e43c8800759c", cbor.Float(1.0e+300), false},
	{"Float64 -4.1", "fbc010666666666666", cbor.Float(-4.1), false},
	{"Float64 -9007199254740994", "fbc340000000000001", cbor.Float(-9007199254740994), false},
	{"Float64 +Infinity", "fb7ff0000000000000", cbor.Float(math.Inf(1)), false},
	{"Float64 NaN", "fb7ff8000000000000", cbor.Float(math.NaN()), true},
	{"Float64 -Infinity", "fbfff0000000000000", cbor.Float(math.Inf(-1)), false},
}

func TestVectors(t *testing.T) {
	for _, c := range vectors {
		t.Run(c.Name, func(t *testing.T) {
			in := cbortesting.MustDecodeHex(t, c.Hex)

			decoded, err := cbor.Decode(in)
			if err != nil {
				t.Fatalf("decode: expect no err, got %v", err)
			}
			cbortesting.AssertValueEqual(t, c.Expect, decoded)

			encoded, err := cbor.Encode(c.Expect)
			if err != nil {
				t.Fatalf("encode: expect no err, got %v", err)
			}
			redecoded, err := cbor.Decode(encoded)
			if err != nil {
				t.Fatalf("decode encoded: expect no err, got %v", err)
			}
			cbortesting.AssertValueEqual(t, c.Expect, redecoded)

			if !c.NonCanonical {
				if actual := hex.EncodeToString(encoded); actual != c.Hex {
					t.Errorf("expect bytes %s, got %s", c.Hex, actual)
				}
			}
		})
	}
}

func TestNegativeZeroRoundTrip(t *testing.T) {
	encoded, err := cbor.Encode(cbor.Float(math.Copysign(0, -1)))
	if err != nil {
		t.Fatal(err)
	}
	if actual := hex.EncodeToString(encoded); actual != "fb8000000000000000" {
		t.Errorf("expect fb8000000000000000, got %s", actual)
	}
}

func TestBigArray(t *testing.T) {
	const n = 0x10001

	value := make(cbor.Array, n)
	for i := range value {
		value[i] = cbor.Uint(i)
	}

	encoded, err := cbor.Encode(value)
	if err != nil {
		t.Fatal(err)
	}
	if actual := hex.EncodeToString(encoded[:5]); actual != "9a00010001" {
		t.Errorf("expect 4 byte length header, got %s", actual)
	}

	decoded, err := cbor.Decode(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if !cbor.Equal(value, decoded) {
		t.Errorf("big array did not round trip")
	}
}

func TestRemainingBytes(t *testing.T) {
	_, err := cbor.Decode(make([]byte, 2))
	if !errors.Is(err, cbor.ErrTrailingData) {
		t.Fatalf("expect trailing data error, got %v", err)
	}

	var derr *cbor.DecodeError
	if !errors.As(err, &derr) {
		t.Fatalf("expect *DecodeError, got %T", err)
	}
	if derr.Offset != 1 {
		t.Errorf("expect offset 1, got %d", derr.Offset)
	}
}

func TestMalformed(t *testing.T) {
	for name, c := range map[string]struct {
		Hex    string
		Expect error
	}{
		"invalid length encoding":                  {"1e", cbor.ErrInvalidLengthEncoding},
		"invalid length":                           {"1f", cbor.ErrInvalidLength},
		"invalid indefinite length element type":   {"5f00", cbor.ErrInvalidIndefiniteElementType},
		"invalid indefinite length element length": {"5f5f", cbor.ErrInvalidIndefiniteElementType},
		"truncated":                                {"1903", cbor.ErrUnexpectedEndOfInput},
		"lone break":                               {"ff", cbor.ErrInvalidLength},
		"indefinite tag":                           {"df00", cbor.ErrInvalidLength},
		"invalid utf-8":                            {"61ff", cbor.ErrInvalidUTF8},
		"empty":                                    {"", cbor.ErrUnexpectedEndOfInput},
	} {
		t.Run(name, func(t *testing.T) {
			v, err := cbor.Decode(cbortesting.MustDecodeHex(t, c.Hex))
			if err == nil {
				t.Fatalf("expect error, got %s", cbor.Diagnose(v))
			}
			if !errors.Is(err, c.Expect) {
				t.Errorf("expect %v, got %v", c.Expect, err)
			}
			if !strings.HasPrefix(err.Error(), "cbor: ") {
				t.Errorf("expect cbor prefix, got %q", err.Error())
			}
		})
	}
}

type taggedValue struct {
	cbor.Value
	Tag uint64
}

type simpleValue struct {
	cbor.Simple
}

func TestTagging(t *testing.T) {
	in := cbortesting.MustDecodeHex(t, "83d81203d9456708f8f0")

	var (
		tagCalls    []taggedValue
		simpleCalls []uint8
	)
	decoded, err := cbor.Decode(in,
		cbor.WithTagHook(func(v cbor.Value, tag uint64) cbor.Value {
			tagCalls = append(tagCalls, taggedValue{Value: v, Tag: tag})
			return taggedValue{Value: v, Tag: tag}
		}),
		cbor.WithSimpleHook(func(code uint8) cbor.Value {
			simpleCalls = append(simpleCalls, code)
			return simpleValue{cbor.Simple(code)}
		}),
	)
	if err != nil {
		t.Fatal(err)
	}

	expectTagCalls := []taggedValue{
		{cbor.Uint(3), 0x12},
		{cbor.Uint(8), 0x4567},
	}
	if len(tagCalls) != len(expectTagCalls) {
		t.Fatalf("expect tag hook called %d times, got %d", len(expectTagCalls), len(tagCalls))
	}
	for i, expect := range expectTagCalls {
		if tagCalls[i].Tag != expect.Tag {
			t.Errorf("tag call %d: expect tag %d, got %d", i, expect.Tag, tagCalls[i].Tag)
		}
		cbortesting.AssertValueEqual(t, expect.Value, tagCalls[i].Value)
	}
	if diff := cmp.Diff([]uint8{0xf0}, simpleCalls); len(diff) != 0 {
		t.Errorf("simple hook calls mismatch (-expect +actual):\n%s", diff)
	}

	a, ok := decoded.(cbor.Array)
	if !ok || len(a) != 3 {
		t.Fatalf("expect array of 3, got %s", cbor.Diagnose(decoded))
	}

	for i, expect := range expectTagCalls {
		tv, ok := a[i].(taggedValue)
		if !ok {
			t.Fatalf("item %d: expect taggedValue, got %T", i, a[i])
		}
		if tv.Tag != expect.Tag {
			t.Errorf("item %d: expect tag %d, got %d", i, expect.Tag, tv.Tag)
		}
		cbortesting.AssertValueEqual(t, expect.Value, tv.Value)
	}

	sv, ok := a[2].(simpleValue)
	if !ok {
		t.Fatalf("item 2: expect simpleValue, got %T", a[2])
	}
	if sv.Simple != 0xf0 {
		t.Errorf("item 2: expect simple 240, got %d", sv.Simple)
	}
}

func TestTagging_Defaults(t *testing.T) {
	decoded, err := cbor.Decode(cbortesting.MustDecodeHex(t, "83d81203d9456708f8f0"))
	if err != nil {
		t.Fatal(err)
	}

	cbortesting.AssertValueEqual(t, cbor.Array{
		&cbor.Tag{Number: 0x12, Value: cbor.Uint(3)},
		&cbor.Tag{Number: 0x4567, Value: cbor.Uint(8)},
		cbor.Undefined{},
	}, decoded)
}

func TestTagging_SelfDescribeHook(t *testing.T) {
	var seen []uint64
	decoded, err := cbor.Decode(cbortesting.MustDecodeHex(t, "d9d9f700"),
		cbor.WithTagHook(func(v cbor.Value, tag uint64) cbor.Value {
			seen = append(seen, tag)
			return v
		}),
	)
	if err != nil {
		t.Fatal(err)
	}
	cbortesting.AssertValueEqual(t, cbor.Uint(0), decoded)
	if len(seen) != 1 || seen[0] != cbor.TagSelfDescribe {
		t.Errorf("expect hook called with 55799, got %v", seen)
	}
}

func TestDecodeFirst(t *testing.T) {
	org := cbor.Map{
		{Key: text("a"), Value: cbor.Uint(123)},
		{Key: text("b"), Value: text("abc")},
	}
	encoded, err := cbor.Encode(org)
	if err != nil {
		t.Fatal(err)
	}

	bin := make([]byte, len(encoded)*2)
	copy(bin, encoded)

	if _, err := cbor.Decode(bin); !errors.Is(err, cbor.ErrTrailingData) {
		t.Errorf("expect trailing data error, got %v", err)
	}

	decoded, n, err := cbor.DecodeFirst(bin)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(encoded) {
		t.Errorf("expect %d bytes consumed, got %d", len(encoded), n)
	}
	cbortesting.AssertValueEqual(t, org, decoded)
}
