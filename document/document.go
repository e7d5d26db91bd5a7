package document

import (
	"fmt"
	"math/big"
	"strconv"
)

// Number is a arbitrary precision numerical value, in the decimal form
// produced by ToGo with NumberString.
type Number string

// String returns the number as a string.
func (n Number) String() string {
	return string(n)
}

// Int64 returns the number as an int64.
func (n Number) Int64() (int64, error) {
	return n.intOfBitSize(64)
}

func (n Number) intOfBitSize(bitSize int) (int64, error) {
	return strconv.ParseInt(string(n), 10, bitSize)
}

// Uint64 returns the number as an uint64.
func (n Number) Uint64() (uint64, error) {
	return n.uintOfBitSize(64)
}

func (n Number) uintOfBitSize(bitSize int) (uint64, error) {
	return strconv.ParseUint(string(n), 10, bitSize)
}

// BigInt returns the number as an integer of any size.
func (n Number) BigInt() (*big.Int, error) {
	i, ok := new(big.Int).SetString(string(n), 10)
	if !ok {
		return nil, fmt.Errorf("%q is not an integer", string(n))
	}
	return i, nil
}

// Float32 returns the number parsed as a 32-bit float, returns a float64.
func (n Number) Float32() (float64, error) {
	return n.floatOfBitSize(32)
}

// Float64 returns the number as a float64.
func (n Number) Float64() (float64, error) {
	return n.floatOfBitSize(64)
}

func (n Number) floatOfBitSize(bitSize int) (float64, error) {
	return strconv.ParseFloat(string(n), bitSize)
}

// Tagged is the Go form of a tagged data item.
type Tagged struct {
	Number  uint64
	Content interface{}
}

// Undefined is the Go form of the undefined simple value, distinct from nil
// (null).
type Undefined struct{}

// Simple is the Go form of an unassigned simple value.
type Simple uint8

// NumberMode selects the Go types ToGo produces for integers and floats.
type NumberMode int

// Enumeration of number modes
const (
	// NumberNative maps unsigned integers to uint64, negative integers to
	// int64 (or *big.Int below math.MinInt64) and floats to float64.
	NumberNative NumberMode = iota

	// NumberFloat64 maps every number to float64, the form encoding/json
	// and JMESPath use. Integers beyond 2^53 lose precision.
	NumberFloat64

	// NumberString maps every finite number to Number.
	NumberString
)

// Options configures ToGo.
type Options struct {
	NumberMode NumberMode

	// UndefinedAsNil maps undefined to nil instead of Undefined.
	UndefinedAsNil bool

	// DecodeTimes maps well-formed tag 0 and tag 1 items to time.Time.
	// Malformed date/time tags are left as Tagged.
	DecodeTimes bool
}
