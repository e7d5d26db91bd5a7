package cbor

import (
	"math"

	"github.com/x448/float16"
)

// float16to64 widens an IEEE 754 binary16 value. Every half precision value,
// including subnormals, signed zeros, infinities and NaN, is exactly
// representable as a float64.
func float16to64(bits uint16) float64 {
	return float64(float16.Frombits(bits).Float32())
}

func float32to64(bits uint32) float64 {
	return float64(math.Float32frombits(bits))
}

func float64frombits(bits uint64) float64 {
	return math.Float64frombits(bits)
}
