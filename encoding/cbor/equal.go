package cbor

import (
	"bytes"
	"math"
	"reflect"
)

// Equal reports whether a and b describe the same data item.
//
// Floats compare by value with NaN equal to NaN, so 0.0 and -0.0 are equal.
// Byte strings compare element-wise with nil equal to empty. Arrays and maps
// compare in order. Values of other types, such as those returned by hooks,
// compare with reflect.DeepEqual.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case Bytes:
		bv, ok := b.(Bytes)
		return ok && bytes.Equal(av, bv)
	case Array:
		bv, ok := b.(Array)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case Map:
		bv, ok := b.(Map)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i].Key, bv[i].Key) || !Equal(av[i].Value, bv[i].Value) {
				return false
			}
		}
		return true
	case *Tag:
		bv, ok := b.(*Tag)
		if !ok {
			return false
		}
		if av == nil || bv == nil {
			return av == bv
		}
		return av.Number == bv.Number && Equal(av.Value, bv.Value)
	case Float:
		bv, ok := b.(Float)
		if !ok {
			return false
		}
		return av == bv || (math.IsNaN(float64(av)) && math.IsNaN(float64(bv)))
	case Uint, NegInt, String, Bool, Null, Undefined, Simple:
		return a == b
	default:
		return reflect.DeepEqual(a, b)
	}
}
