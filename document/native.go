package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"sort"
	"strconv"
	"time"

	"github.com/cbor-go/cbor-go/encoding/cbor"
	cbortime "github.com/cbor-go/cbor-go/time"
)

// ToGo returns the untyped Go form of v:
//
//	Uint, NegInt     uint64, int64 or *big.Int (see NumberMode)
//	Bytes            []byte
//	String           string
//	Array            []interface{}
//	Map              map[string]interface{} if every key is a text string,
//	                 map[interface{}]interface{} otherwise
//	*Tag             Tagged, or time.Time for tags 0 and 1 with DecodeTimes
//	Bool             bool
//	Null             nil
//	Undefined        Undefined
//	Simple           Simple
//	Float            float64
//
// Later duplicates of a map key replace earlier ones. Map keys whose Go form
// is not comparable (byte strings, arrays, maps) result in an error.
func ToGo(v cbor.Value, optFns ...func(*Options)) (interface{}, error) {
	var o Options
	for _, fn := range optFns {
		fn(&o)
	}
	return o.toGo(v)
}

func (o Options) toGo(v cbor.Value) (interface{}, error) {
	switch vv := v.(type) {
	case cbor.Uint:
		switch o.NumberMode {
		case NumberFloat64:
			return float64(vv), nil
		case NumberString:
			return Number(strconv.FormatUint(uint64(vv), 10)), nil
		}
		return uint64(vv), nil
	case cbor.NegInt:
		i, ok := vv.Int64()
		switch o.NumberMode {
		case NumberFloat64:
			if ok {
				return float64(i), nil
			}
			f, _ := new(big.Float).SetInt(vv.BigInt()).Float64()
			return f, nil
		case NumberString:
			return Number(vv.BigInt().String()), nil
		}
		if ok {
			return i, nil
		}
		return vv.BigInt(), nil
	case cbor.Bytes:
		return append([]byte{}, vv...), nil
	case cbor.String:
		return string(vv), nil
	case cbor.Array:
		s := make([]interface{}, len(vv))
		for i, item := range vv {
			gv, err := o.toGo(item)
			if err != nil {
				return nil, err
			}
			s[i] = gv
		}
		return s, nil
	case cbor.Map:
		return o.mapToGo(vv)
	case *cbor.Tag:
		if vv == nil {
			return nil, fmt.Errorf("nil tag")
		}
		if o.DecodeTimes && (vv.Number == cbortime.TagDateTime || vv.Number == cbortime.TagEpoch) {
			if t, err := cbortime.Decode(vv); err == nil {
				return t, nil
			}
		}
		content, err := o.toGo(vv.Value)
		if err != nil {
			return nil, err
		}
		return Tagged{Number: vv.Number, Content: content}, nil
	case cbor.Bool:
		return bool(vv), nil
	case cbor.Null:
		return nil, nil
	case cbor.Undefined:
		if o.UndefinedAsNil {
			return nil, nil
		}
		return Undefined{}, nil
	case cbor.Simple:
		return Simple(vv), nil
	case cbor.Float:
		f := float64(vv)
		if o.NumberMode == NumberString && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return Number(strconv.FormatFloat(f, 'g', -1, 64)), nil
		}
		return f, nil
	}
	return nil, fmt.Errorf("unsupported value %T", v)
}

func (o Options) mapToGo(m cbor.Map) (interface{}, error) {
	textKeys := true
	for _, e := range m {
		if _, ok := e.Key.(cbor.String); !ok {
			textKeys = false
			break
		}
	}

	if textKeys {
		gm := make(map[string]interface{}, len(m))
		for _, e := range m {
			gv, err := o.toGo(e.Value)
			if err != nil {
				return nil, err
			}
			gm[string(e.Key.(cbor.String))] = gv
		}
		return gm, nil
	}

	gm := make(map[interface{}]interface{}, len(m))
	for _, e := range m {
		gk, err := o.toGo(e.Key)
		if err != nil {
			return nil, err
		}
		if !hashable(gk) {
			return nil, fmt.Errorf("map key %s has no comparable Go form", cbor.Diagnose(e.Key))
		}
		gv, err := o.toGo(e.Value)
		if err != nil {
			return nil, err
		}
		gm[gk] = gv
	}
	return gm, nil
}

func hashable(k interface{}) bool {
	if t, ok := k.(Tagged); ok {
		return hashable(t.Content)
	}
	return k == nil || reflect.TypeOf(k).Comparable()
}

// FromGo returns the data item describing x. It accepts the forms ToGo
// produces plus every Go integer, float, string, slice, array and map type,
// json.Number, *big.Int, time.Time and cbor.Value. Nil pointers, slices and
// maps become null. A time.Time becomes an epoch tag (tag 1). Other structs
// are mapped through Marshal.
//
// Map keys are sorted by their encoded form, so equal Go maps always produce
// equal data items.
func FromGo(x interface{}) (cbor.Value, error) {
	return fromGo(x, false)
}

// fromGo converts x. With integralFloats, float64 values holding an integer
// within the float64 exact range become Uint or NegInt.
func fromGo(x interface{}, integralFloats bool) (cbor.Value, error) {
	switch v := x.(type) {
	case nil:
		return cbor.Null{}, nil
	case cbor.Value:
		return v, nil
	case bool:
		return cbor.Bool(v), nil
	case int:
		return cbor.Int(int64(v)), nil
	case int8:
		return cbor.Int(int64(v)), nil
	case int16:
		return cbor.Int(int64(v)), nil
	case int32:
		return cbor.Int(int64(v)), nil
	case int64:
		return cbor.Int(v), nil
	case uint:
		return cbor.Uint(uint64(v)), nil
	case uint8:
		return cbor.Uint(uint64(v)), nil
	case uint16:
		return cbor.Uint(uint64(v)), nil
	case uint32:
		return cbor.Uint(uint64(v)), nil
	case uint64:
		return cbor.Uint(v), nil
	case float32:
		return cbor.Float(float64(v)), nil
	case float64:
		if integralFloats && v == math.Trunc(v) && math.Abs(v) <= 1<<53 {
			return cbor.Int(int64(v)), nil
		}
		return cbor.Float(v), nil
	case string:
		return cbor.String(v), nil
	case []byte:
		if v == nil {
			return cbor.Null{}, nil
		}
		return cbor.Bytes(append([]byte{}, v...)), nil
	case Number:
		return numberFromString(string(v))
	case json.Number:
		return numberFromString(v.String())
	case *big.Int:
		if v == nil {
			return cbor.Null{}, nil
		}
		return cbor.FromBigInt(v)
	case Tagged:
		content, err := fromGo(v.Content, integralFloats)
		if err != nil {
			return nil, err
		}
		return &cbor.Tag{Number: v.Number, Value: content}, nil
	case time.Time:
		return cbortime.Epoch(v), nil
	case Undefined:
		return cbor.Undefined{}, nil
	case Simple:
		return cbor.Simple(v), nil
	case []interface{}:
		if v == nil {
			return cbor.Null{}, nil
		}
		a := make(cbor.Array, len(v))
		for i, item := range v {
			cv, err := fromGo(item, integralFloats)
			if err != nil {
				return nil, err
			}
			a[i] = cv
		}
		return a, nil
	case map[string]interface{}:
		if v == nil {
			return cbor.Null{}, nil
		}
		m := make(cbor.Map, 0, len(v))
		for k, item := range v {
			cv, err := fromGo(item, integralFloats)
			if err != nil {
				return nil, err
			}
			m = append(m, cbor.Entry{Key: cbor.String(k), Value: cv})
		}
		return sortMap(m)
	case map[interface{}]interface{}:
		if v == nil {
			return cbor.Null{}, nil
		}
		m := make(cbor.Map, 0, len(v))
		for k, item := range v {
			ck, err := fromGo(k, integralFloats)
			if err != nil {
				return nil, err
			}
			cv, err := fromGo(item, integralFloats)
			if err != nil {
				return nil, err
			}
			m = append(m, cbor.Entry{Key: ck, Value: cv})
		}
		return sortMap(m)
	}
	return fromReflect(reflect.ValueOf(x), integralFloats)
}

func fromReflect(rv reflect.Value, integralFloats bool) (cbor.Value, error) {
	switch rv.Kind() {
	case reflect.Invalid:
		return cbor.Null{}, nil
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return cbor.Null{}, nil
		}
		return fromGo(rv.Elem().Interface(), integralFloats)
	case reflect.Bool:
		return cbor.Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cbor.Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cbor.Uint(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return cbor.Float(rv.Float()), nil
	case reflect.String:
		return cbor.String(rv.String()), nil
	case reflect.Slice:
		if rv.IsNil() {
			return cbor.Null{}, nil
		}
		fallthrough
	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(b), rv)
			return cbor.Bytes(b), nil
		}
		a := make(cbor.Array, rv.Len())
		for i := range a {
			cv, err := fromGo(rv.Index(i).Interface(), integralFloats)
			if err != nil {
				return nil, err
			}
			a[i] = cv
		}
		return a, nil
	case reflect.Map:
		if rv.IsNil() {
			return cbor.Null{}, nil
		}
		m := make(cbor.Map, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			ck, err := fromGo(iter.Key().Interface(), integralFloats)
			if err != nil {
				return nil, err
			}
			cv, err := fromGo(iter.Value().Interface(), integralFloats)
			if err != nil {
				return nil, err
			}
			m = append(m, cbor.Entry{Key: ck, Value: cv})
		}
		return sortMap(m)
	case reflect.Struct:
		return Marshal(rv.Interface())
	}
	return nil, fmt.Errorf("unsupported Go type %v", rv.Type())
}

func numberFromString(s string) (cbor.Value, error) {
	if i, ok := new(big.Int).SetString(s, 10); ok {
		return cbor.FromBigInt(i)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q, %w", s, err)
	}
	return cbor.Float(f), nil
}

type encodedMap struct {
	m    cbor.Map
	keys [][]byte
}

func (e encodedMap) Len() int           { return len(e.m) }
func (e encodedMap) Less(i, j int) bool { return bytes.Compare(e.keys[i], e.keys[j]) < 0 }
func (e encodedMap) Swap(i, j int) {
	e.m[i], e.m[j] = e.m[j], e.m[i]
	e.keys[i], e.keys[j] = e.keys[j], e.keys[i]
}

// sortMap orders entries by the bytewise order of their encoded keys.
func sortMap(m cbor.Map) (cbor.Map, error) {
	keys := make([][]byte, len(m))
	for i, e := range m {
		k, err := cbor.Encode(e.Key)
		if err != nil {
			return nil, fmt.Errorf("unable to encode map key, %w", err)
		}
		keys[i] = k
	}
	sort.Sort(encodedMap{m: m, keys: keys})
	return m, nil
}
