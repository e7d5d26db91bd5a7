package document

import (
	"encoding/json"
	"fmt"

	"github.com/cbor-go/cbor-go/encoding/cbor"
)

// MarshalJSON writes n as a JSON number literal.
func (n Number) MarshalJSON() ([]byte, error) {
	return json.Marshal(json.Number(n))
}

// ToJSON returns the JSON form of v. Integers and floats keep their exact
// decimal value, byte strings become base64 text, undefined becomes null and
// tags become {"Number": N, "Content": ...}.
//
// Maps with keys other than text strings, and NaN or infinite floats, have no
// JSON form and result in an error.
func ToJSON(v cbor.Value) ([]byte, error) {
	g, err := ToGo(v, func(o *Options) {
		o.NumberMode = NumberString
		o.UndefinedAsNil = true
	})
	if err != nil {
		return nil, err
	}

	p, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("no JSON form for %s, %w", cbor.Diagnose(v), err)
	}
	return p, nil
}
