// Package document converts between CBOR data items and Go values.
//
// ToGo and FromGo map the cbor.Value model onto untyped Go values (maps,
// slices, numbers, strings), the shape produced by encoding/json and
// gopkg.in/yaml.v3. Marshal, Unmarshal and LazyValue map Go structs through
// struct tags. Search evaluates JMESPath expressions over a data item.
package document

// Unmarshaler provides an abstract representation of document based
// values like CBOR. The Unmarshal method will attempt to
// unmarshal the underlying document's value into the Go type provided.
type Unmarshaler interface {
	UnmarshalDocument(interface{}) error
}
