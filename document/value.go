package document

import (
	"fmt"
	"sync"

	fxcbor "github.com/fxamacker/cbor/v2"

	"github.com/cbor-go/cbor-go/encoding/cbor"
)

var (
	cachedEncMode     fxcbor.EncMode
	cachedEncModeErr  error
	cachedEncModeOnce sync.Once

	cachedDecMode     fxcbor.DecMode
	cachedDecModeErr  error
	cachedDecModeOnce sync.Once
)

// getEncMode returns the struct encoder, initializing it on first use. Map
// keys are written in core deterministic order.
func getEncMode() (fxcbor.EncMode, error) {
	cachedEncModeOnce.Do(func() {
		cachedEncMode, cachedEncModeErr = fxcbor.EncOptions{
			Sort:    fxcbor.SortCoreDeterministic,
			Time:    fxcbor.TimeUnixDynamic,
			TimeTag: fxcbor.EncTagRequired,
		}.EncMode()
	})
	return cachedEncMode, cachedEncModeErr
}

// getDecMode returns the struct decoder, initializing it on first use.
func getDecMode() (fxcbor.DecMode, error) {
	cachedDecModeOnce.Do(func() {
		cachedDecMode, cachedDecModeErr = fxcbor.DecOptions{
			MaxNestedLevels: 256,
		}.DecMode()
	})
	return cachedDecMode, cachedDecModeErr
}

// Marshal returns the data item for the Go value v, honoring `cbor` struct
// tags (and `json` tags when no `cbor` tag is present).
func Marshal(v interface{}) (cbor.Value, error) {
	em, err := getEncMode()
	if err != nil {
		return nil, err
	}

	p, err := em.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("unable to marshal document value, %w", err)
	}

	cv, err := cbor.Decode(p)
	if err != nil {
		return nil, fmt.Errorf("unable to marshal document value, %w", err)
	}
	return cv, nil
}

// Unmarshal stores the data item v in the Go value pointed to by t. Will
// return an error if t is not a non-nil pointer.
func Unmarshal(v cbor.Value, t interface{}) error {
	p, err := cbor.Encode(v)
	if err != nil {
		return fmt.Errorf("unable to unmarshal document value, %w", err)
	}
	return RawCBOR(p).UnmarshalDocument(t)
}

// Value provides an interface for encapsulating arbitrary Go values within an
// API protocol agnostic document.
type Value interface {
	// Attempts to unmarshal the document value into the Go type provided.
	UnmarshalDocument(interface{}) error

	// GetValue returns the underlying document value.
	GetValue() (interface{}, error)
}

// LazyValue provides a generic wrapper for Go values that are converted to
// a data item only when needed.
type LazyValue struct {
	Value interface{}
}

// NewLazyValue returns an initialized LazyValue wrapping the provided
// Go value.
func NewLazyValue(v interface{}) LazyValue {
	return LazyValue{
		Value: v,
	}
}

// UnmarshalDocument attempts to convert the wrapped value into the Go type
// provided by encoding it to CBOR and decoding the result into t.
func (d LazyValue) UnmarshalDocument(t interface{}) error {
	em, err := getEncMode()
	if err != nil {
		return err
	}

	blob, err := em.Marshal(d.Value)
	if err != nil {
		return fmt.Errorf("unable to convert document value, %w", err)
	}

	if err := RawCBOR(blob).UnmarshalDocument(t); err != nil {
		return fmt.Errorf("unable to convert document value, %w", err)
	}

	return nil
}

// GetValue returns the underlying document value.
func (d LazyValue) GetValue() (interface{}, error) {
	return d.Value, nil
}

// CBORValue returns the data item describing the wrapped value.
func (d LazyValue) CBORValue() (cbor.Value, error) {
	return FromGo(d.Value)
}

// RawCBOR provides a document for a byte slice holding one encoded data item.
type RawCBOR []byte

// MarshalCBORDocument attempts to marshal the Go value into a CBOR document.
// Returns a marshaled raw CBOR document value, or error if marshaling failed.
func MarshalCBORDocument(v interface{}) (RawCBOR, error) {
	em, err := getEncMode()
	if err != nil {
		return nil, err
	}

	b, err := em.Marshal(v)
	if err != nil {
		return nil, err
	}
	return RawCBOR(b), nil
}

// UnmarshalDocument attempts to unmarshal the CBOR document into the Go type
// provided. Returns an error if the document could not be unmarshalled.
func (d RawCBOR) UnmarshalDocument(t interface{}) error {
	dm, err := getDecMode()
	if err != nil {
		return err
	}
	return dm.Unmarshal(d, t)
}

// GetValue returns the decoded data item.
func (d RawCBOR) GetValue() (interface{}, error) {
	return cbor.Decode(d)
}

var (
	_ Value = LazyValue{}
	_ Value = RawCBOR(nil)
)
