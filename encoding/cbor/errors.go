package cbor

import (
	"errors"
	"fmt"
)

// ErrorKind classifies encoding and decoding failures.
type ErrorKind int

// Enumeration of error kinds
const (
	// UnexpectedEndOfInput indicates fewer bytes remain than a header or
	// payload requires.
	UnexpectedEndOfInput ErrorKind = iota + 1

	// InvalidLengthEncoding indicates a reserved additional information value
	// (28, 29 or 30).
	InvalidLengthEncoding

	// InvalidLength indicates the indefinite marker (31) on a major type that
	// forbids it, or a break marker outside of an indefinite container.
	InvalidLength

	// InvalidIndefiniteElementType indicates a chunk of an indefinite byte or
	// text string that has the wrong major type or is itself indefinite.
	InvalidIndefiniteElementType

	// TrailingData indicates unconsumed bytes after the top-level data item.
	TrailingData

	// InvalidUTF8 indicates a text string payload that is not valid UTF-8.
	InvalidUTF8

	// UnsupportedValue indicates a Value that cannot be encoded.
	UnsupportedValue

	// MaxDepthExceeded indicates nesting beyond DecodeOptions.MaxDepth.
	MaxDepthExceeded

	// InvalidSimpleValue indicates a simple value below 32 in the one byte
	// extension form while DecodeOptions.StrictSimpleValues is set.
	InvalidSimpleValue
)

// Sentinel errors, one per ErrorKind. DecodeError and EncodeError match the
// sentinel of their kind with errors.Is.
var (
	ErrUnexpectedEndOfInput         = errors.New("unexpected end of input")
	ErrInvalidLengthEncoding        = errors.New("invalid length encoding")
	ErrInvalidLength                = errors.New("invalid length")
	ErrInvalidIndefiniteElementType = errors.New("invalid indefinite element type")
	ErrTrailingData                 = errors.New("trailing data")
	ErrInvalidUTF8                  = errors.New("invalid utf-8")
	ErrUnsupportedValue             = errors.New("unsupported value")
	ErrMaxDepthExceeded             = errors.New("max depth exceeded")
	ErrInvalidSimpleValue           = errors.New("invalid simple value")
)

var kindSentinels = map[ErrorKind]error{
	UnexpectedEndOfInput:         ErrUnexpectedEndOfInput,
	InvalidLengthEncoding:        ErrInvalidLengthEncoding,
	InvalidLength:                ErrInvalidLength,
	InvalidIndefiniteElementType: ErrInvalidIndefiniteElementType,
	TrailingData:                 ErrTrailingData,
	InvalidUTF8:                  ErrInvalidUTF8,
	UnsupportedValue:             ErrUnsupportedValue,
	MaxDepthExceeded:             ErrMaxDepthExceeded,
	InvalidSimpleValue:           ErrInvalidSimpleValue,
}

func (k ErrorKind) String() string {
	if err, ok := kindSentinels[k]; ok {
		return err.Error()
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// DecodeError is returned by the decoding functions for malformed input.
type DecodeError struct {
	Kind ErrorKind

	// Offset of the byte at which the problem was detected.
	Offset int

	Detail string
}

func newDecodeError(kind ErrorKind, offset int, format string, v ...interface{}) *DecodeError {
	return &DecodeError{
		Kind:   kind,
		Offset: offset,
		Detail: fmt.Sprintf(format, v...),
	}
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cbor: %v at offset %d: %s", e.Kind, e.Offset, e.Detail)
}

// Is reports whether target is the sentinel error of the kind of e.
func (e *DecodeError) Is(target error) bool {
	return target != nil && kindSentinels[e.Kind] == target
}

// EncodeError is returned by Encode for values that cannot be serialized.
type EncodeError struct {
	Kind   ErrorKind
	Detail string
}

func newEncodeError(kind ErrorKind, format string, v ...interface{}) *EncodeError {
	return &EncodeError{
		Kind:   kind,
		Detail: fmt.Sprintf(format, v...),
	}
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("cbor: %v: %s", e.Kind, e.Detail)
}

// Is reports whether target is the sentinel error of the kind of e.
func (e *EncodeError) Is(target error) bool {
	return target != nil && kindSentinels[e.Kind] == target
}
