// Package time converts between time.Time and the CBOR date/time tags:
// tag 0 (RFC 3339 text) and tag 1 (seconds relative to the Unix epoch).
package time

import (
	"fmt"
	"math"
	"time"

	"github.com/cbor-go/cbor-go/encoding/cbor"
)

const (
	// TagDateTime is the tag number of a standard date/time string.
	TagDateTime uint64 = 0

	// TagEpoch is the tag number of an epoch-based date/time.
	TagEpoch uint64 = 1
)

// FormatDateTime formats value as an RFC 3339 date-time with as many
// fractional digits as needed.
func FormatDateTime(value time.Time) string {
	return value.Format(time.RFC3339Nano)
}

// ParseDateTime parses an RFC 3339 date-time.
func ParseDateTime(value string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, value)
}

// FormatEpochSeconds returns value as a Unix time in seconds with decimal precision
func FormatEpochSeconds(value time.Time) float64 {
	return float64(value.Unix()) + float64(value.Nanosecond())/float64(time.Second)
}

// ParseEpochSeconds returns value as a Unix time in seconds with decimal
// precision, rounded to the nearest microsecond.
func ParseEpochSeconds(value float64) time.Time {
	sec, frac := math.Modf(value)
	nsec := math.Round(frac*1e6) * 1e3
	return time.Unix(int64(sec), int64(nsec))
}

// DateTime returns value as tag 0 wrapping its RFC 3339 form.
func DateTime(value time.Time) *cbor.Tag {
	return &cbor.Tag{Number: TagDateTime, Value: cbor.String(FormatDateTime(value))}
}

// Epoch returns value as tag 1. Whole seconds are written as an integer,
// anything finer as a float.
func Epoch(value time.Time) *cbor.Tag {
	var content cbor.Value
	if value.Nanosecond() == 0 {
		content = cbor.Int(value.Unix())
	} else {
		content = cbor.Float(FormatEpochSeconds(value))
	}
	return &cbor.Tag{Number: TagEpoch, Value: content}
}

// Decode returns the time described by a tag 0 or tag 1 data item.
func Decode(v cbor.Value) (time.Time, error) {
	tag, ok := v.(*cbor.Tag)
	if !ok || tag == nil {
		return time.Time{}, fmt.Errorf("expected date/time tag, got %T", v)
	}

	switch tag.Number {
	case TagDateTime:
		s, ok := tag.Value.(cbor.String)
		if !ok {
			return time.Time{}, fmt.Errorf("tag 0 content must be a text string, got %T", tag.Value)
		}
		t, err := ParseDateTime(string(s))
		if err != nil {
			return time.Time{}, fmt.Errorf("tag 0: %w", err)
		}
		return t, nil

	case TagEpoch:
		switch c := tag.Value.(type) {
		case cbor.Uint:
			if c > math.MaxInt64 {
				return time.Time{}, fmt.Errorf("tag 1: %d seconds out of range", uint64(c))
			}
			return time.Unix(int64(c), 0).UTC(), nil
		case cbor.NegInt:
			i, ok := c.Int64()
			if !ok {
				return time.Time{}, fmt.Errorf("tag 1: %s seconds out of range", c.BigInt())
			}
			return time.Unix(i, 0).UTC(), nil
		case cbor.Float:
			f := float64(c)
			if math.IsNaN(f) || math.Abs(f) >= 1<<62 {
				return time.Time{}, fmt.Errorf("tag 1: %v is not a valid time", f)
			}
			return ParseEpochSeconds(f).UTC(), nil
		default:
			return time.Time{}, fmt.Errorf("tag 1 content must be a number, got %T", tag.Value)
		}
	}
	return time.Time{}, fmt.Errorf("tag %d is not a date/time tag", tag.Number)
}
