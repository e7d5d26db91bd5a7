package cbor

import (
	"fmt"
	"math"
	"sync"

	fxcbor "github.com/fxamacker/cbor/v2"
)

var (
	diagModeOnce sync.Once
	diagMode     fxcbor.DiagMode
	diagModeErr  error
)

func getDiagMode() (fxcbor.DiagMode, error) {
	diagModeOnce.Do(func() {
		diagMode, diagModeErr = fxcbor.DiagOptions{
			MaxNestedLevels:  65535,
			MaxArrayElements: math.MaxInt32,
			MaxMapPairs:      math.MaxInt32,
		}.DiagMode()
	})
	return diagMode, diagModeErr
}

// Diagnose returns the diagnostic notation of v (RFC 8949 section 8), e.g.
// `[1, h'0102', {"a": -2}, 1(1363896240), 1.5, simple(16)]`.
//
// v is rendered from its encoded form, so containers always appear
// definite-length and floats without an encoding indicator. Values that
// cannot be encoded render as <nil> or <TYPE>.
func Diagnose(v Value) string {
	if v == nil {
		return "<nil>"
	}

	p, err := Encode(v)
	if err != nil {
		return fmt.Sprintf("<%T>", v)
	}

	dm, err := getDiagMode()
	if err != nil {
		return fmt.Sprintf("<%T>", v)
	}
	s, err := dm.Diagnose(p)
	if err != nil {
		return fmt.Sprintf("<%T>", v)
	}
	return s
}
