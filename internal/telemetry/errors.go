package telemetry

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange indicates a row lookup outside [0, Len()). Callers
// driving playback are expected to clamp before fetching.
var ErrIndexOutOfRange = errors.New("telemetry: row index out of range")

// LoadError wraps a failure to read a telemetry record. The previously
// loaded series, if any, stays valid after a LoadError.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("telemetry: load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
