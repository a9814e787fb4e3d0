package bucache

import (
	"fmt"
)

// UnsupportedValueError is the one failure the cache surfaces to callers:
// a value (or a filter mapping) could not be serialized, so nothing was
// derived or stored. Remote-tier faults never take this path; they are
// absorbed and the cache degrades to the local tier.
type UnsupportedValueError struct {
	Key string // derived key, or "<prefix>:<namespace>" when derivation itself failed
	Err error
}

func (e *UnsupportedValueError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("bucache: unsupported value for %q: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("bucache: unsupported value: %v", e.Err)
}

func (e *UnsupportedValueError) Unwrap() error { return e.Err }
