package max30003

import (
	"errors"
	"fmt"
)

// ErrNotDevice is returned by New when the INFO register does not identify a
// MAX30003 family part.
var ErrNotDevice = errors.New("max30003: INFO register does not match a MAX30003 family part")

// TransportError reports a failed register exchange. A write that fails
// leaves the device register state unspecified; the protocol carries no
// acknowledgment and nothing is retried.
type TransportError struct {
	Op      string // "read", "write" or "fifo"
	Reg     uint8
	Timeout bool  // exchange did not complete within the per-exchange timeout
	Err     error // underlying bus error, nil on timeout
}

func (e *TransportError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("max30003: %s reg %#02x: exchange timed out", e.Op, e.Reg)
	}
	return fmt.Sprintf("max30003: %s reg %#02x: %v", e.Op, e.Reg, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsTimeout reports whether err is a register exchange that timed out.
func IsTimeout(err error) bool {
	var te *TransportError
	return errors.As(err, &te) && te.Timeout
}
