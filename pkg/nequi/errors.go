package nequi

import "errors"

var (
	// ErrTimeout marks a call that exceeded its deadline. Callers use it to
	// distinguish TIMEOUT from other transport failures.
	ErrTimeout = errors.New("NEQUI_TIMEOUT")

	// ErrUnavailable marks any non-200 response or undecodable body.
	ErrUnavailable = errors.New("NEQUI_UNAVAILABLE")
)
