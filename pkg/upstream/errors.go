package upstream

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the upstream has no product for the
// requested id.
var ErrNotFound = errors.New("product not found")

// ErrorClass classifies upstream fetch failures for logging and metrics.
type ErrorClass string

const (
	// ErrorClassNetwork covers transport failures and timeouts.
	ErrorClassNetwork ErrorClass = "network"

	// ErrorClassStatus covers non-2xx upstream responses.
	ErrorClassStatus ErrorClass = "status"

	// ErrorClassDecode covers bodies that are not valid JSON of the
	// expected shape.
	ErrorClassDecode ErrorClass = "decode"

	// ErrorClassSchema covers records that decode but fail product
	// validation.
	ErrorClassSchema ErrorClass = "schema"
)

// Error is a typed upstream fetch failure. It is propagated to the HTTP
// boundary, where it is degraded to an empty or absent result rather than
// surfaced as a 5xx.
type Error struct {
	Class      ErrorClass
	Endpoint   string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upstream %s error (%s): %v", e.Class, e.Endpoint, e.Err)
	}
	return fmt.Sprintf("upstream %s error (%s): status %d", e.Class, e.Endpoint, e.StatusCode)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}
