package errors

import (
	"errors"
	"fmt"
)

// Error Handling Guidelines:
//
// For HTTP REST handlers:
//   - Use errors.Respond() for errors coming out of the core pipelines; it maps
//     the error kind to the right status code and logs server-side failures
//   - Use errors.ValidationError(), errors.InternalError(), etc. directly when
//     the handler itself detects the problem
//
// For services/pipelines/internal packages:
//   - Wrap failures with the matching kind sentinel so callers can classify
//     with errors.Is, e.g. fmt.Errorf("%w: question cannot be empty", ErrValidation)
//   - Do not log errors in non-handler code (avoid double logging)

// error kinds, matchable with errors.Is
var (
	// ErrValidation marks input rejected before any external call is made.
	ErrValidation = errors.New("validation error")

	// ErrStorage marks a connectivity or query failure against the vector store.
	ErrStorage = errors.New("storage error")

	// ErrDomain marks a similarity threshold outside [0,1], which would produce
	// an invalid distance conversion.
	ErrDomain = errors.New("domain error")

	// ErrGeneratorUnavailable marks a missing text generator credential. This is
	// a degraded, non-fatal condition: the chat pipeline answers with a fixed
	// unavailability message instead of failing.
	ErrGeneratorUnavailable = errors.New("text generator not configured")

	// ErrGenerator marks a failed call to a configured text generator.
	ErrGenerator = errors.New("text generation failed")
)

// wraps a message as a validation error
func Validation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// wraps a message as a domain error
func Domain(msg string) error {
	return fmt.Errorf("%w: %s", ErrDomain, msg)
}

// wraps a store operation failure as a storage error
func Storage(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}

// wraps a text generation failure as a generator error
func Generation(err error) error {
	return fmt.Errorf("%w: %w", ErrGenerator, err)
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error   string `json:"error"`             // error code (e.g., "validation_error")
	Message string `json:"message"`           // user-friendly message
	Details string `json:"details,omitempty"` // optional details (sanitized in production)
}

type errorInfo struct {
	category  string
	sanitized string
}
