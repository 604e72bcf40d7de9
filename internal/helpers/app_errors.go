package helpers

import "fmt"

// ValidationError covers bad input: missing verification note, pax below
// the package minimum, unknown status values. Never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError is a no-op failure: the referenced row does not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// ConflictError covers unique-constraint and referential conflicts, e.g.
// deleting a package that still has bookings or a duplicate schedule code.
// The caller resolves the conflict; the operation is not retried.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// GatewayError is a definite failure from the payment gateway. Retry is a
// user-initiated action, never automatic.
type GatewayError struct {
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway error: %v", e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// GatewayTimeoutError means the gateway call timed out and the outcome is
// unknown, as opposed to GatewayError's "definitely failed".
type GatewayTimeoutError struct {
	Err error
}

func (e *GatewayTimeoutError) Error() string {
	return fmt.Sprintf("payment gateway timeout: %v", e.Err)
}

func (e *GatewayTimeoutError) Unwrap() error {
	return e.Err
}
