package billing

import (
	"errors"
	"fmt"
)

var (
	ErrMissingReference = errors.New("required reference missing")
	ErrFrozen           = errors.New("bill is already generated")
	ErrRateNotEditable  = errors.New("withholding rate follows the category")
	ErrUnknownField     = errors.New("unknown field")
	ErrNotEditable      = errors.New("field is generated")
	ErrNotSaved         = errors.New("bill has not been generated")
)

// ValidationError blocks a save. Editing can continue.
type ValidationError struct {
	Field Field
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// FieldError rejects a single edit.
type FieldError struct {
	Field Field
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// GatewayError reports that the persistence gateway did not accept the
// snapshot. The caller may retry.
type GatewayError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *GatewayError) Error() string {
	switch {
	case e.Message != "" && e.StatusCode != 0:
		return fmt.Sprintf("gateway rejected bill (%d): %s", e.StatusCode, e.Message)
	case e.Message != "":
		return "gateway rejected bill: " + e.Message
	case e.Err != nil:
		return "gateway error: " + e.Err.Error()
	}
	return "gateway error"
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// Retryable is true for every gateway failure except a duplicate bill number.
func (e *GatewayError) Retryable() bool {
	return !errors.Is(e.Err, ErrDuplicateBill)
}

// ErrDuplicateBill is returned by a gateway that already holds the bill number.
var ErrDuplicateBill = errors.New("bill number already exists")
