package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrRequired         = errors.New("value is required")
	ErrTooShort         = errors.New("value is too short")
	ErrTooLong          = errors.New("value is too long")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrOutOfRange       = errors.New("value is out of range")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrNotAllowed       = errors.New("value is not allowed")
)

// ValidationError names the field that failed and why.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}
