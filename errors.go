package hightime

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by this package matches exactly
// one of these with [errors.Is].
var (
	// ErrType reports an argument of the wrong kind, such as a float where
	// an integer field is expected, or an operand of an unrelated type.
	ErrType = errors.New("hightime: wrong argument type")

	// ErrRange reports a field value outside its valid range.
	ErrRange = errors.New("hightime: value out of range")

	// ErrDivisionByZero reports a division or modulo by a zero Duration or
	// a zero scalar.
	ErrDivisionByZero = errors.New("hightime: division by zero")

	// ErrOverflow reports a result that falls outside the representable
	// calendar or day range.
	ErrOverflow = errors.New("hightime: result out of range")
)

// ErrNaiveAware is returned when a naive and a timezone-aware Instant are
// subtracted or ordered. It matches ErrType.
var ErrNaiveAware = fmt.Errorf("%w: cannot mix naive and timezone-aware instants", ErrType)

// FieldError describes a rejected constructor argument.
type FieldError struct {
	Field string
	Value any
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%v: %s=%v", e.Err, e.Field, e.Value)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func fieldErr(field string, value any, err error) error {
	return &FieldError{Field: field, Value: value, Err: err}
}

func rangeErr(field string, value any, lo, hi int64) error {
	return &FieldError{
		Field: field,
		Value: value,
		Err:   fmt.Errorf("%w: must be in %d..%d", ErrRange, lo, hi),
	}
}
