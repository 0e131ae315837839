package fields

import "errors"

var (
	// ErrUnsupportedValue is returned by FromValue when a Go value cannot be
	// represented as a field tree.
	ErrUnsupportedValue = errors.New("fields: unsupported value type")

	// ErrInvalidQuery is returned when a form-encoded body cannot be decoded.
	ErrInvalidQuery = errors.New("fields: invalid query string")
)
