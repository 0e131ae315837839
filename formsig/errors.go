package formsig

import (
	"errors"
	"fmt"
)

// Signing errors.
var (
	// ErrInvalidInput is returned when the data to sign is neither a field
	// mapping nor an ordered pair sequence.
	ErrInvalidInput = errors.New("formsig: data must be a field map or a pair sequence")

	// ErrNoFields is returned when no fields are left to sign after the
	// signature and partial filtering have been applied.
	ErrNoFields = errors.New("formsig: no fields to sign")

	// ErrEmptyPartialKey is returned when a partial signature lists an
	// empty field name.
	ErrEmptyPartialKey = errors.New("formsig: partial field name must not be empty")

	// ErrNoSecret is returned by SignRequest when SignConfig has no secret.
	ErrNoSecret = errors.New("formsig: secret must not be empty")
)

// Verification errors. Messages are safe to show to a cardholder: they
// never include the secret or a digest. Use errors.Is or Reason to tell
// the causes apart.
var (
	// ErrSignatureInvalid is wrapped by every verification failure.
	ErrSignatureInvalid = errors.New("formsig: incorrectly signed response from payment gateway")

	// ErrUnexpectedSignature is returned when a response is signed but no
	// secret is configured locally. The gateway has a secret we don't.
	ErrUnexpectedSignature = fmt.Errorf("%w (1)", ErrSignatureInvalid)

	// ErrMissingSignature is returned when a secret is configured but the
	// response carries no signature. The gateway is not signing.
	ErrMissingSignature = fmt.Errorf("%w (2)", ErrSignatureInvalid)

	// ErrSignatureMismatch is returned when the recomputed signature does
	// not match the one received.
	ErrSignatureMismatch = fmt.Errorf("%w (3)", ErrSignatureInvalid)

	// ErrMalformedSignature is returned when a response carries more than
	// one signature field or an unparsable partial signature.
	ErrMalformedSignature = fmt.Errorf("%w (4)", ErrSignatureInvalid)
)

// Reason returns a stable, low-cardinality name for a verification
// failure, suitable for logs and metric labels. It returns an empty string
// for nil and for errors that are not verification failures.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnexpectedSignature):
		return "unexpected_signature"
	case errors.Is(err, ErrMissingSignature):
		return "missing_signature"
	case errors.Is(err, ErrSignatureMismatch):
		return "signature_mismatch"
	case errors.Is(err, ErrMalformedSignature):
		return "malformed_signature"
	default:
		return ""
	}
}
