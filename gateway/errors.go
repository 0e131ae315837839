package gateway

import "errors"

var (
	// ErrMissingAction is returned when a request has no action field.
	ErrMissingAction = errors.New("gateway: request must contain an action")

	// ErrMissingMerchantID is returned when neither the request nor the
	// configuration supplies a merchant ID.
	ErrMissingMerchantID = errors.New("gateway: merchant ID not present in request or configuration")

	// ErrInvalidURL is returned for a direct, hosted or proxy URL that
	// cannot be used.
	ErrInvalidURL = errors.New("gateway: invalid URL")

	// ErrUnsupportedProxy is returned when the proxy URL scheme is not
	// http, https, socks5 or socks5h.
	ErrUnsupportedProxy = errors.New("gateway: unsupported proxy scheme")

	// ErrInvalidTimeout is returned for a negative request timeout.
	ErrInvalidTimeout = errors.New("gateway: timeout must not be negative")

	// ErrUnexpectedStatus is returned when the gateway answers with a
	// non-2xx HTTP status.
	ErrUnexpectedStatus = errors.New("gateway: unexpected HTTP status")

	// ErrResponseTooLarge is returned when the response body exceeds
	// the read limit.
	ErrResponseTooLarge = errors.New("gateway: response body too large")
)
