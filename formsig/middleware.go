package formsig

import (
	"context"
	"net/http"

	"github.com/vitalvas/paygate/fields"
)

type fieldsKey struct{}

// DefaultMaxBodyBytes bounds form bodies read by Middleware when
// MiddlewareConfig.MaxBodyBytes is zero.
const DefaultMaxBodyBytes = 1 << 20

// FieldsFromContext returns the verified fields stored by Middleware. The
// signature field has already been removed.
func FieldsFromContext(ctx context.Context) (fields.Pairs, bool) {
	p, ok := ctx.Value(fieldsKey{}).(fields.Pairs)
	return p, ok
}

// MiddlewareConfig configures verification of signed form posts sent by
// the gateway, such as hosted payment page redirects.
type MiddlewareConfig struct {
	// Secret is the merchant signature secret. When empty, signed posts
	// are rejected with ErrUnexpectedSignature and unsigned posts pass.
	Secret string

	// MaxBodyBytes limits the size of a form body. Zero means
	// DefaultMaxBodyBytes.
	MaxBodyBytes int64

	// OnError is called when verification fails. When nil, a plain 401
	// Unauthorized response is sent.
	OnError func(w http.ResponseWriter, r *http.Request, err error)
}

// Middleware returns a middleware that verifies the signature of incoming
// gateway posts. Fields are read from a form-encoded body, or from the URL
// query for requests without one. On success the verified fields are
// available through FieldsFromContext and the body can be read again.
func Middleware(cfg MiddlewareConfig) func(http.Handler) http.Handler {
	onError := cfg.OnError
	if onError == nil {
		onError = defaultOnError
	}

	secret := cfg.Secret

	maxBytes := cfg.MaxBodyBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.URL.RawQuery
			if isForm(r.Header) {
				if r.Body != nil {
					r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
				}

				body, err := readAndRestoreBody(r)
				if err != nil {
					onError(w, r, err)
					return
				}

				raw = string(body)
			}

			pairs, err := fields.ParseQuery(raw)
			if err != nil {
				onError(w, r, err)
				return
			}

			verified, err := Verify(pairs, secret)
			if err != nil {
				onError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), fieldsKey{}, verified)))
		})
	}
}

// defaultOnError writes a 401 Unauthorized response with no body.
func defaultOnError(w http.ResponseWriter, _ *http.Request, _ error) {
	w.WriteHeader(http.StatusUnauthorized)
}
