package formsig

import (
	"context"
	"net/http"

	"github.com/vitalvas/paygate/fields"
)

// SignConfig configures signing of outgoing form requests.
type SignConfig struct {
	// Secret is the merchant signature secret. Required.
	Secret string

	// Partial, when non-empty, restricts the signature to the listed base
	// keys and marks it as partial.
	Partial []string
}

type signConfigKey struct{}

// WithSignConfig returns a context that makes Transport sign the request
// with cfg instead of its own configuration. A cfg with an empty Secret
// sends the request unsigned.
func WithSignConfig(ctx context.Context, cfg SignConfig) context.Context {
	return context.WithValue(ctx, signConfigKey{}, cfg)
}

func signConfigFromContext(ctx context.Context) (SignConfig, bool) {
	cfg, ok := ctx.Value(signConfigKey{}).(SignConfig)
	return cfg, ok
}

// SignRequest signs a form-encoded request in place. The body is decoded,
// reserved response fields are removed, the pairs are put in canonical
// order and re-encoded with the signature appended. ContentLength and
// GetBody are updated to match the new body.
func SignRequest(r *http.Request, cfg SignConfig) error {
	if cfg.Secret == "" {
		return ErrNoSecret
	}

	body, err := readAndRestoreBody(r)
	if err != nil {
		return err
	}

	pairs, err := fields.ParseQuery(string(body))
	if err != nil {
		return err
	}

	signed, err := SignPairs(pairs, cfg.Secret, cfg.Partial...)
	if err != nil {
		return err
	}

	replaceBody(r, fields.Encode(signed))

	return nil
}

// Transport is an http.RoundTripper that signs outgoing form posts for the
// payment gateway. Requests without a form-encoded body are passed through
// untouched.
type Transport struct {
	base   http.RoundTripper
	config SignConfig
}

// NewTransport creates a signing Transport that delegates to base after
// signing each request. When base is nil, a clone of http.DefaultTransport
// is used, giving an independent connection pool with default proxy, TLS,
// and timeout settings.
func NewTransport(base http.RoundTripper, cfg SignConfig) *Transport {
	if base == nil {
		base = http.DefaultTransport.(*http.Transport).Clone()
	}

	return &Transport{
		base:   base,
		config: cfg,
	}
}

// RoundTrip signs the request and then delegates to the base transport.
// The original request is cloned before signing to avoid mutation.
// When GetBody is available, the clone receives its own body copy so
// that the caller's body is not consumed.
//
// A SignConfig attached with WithSignConfig takes precedence over the
// transport's own.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Body == nil || req.Body == http.NoBody || !isForm(req.Header) {
		return t.base.RoundTrip(req)
	}

	cfg := t.config
	if override, ok := signConfigFromContext(req.Context()); ok {
		if override.Secret == "" {
			return t.base.RoundTrip(req)
		}

		cfg = override
	}

	clone := req.Clone(req.Context())

	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}

		clone.Body = body
	}

	if err := SignRequest(clone, cfg); err != nil {
		return nil, err
	}

	return t.base.RoundTrip(clone)
}
