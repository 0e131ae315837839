package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/vitalvas/paygate/fields"
	"github.com/vitalvas/paygate/formsig"
)

const (
	tracerName = "github.com/vitalvas/paygate/gateway"

	formContentType = "application/x-www-form-urlencoded"
	requestIDHeader = "X-Request-ID"

	// maxResponseSize bounds the gateway answer; real responses are a few
	// kilobytes even with 3-D Secure payloads.
	maxResponseSize = 1 << 20
)

// Client sends signed requests to the payment gateway. It is safe for
// concurrent use.
type Client struct {
	config     Config
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *Metrics
	tracer     trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient replaces the HTTP client. Config.ProxyURL and
// Config.Timeout are ignored when it is set. The client is copied and its
// transport wrapped for signing; the caller's value is not modified.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithMetrics records request metrics.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithTracerProvider sets the tracer provider. The default is the global
// provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		if tp != nil {
			c.tracer = tp.Tracer(tracerName)
		}
	}
}

// New creates a Client from cfg.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		config: cfg,
		logger: zap.NewNop(),
		tracer: otel.Tracer(tracerName),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		transport, err := newTransport(cfg.ProxyURL)
		if err != nil {
			return nil, err
		}

		c.httpClient = &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		}
	}

	signing := *c.httpClient
	signing.Transport = formsig.NewTransport(c.httpClient.Transport, formsig.SignConfig{Secret: cfg.MerchantSecret})
	c.httpClient = &signing

	return c, nil
}

// Prepare runs PrepareRequest with the client configuration.
func (c *Client) Prepare(request fields.Pairs) (fields.Pairs, Settings, error) {
	return PrepareRequest(request, c.config)
}

// Direct sends a request to the Direct API and returns the verified
// response. Responses with a missing, unexpected or wrong signature are
// rejected with an error matching formsig.ErrSignatureInvalid.
func (c *Client) Direct(ctx context.Context, request fields.Pairs) (*Response, error) {
	start := time.Now()
	action := request.Get(fieldAction)
	requestID := uuid.NewString()

	ctx, span := c.tracer.Start(ctx, "gateway.Direct", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(
		attribute.String("gateway.action", action),
		attribute.String("gateway.request_id", requestID),
	)

	logger := c.logger.With(
		zap.String("action", action),
		zap.String("request_id", requestID),
	)

	fail := func(outcome string, err error) (*Response, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.metrics.observeRequest(action, outcome, time.Since(start))

		return nil, err
	}

	prepared, settings, err := c.Prepare(request)
	if err != nil {
		logger.Warn("gateway request rejected", zap.Error(err))
		return fail(outcomeInvalidRequest, err)
	}

	logger = logger.With(zap.String("merchant_id", prepared.Get(fieldMerchantID)))
	span.SetAttributes(
		attribute.String("gateway.merchant_id", prepared.Get(fieldMerchantID)),
		attribute.Bool("gateway.signed", settings.Secret != ""),
	)

	// The signing transport picks up the per-call secret from the context.
	signCtx := formsig.WithSignConfig(ctx, formsig.SignConfig{Secret: settings.Secret})

	httpReq, err := http.NewRequestWithContext(signCtx, http.MethodPost, settings.DirectURL, strings.NewReader(fields.Encode(prepared)))
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrInvalidURL, err)
		logger.Warn("gateway request rejected", zap.Error(err))
		return fail(outcomeInvalidRequest, err)
	}

	httpReq.Header.Set("Content-Type", formContentType)
	httpReq.Header.Set(requestIDHeader, requestID)

	logger.Debug("sending gateway request", zap.Int("fields", len(prepared)))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logger.Error("gateway request failed", zap.Error(err))
		return fail(outcomeTransportError, fmt.Errorf("gateway: send request: %w", err))
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err = fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
		logger.Error("gateway returned error status", zap.Int("status", resp.StatusCode))
		return fail(outcomeHTTPError, err)
	}

	body, err := readBody(resp.Body)
	if err != nil {
		logger.Error("gateway response read failed", zap.Error(err))
		return fail(outcomeInvalidResponse, err)
	}

	received, err := fields.ParseQuery(string(body))
	if err != nil {
		logger.Error("gateway response malformed", zap.Error(err))
		return fail(outcomeInvalidResponse, err)
	}

	accepted, err := formsig.Verify(received, settings.Secret)
	if err != nil {
		reason := formsig.Reason(err)
		logger.Error("gateway response signature rejected", zap.String("reason", reason))
		c.metrics.observeVerificationFailure(reason)
		return fail(outcomeRejected, err)
	}

	response := newResponse(accepted)
	code, _ := response.Code()

	span.SetAttributes(attribute.Int("gateway.response_code", code))
	c.metrics.observeRequest(action, outcomeOK, time.Since(start))

	logger.Info("gateway request completed",
		zap.Int("response_code", code),
		zap.Duration("duration", time.Since(start)),
	)

	return response, nil
}

// HostedFrom is Hosted for a payment started by the incoming request r.
// When the request has no redirectURL, the payer is sent back to the URL
// of r.
func (c *Client) HostedFrom(r *http.Request, request fields.Pairs) (fields.Pairs, string, error) {
	if !request.Has(fieldRedirectURL) {
		request = request.Set(fieldRedirectURL, RedirectURL(r))
	}

	return c.Hosted(request)
}

// RedirectURL returns the absolute URL of r. The scheme is https when r
// arrived over TLS.
func RedirectURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	return scheme + "://" + r.Host + r.URL.RequestURI()
}

// Hosted prepares and signs a request for the Hosted Payment Page. It
// returns the fields to post from the payer's browser and the form
// action URL; rendering the form is left to the caller.
func (c *Client) Hosted(request fields.Pairs) (fields.Pairs, string, error) {
	prepared, settings, err := c.Prepare(request)
	if err != nil {
		return nil, "", err
	}

	if settings.Secret != "" {
		prepared, err = formsig.SignPairs(prepared, settings.Secret)
		if err != nil {
			return nil, "", err
		}
	}

	c.logger.Debug("hosted request prepared",
		zap.String("action", prepared.Get(fieldAction)),
		zap.String("merchant_id", prepared.Get(fieldMerchantID)),
	)

	return prepared, settings.HostedURL, nil
}

func readBody(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, maxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("gateway: read response: %w", err)
	}

	if len(body) > maxResponseSize {
		return nil, ErrResponseTooLarge
	}

	return body, nil
}

// VerifyCallback checks a gateway callback or redirect payload with the
// configured merchant secret.
func (c *Client) VerifyCallback(received fields.Pairs) (*Response, error) {
	accepted, err := formsig.Verify(received, c.config.MerchantSecret)
	if err != nil {
		reason := formsig.Reason(err)
		c.logger.Warn("gateway callback signature rejected", zap.String("reason", reason))
		c.metrics.observeVerificationFailure(reason)

		return nil, err
	}

	return newResponse(accepted), nil
}
