package gateway

import (
	"github.com/vitalvas/paygate/fields"
	"github.com/vitalvas/paygate/formsig"
)

// Per-request override fields. They configure a single call and are never
// sent to the gateway.
const (
	fieldAction         = "action"
	fieldMerchantID     = "merchantID"
	fieldMerchantPwd    = "merchantPwd"
	fieldMerchantSecret = "merchantSecret"
	fieldDirectURL      = "directUrl"
	fieldHostedURL      = "hostedUrl"
	fieldRedirectURL    = "redirectURL"
)

// Settings are the per-call values resolved by PrepareRequest.
type Settings struct {
	// Secret signs the request and verifies the response. Empty disables
	// both.
	Secret string

	// DirectURL is the endpoint Direct posts to.
	DirectURL string

	// HostedURL is the form action returned by Hosted.
	HostedURL string
}

// PrepareRequest validates a request and fills in merchant credentials
// from cfg. Override fields (merchantSecret, directUrl, hostedUrl) are
// moved from the request into the returned Settings; reserved response
// fields and any stale signature are removed. The input is not modified.
func PrepareRequest(request fields.Pairs, cfg Config) (fields.Pairs, Settings, error) {
	if !request.Has(fieldAction) {
		return nil, Settings{}, ErrMissingAction
	}

	prepared := request.Clone()

	if !prepared.Has(fieldMerchantID) {
		if cfg.MerchantID == "" {
			return nil, Settings{}, ErrMissingMerchantID
		}

		prepared = prepared.Add(fieldMerchantID, cfg.MerchantID)
	}

	if !prepared.Has(fieldMerchantPwd) && cfg.MerchantPassword != "" {
		prepared = prepared.Add(fieldMerchantPwd, cfg.MerchantPassword)
	}

	settings := Settings{
		Secret:    cfg.MerchantSecret,
		DirectURL: cfg.DirectURL,
		HostedURL: cfg.HostedURL,
	}

	if secret, ok := prepared.Lookup(fieldMerchantSecret); ok {
		settings.Secret = secret
	}

	if direct, ok := prepared.Lookup(fieldDirectURL); ok {
		settings.DirectURL = direct
	}

	if hosted, ok := prepared.Lookup(fieldHostedURL); ok {
		settings.HostedURL = hosted
	}

	prepared = prepared.Delete(fieldMerchantSecret, fieldDirectURL, fieldHostedURL)

	if settings.DirectURL == "" {
		settings.DirectURL = DefaultDirectURL
	}

	if settings.HostedURL == "" {
		settings.HostedURL = DefaultHostedURL
	}

	return formsig.StripReserved(prepared), settings, nil
}
