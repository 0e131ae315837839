package gateway

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultDirectURL is the Direct API endpoint used when none is
	// configured.
	DefaultDirectURL = "https://gateway.handpoint.com/direct/"

	// DefaultHostedURL is the Hosted Payment Page used when none is
	// configured.
	DefaultHostedURL = "https://gateway.handpoint.com/hosted/"

	// DefaultTimeout bounds a direct request when Config.Timeout is zero.
	DefaultTimeout = 30 * time.Second
)

// Config holds merchant credentials and gateway endpoints.
type Config struct {
	// MerchantID is sent as merchantID unless the request carries its
	// own. Required.
	MerchantID string `yaml:"merchant_id"`

	// MerchantSecret signs requests and verifies responses. Empty
	// disables signing; signed responses are then rejected.
	MerchantSecret string `yaml:"merchant_secret"`

	// MerchantPassword is sent as merchantPwd when set and the request
	// has none.
	MerchantPassword string `yaml:"merchant_password"`

	// DirectURL is the Direct API endpoint. Defaults to DefaultDirectURL.
	DirectURL string `yaml:"direct_url"`

	// HostedURL is the Hosted Payment Page form action. Defaults to
	// DefaultHostedURL.
	HostedURL string `yaml:"hosted_url"`

	// ProxyURL routes direct requests through an http, https, socks5 or
	// socks5h proxy. Empty means a direct connection.
	ProxyURL string `yaml:"proxy_url"`

	// Timeout bounds a whole direct request, including reading the
	// response. Defaults to DefaultTimeout.
	Timeout time.Duration `yaml:"timeout"`
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("gateway: read config: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig decodes YAML configuration, applies defaults and validates
// the result.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("gateway: parse config: %w", err)
	}

	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) withDefaults() Config {
	if c.DirectURL == "" {
		c.DirectURL = DefaultDirectURL
	}

	if c.HostedURL == "" {
		c.HostedURL = DefaultHostedURL
	}

	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}

	return c
}

// Validate checks the configuration. Empty endpoint fields are accepted
// and replaced with defaults by the client.
func (c Config) Validate() error {
	if c.MerchantID == "" {
		return ErrMissingMerchantID
	}

	if c.Timeout < 0 {
		return ErrInvalidTimeout
	}

	for _, raw := range []string{c.DirectURL, c.HostedURL} {
		if raw == "" {
			continue
		}

		if err := validateEndpoint(raw); err != nil {
			return err
		}
	}

	if c.ProxyURL != "" {
		if _, err := parseProxyURL(c.ProxyURL); err != nil {
			return err
		}
	}

	return nil
}

func validateEndpoint(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}

	return nil
}
