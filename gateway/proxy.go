package gateway

import (
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/net/proxy"
)

func parseProxyURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	switch u.Scheme {
	case "http", "https", "socks5", "socks5h":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProxy, u.Scheme)
	}

	if u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}

	return u, nil
}

// newTransport clones the default transport and routes it through the
// configured proxy. HTTP proxies use CONNECT; SOCKS5 proxies replace the
// dialer.
func newTransport(proxyURL string) (*http.Transport, error) {
	base := http.DefaultTransport.(*http.Transport).Clone()
	if proxyURL == "" {
		return base, nil
	}

	u, err := parseProxyURL(proxyURL)
	if err != nil {
		return nil, err
	}

	switch u.Scheme {
	case "http", "https":
		base.Proxy = http.ProxyURL(u)

	default:
		dialer, err := proxy.FromURL(u, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedProxy, err)
		}

		base.Proxy = nil
		if cd, ok := dialer.(proxy.ContextDialer); ok {
			base.DialContext = cd.DialContext
		} else {
			base.DialContext = nil
			base.Dial = dialer.Dial //nolint:staticcheck
		}
	}

	return base, nil
}
