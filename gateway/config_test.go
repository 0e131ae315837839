package gateway

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	t.Run("full config", func(t *testing.T) {
		data := []byte(`
merchant_id: "100856"
merchant_secret: "Threeds2Test60System"
merchant_password: "pwd"
direct_url: "https://gateway.example.com/direct/"
hosted_url: "https://gateway.example.com/hosted/"
proxy_url: "socks5://127.0.0.1:1080"
timeout: 15s
`)

		cfg, err := ParseConfig(data)
		require.NoError(t, err)

		assert.Equal(t, Config{
			MerchantID:       "100856",
			MerchantSecret:   "Threeds2Test60System",
			MerchantPassword: "pwd",
			DirectURL:        "https://gateway.example.com/direct/",
			HostedURL:        "https://gateway.example.com/hosted/",
			ProxyURL:         "socks5://127.0.0.1:1080",
			Timeout:          15 * time.Second,
		}, cfg)
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := ParseConfig([]byte(`merchant_id: "100001"`))
		require.NoError(t, err)

		assert.Equal(t, DefaultDirectURL, cfg.DirectURL)
		assert.Equal(t, DefaultHostedURL, cfg.HostedURL)
		assert.Equal(t, DefaultTimeout, cfg.Timeout)
		assert.Empty(t, cfg.MerchantSecret)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := ParseConfig([]byte("merchant_id: [unclosed"))
		assert.Error(t, err)
	})

	t.Run("validation errors", func(t *testing.T) {
		tests := []struct {
			name string
			data string
			err  error
		}{
			{name: "missing merchant", data: `merchant_secret: "x"`, err: ErrMissingMerchantID},
			{name: "bad direct url", data: "merchant_id: \"1\"\ndirect_url: \"ftp://gateway.example.com/\"", err: ErrInvalidURL},
			{name: "relative hosted url", data: "merchant_id: \"1\"\nhosted_url: \"/hosted/\"", err: ErrInvalidURL},
			{name: "unsupported proxy", data: "merchant_id: \"1\"\nproxy_url: \"ftp://proxy:21\"", err: ErrUnsupportedProxy},
			{name: "negative timeout", data: "merchant_id: \"1\"\ntimeout: -1s", err: ErrInvalidTimeout},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := ParseConfig([]byte(tt.data))
				assert.ErrorIs(t, err, tt.err)
			})
		}
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "paygate.yaml")
		require.NoError(t, os.WriteFile(path, []byte("merchant_id: \"100001\"\nmerchant_secret: \"pass\"\n"), 0o600))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "100001", cfg.MerchantID)
		assert.Equal(t, "pass", cfg.MerchantSecret)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
