package fields

import (
	"fmt"
	"net/url"
	"strings"
)

// Encode serializes pairs as an application/x-www-form-urlencoded string.
// Keys and values are escaped independently (space becomes '+') and joined
// as key=value with '&'. Pair order is kept.
//
// The same output is used as the HTTP body and as the signing input, so a
// signature always covers exactly the transmitted bytes.
func Encode(p Pairs) string {
	var b strings.Builder
	for i, pair := range p {
		if i > 0 {
			b.WriteByte('&')
		}

		b.WriteString(url.QueryEscape(pair.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(pair.Value))
	}

	return b.String()
}

// ParseQuery decodes a form-encoded body into pairs, keeping the order in
// which fields were received and any repeated keys. Empty segments are
// skipped; a segment without '=' yields an empty value.
func ParseQuery(query string) (Pairs, error) {
	var out Pairs
	for segment := range strings.SplitSeq(query, "&") {
		if segment == "" {
			continue
		}

		rawKey, rawValue, _ := strings.Cut(segment, "=")

		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
		}

		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
		}

		out = append(out, Pair{Key: key, Value: value})
	}

	return out, nil
}
