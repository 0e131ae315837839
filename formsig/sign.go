package formsig

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/vitalvas/paygate/fields"
)

// SignatureField is the reserved field that carries the signature. It is
// never part of the signed data.
const SignatureField = "signature"

// partialSeparator separates the digest from the list of signed fields in
// a partial signature.
const partialSeparator = "|"

// canonicalReplacer normalizes an encoded query string to the gateway's
// canonical form. Every encoded line ending collapses to %0A, and '*' and
// '~' are always escaped.
var canonicalReplacer = strings.NewReplacer(
	"%0D%0A", "%0A",
	"%0A%0D", "%0A",
	"%0D", "%0A",
	"*", "%2A",
	"~", "%7E",
)

// Sign returns the signature for data under secret.
//
// The pairs are sorted by base key (stable, so bracketed siblings keep
// their relative order), form-encoded, normalized and hashed with SHA-512
// together with the secret. The result is the lowercase hex digest.
//
// When partial names are given, only pairs whose base key is listed are
// signed and "|name1,name2" is appended to the digest.
func Sign(data fields.Pairs, secret string, partial ...string) (string, error) {
	body, err := CanonicalString(data, partial...)
	if err != nil {
		return "", err
	}

	sum := sha512.Sum512([]byte(body + secret))
	signature := hex.EncodeToString(sum[:])

	if len(partial) > 0 {
		signature += partialSeparator + strings.Join(partial, ",")
	}

	return signature, nil
}

// SignTree flattens t and signs the result. Null values are not signed.
func SignTree(t fields.Tree, secret string, partial ...string) (string, error) {
	if t.Kind() != fields.KindMap && t.Kind() != fields.KindList {
		return "", fmt.Errorf("%w: got %s", ErrInvalidInput, t.Kind())
	}

	return Sign(fields.Flatten(t), secret, partial...)
}

// SignValue signs data of any supported shape: fields.Pairs, []fields.Pair,
// fields.Tree, map[string]any, map[string]string, url.Values or
// [][2]string. Other types fail with ErrInvalidInput.
func SignValue(data any, secret string, partial ...string) (string, error) {
	if t, ok := data.(fields.Tree); ok {
		return SignTree(t, secret, partial...)
	}

	pairs, err := toPairs(data)
	if err != nil {
		return "", err
	}

	return Sign(pairs, secret, partial...)
}

// CanonicalString returns the exact string that Sign hashes before the
// secret is appended.
func CanonicalString(data fields.Pairs, partial ...string) (string, error) {
	if slices.Contains(partial, "") {
		return "", ErrEmptyPartialKey
	}

	selected := data.Delete(SignatureField)
	if len(partial) > 0 {
		selected = selected.Select(partial...)
	}

	if len(selected) == 0 {
		return "", ErrNoFields
	}

	return canonicalReplacer.Replace(fields.Encode(sortByBaseKey(selected))), nil
}

// sortByBaseKey orders pairs by the part of their key before the first
// bracket. The sort is stable so all parts of one nested field stay
// together in their original order.
func sortByBaseKey(p fields.Pairs) fields.Pairs {
	sorted := p.Clone()
	slices.SortStableFunc(sorted, func(a, b fields.Pair) int {
		return strings.Compare(fields.BaseKey(a.Key), fields.BaseKey(b.Key))
	})

	return sorted
}

func toPairs(data any) (fields.Pairs, error) {
	switch v := data.(type) {
	case fields.Pairs:
		return v, nil
	case []fields.Pair:
		return fields.Pairs(v), nil
	case [][2]string:
		return fields.FromPairs(v), nil
	case url.Values:
		return fields.FromValues(v), nil
	case map[string]string:
		t, err := fields.FromValue(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}

		return fields.Flatten(t), nil
	case map[string]any:
		p, err := fields.FromMap(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}

		return p, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidInput, data)
	}
}
