package formsig

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/vitalvas/paygate/fields"
)

// ParseSignature splits a signature field value into its digest and the
// list of signed field names. A full signature has no partial list. Only
// the "digest|a,b" form carries one; a value without '|' is taken whole
// as the digest, commas included.
func ParseSignature(value string) (string, []string) {
	digest, list, ok := strings.Cut(value, partialSeparator)
	if !ok {
		return value, nil
	}

	return digest, strings.Split(list, ",")
}

// Verify checks the signature of a gateway response against secret and
// returns the response without its signature field.
//
// An empty secret means no signing is configured locally. The outcomes are:
//
//   - no secret, signature present: ErrUnexpectedSignature
//   - secret, no signature: ErrMissingSignature
//   - secret, signature differs: ErrSignatureMismatch
//   - otherwise the response is accepted
//
// On failure no fields are returned, the payload must not be trusted.
func Verify(response fields.Pairs, secret string) (fields.Pairs, error) {
	if response.Count(SignatureField) > 1 {
		return nil, fmt.Errorf("%w: multiple signature fields", ErrMalformedSignature)
	}

	signature, rest, _ := response.Take(SignatureField)

	switch {
	case secret == "" && signature != "":
		return nil, ErrUnexpectedSignature
	case secret == "":
		return rest, nil
	case signature == "":
		return nil, ErrMissingSignature
	}

	_, partial := ParseSignature(signature)

	expected, err := Sign(rest, secret, partial...)
	if err != nil {
		if errors.Is(err, ErrEmptyPartialKey) {
			return nil, fmt.Errorf("%w: %w", ErrMalformedSignature, err)
		}

		return nil, fmt.Errorf("%w: %w", ErrSignatureMismatch, err)
	}

	if subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) != 1 {
		return nil, ErrSignatureMismatch
	}

	return rest, nil
}

// VerifyTree verifies response and returns the accepted fields re-nested.
func VerifyTree(response fields.Pairs, secret string) (fields.Tree, error) {
	accepted, err := Verify(response, secret)
	if err != nil {
		return fields.Tree{}, err
	}

	return fields.Unflatten(accepted), nil
}
