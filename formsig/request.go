package formsig

import (
	"github.com/vitalvas/paygate/fields"
)

// ReservedResponseFields are set by the gateway on responses only. They
// must never be echoed back into a signed request.
var ReservedResponseFields = []string{
	"responseCode",
	"responseMessage",
	"responseStatus",
	"state",
	"merchantAlias",
	"merchantID2",
}

// StripReserved returns a copy of p without the reserved response fields
// and without any signature.
func StripReserved(p fields.Pairs) fields.Pairs {
	return p.Delete(append([]string{SignatureField}, ReservedResponseFields...)...)
}

// SignPairs prepares p for transmission: reserved fields are stripped, the
// remaining pairs are put in canonical order and the signature is appended
// as the last field. Encoding the result with fields.Encode yields exactly
// the bytes that were signed, followed by the signature.
func SignPairs(p fields.Pairs, secret string, partial ...string) (fields.Pairs, error) {
	stripped := StripReserved(p)

	signature, err := Sign(stripped, secret, partial...)
	if err != nil {
		return nil, err
	}

	return sortByBaseKey(stripped).Add(SignatureField, signature), nil
}
