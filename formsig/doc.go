// Package formsig implements the signature protocol of the payment
// gateway's form-encoded API.
//
// A signature is the lowercase hex SHA-512 digest of the canonical query
// string of the signed fields followed by the merchant secret. The
// canonical string is built by sorting the flat fields by base key (the
// part before the first '['), form-encoding them, collapsing every encoded
// line ending to %0A and escaping '*' and '~'. The gateway computes the
// same string independently, so any deviation makes a request fail as
// incorrectly signed.
//
// # Signing
//
// Sign returns the signature for a sequence of flat fields:
//
//	sig, err := formsig.Sign(fields.Pairs{
//	    {Key: "action", Value: "SALE"},
//	    {Key: "amount", Value: "1001"},
//	}, secret)
//
// SignPairs strips reserved response fields, orders the fields and
// appends the signature, ready to be form-encoded with fields.Encode.
//
// A partial signature covers only the listed fields and carries their
// names after the digest:
//
//	sig, err := formsig.Sign(pairs, secret, "threeDSRef", "threeDSResponse")
//	// sig == "<digest>|threeDSRef,threeDSResponse"
//
// # Verifying
//
// Verify checks a gateway response and removes its signature field:
//
//	pairs, err := fields.ParseQuery(body)
//	if err != nil {
//	    return err
//	}
//
//	accepted, err := formsig.Verify(pairs, secret)
//	if err != nil {
//	    log.Printf("rejected: %s", formsig.Reason(err))
//	    return err
//	}
//
// Failures wrap ErrSignatureInvalid and are one of ErrUnexpectedSignature,
// ErrMissingSignature, ErrSignatureMismatch or ErrMalformedSignature.
//
// # Client Transport
//
// NewTransport creates an http.RoundTripper that signs every form post:
//
//	client := &http.Client{
//	    Transport: formsig.NewTransport(nil, formsig.SignConfig{
//	        Secret: secret,
//	    }),
//	}
//
// # Server Middleware
//
// Middleware verifies signed posts sent back by the gateway and exposes
// the accepted fields through FieldsFromContext:
//
//	mux.Handle("/callback", formsig.Middleware(formsig.MiddlewareConfig{
//	    Secret: secret,
//	})(handler))
package formsig
