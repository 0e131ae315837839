package gateway

import (
	"strconv"

	"github.com/vitalvas/paygate/fields"
)

// Gateway response codes.
const (
	RCSuccess                   = 0       // transaction successful
	RCDoNotHonor                = 5       // transaction declined
	RCNoReasonToDecline         = 85      // verification successful
	RC3DSAuthenticationRequired = 0x1010A // 3-D Secure authentication required
)

const (
	fieldResponseCode    = "responseCode"
	fieldResponseMessage = "responseMessage"
)

// Response is a verified gateway answer.
type Response struct {
	fields fields.Pairs
	tree   fields.Tree
}

func newResponse(p fields.Pairs) *Response {
	return &Response{
		fields: p,
		tree:   fields.Unflatten(p),
	}
}

// Code returns the numeric responseCode and whether it was present and
// well formed.
func (r *Response) Code() (int, bool) {
	raw, ok := r.fields.Lookup(fieldResponseCode)
	if !ok {
		return 0, false
	}

	code, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}

	return code, true
}

// Message returns the responseMessage field.
func (r *Response) Message() string {
	return r.fields.Get(fieldResponseMessage)
}

// Succeeded reports whether the response code is RCSuccess.
func (r *Response) Succeeded() bool {
	code, ok := r.Code()
	return ok && code == RCSuccess
}

// ThreeDSRequired reports whether the payer must complete 3-D Secure
// authentication before the transaction can continue.
func (r *Response) ThreeDSRequired() bool {
	code, ok := r.Code()
	return ok && code == RC3DSAuthenticationRequired
}

// Get returns the value of a flat response field.
func (r *Response) Get(key string) string {
	return r.fields.Get(key)
}

// Fields returns a copy of the verified flat fields without the signature.
func (r *Response) Fields() fields.Pairs {
	return r.fields.Clone()
}

// Tree returns the response re-nested into maps and lists.
func (r *Response) Tree() fields.Tree {
	return r.tree
}
