package gateway

import "github.com/google/uuid"

// NewTransactionUnique returns a fresh value for the transactionUnique
// field, letting the gateway reject accidental resubmissions.
func NewTransactionUnique() string {
	return uuid.NewString()
}
