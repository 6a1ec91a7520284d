package bountyninja

import (
	"errors"
	"fmt"
)

// ValidationError marks a malformed or incomplete record. These are dropped
// silently by the projection layer, never retried.
type ValidationError struct {
	RecordID S256Hash
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid record %s: %s", e.RecordID, e.Reason)
}

// InsufficientAmountError means the mint fee meets or exceeds the value being
// moved. It aborts that operation only, it is not a mint failure.
type InsufficientAmountError struct {
	Total Sats
	Fee   Sats
}

func (e *InsufficientAmountError) Error() string {
	return fmt.Sprintf("insufficient amount after fees: total %d, fee %d", e.Total, e.Fee)
}

// DoubleSpendError means the mint reported one or more proofs as already
// spent. It is fatal for the affected proof set and MUST NOT be retried
// without a fresh spendability check.
type DoubleSpendError struct {
	Mint    string
	Secrets []string
}

func (e *DoubleSpendError) Error() string {
	if len(e.Secrets) == 0 {
		return fmt.Sprintf("mint %s reports proofs already spent", e.Mint)
	}
	return fmt.Sprintf("mint %s reports %d proofs already spent", e.Mint, len(e.Secrets))
}

// MintUnavailableError is a transport-level mint failure. Retriable with
// backoff; callers degrade to "unverified/unspendable", never "assume success".
type MintUnavailableError struct {
	Mint string
	Err  error
}

func (e *MintUnavailableError) Error() string {
	return fmt.Sprintf("mint %s unavailable: %v", e.Mint, e.Err)
}

func (e *MintUnavailableError) Unwrap() error {
	return e.Err
}

// UnauthorizedError marks adversarial input, e.g. a payout published by a
// non-pledger. Rejected quietly, not surfaced as a user-facing failure.
type UnauthorizedError struct {
	PubKey Account
	Action string
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("%s is not authorized to %s", e.PubKey, e.Action)
}

func IsDoubleSpend(err error) bool {
	var ds *DoubleSpendError
	return errors.As(err, &ds)
}

func IsMintUnavailable(err error) bool {
	var mu *MintUnavailableError
	return errors.As(err, &mu)
}
