package escrow

import (
	"context"

	"bountyninja/bountyninja"
)

// OutputSpec tells the mint what the swap should produce. When LockTo is set
// the new proofs carry a P2PK spending condition requiring that key; the
// optional locktime and refund keys are a social signal for the refund path,
// they never restrict the primary key.
type OutputSpec struct {
	SendAmount bountyninja.Sats
	LockTo     bountyninja.Account
	Locktime   int64
	RefundKeys []bountyninja.Account
}

// MintClient is the external mint contract the escrow protocol consumes.
// Implementations must surface already-spent proofs as DoubleSpendError and
// transport failures as MintUnavailableError; the service layer depends on
// that distinction.
type MintClient interface {
	ComputeFee(ctx context.Context, proofs Proofs) (bountyninja.Sats, error)
	Swap(ctx context.Context, proofs Proofs, spec OutputSpec) (send Proofs, keep Proofs, err error)
	SignWithKey(proofs Proofs, privateKey string) (Proofs, error)
	CheckProofStates(ctx context.Context, proofs Proofs) ([]ProofState, error)
}

// MintDialer returns a client for the given mint URL. Injected into the
// Service so tests and callers control exactly which mints exist; there is
// no package-level wallet handle.
type MintDialer func(mintURL string) (MintClient, error)
