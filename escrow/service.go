package escrow

import (
	"context"

	"bountyninja/bountyninja"
)

// Service runs the self-custody escrow protocol. It carries its own mint
// dialer and fee ledger; nothing in this package lives in a package-level
// variable, so callers can scope one Service per wallet and test it in
// isolation.
type Service struct {
	dial MintDialer
	fees *FeeLedger
}

func NewService(dial MintDialer) *Service {
	if dial == nil {
		dial = DialHTTPMint
	}
	return &Service{dial: dial, fees: NewFeeLedger()}
}

func (s *Service) Fees() *FeeLedger {
	return s.fees
}

// LockOptions carry the optional timed refund path on a pledge lock. The
// locktime only ever matters to a third party attempting the refund; the
// primary key can always spend.
type LockOptions struct {
	Locktime   int64
	RefundKeys []bountyninja.Account
}

// LockToSelf swaps spendable proofs for new proofs locked to the pledger's
// own key. sendAmount is total minus the mint fee; if the fee eats the whole
// amount that is an InsufficientAmountError, not a mint failure.
func (s *Service) LockToSelf(ctx context.Context, mintURL string, proofs Proofs, pubkey bountyninja.Account, opts LockOptions) (Proofs, bountyninja.Sats, error) {
	mint, err := s.dial(mintURL)
	if err != nil {
		return nil, 0, err
	}
	fee, err := mint.ComputeFee(ctx, proofs)
	if err != nil {
		return nil, 0, err
	}
	total := proofs.Amount()
	sendAmount := total - fee
	if sendAmount <= 0 {
		return nil, 0, &bountyninja.InsufficientAmountError{Total: total, Fee: fee}
	}
	locked, _, err := mint.Swap(ctx, proofs, OutputSpec{
		SendAmount: sendAmount,
		LockTo:     pubkey,
		Locktime:   opts.Locktime,
		RefundKeys: opts.RefundKeys,
	})
	if err != nil {
		return nil, 0, err
	}
	s.fees.Record(mintURL, fee)
	return locked, fee, nil
}

// Release moves self-locked pledge proofs to the solver in two phases:
// sign and swap to unlocked proofs, then swap those locked to the solver's
// key. Each phase incurs its own fee; the solver receives total minus both.
func (s *Service) Release(ctx context.Context, mintURL string, proofs Proofs, privateKey string, solver bountyninja.Account) (Proofs, [2]bountyninja.Sats, error) {
	var fees [2]bountyninja.Sats
	mint, err := s.dial(mintURL)
	if err != nil {
		return nil, fees, err
	}
	unlocked, fee1, err := s.unlock(ctx, mint, proofs, privateKey)
	if err != nil {
		return nil, fees, err
	}
	fees[0] = fee1
	fee2, err := mint.ComputeFee(ctx, unlocked)
	if err != nil {
		return nil, fees, err
	}
	sendAmount := unlocked.Amount() - fee2
	if sendAmount <= 0 {
		return nil, fees, &bountyninja.InsufficientAmountError{Total: unlocked.Amount(), Fee: fee2}
	}
	toSolver, _, err := mint.Swap(ctx, unlocked, OutputSpec{SendAmount: sendAmount, LockTo: solver})
	if err != nil {
		return nil, fees, err
	}
	fees[1] = fee2
	s.fees.Record(mintURL, fee1+fee2)
	return toSolver, fees, nil
}

// Reclaim is phase one of Release on its own: the pledger signs with their
// primary key and swaps back to unlocked proofs. Always possible for the key
// holder, regardless of any locktime.
func (s *Service) Reclaim(ctx context.Context, mintURL string, proofs Proofs, privateKey string) (Proofs, bountyninja.Sats, error) {
	mint, err := s.dial(mintURL)
	if err != nil {
		return nil, 0, err
	}
	unlocked, fee, err := s.unlock(ctx, mint, proofs, privateKey)
	if err != nil {
		return nil, 0, err
	}
	s.fees.Record(mintURL, fee)
	return unlocked, fee, nil
}

func (s *Service) unlock(ctx context.Context, mint MintClient, proofs Proofs, privateKey string) (Proofs, bountyninja.Sats, error) {
	signed, err := mint.SignWithKey(proofs, privateKey)
	if err != nil {
		return nil, 0, err
	}
	fee, err := mint.ComputeFee(ctx, signed)
	if err != nil {
		return nil, 0, err
	}
	sendAmount := signed.Amount() - fee
	if sendAmount <= 0 {
		return nil, 0, &bountyninja.InsufficientAmountError{Total: signed.Amount(), Fee: fee}
	}
	unlocked, _, err := mint.Swap(ctx, signed, OutputSpec{SendAmount: sendAmount})
	if err != nil {
		return nil, 0, err
	}
	return unlocked, fee, nil
}

// Spendable reports whether every proof in the set is unspent. Any failure to
// reach the mint answers "not spendable": we never assume funds are good.
// Callers MUST run this before retrying any swap that failed in flight.
func (s *Service) Spendable(ctx context.Context, mintURL string, proofs Proofs) (bool, error) {
	mint, err := s.dial(mintURL)
	if err != nil {
		return false, err
	}
	states, err := mint.CheckProofStates(ctx, proofs)
	if err != nil {
		if bountyninja.IsMintUnavailable(err) {
			return false, err
		}
		return false, &bountyninja.MintUnavailableError{Mint: NormalizeMintURL(mintURL), Err: err}
	}
	for _, state := range states {
		if state.Spent {
			return false, nil
		}
	}
	return true, nil
}
