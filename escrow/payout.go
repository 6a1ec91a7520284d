package escrow

import (
	"context"
	"fmt"
	"strings"

	"bountyninja/bountyninja"
	"bountyninja/projection"
)

// MintPayout is one mint's successful leg of a multi-mint payout.
type MintPayout struct {
	Mint   string
	Amount bountyninja.Sats
	Fees   bountyninja.Sats
	Token  string
}

type MintFailure struct {
	Mint        string
	Reason      string
	DoubleSpend bool
}

// PayoutResult is a structured partial result: some mints may have paid out
// while others failed. Partial failure is data, not an error.
type PayoutResult struct {
	Entries  []MintPayout
	Failures []MintFailure
}

func (r *PayoutResult) Partial() bool {
	return len(r.Entries) > 0 && len(r.Failures) > 0
}

// Payload concatenates one encoded token per mint, one per line. Proofs from
// different mints cannot share a single token.
func (r *PayoutResult) Payload() string {
	var tokens []string
	for _, entry := range r.Entries {
		tokens = append(tokens, entry.Token)
	}
	return strings.Join(tokens, "\n")
}

func (r *PayoutResult) Total() (total bountyninja.Sats) {
	for _, entry := range r.Entries {
		total += entry.Amount
	}
	return
}

// PayPledges releases a set of pledges to the solver across however many
// mints they were locked at. Each mint group runs its own release sequence
// with its own fee accounting; one group's failure never aborts the others.
// Only when every group fails does the whole operation fail.
func (s *Service) PayPledges(ctx context.Context, pledges []projection.Pledge, privateKey string, solver bountyninja.Account) (PayoutResult, error) {
	var result PayoutResult
	groups := GroupPledgesByMint(pledges)
	if len(groups) == 0 {
		return result, fmt.Errorf("no pledges to pay out")
	}
	for mintURL, group := range groups {
		proofs, err := pledgeProofs(group)
		if err != nil {
			result.Failures = append(result.Failures, MintFailure{Mint: mintURL, Reason: err.Error()})
			continue
		}
		released, fees, err := s.Release(ctx, mintURL, proofs, privateKey, solver)
		if err != nil {
			result.Failures = append(result.Failures, MintFailure{
				Mint:        mintURL,
				Reason:      err.Error(),
				DoubleSpend: bountyninja.IsDoubleSpend(err),
			})
			continue
		}
		token, err := EncodeToken(mintURL, released, "bounty payout")
		if err != nil {
			result.Failures = append(result.Failures, MintFailure{Mint: mintURL, Reason: err.Error()})
			continue
		}
		result.Entries = append(result.Entries, MintPayout{
			Mint:   mintURL,
			Amount: released.Amount(),
			Fees:   fees[0] + fees[1],
			Token:  token,
		})
	}
	if len(result.Entries) == 0 {
		return result, fmt.Errorf("payout failed at every mint: %s", describeFailures(result.Failures))
	}
	return result, nil
}

// GroupPledgesByMint buckets pledges by normalized mint URL so that
// "https://m.example/" and "https://m.example" land together.
func GroupPledgesByMint(pledges []projection.Pledge) map[string][]projection.Pledge {
	groups := make(map[string][]projection.Pledge)
	for _, p := range pledges {
		url := NormalizeMintURL(p.Mint)
		if len(url) == 0 {
			continue
		}
		groups[url] = append(groups[url], p)
	}
	return groups
}

func pledgeProofs(pledges []projection.Pledge) (Proofs, error) {
	var proofs Proofs
	for _, p := range pledges {
		tokens, err := DecodeToken(p.Token)
		if err != nil {
			return nil, fmt.Errorf("pledge %s: %w", p.RecordID, err)
		}
		for _, t := range tokens {
			proofs = append(proofs, t.Proofs...)
		}
	}
	if len(proofs) == 0 {
		return nil, fmt.Errorf("no proofs in pledge group")
	}
	return proofs, nil
}

func describeFailures(failures []MintFailure) string {
	var parts []string
	for _, f := range failures {
		parts = append(parts, f.Mint+": "+f.Reason)
	}
	return strings.Join(parts, "; ")
}
