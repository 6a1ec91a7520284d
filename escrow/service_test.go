package escrow

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"bountyninja/bountyninja"
)

const (
	pledger = "2222222222222222222222222222222222222222222222222222222222222222"
	solver  = "5555555555555555555555555555555555555555555555555555555555555555"
)

// fakeMint implements MintClient with a flat per-swap fee and an in-memory
// spent-secret set, enough to exercise the full escrow sequence offline.
type fakeMint struct {
	url     string
	fee     bountyninja.Sats
	spent   map[string]bool
	offline bool
	serial  int
	locks   []bountyninja.Account //LockTo of each swap, in order
}

func newFakeMint(url string, fee bountyninja.Sats) *fakeMint {
	return &fakeMint{url: url, fee: fee, spent: make(map[string]bool)}
}

func (m *fakeMint) dialer() MintDialer {
	return func(mintURL string) (MintClient, error) {
		if NormalizeMintURL(mintURL) != m.url {
			return nil, fmt.Errorf("unknown mint %s", mintURL)
		}
		return m, nil
	}
}

func (m *fakeMint) ComputeFee(ctx context.Context, proofs Proofs) (bountyninja.Sats, error) {
	if m.offline {
		return 0, &bountyninja.MintUnavailableError{Mint: m.url, Err: errors.New("connection refused")}
	}
	return m.fee, nil
}

func (m *fakeMint) Swap(ctx context.Context, proofs Proofs, spec OutputSpec) (Proofs, Proofs, error) {
	if m.offline {
		return nil, nil, &bountyninja.MintUnavailableError{Mint: m.url, Err: errors.New("connection refused")}
	}
	for _, p := range proofs {
		if m.spent[p.Secret] {
			return nil, nil, &bountyninja.DoubleSpendError{Mint: m.url, Secrets: []string{p.Secret}}
		}
	}
	if proofs.Amount()-m.fee != spec.SendAmount {
		return nil, nil, fmt.Errorf("swap amounts do not balance: %d in, %d out, %d fee",
			proofs.Amount(), spec.SendAmount, m.fee)
	}
	for _, p := range proofs {
		m.spent[p.Secret] = true
	}
	m.serial++
	m.locks = append(m.locks, spec.LockTo)
	send := Proofs{{
		ID:     "009a1f293253e41e",
		Amount: spec.SendAmount,
		Secret: fmt.Sprintf("%s-secret-%d", m.url, m.serial),
		C:      "02abcdef",
	}}
	return send, nil, nil
}

func (m *fakeMint) SignWithKey(proofs Proofs, privateKey string) (Proofs, error) {
	signed := make(Proofs, len(proofs))
	for i, p := range proofs {
		p.Witness = `{"signatures":["` + privateKey + `"]}`
		signed[i] = p
	}
	return signed, nil
}

func (m *fakeMint) CheckProofStates(ctx context.Context, proofs Proofs) ([]ProofState, error) {
	if m.offline {
		return nil, &bountyninja.MintUnavailableError{Mint: m.url, Err: errors.New("connection refused")}
	}
	states := make([]ProofState, len(proofs))
	for i, p := range proofs {
		states[i] = ProofState{Secret: p.Secret, Spent: m.spent[p.Secret]}
	}
	return states, nil
}

func proofsOf(amounts ...bountyninja.Sats) Proofs {
	var proofs Proofs
	for i, a := range amounts {
		proofs = append(proofs, Proof{
			ID:     "009a1f293253e41e",
			Amount: a,
			Secret: fmt.Sprintf("input-secret-%d-%d", i, a),
			C:      "02abcdef",
		})
	}
	return proofs
}

func TestLockToSelf_DeductsTheMintFee(t *testing.T) {
	mint := newFakeMint("https://mint.example", 2)
	svc := NewService(mint.dialer())
	locked, fee, err := svc.LockToSelf(context.Background(), "https://mint.example", proofsOf(64, 32, 4), pledger, LockOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fee != 2 {
		t.Fatalf("expected fee 2, got %d", fee)
	}
	if locked.Amount() != 98 {
		t.Fatalf("expected 98 locked from 100 input, got %d", locked.Amount())
	}
	if len(mint.locks) != 1 || mint.locks[0] != pledger {
		t.Fatalf("expected proofs locked to the pledger's own key, got %v", mint.locks)
	}
}

func TestLockToSelf_FeeEatsTheWholeAmount(t *testing.T) {
	mint := newFakeMint("https://mint.example", 2)
	svc := NewService(mint.dialer())
	_, _, err := svc.LockToSelf(context.Background(), "https://mint.example", proofsOf(2), pledger, LockOptions{})
	var insufficient *bountyninja.InsufficientAmountError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected an insufficient amount error, got %v", err)
	}
	if insufficient.Total != 2 || insufficient.Fee != 2 {
		t.Fatalf("unexpected error detail: %#v", insufficient)
	}
}

func TestRelease_TwoPhasesTwoFees(t *testing.T) {
	mint := newFakeMint("https://mint.example", 2)
	svc := NewService(mint.dialer())
	released, fees, err := svc.Release(context.Background(), "https://mint.example", proofsOf(64, 32, 2), "sk", solver)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fees[0] != 2 || fees[1] != 2 {
		t.Fatalf("expected 2 sats per phase, got %v", fees)
	}
	if released.Amount() != 94 {
		t.Fatalf("expected the solver to receive 94 of 98, got %d", released.Amount())
	}
	if len(mint.locks) != 2 || mint.locks[0] != "" || mint.locks[1] != solver {
		t.Fatalf("expected an unlocked intermediate swap then a lock to the solver, got %v", mint.locks)
	}
}

func TestRelease_SpentProofsSurfaceAsDoubleSpend(t *testing.T) {
	mint := newFakeMint("https://mint.example", 2)
	svc := NewService(mint.dialer())
	proofs := proofsOf(64, 34)
	if _, _, err := svc.Release(context.Background(), "https://mint.example", proofs, "sk", solver); err != nil {
		t.Fatalf("first release failed: %v", err)
	}
	_, _, err := svc.Release(context.Background(), "https://mint.example", proofs, "sk", solver)
	if !bountyninja.IsDoubleSpend(err) {
		t.Fatalf("expected a double spend error, got %v", err)
	}
	if bountyninja.IsMintUnavailable(err) {
		t.Fatalf("a double spend must be distinguishable from a mint outage")
	}
	ok, err := svc.Spendable(context.Background(), "https://mint.example", proofs)
	if err != nil {
		t.Fatalf("state check failed: %v", err)
	}
	if ok {
		t.Fatalf("spent proofs must not report as spendable")
	}
}

func TestSpendable_UnreachableMintIsNotSpendable(t *testing.T) {
	mint := newFakeMint("https://mint.example", 2)
	mint.offline = true
	svc := NewService(mint.dialer())
	ok, err := svc.Spendable(context.Background(), "https://mint.example", proofsOf(8))
	if ok {
		t.Fatalf("funds must never be assumed good when the mint is unreachable")
	}
	if !bountyninja.IsMintUnavailable(err) {
		t.Fatalf("expected a mint unavailable error, got %v", err)
	}
}

func TestReclaim_ReturnsUnlockedProofs(t *testing.T) {
	mint := newFakeMint("https://mint.example", 2)
	svc := NewService(mint.dialer())
	unlocked, fee, err := svc.Reclaim(context.Background(), "https://mint.example", proofsOf(32), "sk")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fee != 2 || unlocked.Amount() != 30 {
		t.Fatalf("expected 30 back for a fee of 2, got %d for %d", unlocked.Amount(), fee)
	}
	if len(mint.locks) != 1 || mint.locks[0] != "" {
		t.Fatalf("reclaimed proofs must come back unlocked, got %v", mint.locks)
	}
}

func TestFeeLedger_RecordsEverySwap(t *testing.T) {
	mint := newFakeMint("https://mint.example", 2)
	svc := NewService(mint.dialer())
	if _, _, err := svc.LockToSelf(context.Background(), "https://mint.example", proofsOf(100), pledger, LockOptions{}); err != nil {
		t.Fatalf("lock failed: %v", err)
	}
	if _, _, err := svc.Release(context.Background(), "https://mint.example", proofsOf(50), "sk", solver); err != nil {
		t.Fatalf("release failed: %v", err)
	}
	summaries := svc.Fees().Summaries()
	if len(summaries) != 1 {
		t.Fatalf("expected one mint in the ledger, got %d", len(summaries))
	}
	if summaries[0].Total != 6 {
		t.Fatalf("expected 6 sats of fees recorded (2 lock + 4 release), got %d", summaries[0].Total)
	}
}
