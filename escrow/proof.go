/*
Package escrow moves bounty funds through mint-issued anonymous tokens with
self-custody locking: a pledge is locked to the pledger's own key, and stays
recoverable by the pledger until they deliberately release it to a solver.
*/
package escrow

import (
	"bountyninja/bountyninja"
)

// Proof is one opaque mint-issued value unit. The Secret carries the
// spending condition; we treat it as opaque apart from the P2PK lock we ask
// the mint to embed.
type Proof struct {
	ID      string           `json:"id"`
	Amount  bountyninja.Sats `json:"amount"`
	Secret  string           `json:"secret"`
	C       string           `json:"C"`
	Witness string           `json:"witness,omitempty"`
}

type Proofs []Proof

func (p Proofs) Amount() (total bountyninja.Sats) {
	for _, proof := range p {
		total += proof.Amount
	}
	return
}

func (p Proofs) Secrets() (secrets []string) {
	for _, proof := range p {
		secrets = append(secrets, proof.Secret)
	}
	return
}

// ProofState is the mint's answer on whether one proof has been spent.
type ProofState struct {
	Secret string `json:"secret"`
	Spent  bool   `json:"spent"`
}
