package escrow

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"bountyninja/bountyninja"
)

// HTTPMint talks to a cashu mint over its REST API.
type HTTPMint struct {
	URL    string
	Client *http.Client
}

func DialHTTPMint(mintURL string) (MintClient, error) {
	url := NormalizeMintURL(mintURL)
	if !strings.HasPrefix(url, "http") {
		return nil, fmt.Errorf("invalid mint URL %s", mintURL)
	}
	return &HTTPMint{
		URL:    url,
		Client: &http.Client{Timeout: time.Second * 30},
	}, nil
}

type mintError struct {
	Detail string `json:"detail"`
	Code   int    `json:"code"`
}

// cashu mints report an already-spent input with code 11001. We also match on
// the detail string because older mints predate the error codes.
const codeTokenAlreadySpent = 11001

func (m *HTTPMint) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.URL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := m.Client.Do(req)
	if err != nil {
		return &bountyninja.MintUnavailableError{Mint: m.URL, Err: err}
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &bountyninja.MintUnavailableError{Mint: m.URL, Err: err}
	}
	if resp.StatusCode >= 500 {
		return &bountyninja.MintUnavailableError{Mint: m.URL, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}
	if resp.StatusCode >= 400 {
		var me mintError
		if err := json.Unmarshal(raw, &me); err == nil {
			if me.Code == codeTokenAlreadySpent || strings.Contains(strings.ToLower(me.Detail), "already spent") {
				return &bountyninja.DoubleSpendError{Mint: m.URL}
			}
			return fmt.Errorf("mint %s rejected request: %s", m.URL, me.Detail)
		}
		return fmt.Errorf("mint %s rejected request with status %d", m.URL, resp.StatusCode)
	}
	return json.Unmarshal(raw, out)
}

type feeRequest struct {
	Inputs Proofs `json:"inputs"`
}

type feeResponse struct {
	Fee bountyninja.Sats `json:"fee"`
}

func (m *HTTPMint) ComputeFee(ctx context.Context, proofs Proofs) (bountyninja.Sats, error) {
	var resp feeResponse
	if err := m.post(ctx, "/v1/fees", feeRequest{Inputs: proofs}, &resp); err != nil {
		return 0, err
	}
	if resp.Fee < 0 {
		return 0, fmt.Errorf("mint %s returned a negative fee", m.URL)
	}
	return resp.Fee, nil
}

type swapRequest struct {
	Inputs     Proofs           `json:"inputs"`
	SendAmount bountyninja.Sats `json:"send_amount"`
	LockTo     string           `json:"lock_to,omitempty"`
	Locktime   int64            `json:"locktime,omitempty"`
	RefundKeys []string         `json:"refund_keys,omitempty"`
}

type swapResponse struct {
	Send Proofs `json:"send"`
	Keep Proofs `json:"keep"`
}

func (m *HTTPMint) Swap(ctx context.Context, proofs Proofs, spec OutputSpec) (Proofs, Proofs, error) {
	req := swapRequest{
		Inputs:     proofs,
		SendAmount: spec.SendAmount,
		Locktime:   spec.Locktime,
	}
	if len(spec.LockTo) > 0 {
		//NUT-11 P2PK pubkeys are compressed SEC1, nostr keys are x-only
		req.LockTo = "02" + spec.LockTo
	}
	for _, k := range spec.RefundKeys {
		req.RefundKeys = append(req.RefundKeys, "02"+k)
	}
	var resp swapResponse
	if err := m.post(ctx, "/v1/swap", req, &resp); err != nil {
		//the generic transport layer cannot know which inputs were refused
		var ds *bountyninja.DoubleSpendError
		if errors.As(err, &ds) && len(ds.Secrets) == 0 {
			ds.Secrets = proofs.Secrets()
		}
		return nil, nil, err
	}
	return resp.Send, resp.Keep, nil
}

func (m *HTTPMint) SignWithKey(proofs Proofs, privateKey string) (Proofs, error) {
	signed := make(Proofs, 0, len(proofs))
	for _, proof := range proofs {
		sig, err := bountyninja.Sign([]byte(proof.Secret), privateKey)
		if err != nil {
			return nil, err
		}
		witness, err := json.Marshal(map[string][]string{"signatures": {sig}})
		if err != nil {
			return nil, err
		}
		proof.Witness = string(witness)
		signed = append(signed, proof)
	}
	return signed, nil
}

type checkStateRequest struct {
	Secrets []string `json:"secrets"`
}

type checkStateResponse struct {
	States []ProofState `json:"states"`
}

func (m *HTTPMint) CheckProofStates(ctx context.Context, proofs Proofs) ([]ProofState, error) {
	var resp checkStateResponse
	if err := m.post(ctx, "/v1/checkstate", checkStateRequest{Secrets: proofs.Secrets()}, &resp); err != nil {
		return nil, err
	}
	if len(resp.States) != len(proofs) {
		return nil, fmt.Errorf("mint %s returned %d states for %d proofs", m.URL, len(resp.States), len(proofs))
	}
	return resp.States, nil
}
