package escrow

import (
	"encoding/base64"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const tokenPrefix = "cashuA"

// Token bundles proofs from one mint. Proofs from different mints can never
// share a token; a multi-mint payout concatenates one encoded token per line.
type Token struct {
	Mint   string `json:"mint"`
	Proofs Proofs `json:"proofs"`
}

type tokenEnvelope struct {
	Token []Token `json:"token"`
	Unit  string  `json:"unit,omitempty"`
	Memo  string  `json:"memo,omitempty"`
}

func EncodeToken(mint string, proofs Proofs, memo string) (string, error) {
	if len(proofs) == 0 {
		return "", fmt.Errorf("refusing to encode a token with no proofs")
	}
	envelope := tokenEnvelope{
		Token: []Token{{Mint: NormalizeMintURL(mint), Proofs: proofs}},
		Unit:  "sat",
		Memo:  memo,
	}
	b, err := json.Marshal(envelope)
	if err != nil {
		return "", err
	}
	return tokenPrefix + base64.RawURLEncoding.EncodeToString(b), nil
}

func DecodeToken(s string) ([]Token, error) {
	if !strings.HasPrefix(s, tokenPrefix) {
		return nil, fmt.Errorf("not a cashu token")
	}
	raw := strings.TrimPrefix(s, tokenPrefix)
	b, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(raw, "="))
	if err != nil {
		//some wallets emit padded standard base64
		b, err = base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return nil, fmt.Errorf("malformed token encoding: %w", err)
		}
	}
	var envelope tokenEnvelope
	if err := json.Unmarshal(b, &envelope); err != nil {
		return nil, fmt.Errorf("malformed token payload: %w", err)
	}
	if len(envelope.Token) == 0 {
		return nil, fmt.Errorf("token contains no proofs")
	}
	return envelope.Token, nil
}

// NormalizeMintURL strips trailing slashes so that the same mint written
// three different ways still lands in one payout group.
func NormalizeMintURL(mint string) string {
	return strings.TrimRight(strings.TrimSpace(mint), "/")
}
