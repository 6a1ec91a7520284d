package escrow

import (
	"encoding/base64"
	"testing"
)

func TestEncodeDecodeToken(t *testing.T) {
	proofs := proofsOf(64, 8, 1)
	encoded, err := EncodeToken("https://mint.example/", proofs, "pledge")
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	tokens, err := DecodeToken(encoded)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(tokens) != 1 {
		t.Fatalf("expected one mint entry, got %d", len(tokens))
	}
	if tokens[0].Mint != "https://mint.example" {
		t.Fatalf("expected the mint URL normalized inside the token, got %s", tokens[0].Mint)
	}
	if tokens[0].Proofs.Amount() != 73 {
		t.Fatalf("expected 73 sats of proofs, got %d", tokens[0].Proofs.Amount())
	}
}

func TestEncodeToken_RefusesEmptyProofSet(t *testing.T) {
	if _, err := EncodeToken("https://mint.example", nil, ""); err == nil {
		t.Fatalf("expected an error for an empty proof set")
	}
}

func TestDecodeToken_AcceptsPaddedStandardBase64(t *testing.T) {
	//some wallets pad and use the standard alphabet
	payload := `{"token":[{"mint":"https://mint.example","proofs":[{"id":"009a1f293253e41e","amount":8,"secret":"s1","C":"02ab"}]}]}`
	padded := tokenPrefix + base64.StdEncoding.EncodeToString([]byte(payload))
	tokens, err := DecodeToken(padded)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if tokens[0].Proofs.Amount() != 8 {
		t.Fatalf("expected 8 sats, got %d", tokens[0].Proofs.Amount())
	}
}

func TestDecodeToken_RejectsGarbage(t *testing.T) {
	for _, bad := range []string{"", "lnbc1pv...", "cashuA!!!!", tokenPrefix + "e30"} {
		if _, err := DecodeToken(bad); err == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestNormalizeMintURL(t *testing.T) {
	for in, want := range map[string]string{
		"https://mint.example":     "https://mint.example",
		"https://mint.example/":    "https://mint.example",
		" https://mint.example// ": "https://mint.example",
	} {
		if got := NormalizeMintURL(in); got != want {
			t.Fatalf("NormalizeMintURL(%q) = %q, want %q", in, got, want)
		}
	}
}
