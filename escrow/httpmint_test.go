package escrow

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bountyninja/bountyninja"
)

func TestHTTPMint_ClassifiesAlreadySpentByCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"Token already spent.","code":11001}`))
	}))
	defer server.Close()
	mint, err := DialHTTPMint(server.URL)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	proofs := proofsOf(8)
	_, _, err = mint.Swap(context.Background(), proofs, OutputSpec{SendAmount: 7})
	if !bountyninja.IsDoubleSpend(err) {
		t.Fatalf("expected a double spend error, got %v", err)
	}
	var ds *bountyninja.DoubleSpendError
	if !errors.As(err, &ds) || len(ds.Secrets) != len(proofs) {
		t.Fatalf("the error must name the refused secrets, got %v", err)
	}
	if strings.Contains(err.Error(), "0 proofs") {
		t.Fatalf("the error message must not claim zero proofs: %v", err)
	}
}

func TestHTTPMint_ClassifiesAlreadySpentByDetail(t *testing.T) {
	//older mints predate the numeric error codes
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"proofs already spent"}`))
	}))
	defer server.Close()
	mint, _ := DialHTTPMint(server.URL)
	_, _, err := mint.Swap(context.Background(), proofsOf(8), OutputSpec{SendAmount: 7})
	if !bountyninja.IsDoubleSpend(err) {
		t.Fatalf("expected a double spend error, got %v", err)
	}
}

func TestHTTPMint_ServerErrorIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()
	mint, _ := DialHTTPMint(server.URL)
	_, err := mint.ComputeFee(context.Background(), proofsOf(8))
	if !bountyninja.IsMintUnavailable(err) {
		t.Fatalf("expected a mint unavailable error, got %v", err)
	}
	if bountyninja.IsDoubleSpend(err) {
		t.Fatalf("an outage must not read as a double spend")
	}
}

func TestHTTPMint_ConnectionRefusedIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() //nothing listening any more
	mint, _ := DialHTTPMint(server.URL)
	_, err := mint.ComputeFee(context.Background(), proofsOf(8))
	if !bountyninja.IsMintUnavailable(err) {
		t.Fatalf("expected a mint unavailable error, got %v", err)
	}
}

func TestHTTPMint_SwapSendsCompressedLockKey(t *testing.T) {
	var got swapRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		w.Write([]byte(`{"send":[{"id":"009a1f293253e41e","amount":7,"secret":"fresh","C":"02ab"}],"keep":[]}`))
	}))
	defer server.Close()
	mint, _ := DialHTTPMint(server.URL)
	send, _, err := mint.Swap(context.Background(), proofsOf(8), OutputSpec{SendAmount: 7, LockTo: pledger})
	if err != nil {
		t.Fatalf("swap failed: %v", err)
	}
	if got.LockTo != "02"+pledger {
		t.Fatalf("expected the x-only key sent as compressed SEC1, got %q", got.LockTo)
	}
	if send.Amount() != 7 {
		t.Fatalf("expected 7 sats back, got %d", send.Amount())
	}
}

func TestDialHTTPMint_RejectsNonHTTP(t *testing.T) {
	if _, err := DialHTTPMint("wss://relay.example"); err == nil {
		t.Fatalf("expected a non-http mint URL to be rejected")
	}
}
