package bountyninja

import (
	"strings"
	"testing"
	"time"

	"github.com/stackerstan/go-nostr"
)

var pubkey = "1111111111111111111111111111111111111111111111111111111111111111"

func TestParseTaskAddress_RoundTrip(t *testing.T) {
	addr := TaskAddress{Kind: 37300, Creator: pubkey, DTag: "parser-bug"}
	parsed, err := ParseTaskAddress(addr.String())
	if err != nil {
		t.Fatalf("round trip failed: %v", err)
	}
	if parsed != addr {
		t.Fatalf("got %v, want %v", parsed, addr)
	}
}

func TestParseTaskAddress_DTagMayContainColons(t *testing.T) {
	parsed, err := ParseTaskAddress("37300:" + pubkey + ":fix:the:parser")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.DTag != "fix:the:parser" {
		t.Fatalf("got d tag %q", parsed.DTag)
	}
}

func TestParseTaskAddress_Rejections(t *testing.T) {
	for _, bad := range []string{
		"",
		"37300:" + pubkey,                      //no d tag at all
		"37300:" + pubkey + ":",                //empty d tag
		"37300:" + pubkey[:32] + ":parser-bug", //short pubkey
		"x:" + pubkey + ":parser-bug",          //non-numeric kind
	} {
		if _, err := ParseTaskAddress(bad); err == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestRecordTagAccessors(t *testing.T) {
	r := Record{
		ID:        "r1",
		PubKey:    pubkey,
		CreatedAt: time.Unix(100, 0),
		Kind:      37300,
		Tags: nostr.Tags{
			[]string{"a", "37300:" + pubkey + ":parser-bug"},
			[]string{"t", "golang"},
			[]string{"t", "parser"},
			[]string{"reward", "50000"},
			[]string{"empty", ""},
		},
	}
	if v, ok := r.GetSingleTag("t"); !ok || v != "golang" {
		t.Fatalf("expected first t tag, got %q %v", v, ok)
	}
	if topics, ok := r.GetTags("t"); !ok || strings.Join(topics, ",") != "golang,parser" {
		t.Fatalf("expected both t tags, got %v", topics)
	}
	if reward, ok := r.GetInt64Tag("reward"); !ok || reward != 50000 {
		t.Fatalf("expected reward 50000, got %d %v", reward, ok)
	}
	if _, ok := r.GetSingleTag("empty"); ok {
		t.Fatalf("an empty tag value must read as absent")
	}
	addr, ok := r.TaskAddress()
	if !ok || addr.DTag != "parser-bug" {
		t.Fatalf("expected a parsed task address, got %v %v", addr, ok)
	}
}

func TestSignAndVerify(t *testing.T) {
	//deterministic throwaway key
	privkey := "0000000000000000000000000000000000000000000000000000000000000001"
	account := Account("79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798")
	msg := []byte("release 94 sats to the solver")
	sig, err := Sign(msg, privkey)
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}
	if !VerifySignedHash(msg, sig, account) {
		t.Fatalf("a valid signature must verify")
	}
	if VerifySignedHash([]byte("release 9400 sats to the solver"), sig, account) {
		t.Fatalf("a tampered message must not verify")
	}
}

func TestMakeNewInverseBloomFilter(t *testing.T) {
	unseen := MakeNewInverseBloomFilter(1000)
	if !unseen("record-one") {
		t.Fatalf("first sighting must report unseen")
	}
	if unseen("record-one") {
		t.Fatalf("second sighting must report seen")
	}
}
