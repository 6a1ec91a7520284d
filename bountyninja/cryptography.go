package bountyninja

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	boom "github.com/tylertreat/BoomFilters"
)

func Sign(message []byte, privateKey string) (signature string, e error) {
	hash := sha256.Sum256(message)
	s, err := hex.DecodeString(privateKey)
	if err != nil {
		return signature, fmt.Errorf("Sign called with invalid private key: %w", err)
	}
	sk, _ := btcec.PrivKeyFromBytes(s)
	sig, err := schnorr.Sign(sk, hash[:])
	if err != nil {
		return signature, err
	}
	return hex.EncodeToString(sig.Serialize()), nil
}

func VerifySignedHash(msg []byte, signature string, account Account) bool {
	hash := sha256.Sum256(msg)
	pk, err := hex.DecodeString(account)
	if err != nil {
		LogCLI(err.Error(), 1)
		return false
	}
	pubkey, err := schnorr.ParsePubKey(pk)
	if err != nil {
		LogCLI(err.Error(), 1)
		return false
	}
	s, err := hex.DecodeString(signature)
	if err != nil {
		LogCLI(err.Error(), 1)
		return false
	}
	sig, err := schnorr.ParseSignature(s)
	if err != nil {
		LogCLI(err.Error(), 1)
		return false
	}
	return sig.Verify(hash[:], pubkey)
}

func Sha256(data interface{}) S256Hash {
	var b []byte
	switch d := data.(type) {
	case string:
		b = []byte(d)
	case []byte:
		b = d
	default:
		LogCLI("attempted to hash non-string or non-[]byte", 0)
	}
	h := sha256.New()
	h.Write(b)
	return fmt.Sprintf("%x", h.Sum(nil))
}

//MakeNewInverseBloomFilter returns a function that reports whether a message has NOT been seen before.
func MakeNewInverseBloomFilter(capacity uint) func(message interface{}) bool {
	ibf := boom.NewInverseBloomFilter(capacity)
	return func(message interface{}) bool {
		b := []byte(fmt.Sprint(message))
		return !ibf.TestAndAdd(b)
	}
}
