package records

import (
	"fmt"
	"time"

	"github.com/stackerstan/go-nostr"

	"bountyninja/bountyninja"
)

// Signer turns an unsigned draft into a signed record. It may fail with a
// timeout or a rejection; callers treat either as "not published".
type Signer interface {
	SignRecord(draft nostr.Event) (nostr.Event, error)
}

// WalletSigner signs with the local wallet key.
type WalletSigner struct {
	Timeout time.Duration
}

func (w WalletSigner) SignRecord(draft nostr.Event) (nostr.Event, error) {
	timeout := w.Timeout
	if timeout == 0 {
		timeout = time.Second * 10
	}
	wallet := bountyninja.MyWallet()
	draft.PubKey = wallet.Account
	if draft.CreatedAt.IsZero() {
		draft.CreatedAt = time.Now()
	}
	done := make(chan error, 1)
	go func() {
		draft.ID = draft.GetID()
		done <- draft.Sign(wallet.PrivateKey)
	}()
	select {
	case err := <-done:
		if err != nil {
			return nostr.Event{}, err
		}
	case <-time.After(timeout):
		return nostr.Event{}, fmt.Errorf("signer timed out after %s", timeout)
	}
	return draft, nil
}

// SignAndPublish is the common path: sign the draft and queue it for relays.
func SignAndPublish(s Signer, draft nostr.Event) (nostr.Event, error) {
	signed, err := s.SignRecord(draft)
	if err != nil {
		return nostr.Event{}, err
	}
	PublishRecord(signed)
	return signed, nil
}
