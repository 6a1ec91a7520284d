package records

import (
	"fmt"
	"time"

	"github.com/stackerstan/go-nostr"

	"bountyninja/bountyninja"
)

var startedRelays = false
var publishQueue = make(chan nostr.Event)

// PublishRecord queues a signed record for the relay pool. Invalidly signed
// records never leave this process.
func PublishRecord(event nostr.Event) {
	if sig, _ := event.CheckSignature(); sig {
		currentState.upsert(event)
		if !startedRelays {
			go startRelaysForPublishing()
			startedRelays = true
		}
		go func() { publishQueue <- event }()
	} else {
		bountyninja.LogCLI("invalid signature on record "+event.ID, 2)
	}
}

func startRelaysForPublishing() {
	pool, disconnect := connectPool()
	defer disconnect()
	for {
		select {
		case event := <-publishQueue:
			e, _, err := pool.PublishEvent(&event)
			time.Sleep(time.Second) //don't spam relays
			if err != nil {
				fmt.Printf("\n%#v\n", e)
				bountyninja.LogCLI("failed to publish a record, see record above", 1)
			}
		}
	}
}
