package records

import (
	"fmt"
	"time"

	"github.com/stackerstan/go-nostr"

	"bountyninja/bountyninja"
)

func connectPool() (*nostr.RelayPool, func()) {
	pool := nostr.NewRelayPool()
	relays := bountyninja.MakeOrGetConfig().GetStringSlice("relaysMust")
	for _, s := range relays {
		errchan := pool.Add(s, nostr.SimplePolicy{Read: true, Write: true})
		go func() {
			for err := range errchan {
				e := fmt.Sprintf("x77arw: %s", err.Error())
				bountyninja.LogCLI(e, 2)
			}
		}()
	}
	return pool, func() {
		for _, s := range relays {
			pool.Remove(s)
		}
	}
}

func bountyKinds() (kinds []int) {
	for kind := range bountyninja.GetAllKinds() {
		kinds = append(kinds, int(kind))
	}
	return
}

// FetchTaskRecords pulls everything the relays have about one task: the task
// record itself plus every record tagging its address. Results land in the
// local mirror and are returned as typed records.
func FetchTaskRecords(addr bountyninja.TaskAddress) ([]bountyninja.Record, bool) {
	pool, disconnect := connectPool()
	defer disconnect()
	tags := make(map[string][]string)
	tags["a"] = []string{addr.String()}
	filters := nostr.Filters{
		nostr.Filter{
			Kinds:   []int{int(addr.Kind)},
			Authors: []string{addr.Creator},
		},
		nostr.Filter{
			Kinds: bountyKinds(),
			Tags:  tags,
		},
	}
	_, evnts, unsub := pool.Sub(filters)
	defer unsub()
	gotResult := false
L:
	for {
		select {
		case e := <-nostr.Unique(evnts):
			Mirror(e)
			gotResult = true
		case <-time.After(time.Second * 2):
			break L
		}
	}
	local := localRecordsForTask(addr)
	return local, gotResult || len(local) > 0
}

// SubscribeToBountyRecords streams every record of a registered bounty kind
// as it arrives, deduplicated and mirrored. Runs until terminate closes.
func SubscribeToBountyRecords(terminate chan struct{}) chan bountyninja.Record {
	out := make(chan bountyninja.Record)
	go func() {
		pool, disconnect := connectPool()
		defer disconnect()
		since := time.Now().Add(-time.Hour * 24 * 90)
		filters := nostr.Filters{nostr.Filter{
			Kinds: bountyKinds(),
			Since: &since,
		}}
		_, evnts, unsub := pool.Sub(filters)
		defer unsub()
		for {
			select {
			case e := <-nostr.Unique(evnts):
				if Mirror(e) {
					out <- bountyninja.ConvertToRecord(&e)
				}
			case <-terminate:
				close(out)
				return
			}
		}
	}()
	return out
}
