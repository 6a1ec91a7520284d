/*
Package retraction couples creator- and funder-initiated withdrawal into the
status machine and, when solutions already exist, into a public reputation
signal against the withdrawing pubkey.
*/
package retraction

import (
	"fmt"
	"time"

	"github.com/stackerstan/go-nostr"

	"bountyninja/bountyninja"
	"bountyninja/projection"
)

// DraftTaskRetraction builds an unsigned record cancelling the whole task.
// Only the creator's signature makes it effective; the projection layer
// drops task retractions from anyone else.
func DraftTaskRetraction(task projection.Task, reason string) nostr.Event {
	kind, _ := bountyninja.KindForRole(bountyninja.RoleRetraction)
	return nostr.Event{
		CreatedAt: time.Now(),
		Kind:      int(kind),
		Tags: nostr.Tags{
			[]string{"a", task.Address().String()},
			[]string{"type", projection.RetractTask},
		},
		Content: reason,
	}
}

// DraftPledgeRetraction builds an unsigned record withdrawing one pledge.
// It removes that pledge from totals and vote eligibility; it never cancels
// the task.
func DraftPledgeRetraction(pledge projection.Pledge, reason string) nostr.Event {
	kind, _ := bountyninja.KindForRole(bountyninja.RoleRetraction)
	return nostr.Event{
		CreatedAt: time.Now(),
		Kind:      int(kind),
		Tags: nostr.Tags{
			[]string{"a", pledge.Task.String()},
			[]string{"type", projection.RetractPledge},
			[]string{"e", pledge.RecordID},
		},
		Content: reason,
	}
}

// ReputationConsequence decides whether a retraction triggers a reputation
// record: it does iff any solution existed for the task when the withdrawal
// was published. Returns the unsigned record to publish.
func ReputationConsequence(view *projection.TaskView, ret projection.Retraction) (nostr.Event, bool) {
	if !view.SolutionsAt(ret.CreatedAt.Unix()) {
		return nostr.Event{}, false
	}
	kind, _ := bountyninja.KindForRole(bountyninja.RoleReputation)
	return nostr.Event{
		CreatedAt: time.Now(),
		Kind:      int(kind),
		Tags: nostr.Tags{
			[]string{"p", ret.PubKey},
			[]string{"a", ret.Task.String()},
			[]string{"type", ret.Type},
			[]string{"e", ret.RecordID},
		},
		Content: fmt.Sprintf("%s retraction after %d solutions were already submitted", ret.Type, view.SolutionCount()),
	}, true
}
