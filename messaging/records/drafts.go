package records

import (
	"fmt"
	"time"

	"github.com/stackerstan/go-nostr"

	"bountyninja/bountyninja"
	"bountyninja/projection"
)

// TaskDraft is everything a creator specifies to open a bounty.
type TaskDraft struct {
	DTag          string
	Title         string
	Description   string
	Reward        bountyninja.Sats
	Currency      string
	Topics        []string
	Deadline      time.Time
	PreferredMint string
	SubmissionFee bountyninja.Sats
}

func DraftTask(d TaskDraft) nostr.Event {
	kind, _ := bountyninja.KindForRole(bountyninja.RoleTask)
	tags := nostr.Tags{
		[]string{"d", d.DTag},
		[]string{"title", d.Title},
		[]string{"reward", fmt.Sprintf("%d", d.Reward)},
	}
	if len(d.Currency) > 0 {
		tags = append(tags, []string{"currency", d.Currency})
	}
	topics := d.Topics
	if len(topics) == 0 {
		topics = projection.SuggestTopics(d.Title, d.Description, 5)
	}
	for _, topic := range topics {
		tags = append(tags, []string{"t", topic})
	}
	if !d.Deadline.IsZero() {
		tags = append(tags, []string{"deadline", fmt.Sprintf("%d", d.Deadline.Unix())})
	}
	if len(d.PreferredMint) > 0 {
		tags = append(tags, []string{"mint", d.PreferredMint})
	}
	if d.SubmissionFee > 0 {
		tags = append(tags, []string{"fee", fmt.Sprintf("%d", d.SubmissionFee)})
	}
	return nostr.Event{
		CreatedAt: time.Now(),
		Kind:      int(kind),
		Tags:      tags,
		Content:   d.Description,
	}
}

// DraftPledge references the locked token produced by escrow.Service.LockToSelf.
func DraftPledge(task projection.Task, amount bountyninja.Sats, token, mint string) nostr.Event {
	kind, _ := bountyninja.KindForRole(bountyninja.RolePledge)
	return nostr.Event{
		CreatedAt: time.Now(),
		Kind:      int(kind),
		Tags: nostr.Tags{
			[]string{"a", task.Address().String()},
			[]string{"amount", fmt.Sprintf("%d", amount)},
			[]string{"cashu", token},
			[]string{"mint", mint},
		},
	}
}

func DraftSolution(task projection.Task, content, deliverable string, feeTokens []string) nostr.Event {
	kind, _ := bountyninja.KindForRole(bountyninja.RoleSolution)
	tags := nostr.Tags{[]string{"a", task.Address().String()}}
	if len(deliverable) > 0 {
		tags = append(tags, []string{"r", deliverable})
	}
	for _, token := range feeTokens {
		tags = append(tags, []string{"cashu", token})
	}
	return nostr.Event{
		CreatedAt: time.Now(),
		Kind:      int(kind),
		Tags:      tags,
		Content:   content,
	}
}

func DraftVote(solution projection.Solution, approve bool) nostr.Event {
	kind, _ := bountyninja.KindForRole(bountyninja.RoleVote)
	verdict := "reject"
	if approve {
		verdict = "approve"
	}
	return nostr.Event{
		CreatedAt: time.Now(),
		Kind:      int(kind),
		Tags: nostr.Tags{
			[]string{"a", solution.Task.String()},
			[]string{"e", solution.RecordID},
			[]string{"vote", verdict},
		},
	}
}

// DraftPayout is published by the releasing pledger after escrow.PayPledges.
func DraftPayout(solution projection.Solution, amount bountyninja.Sats, payload string) nostr.Event {
	kind, _ := bountyninja.KindForRole(bountyninja.RolePayout)
	return nostr.Event{
		CreatedAt: time.Now(),
		Kind:      int(kind),
		Tags: nostr.Tags{
			[]string{"a", solution.Task.String()},
			[]string{"e", solution.RecordID},
			[]string{"p", solution.PubKey},
			[]string{"amount", fmt.Sprintf("%d", amount)},
			[]string{"cashu", payload},
		},
	}
}
