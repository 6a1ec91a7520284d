package retraction

import (
	"testing"
	"time"

	"github.com/stackerstan/go-nostr"

	"bountyninja/bountyninja"
	"bountyninja/projection"
)

var (
	creator = "1111111111111111111111111111111111111111111111111111111111111111"
	alice   = "2222222222222222222222222222222222222222222222222222222222222222"
)

func init() {
	bountyninja.RegisterKind(7305, bountyninja.RoleRetraction)
	bountyninja.RegisterKind(7306, bountyninja.RoleReputation)
}

func addr() bountyninja.TaskAddress {
	return bountyninja.TaskAddress{Kind: 37300, Creator: creator, DTag: "parser-bug"}
}

func firstTag(e nostr.Event, name string) (string, bool) {
	for _, tag := range e.Tags {
		if len(tag) > 1 && tag[0] == name {
			return tag[1], true
		}
	}
	return "", false
}

func TestReputationConsequence_OnlyWhenSolutionsExisted(t *testing.T) {
	view := &projection.TaskView{
		Solutions: []projection.Solution{{RecordID: "s1", CreatedAt: time.Unix(500, 0)}},
	}
	withdrawal := projection.Retraction{
		RecordID:  "r1",
		Task:      addr(),
		PubKey:    alice,
		Type:      projection.RetractPledge,
		PledgeID:  "p1",
		CreatedAt: time.Unix(400, 0), //before anyone had submitted
	}
	if _, emitted := ReputationConsequence(view, withdrawal); emitted {
		t.Fatalf("withdrawing before any solution exists must carry no consequence")
	}
	withdrawal.CreatedAt = time.Unix(600, 0) //after a solution landed
	event, emitted := ReputationConsequence(view, withdrawal)
	if !emitted {
		t.Fatalf("withdrawing after a solution landed must emit a reputation record")
	}
	if event.Kind != 7306 {
		t.Fatalf("expected the reputation kind, got %d", event.Kind)
	}
	if offender, ok := firstTag(event, "p"); !ok || offender != alice {
		t.Fatalf("the reputation record must name the withdrawer, got %q", offender)
	}
}

func TestDraftTaskRetraction_TargetsTheTask(t *testing.T) {
	task := projection.Task{Kind: 37300, CreatedBy: creator, DTag: "parser-bug"}
	draft := DraftTaskRetraction(task, "scope changed")
	if draft.Kind != 7305 {
		t.Fatalf("expected the retraction kind, got %d", draft.Kind)
	}
	if ref, ok := firstTag(draft, "a"); !ok || ref != addr().String() {
		t.Fatalf("the retraction must reference the task address, got %q", ref)
	}
	if typ, ok := firstTag(draft, "type"); !ok || typ != projection.RetractTask {
		t.Fatalf("expected a task-type retraction, got %q", typ)
	}
}

func TestDraftPledgeRetraction_ReferencesThePledge(t *testing.T) {
	pledge := projection.Pledge{RecordID: "p1", Task: addr(), PubKey: alice, Amount: 20000}
	draft := DraftPledgeRetraction(pledge, "")
	if typ, ok := firstTag(draft, "type"); !ok || typ != projection.RetractPledge {
		t.Fatalf("expected a pledge-type retraction, got %q", typ)
	}
	if ref, ok := firstTag(draft, "e"); !ok || ref != "p1" {
		t.Fatalf("the withdrawal must reference the pledge record, got %q", ref)
	}
}
