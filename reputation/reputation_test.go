package reputation

import (
	"testing"

	"bountyninja/bountyninja"
	"bountyninja/projection"
)

var alice = "2222222222222222222222222222222222222222222222222222222222222222"

func TestTierFor_DefaultCutoffs(t *testing.T) {
	cases := []struct {
		completions int64
		retractions int64
		want        Tier
	}{
		{0, 0, Neutral},
		{2, 0, Neutral},
		{3, 0, Trusted},
		{9, 0, Trusted},
		{10, 0, Established},
		{10, 1, Trusted}, //one retraction forfeits established
		{0, 1, Flagged},  //more retractions than completions
		{5, 3, Flagged},
		{100, 3, Flagged}, //three retractions flag regardless of volume
		{2, 1, Neutral},
	}
	for _, c := range cases {
		if got := TierFor(c.completions, c.retractions); got != c.want {
			t.Fatalf("TierFor(%d, %d) = %s, want %s", c.completions, c.retractions, got, c.want)
		}
	}
}

func TestStandingFor_CountsPayoutsReceived(t *testing.T) {
	views := []projection.TaskView{
		{Payouts: []projection.Payout{
			{RecordID: "pay1", Recipient: alice},
			{RecordID: "pay2", Recipient: alice}, //second payout on the same task
		}},
		{Payouts: []projection.Payout{{RecordID: "pay3", Recipient: alice}}},
		{Payouts: []projection.Payout{{RecordID: "pay4", Recipient: "somebody else"}}},
	}
	reputations := []projection.ReputationRecord{
		{RecordID: "rep1", Offender: alice},
	}
	standing := StandingFor(bountyninja.Account(alice), views, reputations)
	if standing.Completions != 2 {
		t.Fatalf("a task counts once however many mints paid out, got %d completions", standing.Completions)
	}
	if standing.Retractions != 1 {
		t.Fatalf("expected 1 retraction on record, got %d", standing.Retractions)
	}
	if standing.Tier != Neutral {
		t.Fatalf("expected neutral standing, got %s", standing.Tier)
	}
}
