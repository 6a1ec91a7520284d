/*
Package voting ties decision power to capital at risk: a vote weighs exactly
what its voter has pledged to the task, and nothing else.
*/
package voting

import (
	"bountyninja/bountyninja"
	"bountyninja/projection"
)

// Tally is the weighted verdict for one solution.
type Tally struct {
	SolutionID    bountyninja.S256Hash
	ApproveWeight bountyninja.Sats
	RejectWeight  bountyninja.Sats
	Quorum        float64
	QuorumPercent float64
	IsApproved    bool
	IsRejected    bool
}

// DefaultQuorumFraction is the share of total pledged value one side must
// reach before a solution can resolve. Overridable via the quorumFraction
// config key; there is exactly one such constant in the system.
const DefaultQuorumFraction = 0.5

func QuorumFraction() float64 {
	if conf := bountyninja.MakeOrGetConfig(); conf != nil {
		if f := conf.GetFloat64("quorumFraction"); f > 0 {
			return f
		}
	}
	return DefaultQuorumFraction
}

// TallySolution computes the weighted tally for one solution. Votes are
// deduplicated per voter, keeping only the latest CreatedAt; votes from
// pubkeys with no pledge on this task are excluded entirely, they do not
// even count as zero. A tie resolves neither side.
func TallySolution(solutionID bountyninja.S256Hash, votes []projection.Vote, pledgedBy map[bountyninja.Account]bountyninja.Sats, totalPledged bountyninja.Sats, quorumFraction float64) Tally {
	tally := Tally{SolutionID: solutionID}
	if totalPledged <= 0 {
		return tally
	}
	latest := make(map[bountyninja.Account]projection.Vote)
	for _, v := range votes {
		if v.SolutionID != solutionID {
			continue
		}
		if _, pledged := pledgedBy[v.PubKey]; !pledged {
			continue
		}
		prior, seen := latest[v.PubKey]
		if !seen || v.CreatedAt.After(prior.CreatedAt) {
			latest[v.PubKey] = v
			continue
		}
		//identical CreatedAt: take the record with the greater ID so that
		//every observer resolves the conflict the same way
		if v.CreatedAt.Equal(prior.CreatedAt) && v.RecordID > prior.RecordID {
			latest[v.PubKey] = v
		}
	}
	for _, v := range latest {
		if v.Approve {
			tally.ApproveWeight += pledgedBy[v.PubKey]
		} else {
			tally.RejectWeight += pledgedBy[v.PubKey]
		}
	}
	tally.Quorum = float64(totalPledged) * quorumFraction
	tally.QuorumPercent = float64(tally.ApproveWeight+tally.RejectWeight) / float64(totalPledged) * 100
	if tally.ApproveWeight > tally.RejectWeight && float64(tally.ApproveWeight) >= tally.Quorum {
		tally.IsApproved = true
	}
	if tally.RejectWeight > tally.ApproveWeight && float64(tally.RejectWeight) >= tally.Quorum {
		tally.IsRejected = true
	}
	return tally
}

// TallyAll tallies every solution in the view.
func TallyAll(view *projection.TaskView) map[bountyninja.S256Hash]Tally {
	fraction := QuorumFraction()
	tallies := make(map[bountyninja.S256Hash]Tally)
	for _, s := range view.Solutions {
		tallies[s.RecordID] = TallySolution(s.RecordID, view.VotesBySolution[s.RecordID], view.PledgedBy, view.TotalPledged, fraction)
	}
	return tallies
}

// HasConsensus reports whether any solution has reached an approved tally.
// This is the consensus signal consumed by the status state machine.
func HasConsensus(view *projection.TaskView) bool {
	for _, tally := range TallyAll(view) {
		if tally.IsApproved {
			return true
		}
	}
	return false
}

// ApprovedSolution returns the approved solution's id, if any. When more than
// one solution is approved the one with the greatest approve weight wins,
// record ID breaking ties.
func ApprovedSolution(view *projection.TaskView) (bountyninja.S256Hash, bool) {
	var best Tally
	var found bool
	for _, tally := range TallyAll(view) {
		if !tally.IsApproved {
			continue
		}
		if !found || tally.ApproveWeight > best.ApproveWeight ||
			(tally.ApproveWeight == best.ApproveWeight && tally.SolutionID > best.SolutionID) {
			best = tally
			found = true
		}
	}
	return best.SolutionID, found
}
