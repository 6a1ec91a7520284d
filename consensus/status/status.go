/*
Package status derives a task's lifecycle stage from an unordered,
partially-observed record set. Derive is a pure function: same inputs, same
answer, no matter how many times it runs or in what order the records arrived.
*/
package status

import (
	"time"

	"bountyninja/projection"
)

type Status string

const (
	Cancelled        Status = "cancelled"
	Completed        Status = "completed"
	Releasing        Status = "releasing"
	Expired          Status = "expired"
	ConsensusReached Status = "consensus_reached"
	InReview         Status = "in_review"
	Open             Status = "open"
)

// Derive evaluates the lifecycle rules in priority order, first match wins.
// A published task with no activity is Open: there is no draft stage, the
// act of publishing is the act of opening.
func Derive(view *projection.TaskView, now time.Time, hasConsensus bool) Status {
	// A creator cancellation overrides everything else. Pledge retractions
	// never cancel the task.
	if view.HasTaskRetraction() || view.HasLegacyDelete {
		return Cancelled
	}
	// Payouts beat expiry: a late release still resolves the task.
	if len(view.Payouts) > 0 {
		if hasConsensus {
			return Releasing
		}
		return Completed
	}
	if !view.Task.Deadline.IsZero() && !view.Task.Deadline.After(now) {
		return Expired
	}
	if hasConsensus {
		return ConsensusReached
	}
	if view.SolutionCount() > 0 {
		return InReview
	}
	return Open
}
