package projection

import (
	"sort"

	"bountyninja/bountyninja"
)

// TaskView is the composed state of one task, derived from an immutable
// snapshot of records. Rebuilt from scratch on every new record; it holds no
// state of its own and does not depend on arrival order.
type TaskView struct {
	Task             Task
	Revisions        []Task //superseded task records, oldest first
	Pledges          []Pledge
	RetractedPledges []Pledge
	Solutions        []Solution
	VotesBySolution  map[bountyninja.S256Hash][]Vote
	Payouts          []Payout
	Retractions      []Retraction
	HasLegacyDelete  bool
	TotalPledged     bountyninja.Sats
	PledgedBy        map[bountyninja.Account]bountyninja.Sats
}

func (v *TaskView) SolutionCount() int {
	return len(v.Solutions)
}

// HasTaskRetraction reports whether the creator has cancelled the task.
func (v *TaskView) HasTaskRetraction() bool {
	for _, ret := range v.Retractions {
		if ret.Type == RetractTask {
			return true
		}
	}
	return false
}

// NewTaskView composes a TaskView from raw records. Records that do not
// resolve to the winning task, fail projection, or are published by an
// unauthorized pubkey are dropped. Returns false when no valid task record
// is present.
func NewTaskView(records []bountyninja.Record) (TaskView, bool) {
	view := TaskView{
		VotesBySolution: make(map[bountyninja.S256Hash][]Vote),
		PledgedBy:       make(map[bountyninja.Account]bountyninja.Sats),
	}
	var tasks []Task
	for _, r := range records {
		if role, ok := bountyninja.WhichRoleForKind(r.Kind); ok && role == bountyninja.RoleTask {
			if t, err := ProjectTask(r); err == nil {
				tasks = append(tasks, t)
			}
		}
	}
	if len(tasks) == 0 {
		return view, false
	}
	//last-write-wins replacement per (kind, creator, dTag); record ID breaks
	//CreatedAt ties deterministically
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].RecordID < tasks[j].RecordID
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
	addr := tasks[len(tasks)-1].Address()
	for _, t := range tasks {
		if t.Address() == addr {
			view.Revisions = append(view.Revisions, t)
		}
	}
	view.Task = view.Revisions[len(view.Revisions)-1]
	view.Revisions = view.Revisions[:len(view.Revisions)-1]

	var pledges []Pledge
	var retractions []Retraction
	for _, r := range records {
		role, ok := bountyninja.WhichRoleForKind(r.Kind)
		if !ok {
			continue
		}
		switch role {
		case bountyninja.RolePledge:
			if p, err := ProjectPledge(r); err == nil && p.Task == addr {
				pledges = append(pledges, p)
			}
		case bountyninja.RoleSolution:
			if s, err := ProjectSolution(r); err == nil && s.Task == addr {
				view.Solutions = append(view.Solutions, s)
			}
		case bountyninja.RoleVote:
			if v, err := ProjectVote(r); err == nil && v.Task == addr {
				view.VotesBySolution[v.SolutionID] = append(view.VotesBySolution[v.SolutionID], v)
			}
		case bountyninja.RoleRetraction:
			if ret, err := ProjectRetraction(r); err == nil && ret.Task == addr {
				retractions = append(retractions, ret)
			}
		case bountyninja.RoleDelete:
			if r.PubKey == addr.Creator {
				view.HasLegacyDelete = true
			}
		}
	}

	//a task retraction is only the creator's to publish
	for _, ret := range retractions {
		if ret.Type == RetractTask && ret.PubKey != addr.Creator {
			continue
		}
		view.Retractions = append(view.Retractions, ret)
	}

	//a pledge retraction removes that pledge from totals and vote eligibility,
	//but only the pledger can withdraw their own pledge
	withdrawn := make(map[bountyninja.S256Hash]struct{})
	for _, p := range pledges {
		for _, ret := range view.Retractions {
			if ret.Type == RetractPledge && ret.PledgeID == p.RecordID && ret.PubKey == p.PubKey {
				withdrawn[p.RecordID] = struct{}{}
			}
		}
	}
	for _, p := range pledges {
		if _, gone := withdrawn[p.RecordID]; gone {
			view.RetractedPledges = append(view.RetractedPledges, p)
			continue
		}
		view.Pledges = append(view.Pledges, p)
		view.TotalPledged += p.Amount
		view.PledgedBy[p.PubKey] += p.Amount
	}

	//payouts are only authorized from pubkeys that have pledged to this task
	everPledged := make(map[bountyninja.Account]struct{})
	for _, p := range pledges {
		everPledged[p.PubKey] = struct{}{}
	}
	for _, r := range records {
		if role, ok := bountyninja.WhichRoleForKind(r.Kind); ok && role == bountyninja.RolePayout {
			if p, err := ProjectPayout(r); err == nil && p.Task == addr {
				if _, ok := everPledged[p.PubKey]; ok {
					view.Payouts = append(view.Payouts, p)
				}
			}
		}
	}
	return view, true
}

// SolutionsAt reports whether any solution existed at the given instant.
// Used to decide whether a retraction carries a reputation consequence.
func (v *TaskView) SolutionsAt(at int64) bool {
	for _, s := range v.Solutions {
		if s.CreatedAt.Unix() <= at {
			return true
		}
	}
	return false
}
