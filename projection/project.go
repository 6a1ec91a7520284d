/*
Package projection turns raw signed records into typed bounty entities.
Everything in here is pure: malformed records are rejected with a
ValidationError and dropped, never retried, and no projector has side effects.
*/
package projection

import (
	"strings"
	"time"

	"github.com/spf13/cast"

	"bountyninja/bountyninja"
)

func reject(r *bountyninja.Record, reason string) *bountyninja.ValidationError {
	return &bountyninja.ValidationError{RecordID: r.ID, Reason: reason}
}

// Project routes a record to the projector for its kind's role.
func Project(r bountyninja.Record) (interface{}, error) {
	role, ok := bountyninja.WhichRoleForKind(r.Kind)
	if !ok {
		return nil, reject(&r, "unregistered kind")
	}
	switch role {
	case bountyninja.RoleTask:
		return ProjectTask(r)
	case bountyninja.RolePledge:
		return ProjectPledge(r)
	case bountyninja.RoleSolution:
		return ProjectSolution(r)
	case bountyninja.RoleVote:
		return ProjectVote(r)
	case bountyninja.RolePayout:
		return ProjectPayout(r)
	case bountyninja.RoleRetraction:
		return ProjectRetraction(r)
	case bountyninja.RoleReputation:
		return ProjectReputation(r)
	}
	return nil, reject(&r, "no projector for role "+role)
}

func ProjectTask(r bountyninja.Record) (Task, error) {
	t := Task{
		RecordID:  r.ID,
		Kind:      r.Kind,
		CreatedBy: r.PubKey,
		CreatedAt: r.CreatedAt,
	}
	d, ok := r.GetSingleTag("d")
	if !ok {
		return t, reject(&r, "missing d tag")
	}
	t.DTag = d
	title, ok := r.GetSingleTag("title")
	if !ok {
		return t, reject(&r, "missing title tag")
	}
	t.Title = title
	reward, err := tagAmount(&r, "reward")
	if err != nil {
		return t, err
	}
	t.Reward = reward
	t.Description = r.Content
	if c, ok := r.GetSingleTag("currency"); ok {
		t.Currency = c
	} else {
		t.Currency = "sat"
	}
	if topics, ok := r.GetTags("t"); ok {
		t.Topics = topics
	}
	if deadline, ok := r.GetInt64Tag("deadline"); ok {
		if deadline <= 0 {
			return t, reject(&r, "malformed deadline")
		}
		t.Deadline = time.Unix(deadline, 0)
	}
	if mint, ok := r.GetSingleTag("mint"); ok {
		t.PreferredMint = mint
	}
	if fee, ok := r.GetInt64Tag("fee"); ok {
		if fee < 0 {
			return t, reject(&r, "negative submission fee")
		}
		t.SubmissionFee = fee
	}
	return t, nil
}

func ProjectPledge(r bountyninja.Record) (Pledge, error) {
	p := Pledge{
		RecordID:  r.ID,
		PubKey:    r.PubKey,
		CreatedAt: r.CreatedAt,
	}
	addr, ok := r.TaskAddress()
	if !ok {
		return p, reject(&r, "missing or malformed task address")
	}
	p.Task = addr
	amount, err := tagAmount(&r, "amount")
	if err != nil {
		return p, err
	}
	p.Amount = amount
	token, ok := r.GetSingleTag("cashu")
	if !ok {
		return p, reject(&r, "missing cashu token")
	}
	p.Token = token
	mint, ok := r.GetSingleTag("mint")
	if !ok {
		return p, reject(&r, "missing mint URL")
	}
	p.Mint = mint
	return p, nil
}

func ProjectSolution(r bountyninja.Record) (Solution, error) {
	s := Solution{
		RecordID:  r.ID,
		PubKey:    r.PubKey,
		CreatedAt: r.CreatedAt,
	}
	addr, ok := r.TaskAddress()
	if !ok {
		return s, reject(&r, "missing or malformed task address")
	}
	s.Task = addr
	if len(strings.TrimSpace(r.Content)) == 0 {
		return s, reject(&r, "empty solution content")
	}
	s.Content = r.Content
	if tokens, ok := r.GetTags("cashu"); ok {
		s.FeeTokens = tokens
	}
	if ref, ok := r.GetSingleTag("r"); ok {
		s.Deliverable = ref
	}
	return s, nil
}

func ProjectVote(r bountyninja.Record) (Vote, error) {
	v := Vote{
		RecordID:  r.ID,
		PubKey:    r.PubKey,
		CreatedAt: r.CreatedAt,
	}
	addr, ok := r.TaskAddress()
	if !ok {
		return v, reject(&r, "missing or malformed task address")
	}
	v.Task = addr
	solution, ok := r.GetSingleTag("e")
	if !ok {
		return v, reject(&r, "missing solution reference")
	}
	v.SolutionID = solution
	verdict, ok := r.GetSingleTag("vote")
	if !ok {
		return v, reject(&r, "missing vote tag")
	}
	switch verdict {
	case "approve":
		v.Approve = true
	case "reject":
		v.Approve = false
	default:
		return v, reject(&r, "unrecognized vote value "+verdict)
	}
	return v, nil
}

func ProjectPayout(r bountyninja.Record) (Payout, error) {
	p := Payout{
		RecordID:  r.ID,
		PubKey:    r.PubKey,
		CreatedAt: r.CreatedAt,
	}
	addr, ok := r.TaskAddress()
	if !ok {
		return p, reject(&r, "missing or malformed task address")
	}
	p.Task = addr
	solution, ok := r.GetSingleTag("e")
	if !ok {
		return p, reject(&r, "missing solution reference")
	}
	p.SolutionID = solution
	recipient, ok := r.GetSingleTag("p")
	if !ok || len(recipient) != 64 {
		return p, reject(&r, "missing or malformed recipient pubkey")
	}
	p.Recipient = recipient
	amount, err := tagAmount(&r, "amount")
	if err != nil {
		return p, err
	}
	p.Amount = amount
	token, ok := r.GetSingleTag("cashu")
	if !ok {
		return p, reject(&r, "missing cashu token")
	}
	p.Token = token
	return p, nil
}

func ProjectRetraction(r bountyninja.Record) (Retraction, error) {
	ret := Retraction{
		RecordID:  r.ID,
		PubKey:    r.PubKey,
		CreatedAt: r.CreatedAt,
	}
	addr, ok := r.TaskAddress()
	if !ok {
		return ret, reject(&r, "missing or malformed task address")
	}
	ret.Task = addr
	typ, ok := r.GetSingleTag("type")
	if !ok {
		return ret, reject(&r, "missing type tag")
	}
	switch typ {
	case RetractTask:
		ret.Type = RetractTask
	case RetractPledge:
		pledge, ok := r.GetSingleTag("e")
		if !ok {
			return ret, reject(&r, "pledge retraction missing pledge reference")
		}
		ret.Type = RetractPledge
		ret.PledgeID = pledge
	default:
		return ret, reject(&r, "unrecognized retraction type "+typ)
	}
	return ret, nil
}

func ProjectReputation(r bountyninja.Record) (ReputationRecord, error) {
	rep := ReputationRecord{
		RecordID:  r.ID,
		CreatedAt: r.CreatedAt,
	}
	offender, ok := r.GetSingleTag("p")
	if !ok || len(offender) != 64 {
		return rep, reject(&r, "missing or malformed offender pubkey")
	}
	rep.Offender = offender
	addr, ok := r.TaskAddress()
	if !ok {
		return rep, reject(&r, "missing or malformed task address")
	}
	rep.Task = addr
	typ, ok := r.GetSingleTag("type")
	if !ok {
		return rep, reject(&r, "missing type tag")
	}
	rep.Type = typ
	retraction, ok := r.GetSingleTag("e")
	if !ok {
		return rep, reject(&r, "missing retraction reference")
	}
	rep.RetractionID = retraction
	return rep, nil
}

// tagAmount parses a strictly positive integer amount from the given tag.
func tagAmount(r *bountyninja.Record, tag string) (bountyninja.Sats, error) {
	v, ok := r.GetSingleTag(tag)
	if !ok {
		return 0, reject(r, "missing "+tag+" tag")
	}
	amount, err := cast.ToInt64E(v)
	if err != nil {
		return 0, reject(r, "malformed "+tag+" tag")
	}
	if amount <= 0 {
		return 0, reject(r, tag+" must be a positive integer")
	}
	return amount, nil
}
