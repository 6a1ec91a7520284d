package projection

import (
	"time"

	"bountyninja/bountyninja"
)

// Task is a crowd-funded bounty. Identified by (kind, creator, d tag); a
// later record with the same identity replaces the earlier one. Cancellation
// is a separate Retraction record, never a replacement.
type Task struct {
	RecordID      bountyninja.S256Hash
	Kind          int64
	CreatedBy     bountyninja.Account
	DTag          string
	Title         string
	Description   string
	Reward        bountyninja.Sats
	Currency      string
	Topics        []string
	Deadline      time.Time //zero when the task has no deadline
	PreferredMint string
	SubmissionFee bountyninja.Sats
	CreatedAt     time.Time
}

func (t *Task) Address() bountyninja.TaskAddress {
	return bountyninja.TaskAddress{Kind: t.Kind, Creator: t.CreatedBy, DTag: t.DTag}
}

// Pledge is a funding commitment. The token is locked to the pledger's own
// key: nobody else ever has custody until the pledger deliberately releases.
type Pledge struct {
	RecordID  bountyninja.S256Hash
	Task      bountyninja.TaskAddress
	PubKey    bountyninja.Account
	Amount    bountyninja.Sats
	Token     string
	Mint      string
	CreatedAt time.Time
}

type Solution struct {
	RecordID    bountyninja.S256Hash
	Task        bountyninja.TaskAddress
	PubKey      bountyninja.Account
	Content     string
	FeeTokens   []string
	Deliverable string //optional reference to the actual work product
	CreatedAt   time.Time
}

// Vote is one participant's verdict on one solution. Logically singular per
// (voter, solution): a later CreatedAt supersedes an earlier one.
type Vote struct {
	RecordID   bountyninja.S256Hash
	Task       bountyninja.TaskAddress
	SolutionID bountyninja.S256Hash
	PubKey     bountyninja.Account
	Approve    bool
	CreatedAt  time.Time
}

// Payout records a release of funds to a solver. Published by the releasing
// pledger, never by the task creator, who has no custody.
type Payout struct {
	RecordID   bountyninja.S256Hash
	Task       bountyninja.TaskAddress
	SolutionID bountyninja.S256Hash
	PubKey     bountyninja.Account
	Recipient  bountyninja.Account
	Amount     bountyninja.Sats
	Token      string
	CreatedAt  time.Time
}

const (
	RetractTask   = "task"
	RetractPledge = "pledge"
)

type Retraction struct {
	RecordID  bountyninja.S256Hash
	Task      bountyninja.TaskAddress
	PubKey    bountyninja.Account
	Type      string               //RetractTask or RetractPledge
	PledgeID  bountyninja.S256Hash //set when Type is RetractPledge
	CreatedAt time.Time
}

// ReputationRecord is the public accountability signal emitted when a
// retraction lands on a task that already had solutions.
type ReputationRecord struct {
	RecordID     bountyninja.S256Hash
	Offender     bountyninja.Account
	Task         bountyninja.TaskAddress
	Type         string
	RetractionID bountyninja.S256Hash
	CreatedAt    time.Time
}
