package bountyninja

import (
	"fmt"
	"strconv"
	"strings"
)

// TaskAddress is the stable identity of a parameterized replaceable task
// record: "{kind}:{creatorPubkey}:{dTag}". A later record with the same
// address replaces the earlier one.
type TaskAddress struct {
	Kind    int64
	Creator Account
	DTag    string
}

func (a TaskAddress) String() string {
	return fmt.Sprintf("%d:%s:%s", a.Kind, a.Creator, a.DTag)
}

func ParseTaskAddress(s string) (TaskAddress, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 {
		return TaskAddress{}, fmt.Errorf("invalid task address %s", s)
	}
	kind, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return TaskAddress{}, fmt.Errorf("invalid kind in task address %s: %w", s, err)
	}
	if len(parts[1]) != 64 {
		return TaskAddress{}, fmt.Errorf("invalid pubkey in task address %s", s)
	}
	if len(parts[2]) == 0 {
		return TaskAddress{}, fmt.Errorf("empty d tag in task address %s", s)
	}
	return TaskAddress{Kind: kind, Creator: parts[1], DTag: parts[2]}, nil
}
