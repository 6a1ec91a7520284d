package bountyninja

import (
	"fmt"

	"github.com/sasha-s/go-deadlock"
)

// Roles for the record kinds the core consumes and produces. The kind values
// themselves are a configurable table (see initConfig.go), not protocol
// constants.
const (
	RoleTask       = "task"
	RolePledge     = "pledge"
	RoleSolution   = "solution"
	RoleVote       = "vote"
	RolePayout     = "payout"
	RoleRetraction = "retraction"
	RoleReputation = "reputation"
	RoleDelete     = "delete" //legacy delete-style records, treated as task cancellation
)

var validKinds = make(map[int64]string)
var roleKinds = make(map[string]int64)
var kindsMutex = &deadlock.Mutex{}

func WhichRoleForKind(kind int64) (string, bool) {
	kindsMutex.Lock()
	defer kindsMutex.Unlock()
	role, ok := validKinds[kind]
	return role, ok
}

func KindForRole(role string) (int64, bool) {
	kindsMutex.Lock()
	defer kindsMutex.Unlock()
	kind, ok := roleKinds[role]
	return kind, ok
}

//RegisterKind maps one record kind to one role so that we can route records to the right projector.
func RegisterKind(kind int64, role string) error {
	kindsMutex.Lock()
	defer kindsMutex.Unlock()
	if existing, ok := validKinds[kind]; ok {
		return fmt.Errorf("kind %d has already been registered by %s", kind, existing)
	}
	validKinds[kind] = role
	roleKinds[role] = kind
	return nil
}

// RegisterKindTable loads the kind table from the config. Call once at startup.
func RegisterKindTable() {
	table := map[string]string{
		RoleTask:       "kindTask",
		RolePledge:     "kindPledge",
		RoleSolution:   "kindSolution",
		RoleVote:       "kindVote",
		RolePayout:     "kindPayout",
		RoleRetraction: "kindRetraction",
		RoleReputation: "kindReputation",
		RoleDelete:     "kindDelete",
	}
	for role, key := range table {
		if err := RegisterKind(MakeOrGetConfig().GetInt64(key), role); err != nil {
			LogCLI(err.Error(), 0)
		}
	}
}

func GetAllKinds() map[int64]string {
	kindsMutex.Lock()
	defer kindsMutex.Unlock()
	m := make(map[int64]string)
	for kind, role := range validKinds {
		m[kind] = role
	}
	return m
}
