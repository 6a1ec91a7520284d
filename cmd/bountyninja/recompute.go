package main

import (
	"fmt"
	"time"

	"bountyninja/bountyninja"
	"bountyninja/consensus/status"
	"bountyninja/consensus/voting"
	"bountyninja/messaging/notify"
	"bountyninja/messaging/records"
	"bountyninja/projection"
	"bountyninja/web"
)

func taskAddressOf(record bountyninja.Record) (bountyninja.TaskAddress, error) {
	d, ok := record.GetSingleTag("d")
	if !ok {
		return bountyninja.TaskAddress{}, fmt.Errorf("task record %s has no d tag", record.ID)
	}
	return bountyninja.TaskAddress{Kind: record.Kind, Creator: record.PubKey, DTag: d}, nil
}

// recomputeAndPublish rebuilds one task's view from scratch and pushes the
// derived status through the boundary notifier. The recompute is pure; only
// the notification is a side effect.
func recomputeAndPublish(addr bountyninja.TaskAddress, broadcaster *notify.Broadcaster) {
	recs, ok := records.FetchTaskRecords(addr)
	if !ok {
		return
	}
	view, ok := projection.NewTaskView(recs)
	if !ok {
		web.RecordsRejected.Inc()
		return
	}
	derived := status.Derive(&view, time.Now(), voting.HasConsensus(&view))
	web.StatusDerivations.Inc()
	broadcaster.Publish(addr.String(), string(derived))
}
