package main

import (
	"sync"
	"time"

	"github.com/sasha-s/go-deadlock"
	"github.com/spf13/viper"

	"bountyninja/bountyninja"
	"bountyninja/escrow"
	"bountyninja/messaging/notify"
	"bountyninja/messaging/records"
	"bountyninja/web"
)

func main() {
	deadlock.Opts.DisableLockOrderDetection = true
	deadlock.Opts.DeadlockTimeout = time.Millisecond * 30000

	// Various aspects of this application require global and local settings.
	// To keep things clean and tidy we put these settings in a Viper configuration.
	conf := viper.New()
	bountyninja.InitConfig(conf)
	bountyninja.SetConfig(conf)
	bountyninja.RegisterKindTable()

	terminate := make(chan struct{})
	bountyninja.RegisterShutdownChan(terminate)
	wg := &sync.WaitGroup{}

	records.Start(terminate, wg)

	escrowService := escrow.NewService(nil)
	broadcaster := notify.NewBroadcaster()
	server := web.NewServer(escrowService, broadcaster)
	go server.Start()

	go watchRecords(terminate, broadcaster)
	go cliListener(escrowService)

	<-terminate
	wg.Wait()
	bountyninja.LogCLI("Goodbye", 4)
}

// watchRecords streams live bounty records into the mirror and republishes
// derived status changes at the boundary.
func watchRecords(terminate chan struct{}, broadcaster *notify.Broadcaster) {
	stream := records.SubscribeToBountyRecords(terminate)
	for record := range stream {
		web.RecordsMirrored.Inc()
		addr, ok := record.TaskAddress()
		if !ok {
			if role, known := bountyninja.WhichRoleForKind(record.Kind); !known || role != bountyninja.RoleTask {
				continue
			}
			if a, err := taskAddressOf(record); err == nil {
				addr = a
			} else {
				web.RecordsRejected.Inc()
				continue
			}
		}
		recomputeAndPublish(addr, broadcaster)
	}
}
