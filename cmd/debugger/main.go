package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/viper"

	"bountyninja/bountyninja"
	"bountyninja/consensus/status"
	"bountyninja/consensus/voting"
	"bountyninja/messaging/records"
	"bountyninja/projection"
)

// Fetches one task's records and dumps the composed view, tallies, and
// derived status. Handy when a frontend disagrees with us about a bounty.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debugger <task address>")
		os.Exit(1)
	}
	conf := viper.New()
	bountyninja.InitConfig(conf)
	bountyninja.SetConfig(conf)
	bountyninja.RegisterKindTable()

	addr, err := bountyninja.ParseTaskAddress(os.Args[1])
	if err != nil {
		bountyninja.LogCLI(err.Error(), 0)
	}
	terminate := make(chan struct{})
	bountyninja.RegisterShutdownChan(terminate)
	wg := &sync.WaitGroup{}
	records.Start(terminate, wg)

	recs, ok := records.FetchTaskRecords(addr)
	if !ok {
		bountyninja.LogCLI("no records found for "+addr.String(), 1)
		os.Exit(1)
	}
	view, ok := projection.NewTaskView(recs)
	if !ok {
		bountyninja.LogCLI("records exist but no valid task record among them", 1)
		os.Exit(1)
	}
	spew.Dump(view)
	spew.Dump(voting.TallyAll(&view))
	fmt.Printf("\nstatus: %s\n", status.Derive(&view, time.Now(), voting.HasConsensus(&view)))
	close(terminate)
	wg.Wait()
}
