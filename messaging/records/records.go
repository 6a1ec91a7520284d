/*
Package records is the boundary between the pure bounty core and the relay
network: it mirrors signed records locally, fetches everything known about a
task, and publishes the records we produce. Nothing in here interprets
records; that is the projection layer's job.
*/
package records

import (
	"os"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/sasha-s/go-deadlock"
	"github.com/stackerstan/go-nostr"

	"bountyninja/bountyninja"
	"bountyninja/database"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type db struct {
	data  map[bountyninja.S256Hash]nostr.Event
	mutex *deadlock.Mutex
}

var currentState = db{
	data:  make(map[bountyninja.S256Hash]nostr.Event),
	mutex: &deadlock.Mutex{},
}

//seenBefore drops records we have already mirrored without touching the map
var seenBefore = bountyninja.MakeNewInverseBloomFilter(100000)

// Start opens the record mirror. It blocks until the mirror is ready, and
// shuts down safely when the terminate channel is closed.
func Start(terminate chan struct{}, wg *sync.WaitGroup) {
	ready := make(chan struct{})
	go start(terminate, wg, ready)
	<-ready
	bountyninja.LogCLI("Record mirror has started", 4)
}

func start(terminate chan struct{}, wg *sync.WaitGroup, ready chan struct{}) {
	wg.Add(1)
	database.Backup()
	c, ok := database.Open("records", "mirror")
	if ok {
		currentState.restoreFromDisk(c)
	}
	close(ready)
	<-terminate
	currentState.mutex.Lock()
	defer currentState.mutex.Unlock()
	b, err := json.MarshalIndent(currentState.data, "", " ")
	if err != nil {
		bountyninja.LogCLI(err.Error(), 0)
	}
	database.Write("records", "mirror", b)
	wg.Done()
	bountyninja.LogCLI("Record mirror has shut down", 4)
}

func (s *db) restoreFromDisk(f *os.File) {
	s.mutex.Lock()
	err := json.NewDecoder(f).Decode(&s.data)
	if err != nil {
		if err.Error() != "EOF" {
			bountyninja.LogCLI(err.Error(), 0)
		}
	}
	s.mutex.Unlock()
	err = f.Close()
	if err != nil {
		bountyninja.LogCLI(err.Error(), 0)
	}
}

func (s *db) upsert(e nostr.Event) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.data[e.ID] = e
}

// Mirror keeps a validly signed event in the local mirror. Returns false for
// duplicates and bad signatures.
func Mirror(e nostr.Event) bool {
	if !seenBefore(e.ID) {
		return false
	}
	if sig, _ := e.CheckSignature(); !sig {
		bountyninja.LogCLI("invalid signature on record "+e.ID, 2)
		return false
	}
	currentState.upsert(e)
	return true
}

func FetchLocalCachedRecord(id bountyninja.S256Hash) (bountyninja.Record, bool) {
	currentState.mutex.Lock()
	defer currentState.mutex.Unlock()
	if e, ok := currentState.data[id]; ok {
		return bountyninja.ConvertToRecord(&e), true
	}
	return bountyninja.Record{}, false
}

// localRecordsForTask returns every mirrored record that belongs to the task.
func localRecordsForTask(addr bountyninja.TaskAddress) (out []bountyninja.Record) {
	currentState.mutex.Lock()
	defer currentState.mutex.Unlock()
	want := addr.String()
	for _, e := range currentState.data {
		r := bountyninja.ConvertToRecord(&e)
		if r.Kind == addr.Kind && r.PubKey == addr.Creator {
			if d, ok := r.GetSingleTag("d"); ok && d == addr.DTag {
				out = append(out, r)
				continue
			}
		}
		if a, ok := r.GetSingleTag("a"); ok && a == want {
			out = append(out, r)
		}
	}
	return
}
