/*
Package database is flat-file persistence for locally mirrored records and
drafts. Nothing in here is authoritative: all bounty state is re-derivable
from the record log, this just saves us refetching everything on restart.
*/
package database

import (
	"os"
	"time"

	dircopy "github.com/otiai10/copy"
	"github.com/sasha-s/go-deadlock"

	"bountyninja/bountyninja"
)

var mutex = &deadlock.Mutex{}

func dataDir() string {
	return bountyninja.MakeOrGetConfig().GetString("rootDir") + "data/"
}

// Open returns the file for the given store and dataset, and whether it exists.
// The caller owns the returned file handle.
func Open(store, dataset string) (*os.File, bool) {
	mutex.Lock()
	defer mutex.Unlock()
	path := dataDir() + store
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, false
	}
	f, err := os.Open(path + "/" + dataset)
	if err != nil {
		return nil, false
	}
	return f, true
}

// Write persists the given bytes for the store and dataset, creating
// directories as needed.
func Write(store, dataset string, data []byte) {
	mutex.Lock()
	defer mutex.Unlock()
	path := dataDir() + store
	if err := os.MkdirAll(path, 0755); err != nil {
		bountyninja.LogCLI(err.Error(), 0)
	}
	f, err := os.Create(path + "/" + dataset)
	if err != nil {
		bountyninja.LogCLI(err.Error(), 0)
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		bountyninja.LogCLI(err.Error(), 0)
	}
}

// Backup copies the whole data directory aside before we start mutating it.
func Backup() {
	mutex.Lock()
	defer mutex.Unlock()
	src := dataDir()
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return
	}
	dst := bountyninja.MakeOrGetConfig().GetString("rootDir") + "backups/" + time.Now().Format("20060102-150405")
	if err := dircopy.Copy(src, dst); err != nil {
		bountyninja.LogCLI(err.Error(), 2)
	}
}
