package bountyninja

import (
	"os"
	"time"

	"github.com/sasha-s/go-deadlock"
	"github.com/spf13/viper"
)

var conf *viper.Viper

func MakeOrGetConfig() *viper.Viper {
	return conf
}

func SetConfig(config *viper.Viper) {
	conf = config
}

var shutdownChan chan struct{}
var shutdownMutex = &deadlock.Mutex{}

func RegisterShutdownChan(shutdown chan struct{}) {
	shutdownMutex.Lock()
	defer shutdownMutex.Unlock()
	shutdownChan = shutdown
}

func Shutdown() {
	LogCLI("Calling Shutdown", 2)
	shutdownMutex.Lock()
	defer shutdownMutex.Unlock()
	if shutdownChan == nil {
		os.Exit(1)
	}
	select {
	case <-shutdownChan:
		return
	default:
		close(shutdownChan)
	}
	go func() {
		LogCLI("Shutting down. If any databases fail to close gracefully within 120 seconds they will be destroyed.", 4)
		//If everything goes well, closing the shutdown channel terminates cleanly before this fires.
		time.Sleep(time.Second * 120)
		println("Something didn't shutdown cleanly.")
		os.Exit(0)
	}()
}
