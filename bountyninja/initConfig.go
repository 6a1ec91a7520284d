package bountyninja

import (
	"os"

	"github.com/spf13/viper"
)

// InitConfig sets up our Viper config object
func InitConfig(config *viper.Viper) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		LogCLI(err.Error(), 0)
	}
	config.SetDefault("rootDir", homeDir+"/bountyninja/")
	config.SetConfigType("yaml")
	config.SetConfigFile(config.GetString("rootDir") + "config.yaml")
	err = config.ReadInConfig()
	if err != nil {
		LogCLI(err.Error(), 4)
	}
	config.SetDefault("firstRun", true)
	config.SetDefault("logLevel", 4)
	config.SetDefault("devMode", false)
	config.SetDefault("websocketAddr", "0.0.0.0:1031")
	config.SetDefault("httpAddr", "0.0.0.0:1032")

	//we usually lean towards errors being fatal to cause less damage to state. If this is set to true, we lean towards staying alive instead.
	config.SetDefault("highly_reliable", false)
	config.SetDefault("relaysMust", []string{"wss://nostr.688.org"})

	// Record kind table. Values are conventions, not protocol constants.
	config.SetDefault("kindTask", int64(37300))
	config.SetDefault("kindPledge", int64(7301))
	config.SetDefault("kindSolution", int64(7302))
	config.SetDefault("kindVote", int64(7303))
	config.SetDefault("kindPayout", int64(7304))
	config.SetDefault("kindRetraction", int64(7305))
	config.SetDefault("kindReputation", int64(7306))
	config.SetDefault("kindDelete", int64(5))

	// The share of total pledged value that one side of a vote must reach
	// before a solution can resolve.
	config.SetDefault("quorumFraction", 0.5)

	// Mints we are willing to pledge with when the task creator has no preference.
	config.SetDefault("mintsTrusted", []string{"https://mint.minibits.cash/Bitcoin"})

	// Reputation tier cutoffs.
	config.SetDefault("tierEstablishedCompletions", int64(10))
	config.SetDefault("tierTrustedCompletions", int64(3))
	config.SetDefault("tierFlaggedRetractions", int64(3))

	// Create our working directory and config file if not exist
	initRootDir(config)
	Touch(config.GetString("rootDir") + "config.yaml")
	err = config.WriteConfig()
	if err != nil {
		LogCLI(err.Error(), 0)
	}
}

func initRootDir(conf *viper.Viper) {
	_, err := os.Stat(conf.GetString("rootDir"))
	if os.IsNotExist(err) {
		err = os.Mkdir(conf.GetString("rootDir"), 0755)
		if err != nil {
			LogCLI(err, 0)
		}
	}
}
