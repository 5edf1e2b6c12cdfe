package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/weathervane/weathervane/pkg/dlogger"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "weathervane",
	Short: "Weathervane manages per-day weather history archives",
	Long: `Weathervane stores per-day weather history records for named locations
in zip archives, one archive per location, with crash-consistent writes.

Histories from different locations and calendar years can be aligned on a
common season timeline for comparison.
`,
}

var config *Config

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	log.SetFlags(0)
	cobra.OnInitialize(initConfig)

	addDataDirFlag(rootCmd)
	addLogLevelFlag(rootCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetDefault("datadir", defaultDataDir)
	viper.SetDefault("loglevel", dlogger.LogLevelInfo)
	if os.Getenv("WEATHERVANE_CONFIG") != "" {
		// Use config file from the flag.
		viper.SetConfigFile(os.Getenv("WEATHERVANE_CONFIG"))
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.weathervane")
		viper.AddConfigPath("/etc/weathervane")
		viper.SetConfigName("weathervane")
	}

	viper.AutomaticEnv() // read in environment variables that match
	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Println("Using config file:", viper.ConfigFileUsed())
	}
	var err error
	config, err = newConfig()
	if err != nil {
		logFatalln(err)
	}
	config.setWeatherParams(&weatherFlags)
}
