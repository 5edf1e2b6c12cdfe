package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultDataDir = "weather_data"

// Config describes the CLI configuration.
type Config struct {
	// bug in viper? Need to keep names of fields the same as the serialized names..
	DataDir  string `json:"datadir" yaml:"datadir"`   // Directory holding the manifest and archives
	LogLevel string `json:"loglevel" yaml:"loglevel"` // Log verbosity: info, debug or none
}

func newConfig() (*Config, error) {
	var config Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// setWeatherParams fills flags left unset from the loaded configuration.
func (c *Config) setWeatherParams(flags *flagsT) {
	if flags.root.dataDir == "" {
		flags.root.dataDir = c.DataDir
	}
	if flags.root.logLevel == "" {
		flags.root.logLevel = c.LogLevel
	}
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Commands to manage the config file",
	Long: `Commands to manage the weathervane config file.

The config file is searched in ., $HOME/.weathervane and /etc/weathervane,
unless WEATHERVANE_CONFIG points at an explicit file.`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
