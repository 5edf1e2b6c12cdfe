package cmd

import (
	"os"
	"os/user"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"github.com/spf13/cobra"
)

var configGen = &cobra.Command{
	Use:   "create",
	Short: "Create a config",
	Long:  "Create a config to use for weathervane. Config file will be placed in $HOME/.weathervane/weathervane.yaml",
	Run: func(cmd *cobra.Command, args []string) {
		usr, err := user.Current()
		if usr == nil || err != nil {
			wrapFatalln("could not get home directory for user", err)
			return
		}
		config := Config{
			DataDir:  weatherFlags.root.dataDir,
			LogLevel: weatherFlags.root.logLevel,
		}
		o, err := yaml.Marshal(config)
		if err != nil {
			wrapFatalln("serialize config to yaml", err)
			return
		}
		_ = os.Mkdir(filepath.Join(usr.HomeDir, ".weathervane"), 0777)
		err = os.WriteFile(filepath.Join(usr.HomeDir, ".weathervane", "weathervane.yaml"), o, 0666)
		if err != nil {
			wrapFatalln("write config file", err)
			return
		}
	},
}

func init() {
	configCmd.AddCommand(configGen)
}
