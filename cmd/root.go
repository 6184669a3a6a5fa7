package cmd

import (
	"errors"
	"fmt"
	"os"

	"flavorscout/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	appCfg  config.Config
)

// rootCmd is the base command called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "flavorscout",
	Short: "Flavor Scout CLI",
	Long:  "Flavor trend analysis for supplement brands, built on Cobra, Viper, and Redis.",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
}

func initConfig() {
	v := viper.GetViper()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/flavorscout")
		v.AddConfigPath("configs")
	}

	// Credentials come from the environment when not set in the file.
	v.MustBindEnv("newsapi.api_key", "NEWS_API_KEY")
	v.MustBindEnv("groq.api_key", "GROQ_API_KEY")
	v.MustBindEnv("reddit.client_id", "REDDIT_CLIENT_ID")
	v.MustBindEnv("reddit.client_secret", "REDDIT_CLIENT_SECRET")
	v.MustBindEnv("reddit.username", "REDDIT_USERNAME")
	v.MustBindEnv("reddit.password", "REDDIT_PASSWORD")

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			fmt.Fprintf(os.Stderr, "error reading config: %v\n", err)
			os.Exit(1)
		}
	} else {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", v.ConfigFileUsed())
	}

	if err := v.Unmarshal(&appCfg); err != nil {
		fmt.Fprintf(os.Stderr, "error parsing config: %v\n", err)
		os.Exit(1)
	}

	appCfg.FillDefaults()
}

// GetConfig exposes the loaded configuration to subcommands.
func GetConfig() config.Config {
	return appCfg
}
