// Package cmd is for command line interactions with the superaln application
package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "superaln",
	Short: `Concatenate marker gene alignments into a super-alignment,
compute pairwise genome identities and remove near-duplicate genomes`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// settings is an optional parameter for a settings file overriding the defaults
	rootCmd.PersistentFlags().StringP("settings", "s", "", "path to a settings file <YAML>")
	viper.BindPFlag("settings", rootCmd.PersistentFlags().Lookup("settings"))
}

// initConfig reads the (optional) settings file into viper before any
// command runs. Missing files are only an error when asked for explicitly.
func initConfig() {
	if settings := viper.GetString("settings"); settings != "" {
		viper.SetConfigFile(settings)
		if err := viper.ReadInConfig(); err != nil {
			log.Fatalf("failed to read settings file %s: %v", settings, err)
		}
	}
}
