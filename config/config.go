// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// InputConfig is settings about the per-gene alignment inputs
type InputConfig struct {
	// file extension of the per-gene alignment files
	AlignmentExt string `mapstructure:"alignment-ext"`

	// suffix stripped from an alignment file name to get the gene's short name
	GeneSuffix string `mapstructure:"gene-suffix"`
}

// ReduceConfig is settings for the duplicate removal step
type ReduceConfig struct {
	// identity at or above which two genomes count as near-duplicates
	Threshold float64 `mapstructure:"identity-threshold"`

	// substring marking a genome as a curated assembly; such genomes are
	// handled by merge groups, never by the threshold channel
	AssemblyMarker string `mapstructure:"assembly-marker"`

	// path to the curated merge groups file
	MergeGroups string `mapstructure:"merge-groups"`
}

// Config is the root-level settings struct and is a mix of settings
// available in a settings file and those from the command line
type Config struct {
	// per-gene alignment input settings
	Input InputConfig `mapstructure:"input"`

	// duplicate removal settings
	Reduce ReduceConfig `mapstructure:"reduce"`

	// number of workers computing pairwise identities
	Workers int `mapstructure:"workers"`

	// whether to suppress the progress bar
	Quiet bool `mapstructure:"quiet"`
}

// New returns a new Config struct populated by Viper settings (either
// from a settings file or the defaults below)
func New() *Config {
	viper.SetDefault("input.alignment-ext", ".afa")
	viper.SetDefault("input.gene-suffix", ".fna.afa")
	viper.SetDefault("reduce.identity-threshold", 0.99)
	viper.SetDefault("reduce.assembly-marker", "assembly")
	viper.SetDefault("reduce.merge-groups", "")
	viper.SetDefault("workers", 1)
	viper.SetDefault("quiet", false)

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		log.Fatalf("unable to decode settings into struct: %v", err)
	}

	return &c
}

// IsAssembly reports whether a genome label is marked as a curated assembly.
// An empty marker disables the check.
func (rc ReduceConfig) IsAssembly(name string) bool {
	if rc.AssemblyMarker == "" {
		return false
	}
	return strings.Contains(name, rc.AssemblyMarker)
}
