package config

import (
	"github.com/spf13/pflag"
)

const (
	FlagConfig      = "config"
	FlagDir         = "dir"
	FlagProgressDir = "progress-dir"
	FlagExtension   = "ext"
	FlagStore       = "store"
	FlagLogFile     = "log-file"
	FlagDebug       = "debug"
)

// RegisterFlags declares the command-line overrides on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(FlagConfig, "", "path to a YAML config file")
	fs.StringP(FlagDir, "d", "", "directory containing documents")
	fs.String(FlagProgressDir, "", "directory for saved reading positions")
	fs.String(FlagExtension, "", "document file extension")
	fs.String(FlagStore, "", "progress store backend (file or sqlite)")
	fs.String(FlagLogFile, "", "write debug logs to this file")
	fs.Bool(FlagDebug, false, "enable debug logging")
}

// ApplyFlags copies flags that were set explicitly onto cfg.
func ApplyFlags(fs *pflag.FlagSet, cfg *Config) error {
	stringFlags := []struct {
		name   string
		target *string
	}{
		{FlagDir, &cfg.DocumentDir},
		{FlagProgressDir, &cfg.ProgressDir},
		{FlagExtension, &cfg.Extension},
		{FlagStore, &cfg.Store},
		{FlagLogFile, &cfg.LogFile},
	}
	for _, f := range stringFlags {
		if !fs.Changed(f.name) {
			continue
		}
		v, err := fs.GetString(f.name)
		if err != nil {
			return err
		}
		*f.target = v
	}

	if fs.Changed(FlagDebug) {
		v, err := fs.GetBool(FlagDebug)
		if err != nil {
			return err
		}
		cfg.Debug = v
	}
	return nil
}
