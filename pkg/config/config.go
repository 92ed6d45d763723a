// Package config holds the settings of a primitive-db process.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zhangbiao2009/primitive-db/pkg/logging"
	"github.com/zhangbiao2009/primitive-db/pkg/storage/jsonfile"
)

// Config is filled from command-line flags
type Config struct {
	DataDir     string // directory holding one <table>.json per table
	MetaFile    string // catalog file path
	HistoryFile string // shell history; empty disables it
	LogLevel    string
	LogFile     string // empty for stderr
	LogFormat   string // "text" or "json"
	AssumeYes   bool   // skip confirmation prompts
	Prompt      string
}

// Default returns the settings used when no flags are given
func Default() Config {
	return Config{
		DataDir:   jsonfile.DefaultDataDir,
		MetaFile:  jsonfile.DefaultMetaFile,
		LogLevel:  "info",
		LogFormat: "text",
		Prompt:    "primitive-db> ",
	}
}

// Validate checks that the settings can be used to open a workspace
func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.DataDir) == "" {
		errs = append(errs, errors.New("data directory must not be empty"))
	}
	if strings.TrimSpace(c.MetaFile) == "" {
		errs = append(errs, errors.New("metadata file must not be empty"))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q (want text or json)", c.LogFormat))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// Logging returns the logger settings. Call Validate first.
func (c Config) Logging() logging.Config {
	level, _ := logging.ParseLevel(c.LogLevel)
	return logging.Config{
		Level:      level,
		OutputPath: c.LogFile,
		Format:     c.LogFormat,
	}
}
