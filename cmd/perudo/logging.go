package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/lox/perudo/internal/config"
)

// loadConfig reads the config file named by the global flags.
func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", g.Config, err)
	}
	return cfg, nil
}

// logger builds the process logger. Flags win over the config file.
func (g *Globals) logger(cfg *config.Config) (*log.Logger, error) {
	return newLogger(os.Stderr, g.LogLevel, cfg.LogLevel, g.Debug)
}

func newLogger(w io.Writer, flagLevel, configLevel string, debug bool) (*log.Logger, error) {
	name := configLevel
	if flagLevel != "" {
		name = flagLevel
	}
	level, err := log.ParseLevel(name)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
	}), nil
}
