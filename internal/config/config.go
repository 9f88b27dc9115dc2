// Package config loads Perudo table and simulation settings from HCL.
//
//	log_level = "info"
//
//	game {
//	  players          = 5
//	  starting_dice    = 5
//	  strategy         = "prob"
//	  decision_timeout = "2s"
//	}
//
//	seat "0" {
//	  strategy = "rand"
//	}
//
//	simulation {
//	  games   = 1000
//	  workers = 8
//	  seed    = 42
//	}
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/perudo/internal/bot"
)

// Config represents the complete configuration file.
type Config struct {
	LogLevel   string              `hcl:"log_level,optional"`
	Game       *GameSettings       `hcl:"game,block"`
	Seats      []SeatConfig        `hcl:"seat,block"`
	Simulation *SimulationSettings `hcl:"simulation,block"`
}

// GameSettings describes the table every game is played at.
type GameSettings struct {
	Players         int    `hcl:"players,optional"`
	StartingDice    int    `hcl:"starting_dice,optional"`
	Strategy        string `hcl:"strategy,optional"`
	DecisionTimeout string `hcl:"decision_timeout,optional"`
}

// SeatConfig overrides the strategy for one seat.
type SeatConfig struct {
	Seat     string `hcl:"seat,label"`
	Strategy string `hcl:"strategy"`
}

// SimulationSettings controls batch runs.
type SimulationSettings struct {
	Games   int   `hcl:"games,optional"`
	Workers int   `hcl:"workers,optional"`
	Seed    int64 `hcl:"seed,optional"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source, applies defaults and validates the result.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Game == nil {
		c.Game = &GameSettings{}
	}
	if c.Game.Players == 0 {
		c.Game.Players = 5
	}
	if c.Game.StartingDice == 0 {
		c.Game.StartingDice = 5
	}
	if c.Game.Strategy == "" {
		c.Game.Strategy = bot.Rand
	}
	if c.Simulation == nil {
		c.Simulation = &SimulationSettings{}
	}
	if c.Simulation.Games == 0 {
		c.Simulation.Games = 1000
	}
	if c.Simulation.Workers == 0 {
		c.Simulation.Workers = 4
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Game.Players < 2 {
		return fmt.Errorf("game: players must be at least 2, got %d", c.Game.Players)
	}
	if c.Game.StartingDice < 1 {
		return fmt.Errorf("game: starting_dice must be at least 1, got %d", c.Game.StartingDice)
	}
	if !slices.Contains(bot.Strategies(), c.Game.Strategy) {
		return fmt.Errorf("game: invalid strategy %s", c.Game.Strategy)
	}
	if _, err := c.DecisionTimeout(); err != nil {
		return err
	}

	seen := make(map[int]bool)
	for _, s := range c.Seats {
		seat, err := strconv.Atoi(s.Seat)
		if err != nil || seat < 0 || seat >= c.Game.Players {
			return fmt.Errorf("seat %q: must be a number in [0, %d)", s.Seat, c.Game.Players)
		}
		if seen[seat] {
			return fmt.Errorf("seat %d: configured twice", seat)
		}
		seen[seat] = true
		if !slices.Contains(bot.Strategies(), s.Strategy) {
			return fmt.Errorf("seat %d: invalid strategy %s", seat, s.Strategy)
		}
	}

	if c.Simulation.Games < 1 {
		return fmt.Errorf("simulation: games must be positive")
	}
	if c.Simulation.Workers < 1 {
		return fmt.Errorf("simulation: workers must be positive")
	}
	return nil
}

// DecisionTimeout returns the per-decision deadline, zero when unset.
func (c *Config) DecisionTimeout() (time.Duration, error) {
	if c.Game.DecisionTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Game.DecisionTimeout)
	if err != nil {
		return 0, fmt.Errorf("game: invalid decision_timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("game: decision_timeout must not be negative")
	}
	return d, nil
}

// SeatStrategies returns the strategy for every seat, falling back to the
// game strategy for seats without their own block.
func (c *Config) SeatStrategies() []string {
	out := make([]string, c.Game.Players)
	for i := range out {
		out[i] = c.Game.Strategy
	}
	for _, s := range c.Seats {
		if seat, err := strconv.Atoi(s.Seat); err == nil && seat >= 0 && seat < len(out) {
			out[seat] = s.Strategy
		}
	}
	return out
}
