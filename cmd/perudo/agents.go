package main

import (
	"fmt"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/perudo/internal/bot"
	"github.com/lox/perudo/internal/game"
	"github.com/lox/perudo/internal/randutil"
)

// seatStrategies resolves the strategy for each of players seats. Flag values
// win over the config; the last value given fills any remaining seats.
func seatStrategies(players int, flags, fromConfig []string) ([]string, error) {
	if players < 2 {
		return nil, fmt.Errorf("%w: need at least 2 players, got %d", game.ErrInvalidConfig, players)
	}
	names := flags
	if len(names) == 0 {
		names = fromConfig
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no seat strategies", game.ErrInvalidConfig)
	}
	out := make([]string, players)
	for i := range out {
		out[i] = names[min(i, len(names)-1)]
	}
	return out, nil
}

// buildAgents creates one agent per seat, wrapped in a deadline when timeout
// is positive.
func buildAgents(strategies []string, timeout time.Duration, rng *rand.Rand, logger *log.Logger) ([]game.Agent, error) {
	clock := quartz.NewReal()
	agents := make([]game.Agent, len(strategies))
	for seat, name := range strategies {
		agent, err := bot.New(name, randutil.Split(rng), logger)
		if err != nil {
			return nil, err
		}
		if timeout > 0 {
			agent = bot.NewDeadlineAgent(agent, timeout, clock, logger)
		}
		agents[seat] = agent
	}
	return agents, nil
}
