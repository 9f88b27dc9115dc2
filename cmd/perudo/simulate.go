package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lox/perudo/internal/report"
	"github.com/lox/perudo/internal/simulator"
)

type SimulateCmd struct {
	Games           int           `short:"n" help:"Number of games (config default if 0)"`
	Workers         int           `short:"w" help:"Games played in parallel (config default if 0)"`
	Players         int           `short:"p" help:"Number of players (config default if 0)"`
	Dice            int           `short:"d" help:"Starting dice per player (config default if 0)"`
	Strategy        []string      `short:"s" help:"Strategy per seat (rand, call, prob); the last one fills remaining seats"`
	Seed            int64         `help:"Base RNG seed (config value, or random if both are 0)"`
	DecisionTimeout time.Duration `help:"Per-decision deadline, overrides the config file"`
}

func (c *SimulateCmd) Run(globals *Globals) error {
	cfg, err := globals.loadConfig()
	if err != nil {
		return err
	}
	logger, err := globals.logger(cfg)
	if err != nil {
		return err
	}

	sim := simulator.Config{
		Games:        pick(c.Games, cfg.Simulation.Games),
		Workers:      pick(c.Workers, cfg.Simulation.Workers),
		Players:      pick(c.Players, cfg.Game.Players),
		StartingDice: pick(c.Dice, cfg.Game.StartingDice),
		Seed:         c.Seed,
		Logger:       logger,
	}
	if sim.Seed == 0 {
		sim.Seed = cfg.Simulation.Seed
	}
	if sim.Seed == 0 {
		sim.Seed = time.Now().UnixNano()
	}
	if sim.DecisionTimeout, err = cfg.DecisionTimeout(); err != nil {
		return err
	}
	if c.DecisionTimeout != 0 {
		sim.DecisionTimeout = c.DecisionTimeout
	}
	if sim.Strategies, err = seatStrategies(sim.Players, c.Strategy, cfg.SeatStrategies()); err != nil {
		return err
	}
	if err := sim.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Simulating %d games: %d players x %d dice, seats %v (seed: %d, workers: %d)\n\n",
		sim.Games, sim.Players, sim.StartingDice, sim.Strategies, sim.Seed, sim.Workers)

	start := time.Now()
	stats, err := simulator.New(sim).Run(ctx)
	if err != nil {
		return err
	}
	fmt.Print(report.Summary(stats, sim.Strategies))
	fmt.Printf("\nCompleted in %v\n", time.Since(start).Round(time.Millisecond))
	return nil
}

func pick(flag, fallback int) int {
	if flag != 0 {
		return flag
	}
	return fallback
}
