package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lox/perudo/internal/game"
	"github.com/lox/perudo/internal/randutil"
	"github.com/lox/perudo/internal/report"
)

type PlayCmd struct {
	Players         int           `short:"p" help:"Number of players (config default if 0)"`
	Dice            int           `short:"d" help:"Starting dice per player (config default if 0)"`
	Strategy        []string      `short:"s" help:"Strategy per seat (rand, call, prob); the last one fills remaining seats"`
	Seed            int64         `help:"RNG seed (0 for random)"`
	DecisionTimeout time.Duration `help:"Per-decision deadline, overrides the config file"`
	Standings       bool          `help:"Print dice counts after every round"`
}

func (c *PlayCmd) Run(globals *Globals) error {
	cfg, err := globals.loadConfig()
	if err != nil {
		return err
	}
	logger, err := globals.logger(cfg)
	if err != nil {
		return err
	}

	players := cfg.Game.Players
	if c.Players != 0 {
		players = c.Players
	}
	dice := cfg.Game.StartingDice
	if c.Dice != 0 {
		dice = c.Dice
	}
	timeout, err := cfg.DecisionTimeout()
	if err != nil {
		return err
	}
	if c.DecisionTimeout != 0 {
		timeout = c.DecisionTimeout
	}
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	strategies, err := seatStrategies(players, c.Strategy, cfg.SeatStrategies())
	if err != nil {
		return err
	}
	rng := randutil.New(seed)
	agents, err := buildAgents(strategies, timeout, rng, logger)
	if err != nil {
		return err
	}

	g, err := game.NewGame(game.Config{
		Players:      players,
		StartingDice: dice,
		Rand:         rng,
		Logger:       logger,
	}, agents[0])
	if err != nil {
		return err
	}
	for seat, agent := range agents {
		g.SetAgent(seat, agent)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Game %s: %d players x %d dice, seats %v (seed: %d)\n\n", g.ID(), players, dice, strategies, seed)
	for !g.Finished() {
		res, err := g.Advance(ctx)
		if err != nil {
			return err
		}
		fmt.Print(report.Round(*res.Outcome))
		if c.Standings || res.Finished {
			fmt.Print(report.Standings(g))
		}
		fmt.Println()
	}
	return nil
}
