package simulator

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/perudo/internal/bot"
	"github.com/lox/perudo/internal/game"
	"github.com/lox/perudo/internal/randutil"
	"github.com/lox/perudo/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for running simulations
type Config struct {
	Games        int
	Workers      int
	Players      int
	StartingDice int
	// Strategies names the strategy for each seat. Seats past the end of the
	// slice use the last entry.
	Strategies      []string
	Seed            int64
	DecisionTimeout time.Duration
	Clock           quartz.Clock
	Logger          *log.Logger
}

// Simulator plays many independent games of Perudo
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if len(config.Strategies) == 0 {
		config.Strategies = []string{bot.Rand}
	}
	return &Simulator{config: config}
}

// Validate rejects table and batch sizes no game can be played with.
func (c Config) Validate() error {
	if c.Games < 1 {
		return fmt.Errorf("%w: need at least 1 game, got %d", game.ErrInvalidConfig, c.Games)
	}
	return c.validateTable()
}

func (c Config) validateTable() error {
	if c.Players < 2 {
		return fmt.Errorf("%w: need at least 2 players, got %d", game.ErrInvalidConfig, c.Players)
	}
	if c.StartingDice < 1 {
		return fmt.Errorf("%w: need at least 1 starting die, got %d", game.ErrInvalidConfig, c.StartingDice)
	}
	return nil
}

// Run plays every game and returns the aggregate statistics. Games run on up
// to Workers goroutines; each owns its RNG, so results only depend on Seed.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if err := s.config.Validate(); err != nil {
		return nil, err
	}
	results := make([]statistics.GameResult, s.config.Games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)
	for i := range results {
		g.Go(func() error {
			seed := randutil.GameSeed(s.config.Seed, i)
			res, err := s.PlayGame(ctx, seed)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i, seed, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, res := range results {
		stats.Add(res)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, nil
}

// PlayGame plays one complete game from seed.
func (s *Simulator) PlayGame(ctx context.Context, seed int64) (statistics.GameResult, error) {
	if err := s.config.validateTable(); err != nil {
		return statistics.GameResult{}, err
	}
	rng := randutil.New(seed)
	logger := s.config.Logger

	strategies := s.seatStrategies()
	agents := make([]game.Agent, len(strategies))
	for seat, name := range strategies {
		// Bots draw from their own stream; a bot still thinking after its
		// deadline must not touch the dealer's RNG.
		agent, err := bot.New(name, randutil.Split(rng), logger)
		if err != nil {
			return statistics.GameResult{}, err
		}
		if s.config.DecisionTimeout > 0 {
			agent = bot.NewDeadlineAgent(agent, s.config.DecisionTimeout, s.config.Clock, logger)
		}
		agents[seat] = agent
	}

	g, err := game.NewGame(game.Config{
		Players:      s.config.Players,
		StartingDice: s.config.StartingDice,
		Rand:         rng,
		Logger:       logger,
	}, agents[0])
	if err != nil {
		return statistics.GameResult{}, err
	}
	for seat, agent := range agents {
		g.SetAgent(seat, agent)
	}

	winner, err := g.Run(ctx)
	if err != nil {
		return statistics.GameResult{}, err
	}

	result := statistics.GameResult{
		GameID:         g.ID(),
		Seed:           seed,
		Winner:         winner,
		WinnerStrategy: strategies[winner],
		Rounds:         g.Round(),
		Outcomes:       make(map[game.OutcomeKind]int),
	}
	for _, round := range g.History() {
		result.Outcomes[round.Kind]++
		if round.Palifico {
			result.PalificoRounds++
		}
	}
	return result, nil
}

func (s *Simulator) seatStrategies() []string {
	out := make([]string, s.config.Players)
	for i := range out {
		out[i] = s.config.Strategies[min(i, len(s.config.Strategies)-1)]
	}
	return out
}
