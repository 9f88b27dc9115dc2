package simulator

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/perudo/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Games:        40,
		Workers:      4,
		Players:      4,
		StartingDice: 3,
		Strategies:   []string{"prob", "call", "rand"},
		Seed:         12345,
		Logger:       log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel}),
	}
}

func TestRun(t *testing.T) {
	stats, err := New(testConfig()).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 40, stats.Games)
	require.NoError(t, stats.Validate())
	// Each game removes 4*3-1 dice, at least one per round.
	assert.GreaterOrEqual(t, stats.Rounds, 40)
	assert.LessOrEqual(t, stats.Rounds, 40*11)

	total := 0
	for _, n := range stats.WinsByStrategy {
		total += n
	}
	assert.Equal(t, 40, total)
}

func TestRunIsDeterministicAcrossWorkerCounts(t *testing.T) {
	cfg := testConfig()
	cfg.Workers = 1
	serial, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	cfg.Workers = 8
	parallel, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, serial.Values, parallel.Values)
	assert.Equal(t, serial.WinsBySeat, parallel.WinsBySeat)
	assert.Equal(t, serial.Outcomes, parallel.Outcomes)
}

func TestPlayGame(t *testing.T) {
	sim := New(testConfig())

	a, err := sim.PlayGame(context.Background(), 99)
	require.NoError(t, err)
	b, err := sim.PlayGame(context.Background(), 99)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEmpty(t, a.GameID)
	assert.Equal(t, []string{"prob", "call", "rand", "rand"}[a.Winner], a.WinnerStrategy)

	rounds := 0
	for _, n := range a.Outcomes {
		rounds += n
	}
	assert.Equal(t, a.Rounds, rounds)
}

func TestUnknownStrategyFails(t *testing.T) {
	cfg := testConfig()
	cfg.Strategies = []string{"psychic"}

	_, err := New(cfg).Run(context.Background())
	assert.ErrorContains(t, err, "unknown strategy")
}

func TestInvalidTableFails(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"one player", func(c *Config) { c.Players = 1 }},
		{"negative players", func(c *Config) { c.Players = -1 }},
		{"no dice", func(c *Config) { c.StartingDice = 0 }},
		{"negative games", func(c *Config) { c.Games = -1 }},
		{"no games", func(c *Config) { c.Games = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.modify(&cfg)

			stats, err := New(cfg).Run(context.Background())
			assert.ErrorIs(t, err, game.ErrInvalidConfig)
			assert.Nil(t, stats)
		})
	}
}

func TestPlayGameRejectsNegativePlayers(t *testing.T) {
	cfg := testConfig()
	cfg.Players = -1

	_, err := New(cfg).PlayGame(context.Background(), 1)
	assert.ErrorIs(t, err, game.ErrInvalidConfig)
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(testConfig()).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
