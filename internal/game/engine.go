package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/lox/perudo/internal/dice"
)

var (
	// ErrInvalidConfig is returned by NewGame for unusable settings.
	ErrInvalidConfig = errors.New("invalid game config")
	// ErrGameOver is returned by Advance once a winner has been declared.
	ErrGameOver = errors.New("game is over")
)

// Config holds the settings for a new game.
type Config struct {
	Players      int
	StartingDice int
	// Rand drives dice rolls, the first seat and the game ID. A random source
	// is used when nil.
	Rand   *rand.Rand
	Logger *log.Logger
}

// RoundResult is what Advance reports after each round: the losers of the
// round and, once only one player is left, the winner.
type RoundResult struct {
	Round    int
	Losers   []int
	Winner   int
	Finished bool
	Outcome  *RoundOutcome
}

// Game owns the roster, dice counts and turn position for one game of
// Perudo. It is not safe for concurrent use; run separate games for
// parallelism.
type Game struct {
	id           string
	players      []*Player
	active       []*Player
	eliminated   []int
	start        int
	palifico     bool
	totalDice    int
	round        int
	winner       int
	finished     bool
	history      []RoundOutcome
	rng          *rand.Rand
	logger       *log.Logger
	defaultAgent Agent
	agents       map[int]Agent
}

// NewGame seats cfg.Players players with cfg.StartingDice dice each and picks
// the first actor at random. defaultAgent decides for every player without an
// agent of its own.
func NewGame(cfg Config, defaultAgent Agent) (*Game, error) {
	if cfg.Players < 2 {
		return nil, fmt.Errorf("%w: need at least 2 players, got %d", ErrInvalidConfig, cfg.Players)
	}
	if cfg.StartingDice < 1 {
		return nil, fmt.Errorf("%w: need at least 1 starting die, got %d", ErrInvalidConfig, cfg.StartingDice)
	}
	if defaultAgent == nil {
		return nil, fmt.Errorf("%w: default agent is required", ErrInvalidConfig)
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	id, err := uuid.NewRandomFromReader(rngReader{rng})
	if err != nil {
		return nil, fmt.Errorf("generating game id: %w", err)
	}

	g := &Game{
		id:           id.String(),
		players:      make([]*Player, cfg.Players),
		totalDice:    cfg.Players * cfg.StartingDice,
		winner:       -1,
		rng:          rng,
		defaultAgent: defaultAgent,
		agents:       make(map[int]Agent),
	}
	for i := range g.players {
		g.players[i] = NewPlayer(i, cfg.StartingDice)
	}
	g.active = append([]*Player(nil), g.players...)
	g.start = rng.IntN(len(g.active))
	g.logger = logger.WithPrefix("game").With("game", g.id)

	g.logger.Debug("Created game",
		"players", cfg.Players,
		"dice", cfg.StartingDice,
		"firstPlayer", g.active[g.start].ID)

	return g, nil
}

// SetAgent assigns the agent that decides for player id.
func (g *Game) SetAgent(id int, agent Agent) {
	g.agents[id] = agent
}

func (g *Game) agentFor(id int) Agent {
	if a, ok := g.agents[id]; ok {
		return a
	}
	return g.defaultAgent
}

// Advance deals fresh hands, plays one round and applies its result. Each
// loser gives up exactly one die. If ctx ends before the round resolves, no
// dice are lost and the same round is replayed with new hands on the next
// call.
func (g *Game) Advance(ctx context.Context) (RoundResult, error) {
	if g.finished {
		return RoundResult{Round: g.round, Winner: g.winner, Finished: true}, ErrGameOver
	}
	if err := ctx.Err(); err != nil {
		return RoundResult{}, err
	}

	hands := make([]dice.Hand, len(g.active))
	for i, p := range g.active {
		p.Hand = dice.Roll(g.rng, p.DiceLeft)
		hands[i] = p.Hand
	}

	r := &round{
		number:    g.round + 1,
		seats:     g.active,
		start:     g.start,
		palifico:  g.palifico,
		totalDice: g.totalDice,
		tally:     dice.NewTally(hands...),
		agentFor:  g.agentFor,
		logger:    g.logger,
	}
	outcome, err := r.play(ctx)
	if err != nil {
		return RoundResult{}, err
	}
	return g.apply(outcome), nil
}

// apply records a resolved round: one die per distinct loser, eliminations,
// the next starter and palifico, and the winner once one player is left.
func (g *Game) apply(outcome *RoundOutcome) RoundResult {
	g.round = outcome.Round

	for _, rec := range outcome.Actions {
		g.players[rec.PlayerID].LastAction = rec.Action
	}

	losers := dedupe(outcome.Losers)
	outcome.Losers = losers
	nextPalifico := false
	for _, id := range losers {
		p := g.players[id]
		if !p.IsActive() {
			continue
		}
		g.totalDice--
		if p.loseDie() {
			g.eliminated = append(g.eliminated, id)
			g.logger.Info("Player eliminated", "player", id, "round", g.round)
		} else if p.DiceLeft == 1 {
			nextPalifico = true
		}
	}

	g.active = g.active[:0:0]
	for _, p := range g.players {
		if p.IsActive() {
			g.active = append(g.active, p)
		}
	}
	g.start = g.seatFrom(outcome.Resolver)
	g.palifico = nextPalifico && len(g.active) > 1
	g.history = append(g.history, *outcome)

	g.logger.Info("Round resolved",
		"round", g.round,
		"outcome", outcome.Kind,
		"bet", outcome.Bet,
		"actual", outcome.Actual,
		"losers", losers,
		"diceInPlay", g.totalDice)

	result := RoundResult{Round: g.round, Losers: losers, Winner: -1, Outcome: outcome}
	if len(g.active) == 1 {
		g.finished = true
		g.winner = g.active[0].ID
		result.Winner = g.winner
		result.Finished = true
		g.logger.Info("Game won", "winner", g.winner, "rounds", g.round)
	}
	return result
}

// Run advances until a winner is declared and returns the winner's ID.
func (g *Game) Run(ctx context.Context) (int, error) {
	for !g.finished {
		if _, err := g.Advance(ctx); err != nil {
			return -1, err
		}
	}
	return g.winner, nil
}

// seatFrom returns the index into the active roster of the first active
// player at or after id in seating order.
func (g *Game) seatFrom(id int) int {
	n := len(g.players)
	for step := 0; step < n; step++ {
		p := g.players[(id+step)%n]
		if !p.IsActive() {
			continue
		}
		for i, a := range g.active {
			if a.ID == p.ID {
				return i
			}
		}
	}
	return 0
}

// ID returns the game's unique identifier.
func (g *Game) ID() string { return g.id }

// Round returns the number of rounds resolved so far.
func (g *Game) Round() int { return g.round }

// TotalDice returns the number of dice still in play.
func (g *Game) TotalDice() int { return g.totalDice }

// Palifico reports whether the next round is played under palifico rules.
func (g *Game) Palifico() bool { return g.palifico }

// Finished reports whether a winner has been declared.
func (g *Game) Finished() bool { return g.finished }

// Winner returns the winning player's ID, or false while the game is running.
func (g *Game) Winner() (int, bool) {
	return g.winner, g.finished
}

// Active returns the IDs of players still in the game, in seating order.
func (g *Game) Active() []int {
	ids := make([]int, len(g.active))
	for i, p := range g.active {
		ids[i] = p.ID
	}
	return ids
}

// NextPlayer returns the ID of the player who opens the next round.
func (g *Game) NextPlayer() int {
	return g.active[g.start].ID
}

// Eliminated returns the IDs of knocked out players in elimination order.
func (g *Game) Eliminated() []int {
	return append([]int(nil), g.eliminated...)
}

// Player returns a copy of player id's current state.
func (g *Game) Player(id int) (Player, bool) {
	if id < 0 || id >= len(g.players) {
		return Player{}, false
	}
	p := *g.players[id]
	p.Hand = p.Hand.Clone()
	return p, true
}

// LastLosers returns the losers of the most recent round.
func (g *Game) LastLosers() []int {
	if len(g.history) == 0 {
		return nil
	}
	return append([]int(nil), g.history[len(g.history)-1].Losers...)
}

// History returns every resolved round in order.
func (g *Game) History() []RoundOutcome {
	return append([]RoundOutcome(nil), g.history...)
}

func dedupe(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// rngReader feeds the game's RNG to uuid so IDs replay with the seed.
type rngReader struct {
	rng *rand.Rand
}

func (r rngReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.rng.Uint32())
	}
	return len(p), nil
}
