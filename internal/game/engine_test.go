package game

import (
	"context"
	"testing"

	"github.com/lox/perudo/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGame(t *testing.T, players, dice int, seed int64, agent Agent) *Game {
	t.Helper()
	g, err := NewGame(Config{
		Players:      players,
		StartingDice: dice,
		Rand:         randutil.New(seed),
		Logger:       testLogger(),
	}, agent)
	require.NoError(t, err)
	return g
}

func sumDice(g *Game) int {
	n := 0
	for _, id := range g.Active() {
		p, _ := g.Player(id)
		n += p.DiceLeft
	}
	return n
}

func TestNewGameRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		agent Agent
	}{
		{"one player", Config{Players: 1, StartingDice: 5}, callAgent()},
		{"no dice", Config{Players: 3, StartingDice: 0}, callAgent()},
		{"no agent", Config{Players: 3, StartingDice: 5}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGame(tt.cfg, tt.agent)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestNewGameSeatsPlayers(t *testing.T) {
	g := newTestGame(t, 4, 5, 42, callAgent())

	assert.Equal(t, []int{0, 1, 2, 3}, g.Active())
	assert.Empty(t, g.Eliminated())
	assert.Equal(t, 20, g.TotalDice())
	assert.Contains(t, g.Active(), g.NextPlayer())
	assert.False(t, g.Palifico())
	assert.NotEmpty(t, g.ID())

	again := newTestGame(t, 4, 5, 42, callAgent())
	assert.Equal(t, g.ID(), again.ID())
	assert.Equal(t, g.NextPlayer(), again.NextPlayer())

	_, ok := g.Winner()
	assert.False(t, ok)
}

func TestTwoPlayersOneDieEndAfterOneRound(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		g := newTestGame(t, 2, 1, seed, randomAgent(seed))

		res, err := g.Advance(context.Background())
		require.NoError(t, err)
		require.True(t, res.Finished, "seed %d", seed)
		require.Len(t, res.Losers, 1)
		assert.NotEqual(t, res.Losers[0], res.Winner)
		assert.Equal(t, []int{res.Winner}, g.Active())

		winner, ok := g.Winner()
		assert.True(t, ok)
		assert.Equal(t, res.Winner, winner)
	}
}

func TestCallerWhoLosesStartsNextRound(t *testing.T) {
	var g *Game
	g = newTestGame(t, 3, 2, 7, AgentFunc(func(ctx context.Context, v View) Action {
		return oracle(g, func(View, int) Action { return CallAction{} }).Decide(ctx, v)
	}))

	res, err := g.Advance(context.Background())
	require.NoError(t, err)
	require.Equal(t, CallChallengerLost, res.Outcome.Kind)

	caller := res.Outcome.Resolver
	assert.Equal(t, []int{caller}, res.Losers)
	assert.Equal(t, caller, g.NextPlayer())
	assert.True(t, g.Palifico(), "caller dropped to one die")

	p, _ := g.Player(caller)
	assert.Equal(t, 1, p.DiceLeft)
	assert.Equal(t, CallAction{}, p.LastAction)
}

func TestExactHitCostsOthersOneDieEach(t *testing.T) {
	var g *Game
	g = newTestGame(t, 3, 3, 11, AgentFunc(func(ctx context.Context, v View) Action {
		return oracle(g, func(View, int) Action { return ExactAction{} }).Decide(ctx, v)
	}))

	res, err := g.Advance(context.Background())
	require.NoError(t, err)
	require.Equal(t, ExactHit, res.Outcome.Kind)

	caller := res.Outcome.Resolver
	assert.Len(t, res.Losers, 2)
	assert.NotContains(t, res.Losers, caller)
	for id := range 3 {
		p, _ := g.Player(id)
		if id == caller {
			assert.Equal(t, 3, p.DiceLeft)
		} else {
			assert.Equal(t, 2, p.DiceLeft)
		}
	}
	assert.Equal(t, 7, g.TotalDice())
}

func TestEliminatedPlayerNeverActsAgain(t *testing.T) {
	var g *Game
	asked := map[int][]int{}
	g = newTestGame(t, 3, 1, 3, AgentFunc(func(ctx context.Context, v View) Action {
		asked[v.Round] = append(asked[v.Round], v.PlayerID)
		return oracle(g, func(View, int) Action { return CallAction{} }).Decide(ctx, v)
	}))

	res, err := g.Advance(context.Background())
	require.NoError(t, err)
	out := res.Losers[0]
	assert.Equal(t, []int{out}, g.Eliminated())
	assert.NotContains(t, g.Active(), out)
	assert.Equal(t, 2, g.TotalDice())

	// The eliminated caller's turn passes to the next seat still playing.
	next := (out + 1) % 3
	assert.Equal(t, next, g.NextPlayer())

	winner, err := g.Run(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, out, winner)
	for round, ids := range asked {
		if round > 1 {
			assert.NotContains(t, ids, out, "round %d", round)
		}
	}
}

func TestDiceAccountingOverWholeGame(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		g := newTestGame(t, 5, 5, seed, randomAgent(seed))
		for !g.Finished() {
			before := map[int]int{}
			for _, id := range g.Active() {
				p, _ := g.Player(id)
				before[id] = p.DiceLeft
			}
			total := g.TotalDice()

			res, err := g.Advance(context.Background())
			require.NoError(t, err)
			require.NotEmpty(t, res.Losers)

			assert.Equal(t, total-len(res.Losers), g.TotalDice())
			assert.Equal(t, sumDice(g), g.TotalDice())
			for _, id := range res.Losers {
				p, _ := g.Player(id)
				assert.Equal(t, before[id]-1, p.DiceLeft)
			}
		}
		assert.Len(t, g.Active(), 1)
		assert.Len(t, g.Eliminated(), 4)
	}
}

func TestPalificoRoundIsVisibleToAgents(t *testing.T) {
	var g *Game
	var views []View
	g = newTestGame(t, 2, 2, 5, AgentFunc(func(ctx context.Context, v View) Action {
		views = append(views, v)
		return oracle(g, func(View, int) Action { return CallAction{} }).Decide(ctx, v)
	}))

	_, err := g.Advance(context.Background())
	require.NoError(t, err)
	require.True(t, g.Palifico())

	views = nil
	res, err := g.Advance(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Outcome.Palifico)
	for _, v := range views {
		assert.True(t, v.Palifico)
	}
}

func TestAdvanceAfterGameOver(t *testing.T) {
	g := newTestGame(t, 2, 1, 1, randomAgent(1))
	winner, err := g.Run(context.Background())
	require.NoError(t, err)

	res, err := g.Advance(context.Background())
	assert.ErrorIs(t, err, ErrGameOver)
	assert.True(t, res.Finished)
	assert.Equal(t, winner, res.Winner)
}

func TestCancelledAdvanceKeepsDice(t *testing.T) {
	g := newTestGame(t, 3, 2, 1, callAgent())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Advance(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, g.Round())
	assert.Equal(t, 6, g.TotalDice())

	ctx, cancel = context.WithCancel(context.Background())
	g.SetAgent(g.NextPlayer(), AgentFunc(func(context.Context, View) Action {
		cancel()
		return CallAction{}
	}))
	_, err = g.Advance(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 6, g.TotalDice())
	assert.Empty(t, g.History())
}

func TestSameSeedReplaysGame(t *testing.T) {
	a := newTestGame(t, 4, 3, 99, randomAgent(99))
	b := newTestGame(t, 4, 3, 99, randomAgent(99))

	wa, err := a.Run(context.Background())
	require.NoError(t, err)
	wb, err := b.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, wa, wb)
	ha, hb := a.History(), b.History()
	require.Equal(t, len(ha), len(hb))
	for i := range ha {
		assert.Equal(t, ha[i].Kind, hb[i].Kind)
		assert.Equal(t, ha[i].Losers, hb[i].Losers)
		assert.Equal(t, ha[i].Hands, hb[i].Hands)
	}
}

func TestSetAgentOverridesDefault(t *testing.T) {
	g := newTestGame(t, 2, 2, 8, callAgent())
	first := g.NextPlayer()
	g.SetAgent(first, AgentFunc(func(context.Context, View) Action {
		return ForfeitAction{Reason: "test"}
	}))

	res, err := g.Advance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Forfeit, res.Outcome.Kind)
	assert.Equal(t, []int{first}, res.Losers)
	assert.Equal(t, []int{first}, g.LastLosers())
}

func TestApplyCostsOneDiePerLoser(t *testing.T) {
	g := newTestGame(t, 3, 3, 8, callAgent())

	res := g.apply(&RoundOutcome{
		Round:    1,
		Kind:     ExactHit,
		Resolver: 0,
		Losers:   []int{1, 2, 1, 1, 2},
		Actual:   2,
	})

	assert.Equal(t, []int{1, 2}, res.Losers)
	assert.Equal(t, 7, g.TotalDice())
	assert.Equal(t, g.TotalDice(), sumDice(g))
	for id, want := range map[int]int{0: 3, 1: 2, 2: 2} {
		p, _ := g.Player(id)
		assert.Equal(t, want, p.DiceLeft, "player %d", id)
	}
	assert.Equal(t, []int{1, 2}, g.History()[0].Losers)
}

func TestApplyEliminatesRepeatedLoserOnce(t *testing.T) {
	g := newTestGame(t, 3, 1, 8, callAgent())

	res := g.apply(&RoundOutcome{
		Round:    1,
		Kind:     CallBettorLost,
		Resolver: 0,
		Losers:   []int{2, 2},
		Actual:   0,
	})

	assert.Equal(t, []int{2}, res.Losers)
	assert.Equal(t, []int{2}, g.Eliminated())
	assert.Equal(t, []int{0, 1}, g.Active())
	assert.Equal(t, 2, g.TotalDice())
	assert.False(t, res.Finished)
	assert.Equal(t, 0, g.NextPlayer())
}
