package game

import (
	"context"

	"github.com/lox/perudo/internal/dice"
)

// View is the read-only slice of table state an agent sees when it is asked
// to act. Hand is a copy owned by the agent.
type View struct {
	PlayerID      int
	Round         int
	StandingBet   *Bet
	Palifico      bool
	Hand          dice.Hand
	DiceLeft      int
	TotalDice     int
	ActivePlayers int
}

// Agent represents anything that can choose actions for a player: a bot, a
// remote client or a human front end. Agents receive an immutable View and
// return an Action. The engine validates and applies it.
type Agent interface {
	Decide(ctx context.Context, view View) Action
}

// AgentFunc adapts a plain function to the Agent interface.
type AgentFunc func(ctx context.Context, view View) Action

// Decide calls f.
func (f AgentFunc) Decide(ctx context.Context, view View) Action {
	return f(ctx, view)
}
