package game

import (
	"fmt"

	"github.com/lox/perudo/internal/dice"
)

// Bet is a standing claim that at least Count dice across every hand show
// Face, wilds included when they apply.
type Bet struct {
	Count  int
	Face   dice.Face
	Bettor int
}

func (b Bet) String() string {
	return fmt.Sprintf("%d x %s", b.Count, b.Face)
}

// ActionKind identifies the variant of an Action.
type ActionKind int

const (
	KindBet ActionKind = iota
	KindCall
	KindExact
	KindForfeit
)

func (k ActionKind) String() string {
	return [...]string{"bet", "call", "exact", "forfeit"}[k]
}

// Action is a player's move for one turn. The variants are BetAction,
// CallAction, ExactAction and ForfeitAction.
type Action interface {
	Kind() ActionKind
	String() string
	isAction()
}

// BetAction raises the standing bet.
type BetAction struct {
	Count int
	Face  dice.Face
}

// CallAction challenges the standing bet as false.
type CallAction struct{}

// ExactAction claims the standing bet's count is exactly right.
type ExactAction struct{}

// ForfeitAction gives up the round. Agents that miss a decision deadline
// produce it.
type ForfeitAction struct {
	Reason string
}

func (BetAction) Kind() ActionKind     { return KindBet }
func (CallAction) Kind() ActionKind    { return KindCall }
func (ExactAction) Kind() ActionKind   { return KindExact }
func (ForfeitAction) Kind() ActionKind { return KindForfeit }

func (a BetAction) String() string {
	return fmt.Sprintf("bet %d x %s", a.Count, a.Face)
}
func (CallAction) String() string  { return "call" }
func (ExactAction) String() string { return "exact" }
func (a ForfeitAction) String() string {
	if a.Reason == "" {
		return "forfeit"
	}
	return "forfeit (" + a.Reason + ")"
}

func (BetAction) isAction()     {}
func (CallAction) isAction()    {}
func (ExactAction) isAction()   {}
func (ForfeitAction) isAction() {}

// Bet returns the bet the action claims on behalf of bettor.
func (a BetAction) Bet(bettor int) Bet {
	return Bet{Count: a.Count, Face: a.Face, Bettor: bettor}
}
