package game

import "github.com/lox/perudo/internal/dice"

// Player is one seat at the table. Players keep their ID for the whole game
// and stay in the roster after elimination for history.
type Player struct {
	ID         int
	Hand       dice.Hand
	DiceLeft   int
	LastAction Action
}

// NewPlayer creates a player holding n dice and no hand yet.
func NewPlayer(id, n int) *Player {
	return &Player{ID: id, DiceLeft: n}
}

// IsActive returns true while the player still has dice.
func (p *Player) IsActive() bool {
	return p.DiceLeft > 0
}

// loseDie removes one die and reports whether the player is now out.
func (p *Player) loseDie() bool {
	if p.DiceLeft > 0 {
		p.DiceLeft--
	}
	if p.DiceLeft == 0 {
		p.Hand = nil
		return true
	}
	return false
}
