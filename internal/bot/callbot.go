package bot

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/lox/perudo/internal/dice"
	"github.com/lox/perudo/internal/game"
)

// CallBot opens with a single die of its strongest face and calls every bet
// put in front of it.
type CallBot struct {
	logger *log.Logger
}

// NewCallBot creates a new CallBot instance
func NewCallBot(logger *log.Logger) *CallBot {
	return &CallBot{logger: logger}
}

func (c *CallBot) Decide(_ context.Context, view game.View) game.Action {
	if view.StandingBet != nil {
		c.logger.Debug("call-bot calling", "player", view.PlayerID, "bet", view.StandingBet)
		return game.CallAction{}
	}
	face := strongestFace(view.Hand, !view.Palifico)
	return game.BetAction{Count: 1, Face: face}
}

// strongestFace returns the non-ace face the hand backs best, counting aces
// when wilds apply. Ties go to the higher face.
func strongestFace(hand dice.Hand, wilds bool) dice.Face {
	tally := dice.NewTally(hand)
	best := dice.Face(2)
	for f := dice.Face(2); f <= dice.MaxFace; f++ {
		if tally.Count(f, wilds) >= tally.Count(best, wilds) {
			best = f
		}
	}
	return best
}
