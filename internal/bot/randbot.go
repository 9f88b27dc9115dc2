package bot

import (
	"context"
	rand "math/rand/v2"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/lox/perudo/internal/dice"
	"github.com/lox/perudo/internal/game"
)

// RandBot picks uniformly between raising, calling and claiming exact, and
// draws its raises at random. Its raises are not checked, so it regularly
// pays the illegal bet penalty.
type RandBot struct {
	mu     sync.Mutex
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: logger}
}

func (r *RandBot) Decide(_ context.Context, view game.View) game.Action {
	r.mu.Lock()
	defer r.mu.Unlock()

	standing := view.StandingBet
	if standing == nil {
		return game.BetAction{
			Count: r.between(1, view.TotalDice),
			Face:  dice.Face(r.between(2, int(dice.MaxFace))),
		}
	}

	var action game.Action
	switch r.rng.IntN(3) {
	case 0:
		if view.Palifico {
			action = game.BetAction{
				Count: r.between(min(standing.Count+1, view.TotalDice), view.TotalDice),
				Face:  standing.Face,
			}
		} else {
			action = game.BetAction{
				Count: r.between(standing.Count, view.TotalDice),
				Face:  dice.Face(r.between(int(standing.Face), int(dice.MaxFace))),
			}
		}
	case 1:
		action = game.CallAction{}
	default:
		action = game.ExactAction{}
	}

	r.logger.Debug("rand-bot random action", "player", view.PlayerID, "action", action)
	return action
}

// between returns a uniform int in [lo, hi], or lo when the range is empty.
func (r *RandBot) between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.rng.IntN(hi-lo+1)
}
