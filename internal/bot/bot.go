// Package bot provides pluggable Perudo strategies that satisfy game.Agent.
package bot

import (
	"fmt"
	rand "math/rand/v2"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/lox/perudo/internal/game"
)

// Strategy names accepted by New.
const (
	Rand = "rand"
	Call = "call"
	Prob = "prob"
)

// Strategies returns every strategy name New understands, sorted.
func Strategies() []string {
	names := []string{Rand, Call, Prob}
	sort.Strings(names)
	return names
}

// New creates the agent for a strategy name. rng is only used by strategies
// that need randomness.
func New(strategy string, rng *rand.Rand, logger *log.Logger) (game.Agent, error) {
	switch strategy {
	case Rand:
		return NewRandBot(rng, logger.WithPrefix("rand-bot")), nil
	case Call:
		return NewCallBot(logger.WithPrefix("call-bot")), nil
	case Prob:
		return NewProbBot(logger.WithPrefix("prob-bot")), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (want one of %v)", strategy, Strategies())
	}
}
