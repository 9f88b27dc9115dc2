package game

import (
	"context"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/lox/perudo/internal/dice"
	"github.com/lox/perudo/internal/randutil"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// scriptAgent replays queued actions per player and records who was asked.
type scriptAgent struct {
	mu      sync.Mutex
	actions map[int][]Action
	asked   []int
	views   []View
}

func newScriptAgent(actions map[int][]Action) *scriptAgent {
	return &scriptAgent{actions: actions}
}

func (s *scriptAgent) Decide(_ context.Context, view View) Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.asked = append(s.asked, view.PlayerID)
	s.views = append(s.views, view)
	queue := s.actions[view.PlayerID]
	if len(queue) == 0 {
		return CallAction{}
	}
	s.actions[view.PlayerID] = queue[1:]
	return queue[0]
}

// testRound builds a round over players holding the given hands, seated in
// order with IDs 0..n-1.
func testRound(agent Agent, start int, palifico bool, hands ...dice.Hand) *round {
	seats := make([]*Player, len(hands))
	total := 0
	for i, h := range hands {
		seats[i] = &Player{ID: i, Hand: h, DiceLeft: len(h)}
		total += len(h)
	}
	return &round{
		number:    1,
		seats:     seats,
		start:     start,
		palifico:  palifico,
		totalDice: total,
		tally:     dice.NewTally(hands...),
		agentFor:  func(int) Agent { return agent },
		logger:    testLogger(),
	}
}

// oracle sees every hand at the table. It opens with the truest bet it can
// make and then hands the round to respond.
func oracle(g *Game, respond func(view View, truth int) Action) Agent {
	return AgentFunc(func(_ context.Context, view View) Action {
		var hands []dice.Hand
		for _, id := range g.Active() {
			p, _ := g.Player(id)
			hands = append(hands, p.Hand)
		}
		tally := dice.NewTally(hands...)
		if view.StandingBet == nil {
			best := dice.Face(2)
			for f := dice.MinFace; f <= dice.MaxFace; f++ {
				if tally.Count(f, !view.Palifico) > tally.Count(best, !view.Palifico) {
					best = f
				}
			}
			return BetAction{Count: tally.Count(best, !view.Palifico), Face: best}
		}
		return respond(view, tally.Count(view.StandingBet.Face, !view.Palifico))
	})
}

// randomAgent mixes legal raises, calls and exacts from a seeded source.
func randomAgent(seed int64) Agent {
	rng := randutil.New(seed)
	var mu sync.Mutex
	return AgentFunc(func(_ context.Context, view View) Action {
		mu.Lock()
		defer mu.Unlock()
		if view.StandingBet != nil {
			switch rng.IntN(4) {
			case 0:
				return CallAction{}
			case 1:
				return ExactAction{}
			}
		}
		face := dice.Face(rng.IntN(6) + 1)
		if view.Palifico && view.StandingBet != nil {
			face = view.StandingBet.Face
		}
		if b, ok := MinimumRaise(view.StandingBet, face, view.Palifico, view.TotalDice); ok {
			return BetAction{Count: b.Count, Face: b.Face}
		}
		return CallAction{}
	})
}

// callAgent opens with a single die of its first face and calls anything.
func callAgent() Agent {
	return AgentFunc(func(_ context.Context, view View) Action {
		if view.StandingBet == nil {
			return BetAction{Count: 1, Face: view.Hand[0]}
		}
		return CallAction{}
	})
}
