package bot

import (
	"context"
	"math"

	"github.com/charmbracelet/log"
	"github.com/lox/perudo/internal/dice"
	"github.com/lox/perudo/internal/game"
	"gonum.org/v1/gonum/stat/distuv"
)

// ProbBot treats unseen dice as independent rolls and scores bets by the
// binomial probability that they hold. It calls bets that are unlikely,
// claims exact on its last die when the count matches its estimate, and
// otherwise makes the most likely minimum raise.
type ProbBot struct {
	// CallBelow is the probability under which a standing bet is called.
	CallBelow float64
	logger    *log.Logger
}

// NewProbBot creates a new ProbBot instance
func NewProbBot(logger *log.Logger) *ProbBot {
	return &ProbBot{CallBelow: 0.35, logger: logger}
}

func (p *ProbBot) Decide(_ context.Context, view game.View) game.Action {
	wilds := !view.Palifico
	standing := view.StandingBet

	if standing != nil {
		odds := Likelihood(view.Hand, view.TotalDice, *standing, wilds)
		est := Expected(view.Hand, view.TotalDice, standing.Face, wilds)
		switch {
		case odds < p.CallBelow:
			p.logger.Debug("prob-bot calling", "player", view.PlayerID, "bet", standing, "likelihood", odds)
			return game.CallAction{}
		case standing.Count == int(math.Round(est)) && view.DiceLeft == 1:
			p.logger.Debug("prob-bot exact", "player", view.PlayerID, "bet", standing, "expected", est)
			return game.ExactAction{}
		}
	}

	faces := []dice.Face{1, 2, 3, 4, 5, 6}
	if view.Palifico && standing != nil {
		faces = []dice.Face{standing.Face}
	}

	var best game.Bet
	bestOdds := -1.0
	for _, f := range faces {
		b, ok := game.MinimumRaise(standing, f, view.Palifico, view.TotalDice)
		if !ok {
			continue
		}
		if standing == nil {
			// Open at the estimate rather than at one.
			b.Count = max(1, min(view.TotalDice, int(math.Floor(Expected(view.Hand, view.TotalDice, f, wilds)))))
		}
		if odds := Likelihood(view.Hand, view.TotalDice, b, wilds); odds > bestOdds {
			best, bestOdds = b, odds
		}
	}

	if bestOdds < 0 || (standing != nil && bestOdds < p.CallBelow) {
		if standing == nil {
			return game.BetAction{Count: 1, Face: strongestFace(view.Hand, wilds)}
		}
		return game.CallAction{}
	}
	return game.BetAction{Count: best.Count, Face: best.Face}
}

// faceChance is the probability that one unseen die satisfies a claim on face.
func faceChance(face dice.Face, wilds bool) float64 {
	if wilds && face != dice.Wild {
		return 2.0 / 6
	}
	return 1.0 / 6
}

// Expected returns the expected number of dice showing face across the table
// given the known hand and totalDice dice in play.
func Expected(hand dice.Hand, totalDice int, face dice.Face, wilds bool) float64 {
	known := dice.NewTally(hand).Count(face, wilds)
	unseen := totalDice - len(hand)
	return float64(known) + float64(unseen)*faceChance(face, wilds)
}

// Likelihood returns the probability that bet holds given the known hand,
// with every unseen die rolled independently.
func Likelihood(hand dice.Hand, totalDice int, bet game.Bet, wilds bool) float64 {
	need := bet.Count - dice.NewTally(hand).Count(bet.Face, wilds)
	if need <= 0 {
		return 1
	}
	unseen := totalDice - len(hand)
	if need > unseen {
		return 0
	}
	dist := distuv.Binomial{N: float64(unseen), P: faceChance(bet.Face, wilds)}
	return dist.Survival(float64(need - 1))
}
