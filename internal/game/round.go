package game

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/lox/perudo/internal/dice"
)

// OutcomeKind describes how a round was resolved.
type OutcomeKind int

const (
	// CallBettorLost: the standing bet was false, the bettor pays.
	CallBettorLost OutcomeKind = iota
	// CallChallengerLost: the standing bet held, the caller pays.
	CallChallengerLost
	// ExactHit: the exact claim was right, everyone else pays.
	ExactHit
	// ExactMissed: the exact claim was wrong, the claimant pays.
	ExactMissed
	// IllegalBet: a bet broke the raising rules and its bettor pays.
	IllegalBet
	// NoStandingBet: call or exact with nothing to challenge.
	NoStandingBet
	// Forfeit: the actor gave up, timed out or sent an unrecognised action.
	Forfeit
)

func (k OutcomeKind) String() string {
	return [...]string{
		"call: bettor lost",
		"call: challenger lost",
		"exact: hit",
		"exact: missed",
		"illegal bet",
		"no standing bet",
		"forfeit",
	}[k]
}

// ActionRecord is one turn in a round's log.
type ActionRecord struct {
	PlayerID int
	Action   Action
}

// RoundOutcome is the resolved state of one betting round.
type RoundOutcome struct {
	Round    int
	Starter  int
	Palifico bool
	Kind     OutcomeKind
	Resolver int
	Losers   []int
	// Bet is the standing bet when the round ended, nil if none was made.
	Bet *Bet
	// Actual is the number of dice satisfying Bet. It is only counted for
	// call and exact resolutions and is -1 otherwise.
	Actual  int
	Hands   map[int]dice.Hand
	Actions []ActionRecord
}

// round drives a single betting round over the active seats. It only reads
// player state; Game applies the outcome.
type round struct {
	number    int
	seats     []*Player
	start     int
	palifico  bool
	totalDice int
	tally     dice.Tally
	agentFor  func(id int) Agent
	logger    *log.Logger
}

// play asks each seat in turn for an action until one resolves the round.
// It returns ctx.Err() if the context ends first.
func (r *round) play(ctx context.Context) (*RoundOutcome, error) {
	out := &RoundOutcome{
		Round:    r.number,
		Starter:  r.seats[r.start].ID,
		Palifico: r.palifico,
		Actual:   -1,
		Hands:    make(map[int]dice.Hand, len(r.seats)),
	}
	for _, p := range r.seats {
		out.Hands[p.ID] = p.Hand.Clone()
	}

	var standing *Bet
	for turn := r.start; ; turn++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p := r.seats[turn%len(r.seats)]
		view := View{
			PlayerID:      p.ID,
			Round:         r.number,
			StandingBet:   copyBet(standing),
			Palifico:      r.palifico,
			Hand:          p.Hand.Clone(),
			DiceLeft:      p.DiceLeft,
			TotalDice:     r.totalDice,
			ActivePlayers: len(r.seats),
		}

		var action Action
		if agent := r.agentFor(p.ID); agent != nil {
			action = agent.Decide(ctx, view)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out.Actions = append(out.Actions, ActionRecord{PlayerID: p.ID, Action: action})
		r.logger.Debug("Player action", "round", r.number, "player", p.ID, "action", action)

		switch a := action.(type) {
		case BetAction:
			bet := a.Bet(p.ID)
			if err := CheckBet(standing, bet, r.palifico, r.totalDice); err != nil {
				r.logger.Debug("Rejected bet", "player", p.ID, "error", err)
				out.Bet = standing
				return r.resolve(out, IllegalBet, p.ID, p.ID), nil
			}
			standing = &bet

		case CallAction:
			out.Bet = standing
			if standing == nil {
				return r.resolve(out, NoStandingBet, p.ID, p.ID), nil
			}
			out.Actual = r.count(*standing)
			if out.Actual >= standing.Count {
				return r.resolve(out, CallChallengerLost, p.ID, p.ID), nil
			}
			return r.resolve(out, CallBettorLost, p.ID, standing.Bettor), nil

		case ExactAction:
			out.Bet = standing
			if standing == nil {
				return r.resolve(out, NoStandingBet, p.ID, p.ID), nil
			}
			out.Actual = r.count(*standing)
			if out.Actual != standing.Count {
				return r.resolve(out, ExactMissed, p.ID, p.ID), nil
			}
			others := make([]int, 0, len(r.seats)-1)
			for _, q := range r.seats {
				if q.ID != p.ID {
					others = append(others, q.ID)
				}
			}
			return r.resolve(out, ExactHit, p.ID, others...), nil

		default:
			// Forfeits, nil and unknown variants all cost the actor the round.
			out.Bet = standing
			return r.resolve(out, Forfeit, p.ID, p.ID), nil
		}
	}
}

// count returns the dice that satisfy bet. Aces stand in for other faces
// except during palifico.
func (r *round) count(bet Bet) int {
	return r.tally.Count(bet.Face, !r.palifico)
}

func (r *round) resolve(out *RoundOutcome, kind OutcomeKind, resolver int, losers ...int) *RoundOutcome {
	out.Kind = kind
	out.Resolver = resolver
	out.Losers = losers
	return out
}

func copyBet(b *Bet) *Bet {
	if b == nil {
		return nil
	}
	c := *b
	return &c
}
