package game

import (
	"errors"
	"fmt"

	"github.com/lox/perudo/internal/dice"
)

// Reasons a proposed bet is rejected. CheckBet wraps one of these.
var (
	ErrFaceOutOfRange  = errors.New("face out of range")
	ErrCountOutOfRange = errors.New("count out of range")
	ErrFaceLocked      = errors.New("face is locked during palifico")
	ErrBetTooLow       = errors.New("bet does not raise the standing bet")
)

// CheckBet reports why candidate cannot follow standing, or nil when it can.
// standing is nil for the first bet of a round. totalDice is the number of dice
// still in play and bounds the count.
func CheckBet(standing *Bet, candidate Bet, palifico bool, totalDice int) error {
	if !candidate.Face.Valid() {
		return fmt.Errorf("%w: %d", ErrFaceOutOfRange, candidate.Face)
	}
	if candidate.Count < 1 || candidate.Count > totalDice {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrCountOutOfRange, candidate.Count, totalDice)
	}
	if standing == nil {
		return nil
	}
	if palifico && candidate.Face != standing.Face {
		return fmt.Errorf("%w: must stay on %s", ErrFaceLocked, standing.Face)
	}
	if !raises(*standing, candidate) {
		return fmt.Errorf("%w: %s after %s", ErrBetTooLow, candidate, standing)
	}
	return nil
}

// IsLegal reports whether candidate may follow standing.
func IsLegal(standing *Bet, candidate Bet, palifico bool, totalDice int) bool {
	return CheckBet(standing, candidate, palifico, totalDice) == nil
}

// raises applies the ordering between bets. Moving off aces needs at least
// double the count; moving onto aces needs more than half.
func raises(standing, candidate Bet) bool {
	fromWild := standing.Face == dice.Wild
	toWild := candidate.Face == dice.Wild

	switch {
	case fromWild && toWild:
		return candidate.Count > standing.Count
	case fromWild:
		return candidate.Count >= 2*standing.Count
	case toWild:
		return 2*candidate.Count > standing.Count
	default:
		if candidate.Count != standing.Count {
			return candidate.Count > standing.Count
		}
		return candidate.Face > standing.Face
	}
}

// MinimumRaise returns the cheapest legal bet on face following standing, or
// false if none fits within totalDice. Bots use it to pick a raise.
func MinimumRaise(standing *Bet, face dice.Face, palifico bool, totalDice int) (Bet, bool) {
	for count := 1; count <= totalDice; count++ {
		b := Bet{Count: count, Face: face}
		if IsLegal(standing, b, palifico, totalDice) {
			return b, true
		}
	}
	return Bet{}, false
}
