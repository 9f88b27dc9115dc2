// Package dice holds the six-sided dice primitives shared by the Perudo
// engine and its bots: faces, hands and per-face tallies.
package dice

import (
	"fmt"
	rand "math/rand/v2"
	"strings"
)

// Face is the value showing on a die.
type Face int

const (
	// Wild is the ace face. It counts toward any other face's tally unless
	// wilds are disabled for the round.
	Wild Face = 1

	MinFace Face = 1
	MaxFace Face = 6
)

// Valid reports whether f is a real die face.
func (f Face) Valid() bool {
	return f >= MinFace && f <= MaxFace
}

func (f Face) String() string {
	if f == Wild {
		return "aces"
	}
	return fmt.Sprintf("%ds", int(f))
}

// Hand is the ordered set of dice a player is holding this round.
type Hand []Face

// Roll returns a fresh hand of n dice.
func Roll(rng *rand.Rand, n int) Hand {
	if n <= 0 {
		return Hand{}
	}
	h := make(Hand, n)
	for i := range h {
		h[i] = Face(rng.IntN(int(MaxFace)) + 1)
	}
	return h
}

// Clone returns a copy that can be handed to an agent without exposing the
// engine's storage.
func (h Hand) Clone() Hand {
	out := make(Hand, len(h))
	copy(out, h)
	return out
}

// Count returns how many dice in the hand show face.
func (h Hand) Count(face Face) int {
	n := 0
	for _, f := range h {
		if f == face {
			n++
		}
	}
	return n
}

func (h Hand) String() string {
	parts := make([]string, len(h))
	for i, f := range h {
		parts[i] = fmt.Sprintf("%d", int(f))
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Tally maps each face to the number of dice showing it across all hands.
// Index 0 is unused.
type Tally [MaxFace + 1]int

// NewTally counts every die in hands.
func NewTally(hands ...Hand) Tally {
	var t Tally
	for _, h := range hands {
		for _, f := range h {
			if f.Valid() {
				t[f]++
			}
		}
	}
	return t
}

// Count returns the number of dice that satisfy a claim on face. Wild dice are
// added when wilds is true, except when face is itself the wild face.
func (t Tally) Count(face Face, wilds bool) int {
	if !face.Valid() {
		return 0
	}
	n := t[face]
	if wilds && face != Wild {
		n += t[Wild]
	}
	return n
}

// Total returns the number of dice tallied.
func (t Tally) Total() int {
	n := 0
	for f := MinFace; f <= MaxFace; f++ {
		n += t[f]
	}
	return n
}
