package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/perudo/internal/dice"
	"github.com/lox/perudo/internal/game"
)

type ValidateBetCmd struct {
	Candidate string `required:"" help:"Proposed bet as COUNTxFACE, e.g. 6x3"`
	Standing  string `help:"Standing bet as COUNTxFACE (none if empty)"`
	Palifico  bool   `help:"Apply palifico rules"`
	Total     int    `default:"25" help:"Dice in play"`
}

func (c *ValidateBetCmd) Run(*Globals) error {
	candidate, err := parseBet(c.Candidate)
	if err != nil {
		return err
	}
	var standing *game.Bet
	if c.Standing != "" {
		b, err := parseBet(c.Standing)
		if err != nil {
			return err
		}
		standing = &b
	}

	if err := game.CheckBet(standing, candidate, c.Palifico, c.Total); err != nil {
		fmt.Printf("illegal: %v\n", err)
		return nil
	}
	fmt.Println("legal")
	return nil
}

// parseBet reads "COUNTxFACE". Range checks are left to the validator.
func parseBet(s string) (game.Bet, error) {
	count, face, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return game.Bet{}, fmt.Errorf("bet %q: want COUNTxFACE", s)
	}
	n, err := strconv.Atoi(strings.TrimSpace(count))
	if err != nil {
		return game.Bet{}, fmt.Errorf("bet %q: bad count: %w", s, err)
	}
	f, err := strconv.Atoi(strings.TrimSpace(face))
	if err != nil {
		return game.Bet{}, fmt.Errorf("bet %q: bad face: %w", s, err)
	}
	return game.Bet{Count: n, Face: dice.Face(f)}, nil
}
