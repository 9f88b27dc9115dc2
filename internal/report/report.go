// Package report renders engine results as styled terminal text. It only
// reads game state.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lox/perudo/internal/game"
	"github.com/lox/perudo/internal/statistics"
)

// Round renders one resolved round: hands, every action and the result.
func Round(out game.RoundOutcome) string {
	var b strings.Builder

	title := fmt.Sprintf(" Round %d ", out.Round)
	b.WriteString(HeaderStyle.Render(title))
	if out.Palifico {
		b.WriteString(" " + PalificoStyle.Render("palifico"))
	}
	b.WriteString("\n")

	ids := make([]int, 0, len(out.Hands))
	for id := range out.Hands {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		b.WriteString(InfoStyle.Render(fmt.Sprintf("  P%d %s", id, out.Hands[id])))
		b.WriteString("\n")
	}

	for _, rec := range out.Actions {
		action := "no action"
		if rec.Action != nil {
			action = rec.Action.String()
		}
		b.WriteString(ActionStyle.Render(fmt.Sprintf("  P%d %s", rec.PlayerID, action)))
		b.WriteString("\n")
	}

	b.WriteString("  " + resolution(out) + "\n")
	return b.String()
}

func resolution(out game.RoundOutcome) string {
	var detail string
	if out.Bet != nil && out.Actual >= 0 {
		detail = fmt.Sprintf("%d showing against %s, ", out.Actual, out.Bet)
	}
	losers := make([]string, len(out.Losers))
	for i, id := range out.Losers {
		losers[i] = fmt.Sprintf("P%d", id)
	}
	return fmt.Sprintf("%s: %s%s",
		out.Kind,
		detail,
		LoserStyle.Render(strings.Join(losers, ", ")+" lose a die"))
}

// Standings renders the dice left per player and the winner if decided.
func Standings(g *game.Game) string {
	var b strings.Builder
	for _, id := range g.Active() {
		p, _ := g.Player(id)
		b.WriteString(fmt.Sprintf("  P%d: %d dice\n", id, p.DiceLeft))
	}
	if out := g.Eliminated(); len(out) > 0 {
		b.WriteString(InfoStyle.Render(fmt.Sprintf("  out: %v", out)) + "\n")
	}
	if winner, ok := g.Winner(); ok {
		b.WriteString(WinnerStyle.Render(fmt.Sprintf("Winner: P%d after %d rounds", winner, g.Round())) + "\n")
	}
	return b.String()
}

// Summary renders aggregate simulation statistics. strategies labels seats.
func Summary(stats *statistics.Statistics, strategies []string) string {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render(fmt.Sprintf(" %d games ", stats.Games)) + "\n")

	lo, hi := stats.ConfidenceInterval95()
	b.WriteString(fmt.Sprintf("Rounds per game: %.2f (95%% CI %.2f..%.2f, median %.1f, p90 %.1f)\n",
		stats.Mean(), lo, hi, stats.Median(), stats.Percentile(0.9)))
	b.WriteString(fmt.Sprintf("Palifico rounds: %d of %d\n", stats.PalificoRounds, stats.Rounds))

	b.WriteString("\nWins by seat:\n")
	for seat := range strategies {
		wins := 0
		if seat < len(stats.WinsBySeat) {
			wins = stats.WinsBySeat[seat]
		}
		b.WriteString(fmt.Sprintf("  P%d %-6s %6d  %5.1f%%\n", seat, strategies[seat], wins, 100*stats.WinRate(seat)))
	}

	b.WriteString("\nRound outcomes:\n")
	kinds := make([]game.OutcomeKind, 0, len(stats.Outcomes))
	for kind := range stats.Outcomes {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	for _, kind := range kinds {
		b.WriteString(fmt.Sprintf("  %-22s %d\n", kind, stats.Outcomes[kind]))
	}
	return b.String()
}
