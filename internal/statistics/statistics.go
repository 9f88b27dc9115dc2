package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/perudo/internal/game"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// GameResult represents the outcome of a single finished game
type GameResult struct {
	GameID         string
	Seed           int64 // RNG seed for this game (for replay)
	Winner         int
	WinnerStrategy string
	Rounds         int
	PalificoRounds int
	Outcomes       map[game.OutcomeKind]int // How each round was resolved
}

// Statistics tracks aggregate results over many games
type Statistics struct {
	Games  int
	Rounds int
	Values []float64 // Rounds per game for variance and percentiles

	WinsBySeat     []int
	WinsByStrategy map[string]int
	Outcomes       map[game.OutcomeKind]int
	PalificoRounds int
}

// Add incorporates a finished game into the statistics
func (s *Statistics) Add(result GameResult) {
	s.Games++
	s.Rounds += result.Rounds
	s.Values = append(s.Values, float64(result.Rounds))

	for len(s.WinsBySeat) <= result.Winner {
		s.WinsBySeat = append(s.WinsBySeat, 0)
	}
	if result.Winner >= 0 {
		s.WinsBySeat[result.Winner]++
	}

	if s.WinsByStrategy == nil {
		s.WinsByStrategy = make(map[string]int)
	}
	if result.WinnerStrategy != "" {
		s.WinsByStrategy[result.WinnerStrategy]++
	}

	if s.Outcomes == nil {
		s.Outcomes = make(map[game.OutcomeKind]int)
	}
	for kind, n := range result.Outcomes {
		s.Outcomes[kind] += n
	}
	s.PalificoRounds += result.PalificoRounds
}

// Mean returns the mean number of rounds per game
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Rounds) / float64(s.Games)
}

// Variance returns the sample variance of rounds per game
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	return stat.Variance(s.Values, nil)
}

// StdDev returns the sample standard deviation of rounds per game
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
// using the t-distribution, which matters for short runs.
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	if s.Games < 2 {
		return mean, mean
	}
	tDist := distuv.StudentsT{
		Nu:    float64(s.Games - 1),
		Mu:    0,
		Sigma: 1,
	}
	margin := tDist.Quantile(0.975) * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median game length in rounds
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the game length at the given percentile (0.0 to 1.0),
// interpolating linearly on the empirical CDF.
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)
	return stat.Quantile(min(max(p, 0), 1), stat.LinInterp, sorted, nil)
}

// WinRate returns the fraction of games won from seat
func (s *Statistics) WinRate(seat int) float64 {
	if s.Games == 0 || seat < 0 || seat >= len(s.WinsBySeat) {
		return 0
	}
	return float64(s.WinsBySeat[seat]) / float64(s.Games)
}

// Validate checks that every game has one winner and every round one outcome
func (s *Statistics) Validate() error {
	wins := 0
	for _, n := range s.WinsBySeat {
		wins += n
	}
	if wins != s.Games {
		return fmt.Errorf("win mismatch: %d wins over %d games", wins, s.Games)
	}

	outcomes := 0
	for _, n := range s.Outcomes {
		outcomes += n
	}
	if outcomes != s.Rounds {
		return fmt.Errorf("outcome mismatch: %d outcomes over %d rounds", outcomes, s.Rounds)
	}

	if s.PalificoRounds > s.Rounds {
		return fmt.Errorf("palifico rounds %d exceed total rounds %d", s.PalificoRounds, s.Rounds)
	}
	return nil
}
