package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/siamdeck/pokdeng-go/pokdeng"
)

// HandRecord represents the outcome of a single settled hand from the
// player's side of the table.
type HandRecord struct {
	Net       float64         // Net chips won/lost at a unit stake
	Seed      int64           // RNG seed for this hand (for replay)
	Outcome   pokdeng.Outcome // Win, lose or push against the dealer
	Drew      bool            // Player took a third card
	PlayerPok bool            // Player was dealt a pok
	DealerPok bool            // Dealer was dealt a pok
	Special   pokdeng.Special // Player's final hand shape
	Deng      int             // Multiplier applied to the winning side
}

const specialKinds = int(pokdeng.StraightFlush) + 1

// SpecialStats tracks results for one hand shape.
type SpecialStats struct {
	Hands  int
	SumNet float64
}

// Statistics tracks comprehensive simulation results.
type Statistics struct {
	Hands   int
	SumNet  float64
	SumNet2 float64   // Sum of squares for variance calculation
	Values  []float64 // Store all values for median/percentile calculation

	// Outcome tallies against the dealer
	Wins   int
	Losses int
	Pushes int

	// Pok frequency on both sides of the table
	PlayerPoks int
	DealerPoks int

	// Track ALL results in drew/stood buckets, not just wins
	DrewHands int
	DrewNet   float64 // Net from hands where the player drew (wins AND losses)
	StoodNet  float64 // Net from two-card hands
	AllNet    float64 // Total net for sanity check

	// Hand shape analytics, indexed by pokdeng.Special
	SpecialResults [specialKinds]SpecialStats

	// Multiplier analytics
	DengCounts map[int]int // settled hands by winning-side multiplier
	MaxWin     float64     // Largest single-hand win observed
	MaxLoss    float64     // Largest single-hand loss observed
}

// Mean returns the arithmetic mean net result per hand at a unit stake.
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumNet / float64(s.Hands)
}

// Variance returns the sample variance of all results.
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation of all results.
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean.
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean.
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	se := s.StdError()
	margin := 1.96 * se // 95% confidence
	return mean - margin, mean + margin
}

// Add incorporates a new hand record into the statistics.
func (s *Statistics) Add(record HandRecord) {
	net := record.Net
	s.Hands++
	s.SumNet += net
	s.SumNet2 += net * net
	s.Values = append(s.Values, net)

	switch record.Outcome {
	case pokdeng.Win:
		s.Wins++
	case pokdeng.Lose:
		s.Losses++
	case pokdeng.Push:
		s.Pushes++
	}

	if record.PlayerPok {
		s.PlayerPoks++
	}
	if record.DealerPok {
		s.DealerPoks++
	}

	// Track ALL results (wins and losses) in appropriate buckets
	if record.Drew {
		s.DrewHands++
		s.DrewNet += net
	} else {
		s.StoodNet += net
	}
	s.AllNet += net // Total for sanity check

	if shape := int(record.Special); shape >= 0 && shape < specialKinds {
		s.SpecialResults[shape].Hands++
		s.SpecialResults[shape].SumNet += net
	}

	if s.DengCounts == nil {
		s.DengCounts = make(map[int]int)
	}
	s.DengCounts[record.Deng]++

	if net > s.MaxWin {
		s.MaxWin = net
	}
	if net < s.MaxLoss {
		s.MaxLoss = net
	}
}

// Merge folds another statistics block into this one. Simulation workers
// accumulate locally and merge in a fixed order so runs stay reproducible.
func (s *Statistics) Merge(other *Statistics) {
	s.Hands += other.Hands
	s.SumNet += other.SumNet
	s.SumNet2 += other.SumNet2
	s.Values = append(s.Values, other.Values...)

	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Pushes += other.Pushes
	s.PlayerPoks += other.PlayerPoks
	s.DealerPoks += other.DealerPoks

	s.DrewHands += other.DrewHands
	s.DrewNet += other.DrewNet
	s.StoodNet += other.StoodNet
	s.AllNet += other.AllNet

	for shape := range other.SpecialResults {
		s.SpecialResults[shape].Hands += other.SpecialResults[shape].Hands
		s.SpecialResults[shape].SumNet += other.SpecialResults[shape].SumNet
	}

	for deng, count := range other.DengCounts {
		if s.DengCounts == nil {
			s.DengCounts = make(map[int]int)
		}
		s.DengCounts[deng] += count
	}

	if other.MaxWin > s.MaxWin {
		s.MaxWin = other.MaxWin
	}
	if other.MaxLoss < s.MaxLoss {
		s.MaxLoss = other.MaxLoss
	}
}

// Median returns the median value of all results.
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at the given percentile (0.0 to 1.0).
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// WinRate returns the fraction of hands won.
func (s *Statistics) WinRate() float64 {
	return s.rate(s.Wins)
}

// LossRate returns the fraction of hands lost.
func (s *Statistics) LossRate() float64 {
	return s.rate(s.Losses)
}

// PushRate returns the fraction of hands pushed.
func (s *Statistics) PushRate() float64 {
	return s.rate(s.Pushes)
}

// PlayerPokRate returns how often the player is dealt a pok.
func (s *Statistics) PlayerPokRate() float64 {
	return s.rate(s.PlayerPoks)
}

// DealerPokRate returns how often the dealer is dealt a pok.
func (s *Statistics) DealerPokRate() float64 {
	return s.rate(s.DealerPoks)
}

// DrawRate returns how often the player took a third card.
func (s *Statistics) DrawRate() float64 {
	return s.rate(s.DrewHands)
}

func (s *Statistics) rate(count int) float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(count) / float64(s.Hands)
}

// SpecialMean returns the mean net result for a hand shape.
func (s *Statistics) SpecialMean(shape pokdeng.Special) float64 {
	idx := int(shape)
	if idx < 0 || idx >= specialKinds {
		return 0
	}
	ss := s.SpecialResults[idx]
	if ss.Hands == 0 {
		return 0
	}
	return ss.SumNet / float64(ss.Hands)
}

// IsLedgerBalanced checks if the accounting is consistent.
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.AllNet-s.DrewNet-s.StoodNet) <= 1e-6
}

// Validate performs comprehensive validation of statistics data.
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: AllNet=%.6f, DrewNet=%.6f, StoodNet=%.6f",
			s.AllNet, s.DrewNet, s.StoodNet)
	}

	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}

	if len(s.Values) != s.Hands {
		return fmt.Errorf("values array length (%d) does not match hands count (%d)",
			len(s.Values), s.Hands)
	}

	if s.Wins+s.Losses+s.Pushes != s.Hands {
		return fmt.Errorf("outcome tallies (%d win, %d lose, %d push) do not match hands count (%d)",
			s.Wins, s.Losses, s.Pushes, s.Hands)
	}

	totalShapeHands := 0
	for shape := range s.SpecialResults {
		totalShapeHands += s.SpecialResults[shape].Hands
	}
	if totalShapeHands != s.Hands {
		return fmt.Errorf("hand shape total (%d) does not match hands count (%d)",
			totalShapeHands, s.Hands)
	}

	return nil
}
