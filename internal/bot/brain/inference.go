package brain

import (
	"tongits/internal/domain"
)

// Estimator provides rough risk figures based on memory.
type Estimator struct {
	Memory *GameMemory
}

// NewEstimator creates a new reasoning engine.
func NewEstimator(m *GameMemory) *Estimator {
	return &Estimator{Memory: m}
}

// LiveOuts counts the cards that could still join c in a meld and are not
// face up. Fewer outs means c is less likely to ever be melded, by anyone.
func (e *Estimator) LiveOuts(c domain.Card) int {
	outs := 0
	for _, s := range domain.Suits {
		if s == c.Suit {
			continue
		}
		if e.Memory.Status(domain.C(c.Rank, s)) != StatusPlayed {
			outs++
		}
	}
	for _, d := range []int{-2, -1, 1, 2} {
		r := domain.Rank(int(c.Rank) + d)
		if !r.Valid() {
			continue
		}
		if e.Memory.Status(domain.C(r, c.Suit)) != StatusPlayed {
			outs++
		}
	}
	return outs
}

// FeedRisk is a 0.0 to 1.0 estimate that discarding c hands seat a meld.
func (e *Estimator) FeedRisk(c domain.Card, seat int) float64 {
	p, ok := e.Memory.Opponents[seat]
	switch {
	case ok && p.Collects(c):
		return 1.0
	case ok && p.Dumped(c):
		return 0.1
	}
	return float64(e.LiveOuts(c)) / 7.0 * 0.5
}
