package brain

import (
	"tongits/internal/domain"
)

// OpponentProfile tracks what a specific player has taken and thrown away.
type OpponentProfile struct {
	Seat int
	// Taken holds cards picked up from the discard pile. A seat only does that
	// to complete a meld, so these show what it is building.
	Taken []domain.Card
	// Discarded holds cards the seat threw away.
	Discarded []domain.Card
}

// NewOpponentProfile initializes a profile for a specific seat.
func NewOpponentProfile(seat int) *OpponentProfile {
	return &OpponentProfile{Seat: seat}
}

// RecordTake logs a discard-pile pickup.
func (p *OpponentProfile) RecordTake(c domain.Card) {
	p.Taken = append(p.Taken, c)
}

// RecordDiscard logs a discard.
func (p *OpponentProfile) RecordDiscard(c domain.Card) {
	p.Discarded = append(p.Discarded, c)
}

// Collects reports whether the seat has shown interest in c: it took a card
// of the same rank, or a card of the same suit within two ranks.
func (p *OpponentProfile) Collects(c domain.Card) bool {
	for _, t := range p.Taken {
		if related(t, c) {
			return true
		}
	}
	return false
}

// Dumped reports whether the seat threw away a card related to c, which hints
// it is not collecting around c.
func (p *OpponentProfile) Dumped(c domain.Card) bool {
	for _, d := range p.Discarded {
		if related(d, c) {
			return true
		}
	}
	return false
}

func related(a, b domain.Card) bool {
	if a.Rank == b.Rank {
		return true
	}
	if a.Suit != b.Suit {
		return false
	}
	d := int(a.Rank) - int(b.Rank)
	return d >= -2 && d <= 2
}
