package brain

import (
	"tongits/internal/domain"
)

// CardStatus represents what the bot knows about a specific card.
type CardStatus int

const (
	StatusUnknown  CardStatus = iota // In the stock or an unseen hand
	StatusMine                       // In the bot's hand
	StatusPlayed                     // Face up: discard pile or an exposed meld
	StatusOpponent                   // Known to sit in an opponent's hand
)

// GameMemory stores the bot's private view of the round.
type GameMemory struct {
	// DeckStatus tracks all 52 cards. Index = Suit*13 + Rank-1.
	DeckStatus [domain.DeckSize]CardStatus
	// Opponents tracks behaviour by seat index.
	Opponents map[int]*OpponentProfile
}

// NewMemory initializes a fresh memory state.
func NewMemory() *GameMemory {
	return &GameMemory{
		Opponents: make(map[int]*OpponentProfile),
	}
}

// Reset clears the memory for a new round.
func (m *GameMemory) Reset() {
	for i := range m.DeckStatus {
		m.DeckStatus[i] = StatusUnknown
	}
	m.Opponents = make(map[int]*OpponentProfile)
}

// Opponent returns the profile for seat, creating it on first use.
func (m *GameMemory) Opponent(seat int) *OpponentProfile {
	p, ok := m.Opponents[seat]
	if !ok {
		p = NewOpponentProfile(seat)
		m.Opponents[seat] = p
	}
	return p
}

// Status returns what is known about c.
func (m *GameMemory) Status(c domain.Card) CardStatus {
	return m.DeckStatus[cardToIndex(c)]
}

// MarkPlayed records cards that are face up on the table.
func (m *GameMemory) MarkPlayed(cards []domain.Card) {
	for _, c := range cards {
		m.DeckStatus[cardToIndex(c)] = StatusPlayed
	}
}

// MarkTaken records that seat picked c up from the discard pile.
func (m *GameMemory) MarkTaken(seat int, c domain.Card) {
	m.DeckStatus[cardToIndex(c)] = StatusOpponent
	m.Opponent(seat).RecordTake(c)
}

// MarkDiscarded records a discard by seat.
func (m *GameMemory) MarkDiscarded(seat int, c domain.Card) {
	m.DeckStatus[cardToIndex(c)] = StatusPlayed
	m.Opponent(seat).RecordDiscard(c)
}

// UpdateHand marks the bot's current hand. Cards that left the hand fall back
// to unknown unless something else already placed them.
func (m *GameMemory) UpdateHand(hand []domain.Card) {
	for i, status := range m.DeckStatus {
		if status == StatusMine {
			m.DeckStatus[i] = StatusUnknown
		}
	}
	for _, c := range hand {
		m.DeckStatus[cardToIndex(c)] = StatusMine
	}
}

func cardToIndex(c domain.Card) int {
	return int(c.Suit)*13 + int(c.Rank) - 1
}
