package domain

import (
	"errors"
	"fmt"
)

// ValidIndices reports whether idx names distinct positions inside a slice of
// length n.
func ValidIndices(idx []int, n int) bool {
	seen := make(map[int]bool, len(idx))
	for _, i := range idx {
		if i < 0 || i >= n || seen[i] {
			return false
		}
		seen[i] = true
	}
	return true
}

// PickIndices copies the cards at idx, in idx order. Callers validate first.
func PickIndices(cards []Card, idx []int) []Card {
	out := make([]Card, 0, len(idx))
	for _, i := range idx {
		out = append(out, cards[i])
	}
	return out
}

// RemoveIndices returns a new slice without the cards at idx. The input is not
// modified.
func RemoveIndices(cards []Card, idx []int) []Card {
	drop := make(map[int]bool, len(idx))
	for _, i := range idx {
		drop[i] = true
	}
	out := make([]Card, 0, len(cards))
	for i, c := range cards {
		if !drop[i] {
			out = append(out, c)
		}
	}
	return out
}

// IndexOf returns the position of card in cards, or -1.
func IndexOf(cards []Card, card Card) int {
	for i, c := range cards {
		if c == card {
			return i
		}
	}
	return -1
}

var (
	ErrCardMissing   = errors.New("card missing from session")
	ErrCardDuplicate = errors.New("card present more than once")
)

// CheckConservation verifies that the deck, discard pile, hands and melds of a
// started session hold every card of a standard deck exactly once.
func CheckConservation(s *GameSession) error {
	seen := make(map[Card]int, DeckSize)
	add := func(cards []Card) {
		for _, c := range cards {
			seen[c]++
		}
	}
	add(s.Deck)
	add(s.DiscardPile)
	for _, p := range s.Players {
		add(p.Hand)
		for _, m := range p.ExposedMelds {
			add(m)
		}
		for _, m := range p.SecretMelds {
			add(m)
		}
	}

	for _, c := range NewDeck() {
		switch n := seen[c]; {
		case n == 0:
			return fmt.Errorf("%w: %s", ErrCardMissing, c)
		case n > 1:
			return fmt.Errorf("%w: %s x%d", ErrCardDuplicate, c, n)
		}
		delete(seen, c)
	}
	for c := range seen {
		return fmt.Errorf("%w: unexpected %s", ErrCardDuplicate, c)
	}
	return nil
}
