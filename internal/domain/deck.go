package domain

import (
	"math/rand"
	"sort"
)

const (
	// DeckSize is the number of cards in a standard deck.
	DeckSize = 52
	// PlayersPerSession is the number of seats in a Tongits table.
	PlayersPerSession = 3
	// HandSize is the number of cards dealt to every seat.
	HandSize = 12
)

// NewDeck returns an ordered 52-card deck (suit-major, Ace to King).
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, s := range Suits {
		for r := Ace; r <= King; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// BuildStandardDeck returns a uniformly shuffled 52-card deck.
func BuildStandardDeck(rng *rand.Rand) []Card {
	deck := NewDeck()
	Shuffle(deck, rng)
	return deck
}

// Shuffle permutes cards in place with Fisher-Yates.
func Shuffle(cards []Card, rng *rand.Rand) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// DrawTop removes the card at the draw end (the tail) of the deck.
func DrawTop(deck []Card) (Card, []Card, bool) {
	if len(deck) == 0 {
		return Card{}, deck, false
	}
	last := len(deck) - 1
	return deck[last], deck[:last], true
}

// Deal hands out perPlayer cards to each of playerCount players, one card per
// player per pass, drawing from the same end as DrawTop. If the deck runs out
// the remaining hands are simply short.
func Deal(deck []Card, playerCount, perPlayer int) ([][]Card, []Card) {
	hands := make([][]Card, playerCount)
	for i := range hands {
		hands[i] = make([]Card, 0, perPlayer+1)
	}
	for round := 0; round < perPlayer; round++ {
		for p := 0; p < playerCount; p++ {
			card, rest, ok := DrawTop(deck)
			if !ok {
				return hands, deck
			}
			hands[p] = append(hands[p], card)
			deck = rest
		}
	}
	return hands, deck
}

// SortHand orders a hand by suit, then rank.
func SortHand(cards []Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		return cardOrder(cards[i]) < cardOrder(cards[j])
	})
}

func cardOrder(c Card) int {
	return int(c.Suit)*16 + int(c.Rank)
}
