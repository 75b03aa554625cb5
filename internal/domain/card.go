package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Suit identifies one of the four French suits.
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// Suits lists every suit in sort order.
var Suits = [...]Suit{Spades, Hearts, Diamonds, Clubs}

var suitLetters = [...]string{"S", "H", "D", "C"}

func (s Suit) String() string {
	if s < Spades || s > Clubs {
		return "?"
	}
	return suitLetters[s]
}

// MarshalText encodes the suit as its single letter.
func (s Suit) MarshalText() ([]byte, error) {
	if s < Spades || s > Clubs {
		return nil, fmt.Errorf("invalid suit %d", int(s))
	}
	return []byte(suitLetters[s]), nil
}

// UnmarshalText decodes a single-letter suit.
func (s *Suit) UnmarshalText(text []byte) error {
	parsed, err := parseSuit(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func parseSuit(v string) (Suit, error) {
	for i, letter := range suitLetters {
		if strings.EqualFold(v, letter) {
			return Suit(i), nil
		}
	}
	return 0, fmt.Errorf("invalid suit %q", v)
}

// Rank runs from Ace (1) to King (13). Aces are always low.
type Rank int

const (
	Ace   Rank = 1
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
)

func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	return strconv.Itoa(int(r))
}

// Valid reports whether the rank is in A..K.
func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

// Card is an immutable playing card. A standard deck holds exactly one of each
// suit/rank combination, so the value doubles as identity.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// C is shorthand for building a card.
func C(rank Rank, suit Suit) Card {
	return Card{Suit: suit, Rank: rank}
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Points is the deadwood value of the card: A=1, 2-10 face value, J/Q/K=10.
func (c Card) Points() int {
	if c.Rank >= 10 {
		return 10
	}
	return int(c.Rank)
}

// ParseCard reads the String form, e.g. "AS", "10D", "kc".
func ParseCard(v string) (Card, error) {
	v = strings.TrimSpace(v)
	if len(v) < 2 {
		return Card{}, fmt.Errorf("invalid card %q", v)
	}
	suit, err := parseSuit(v[len(v)-1:])
	if err != nil {
		return Card{}, fmt.Errorf("invalid card %q: %w", v, err)
	}

	var rank Rank
	switch r := strings.ToUpper(v[:len(v)-1]); r {
	case "A":
		rank = Ace
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	default:
		n, err := strconv.Atoi(r)
		if err != nil || n < 2 || n > 10 {
			return Card{}, fmt.Errorf("invalid card %q: bad rank", v)
		}
		rank = Rank(n)
	}
	return Card{Suit: suit, Rank: rank}, nil
}

// ParseCards parses a list of card strings.
func ParseCards(values ...string) ([]Card, error) {
	cards := make([]Card, 0, len(values))
	for _, v := range values {
		c, err := ParseCard(v)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is ParseCards for fixtures; it panics on bad input.
func MustParseCards(values ...string) []Card {
	cards, err := ParseCards(values...)
	if err != nil {
		panic(err)
	}
	return cards
}
