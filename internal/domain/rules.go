package domain

import "sort"

// MinMeldSize is the smallest legal meld.
const MinMeldSize = 3

// Meld is a group of cards forming a set or a run.
type Meld []Card

// IsValidMeld reports whether the cards form a set or a run.
func IsValidMeld(cards []Card) bool {
	return IsSet(cards) || IsRun(cards)
}

// IsSet reports whether the cards are three or four of one rank. Suits are not
// checked.
func IsSet(cards []Card) bool {
	if len(cards) != 3 && len(cards) != 4 {
		return false
	}
	return allSameRank(cards)
}

// IsRun reports whether the cards are three or more of one suit with strictly
// consecutive ranks. Aces only count low.
func IsRun(cards []Card) bool {
	if len(cards) < MinMeldSize {
		return false
	}
	suit := cards[0].Suit
	ranks := make([]int, len(cards))
	for i, c := range cards {
		if c.Suit != suit {
			return false
		}
		ranks[i] = int(c.Rank)
	}
	sort.Ints(ranks)

	for i := 1; i < len(ranks); i++ {
		if ranks[i] != ranks[i-1]+1 {
			return false
		}
	}
	return true
}

// CanFormMeldWithCard looks for two hand cards that complete a meld with card.
// Same-rank pairs are tried before same-suit run pairs; the first hit in index
// order wins.
func CanFormMeldWithCard(card Card, hand []Card) (int, int, bool) {
	for i := 0; i < len(hand); i++ {
		if hand[i].Rank != card.Rank {
			continue
		}
		for j := i + 1; j < len(hand); j++ {
			if hand[j].Rank == card.Rank {
				return i, j, true
			}
		}
	}

	for i := 0; i < len(hand); i++ {
		if hand[i].Suit != card.Suit {
			continue
		}
		for j := i + 1; j < len(hand); j++ {
			if hand[j].Suit != card.Suit {
				continue
			}
			if IsRun([]Card{card, hand[i], hand[j]}) {
				return i, j, true
			}
		}
	}
	return -1, -1, false
}

func allSameRank(cards []Card) bool {
	if len(cards) == 0 {
		return false
	}
	r := cards[0].Rank
	for _, c := range cards {
		if c.Rank != r {
			return false
		}
	}
	return true
}
