package domain

import "sort"

// Scoring is the result of reducing a hand at round end.
type Scoring struct {
	Points   int    `json:"points"`
	Melds    []Meld `json:"melds"`
	Deadwood []Card `json:"deadwood"`
}

// ScoreHand greedily extracts melds from hand and sums what is left. Each pass
// takes the first three-of-a-kind by index triple, otherwise the first
// three-card run among adjacent cards of the rank-sorted hand, until neither
// exists. The result depends on card order and is not a minimum-deadwood
// partition.
func ScoreHand(hand []Card) Scoring {
	working := append([]Card(nil), hand...)
	var melds []Meld

	for {
		idx, ok := findSet(working)
		if !ok {
			idx, ok = findRun(working)
		}
		if !ok {
			break
		}
		meld := make(Meld, 0, len(idx))
		for _, i := range idx {
			meld = append(meld, working[i])
		}
		melds = append(melds, meld)
		working = RemoveIndices(working, idx)
	}

	points := 0
	for _, c := range working {
		points += c.Points()
	}
	return Scoring{Points: points, Melds: melds, Deadwood: working}
}

// HandPoints is the deadwood total ScoreHand would report.
func HandPoints(hand []Card) int {
	return ScoreHand(hand).Points
}

func findSet(cards []Card) ([]int, bool) {
	n := len(cards)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if cards[j].Rank != cards[i].Rank {
				continue
			}
			for k := j + 1; k < n; k++ {
				if cards[k].Rank == cards[i].Rank {
					return []int{i, j, k}, true
				}
			}
		}
	}
	return nil, false
}

func findRun(cards []Card) ([]int, bool) {
	order := make([]int, len(cards))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return cards[order[a]].Rank < cards[order[b]].Rank
	})

	for k := 0; k+2 < len(order); k++ {
		a, b, c := cards[order[k]], cards[order[k+1]], cards[order[k+2]]
		if a.Suit == b.Suit && b.Suit == c.Suit && b.Rank == a.Rank+1 && c.Rank == b.Rank+1 {
			return []int{order[k], order[k+1], order[k+2]}, true
		}
	}
	return nil, false
}
