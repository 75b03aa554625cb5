package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreHand(t *testing.T) {
	tests := []struct {
		name     string
		hand     []string
		points   int
		melds    int
		deadwood []string
	}{
		{
			name:     "RunThenDeadwood",
			hand:     []string{"AS", "2S", "3S", "KH"},
			points:   10,
			melds:    1,
			deadwood: []string{"KH"},
		},
		{
			name:     "NoMelds",
			hand:     []string{"AS", "5H", "10D", "JC", "QS"},
			points:   1 + 5 + 10 + 10 + 10,
			deadwood: []string{"AS", "5H", "10D", "JC", "QS"},
		},
		{
			name:     "SetAndRun",
			hand:     []string{"9S", "4C", "9H", "5C", "9D", "6C", "2H"},
			points:   2,
			melds:    2,
			deadwood: []string{"2H"},
		},
		{
			name:     "AllMelded",
			hand:     []string{"KS", "KH", "KD"},
			points:   0,
			melds:    1,
			deadwood: []string{},
		},
		{
			name:   "Empty",
			points: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreHand(MustParseCards(tt.hand...))
			assert.Equal(t, tt.points, got.Points)
			assert.Len(t, got.Melds, tt.melds)
			assert.ElementsMatch(t, MustParseCards(tt.deadwood...), got.Deadwood)
			for _, m := range got.Melds {
				assert.True(t, IsValidMeld(m), "extracted %v", m)
			}
			assert.Equal(t, tt.points, HandPoints(MustParseCards(tt.hand...)))
		})
	}
}

func TestScoreHand_GreedyPrefersSetOverBetterRuns(t *testing.T) {
	// Taking the 5s as a set strands 3D 4D 6D 7D. The run 3D-7D would have
	// left only 5S 5H.
	hand := MustParseCards("5D", "5S", "5H", "3D", "4D", "6D", "7D")
	got := ScoreHand(hand)
	assert.Equal(t, 3+4+6+7, got.Points)
	assert.Equal(t, Meld(MustParseCards("5D", "5S", "5H")), got.Melds[0])
}

func TestScoreHand_RunMustBeAdjacentAfterRankSort(t *testing.T) {
	// Sorted by rank, the 2H always lands inside AS 2S 3S.
	hand := MustParseCards("AS", "2H", "2S", "3S")
	assert.Equal(t, 1+2+2+3, HandPoints(hand))

	hand = MustParseCards("AS", "2S", "2H", "3S")
	assert.Equal(t, 1+2+2+3, HandPoints(hand))
}

func TestScoreHand_DoesNotMutateInput(t *testing.T) {
	hand := MustParseCards("AS", "2S", "3S", "KH")
	before := append([]Card(nil), hand...)
	ScoreHand(hand)
	assert.Equal(t, before, hand)
}
