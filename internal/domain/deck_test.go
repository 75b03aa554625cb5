package domain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeck(t *testing.T) {
	deck := NewDeck()
	require.Len(t, deck, DeckSize)

	seen := make(map[Card]bool)
	for _, c := range deck {
		assert.False(t, seen[c], "duplicate card %s", c)
		assert.True(t, c.Rank.Valid(), "bad rank in %s", c)
		seen[c] = true
	}
	assert.Equal(t, C(Ace, Spades), deck[0])
	assert.Equal(t, C(King, Clubs), deck[DeckSize-1])
}

func TestBuildStandardDeck_SeededIsReproducible(t *testing.T) {
	a := BuildStandardDeck(rand.New(rand.NewSource(7)))
	b := BuildStandardDeck(rand.New(rand.NewSource(7)))
	c := BuildStandardDeck(rand.New(rand.NewSource(8)))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.ElementsMatch(t, NewDeck(), a)
}

func TestShuffle_EveryPositionReachable(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	firstSeen := make(map[Card]bool)
	for i := 0; i < 2000; i++ {
		cards := MustParseCards("AS", "2S", "3S", "4S")
		Shuffle(cards, rng)
		firstSeen[cards[0]] = true
	}
	assert.Len(t, firstSeen, 4)
}

func TestDrawTop(t *testing.T) {
	deck := MustParseCards("AS", "2S", "3S")

	card, rest, ok := DrawTop(deck)
	require.True(t, ok)
	assert.Equal(t, C(3, Spades), card)
	assert.Len(t, rest, 2)

	_, rest, ok = DrawTop(nil)
	assert.False(t, ok)
	assert.Empty(t, rest)
}

func TestDeal(t *testing.T) {
	tests := []struct {
		name       string
		deckSize   int
		players    int
		perPlayer  int
		wantHands  []int
		wantRemain int
	}{
		{name: "FullTable", deckSize: 52, players: 3, perPlayer: 12, wantHands: []int{12, 12, 12}, wantRemain: 16},
		{name: "Exhausted", deckSize: 7, players: 3, perPlayer: 3, wantHands: []int{3, 2, 2}, wantRemain: 0},
		{name: "NoPlayers", deckSize: 10, players: 0, perPlayer: 3, wantHands: []int{}, wantRemain: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deck := NewDeck()[:tt.deckSize]
			hands, rest := Deal(deck, tt.players, tt.perPlayer)

			require.Len(t, hands, len(tt.wantHands))
			for i, want := range tt.wantHands {
				assert.Len(t, hands[i], want, "hand %d", i)
			}
			assert.Len(t, rest, tt.wantRemain)
		})
	}
}

func TestDeal_RoundRobinFromDrawEnd(t *testing.T) {
	deck := MustParseCards("AS", "2S", "3S", "4S", "5S", "6S")
	hands, rest := Deal(deck, 2, 2)

	assert.Equal(t, MustParseCards("6S", "4S"), hands[0])
	assert.Equal(t, MustParseCards("5S", "3S"), hands[1])
	assert.Equal(t, MustParseCards("AS", "2S"), rest)
}

func TestSortHand(t *testing.T) {
	hand := MustParseCards("KC", "2H", "AS", "10H", "3D", "QS")
	SortHand(hand)
	assert.Equal(t, MustParseCards("AS", "QS", "2H", "10H", "3D", "KC"), hand)

	again := append([]Card(nil), hand...)
	SortHand(again)
	assert.Equal(t, hand, again)
}
