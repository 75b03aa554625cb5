package domain

// SessionSnapshot is the full, unfiltered view of a session relayed to every
// seated participant after each applied action.
type SessionSnapshot struct {
	ID                   string    `json:"id"`
	Players              []Player  `json:"players"`
	Deck                 []Card    `json:"deck"`
	DiscardPile          []Card    `json:"discardPile"`
	CurrentPlayerIndex   int       `json:"currentPlayerIndex"`
	Phase                TurnPhase `json:"phase"`
	HasDrawnThisTurn     bool      `json:"hasDrawnThisTurn"`
	Round                int       `json:"round"`
	GameEnded            bool      `json:"gameEnded"`
	Winner               *int      `json:"winner"`
	EndedByTongits       bool      `json:"endedByTongits"`
	SelectedCardIndices  []int     `json:"selectedCardIndices"`
	GameStarted          bool      `json:"gameStarted"`
	FirstPlayerHasPlayed bool      `json:"firstPlayerHasPlayed"`
}

// Snapshot deep-copies the session so the caller may hold it past the next
// action.
func Snapshot(s *GameSession) SessionSnapshot {
	snap := SessionSnapshot{
		ID:                   s.ID,
		Players:              make([]Player, 0, len(s.Players)),
		Deck:                 copyCards(s.Deck),
		DiscardPile:          copyCards(s.DiscardPile),
		CurrentPlayerIndex:   s.CurrentPlayerIndex,
		Phase:                s.Phase,
		HasDrawnThisTurn:     s.HasDrawnThisTurn(),
		Round:                s.Round,
		GameEnded:            s.GameEnded,
		EndedByTongits:       s.EndedByTongits,
		SelectedCardIndices:  append([]int{}, s.SelectedCardIndices...),
		GameStarted:          s.GameStarted,
		FirstPlayerHasPlayed: s.FirstPlayerHasPlayed(),
	}
	if s.Winner >= 0 {
		w := s.Winner
		snap.Winner = &w
	}
	for _, p := range s.Players {
		cp := *p
		cp.Hand = copyCards(p.Hand)
		cp.ExposedMelds = copyMelds(p.ExposedMelds)
		cp.SecretMelds = copyMelds(p.SecretMelds)
		snap.Players = append(snap.Players, cp)
	}
	return snap
}

func copyCards(cards []Card) []Card {
	return append([]Card{}, cards...)
}

func copyMelds(melds []Meld) []Meld {
	out := make([]Meld, 0, len(melds))
	for _, m := range melds {
		out = append(out, Meld(copyCards(m)))
	}
	return out
}
