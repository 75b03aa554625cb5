package bot

import (
	"errors"

	"tongits/internal/app"
	"tongits/internal/domain"
)

var ErrNotMyTurn = errors.New("bot asked to act out of turn")

// playTurn is the turn skeleton shared by every level. Levels differ in the
// discard rules they pass in.
func playTurn(sess *domain.GameSession, seat int, tuning Tuning, rules []DiscardRule) (app.Action, error) {
	if !sess.GameStarted || seat != sess.CurrentPlayerIndex || seat < 0 || seat >= len(sess.Players) {
		return app.Action{}, ErrNotMyTurn
	}
	if sess.GameEnded {
		return app.NextGame(), nil
	}
	player := sess.Players[seat]

	if sess.Phase == domain.PhaseAwaitingDraw {
		return chooseDraw(sess, player, tuning), nil
	}

	// 1. Lay down whatever the hand already holds.
	scoring := domain.ScoreHand(player.Hand)
	if len(scoring.Melds) > 0 {
		return app.Meld(meldIndices(player.Hand, scoring.Melds[0])...), nil
	}

	// 2. Lay off on any exposed meld.
	if a, ok := findSapaw(sess, player.Hand); ok {
		return a, nil
	}

	// 3. Throw something away.
	return app.Discard(ChooseDiscard(sess, seat, rules)), nil
}

func chooseDraw(sess *domain.GameSession, player *domain.Player, tuning Tuning) app.Action {
	if player.TurnsPlayed >= tuning.MinTurnsBeforeCall && domain.HandPoints(player.Hand) <= tuning.CallDrawThreshold {
		return app.CallDraw()
	}

	if top, ok := sess.TopDiscard(); ok {
		if i, j, ok := domain.CanFormMeldWithCard(top, player.Hand); ok {
			return app.Draw(false, i, j)
		}
	}
	if len(sess.Deck) == 0 {
		// Nothing left to draw; the round can only end on points.
		return app.CallDraw()
	}
	return app.Draw(true)
}

func meldIndices(hand []domain.Card, meld domain.Meld) []int {
	idx := make([]int, 0, len(meld))
	for _, c := range meld {
		idx = append(idx, domain.IndexOf(hand, c))
	}
	return idx
}

func findSapaw(sess *domain.GameSession, hand []domain.Card) (app.Action, bool) {
	for i, c := range hand {
		for seat, p := range sess.Players {
			for m, meld := range p.ExposedMelds {
				extended := append(append(make([]domain.Card, 0, len(meld)+1), meld...), c)
				if domain.IsValidMeld(extended) {
					return app.Sapaw(seat, m, i), true
				}
			}
		}
	}
	return app.Action{}, false
}
