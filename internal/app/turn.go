package app

import "tongits/internal/domain"

func (s *Service) draw(sess *domain.GameSession, seat int, a Action) ([]Event, error) {
	switch sess.Phase {
	case domain.PhaseOpeningLead:
		return nil, reject(ActionDraw, ErrOpeningLeadMustDiscard)
	case domain.PhaseCanAct:
		return nil, reject(ActionDraw, ErrAlreadyDrawn)
	}
	p := sess.Players[seat]

	if a.FromDeck {
		card, rest, ok := domain.DrawTop(sess.Deck)
		if !ok {
			return nil, reject(ActionDraw, ErrDeckEmpty)
		}
		sess.Deck = rest
		p.Hand = append(p.Hand, card)
		sess.Phase = domain.PhaseCanAct
		return []Event{{
			Kind:    EventCardDrawn,
			Payload: CardDrawnPayload{Seat: seat, FromDeck: true, Card: card},
		}}, nil
	}

	top, ok := sess.TopDiscard()
	if !ok {
		return nil, reject(ActionDraw, ErrDiscardEmpty)
	}
	if _, _, ok := domain.CanFormMeldWithCard(top, p.Hand); !ok {
		return nil, reject(ActionDraw, ErrCannotDrawDiscard)
	}

	sess.DiscardPile = sess.DiscardPile[:len(sess.DiscardPile)-1]
	sess.Phase = domain.PhaseCanAct
	events := []Event{{
		Kind:    EventCardDrawn,
		Payload: CardDrawnPayload{Seat: seat, Card: top},
	}}

	if len(a.MeldIndices) == 2 && domain.ValidIndices(a.MeldIndices, len(p.Hand)) {
		meld := append(domain.PickIndices(p.Hand, a.MeldIndices), top)
		if domain.IsValidMeld(meld) {
			p.Hand = domain.RemoveIndices(p.Hand, a.MeldIndices)
			p.ExposedMelds = append(p.ExposedMelds, domain.Meld(meld))
			events = append(events, Event{
				Kind:    EventMeldExposed,
				Payload: MeldExposedPayload{Seat: seat, Meld: domain.Meld(meld)},
			})
			return append(events, s.endIfHandEmpty(sess, seat)...), nil
		}
	}

	p.Hand = append(p.Hand, top)
	return events, nil
}

func (s *Service) discard(sess *domain.GameSession, seat int, a Action) ([]Event, error) {
	if sess.Phase == domain.PhaseAwaitingDraw {
		return nil, reject(ActionDiscard, ErrMustDrawFirst)
	}
	p := sess.Players[seat]
	if a.CardIndex == nil || !domain.ValidIndices([]int{*a.CardIndex}, len(p.Hand)) {
		return nil, reject(ActionDiscard, ErrBadIndex)
	}

	idx := *a.CardIndex
	card := p.Hand[idx]
	p.Hand = domain.RemoveIndices(p.Hand, []int{idx})
	sess.DiscardPile = append(sess.DiscardPile, card)
	p.TurnsPlayed++

	sess.CurrentPlayerIndex = (seat + 1) % len(sess.Players)
	sess.Phase = domain.PhaseAwaitingDraw

	return []Event{{
		Kind:    EventCardDiscarded,
		Payload: CardDiscardedPayload{Seat: seat, Card: card, NextSeat: sess.CurrentPlayerIndex},
	}}, nil
}

func (s *Service) meld(sess *domain.GameSession, seat int, a Action) ([]Event, error) {
	p := sess.Players[seat]
	if len(a.CardIndices) < domain.MinMeldSize || !domain.ValidIndices(a.CardIndices, len(p.Hand)) {
		return nil, reject(ActionMeld, ErrBadIndex)
	}
	cards := domain.PickIndices(p.Hand, a.CardIndices)
	if !domain.IsValidMeld(cards) {
		return nil, reject(ActionMeld, ErrInvalidMeld)
	}

	p.Hand = domain.RemoveIndices(p.Hand, a.CardIndices)
	p.ExposedMelds = append(p.ExposedMelds, domain.Meld(cards))

	events := []Event{{
		Kind:    EventMeldExposed,
		Payload: MeldExposedPayload{Seat: seat, Meld: domain.Meld(cards)},
	}}
	return append(events, s.endIfHandEmpty(sess, seat)...), nil
}

func (s *Service) sapaw(sess *domain.GameSession, seat int, a Action) ([]Event, error) {
	p := sess.Players[seat]
	if a.Target == nil || a.Target.Seat < 0 || a.Target.Seat >= len(sess.Players) {
		return nil, reject(ActionSapaw, ErrUnknownMeld)
	}
	target := sess.Players[a.Target.Seat]
	if a.Target.MeldIndex < 0 || a.Target.MeldIndex >= len(target.ExposedMelds) {
		return nil, reject(ActionSapaw, ErrUnknownMeld)
	}
	if len(a.CardIndices) == 0 || !domain.ValidIndices(a.CardIndices, len(p.Hand)) {
		return nil, reject(ActionSapaw, ErrBadIndex)
	}

	cards := domain.PickIndices(p.Hand, a.CardIndices)
	existing := target.ExposedMelds[a.Target.MeldIndex]
	combined := make(domain.Meld, 0, len(existing)+len(cards))
	combined = append(append(combined, existing...), cards...)
	if !domain.IsValidMeld(combined) {
		return nil, reject(ActionSapaw, ErrInvalidMeld)
	}

	target.ExposedMelds[a.Target.MeldIndex] = combined
	p.Hand = domain.RemoveIndices(p.Hand, a.CardIndices)
	// Only a lay-off by another seat counts as being sapawed; settlement charges
	// the owner a penalty for it.
	if a.Target.Seat != seat {
		target.IsSapawed = true
	}

	events := []Event{{
		Kind: EventSapaw,
		Payload: SapawPayload{
			Seat:       seat,
			TargetSeat: a.Target.Seat,
			MeldIndex:  a.Target.MeldIndex,
			Cards:      cards,
		},
	}}
	return append(events, s.endIfHandEmpty(sess, seat)...), nil
}

// callDraw ends the round on hand points alone. The lowest total wins and ties
// go to the earlier seat.
func (s *Service) callDraw(sess *domain.GameSession) ([]Event, error) {
	winner := -1
	best := 0
	for i, p := range sess.Players {
		p.Score = domain.HandPoints(p.Hand)
		if winner < 0 || p.Score < best {
			winner, best = i, p.Score
		}
	}
	return []Event{s.finishRound(sess, winner, false)}, nil
}

// endIfHandEmpty ends the round as a Tongits when the seat has no cards left.
// Other seats keep the melds the scoring pass finds as secret melds and are
// scored on the rest.
func (s *Service) endIfHandEmpty(sess *domain.GameSession, seat int) []Event {
	if len(sess.Players[seat].Hand) > 0 {
		return nil
	}
	for i, p := range sess.Players {
		if i == seat {
			p.Score = 0
			continue
		}
		scoring := domain.ScoreHand(p.Hand)
		p.SecretMelds = append(p.SecretMelds, scoring.Melds...)
		p.Hand = scoring.Deadwood
		p.Score = scoring.Points
	}
	return []Event{s.finishRound(sess, seat, true)}
}

func (s *Service) finishRound(sess *domain.GameSession, winner int, tongits bool) Event {
	scores := make(map[string]int, len(sess.Players))
	for i, p := range sess.Players {
		if i == winner {
			p.ConsecutiveWins++
		} else {
			p.ConsecutiveWins = 0
		}
		scores[p.ID] = p.Score
	}
	// A round can end before the opening discard; it no longer awaits one.
	if sess.Phase == domain.PhaseOpeningLead {
		sess.Phase = domain.PhaseAwaitingDraw
	}
	sess.GameEnded = true
	sess.Winner = winner
	sess.EndedByTongits = tongits

	return Event{
		Kind: EventRoundEnded,
		Payload: RoundEndedPayload{
			WinnerSeat: winner,
			WinnerID:   sess.Players[winner].ID,
			Tongits:    tongits,
			Scores:     scores,
		},
	}
}
