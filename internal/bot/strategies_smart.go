package bot

import (
	"tongits/internal/app"
	"tongits/internal/bot/brain"
	"tongits/internal/domain"
)

// SmartBot remembers the table and avoids discarding into a neighbour's meld.
type SmartBot struct {
	Tuning Tuning
	Memory *brain.GameMemory
}

func NewSmartBot(t Tuning) *SmartBot {
	return &SmartBot{Tuning: t, Memory: brain.NewMemory()}
}

func (b *SmartBot) NextAction(sess *domain.GameSession, seat int) (app.Action, error) {
	if seat >= 0 && seat < len(sess.Players) {
		b.Memory.UpdateHand(sess.Players[seat].Hand)
	}
	return playTurn(sess, seat, b.Tuning, []DiscardRule{
		&HighPointsRule{Weight: b.Tuning.PointsWeight},
		&KeepPartnersRule{Weight: b.Tuning.PartnerWeight},
		&AvoidFeedingRule{Estimator: brain.NewEstimator(b.Memory), Weight: b.Tuning.FeedWeight},
	})
}

// OnEvent folds table events into memory.
func (b *SmartBot) OnEvent(event app.Event) {
	switch p := event.Payload.(type) {
	case app.RoundStartedPayload:
		b.Memory.Reset()
	case app.CardDrawnPayload:
		if !p.FromDeck {
			b.Memory.MarkTaken(p.Seat, p.Card)
		}
	case app.CardDiscardedPayload:
		b.Memory.MarkDiscarded(p.Seat, p.Card)
	case app.MeldExposedPayload:
		b.Memory.MarkPlayed(p.Meld)
	case app.SapawPayload:
		b.Memory.MarkPlayed(p.Cards)
	}
}
