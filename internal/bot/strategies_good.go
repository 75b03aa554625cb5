package bot

import (
	"tongits/internal/app"
	"tongits/internal/domain"
)

// GoodBot plays greedily: melds on sight and dumps its highest loose card.
type GoodBot struct {
	Tuning Tuning
}

func (b *GoodBot) NextAction(sess *domain.GameSession, seat int) (app.Action, error) {
	return playTurn(sess, seat, b.Tuning, []DiscardRule{
		&HighPointsRule{Weight: b.Tuning.PointsWeight},
		&KeepPartnersRule{Weight: b.Tuning.PartnerWeight},
	})
}

func (b *GoodBot) OnEvent(app.Event) {}
