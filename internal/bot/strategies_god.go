package bot

import (
	"tongits/internal/app"
	"tongits/internal/domain"
)

// GodBot sees every hand. It never discards a card the next seat can pick up.
type GodBot struct {
	Tuning Tuning
}

func (b *GodBot) NextAction(sess *domain.GameSession, seat int) (app.Action, error) {
	return playTurn(sess, seat, b.Tuning, []DiscardRule{
		&HighPointsRule{Weight: b.Tuning.PointsWeight},
		&KeepPartnersRule{Weight: b.Tuning.PartnerWeight},
		&BlockNextSeatRule{Penalty: b.Tuning.BlockPenalty},
	})
}

func (b *GodBot) OnEvent(app.Event) {}
