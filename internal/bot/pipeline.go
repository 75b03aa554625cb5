package bot

import (
	"tongits/internal/bot/brain"
	"tongits/internal/domain"
)

// DiscardContext holds the state for the discard decision pipeline. Scores
// are per hand index; the highest score is thrown away.
type DiscardContext struct {
	Session *domain.GameSession
	Seat    int
	Hand    []domain.Card
	Scores  []float64
}

// NextSeat is the seat that will see the discard first.
func (ctx *DiscardContext) NextSeat() int {
	return (ctx.Seat + 1) % len(ctx.Session.Players)
}

// DiscardRule represents a logic unit that can influence which card is discarded.
type DiscardRule interface {
	Name() string
	Apply(ctx *DiscardContext)
}

// ChooseDiscard runs the rules and returns the hand index to discard. Ties go
// to the later index so freshly drawn cards leave first.
func ChooseDiscard(sess *domain.GameSession, seat int, rules []DiscardRule) int {
	hand := sess.Players[seat].Hand
	ctx := &DiscardContext{
		Session: sess,
		Seat:    seat,
		Hand:    hand,
		Scores:  make([]float64, len(hand)),
	}
	for _, r := range rules {
		r.Apply(ctx)
	}

	best := -1
	for i, s := range ctx.Scores {
		if best < 0 || s >= ctx.Scores[best] {
			best = i
		}
	}
	return best
}

// HighPointsRule prefers dumping expensive cards.
type HighPointsRule struct{ Weight float64 }

func (r *HighPointsRule) Name() string { return "HighPoints" }

func (r *HighPointsRule) Apply(ctx *DiscardContext) {
	for i, c := range ctx.Hand {
		ctx.Scores[i] += r.Weight * float64(c.Points())
	}
}

// KeepPartnersRule holds on to cards that are one card away from a meld.
type KeepPartnersRule struct{ Weight float64 }

func (r *KeepPartnersRule) Name() string { return "KeepPartners" }

func (r *KeepPartnersRule) Apply(ctx *DiscardContext) {
	for i, c := range ctx.Hand {
		for j, o := range ctx.Hand {
			if i != j && partners(c, o) {
				ctx.Scores[i] -= r.Weight
			}
		}
	}
}

func partners(a, b domain.Card) bool {
	if a.Rank == b.Rank {
		return true
	}
	d := int(a.Rank) - int(b.Rank)
	return a.Suit == b.Suit && d >= -2 && d <= 2
}

// AvoidFeedingRule steers away from cards the next seat has shown it wants.
type AvoidFeedingRule struct {
	Estimator *brain.Estimator
	Weight    float64
}

func (r *AvoidFeedingRule) Name() string { return "AvoidFeeding" }

func (r *AvoidFeedingRule) Apply(ctx *DiscardContext) {
	next := ctx.NextSeat()
	for i, c := range ctx.Hand {
		ctx.Scores[i] -= r.Weight * r.Estimator.FeedRisk(c, next)
	}
}

// BlockNextSeatRule reads the next seat's hand and refuses to give it a
// pickup.
type BlockNextSeatRule struct{ Penalty float64 }

func (r *BlockNextSeatRule) Name() string { return "BlockNextSeat" }

func (r *BlockNextSeatRule) Apply(ctx *DiscardContext) {
	nextHand := ctx.Session.Players[ctx.NextSeat()].Hand
	for i, c := range ctx.Hand {
		if _, _, ok := domain.CanFormMeldWithCard(c, nextHand); ok {
			ctx.Scores[i] -= r.Penalty
		}
	}
}
