package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fixedRule struct{ scores []float64 }

func (r *fixedRule) Name() string { return "Fixed" }

func (r *fixedRule) Apply(ctx *DiscardContext) {
	for i := range ctx.Scores {
		ctx.Scores[i] += r.scores[i]
	}
}

func TestChooseDiscard(t *testing.T) {
	sess := tableWith(t, [][]string{{"2C", "3D", "4H"}, {"2H"}, {"3C"}}, nil)

	assert.Equal(t, 2, ChooseDiscard(sess, 0, nil), "ties go to the latest card")
	assert.Equal(t, 0, ChooseDiscard(sess, 0, []DiscardRule{&fixedRule{scores: []float64{5, 1, 1}}}))
	assert.Equal(t, 2, ChooseDiscard(sess, 0, []DiscardRule{&HighPointsRule{Weight: 1}}))
}

func TestKeepPartnersRule(t *testing.T) {
	sess := tableWith(t, [][]string{{"7S", "7H", "9S", "KD"}, {"2H"}, {"3C"}}, nil)
	ctx := &DiscardContext{Session: sess, Seat: 0, Hand: sess.Players[0].Hand, Scores: make([]float64, 4)}

	(&KeepPartnersRule{Weight: 1}).Apply(ctx)
	assert.Equal(t, []float64{-2, -1, -1, 0}, ctx.Scores)
	assert.Equal(t, 1, ctx.NextSeat())
}
