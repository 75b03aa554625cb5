package cli

import (
	"fmt"
	"strings"

	"tongits/internal/domain"

	"github.com/spf13/cobra"
)

// ScoreResult is a hand reduced the way a round end reduces it.
type ScoreResult struct {
	Hand     []string   `json:"hand"`
	Melds    [][]string `json:"melds"`
	Deadwood []string   `json:"deadwood"`
	Points   int        `json:"points"`
}

func (r ScoreResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "hand:     %s\n", strings.Join(r.Hand, " "))
	for _, m := range r.Melds {
		fmt.Fprintf(&b, "meld:     %s\n", strings.Join(m, " "))
	}
	fmt.Fprintf(&b, "deadwood: %s\n", strings.Join(r.Deadwood, " "))
	fmt.Fprintf(&b, "points:   %d", r.Points)
	return b.String()
}

// NewScoreCommand creates the score command.
func NewScoreCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "score <cards...>",
		Short: "Score a hand",
		Long: `Extract melds from a hand and total the deadwood.

Cards are written rank then suit: AS 10D KC, or comma separated.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			hand, err := parseArgs(args)
			if err != nil {
				_ = formatter.Error(ErrCodeInvalidCards, err.Error(), nil)
				return WrapExitError(ExitCommandError, "invalid cards", err)
			}
			return formatter.Success(scoreHand(hand))
		},
	}
}

func scoreHand(hand []domain.Card) ScoreResult {
	s := domain.ScoreHand(hand)
	res := ScoreResult{
		Hand:     cardStrings(hand),
		Melds:    make([][]string, 0, len(s.Melds)),
		Deadwood: cardStrings(s.Deadwood),
		Points:   s.Points,
	}
	for _, m := range s.Melds {
		res.Melds = append(res.Melds, cardStrings(m))
	}
	return res
}
