package cli

import (
	"fmt"
	"strings"

	"tongits/internal/domain"

	"github.com/spf13/cobra"
)

// ValidationResult reports which meld shapes a card group forms.
type ValidationResult struct {
	Cards []string `json:"cards"`
	Set   bool     `json:"set"`
	Run   bool     `json:"run"`
	Valid bool     `json:"valid"`
}

func (r ValidationResult) String() string {
	kind := "not a meld"
	switch {
	case r.Set:
		kind = "set"
	case r.Run:
		kind = "run"
	}
	return fmt.Sprintf("%s: %s", strings.Join(r.Cards, " "), kind)
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <cards...>",
		Short: "Check whether cards form a meld",
		Long: `Check whether a group of cards is a set (3 or 4 of a rank) or a run
(3 or more consecutive cards of one suit, ace low).

Exits 1 when the cards do not form a meld.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			cards, err := parseArgs(args)
			if err != nil {
				_ = formatter.Error(ErrCodeInvalidCards, err.Error(), nil)
				return WrapExitError(ExitCommandError, "invalid cards", err)
			}

			res := validateMeld(cards)
			if err := formatter.Success(res); err != nil {
				return err
			}
			if !res.Valid {
				return NewExitError(ExitFailure, "not a valid meld")
			}
			return nil
		},
	}
}

func validateMeld(cards []domain.Card) ValidationResult {
	return ValidationResult{
		Cards: cardStrings(cards),
		Set:   domain.IsSet(cards),
		Run:   domain.IsRun(cards),
		Valid: domain.IsValidMeld(cards),
	}
}
