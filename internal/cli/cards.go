package cli

import (
	"fmt"
	"strings"

	"tongits/internal/domain"
)

// parseArgs reads cards given as separate arguments or comma separated lists.
func parseArgs(args []string) ([]domain.Card, error) {
	var values []string
	for _, arg := range args {
		for _, v := range strings.Split(arg, ",") {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("no cards given")
	}
	return domain.ParseCards(values...)
}

func cardStrings(cards []domain.Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.String())
	}
	return out
}
