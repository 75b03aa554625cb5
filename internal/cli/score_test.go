package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreCommand(t *testing.T) {
	t.Run("Text", func(t *testing.T) {
		out, _, err := execute(t, "score", "9S", "9H", "9D", "KC")
		require.NoError(t, err)
		assert.Contains(t, out, "meld:     9S 9H 9D")
		assert.Contains(t, out, "deadwood: KC")
		assert.Contains(t, out, "points:   10")
	})

	t.Run("JSON", func(t *testing.T) {
		out, _, err := execute(t, "--format", "json", "score", "AS,2S,3S", "JD")
		require.NoError(t, err)

		var resp struct {
			Status string      `json:"status"`
			Data   ScoreResult `json:"data"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, [][]string{{"AS", "2S", "3S"}}, resp.Data.Melds)
		assert.Equal(t, []string{"JD"}, resp.Data.Deadwood)
		assert.Equal(t, 10, resp.Data.Points)
	})

	t.Run("BadCard", func(t *testing.T) {
		out, _, err := execute(t, "score", "1Z")
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
		assert.Contains(t, out, ErrCodeInvalidCards)
	})
}

func TestValidateCommand(t *testing.T) {
	tests := []struct {
		name  string
		cards []string
		want  ValidationResult
	}{
		{
			name:  "Run",
			cards: []string{"7H,8H,9H"},
			want:  ValidationResult{Cards: []string{"7H", "8H", "9H"}, Run: true, Valid: true},
		},
		{
			name:  "Set",
			cards: []string{"QS", "QH", "QC", "QD"},
			want:  ValidationResult{Cards: []string{"QS", "QH", "QC", "QD"}, Set: true, Valid: true},
		},
		{
			name:  "MixedSuits",
			cards: []string{"7H", "8S", "9H"},
			want:  ValidationResult{Cards: []string{"7H", "8S", "9H"}},
		},
		{
			name:  "AceIsLowOnly",
			cards: []string{"QS", "KS", "AS"},
			want:  ValidationResult{Cards: []string{"QS", "KS", "AS"}},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			out, _, err := execute(t, append([]string{"--format", "json", "validate"}, test.cards...)...)
			if test.want.Valid {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, ExitFailure, GetExitCode(err))
			}

			var resp struct {
				Data ValidationResult `json:"data"`
			}
			require.NoError(t, json.Unmarshal([]byte(out), &resp))
			assert.Equal(t, test.want, resp.Data)
		})
	}
}

func TestValidationResultString(t *testing.T) {
	assert.Equal(t, "7H 8H 9H: run", validateMeld(mustCards(t, "7H", "8H", "9H")).String())
	assert.Equal(t, "7H 8S: not a meld", validateMeld(mustCards(t, "7H", "8S")).String())
}
