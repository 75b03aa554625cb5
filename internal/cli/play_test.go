package cli

import (
	"encoding/json"
	"testing"

	"tongits/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCards(t *testing.T, values ...string) []domain.Card {
	t.Helper()
	cards, err := domain.ParseCards(values...)
	require.NoError(t, err)
	return cards
}

func playJSON(t *testing.T, args ...string) PlayResult {
	t.Helper()
	out, _, err := execute(t, append([]string{"--format", "json", "play"}, args...)...)
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   PlayResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Equal(t, "ok", resp.Status)
	return resp.Data
}

func TestPlayCommand(t *testing.T) {
	for _, level := range []string{"easy", "medium", "hard"} {
		t.Run(level, func(t *testing.T) {
			res := playJSON(t, "--rounds", "4", "--seed", "7", "--strict", "--level", level)

			require.Len(t, res.Rounds, 4)
			assert.Equal(t, []string{"bot-1", "bot-2", "bot-3"}, res.Players)

			var total int64
			for i, round := range res.Rounds {
				assert.Equal(t, i, round.Round)
				assert.Contains(t, res.Players, round.Winner)
				assert.Positive(t, round.Actions)

				var sum int64
				for _, c := range round.Chips {
					sum += c
				}
				assert.Zero(t, sum, "round %d is not zero-sum", i)
				assert.Positive(t, round.Chips[round.Winner])
			}
			for _, b := range res.Balances {
				total += b
			}
			assert.Zero(t, total)

			last := res.Rounds[len(res.Rounds)-1]
			assert.Positive(t, res.Streaks[last.Winner], "the last winner holds a streak")
			for _, id := range res.Players {
				if id != last.Winner {
					assert.Zero(t, res.Streaks[id])
				}
			}
		})
	}
}

func TestPlayCommand_Deterministic(t *testing.T) {
	a := playJSON(t, "--rounds", "2", "--seed", "42")
	b := playJSON(t, "--rounds", "2", "--seed", "42")
	assert.Equal(t, a, b)
}

func TestPlayCommand_ConfigTier(t *testing.T) {
	res := playJSON(t, "--config", "testdata/game_config.yaml", "--rounds", "2")
	for _, round := range res.Rounds {
		assert.GreaterOrEqual(t, round.Chips[round.Winner], int64(2000), "two losers pay at least the high tier bet")
	}

	res = playJSON(t, "--config", "testdata/game_config.yaml", "--tier", "standard", "--rounds", "1")
	assert.Less(t, res.Rounds[0].Chips[res.Rounds[0].Winner], int64(2000))
}

func TestPlayCommand_Errors(t *testing.T) {
	_, _, err := execute(t, "play", "--rounds", "0")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, _, err = execute(t, "play", "--config", "testdata/missing.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, _, err = execute(t, "play", "--level", "nightmare")
	require.NoError(t, err, "unknown difficulties play as the easiest bot")
}

func TestPlayResultString(t *testing.T) {
	res := PlayResult{
		Players: []string{"a", "b", "c"},
		Rounds: []RoundResult{{
			Round: 0, Winner: "b", Tongits: true, Actions: 30,
			Scores: map[string]int{"a": 12, "b": 0, "c": 7},
			Chips:  map[string]int64{"a": -200, "b": 400, "c": -200},
		}},
		Balances: map[string]int64{"a": -200, "b": 400, "c": -200},
		Streaks:  map[string]int{"b": 1},
	}
	out := res.String()
	assert.Contains(t, out, "round 0: b wins by tongits after 30 actions")
	assert.Contains(t, out, "balances: a -200 b +400 c -200")
	assert.Contains(t, out, "streaks: a 0 b 1 c 0")
}
