package bot

import (
	"fmt"
)

// NewBrain creates a new AI brain based on the specified level.
func NewBrain(level BotLevel) (Brain, error) {
	return NewTunedBrain(level, DefaultTuning)
}

// NewTunedBrain creates a brain for level with explicit tuning.
func NewTunedBrain(level BotLevel, tuning Tuning) (Brain, error) {
	switch level {
	case BotLevelGood:
		return &GoodBot{Tuning: tuning}, nil
	case BotLevelSmart:
		return NewSmartBot(tuning), nil
	case BotLevelGod:
		return &GodBot{Tuning: tuning}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}

// NewAgent builds an agent for a pool identity.
func NewAgent(identity BotIdentity, tuning Tuning) (*Agent, error) {
	b, err := NewTunedBrain(LevelForDifficulty(identity.Difficulty), tuning)
	if err != nil {
		return nil, err
	}
	return &Agent{ID: identity.UserID, Name: identity.DisplayName, Strategy: b}, nil
}
