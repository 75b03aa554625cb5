package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"tongits/internal/domain"

	"gopkg.in/yaml.v3"
)

type BetTier struct {
	ID      string `yaml:"id"`
	BaseBet int64  `yaml:"base_bet"`
}

type GameConfig struct {
	DefaultTier string    `yaml:"default_tier"`
	Tiers       []BetTier `yaml:"tiers"`
	// TongitsMultiplier scales the base bet when a round ends by Tongits.
	TongitsMultiplier int64 `yaml:"tongits_multiplier"`
	// SapawedPenalty is charged to every loser whose melds were laid off on.
	SapawedPenalty int64 `yaml:"sapawed_penalty"`

	BotsEnabled        bool `yaml:"bots_enabled"`
	BotMinDelaySeconds int  `yaml:"bot_min_delay_seconds"`
	BotMaxDelaySeconds int  `yaml:"bot_max_delay_seconds"`
	// BotAutoFillDelaySeconds configures how many seconds to wait before filling a solo human lobby with bots.
	BotAutoFillDelaySeconds int `yaml:"bot_auto_fill_delay_seconds"`
	// BotCallDrawThreshold is the deadwood total at or below which bots call a draw.
	BotCallDrawThreshold int `yaml:"bot_call_draw_threshold"`
}

// DefaultGameConfig is used when no file is present.
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		DefaultTier: "standard",
		Tiers: []BetTier{
			{ID: "standard", BaseBet: 100},
		},
		TongitsMultiplier:       2,
		SapawedPenalty:          50,
		BotsEnabled:             true,
		BotMinDelaySeconds:      1,
		BotMaxDelaySeconds:      3,
		BotAutoFillDelaySeconds: 5,
		BotCallDrawThreshold:    5,
	}
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path. Only the
// first call reads the file.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		c, err := Parse(data)
		if err != nil {
			loadErr = err
			return
		}
		cfg = c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration, or the defaults when
// none was loaded.
func GetGameConfig() *GameConfig {
	if cfg == nil {
		return DefaultGameConfig()
	}
	return cfg
}

// Parse decodes a YAML document over the defaults. Unknown keys are errors.
func Parse(data []byte) (*GameConfig, error) {
	c := DefaultGameConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to unmarshal game config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks values the rest of the module relies on.
func (c *GameConfig) Validate() error {
	if len(c.Tiers) == 0 {
		return errors.New("game config: at least one bet tier is required")
	}
	if c.TongitsMultiplier < 1 {
		return fmt.Errorf("game config: tongits_multiplier must be >= 1, got %d", c.TongitsMultiplier)
	}
	if c.SapawedPenalty < 0 {
		return fmt.Errorf("game config: sapawed_penalty must be >= 0, got %d", c.SapawedPenalty)
	}
	if c.BotMinDelaySeconds > c.BotMaxDelaySeconds {
		return fmt.Errorf("game config: bot delay range %d..%d is empty", c.BotMinDelaySeconds, c.BotMaxDelaySeconds)
	}
	return nil
}

// BaseBet returns the base bet for a given tier ID, or the default tier's if not found.
func (c *GameConfig) BaseBet(tierID string) int64 {
	target := tierID
	if target == "" {
		target = c.DefaultTier
	}

	for _, tier := range c.Tiers {
		if tier.ID == target {
			return tier.BaseBet
		}
	}

	// Fallback to default tier if specific ID not found
	for _, tier := range c.Tiers {
		if tier.ID == c.DefaultTier {
			return tier.BaseBet
		}
	}

	return 100
}

// ApplyEnv returns a copy of c with runtime environment overrides applied.
// Values that do not parse are ignored.
func (c *GameConfig) ApplyEnv(env map[string]string) *GameConfig {
	out := *c
	out.Tiers = append([]BetTier(nil), c.Tiers...)

	if val, ok := env["tongits_bots_enabled"]; ok {
		out.BotsEnabled = val == "true"
	}
	if val, ok := env["tongits_bot_min_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			out.BotMinDelaySeconds = i
		}
	}
	if val, ok := env["tongits_bot_max_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			out.BotMaxDelaySeconds = i
		}
	}
	if val, ok := env["tongits_bot_auto_fill_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			out.BotAutoFillDelaySeconds = i
		}
	}
	if val, ok := env["tongits_base_bet"]; ok {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil && i > 0 {
			for n := range out.Tiers {
				if out.Tiers[n].ID == out.DefaultTier {
					out.Tiers[n].BaseBet = i
				}
			}
		}
	}

	if out.BotMaxDelaySeconds < out.BotMinDelaySeconds {
		out.BotMaxDelaySeconds = out.BotMinDelaySeconds
	}
	return &out
}

// SettlementRules converts the chip settings for a tier into the values the
// round settlement uses.
func (c *GameConfig) SettlementRules(tierID string) domain.SettlementRules {
	return domain.SettlementRules{
		BaseBet:           c.BaseBet(tierID),
		TongitsMultiplier: c.TongitsMultiplier,
		SapawedPenalty:    c.SapawedPenalty,
	}
}
