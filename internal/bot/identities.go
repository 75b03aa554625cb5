package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/heroiclabs/nakama-common/runtime"
)

type BotIdentity struct {
	DeviceID    string `json:"device_id"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Difficulty  string `json:"difficulty"` // "easy", "medium", "hard"
	AvatarIndex int    `json:"avatar_index"`
}

// identityPool is the process-wide bot roster. Match handlers read it while
// ProvisionBots may still be filling in user IDs.
type identityPool struct {
	mu         sync.RWMutex
	identities []BotIdentity
	byUserID   map[string]BotIdentity
}

var (
	pool          = &identityPool{byUserID: make(map[string]BotIdentity)}
	loadOnce      sync.Once
	provisionOnce sync.Once
	loadErr       error
)

// LoadIdentities loads the bot profiles from the given path.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read bot identities: %w", err)
			return
		}
		loadErr = pool.load(data)
	})
	return loadErr
}

func (p *identityPool) load(data []byte) error {
	var identities []BotIdentity
	if err := json.Unmarshal(data, &identities); err != nil {
		return fmt.Errorf("failed to unmarshal bot identities: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.identities = identities
	p.byUserID = make(map[string]BotIdentity, len(identities))
	for _, identity := range identities {
		if identity.UserID != "" {
			p.byUserID[identity.UserID] = identity
		}
	}
	return nil
}

// ProvisionBots ensures that bot accounts exist in the Nakama database and have the is_bot metadata.
func ProvisionBots(ctx context.Context, nk runtime.NakamaModule, logger runtime.Logger) {
	provisionOnce.Do(func() {
		pool.mu.RLock()
		pending := append([]BotIdentity(nil), pool.identities...)
		pool.mu.RUnlock()

		for i := range pending {
			identity := &pending[i]
			if identity.DeviceID == "" {
				continue
			}

			userID, username, _, err := nk.AuthenticateDevice(ctx, identity.DeviceID, identity.Username, true)
			if err != nil {
				logger.Error("ProvisionBots: Failed to authenticate bot %s: %v", identity.Username, err)
				continue
			}
			identity.UserID = userID
			identity.Username = username

			metadata := map[string]interface{}{
				"is_bot":       true,
				"game":         "tongits",
				"difficulty":   identity.Difficulty,
				"avatar_index": identity.AvatarIndex,
			}
			if err := nk.AccountUpdateId(ctx, userID, identity.Username, metadata, identity.DisplayName, "", "", "", ""); err != nil {
				logger.Warn("ProvisionBots: Failed to update bot account %s: %v", userID, err)
			}

			pool.mu.Lock()
			pool.identities[i] = *identity
			pool.byUserID[userID] = *identity
			pool.mu.Unlock()

			logger.Info("ProvisionBots: Bot %s (%s) is ready. Difficulty: %s", identity.DisplayName, userID, identity.Difficulty)
		}
	})
}

// GetBotConfig returns the full identity configuration for a given bot ID.
func GetBotConfig(userID string) (BotIdentity, bool) {
	pool.mu.RLock()
	defer pool.mu.RUnlock()
	identity, ok := pool.byUserID[userID]
	return identity, ok
}

// GetBotDisplayName returns the display name for a bot ID, or an empty string if not a bot.
func GetBotDisplayName(userID string) string {
	identity, ok := GetBotConfig(userID)
	if !ok {
		return ""
	}
	if identity.DisplayName == "" {
		return identity.Username
	}
	return identity.DisplayName
}

// IsBot reports whether the given user ID belongs to the bot pool.
func IsBot(userID string) bool {
	_, ok := GetBotConfig(userID)
	return ok
}

// PickIdentities returns up to n identities whose user IDs are not taken. When
// the pool runs short, synthetic identities fill the rest.
func PickIdentities(n int, taken func(userID string) bool) []BotIdentity {
	pool.mu.RLock()
	candidates := append([]BotIdentity(nil), pool.identities...)
	pool.mu.RUnlock()

	out := make([]BotIdentity, 0, n)
	for _, identity := range candidates {
		if len(out) == n {
			return out
		}
		if identity.UserID == "" || taken(identity.UserID) {
			continue
		}
		out = append(out, identity)
	}
	for i := 0; len(out) < n; i++ {
		id := fmt.Sprintf("bot-%d", i)
		if taken(id) {
			continue
		}
		out = append(out, BotIdentity{UserID: id, DisplayName: fmt.Sprintf("AI Player %d", i+1)})
	}
	return out
}
