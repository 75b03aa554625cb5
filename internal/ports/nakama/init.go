package nakama

import (
	"context"
	"database/sql"

	"tongits/internal/bot"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule wires RPCs and match handlers for Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	if err := RegisterRPCs(initializer); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNameTongits, NewMatch); err != nil {
		return err
	}

	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("InitModule: Bots will use generated identities: %v", err)
	} else {
		bot.ProvisionBots(ctx, nk, logger)
	}

	logger.Info("Tongits Go module loaded.")
	return nil
}
