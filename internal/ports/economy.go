package ports

import "context"

// WalletUpdate represents a single chip change for a user.
type WalletUpdate struct {
	UserID   string
	Amount   int64
	Metadata map[string]interface{}
}

// EconomyPort defines the interface for settling rounds in chips.
type EconomyPort interface {
	// UpdateBalances applies the chip changes of a finished round.
	UpdateBalances(ctx context.Context, updates []WalletUpdate) error
}
