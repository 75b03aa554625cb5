package memory

import (
	"context"
	"sync"

	"tongits/internal/ports"
)

var _ ports.EconomyPort = (*Ledger)(nil)

// Ledger is an in-process chip ledger for offline play.
type Ledger struct {
	mu       sync.Mutex
	balances map[string]int64
}

func NewLedger() *Ledger {
	return &Ledger{balances: make(map[string]int64)}
}

func (l *Ledger) UpdateBalances(ctx context.Context, updates []ports.WalletUpdate) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, u := range updates {
		l.balances[u.UserID] += u.Amount
	}
	return nil
}

// Balance returns the running total for a user.
func (l *Ledger) Balance(userID string) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[userID]
}

// Balances copies all running totals.
func (l *Ledger) Balances() map[string]int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]int64, len(l.balances))
	for k, v := range l.balances {
		out[k] = v
	}
	return out
}
