package nakama

import (
	"context"
	"errors"
	"testing"

	"tongits/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockWallet struct {
	calls map[string]map[string]int64
	fail  string
}

func (m *mockWallet) WalletUpdate(ctx context.Context, userID string, changeset map[string]int64, metadata map[string]interface{}, updateLedger bool) (map[string]int64, map[string]int64, error) {
	if userID == m.fail {
		return nil, nil, errors.New("wallet down")
	}
	if m.calls == nil {
		m.calls = make(map[string]map[string]int64)
	}
	m.calls[userID] = changeset
	return nil, changeset, nil
}

func TestNakamaEconomyAdapter(t *testing.T) {
	wallet := &mockWallet{}
	adapter := &NakamaEconomyAdapter{nk: wallet}

	err := adapter.UpdateBalances(context.Background(), []ports.WalletUpdate{
		{UserID: "u1", Amount: 200},
		{UserID: "u2", Amount: 0},
		{UserID: "u3", Amount: -200},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]map[string]int64{
		"u1": {"gold": 200},
		"u3": {"gold": -200},
	}, wallet.calls)

	wallet.fail = "u1"
	err = adapter.UpdateBalances(context.Background(), []ports.WalletUpdate{{UserID: "u1", Amount: 5}})
	assert.ErrorContains(t, err, "u1")
}
