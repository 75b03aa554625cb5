package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"tongits/internal/domain"
	"tongits/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_CreateAndFindOpen(t *testing.T) {
	ctx := context.Background()
	st := NewSessionStore()

	_, err := st.FindOpen(ctx)
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)

	require.NoError(t, st.Create(ctx, domain.NewGameSession("one")))
	require.NoError(t, st.Create(ctx, domain.NewGameSession("two")))
	assert.Error(t, st.Create(ctx, domain.NewGameSession("one")))

	id, err := st.FindOpen(ctx)
	require.NoError(t, err)
	assert.Equal(t, "one", id)

	require.NoError(t, st.Update(ctx, "one", func(s *domain.GameSession) error {
		s.GameStarted = true
		return nil
	}))
	id, err = st.FindOpen(ctx)
	require.NoError(t, err)
	assert.Equal(t, "two", id)
}

func TestSessionStore_UpdatePropagatesError(t *testing.T) {
	ctx := context.Background()
	st := NewSessionStore()
	require.NoError(t, st.Create(ctx, domain.NewGameSession("one")))

	boom := errors.New("boom")
	err := st.Update(ctx, "one", func(*domain.GameSession) error { return boom })
	assert.ErrorIs(t, err, boom)

	err = st.Update(ctx, "nope", func(*domain.GameSession) error { return nil })
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	err = st.Update(cancelled, "one", func(*domain.GameSession) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSessionStore_Delete(t *testing.T) {
	ctx := context.Background()
	st := NewSessionStore()
	require.NoError(t, st.Create(ctx, domain.NewGameSession("one")))
	require.NoError(t, st.Create(ctx, domain.NewGameSession("two")))

	require.NoError(t, st.Delete(ctx, "one"))
	require.NoError(t, st.Delete(ctx, "one"))

	ids, err := st.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"two"}, ids)

	err = st.Update(ctx, "one", func(*domain.GameSession) error { return nil })
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestSessionStore_UpdatesAreSerialized(t *testing.T) {
	ctx := context.Background()
	st := NewSessionStore()
	require.NoError(t, st.Create(ctx, domain.NewGameSession("one")))

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = st.Update(ctx, "one", func(s *domain.GameSession) error {
				s.Round++
				return nil
			})
		}()
	}
	wg.Wait()

	require.NoError(t, st.Update(ctx, "one", func(s *domain.GameSession) error {
		assert.Equal(t, 100, s.Round)
		return nil
	}))
}

func TestLedger(t *testing.T) {
	ctx := context.Background()
	l := NewLedger()

	require.NoError(t, l.UpdateBalances(ctx, []ports.WalletUpdate{
		{UserID: "a", Amount: 20},
		{UserID: "b", Amount: -10},
		{UserID: "c", Amount: -10},
	}))
	require.NoError(t, l.UpdateBalances(ctx, []ports.WalletUpdate{{UserID: "a", Amount: -5}}))

	assert.Equal(t, int64(15), l.Balance("a"))
	assert.Zero(t, l.Balance("nobody"))
	assert.Equal(t, map[string]int64{"a": 15, "b": -10, "c": -10}, l.Balances())
}
