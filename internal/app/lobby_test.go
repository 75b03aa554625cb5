package app

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"

	"tongits/internal/domain"
	"tongits/internal/ports"
	"tongits/internal/ports/memory"

	"github.com/heroiclabs/nakama-common/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) WithField(string, interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) Fields() map[string]interface{} {
	return nil
}

func newTestLobby() (*Lobby, *memory.SessionStore) {
	store := memory.NewSessionStore()
	lobby := NewLobby(store, NewService(rand.New(rand.NewSource(5))), noopLogger{})
	var n atomic.Int64
	lobby.newID = func() string {
		return fmt.Sprintf("session-%d", n.Add(1))
	}
	return lobby, store
}

func TestLobby_JoinFillsThenOpensNewSession(t *testing.T) {
	ctx := context.Background()
	lobby, store := newTestLobby()

	for i, id := range []string{"a", "b", "c"} {
		res, err := lobby.Join(ctx, Participant{ID: id})
		require.NoError(t, err)
		assert.Equal(t, "session-1", res.SessionID)
		assert.Equal(t, i, res.Seat)
		assert.Equal(t, i == 2, res.Started)
	}

	res, err := lobby.Join(ctx, Participant{ID: "d"})
	require.NoError(t, err)
	assert.Equal(t, "session-2", res.SessionID)
	assert.Zero(t, res.Seat)

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"session-1", "session-2"}, ids)

	snap, err := lobby.Snapshot(ctx, "session-1")
	require.NoError(t, err)
	assert.True(t, snap.GameStarted)
	assert.Equal(t, domain.PhaseOpeningLead, snap.Phase)
}

func TestLobby_ConcurrentJoins(t *testing.T) {
	ctx := context.Background()
	lobby, store := newTestLobby()

	var wg sync.WaitGroup
	for i := 0; i < 9; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := lobby.Join(ctx, Participant{ID: fmt.Sprintf("user-%d", i)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	ids, err := store.List(ctx)
	require.NoError(t, err)
	seated := 0
	for _, id := range ids {
		require.NoError(t, lobby.Inspect(ctx, id, func(s *domain.GameSession) error {
			seated += len(s.Players)
			if s.IsFull() {
				assert.True(t, s.GameStarted)
				assert.NoError(t, domain.CheckConservation(s))
			}
			return nil
		}))
	}
	assert.Equal(t, 9, seated)
}

func TestLobby_Act(t *testing.T) {
	ctx := context.Background()
	lobby, _ := newTestLobby()
	for _, id := range []string{"a", "b", "c"} {
		_, err := lobby.Join(ctx, Participant{ID: id})
		require.NoError(t, err)
	}

	before, err := lobby.Snapshot(ctx, "session-1")
	require.NoError(t, err)

	snap, events, err := lobby.Act(ctx, "session-1", "b", Discard(0))
	requireRejected(t, err, ErrNotYourTurn)
	assert.Empty(t, events)
	assert.Equal(t, before, snap)

	snap, events, err = lobby.Act(ctx, "session-1", "a", Discard(0))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 1, snap.CurrentPlayerIndex)
	assert.Len(t, snap.DiscardPile, 1)

	_, _, err = lobby.Act(ctx, "missing", "a", Discard(0))
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
	assert.False(t, IsRejection(err))
}

func TestLobby_Leave(t *testing.T) {
	ctx := context.Background()
	lobby, store := newTestLobby()

	_, err := lobby.Join(ctx, Participant{ID: "a"})
	require.NoError(t, err)
	_, err = lobby.Join(ctx, Participant{ID: "bot-1", IsBot: true})
	require.NoError(t, err)

	_, err = lobby.Leave(ctx, "session-1", "a")
	require.NoError(t, err)
	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids, "only automated seats were left")

	_, err = lobby.Leave(ctx, "session-1", "a")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestLobby_LeaveStartedSessionKeepsRoundPlayable(t *testing.T) {
	ctx := context.Background()
	lobby, _ := newTestLobby()
	for _, id := range []string{"a", "b", "c"} {
		_, err := lobby.Join(ctx, Participant{ID: id})
		require.NoError(t, err)
	}

	events, err := lobby.Leave(ctx, "session-1", "a")
	require.NoError(t, err)
	require.Len(t, events, 1)

	snap, _, err := lobby.Act(ctx, "session-1", "a", Discard(0))
	require.NoError(t, err, "automated seat still plays its turn")
	assert.True(t, snap.Players[0].IsBot)
}
