package memory

import (
	"context"
	"fmt"
	"sync"

	"tongits/internal/domain"
	"tongits/internal/ports"
)

var _ ports.SessionRepository = (*SessionStore)(nil)

type entry struct {
	mu      sync.Mutex
	session *domain.GameSession
	deleted bool
}

// SessionStore keeps sessions in process memory. Each session has its own
// lock, so updates to different tables do not wait on each other.
type SessionStore struct {
	mu      sync.Mutex
	entries map[string]*entry
	order   []string
}

// NewSessionStore returns an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{entries: make(map[string]*entry)}
}

func (st *SessionStore) Create(ctx context.Context, s *domain.GameSession) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.entries[s.ID]; ok {
		return fmt.Errorf("session %s already exists", s.ID)
	}
	st.entries[s.ID] = &entry{session: s}
	st.order = append(st.order, s.ID)
	return nil
}

func (st *SessionStore) FindOpen(ctx context.Context) (string, error) {
	for _, id := range st.snapshotOrder() {
		e := st.lookup(id)
		if e == nil {
			continue
		}
		e.mu.Lock()
		open := !e.deleted && !e.session.GameStarted && !e.session.IsFull()
		e.mu.Unlock()
		if open {
			return id, nil
		}
	}
	return "", ports.ErrSessionNotFound
}

func (st *SessionStore) Update(ctx context.Context, id string, fn func(*domain.GameSession) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e := st.lookup(id)
	if e == nil {
		return fmt.Errorf("%w: %s", ports.ErrSessionNotFound, id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return fmt.Errorf("%w: %s", ports.ErrSessionNotFound, id)
	}
	return fn(e.session)
}

func (st *SessionStore) Delete(ctx context.Context, id string) error {
	st.mu.Lock()
	e, ok := st.entries[id]
	if ok {
		delete(st.entries, id)
		for i, v := range st.order {
			if v == id {
				st.order = append(st.order[:i], st.order[i+1:]...)
				break
			}
		}
	}
	st.mu.Unlock()

	if ok {
		e.mu.Lock()
		e.deleted = true
		e.mu.Unlock()
	}
	return nil
}

func (st *SessionStore) List(ctx context.Context) ([]string, error) {
	return st.snapshotOrder(), nil
}

func (st *SessionStore) lookup(id string) *entry {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.entries[id]
}

func (st *SessionStore) snapshotOrder() []string {
	st.mu.Lock()
	defer st.mu.Unlock()
	return append([]string(nil), st.order...)
}
