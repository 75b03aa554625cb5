package app

import (
	"context"
	"errors"
	"fmt"

	"tongits/internal/domain"
	"tongits/internal/ports"

	"github.com/google/uuid"
	"github.com/heroiclabs/nakama-common/runtime"
)

// Lobby seats arriving participants into sessions kept in a repository and
// routes their actions through the Service one at a time per session.
type Lobby struct {
	sessions ports.SessionRepository
	svc      *Service
	logger   runtime.Logger
	newID    func() string
}

// NewLobby wires a lobby over the given repository.
func NewLobby(sessions ports.SessionRepository, svc *Service, logger runtime.Logger) *Lobby {
	return &Lobby{
		sessions: sessions,
		svc:      svc,
		logger:   logger,
		newID:    uuid.NewString,
	}
}

// JoinResult tells a participant where they were seated.
type JoinResult struct {
	SessionID string
	Seat      int
	Started   bool
	Events    []Event
}

// Join seats p in the oldest open session, creating one when none is open, and
// deals as soon as the table is full.
func (l *Lobby) Join(ctx context.Context, p Participant) (JoinResult, error) {
	for {
		id, err := l.sessions.FindOpen(ctx)
		if errors.Is(err, ports.ErrSessionNotFound) {
			id = l.newID()
			if err := l.sessions.Create(ctx, domain.NewGameSession(id)); err != nil {
				return JoinResult{}, fmt.Errorf("create session: %w", err)
			}
			l.logger.Info("Join: Created session %s for %s.", id, p.ID)
		} else if err != nil {
			return JoinResult{}, fmt.Errorf("find open session: %w", err)
		}

		res := JoinResult{SessionID: id}
		err = l.sessions.Update(ctx, id, func(s *domain.GameSession) error {
			seat, events, err := l.svc.AddParticipant(s, p)
			if err != nil {
				return err
			}
			res.Seat = seat
			res.Events = events
			if started, ok := l.svc.StartIfFull(s); ok {
				res.Started = true
				res.Events = append(res.Events, started...)
			}
			return nil
		})
		// Another participant may have filled or started the table between
		// FindOpen and Update.
		if errors.Is(err, ErrSessionFull) || errors.Is(err, ErrSessionStarted) || errors.Is(err, ports.ErrSessionNotFound) {
			continue
		}
		if err != nil {
			return JoinResult{}, err
		}

		l.logger.WithFields(map[string]interface{}{
			"session": id,
			"user":    p.ID,
			"seat":    res.Seat,
		}).Info("Join: Participant seated.")
		if res.Started {
			l.logger.Info("Join: Session %s started.", id)
		}
		return res, nil
	}
}

// Leave removes the participant and destroys the session once only automated
// seats remain.
func (l *Lobby) Leave(ctx context.Context, sessionID, participantID string) ([]Event, error) {
	var events []Event
	empty := false
	err := l.sessions.Update(ctx, sessionID, func(s *domain.GameSession) error {
		var err error
		events, err = l.svc.RemoveParticipant(s, participantID)
		if err != nil {
			return err
		}
		empty = l.svc.IsEmpty(s)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if empty {
		if err := l.sessions.Delete(ctx, sessionID); err != nil {
			return events, fmt.Errorf("delete session: %w", err)
		}
		l.logger.Info("Leave: Session %s is empty and was removed.", sessionID)
	}
	return events, nil
}

// Act applies an action and returns the snapshot that follows it. A rejected
// action still returns the unchanged snapshot along with the *Rejection.
func (l *Lobby) Act(ctx context.Context, sessionID, participantID string, a Action) (domain.SessionSnapshot, []Event, error) {
	var (
		snap    domain.SessionSnapshot
		events  []Event
		applied error
	)
	err := l.sessions.Update(ctx, sessionID, func(s *domain.GameSession) error {
		events, applied = l.svc.Apply(s, participantID, a)
		snap = domain.Snapshot(s)
		return nil
	})
	if err != nil {
		return domain.SessionSnapshot{}, nil, err
	}
	if applied != nil {
		l.logger.Debug("Act: %s by %s in %s: %v", a.Type, participantID, sessionID, applied)
	}
	return snap, events, applied
}

// Inspect runs fn with exclusive access to the session without applying an
// action. fn must not mutate the session.
func (l *Lobby) Inspect(ctx context.Context, sessionID string, fn func(*domain.GameSession) error) error {
	return l.sessions.Update(ctx, sessionID, fn)
}

// Snapshot returns the current state of a session.
func (l *Lobby) Snapshot(ctx context.Context, sessionID string) (domain.SessionSnapshot, error) {
	var snap domain.SessionSnapshot
	err := l.sessions.Update(ctx, sessionID, func(s *domain.GameSession) error {
		snap = domain.Snapshot(s)
		return nil
	})
	return snap, err
}
