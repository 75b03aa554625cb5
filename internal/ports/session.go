package ports

import (
	"context"
	"errors"

	"tongits/internal/domain"
)

// ErrSessionNotFound is returned when no session matches the request.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository owns live sessions for a host. Implementations serialize
// Update calls per session; fn must not retain the session after returning.
type SessionRepository interface {
	// Create stores a new session.
	Create(ctx context.Context, s *domain.GameSession) error

	// FindOpen returns the id of the oldest unstarted session with a free seat,
	// or ErrSessionNotFound.
	FindOpen(ctx context.Context) (string, error)

	// Update runs fn with exclusive access to the session.
	Update(ctx context.Context, id string, fn func(*domain.GameSession) error) error

	// Delete drops the session. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the ids of all stored sessions in creation order.
	List(ctx context.Context) ([]string, error)
}
