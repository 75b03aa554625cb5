package bot

import (
	"tongits/internal/app"
	"tongits/internal/domain"
)

// Brain is the interface that all bot strategies must implement.
type Brain interface {
	// NextAction picks one action for seat. It is only asked while seat holds
	// the turn, and is asked again after every applied action until the turn
	// passes.
	NextAction(sess *domain.GameSession, seat int) (app.Action, error)
	OnEvent(event app.Event)
}
