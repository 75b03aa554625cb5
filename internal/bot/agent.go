package bot

import (
	"tongits/internal/app"
	"tongits/internal/domain"
)

// Agent represents an autonomous bot player.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// Play asks the agent for its next action in the session.
func (a *Agent) Play(sess *domain.GameSession) (app.Action, error) {
	seat := sess.SeatOf(a.ID)
	if seat < 0 {
		return app.Action{}, ErrNotMyTurn
	}
	return a.Strategy.NextAction(sess, seat)
}

// OnGameEvent notifies the agent of a game event.
func (a *Agent) OnGameEvent(event app.Event) {
	a.Strategy.OnEvent(event)
}
