package app

import (
	"errors"
	"fmt"
)

var (
	ErrNotStarted             = errors.New("session not started")
	ErrUnknownParticipant     = errors.New("participant not seated")
	ErrNotYourTurn            = errors.New("not the current seat")
	ErrRoundOver              = errors.New("round already ended")
	ErrRoundInProgress        = errors.New("round still in progress")
	ErrAlreadyDrawn           = errors.New("already drew this turn")
	ErrOpeningLeadMustDiscard = errors.New("opening seat must discard before drawing")
	ErrMustDrawFirst          = errors.New("must draw before discarding")
	ErrDeckEmpty              = errors.New("deck is empty")
	ErrDiscardEmpty           = errors.New("discard pile is empty")
	ErrCannotDrawDiscard      = errors.New("top discard does not complete a meld")
	ErrBadIndex               = errors.New("card index out of range or repeated")
	ErrInvalidMeld            = errors.New("cards do not form a meld")
	ErrUnknownMeld            = errors.New("target meld does not exist")
	ErrUnknownAction          = errors.New("unknown action")

	ErrSessionFull    = errors.New("session is full")
	ErrSessionStarted = errors.New("session already started")
	ErrAlreadySeated  = errors.New("participant already seated")
)

// Rejection reports an action that was refused. The session is left exactly as
// it was, so callers that only relay snapshots can ignore it.
type Rejection struct {
	Action ActionType
	Reason error
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s rejected: %v", r.Action, r.Reason)
}

func (r *Rejection) Unwrap() error {
	return r.Reason
}

func reject(t ActionType, reason error) error {
	return &Rejection{Action: t, Reason: reason}
}

// IsRejection reports whether err is a rule rejection rather than a failure.
func IsRejection(err error) bool {
	var r *Rejection
	return errors.As(err, &r)
}
