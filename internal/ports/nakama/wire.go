package nakama

import (
	"encoding/json"
	"errors"

	"tongits/internal/app"
	"tongits/internal/domain"
)

// eventMessage is the OpEvent payload.
type eventMessage struct {
	Kind    app.EventKind `json:"kind"`
	Payload interface{}   `json:"payload,omitempty"`
}

// rejectedMessage is the OpRejected payload.
type rejectedMessage struct {
	Action app.ActionType `json:"action,omitempty"`
	Reason string         `json:"reason"`
}

// roundEndedMessage is the OpRoundEnded payload.
type roundEndedMessage struct {
	WinnerSeat     int              `json:"winnerSeat"`
	WinnerID       string           `json:"winnerId"`
	Tongits        bool             `json:"tongits"`
	Scores         map[string]int   `json:"scores"`
	BalanceChanges map[string]int64 `json:"balanceChanges"`
}

func encodeJSON(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func encodeSnapshot(snap domain.SessionSnapshot) ([]byte, error) {
	return json.Marshal(snap)
}

func encodeEvent(ev app.Event) ([]byte, error) {
	return json.Marshal(eventMessage{Kind: ev.Kind, Payload: ev.Payload})
}

// encodeRejection describes why an action was refused. Errors that are not
// rule rejections are reported without detail.
func encodeRejection(err error) ([]byte, error) {
	msg := rejectedMessage{Reason: "internal error"}
	var r *app.Rejection
	switch {
	case errors.As(err, &r):
		msg.Action = r.Action
		msg.Reason = r.Reason.Error()
	case errors.Is(err, app.ErrMalformedAction):
		msg.Reason = err.Error()
	}
	return json.Marshal(msg)
}
