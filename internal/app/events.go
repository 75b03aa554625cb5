package app

import "tongits/internal/domain"

// EventKind identifies emitted events for transport dispatch.
type EventKind string

const (
	EventPlayerJoined     EventKind = "player_joined"
	EventPlayerLeft       EventKind = "player_left"
	EventRoundStarted     EventKind = "round_started"
	EventCardDrawn        EventKind = "card_drawn"
	EventCardDiscarded    EventKind = "card_discarded"
	EventMeldExposed      EventKind = "meld_exposed"
	EventSapaw            EventKind = "sapaw"
	EventRoundEnded       EventKind = "round_ended"
	EventHandArranged     EventKind = "hand_arranged"
	EventSelectionChanged EventKind = "selection_changed"
	EventMatchReset       EventKind = "match_reset"
)

// Event is an app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

type PlayerJoinedPayload struct {
	UserID string
	Seat   int
}

type PlayerLeftPayload struct {
	UserID string
	Seat   int
	// Automated is set when the seat stays in play under automated control.
	Automated bool
}

type RoundStartedPayload struct {
	Round     int
	FirstSeat int
}

type CardDrawnPayload struct {
	Seat     int
	FromDeck bool
	Card     domain.Card
}

type CardDiscardedPayload struct {
	Seat     int
	Card     domain.Card
	NextSeat int
}

type MeldExposedPayload struct {
	Seat int
	Meld domain.Meld
}

type SapawPayload struct {
	Seat       int
	TargetSeat int
	MeldIndex  int
	Cards      []domain.Card
}

type RoundEndedPayload struct {
	WinnerSeat int
	WinnerID   string
	Tongits    bool
	Scores     map[string]int
}

type HandArrangedPayload struct {
	Seat     int
	Shuffled bool
}

type SelectionChangedPayload struct {
	Indices []int
}
