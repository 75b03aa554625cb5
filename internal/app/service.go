package app

import (
	"math/rand"
	"sync"
	"time"

	"tongits/internal/domain"
)

// Service applies Tongits use-cases to a session. It holds no session state;
// callers own the session and must not apply two actions to it concurrently.
// One Service may serve many sessions at once.
type Service struct {
	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// NewService constructs a Service with provided rng or a time-seeded default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

// Participant is someone asking for a seat.
type Participant struct {
	ID          string
	DisplayName string
	IsBot       bool
}

// AddParticipant seats p in the next free seat of an unstarted session and
// returns the seat index.
func (s *Service) AddParticipant(sess *domain.GameSession, p Participant) (int, []Event, error) {
	if sess.SeatOf(p.ID) >= 0 {
		return -1, nil, ErrAlreadySeated
	}
	if sess.GameStarted {
		return -1, nil, ErrSessionStarted
	}
	if sess.IsFull() {
		return -1, nil, ErrSessionFull
	}

	sess.Players = append(sess.Players, &domain.Player{
		ID:          p.ID,
		DisplayName: p.DisplayName,
		IsBot:       p.IsBot,
	})
	sess.Renumber()
	seat := len(sess.Players) - 1

	return seat, []Event{{
		Kind:    EventPlayerJoined,
		Payload: PlayerJoinedPayload{UserID: p.ID, Seat: seat},
	}}, nil
}

// RemoveParticipant frees the participant's seat before the session starts.
// Once cards are dealt the seat keeps its cards and is handed to automated
// play instead, so the round stays playable.
func (s *Service) RemoveParticipant(sess *domain.GameSession, id string) ([]Event, error) {
	seat := sess.SeatOf(id)
	if seat < 0 {
		return nil, ErrUnknownParticipant
	}

	if sess.GameStarted {
		sess.Players[seat].IsBot = true
		return []Event{{
			Kind:    EventPlayerLeft,
			Payload: PlayerLeftPayload{UserID: id, Seat: seat, Automated: true},
		}}, nil
	}

	sess.Players = append(sess.Players[:seat], sess.Players[seat+1:]...)
	sess.Renumber()
	return []Event{{
		Kind:    EventPlayerLeft,
		Payload: PlayerLeftPayload{UserID: id, Seat: seat},
	}}, nil
}

// StartIfFull deals the first round once every seat is taken. It reports
// whether the session started on this call.
func (s *Service) StartIfFull(sess *domain.GameSession) ([]Event, bool) {
	if sess.GameStarted || len(sess.Players) != domain.PlayersPerSession {
		return nil, false
	}
	sess.Round = 0
	s.deal(sess)
	return []Event{s.roundStarted(sess)}, true
}

// IsEmpty reports whether nobody but automated seats remains.
func (s *Service) IsEmpty(sess *domain.GameSession) bool {
	for _, p := range sess.Players {
		if !p.IsBot {
			return false
		}
	}
	return true
}

// Apply validates and applies one action for the given participant. Rule
// violations return a *Rejection and leave sess untouched.
func (s *Service) Apply(sess *domain.GameSession, actorID string, a Action) ([]Event, error) {
	if !sess.GameStarted {
		return nil, reject(a.Type, ErrNotStarted)
	}
	seat := sess.SeatOf(actorID)
	if seat < 0 {
		return nil, reject(a.Type, ErrUnknownParticipant)
	}
	if seat != sess.CurrentPlayerIndex {
		return nil, reject(a.Type, ErrNotYourTurn)
	}

	switch a.Type {
	case ActionDraw, ActionDiscard, ActionMeld, ActionSapaw, ActionCallDraw:
		if sess.GameEnded {
			return nil, reject(a.Type, ErrRoundOver)
		}
	}

	switch a.Type {
	case ActionDraw:
		return s.draw(sess, seat, a)
	case ActionDiscard:
		return s.discard(sess, seat, a)
	case ActionMeld:
		return s.meld(sess, seat, a)
	case ActionSapaw:
		return s.sapaw(sess, seat, a)
	case ActionCallDraw:
		return s.callDraw(sess)
	case ActionUpdateSelectedIndices:
		return s.updateSelection(sess, a)
	case ActionAutoSort:
		return s.autoSort(sess, seat)
	case ActionShuffle:
		return s.shuffleHand(sess, seat)
	case ActionNextGame:
		return s.nextGame(sess)
	case ActionResetGame:
		return s.resetGame(sess)
	default:
		return nil, reject(a.Type, ErrUnknownAction)
	}
}

func (s *Service) nextGame(sess *domain.GameSession) ([]Event, error) {
	if !sess.GameEnded {
		return nil, reject(ActionNextGame, ErrRoundInProgress)
	}
	sess.Round++
	s.deal(sess)
	return []Event{s.roundStarted(sess)}, nil
}

func (s *Service) resetGame(sess *domain.GameSession) ([]Event, error) {
	sess.Round = 0
	for _, p := range sess.Players {
		p.ConsecutiveWins = 0
	}
	s.deal(sess)
	return []Event{
		{Kind: EventMatchReset},
		s.roundStarted(sess),
	}, nil
}

func (s *Service) deal(sess *domain.GameSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess.DealRound(s.rng)
}

func (s *Service) roundStarted(sess *domain.GameSession) Event {
	return Event{
		Kind:    EventRoundStarted,
		Payload: RoundStartedPayload{Round: sess.Round, FirstSeat: sess.CurrentPlayerIndex},
	}
}

func (s *Service) updateSelection(sess *domain.GameSession, a Action) ([]Event, error) {
	sess.SelectedCardIndices = append([]int{}, a.Indices...)
	return []Event{{
		Kind:    EventSelectionChanged,
		Payload: SelectionChangedPayload{Indices: append([]int{}, a.Indices...)},
	}}, nil
}

func (s *Service) autoSort(sess *domain.GameSession, seat int) ([]Event, error) {
	domain.SortHand(sess.Players[seat].Hand)
	return []Event{{Kind: EventHandArranged, Payload: HandArrangedPayload{Seat: seat}}}, nil
}

func (s *Service) shuffleHand(sess *domain.GameSession, seat int) ([]Event, error) {
	s.mu.Lock()
	domain.Shuffle(sess.Players[seat].Hand, s.rng)
	s.mu.Unlock()
	return []Event{{Kind: EventHandArranged, Payload: HandArrangedPayload{Seat: seat, Shuffled: true}}}, nil
}
