package domain

import "math/rand"

// TurnPhase is where the current seat stands within its turn. Seats other than
// the current one are simply waiting.
type TurnPhase string

const (
	// PhaseAwaitingDraw: the seat must draw before it may discard.
	PhaseAwaitingDraw TurnPhase = "awaiting_draw"
	// PhaseCanAct: the seat has drawn and may meld, lay off or discard.
	PhaseCanAct TurnPhase = "can_act"
	// PhaseOpeningLead: seat 0 at round start holds the 13th card. It may not
	// draw and must discard before the turn passes.
	PhaseOpeningLead TurnPhase = "opening_lead"
)

// Stage is the coarse lifecycle of a session, used for match labels.
type Stage string

const (
	StageLobby   Stage = "lobby"
	StagePlaying Stage = "playing"
	StageEnded   Stage = "ended"
)

// Player is a seated participant and their per-round table state.
type Player struct {
	ID              string `json:"id"`
	DisplayName     string `json:"displayName"`
	SeatNumber      int    `json:"seatNumber"` // 1-based, assignment order
	Hand            []Card `json:"hand"`
	ExposedMelds    []Meld `json:"exposedMelds"`
	SecretMelds     []Meld `json:"secretMelds"`
	Score           int    `json:"score"`
	ConsecutiveWins int    `json:"consecutiveWins"`
	IsSapawed       bool   `json:"isSapawed"`
	TurnsPlayed     int    `json:"turnsPlayed"`
	IsBot           bool   `json:"isBot"`
}

func (p *Player) resetRound() {
	p.Hand = nil
	p.ExposedMelds = nil
	p.SecretMelds = nil
	p.Score = 0
	p.IsSapawed = false
	p.TurnsPlayed = 0
}

// GameSession is the mutable state of one table. It is not safe for
// concurrent use; hosts apply one action at a time.
type GameSession struct {
	ID                  string
	Players             []*Player
	Deck                []Card
	DiscardPile         []Card
	CurrentPlayerIndex  int
	Phase               TurnPhase
	Round               int
	GameEnded           bool
	Winner              int // seat index, -1 while undecided
	SelectedCardIndices []int
	GameStarted         bool
	EndedByTongits      bool
}

// NewGameSession returns an empty, unstarted session.
func NewGameSession(id string) *GameSession {
	return &GameSession{
		ID:                  id,
		Winner:              -1,
		SelectedCardIndices: []int{},
	}
}

// HasDrawnThisTurn mirrors the current seat's draw flag.
func (s *GameSession) HasDrawnThisTurn() bool {
	return s.Phase == PhaseCanAct
}

// FirstPlayerHasPlayed reports whether seat 0 has made its opening discard.
func (s *GameSession) FirstPlayerHasPlayed() bool {
	return s.GameStarted && s.Phase != PhaseOpeningLead
}

// Stage derives the lifecycle stage.
func (s *GameSession) Stage() Stage {
	switch {
	case !s.GameStarted:
		return StageLobby
	case s.GameEnded:
		return StageEnded
	default:
		return StagePlaying
	}
}

// IsFull reports whether every seat is taken.
func (s *GameSession) IsFull() bool {
	return len(s.Players) >= PlayersPerSession
}

// OpenSeats is the number of free seats.
func (s *GameSession) OpenSeats() int {
	if n := PlayersPerSession - len(s.Players); n > 0 {
		return n
	}
	return 0
}

// SeatOf returns the seat index of the participant, or -1.
func (s *GameSession) SeatOf(id string) int {
	for i, p := range s.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Current is the player whose turn it is, or nil before the session starts.
func (s *GameSession) Current() *Player {
	if s.CurrentPlayerIndex < 0 || s.CurrentPlayerIndex >= len(s.Players) {
		return nil
	}
	return s.Players[s.CurrentPlayerIndex]
}

// WinnerPlayer returns the round winner, or nil.
func (s *GameSession) WinnerPlayer() *Player {
	if s.Winner < 0 || s.Winner >= len(s.Players) {
		return nil
	}
	return s.Players[s.Winner]
}

// TopDiscard returns the card on top of the discard pile.
func (s *GameSession) TopDiscard() (Card, bool) {
	if len(s.DiscardPile) == 0 {
		return Card{}, false
	}
	return s.DiscardPile[len(s.DiscardPile)-1], true
}

// DealRound resets per-round state, shuffles a fresh deck and deals. Seat 0
// gets one extra card and opens the round without drawing.
func (s *GameSession) DealRound(rng *rand.Rand) {
	deck := BuildStandardDeck(rng)
	hands, deck := Deal(deck, len(s.Players), HandSize)
	if len(s.Players) > 0 {
		var extra Card
		var ok bool
		if extra, deck, ok = DrawTop(deck); ok {
			hands[0] = append(hands[0], extra)
		}
	}

	for i, p := range s.Players {
		p.resetRound()
		p.Hand = hands[i]
	}
	s.Deck = deck
	s.DiscardPile = nil
	s.CurrentPlayerIndex = 0
	s.Phase = PhaseOpeningLead
	s.GameEnded = false
	s.EndedByTongits = false
	s.Winner = -1
	s.SelectedCardIndices = []int{}
	s.GameStarted = true
}

// Renumber rewrites seat numbers after the player list changes.
func (s *GameSession) Renumber() {
	for i, p := range s.Players {
		p.SeatNumber = i + 1
	}
}
