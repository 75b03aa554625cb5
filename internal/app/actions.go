package app

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ActionType is the wire discriminator of an Action.
type ActionType string

const (
	ActionDraw                  ActionType = "draw"
	ActionDiscard               ActionType = "discard"
	ActionMeld                  ActionType = "meld"
	ActionSapaw                 ActionType = "sapaw"
	ActionCallDraw              ActionType = "callDraw"
	ActionUpdateSelectedIndices ActionType = "updateSelectedIndices"
	ActionAutoSort              ActionType = "autoSort"
	ActionShuffle               ActionType = "shuffle"
	ActionNextGame              ActionType = "nextGame"
	ActionResetGame             ActionType = "resetGame"
)

// SapawTarget names an exposed meld: the owner's seat index (0-based, same as
// currentPlayerIndex) and the meld's position in that seat's exposed melds.
type SapawTarget struct {
	Seat      int `json:"seat"`
	MeldIndex int `json:"meldIndex"`
}

// Action is one player move. Only the fields used by Type are read.
type Action struct {
	Type        ActionType   `json:"type"`
	FromDeck    bool         `json:"fromDeck,omitempty"`
	MeldIndices []int        `json:"meldIndices,omitempty"`
	CardIndex   *int         `json:"cardIndex,omitempty"`
	CardIndices []int        `json:"cardIndices,omitempty"`
	Target      *SapawTarget `json:"target,omitempty"`
	Indices     []int        `json:"indices,omitempty"`
}

func Draw(fromDeck bool, meldIndices ...int) Action {
	return Action{Type: ActionDraw, FromDeck: fromDeck, MeldIndices: meldIndices}
}

func Discard(cardIndex int) Action {
	return Action{Type: ActionDiscard, CardIndex: &cardIndex}
}

func Meld(cardIndices ...int) Action {
	return Action{Type: ActionMeld, CardIndices: cardIndices}
}

func Sapaw(seat, meldIndex int, cardIndices ...int) Action {
	return Action{Type: ActionSapaw, Target: &SapawTarget{Seat: seat, MeldIndex: meldIndex}, CardIndices: cardIndices}
}

func CallDraw() Action { return Action{Type: ActionCallDraw} }

func SelectIndices(indices ...int) Action {
	return Action{Type: ActionUpdateSelectedIndices, Indices: indices}
}

func AutoSort() Action    { return Action{Type: ActionAutoSort} }
func ShuffleHand() Action { return Action{Type: ActionShuffle} }
func NextGame() Action    { return Action{Type: ActionNextGame} }
func ResetGame() Action   { return Action{Type: ActionResetGame} }

// ErrMalformedAction is returned by DecodeAction for payloads that cannot be
// applied at all.
var ErrMalformedAction = errors.New("malformed action")

// DecodeAction parses the JSON form of an action and checks that the fields
// its type needs are present. Index ranges are checked when applied.
func DecodeAction(data []byte) (Action, error) {
	var a Action
	if err := json.Unmarshal(data, &a); err != nil {
		return Action{}, fmt.Errorf("%w: %v", ErrMalformedAction, err)
	}

	switch a.Type {
	case ActionDiscard:
		if a.CardIndex == nil {
			return Action{}, fmt.Errorf("%w: discard needs cardIndex", ErrMalformedAction)
		}
	case ActionSapaw:
		if a.Target == nil {
			return Action{}, fmt.Errorf("%w: sapaw needs target", ErrMalformedAction)
		}
	case ActionDraw, ActionMeld, ActionCallDraw, ActionUpdateSelectedIndices,
		ActionAutoSort, ActionShuffle, ActionNextGame, ActionResetGame:
	default:
		return Action{}, fmt.Errorf("%w: unknown type %q", ErrMalformedAction, a.Type)
	}
	return a, nil
}
