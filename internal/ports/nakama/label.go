package nakama

import (
	"fmt"

	"tongits/internal/domain"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Label keys queried by quick_match.
const (
	MatchLabelKey_OpenSeats = "open"
	MatchLabelKey_Game      = "game"
	MatchLabelKey_Phase     = "phase"
	MatchLabelKey_Tier      = "tier"
)

// buildLabel renders the match label Nakama indexes for MatchList queries.
func buildLabel(sess *domain.GameSession, tier string) (string, error) {
	label, err := structpb.NewStruct(map[string]interface{}{
		MatchLabelKey_OpenSeats: sess.OpenSeats(),
		MatchLabelKey_Game:      MatchLabelGame,
		MatchLabelKey_Phase:     string(sess.Stage()),
		MatchLabelKey_Tier:      tier,
	})
	if err != nil {
		return "", fmt.Errorf("build label: %w", err)
	}
	b, err := (&protojson.MarshalOptions{EmitUnpopulated: true}).Marshal(label)
	if err != nil {
		return "", fmt.Errorf("marshal label: %w", err)
	}
	return string(b), nil
}
