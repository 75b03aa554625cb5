package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

// QuickMatchRequest is the optional RPC payload.
type QuickMatchRequest struct {
	Tier string `json:"tier"`
}

// QuickMatchResponse is the payload returned to clients when requesting a lobby-capable match.
type QuickMatchResponse struct {
	MatchID string `json:"match_id"`
	IsNew   bool   `json:"is_new"`
}

// MatchFinder is the slice of runtime.NakamaModule quick_match needs.
type MatchFinder interface {
	MatchList(ctx context.Context, limit int, authoritative bool, label string, minSize, maxSize *int, query string) ([]*api.Match, error)
	MatchCreate(ctx context.Context, module string, params map[string]interface{}) (string, error)
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	return initializer.RegisterRpc(RpcQuickMatch, rpcQuickMatch)
}

func rpcQuickMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	return quickMatch(ctx, logger, nk, payload)
}

// quickMatchQuery finds unstarted tongits tables with a free seat.
func quickMatchQuery(tier string) string {
	clauses := []string{
		fmt.Sprintf("+label.%s:>=1", MatchLabelKey_OpenSeats),
		fmt.Sprintf("+label.%s:%s", MatchLabelKey_Game, MatchLabelGame),
		fmt.Sprintf("+label.%s:lobby", MatchLabelKey_Phase),
	}
	if tier != "" {
		clauses = append(clauses, fmt.Sprintf("+label.%s:%s", MatchLabelKey_Tier, tier))
	}
	return strings.Join(clauses, " ")
}

func quickMatch(ctx context.Context, logger runtime.Logger, nk MatchFinder, payload string) (string, error) {
	var req QuickMatchRequest
	if strings.TrimSpace(payload) != "" {
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			return "", runtime.NewError("invalid quick_match payload", 3) // INVALID_ARGUMENT
		}
	}

	limit := 10
	authoritative := true

	minSize := 1
	maxSize := 2 // a third player would start the round

	matches, err := nk.MatchList(ctx, limit, authoritative, "", &minSize, &maxSize, quickMatchQuery(req.Tier))
	if err != nil {
		logger.Error("MatchList error: %v", err)
		return "", err
	}

	if len(matches) > 0 {
		resp := QuickMatchResponse{MatchID: matches[0].MatchId, IsNew: false}
		b, _ := json.Marshal(resp)
		return string(b), nil
	}

	// Create new match; seating happens in MatchJoin (server-authoritative).
	matchID, err := nk.MatchCreate(ctx, MatchNameTongits, map[string]interface{}{"tier": req.Tier})
	if err != nil {
		logger.Error("MatchCreate error: %v", err)
		return "", err
	}

	resp := QuickMatchResponse{MatchID: matchID, IsNew: true}
	b, _ := json.Marshal(resp)
	return string(b), nil
}
