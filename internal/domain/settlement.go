package domain

// SettlementRules prices a finished round.
type SettlementRules struct {
	BaseBet           int64
	TongitsMultiplier int64
	SapawedPenalty    int64
}

// Settle computes the chip movement of a finished round keyed by player id.
// Every loser pays the winner the base bet, multiplied for a Tongits finish,
// plus the sapawed penalty when one of their melds was laid off on. The result
// sums to zero. An unfinished round settles to nil.
func Settle(s *GameSession, rules SettlementRules) map[string]int64 {
	winner := s.WinnerPlayer()
	if !s.GameEnded || winner == nil {
		return nil
	}

	stake := rules.BaseBet
	if s.EndedByTongits && rules.TongitsMultiplier > 1 {
		stake *= rules.TongitsMultiplier
	}

	changes := make(map[string]int64, len(s.Players))
	var pot int64
	for i, p := range s.Players {
		if i == s.Winner {
			continue
		}
		owed := stake
		if p.IsSapawed {
			owed += rules.SapawedPenalty
		}
		changes[p.ID] = -owed
		pot += owed
	}
	changes[winner.ID] = pot
	return changes
}
