package bot

// BotLevel selects a strategy.
type BotLevel int

const (
	BotLevelGood BotLevel = iota
	BotLevelSmart
	BotLevelGod
)

// LevelForDifficulty maps identity difficulty labels onto strategies.
func LevelForDifficulty(difficulty string) BotLevel {
	switch difficulty {
	case "hard":
		return BotLevelGod
	case "medium":
		return BotLevelSmart
	default:
		return BotLevelGood
	}
}

// Tuning holds the knobs shared by all levels.
type Tuning struct {
	// CallDrawThreshold is the deadwood total at or below which a bot calls a
	// draw at the start of its turn.
	CallDrawThreshold int
	// MinTurnsBeforeCall keeps bots from calling before they have played.
	MinTurnsBeforeCall int

	PointsWeight  float64
	PartnerWeight float64
	FeedWeight    float64
	BlockPenalty  float64
}

// DefaultTuning is what the factory hands out.
var DefaultTuning = Tuning{
	CallDrawThreshold:  5,
	MinTurnsBeforeCall: 1,
	PointsWeight:       1.0,
	PartnerWeight:      2.5,
	FeedWeight:         6.0,
	BlockPenalty:       100.0,
}
