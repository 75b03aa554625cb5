package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "quick_match"

	// MatchNameTongits is the authoritative match handler name registered with Nakama.
	MatchNameTongits = "tongits_match"

	// MatchLabelGame identifies our matches in label queries.
	MatchLabelGame = "tongits"

	// WalletCurrency is the wallet key rounds are settled in.
	WalletCurrency = "gold"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpAction int64 = 1 // JSON action, see app.DecodeAction

	// Server -> Client events
	OpSnapshot   int64 = 101 // full session snapshot after every change
	OpEvent      int64 = 102 // one app.Event
	OpRejected   int64 = 103 // send privately
	OpRoundEnded int64 = 104 // scores and chip changes
)
