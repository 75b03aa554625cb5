package nakama

import (
	"context"
	"database/sql"
	"math/rand"

	"tongits/internal/app"
	"tongits/internal/bot"
	"tongits/internal/config"
	"tongits/internal/domain"
	"tongits/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Tick                 int64                       `json:"tick"`                    // Current tick of the match for bot timing
	Tier                 string                      `json:"tier"`                    // Bet tier the table settles at
	Session              *domain.GameSession         `json:"-"`                       // The table itself
	Presences            map[string]runtime.Presence `json:"-"`                       // Map UserId -> Presence for targeted messaging
	Humans               map[string]bool             `json:"humans"`                  // User IDs seated as people; they settle even after leaving
	App                  *app.Service                `json:"-"`                       // Tongits rules service
	Settlement           domain.SettlementRules      `json:"-"`                       // Chip prices for a finished round
	BotsEnabled          bool                        `json:"bots_enabled"`            // Whether AI players are allowed
	BotMinDelay          int                         `json:"bot_min_delay"`           // Min seconds a bot waits
	BotMaxDelay          int                         `json:"bot_max_delay"`           // Max seconds a bot waits
	BotAutoFillDelay     int                         `json:"bot_auto_fill_delay"`     // Seconds to wait before auto-filling with bots
	BotTuning            bot.Tuning                  `json:"-"`                       // Strategy knobs for every bot at the table
	BotWaitUntil         int64                       `json:"bot_wait_until"`          // Tick when the bot should act
	LastSinglePlayerTick int64                       `json:"last_single_player_tick"` // Tick when a single player started waiting
	Bots                 map[string]*bot.Agent       `json:"-"`                       // Active bot agents
	Economy              ports.EconomyPort           `json:"-"`                       // Interface to Nakama wallet
}

func newMatchState(id, tier string, cfg *config.GameConfig, economy ports.EconomyPort) *MatchState {
	tuning := bot.DefaultTuning
	tuning.CallDrawThreshold = cfg.BotCallDrawThreshold
	return &MatchState{
		Tier:             tier,
		Session:          domain.NewGameSession(id),
		Presences:        make(map[string]runtime.Presence),
		Humans:           make(map[string]bool),
		App:              app.NewService(nil),
		Settlement:       cfg.SettlementRules(tier),
		BotsEnabled:      cfg.BotsEnabled,
		BotMinDelay:      cfg.BotMinDelaySeconds,
		BotMaxDelay:      cfg.BotMaxDelaySeconds,
		BotAutoFillDelay: cfg.BotAutoFillDelaySeconds,
		BotTuning:        tuning,
		Bots:             make(map[string]*bot.Agent),
		Economy:          economy,
	}
}

func (ms *MatchState) GetOpenSeatsCount() int {
	return ms.Session.OpenSeats()
}

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, p := range ms.Session.Players {
		if !p.IsBot {
			count++
		}
	}
	return count
}

// agentFor returns the agent driving a bot seat, creating one for seats that
// were handed over by a leaving player.
func (ms *MatchState) agentFor(userID string) (*bot.Agent, error) {
	if agent, ok := ms.Bots[userID]; ok {
		return agent, nil
	}
	identity, ok := bot.GetBotConfig(userID)
	if !ok {
		identity = bot.BotIdentity{UserID: userID}
		if seat := ms.Session.SeatOf(userID); seat >= 0 {
			identity.DisplayName = ms.Session.Players[seat].DisplayName
		}
	}
	agent, err := bot.NewAgent(identity, ms.BotTuning)
	if err != nil {
		return nil, err
	}
	ms.Bots[userID] = agent
	return agent, nil
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &matchHandler{}, nil
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	// Load bot identities from data folder
	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("MatchInit: Could not load bot identities: %v", err)
	}

	if err := config.LoadGameConfig("data/game_config.yaml"); err != nil {
		logger.Warn("MatchInit: Could not load game config, using defaults: %v", err)
	}

	// Environment variables override the file.
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	cfg := config.GetGameConfig().ApplyEnv(env)

	tier, _ := params["tier"].(string)
	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
	state := newMatchState(matchID, tier, cfg, NewNakamaEconomyAdapter(nk))

	label, err := buildLabel(state.Session, state.Tier)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1 // 1 tick per second; bot delays are counted in ticks
	return state, tickRate, label
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// A player who dropped mid-round may take their seat back from the bot.
	if matchState.Session.SeatOf(presence.GetUserId()) >= 0 {
		return state, true, ""
	}
	if matchState.Session.GameStarted {
		return state, false, "Match in progress"
	}
	if matchState.GetOpenSeatsCount() <= 0 {
		return state, false, "Match full"
	}

	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	var events []app.Event
	for _, p := range presences {
		userID := p.GetUserId()

		if seat := matchState.Session.SeatOf(userID); seat >= 0 {
			matchState.Presences[userID] = p
			matchState.Humans[userID] = true
			matchState.Session.Players[seat].IsBot = false
			delete(matchState.Bots, userID)
			logger.Info("MatchJoin: User %s took back seat %d.", userID, seat)
			continue
		}

		seat, joined, err := matchState.App.AddParticipant(matchState.Session, app.Participant{
			ID:          userID,
			DisplayName: p.GetUsername(),
		})
		if err != nil {
			logger.Warn("MatchJoin: User %s joined but could not be seated: %v", userID, err)
			if err := dispatcher.MatchKick([]runtime.Presence{p}); err != nil {
				logger.Error("MatchJoin: Failed to kick %s: %v", userID, err)
			}
			continue
		}
		matchState.Presences[userID] = p
		matchState.Humans[userID] = true
		events = append(events, joined...)
		logger.Debug("MatchJoin: User %s seated at %d.", userID, seat)
	}

	if started, ok := matchState.App.StartIfFull(matchState.Session); ok {
		events = append(events, started...)
		logger.Info("MatchJoin: Table full, round %d dealt.", matchState.Session.Round)
	}

	mh.dispatchEvents(ctx, matchState, dispatcher, logger, events)
	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastSnapshot(matchState, dispatcher, logger)

	return matchState
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	var events []app.Event
	for _, p := range presences {
		userID := p.GetUserId()
		delete(matchState.Presences, userID)

		left, err := matchState.App.RemoveParticipant(matchState.Session, userID)
		if err != nil {
			logger.Debug("MatchLeave: User %s had no seat: %v", userID, err)
			continue
		}
		events = append(events, left...)

		if matchState.Session.GameStarted {
			if _, err := matchState.agentFor(userID); err != nil {
				logger.Error("MatchLeave: Failed to create agent for %s: %v", userID, err)
			}
			logger.Debug("MatchLeave: User %s left, a bot plays their seat.", userID)
		} else {
			delete(matchState.Humans, userID)
			logger.Debug("MatchLeave: User %s left, seat freed.", userID)
		}
	}

	if matchState.GetHumanPlayerCount() == 0 {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	mh.dispatchEvents(ctx, matchState, dispatcher, logger, events)
	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastSnapshot(matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	// Handle incoming messages
	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpAction:
			mh.handleAction(ctx, matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	// AI Logic
	if matchState.BotsEnabled {
		mh.processBots(ctx, matchState, dispatcher, logger)
	}

	return matchState
}

func (mh *matchHandler) handleAction(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	action, err := app.DecodeAction(msg.GetData())
	if err != nil {
		logger.Warn("handleAction: Bad payload from %s: %v", senderID, err)
		mh.sendRejected(state, dispatcher, logger, senderID, err)
		return
	}

	if err := mh.applyAction(ctx, state, dispatcher, logger, senderID, action); err != nil {
		logger.Warn("handleAction: User %s: %v", senderID, err)
		mh.sendRejected(state, dispatcher, logger, senderID, err)
	}
}

// applyAction runs one action and relays its outcome. Rejections leave the
// table untouched and are returned to the caller.
func (mh *matchHandler) applyAction(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, actorID string, action app.Action) error {
	events, err := state.App.Apply(state.Session, actorID, action)
	if err != nil {
		return err
	}
	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
	mh.broadcastSnapshot(state, dispatcher, logger)
	return nil
}

func (mh *matchHandler) processBots(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	sess := state.Session

	// 1. Auto-fill lobby with bots if there's only one human player after delay
	if !sess.GameStarted {
		if state.GetHumanPlayerCount() == 1 {
			if state.LastSinglePlayerTick == 0 {
				state.LastSinglePlayerTick = state.Tick
				logger.Debug("processBots: Single player detected, starting auto-fill timer.")
			}

			if state.Tick-state.LastSinglePlayerTick >= int64(state.BotAutoFillDelay) {
				mh.fillWithBots(ctx, state, dispatcher, logger)
				state.LastSinglePlayerTick = 0
			}
		} else {
			// Reset timer if 0 or >1 humans
			state.LastSinglePlayerTick = 0
		}
		return
	}

	// 2. Handle bot turns in-game
	current := sess.Current()
	if current == nil || !current.IsBot {
		state.BotWaitUntil = 0
		return
	}

	if state.BotWaitUntil == 0 {
		delay := state.BotMinDelay
		if spread := state.BotMaxDelay - state.BotMinDelay; spread > 0 {
			delay += rand.Intn(spread + 1)
		}
		state.BotWaitUntil = state.Tick + int64(delay)
		logger.Debug("processBots: Bot %s (seat %d) will act at tick %d (current %d)", current.ID, sess.CurrentPlayerIndex, state.BotWaitUntil, state.Tick)
	}
	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0

	agent, err := state.agentFor(current.ID)
	if err != nil {
		logger.Error("processBots: Failed to create agent for %s: %v", current.ID, err)
		return
	}

	action, err := agent.Play(sess)
	if err != nil {
		logger.Error("processBots: Bot %s failed to pick an action: %v", current.ID, err)
		return
	}
	if err := mh.applyAction(ctx, state, dispatcher, logger, current.ID, action); err != nil {
		logger.Error("processBots: Bot %s played an illegal %s: %v", current.ID, action.Type, err)
		return
	}

	// A bot that still holds the turn finishes it on the next tick.
	if next := sess.Current(); next != nil && next.ID == current.ID && !sess.GameEnded {
		state.BotWaitUntil = state.Tick + 1
	}
}

func (mh *matchHandler) fillWithBots(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	sess := state.Session
	identities := bot.PickIdentities(state.GetOpenSeatsCount(), func(userID string) bool {
		return sess.SeatOf(userID) >= 0
	})

	var events []app.Event
	for _, identity := range identities {
		seat, joined, err := state.App.AddParticipant(sess, app.Participant{
			ID:          identity.UserID,
			DisplayName: botDisplayName(identity),
			IsBot:       true,
		})
		if err != nil {
			logger.Error("processBots: Failed to seat bot %s: %v", identity.UserID, err)
			continue
		}
		agent, err := bot.NewAgent(identity, state.BotTuning)
		if err != nil {
			logger.Error("Failed to create bot agent for %s: %v", identity.UserID, err)
		} else {
			state.Bots[identity.UserID] = agent
		}
		events = append(events, joined...)
		logger.Info("processBots: Added bot %s (%s) to seat %d", identity.DisplayName, identity.UserID, seat)
	}
	if len(events) == 0 {
		return
	}

	if started, ok := state.App.StartIfFull(sess); ok {
		events = append(events, started...)
	}
	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
	mh.updateLabel(state, dispatcher, logger)
	mh.broadcastSnapshot(state, dispatcher, logger)
}

// dispatchEvents relays app events to clients and bots, and settles finished rounds.
func (mh *matchHandler) dispatchEvents(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		for _, agent := range state.Bots {
			agent.OnGameEvent(ev)
		}

		data, err := encodeEvent(ev)
		if err != nil {
			logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
			continue
		}
		mh.send(state, dispatcher, logger, OpEvent, data, ev.Recipients)

		switch ev.Kind {
		case app.EventRoundEnded:
			mh.settleRound(ctx, state, dispatcher, logger, ev.Payload.(app.RoundEndedPayload))
			mh.updateLabel(state, dispatcher, logger)
		case app.EventRoundStarted:
			mh.updateLabel(state, dispatcher, logger)
		}
	}
}

// settleRound pays out a finished round and tells every client the result.
func (mh *matchHandler) settleRound(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, p app.RoundEndedPayload) {
	changes := domain.Settle(state.Session, state.Settlement)

	if state.Economy != nil {
		updates := make([]ports.WalletUpdate, 0, len(changes))
		for _, player := range state.Session.Players {
			// Seats handed to a bot mid-round still belong to the person who left.
			if !state.Humans[player.ID] || bot.IsBot(player.ID) {
				continue
			}
			updates = append(updates, ports.WalletUpdate{
				UserID: player.ID,
				Amount: changes[player.ID],
				Metadata: map[string]interface{}{
					"match_id": ctx.Value(runtime.RUNTIME_CTX_MATCH_ID),
					"round":    state.Session.Round,
					"reason":   "round_settlement",
				},
			})
		}
		if err := state.Economy.UpdateBalances(ctx, updates); err != nil {
			logger.Error("Failed to update balances: %v", err)
		}
	}

	data, err := encodeJSON(roundEndedMessage{
		WinnerSeat:     p.WinnerSeat,
		WinnerID:       p.WinnerID,
		Tongits:        p.Tongits,
		Scores:         p.Scores,
		BalanceChanges: changes,
	})
	if err != nil {
		logger.Error("Failed to marshal round result: %v", err)
		return
	}
	mh.send(state, dispatcher, logger, OpRoundEnded, data, nil)
	logger.Info("Round %d ended. Winner seat %d (tongits=%v).", state.Session.Round, p.WinnerSeat, p.Tongits)
}

func (mh *matchHandler) broadcastSnapshot(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	data, err := encodeSnapshot(domain.Snapshot(state.Session))
	if err != nil {
		logger.Error("Failed to marshal snapshot: %v", err)
		return
	}
	mh.send(state, dispatcher, logger, OpSnapshot, data, nil)
}

// send delivers to the listed users, or to everyone when none are listed.
func (mh *matchHandler) send(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, opCode int64, data []byte, userIDs []string) {
	var recipients []runtime.Presence
	if len(userIDs) > 0 {
		for _, uid := range userIDs {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}

		// If we had intended recipients but none are connected (e.g. they are bots),
		// we MUST NOT broadcast to everyone else.
		if len(recipients) == 0 {
			return
		}
	}

	if err := dispatcher.BroadcastMessage(opCode, data, recipients, nil, true); err != nil {
		logger.Error("Failed to send opcode %d: %v", opCode, err)
	}
}

// sendRejected tells a single user why their action was refused.
func (mh *matchHandler) sendRejected(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, cause error) {
	data, err := encodeRejection(cause)
	if err != nil {
		logger.Error("Failed to marshal rejection: %v", err)
		return
	}
	if _, ok := state.Presences[userID]; !ok {
		logger.Warn("Cannot send rejection to %s: Presence not found", userID)
		return
	}
	mh.send(state, dispatcher, logger, OpRejected, data, []string{userID})
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := buildLabel(state.Session, state.Tier)
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: Match terminated with %d grace seconds", graceSeconds)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}

// botDisplayName prefers the provisioned account name over the identity file.
func botDisplayName(identity bot.BotIdentity) string {
	if name := bot.GetBotDisplayName(identity.UserID); name != "" {
		return name
	}
	return identity.DisplayName
}
