package cli

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strings"

	"tongits/internal/app"
	"tongits/internal/bot"
	"tongits/internal/config"
	"tongits/internal/domain"
	"tongits/internal/logging"
	"tongits/internal/ports"
	"tongits/internal/ports/memory"

	"github.com/heroiclabs/nakama-common/runtime"
	"github.com/spf13/cobra"
)

// maxActionsPerRound stops a simulation whose bots never finish a round.
const maxActionsPerRound = 2000

// PlayOptions holds flags for the play command.
type PlayOptions struct {
	Rounds int
	Seed   int64
	Strict bool
	Level  string
	Tier   string
}

// RoundResult is one finished round.
type RoundResult struct {
	Round   int              `json:"round"`
	Winner  string           `json:"winner"`
	Tongits bool             `json:"tongits"`
	Scores  map[string]int   `json:"scores"`
	Chips   map[string]int64 `json:"chips"`
	Actions int              `json:"actions"`
}

// PlayResult is the outcome of a simulated match.
type PlayResult struct {
	Players  []string         `json:"players"`
	Rounds   []RoundResult    `json:"rounds"`
	Balances map[string]int64 `json:"balances"`
	Streaks  map[string]int   `json:"streaks"` // consecutive wins at the end
}

func (r PlayResult) String() string {
	var b strings.Builder
	for _, round := range r.Rounds {
		how := "draw"
		if round.Tongits {
			how = "tongits"
		}
		fmt.Fprintf(&b, "round %d: %s wins by %s after %d actions\n", round.Round, round.Winner, how, round.Actions)
		for _, id := range r.Players {
			fmt.Fprintf(&b, "  %-6s points %3d  chips %+d\n", id, round.Scores[id], round.Chips[id])
		}
	}
	b.WriteString("balances:")
	for _, id := range r.Players {
		fmt.Fprintf(&b, " %s %+d", id, r.Balances[id])
	}
	b.WriteString("\nstreaks:")
	for _, id := range r.Players {
		fmt.Fprintf(&b, " %s %d", id, r.Streaks[id])
	}
	return b.String()
}

// NewPlayCommand creates the play command.
func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlayOptions{}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play bot-only rounds",
		Long: `Seat three bots through the lobby and play rounds until the requested
number has finished. Chips are settled after every round.

With --strict every card is accounted for after each action.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), rootOpts, opts, newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr()))
		},
	}

	cmd.Flags().IntVarP(&opts.Rounds, "rounds", "n", 1, "rounds to play")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 1, "shuffle seed")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "check card conservation after every action")
	cmd.Flags().StringVar(&opts.Level, "level", "medium", "bot difficulty (easy|medium|hard)")
	cmd.Flags().StringVar(&opts.Tier, "tier", "", "bet tier to settle at (default tier when empty)")

	return cmd
}

func runPlay(ctx context.Context, rootOpts *RootOptions, opts *PlayOptions, formatter *OutputFormatter) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Rounds < 1 {
		_ = formatter.Error(ErrCodePlay, "--rounds must be at least 1", nil)
		return NewExitError(ExitCommandError, "invalid rounds")
	}

	cfg, err := loadConfig(rootOpts.ConfigPath)
	if err != nil {
		_ = formatter.Error(ErrCodeConfig, err.Error(), nil)
		return WrapExitError(ExitCommandError, "load config", err)
	}
	cfg = cfg.ApplyEnv(environ())

	logger := logging.New(formatter.GetErrWriter(), rootOpts.Verbose)
	sim, err := newSimulation(cfg, opts, logger)
	if err != nil {
		_ = formatter.Error(ErrCodePlay, err.Error(), nil)
		return WrapExitError(ExitCommandError, "set up table", err)
	}

	res, err := sim.run(ctx)
	if err != nil {
		_ = formatter.Error(ErrCodePlay, err.Error(), nil)
		return WrapExitError(ExitFailure, "play", err)
	}
	return formatter.Success(res)
}

func loadConfig(path string) (*config.GameConfig, error) {
	if path == "" {
		return config.DefaultGameConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return config.Parse(data)
}

// environ returns the process environment as a map for GameConfig.ApplyEnv.
func environ() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}

// simulation drives one bot-only table through the lobby.
type simulation struct {
	store  *memory.SessionStore
	lobby  *app.Lobby
	ledger *memory.Ledger
	agents map[string]*bot.Agent
	order  []string
	rules  domain.SettlementRules
	opts   *PlayOptions
	logger runtime.Logger
}

func newSimulation(cfg *config.GameConfig, opts *PlayOptions, logger runtime.Logger) (*simulation, error) {
	tuning := bot.DefaultTuning
	tuning.CallDrawThreshold = cfg.BotCallDrawThreshold

	store := memory.NewSessionStore()
	s := &simulation{
		store:  store,
		lobby:  app.NewLobby(store, app.NewService(rand.New(rand.NewSource(opts.Seed))), logger),
		ledger: memory.NewLedger(),
		agents: make(map[string]*bot.Agent),
		rules:  cfg.SettlementRules(opts.Tier),
		opts:   opts,
		logger: logger,
	}
	for i := 1; i <= domain.PlayersPerSession; i++ {
		agent, err := bot.NewAgent(bot.BotIdentity{
			UserID:      fmt.Sprintf("bot-%d", i),
			DisplayName: fmt.Sprintf("Bot %d", i),
			Difficulty:  opts.Level,
		}, tuning)
		if err != nil {
			return nil, err
		}
		s.agents[agent.ID] = agent
		s.order = append(s.order, agent.ID)
	}
	return s, nil
}

func (s *simulation) run(ctx context.Context) (PlayResult, error) {
	var sessionID string
	for _, id := range s.order {
		joined, err := s.lobby.Join(ctx, app.Participant{ID: id, DisplayName: s.agents[id].Name, IsBot: true})
		if err != nil {
			return PlayResult{}, fmt.Errorf("seat %s: %w", id, err)
		}
		sessionID = joined.SessionID
		s.notify(joined.Events)
	}

	res := PlayResult{Players: s.order}
	actions := 0
	for len(res.Rounds) < s.opts.Rounds {
		if err := ctx.Err(); err != nil {
			return PlayResult{}, err
		}
		if actions >= maxActionsPerRound {
			return PlayResult{}, fmt.Errorf("round %d did not finish after %d actions", len(res.Rounds), actions)
		}

		actorID, action, err := s.nextAction(ctx, sessionID)
		if err != nil {
			return PlayResult{}, err
		}
		_, events, err := s.lobby.Act(ctx, sessionID, actorID, action)
		if err != nil {
			return PlayResult{}, fmt.Errorf("%s played %s: %w", actorID, action.Type, err)
		}
		actions++

		if s.opts.Strict {
			if err := s.lobby.Inspect(ctx, sessionID, domain.CheckConservation); err != nil {
				return PlayResult{}, fmt.Errorf("after %s by %s: %w", action.Type, actorID, err)
			}
		}

		s.notify(events)
		for _, ev := range events {
			if ev.Kind != app.EventRoundEnded {
				continue
			}
			round, err := s.settle(ctx, sessionID, ev.Payload.(app.RoundEndedPayload))
			if err != nil {
				return PlayResult{}, err
			}
			round.Actions = actions
			actions = 0
			res.Rounds = append(res.Rounds, round)
		}
	}

	res.Balances = s.ledger.Balances()

	final, err := s.lobby.Snapshot(ctx, sessionID)
	if err != nil {
		return PlayResult{}, err
	}
	res.Streaks = make(map[string]int, len(final.Players))
	for _, p := range final.Players {
		res.Streaks[p.ID] = p.ConsecutiveWins
	}

	if err := s.close(ctx, sessionID); err != nil {
		return PlayResult{}, err
	}
	return res, nil
}

// close walks every bot away from the table. The lobby drops the session once
// no person is seated, which --strict verifies.
func (s *simulation) close(ctx context.Context, sessionID string) error {
	if _, err := s.lobby.Leave(ctx, sessionID, s.order[0]); err != nil {
		return fmt.Errorf("close table: %w", err)
	}
	if !s.opts.Strict {
		return nil
	}
	ids, err := s.store.List(ctx)
	if err != nil {
		return err
	}
	if len(ids) > 0 {
		return fmt.Errorf("sessions left open after play: %v", ids)
	}
	return nil
}

// nextAction asks the seat to move for its bot's choice.
func (s *simulation) nextAction(ctx context.Context, sessionID string) (string, app.Action, error) {
	var (
		actorID string
		action  app.Action
	)
	err := s.lobby.Inspect(ctx, sessionID, func(sess *domain.GameSession) error {
		current := sess.Current()
		if current == nil {
			return fmt.Errorf("session %s has no current seat", sessionID)
		}
		agent, ok := s.agents[current.ID]
		if !ok {
			return fmt.Errorf("no bot for %s", current.ID)
		}
		a, err := agent.Play(sess)
		if err != nil {
			return fmt.Errorf("%s: %w", current.ID, err)
		}
		actorID, action = current.ID, a
		return nil
	})
	return actorID, action, err
}

func (s *simulation) notify(events []app.Event) {
	for _, ev := range events {
		for _, agent := range s.agents {
			agent.OnGameEvent(ev)
		}
	}
}

func (s *simulation) settle(ctx context.Context, sessionID string, p app.RoundEndedPayload) (RoundResult, error) {
	var (
		round   int
		changes map[string]int64
	)
	err := s.lobby.Inspect(ctx, sessionID, func(sess *domain.GameSession) error {
		round = sess.Round
		changes = domain.Settle(sess, s.rules)
		return nil
	})
	if err != nil {
		return RoundResult{}, err
	}

	ids := make([]string, 0, len(changes))
	for id := range changes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	updates := make([]ports.WalletUpdate, 0, len(ids))
	for _, id := range ids {
		updates = append(updates, ports.WalletUpdate{UserID: id, Amount: changes[id]})
	}
	if err := s.ledger.UpdateBalances(ctx, updates); err != nil {
		return RoundResult{}, err
	}

	s.logger.WithFields(map[string]interface{}{
		"round":   round,
		"winner":  p.WinnerID,
		"tongits": p.Tongits,
	}).Info("Round settled.")

	return RoundResult{
		Round:   round,
		Winner:  p.WinnerID,
		Tongits: p.Tongits,
		Scores:  p.Scores,
		Chips:   changes,
	}, nil
}
