package session

import (
	"arcade/tictactoe/internal/apperror"
	"arcade/tictactoe/internal/bot"
	"arcade/tictactoe/internal/game"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer("session")
	meter  = otel.Meter("session")
)

// DefaultComputerDelay is the pause before the computer answers a move.
const DefaultComputerDelay = 800 * time.Millisecond

// Config wires a Controller to its collaborators. Only Calculator is
// required for computer games and Channel for networked ones.
type Config struct {
	Channel       Channel
	Scheduler     Scheduler
	Calculator    MoveCalculator
	Display       Display
	Recorder      Recorder
	ComputerDelay time.Duration
}

// Options describe a locally hosted game.
type Options struct {
	Mode       Mode
	Difficulty bot.Difficulty
	PlayerOne  string
	PlayerTwo  string
}

// Controller is the turn controller. It owns at most one GameSession and
// is not safe for concurrent use: every method, and every callback handed
// to the Scheduler, must run on one goroutine.
type Controller struct {
	session *GameSession
	scores  Scores

	channel    Channel
	scheduler  Scheduler
	calculator MoveCalculator
	display    Display
	recorder   Recorder
	delay      time.Duration

	cancelPending func()

	movesApplied   metric.Int64Counter
	gamesConcluded metric.Int64Counter
}

// NewController creates a controller sitting at the menu.
func NewController(cfg Config) *Controller {
	c := &Controller{
		channel:    cfg.Channel,
		scheduler:  cfg.Scheduler,
		calculator: cfg.Calculator,
		display:    cfg.Display,
		recorder:   cfg.Recorder,
		delay:      cfg.ComputerDelay,
	}
	if c.scheduler == nil {
		c.scheduler = timerScheduler{}
	}
	if c.display == nil {
		c.display = nopDisplay{}
	}
	if c.recorder == nil {
		c.recorder = nopRecorder{}
	}
	if c.delay <= 0 {
		c.delay = DefaultComputerDelay
	}

	var err error
	c.movesApplied, err = meter.Int64Counter("tictactoe.moves.applied",
		metric.WithDescription("Moves placed on a board"))
	if err != nil {
		otel.Handle(err)
	}
	c.gamesConcluded, err = meter.Int64Counter("tictactoe.games.concluded",
		metric.WithDescription("Games that reached a result"))
	if err != nil {
		otel.Handle(err)
	}
	return c
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	s := c.session
	if s == nil {
		return Snapshot{State: StateMenu, Result: game.Result{Outcome: game.InProgress}, Scores: c.scores}
	}
	return Snapshot{
		SessionID:   s.ID,
		Mode:        s.Mode,
		Difficulty:  s.Difficulty,
		State:       s.State,
		Board:       s.Board,
		Active:      s.Active,
		Result:      s.Result,
		Names:       s.Names,
		Scores:      c.scores,
		Interactive: s.interactive(),
		Role:        s.Role,
		LocalMark:   s.LocalMark,
		PeerName:    s.PeerName,
		RoomCode:    s.RoomCode,
	}
}

// NewGame discards whatever session exists and starts a local game. Series
// scores start over.
func (c *Controller) NewGame(ctx context.Context, opts Options) error {
	ctx, span := tracer.Start(ctx, "session.NewGame", trace.WithAttributes(
		attribute.String("session.mode", string(opts.Mode)),
	))
	defer span.End()

	switch opts.Mode {
	case ModeLocal, ModeComputer:
	default:
		err := fmt.Errorf("unsupported local mode %q", opts.Mode)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Unsupported mode")
		return err
	}
	if opts.Mode == ModeComputer {
		if c.calculator == nil {
			return fmt.Errorf("computer mode needs a move calculator")
		}
		if opts.Difficulty == "" {
			opts.Difficulty = bot.Medium
		}
	}

	c.teardown(ctx, true)
	c.scores = Scores{}

	names := Names{X: orDefault(opts.PlayerOne, DefaultPlayerOne), O: orDefault(opts.PlayerTwo, DefaultPlayerTwo)}
	if opts.Mode == ModeComputer {
		names.O = ComputerName
	}
	c.session = &GameSession{
		ID:         uuid.NewString(),
		Mode:       opts.Mode,
		Difficulty: opts.Difficulty,
		Names:      names,
		Authority:  AuthorityLocal,
	}
	c.resetBoard(FirstMark)

	span.SetAttributes(attribute.String("session.id", c.session.ID))
	slog.InfoContext(ctx, "New game started", "session.id", c.session.ID, "session.mode", opts.Mode, "bot.difficulty", opts.Difficulty)
	c.render()
	return nil
}

// Restart plays the same local pairing again on an empty board, keeping the
// series scores. A pending computer move for the old board is dropped.
func (c *Controller) Restart(ctx context.Context) error {
	s := c.session
	if s == nil {
		return apperror.ErrNoSession
	}
	if s.Authority == AuthorityRemote {
		return apperror.ErrRemoteAuthority
	}

	c.cancelComputer()
	s.ID = uuid.NewString()
	c.resetBoard(FirstMark)

	slog.InfoContext(ctx, "Game restarted", "session.id", s.ID, "session.mode", s.Mode)
	c.render()
	return nil
}

// Leave abandons the session and returns to the menu. In a networked game
// the relay is told that the local player left.
func (c *Controller) Leave(ctx context.Context) {
	ctx, span := tracer.Start(ctx, "session.Leave")
	defer span.End()

	c.teardown(ctx, true)
	c.scores = Scores{}
	c.render()
}

func (c *Controller) resetBoard(first game.PlayerMark) {
	s := c.session
	s.Board = game.Board{}
	s.Active = first
	s.Result = game.Result{Outcome: game.InProgress}
	s.State = StateAwaitingMove
}

// teardown drops the current session. Outstanding scheduled work is
// cancelled and, for networked sessions, the channel is closed.
func (c *Controller) teardown(ctx context.Context, notifyRelay bool) {
	c.cancelComputer()
	s := c.session
	c.session = nil
	if s == nil || s.Mode != ModeNetworked || c.channel == nil {
		return
	}

	if notifyRelay && s.RoomCode != "" {
		if err := c.channel.LeaveRoom(ctx, s.RoomCode); err != nil {
			slog.WarnContext(ctx, "Failed to notify relay about leaving", "room.code", s.RoomCode, "error", err)
		}
	}
	if err := c.channel.Close(); err != nil {
		slog.WarnContext(ctx, "Failed to close relay channel", "room.code", s.RoomCode, "error", err)
	}
	slog.InfoContext(ctx, "Networked session closed", "session.id", s.ID, "room.code", s.RoomCode)
}

// conclude moves the session to its terminal state. It is the only place
// where a result is counted.
func (c *Controller) conclude(ctx context.Context, result game.Result) {
	s := c.session
	s.State = StateTerminal
	s.Result = result
	c.scores.Add(result)

	if c.gamesConcluded != nil {
		c.gamesConcluded.Add(ctx, 1, metric.WithAttributes(
			attribute.String("session.mode", string(s.Mode)),
			attribute.String("game.outcome", string(result.Outcome)),
		))
	}
	slog.InfoContext(ctx, "Game concluded", "session.id", s.ID, "game.outcome", result.Outcome, "game.winner", result.Winner)
	c.recorder.GameConcluded(Conclusion{SessionID: s.ID, Mode: s.Mode, Result: result, Names: s.Names})
}

func (c *Controller) countMove(ctx context.Context, mark game.PlayerMark) {
	if c.movesApplied == nil {
		return
	}
	c.movesApplied.Add(ctx, 1, metric.WithAttributes(
		attribute.String("session.mode", string(c.session.Mode)),
		attribute.String("move.mark", string(mark)),
	))
}

func (c *Controller) render() {
	c.display.Render(c.Snapshot())
}

func orDefault(name, fallback string) string {
	if name = strings.TrimSpace(name); name == "" {
		return fallback
	}
	return name
}
