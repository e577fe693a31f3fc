package online

import (
	"arcade/tictactoe/internal/apperror"
	"arcade/tictactoe/internal/events"
	"arcade/tictactoe/internal/game"
	"arcade/tictactoe/internal/session"
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer("online")
	meter  = otel.Meter("online")
)

const (
	opponentLeftMessage   = "Your opponent left the game."
	connectionLostMessage = "Connection to the game server was lost."
)

// Target is the part of the turn controller that relay events drive.
type Target interface {
	Establish(ctx context.Context, roomCode string, mark game.PlayerMark) error
	StartRemote(ctx context.Context, participants []session.Participant, first game.PlayerMark) error
	ApplyRemoteMove(ctx context.Context, board game.Board, next game.PlayerMark, index int) error
	ApplyRemoteGameOver(ctx context.Context, winner game.PlayerMark) error
	Abort(ctx context.Context, notice session.Notice, notifyRelay bool)
}

// Reconciler translates inbound relay events into controller calls. It
// holds no game state of its own.
type Reconciler struct {
	target   Target
	received metric.Int64Counter
}

// NewReconciler creates a reconciler driving target.
func NewReconciler(target Target) *Reconciler {
	received, err := meter.Int64Counter("tictactoe.relay.events",
		metric.WithDescription("Relay events received by type"))
	if err != nil {
		otel.Handle(err)
	}
	return &Reconciler{target: target, received: received}
}

// Handle applies one inbound event. Malformed payloads are logged and
// dropped; the returned error is informational.
func (r *Reconciler) Handle(ctx context.Context, ev events.Event) error {
	ctx, span := tracer.Start(ctx, "online.Handle", trace.WithAttributes(
		attribute.String("event.type", ev.Type),
	))
	defer span.End()

	if r.received != nil {
		r.received.Add(ctx, 1, metric.WithAttributes(attribute.String("event.type", ev.Type)))
	}

	err := r.dispatch(ctx, ev)
	if err != nil {
		slog.WarnContext(ctx, "Relay event not applied", "event.type", ev.Type, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Relay event not applied")
	}
	return err
}

func (r *Reconciler) dispatch(ctx context.Context, ev events.Event) error {
	switch ev.Type {
	case events.RoomCreated:
		payload, err := events.Decode[events.RoomCreatedPayload](ev)
		if err != nil {
			return err
		}
		return r.target.Establish(ctx, payload.RoomCode, payload.Symbol)

	case events.PlayerJoined:
		payload, err := events.Decode[events.PlayerJoinedPayload](ev)
		if err != nil {
			return err
		}
		if len(payload.Players) < 2 {
			slog.DebugContext(ctx, "Room not full yet", "players", len(payload.Players))
			return nil
		}
		return r.target.StartRemote(ctx, participants(payload.Players), session.FirstMark)

	case events.GameStart:
		payload, err := events.Decode[events.GameStartPayload](ev)
		if err != nil {
			return err
		}
		return r.target.StartRemote(ctx, participants(payload.Players), payload.CurrentTurn)

	case events.MoveMade:
		payload, err := events.Decode[events.MoveMadePayload](ev)
		if err != nil {
			return err
		}
		board, ok := game.BoardFromSlice(payload.Board)
		if !ok {
			return fmt.Errorf("%s: board must have %d cells", ev.Type, game.CellCount)
		}
		return r.target.ApplyRemoteMove(ctx, board, payload.CurrentTurn, payload.MoveIndex)

	case events.GameOver:
		payload, err := events.Decode[events.GameOverPayload](ev)
		if err != nil {
			return err
		}
		winner := game.None
		if payload.Winner != events.DrawWinner {
			winner = game.PlayerMark(payload.Winner)
		}
		return r.target.ApplyRemoteGameOver(ctx, winner)

	case events.Error:
		r.target.Abort(ctx, session.Notice{Err: apperror.ErrRemoteRejected, Message: events.DecodeErrorMessage(ev)}, false)
		return nil

	case events.OpponentDisconnected:
		r.target.Abort(ctx, session.Notice{Err: apperror.ErrPeerLost, Message: opponentLeftMessage}, true)
		return nil

	case events.ConnectionLost:
		r.target.Abort(ctx, session.Notice{Err: apperror.ErrPeerLost, Message: connectionLostMessage}, false)
		return nil
	}

	return fmt.Errorf("unknown event type %q", ev.Type)
}

func participants(players []events.Player) []session.Participant {
	out := make([]session.Participant, 0, len(players))
	for _, p := range players {
		out = append(out, session.Participant{Name: p.Name, Mark: p.Symbol})
	}
	return out
}
