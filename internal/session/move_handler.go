package session

import (
	"arcade/tictactoe/internal/apperror"
	"arcade/tictactoe/internal/game"
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Move handles a local player's request to take a cell. Requests that are
// not legal right now return an error wrapping apperror.ErrInvalidMove and
// leave the state untouched.
func (c *Controller) Move(ctx context.Context, index int) error {
	ctx, span := tracer.Start(ctx, "session.Move", trace.WithAttributes(
		attribute.Int("move.index", index),
	))
	defer span.End()

	s := c.session
	if s == nil {
		return invalid(apperror.ErrNoSession)
	}
	span.SetAttributes(attribute.String("session.id", s.ID), attribute.String("session.mode", string(s.Mode)))

	var err error
	if s.Mode == ModeNetworked {
		err = c.forwardMove(ctx, index)
	} else {
		err = c.playLocal(ctx, index, false)
	}
	if err != nil {
		slog.DebugContext(ctx, "Move rejected", "session.id", s.ID, "move.index", index, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Move rejected")
	}
	return err
}

// playLocal places the active mark for a locally authoritative session.
func (c *Controller) playLocal(ctx context.Context, index int, byComputer bool) error {
	s := c.session
	switch {
	case s.State == StateTerminal:
		return invalid(apperror.ErrGameFinished)
	case s.State != StateAwaitingMove:
		return invalid(apperror.ErrNotYourTurn)
	case s.Mode == ModeComputer && !byComputer && s.Active == ComputerMark:
		return invalid(apperror.ErrNotYourTurn)
	}

	mover := s.Active
	board, err := s.Board.Apply(index, mover)
	if err != nil {
		return err
	}
	s.Board = board
	c.countMove(ctx, mover)

	if result := game.Evaluate(board, mover); result.IsTerminal() {
		c.conclude(ctx, result)
		c.render()
		return nil
	}

	s.Active = game.Opponent(mover)
	if s.Mode == ModeComputer && s.Active == ComputerMark {
		c.scheduleComputer(s.ID)
	}
	c.render()
	return nil
}

// forwardMove sends a networked move to the relay without touching the
// board; the relay's snapshot is applied when it comes back.
func (c *Controller) forwardMove(ctx context.Context, index int) error {
	s := c.session
	switch {
	case s.State == StateTerminal:
		return invalid(apperror.ErrGameFinished)
	case s.State != StateAwaitingMove || s.Active != s.LocalMark:
		return invalid(apperror.ErrNotYourTurn)
	}
	if _, err := s.Board.Apply(index, s.LocalMark); err != nil {
		return err
	}
	if c.channel == nil {
		return apperror.ErrOffline
	}

	if err := c.channel.MakeMove(ctx, s.RoomCode, index); err != nil {
		slog.ErrorContext(ctx, "Failed to forward move", "room.code", s.RoomCode, "move.index", index, "error", err)
		c.Abort(ctx, Notice{Err: apperror.ErrPeerLost, Message: "Connection to the game server was lost."}, false)
		return fmt.Errorf("%w: %w", apperror.ErrPeerLost, err)
	}

	s.State = StateAwaitingRemote
	c.render()
	return nil
}

// scheduleComputer queues the computer's reply for session id.
func (c *Controller) scheduleComputer(id string) {
	c.cancelComputer()
	c.cancelPending = c.scheduler.AfterFunc(c.delay, func() {
		c.playComputer(id)
	})
}

func (c *Controller) cancelComputer() {
	if c.cancelPending != nil {
		c.cancelPending()
		c.cancelPending = nil
	}
}

// playComputer runs when the computer's delay expires. The callback is
// discarded if the session it was scheduled for is gone or has moved on.
func (c *Controller) playComputer(id string) {
	ctx, span := tracer.Start(context.Background(), "session.playComputer", trace.WithAttributes(
		attribute.String("session.id", id),
	))
	defer span.End()

	s := c.session
	if s == nil || s.ID != id {
		slog.DebugContext(ctx, "Dropping computer move for stale session", "session.id", id)
		return
	}
	c.cancelPending = nil
	if s.State != StateAwaitingMove || s.Active != ComputerMark {
		return
	}

	index, err := c.calculator.CalculateNextMove(ctx, s.Board, ComputerMark, s.Difficulty)
	if err != nil {
		slog.ErrorContext(ctx, "Computer could not move", "session.id", id, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Computer could not move")
		return
	}
	if err := c.playLocal(ctx, index, true); err != nil {
		slog.ErrorContext(ctx, "Computer move rejected", "session.id", id, "move.index", index, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Computer move rejected")
	}
}

func invalid(reason error) error {
	return fmt.Errorf("%w: %w", apperror.ErrInvalidMove, reason)
}
