package session

import (
	"arcade/tictactoe/internal/apperror"
	"arcade/tictactoe/internal/game"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// RoomCodeLength is the number of characters in a relay room code.
const RoomCodeLength = 6

// NormalizeRoomCode uppercases code and checks its length.
func NormalizeRoomCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if utf8.RuneCountInString(code) != RoomCodeLength {
		return "", apperror.ErrInvalidRoomCode
	}
	return code, nil
}

// Host asks the relay for a new room. The session waits in
// StateConnecting until the relay answers with the room code.
func (c *Controller) Host(ctx context.Context, playerName string) error {
	ctx, span := tracer.Start(ctx, "session.Host")
	defer span.End()

	name := strings.TrimSpace(playerName)
	if name == "" {
		return apperror.ErrInvalidName
	}
	if c.channel == nil {
		return apperror.ErrOffline
	}

	c.teardown(ctx, true)
	c.scores = Scores{}
	c.session = newNetworked(RoleHost, name)
	c.session.State = StateConnecting

	if err := c.channel.CreateRoom(ctx, name); err != nil {
		slog.ErrorContext(ctx, "Failed to create room", "player.name", name, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create room")
		c.session = nil
		c.render()
		return fmt.Errorf("create room: %w", err)
	}

	slog.InfoContext(ctx, "Hosting room", "session.id", c.session.ID, "player.name", name)
	c.render()
	return nil
}

// Join asks the relay to seat the local player in an existing room. The
// joining player always plays GuestMark.
func (c *Controller) Join(ctx context.Context, roomCode, playerName string) error {
	ctx, span := tracer.Start(ctx, "session.Join")
	defer span.End()

	name := strings.TrimSpace(playerName)
	if name == "" {
		return apperror.ErrInvalidName
	}
	code, err := NormalizeRoomCode(roomCode)
	if err != nil {
		return err
	}
	if c.channel == nil {
		return apperror.ErrOffline
	}
	span.SetAttributes(attribute.String("room.code", code))

	c.teardown(ctx, true)
	c.scores = Scores{}
	s := newNetworked(RoleGuest, name)
	s.State = StateWaitingForPeer
	s.RoomCode = code
	s.LocalMark = GuestMark
	s.Names.Set(GuestMark, name)
	c.session = s

	if err := c.channel.JoinRoom(ctx, code, name); err != nil {
		slog.ErrorContext(ctx, "Failed to join room", "room.code", code, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to join room")
		c.session = nil
		c.render()
		return fmt.Errorf("join room: %w", err)
	}

	slog.InfoContext(ctx, "Joining room", "session.id", s.ID, "room.code", code)
	c.render()
	return nil
}

func newNetworked(role Role, name string) *GameSession {
	return &GameSession{
		ID:        uuid.NewString(),
		Mode:      ModeNetworked,
		Authority: AuthorityRemote,
		Role:      role,
		LocalName: name,
		Result:    game.Result{Outcome: game.InProgress},
	}
}

// Establish records the room the relay created for a hosting session.
func (c *Controller) Establish(ctx context.Context, roomCode string, mark game.PlayerMark) error {
	s := c.session
	if s == nil || s.Mode != ModeNetworked || s.Role != RoleHost {
		return apperror.ErrNoSession
	}
	if s.State != StateConnecting {
		slog.DebugContext(ctx, "Room already established", "room.code", s.RoomCode)
		return nil
	}

	s.RoomCode = roomCode
	s.LocalMark = mark
	s.Names.Set(mark, s.LocalName)
	s.State = StateWaitingForPeer

	slog.InfoContext(ctx, "Room created", "session.id", s.ID, "room.code", roomCode, "player.mark", mark)
	c.render()
	return nil
}

// StartRemote begins a networked game on an empty board. Participants
// without a mark are seated by position: the first plays X.
func (c *Controller) StartRemote(ctx context.Context, participants []Participant, first game.PlayerMark) error {
	s := c.session
	if s == nil || s.Mode != ModeNetworked {
		return apperror.ErrNoSession
	}
	if s.State == StateConnecting {
		return fmt.Errorf("game started before room was created: %w", apperror.ErrRemoteRejected)
	}

	for i, p := range participants {
		mark := p.Mark
		if mark == game.None {
			mark = game.PlayerX
			if i > 0 {
				mark = game.PlayerO
			}
		}
		s.Names.Set(mark, p.Name)
		if mark != s.LocalMark {
			s.PeerName = p.Name
		}
	}
	if first == game.None {
		first = FirstMark
	}
	c.resetBoard(first)

	slog.InfoContext(ctx, "Networked game started", "session.id", s.ID, "room.code", s.RoomCode, "peer.name", s.PeerName, "game.first", first)
	c.render()
	return nil
}

// ApplyRemoteMove adopts the relay's board snapshot wholesale. A snapshot
// identical to the current board is ignored, so replays are harmless.
func (c *Controller) ApplyRemoteMove(ctx context.Context, board game.Board, next game.PlayerMark, index int) error {
	ctx, span := tracer.Start(ctx, "session.ApplyRemoteMove", trace.WithAttributes(
		attribute.Int("move.index", index),
	))
	defer span.End()

	s := c.session
	if s == nil || s.Mode != ModeNetworked {
		return apperror.ErrNoSession
	}
	span.SetAttributes(attribute.String("room.code", s.RoomCode))

	switch {
	case board == s.Board:
		slog.DebugContext(ctx, "Ignoring duplicate board snapshot", "room.code", s.RoomCode)
		return nil
	case s.State == StateTerminal:
		// gameOver can overtake the final moveMade; take the board but
		// keep the verdict already counted.
		s.Board = board
		if s.Result.Outcome == game.Win && s.Result.Combo == nil {
			s.Result.Combo = game.FindWinningCombo(board, s.Result.Winner)
		}
		slog.DebugContext(ctx, "Adopted final board after game end", "room.code", s.RoomCode, "move.index", index)
		c.render()
		return nil
	case s.State == StateConnecting || s.State == StateWaitingForPeer:
		return fmt.Errorf("move before game start: %w", apperror.ErrRemoteRejected)
	}

	mover := game.None
	if index >= game.BorderMin && index <= game.BorderMax {
		mover = board[index]
	}
	if mover == game.None {
		mover = game.Opponent(next)
	}

	s.Board = board
	c.countMove(ctx, mover)
	if result := game.Evaluate(board, mover); result.IsTerminal() {
		c.conclude(ctx, result)
		c.render()
		return nil
	}

	if next == game.None {
		next = game.Opponent(mover)
	}
	s.Active = next
	s.State = StateAwaitingMove
	c.render()
	return nil
}

// ApplyRemoteGameOver records the relay's verdict. winner is game.None for
// a draw. A verdict for a game already concluded is not counted twice.
func (c *Controller) ApplyRemoteGameOver(ctx context.Context, winner game.PlayerMark) error {
	ctx, span := tracer.Start(ctx, "session.ApplyRemoteGameOver", trace.WithAttributes(
		attribute.String("game.winner", string(winner)),
	))
	defer span.End()

	s := c.session
	if s == nil || s.Mode != ModeNetworked {
		return apperror.ErrNoSession
	}

	if s.State == StateConnecting || s.State == StateWaitingForPeer {
		return fmt.Errorf("game over before game start: %w", apperror.ErrRemoteRejected)
	}

	result := game.DrawResult()
	if winner != game.None {
		result = game.WinResult(winner, game.FindWinningCombo(s.Board, winner))
	}

	if s.State == StateTerminal {
		if s.Result.Outcome != result.Outcome || s.Result.Winner != result.Winner {
			slog.WarnContext(ctx, "Relay verdict differs from board", "room.code", s.RoomCode,
				"game.winner", winner, "board.winner", s.Result.Winner)
		}
		return nil
	}

	c.conclude(ctx, result)
	c.render()
	return nil
}

// Abort surfaces notice and drops the session. When notifyRelay is set the
// relay is told the local player left.
func (c *Controller) Abort(ctx context.Context, notice Notice, notifyRelay bool) {
	ctx, span := tracer.Start(ctx, "session.Abort")
	defer span.End()
	if notice.Err != nil {
		span.SetStatus(codes.Error, notice.Message)
	}

	slog.WarnContext(ctx, "Session aborted", "reason", notice.Message, "error", notice.Err)
	c.display.Notify(notice)
	c.teardown(ctx, notifyRelay)
	c.scores = Scores{}
	c.render()
}
