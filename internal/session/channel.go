package session

import (
	"arcade/tictactoe/internal/bot"
	"arcade/tictactoe/internal/game"
	"context"
	"time"
)

//go:generate mockgen -destination=mocks/mock_session.go -package=mocks arcade/tictactoe/internal/session Channel,Display,Recorder

// Channel carries the outbound half of the relay contract.
type Channel interface {
	CreateRoom(ctx context.Context, playerName string) error
	JoinRoom(ctx context.Context, roomCode, playerName string) error
	MakeMove(ctx context.Context, roomCode string, index int) error
	LeaveRoom(ctx context.Context, roomCode string) error
	Close() error
}

// Scheduler runs fn once after d and returns a func that cancels it. The
// controller expects fn to run on the same goroutine as every other call.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

// MoveCalculator computes the computer's reply.
type MoveCalculator interface {
	CalculateNextMove(ctx context.Context, board game.Board, mark game.PlayerMark, difficulty bot.Difficulty) (int, error)
}

// Display consumes snapshots and notices.
type Display interface {
	Render(snapshot Snapshot)
	Notify(notice Notice)
}

// Recorder consumes finished games, e.g. a stats aggregator.
type Recorder interface {
	GameConcluded(conclusion Conclusion)
}

type nopDisplay struct{}

func (nopDisplay) Render(Snapshot) {}
func (nopDisplay) Notify(Notice)   {}

type nopRecorder struct{}

func (nopRecorder) GameConcluded(Conclusion) {}

// timerScheduler fires on the runtime timer goroutine. It is only safe when
// nothing else touches the controller concurrently.
type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}
