package service

import (
	"arcade/tictactoe/internal/api/models"
	"arcade/tictactoe/internal/bot"
	"arcade/tictactoe/internal/scoreboard"
	"arcade/tictactoe/internal/session"
	"context"
)

// Runner executes a function against the controller on its owning loop.
type Runner interface {
	Do(ctx context.Context, fn func(ctx context.Context, c *session.Controller) error) error
}

// GameService defines the display bridge's operations.
type GameService interface {
	Snapshot(ctx context.Context) (session.Snapshot, error)
	NewGame(ctx context.Context, req *models.NewGameRequest) (session.Snapshot, error)
	Restart(ctx context.Context) (session.Snapshot, error)
	Move(ctx context.Context, index int) (session.Snapshot, error)
	Host(ctx context.Context, req *models.HostRequest) (session.Snapshot, error)
	Join(ctx context.Context, req *models.JoinRequest) (session.Snapshot, error)
	Leave(ctx context.Context) (session.Snapshot, error)
	Stats(ctx context.Context) scoreboard.Stats
	ResetStats(ctx context.Context)
}

type gameService struct {
	runner Runner
	scores *scoreboard.Scoreboard
}

// NewGameService creates a GameService.
func NewGameService(runner Runner, scores *scoreboard.Scoreboard) GameService {
	return &gameService{runner: runner, scores: scores}
}

// apply runs op and returns the snapshot taken right after it, on the loop.
func (s *gameService) apply(ctx context.Context, op func(ctx context.Context, c *session.Controller) error) (session.Snapshot, error) {
	var snap session.Snapshot
	err := s.runner.Do(ctx, func(ctx context.Context, c *session.Controller) error {
		if err := op(ctx, c); err != nil {
			return err
		}
		snap = c.Snapshot()
		return nil
	})
	return snap, err
}

func (s *gameService) Snapshot(ctx context.Context) (session.Snapshot, error) {
	return s.apply(ctx, func(context.Context, *session.Controller) error { return nil })
}

func (s *gameService) NewGame(ctx context.Context, req *models.NewGameRequest) (session.Snapshot, error) {
	opts := session.Options{
		Mode:      session.Mode(req.Mode),
		PlayerOne: req.PlayerOne,
		PlayerTwo: req.PlayerTwo,
	}
	if req.Difficulty != "" {
		difficulty, err := bot.ParseDifficulty(req.Difficulty)
		if err != nil {
			return session.Snapshot{}, err
		}
		opts.Difficulty = difficulty
	}
	return s.apply(ctx, func(ctx context.Context, c *session.Controller) error {
		return c.NewGame(ctx, opts)
	})
}

func (s *gameService) Restart(ctx context.Context) (session.Snapshot, error) {
	return s.apply(ctx, func(ctx context.Context, c *session.Controller) error {
		return c.Restart(ctx)
	})
}

func (s *gameService) Move(ctx context.Context, index int) (session.Snapshot, error) {
	return s.apply(ctx, func(ctx context.Context, c *session.Controller) error {
		return c.Move(ctx, index)
	})
}

func (s *gameService) Host(ctx context.Context, req *models.HostRequest) (session.Snapshot, error) {
	return s.apply(ctx, func(ctx context.Context, c *session.Controller) error {
		return c.Host(ctx, req.PlayerName)
	})
}

func (s *gameService) Join(ctx context.Context, req *models.JoinRequest) (session.Snapshot, error) {
	return s.apply(ctx, func(ctx context.Context, c *session.Controller) error {
		return c.Join(ctx, req.RoomCode, req.PlayerName)
	})
}

func (s *gameService) Leave(ctx context.Context) (session.Snapshot, error) {
	return s.apply(ctx, func(ctx context.Context, c *session.Controller) error {
		c.Leave(ctx)
		return nil
	})
}

func (s *gameService) Stats(ctx context.Context) scoreboard.Stats {
	return s.scores.Stats()
}

func (s *gameService) ResetStats(ctx context.Context) {
	s.scores.Reset()
}
