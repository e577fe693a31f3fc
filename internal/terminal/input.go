package terminal

import (
	"arcade/tictactoe/internal/apperror"
	"arcade/tictactoe/internal/session"
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// CommandKind is what a typed line asks for.
type CommandKind int

const (
	CommandMove CommandKind = iota
	CommandRestart
	CommandQuit
	CommandHelp
)

// Command is one parsed input line. Index is zero-based.
type Command struct {
	Kind  CommandKind
	Index int
}

var ErrUnknownCommand = errors.New("unknown command")

// ParseCommand reads "1".."9" as a move, plus r(estart), q(uit) and h(elp).
func ParseCommand(line string) (Command, error) {
	word := strings.ToLower(strings.TrimSpace(line))
	switch word {
	case "r", "restart", "again":
		return Command{Kind: CommandRestart}, nil
	case "q", "quit", "exit":
		return Command{Kind: CommandQuit}, nil
	case "h", "help", "?":
		return Command{Kind: CommandHelp}, nil
	}

	n, err := strconv.Atoi(word)
	if err != nil || n < 1 || n > 9 {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, line)
	}
	return Command{Kind: CommandMove, Index: n - 1}, nil
}

const helpText = "Enter 1-9 to play a cell, r to play again, q to quit."

// Runner executes a function against the controller on its owning loop.
type Runner interface {
	Do(ctx context.Context, fn func(ctx context.Context, c *session.Controller) error) error
}

// Loop feeds lines from in to the controller until quit, end of input or
// ctx is done. Rejected moves are dropped without a message.
func Loop(ctx context.Context, in io.Reader, runner Runner, r *Renderer) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			if strings.TrimSpace(line) == "" {
				continue
			}

			cmd, err := ParseCommand(line)
			if err != nil {
				r.Println(helpText)
				continue
			}

			switch cmd.Kind {
			case CommandQuit:
				return
			case CommandHelp:
				r.Println(helpText)
				continue
			}

			err = runner.Do(ctx, func(ctx context.Context, c *session.Controller) error {
				if cmd.Kind == CommandRestart {
					return c.Restart(ctx)
				}
				return c.Move(ctx, cmd.Index)
			})
			switch {
			case err == nil, errors.Is(err, apperror.ErrInvalidMove):
			case errors.Is(err, apperror.ErrRemoteAuthority):
				r.Println("Rematches are started by the game server.")
			case ctx.Err() != nil:
				return
			default:
				r.Println("!", err)
			}
		}
	}
}
