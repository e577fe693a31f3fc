package main

import (
	"arcade/tictactoe/internal/bot"
	"arcade/tictactoe/internal/hub"
	"arcade/tictactoe/internal/scoreboard"
	"arcade/tictactoe/internal/session"
	"arcade/tictactoe/internal/terminal"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

// tictactoe play
func Play(a *app) *cobra.Command {
	var (
		difficulty string
		twoPlayer  bool
		playerOne  string
		playerTwo  string
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a local game",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`play starts a game in this terminal. By default you play X
			against the computer, which answers after a short pause.
			With --two-player both marks are played from the same
			keyboard.

			Cells are numbered 1 to 9 from the top left. Type r to
			play again after a game ends and q to quit.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := session.Options{
				Mode:      session.ModeComputer,
				PlayerOne: playerOne,
				PlayerTwo: playerTwo,
			}
			if twoPlayer {
				opts.Mode = session.ModeLocal
			} else {
				level, err := bot.ParseDifficulty(difficulty)
				if err != nil {
					return err
				}
				opts.Difficulty = level
			}

			return a.runInteractive(cmd.Context(), nil, os.Stdin, os.Stdout,
				func(ctx context.Context, c *session.Controller) error {
					return c.NewGame(ctx, opts)
				})
		},
	}

	cmd.Flags().StringVar(&difficulty, "difficulty", string(bot.Medium), "Computer strength: easy, medium or hard")
	cmd.Flags().BoolVar(&twoPlayer, "two-player", false, "Two players on one keyboard")
	cmd.Flags().StringVar(&playerOne, "name", "", "Name of the player using X")
	cmd.Flags().StringVar(&playerTwo, "opponent", "", "Name of the player using O in two-player games")
	return cmd
}

// runInteractive runs a hub with a terminal renderer, starts the session
// with start and feeds stdin to it until the player quits or the session
// falls back to the menu.
func (a *app) runInteractive(ctx context.Context, relay hub.Relay, in io.Reader, out io.Writer, start func(ctx context.Context, c *session.Controller) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	renderer := terminal.NewRenderer(out, terminal.WithSpinner(os.Stderr), terminal.OnMenu(cancel))
	defer renderer.Close()

	scores := scoreboard.New()
	h := hub.NewHub(hub.Config{
		Relay:         relay,
		Calculator:    bot.NewCalculator(nil),
		Recorder:      scores,
		Display:       renderer,
		ComputerDelay: a.cfg.Computer.Delay,
	})
	go func() { _ = h.Run(ctx) }()

	if err := h.Do(ctx, start); err != nil {
		cancel()
		<-h.Done()
		return err
	}

	terminal.Loop(ctx, in, h, renderer)
	cancel()
	<-h.Done()

	if stats := scores.Stats(); stats.Total > 0 {
		fmt.Fprintf(out, "Played %d: X won %d, O won %d, %d drawn.\n", stats.Total, stats.XWins, stats.OWins, stats.Draws)
	}
	return nil
}
