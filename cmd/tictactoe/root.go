package main

import (
	"arcade/tictactoe/internal/config"
	"arcade/tictactoe/internal/logger"
	"arcade/tictactoe/internal/telemetry"
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

// app is the state shared by every command once PersistentPreRunE ran.
type app struct {
	cfg      *config.Config
	shutdown telemetry.ShutdownFunc
}

func Root() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "tictactoe",
		Short: "Play tic-tac-toe locally, against the computer or over a relay",
		Long: heredoc.Doc(`tictactoe plays noughts and crosses in the terminal.

			Two players can share one keyboard, one player can face the
			computer at three difficulty levels, or two players can meet
			in a room on a relay server. The serve command exposes the
			same game over HTTP and a websocket snapshot stream.`),
		Args: cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			if cmd.Flag("debug").Changed {
				cfg.LogLevel = "debug"
			}
			a.cfg = cfg

			// Interactive commands keep stdout for the board.
			var logOut io.Writer = os.Stderr
			if cmd.Name() == "serve" {
				logOut = os.Stdout
			}
			if err := logger.InitWriter(logOut, cfg.LogLevel); err != nil {
				return err
			}

			a.shutdown, err = telemetry.InitOtel(cmd.Context(), telemetry.Config{
				Enabled:     cfg.Telemetry.Enabled,
				Endpoint:    cfg.Telemetry.Endpoint,
				ServiceName: cfg.Telemetry.ServiceName,
			})
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.shutdown == nil {
				return
			}
			if err := a.shutdown(context.Background()); err != nil {
				slog.Error("Error shutting down telemetry", "error", err)
			}
		},
	}

	// global flags
	root.PersistentFlags().StringP("config", "c", "", "Path to a YAML config file")
	root.PersistentFlags().BoolP("debug", "d", false, "Log at debug level")

	// Register the various commands.
	root.AddCommand(Play(a))
	root.AddCommand(Host(a))
	root.AddCommand(Join(a))
	root.AddCommand(Serve(a))

	return root
}
