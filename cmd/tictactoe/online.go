package main

import (
	"arcade/tictactoe/internal/config"
	"arcade/tictactoe/internal/db"
	"arcade/tictactoe/internal/hub"
	"arcade/tictactoe/internal/session"
	"arcade/tictactoe/internal/transport/redisrelay"
	"arcade/tictactoe/internal/transport/wsrelay"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

// tictactoe host
func Host(a *app) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "host",
		Short: "Open a room on the relay and wait for an opponent",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`host asks the relay for a new room and prints its six
			character code. Share the code with your opponent, who runs
			join with it. The host plays X and moves first.

			The relay decides every move and result, so the board only
			changes once the relay confirms a move.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			relay, err := a.newRelay(cmd.Context())
			if err != nil {
				return err
			}
			return a.runInteractive(cmd.Context(), relay, os.Stdin, os.Stdout,
				func(ctx context.Context, c *session.Controller) error {
					return c.Host(ctx, name)
				})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Your display name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

// tictactoe join
func Join(a *app) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "join CODE",
		Short: "Join a room someone else opened",
		Args:  cobra.ExactArgs(1),
		Long: heredoc.Doc(`join enters the room with the given six character code.
			The code is not case sensitive. The joining player plays O.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := session.NormalizeRoomCode(args[0])
			if err != nil {
				return err
			}
			relay, err := a.newRelay(cmd.Context())
			if err != nil {
				return err
			}
			return a.runInteractive(cmd.Context(), relay, os.Stdin, os.Stdout,
				func(ctx context.Context, c *session.Controller) error {
					return c.Join(ctx, code, name)
				})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Your display name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

// newRelay builds the relay transport named by the config. The redis kind
// pings the server up front; the websocket kind dials on first use.
func (a *app) newRelay(ctx context.Context) (hub.Relay, error) {
	switch a.cfg.Relay.Kind {
	case config.RelayRedis:
		rdb, err := db.NewRedisClient(ctx, a.cfg.Relay.Redis.Addr)
		if err != nil {
			return nil, err
		}
		relay := redisrelay.New(rdb)
		slog.DebugContext(ctx, "Using redis relay", "redis.addr", a.cfg.Relay.Redis.Addr, "relay.client_id", relay.ID())
		return relay, nil
	case config.RelayWebSocket:
		slog.DebugContext(ctx, "Using websocket relay", "relay.url", a.cfg.Relay.URL)
		return wsrelay.New(a.cfg.Relay.URL), nil
	}
	return nil, fmt.Errorf("unknown relay kind %q", a.cfg.Relay.Kind)
}
