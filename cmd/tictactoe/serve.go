package main

import (
	"arcade/tictactoe/internal/api/controller"
	"arcade/tictactoe/internal/api/service"
	"arcade/tictactoe/internal/bot"
	"arcade/tictactoe/internal/hub"
	"arcade/tictactoe/internal/scoreboard"
	"arcade/tictactoe/internal/server"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

// tictactoe serve
func Serve(a *app) *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the game over HTTP for a browser or other display",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`serve runs one game session behind an HTTP API. Displays
			drive it with the /api routes and watch it on /ws, which
			pushes a snapshot after every change.

			Networked play uses the relay from the config unless
			--offline is given.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context(), offline)
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "Do not connect to a relay")
	return cmd
}

func (a *app) serve(ctx context.Context, offline bool) error {
	if a.cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	var relay hub.Relay
	if !offline {
		var err error
		if relay, err = a.newRelay(ctx); err != nil {
			return fmt.Errorf("failed to initialize relay: %w", err)
		}
	}

	// Create hub
	scores := scoreboard.New()
	h := hub.NewHub(hub.Config{
		Relay:         relay,
		Calculator:    bot.NewCalculator(nil),
		Recorder:      scores,
		ComputerDelay: a.cfg.Computer.Delay,
	})
	hubCtx, stopHub := context.WithCancel(context.WithoutCancel(ctx))
	defer stopHub()
	go func() { _ = h.Run(hubCtx) }()

	// Create the Gin-based server
	gameController := controller.NewGameController(service.NewGameService(h, scores))
	srv := server.NewServer(h, gameController)

	httpServer := &http.Server{
		Addr:    a.cfg.HTTPAddr,
		Handler: srv.Engine(),
	}

	errc := make(chan error, 1)
	go func() {
		slog.Info("http server started", "http.addr", a.cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	// Graceful shutdown
	select {
	case <-ctx.Done():
	case err := <-errc:
		stopHub()
		<-h.Done()
		return fmt.Errorf("ListenAndServe: %w", err)
	}

	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	stopHub()
	<-h.Done()

	slog.Info("Server exiting")
	return nil
}
