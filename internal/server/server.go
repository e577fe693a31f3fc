package server

import (
	"arcade/tictactoe/internal/api/controller"
	"arcade/tictactoe/internal/hub"
	"arcade/tictactoe/internal/player"
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("server")

type Server struct {
	hub            *hub.Hub
	gameController *controller.GameController
	upgrader       websocket.Upgrader
	engine         *gin.Engine
}

func NewServer(h *hub.Hub, gameController *controller.GameController) *Server {
	s := &Server{
		hub:            h,
		gameController: gameController,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		engine: gin.New(),
	}
	s.engine.Use(gin.Recovery())
	s.registerHandlers()
	return s
}

// Engine exposes the gin engine as an http.Handler.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerHandlers() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine.GET("/ws", s.handleWebSocket)

	api := s.engine.Group("/api")
	{
		api.GET("/session", s.gameController.Session)
		api.DELETE("/session", s.gameController.Leave)
		api.POST("/games", s.gameController.NewGame)
		api.POST("/games/restart", s.gameController.Restart)
		api.POST("/moves", s.gameController.Move)
		api.POST("/online/host", s.gameController.Host)
		api.POST("/online/join", s.gameController.Join)
		api.GET("/stats", s.gameController.Stats)
		api.DELETE("/stats", s.gameController.ResetStats)
	}
}

// handleWebSocket upgrades the connection and attaches it to the hub as a
// viewer. The viewer's pumps outlive the request.
func (s *Server) handleWebSocket(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "server.handleWebSocket", trace.WithAttributes(
		attribute.String("http.url", c.Request.URL.String()),
		attribute.String("http.method", c.Request.Method),
	))
	defer span.End()

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to upgrade connection", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to upgrade connection")
		return
	}

	viewerID := c.Query("viewerId")
	if viewerID == "" {
		viewerID = uuid.NewString()
	}
	span.SetAttributes(attribute.String("player.id", viewerID))

	p := player.NewPlayer(viewerID, conn)
	pumpCtx := context.WithoutCancel(ctx)
	go p.WritePump(pumpCtx)
	s.hub.Register(p)
	go s.hub.ReadPump(pumpCtx, p)
}
