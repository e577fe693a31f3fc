package hub

import (
	"arcade/tictactoe/internal/apperror"
	"arcade/tictactoe/internal/events"
	"arcade/tictactoe/internal/player"
	"arcade/tictactoe/internal/session"
	"arcade/tictactoe/internal/validator"
	"arcade/tictactoe/pkg/proto"
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// handleEvent applies one inbound relay event. Runs on the loop.
func (h *Hub) handleEvent(ctx context.Context, ev events.Event) {
	_ = h.reconciler.Handle(ctx, ev)
}

// ReadPump reads viewer commands until the connection fails, then
// unregisters the viewer.
func (h *Hub) ReadPump(ctx context.Context, p *player.Player) {
	defer h.Unregister(p)

	for {
		_, msg, err := p.Conn.ReadMessage()
		if err != nil {
			slog.DebugContext(ctx, "Viewer connection closed", "player.id", p.ID, "error", err)
			return
		}
		h.handleViewerMessage(ctx, p, msg)
	}
}

func (h *Hub) handleViewerMessage(ctx context.Context, p *player.Player, rawMessage []byte) {
	ctx, span := tracer.Start(ctx, "hub.handleViewerMessage", trace.WithAttributes(
		attribute.String("player.id", p.ID),
	))
	defer span.End()

	var message proto.ClientToServerMessage
	if err := json.Unmarshal(rawMessage, &message); err != nil {
		slog.WarnContext(ctx, "error unmarshalling viewer message", "player.id", p.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Error unmarshalling message")
		h.reply(p, proto.ServerToClientMessage{Type: proto.TypeError, Reason: "malformed message"})
		return
	}
	if err := validator.GetValidator().Struct(message); err != nil {
		slog.WarnContext(ctx, "invalid message from viewer", "player.id", p.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid message format")
		h.reply(p, proto.ServerToClientMessage{Type: proto.TypeError, Reason: "invalid message"})
		return
	}
	span.SetAttributes(attribute.String("message.type", message.Type))

	err := h.Do(ctx, func(ctx context.Context, c *session.Controller) error {
		switch message.Type {
		case proto.TypeMove:
			return c.Move(ctx, message.Index)
		case proto.TypeRestart:
			return c.Restart(ctx)
		case proto.TypeLeave:
			c.Leave(ctx)
		}
		return nil
	})

	// Rejected moves are dropped silently; the next snapshot says enough.
	if err != nil && !errors.Is(err, apperror.ErrInvalidMove) {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Viewer command failed")
		h.reply(p, proto.ServerToClientMessage{Type: proto.TypeError, Reason: err.Error()})
	}
}

func (h *Hub) reply(p *player.Player, message proto.ServerToClientMessage) {
	data, err := json.Marshal(message)
	if err != nil {
		return
	}
	p.Send(data)
}
