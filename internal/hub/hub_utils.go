package hub

import (
	"arcade/tictactoe/internal/session"
	"arcade/tictactoe/pkg/proto"
	"context"
	"encoding/json"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Render implements session.Display. The controller calls it on the loop.
func (h *Hub) Render(snapshot session.Snapshot) {
	ctx := context.Background()
	if data := h.encodeSnapshot(ctx, snapshot); data != nil {
		h.latest = data
		h.broadcast(ctx, proto.TypeSnapshot, data)
	}
	if h.display != nil {
		h.display.Render(snapshot)
	}
}

// Notify implements session.Display.
func (h *Hub) Notify(notice session.Notice) {
	ctx := context.Background()
	data, err := json.Marshal(proto.ServerToClientMessage{Type: proto.TypeNotice, Reason: notice.Message})
	if err == nil {
		h.broadcast(ctx, proto.TypeNotice, data)
	}
	if h.display != nil {
		h.display.Notify(notice)
	}
}

func (h *Hub) encodeSnapshot(ctx context.Context, snapshot session.Snapshot) []byte {
	data, err := json.Marshal(proto.ServerToClientMessage{Type: proto.TypeSnapshot, Snapshot: &snapshot})
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling snapshot", "error", err)
		return nil
	}
	return data
}

// broadcast queues data for every viewer, dropping those that cannot keep up.
func (h *Hub) broadcast(ctx context.Context, messageType string, data []byte) {
	if len(h.viewers) == 0 {
		return
	}
	_, span := tracer.Start(ctx, "hub.broadcast", trace.WithAttributes(
		attribute.String("message.type", messageType),
		attribute.Int("viewers.count", len(h.viewers)),
	))
	defer span.End()

	for p := range h.viewers {
		if !p.Send(data) {
			slog.WarnContext(ctx, "Viewer queue full, dropping viewer", "player.id", p.ID)
			span.SetStatus(codes.Error, "Dropped slow viewer")
			delete(h.viewers, p)
			p.Close()
		}
	}
}
