package hub

import (
	"arcade/tictactoe/internal/player"
	"context"
	"log/slog"
)

// Register attaches a viewer. It receives the current snapshot right away
// and every snapshot after that.
func (h *Hub) Register(p *player.Player) {
	select {
	case h.register <- p:
	case <-h.done:
		p.Close()
	}
}

// Unregister detaches a viewer and stops its write pump.
func (h *Hub) Unregister(p *player.Player) {
	select {
	case h.unregister <- p:
	case <-h.done:
	}
}

func (h *Hub) addViewer(ctx context.Context, p *player.Player) {
	h.viewers[p] = struct{}{}
	if h.latest != nil && !p.Send(h.latest) {
		h.removeViewer(ctx, p)
		return
	}
	slog.InfoContext(ctx, "Viewer registered", "player.id", p.ID, "viewers", len(h.viewers))
}

func (h *Hub) removeViewer(ctx context.Context, p *player.Player) {
	if _, ok := h.viewers[p]; !ok {
		return
	}
	delete(h.viewers, p)
	p.Close()
	slog.InfoContext(ctx, "Viewer unregistered", "player.id", p.ID, "viewers", len(h.viewers))
}
