package player

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	heartbeatInterval = 10 * time.Second
	writeWait         = 5 * time.Second
	sendBufferSize    = 16
)

// Connection is an interface that abstracts the websocket connection.
type Connection interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (int, []byte, error)
	Close() error
}

type deadlineSetter interface {
	SetWriteDeadline(t time.Time) error
}

// Player is one display viewer attached to the hub. Outbound messages are
// queued and written by WritePump so the hub never blocks on a slow socket.
type Player struct {
	ID   string
	Conn Connection

	send chan []byte
	done chan struct{}

	mu     sync.Mutex
	closed bool
}

// NewPlayer creates a viewer around conn.
func NewPlayer(id string, conn Connection) *Player {
	return &Player{
		ID:   id,
		Conn: conn,
		send: make(chan []byte, sendBufferSize),
		done: make(chan struct{}),
	}
}

// Send queues data without blocking. It reports false when the queue is
// full and the viewer should be dropped, or once the viewer is closed.
func (p *Player) Send(data []byte) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false
	}
	select {
	case p.send <- data:
		return true
	default:
		return false
	}
}

// Close stops the write pump after it flushes what is already queued. It
// is safe to call more than once and concurrently with Send.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.done)
	}
}

// WritePump drains the outbound queue to the connection and pings it while
// idle. It returns, closing the connection, once Close is called or a
// write fails.
func (p *Player) WritePump(ctx context.Context) {
	ticker := time.NewTicker(heartbeatInterval)
	defer func() {
		ticker.Stop()
		p.Conn.Close()
	}()

	for {
		select {
		case <-p.done:
			p.flush(ctx)
			_ = p.write(websocket.CloseMessage, []byte{})
			return
		case data := <-p.send:
			if err := p.write(websocket.TextMessage, data); err != nil {
				slog.WarnContext(ctx, "Failed to write to viewer", "player.id", p.ID, "error", err)
				return
			}
		case <-ticker.C:
			if err := p.write(websocket.PingMessage, nil); err != nil {
				slog.WarnContext(ctx, "Failed to send ping to viewer, assuming disconnect", "player.id", p.ID, "error", err)
				return
			}
		}
	}
}

// flush writes whatever is still queued. Send refuses new data once done
// is closed, so the queue only shrinks here.
func (p *Player) flush(ctx context.Context) {
	for {
		select {
		case data := <-p.send:
			if err := p.write(websocket.TextMessage, data); err != nil {
				slog.WarnContext(ctx, "Failed to flush viewer queue", "player.id", p.ID, "error", err)
				return
			}
		default:
			return
		}
	}
}

func (p *Player) write(messageType int, data []byte) error {
	if d, ok := p.Conn.(deadlineSetter); ok {
		_ = d.SetWriteDeadline(time.Now().Add(writeWait))
	}
	return p.Conn.WriteMessage(messageType, data)
}
