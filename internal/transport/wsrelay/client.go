// Package wsrelay is a relay transport over a single websocket connection.
// Frames are JSON events: {"event": name, "payload": ...}.
package wsrelay

import (
	"arcade/tictactoe/internal/events"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("wsrelay")

const (
	writeWait       = 5 * time.Second
	eventBufferSize = 32
)

// Client dials the relay lazily on the first outbound event and redials
// after Close. It does not reconnect on its own: an unexpected read error
// is reported as a connectionLost event.
type Client struct {
	url    string
	dialer *websocket.Dialer
	events chan events.Event

	mu     sync.Mutex
	conn   *websocket.Conn
	done   chan struct{}
	exited chan struct{}
}

// New creates a client for the relay at url (ws:// or wss://).
func New(url string) *Client {
	return &Client{
		url:    url,
		dialer: websocket.DefaultDialer,
		events: make(chan events.Event, eventBufferSize),
	}
}

// Events returns the inbound event stream. It is never closed.
func (c *Client) Events() <-chan events.Event {
	return c.events
}

func (c *Client) CreateRoom(ctx context.Context, playerName string) error {
	ev, err := events.NewCreateRoom(playerName)
	if err != nil {
		return err
	}
	return c.send(ctx, ev)
}

func (c *Client) JoinRoom(ctx context.Context, roomCode, playerName string) error {
	ev, err := events.NewJoinRoom(roomCode, playerName)
	if err != nil {
		return err
	}
	return c.send(ctx, ev)
}

func (c *Client) MakeMove(ctx context.Context, roomCode string, index int) error {
	ev, err := events.NewMakeMove(roomCode, index)
	if err != nil {
		return err
	}
	return c.send(ctx, ev)
}

func (c *Client) LeaveRoom(ctx context.Context, roomCode string) error {
	ev, err := events.NewLeaveRoom(roomCode)
	if err != nil {
		return err
	}
	return c.send(ctx, ev)
}

// Close drops the current connection, if any. No connectionLost event is
// emitted for it, and events it left unread are discarded.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.conn == nil {
		c.mu.Unlock()
		return nil
	}
	close(c.done)
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
	err := c.conn.Close()
	exited := c.exited
	c.conn = nil
	c.done = nil
	c.exited = nil
	c.mu.Unlock()

	<-exited
	c.drain()
	return err
}

// drain discards events already buffered for a closed connection so the
// next room never sees them.
func (c *Client) drain() {
	for {
		select {
		case <-c.events:
		default:
			return
		}
	}
}

func (c *Client) send(ctx context.Context, ev events.Event) error {
	ctx, span := tracer.Start(ctx, "wsrelay.send", trace.WithAttributes(
		attribute.String("event.type", ev.Type),
	))
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	conn, err := c.connectLocked(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to dial relay")
		return err
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(ev); err != nil {
		slog.ErrorContext(ctx, "Failed to write relay event", "event.type", ev.Type, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to write relay event")
		return fmt.Errorf("write %s: %w", ev.Type, err)
	}
	return nil
}

func (c *Client) connectLocked(ctx context.Context) (*websocket.Conn, error) {
	if c.conn != nil {
		return c.conn, nil
	}

	conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to connect to relay", "relay.url", c.url, "error", err)
		return nil, fmt.Errorf("dial relay %s: %w", c.url, err)
	}
	slog.InfoContext(ctx, "Connected to relay", "relay.url", c.url)

	c.conn = conn
	c.done = make(chan struct{})
	c.exited = make(chan struct{})
	go c.readPump(conn, c.done, c.exited)
	return conn, nil
}

// readPump forwards inbound frames until the connection fails.
func (c *Client) readPump(conn *websocket.Conn, done, exited chan struct{}) {
	defer close(exited)
	for {
		var ev events.Event
		if err := conn.ReadJSON(&ev); err != nil {
			c.lost(conn, done, err)
			return
		}
		select {
		case c.events <- ev:
		case <-done:
			return
		}
	}
}

func (c *Client) lost(conn *websocket.Conn, done chan struct{}, err error) {
	select {
	case <-done:
		return
	default:
	}

	c.mu.Lock()
	current := c.conn == conn
	if current {
		close(c.done)
		c.conn = nil
		c.done = nil
		c.exited = nil
	}
	c.mu.Unlock()
	if !current {
		return
	}

	_ = conn.Close()
	slog.Warn("Relay connection lost", "relay.url", c.url, "error", err)
	c.events <- events.Event{Type: events.ConnectionLost}
}
