// Package redisrelay is a relay transport over Redis pub/sub. Requests are
// published to RequestsChannel wrapped in an Envelope; the relay answers on
// the client's own channel.
package redisrelay

import (
	"arcade/tictactoe/internal/events"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("redisrelay")

const (
	// RequestsChannel carries every client's outbound events.
	RequestsChannel = "tictactoe:relay:requests"

	eventBufferSize = 32
)

// ClientChannel is the channel the relay publishes to for one client.
func ClientChannel(clientID string) string {
	return fmt.Sprintf("tictactoe:relay:client:%s", clientID)
}

// Envelope is an outbound event tagged with its sender.
type Envelope struct {
	ClientID string `json:"clientId"`
	events.Event
}

// Client subscribes lazily on the first outbound event and unsubscribes on
// Close. Redis handles reconnects of the underlying connection; a
// subscription that ends unexpectedly is reported as connectionLost.
type Client struct {
	rdb    *redis.Client
	id     string
	events chan events.Event

	mu     sync.Mutex
	sub    *redis.PubSub
	done   chan struct{}
	exited chan struct{}
}

// New creates a client with a fresh id.
func New(rdb *redis.Client) *Client {
	return &Client{
		rdb:    rdb,
		id:     uuid.NewString(),
		events: make(chan events.Event, eventBufferSize),
	}
}

// ID is the client id used in envelopes and the reply channel name.
func (c *Client) ID() string {
	return c.id
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
	return c.publish(ctx, ev)
}

func (c *Client) JoinRoom(ctx context.Context, roomCode, playerName string) error {
	ev, err := events.NewJoinRoom(roomCode, playerName)
	if err != nil {
		return err
	}
	return c.publish(ctx, ev)
}

func (c *Client) MakeMove(ctx context.Context, roomCode string, index int) error {
	ev, err := events.NewMakeMove(roomCode, index)
	if err != nil {
		return err
	}
	return c.publish(ctx, ev)
}

func (c *Client) LeaveRoom(ctx context.Context, roomCode string) error {
	ev, err := events.NewLeaveRoom(roomCode)
	if err != nil {
		return err
	}
	return c.publish(ctx, ev)
}

// Close ends the subscription. The Redis client itself stays open.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.sub == nil {
		c.mu.Unlock()
		return nil
	}
	close(c.done)
	err := c.sub.Close()
	exited := c.exited
	c.sub = nil
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

func (c *Client) publish(ctx context.Context, ev events.Event) error {
	ctx, span := tracer.Start(ctx, "redisrelay.publish", trace.WithAttributes(
		attribute.String("event.type", ev.Type),
		attribute.String("relay.client", c.id),
	))
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.subscribeLocked(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to subscribe")
		return err
	}

	data, err := json.Marshal(Envelope{ClientID: c.id, Event: ev})
	if err != nil {
		return fmt.Errorf("failed to marshal %s envelope: %w", ev.Type, err)
	}
	if err := c.rdb.Publish(ctx, RequestsChannel, data).Err(); err != nil {
		slog.ErrorContext(ctx, "Failed to publish relay event", "event.type", ev.Type, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to publish relay event")
		return fmt.Errorf("publish %s: %w", ev.Type, err)
	}
	return nil
}

func (c *Client) subscribeLocked(ctx context.Context) error {
	if c.sub != nil {
		return nil
	}

	channel := ClientChannel(c.id)
	sub := c.rdb.Subscribe(ctx, channel)
	// Wait for the subscription to be confirmed so no reply is missed.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("subscribe %s: %w", channel, err)
	}
	slog.InfoContext(ctx, "Subscribed to relay replies", "channel", channel)

	c.sub = sub
	c.done = make(chan struct{})
	c.exited = make(chan struct{})
	go c.pump(sub.Channel(), c.done, c.exited)
	return nil
}

func (c *Client) pump(messages <-chan *redis.Message, done, exited chan struct{}) {
	defer close(exited)
	for {
		var msg *redis.Message
		select {
		case m, ok := <-messages:
			if !ok {
				c.ended(done)
				return
			}
			msg = m
		case <-done:
			return
		}

		var ev events.Event
		if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
			slog.Error("Could not unmarshal relay event", "channel", msg.Channel, "error", err)
			continue
		}
		select {
		case c.events <- ev:
		case <-done:
			return
		}
	}
}

func (c *Client) ended(done chan struct{}) {
	select {
	case <-done:
	default:
		slog.Warn("Relay subscription ended", "relay.client", c.id)
		select {
		case c.events <- events.Event{Type: events.ConnectionLost}:
		case <-done:
		}
	}
}
