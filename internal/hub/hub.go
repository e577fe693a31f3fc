package hub

import (
	"arcade/tictactoe/internal/events"
	"arcade/tictactoe/internal/online"
	"arcade/tictactoe/internal/player"
	"arcade/tictactoe/internal/session"
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("hub")

// ErrClosed is returned by Do once Run has returned.
var ErrClosed = errors.New("hub is closed")

// Relay is a relay transport: the outbound channel plus the stream of
// inbound events. Events must return the same channel for the lifetime of
// the relay, across reconnects.
type Relay interface {
	session.Channel
	Events() <-chan events.Event
}

// Config wires a Hub.
type Config struct {
	Relay         Relay
	Calculator    session.MoveCalculator
	Recorder      session.Recorder
	Display       session.Display
	ComputerDelay time.Duration
}

type command struct {
	ctx  context.Context
	fn   func(ctx context.Context, c *session.Controller) error
	errc chan error
}

// Hub owns the turn controller and is the only goroutine that touches it.
// Local commands, relay events, timer callbacks and viewer registration
// all arrive on channels and are handled one at a time by Run.
type Hub struct {
	ctrl       *session.Controller
	reconciler *online.Reconciler
	relay      Relay
	display    session.Display

	commands   chan command
	timers     chan func()
	register   chan *player.Player
	unregister chan *player.Player
	done       chan struct{}

	// Owned by the Run goroutine.
	viewers map[*player.Player]struct{}
	latest  []byte
}

// NewHub creates a hub sitting at the menu. Run must be started before any
// call to Do.
func NewHub(cfg Config) *Hub {
	h := &Hub{
		relay:      cfg.Relay,
		display:    cfg.Display,
		commands:   make(chan command),
		timers:     make(chan func()),
		register:   make(chan *player.Player),
		unregister: make(chan *player.Player),
		done:       make(chan struct{}),
		viewers:    make(map[*player.Player]struct{}),
	}

	ctrlCfg := session.Config{
		Scheduler:     h,
		Calculator:    cfg.Calculator,
		Display:       h,
		Recorder:      cfg.Recorder,
		ComputerDelay: cfg.ComputerDelay,
	}
	if cfg.Relay != nil {
		ctrlCfg.Channel = cfg.Relay
	}
	h.ctrl = session.NewController(ctrlCfg)
	h.reconciler = online.NewReconciler(h.ctrl)
	h.latest = h.encodeSnapshot(context.Background(), h.ctrl.Snapshot())
	return h
}

// Run is the hub's event loop. It returns when ctx is cancelled, leaving
// any open session first.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)

	var inbound <-chan events.Event
	if h.relay != nil {
		inbound = h.relay.Events()
	}
	slog.InfoContext(ctx, "Hub started", "relay", h.relay != nil)

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			slog.Info("Hub stopped")
			return ctx.Err()

		case cmd := <-h.commands:
			cmd.errc <- cmd.fn(cmd.ctx, h.ctrl)

		case fn := <-h.timers:
			fn()

		case ev, ok := <-inbound:
			if !ok {
				slog.WarnContext(ctx, "Relay event stream closed")
				inbound = nil
				continue
			}
			h.handleEvent(ctx, ev)

		case p := <-h.register:
			h.addViewer(ctx, p)

		case p := <-h.unregister:
			h.removeViewer(ctx, p)
		}
	}
}

// Do runs fn on the loop goroutine and waits for its result.
func (h *Hub) Do(ctx context.Context, fn func(ctx context.Context, c *session.Controller) error) error {
	cmd := command{ctx: ctx, fn: fn, errc: make(chan error, 1)}
	select {
	case h.commands <- cmd:
	case <-h.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-cmd.errc:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot reads the controller state through the loop.
func (h *Hub) Snapshot(ctx context.Context) (session.Snapshot, error) {
	var snap session.Snapshot
	err := h.Do(ctx, func(_ context.Context, c *session.Controller) error {
		snap = c.Snapshot()
		return nil
	})
	return snap, err
}

// Done is closed when Run returns.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

func (h *Hub) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	h.ctrl.Leave(ctx)
	for p := range h.viewers {
		delete(h.viewers, p)
		p.Close()
	}
}
