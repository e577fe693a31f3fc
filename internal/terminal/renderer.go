package terminal

import (
	"arcade/tictactoe/internal/game"
	"arcade/tictactoe/internal/session"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"
)

// SPIN is the spinner charset shown while waiting on the relay.
const SPIN = 14

// Renderer draws snapshots as text. It implements session.Display and may
// be called from the hub loop while the input loop writes prompts.
type Renderer struct {
	mu     sync.Mutex
	out    io.Writer
	spin   *spinner.Spinner
	inGame bool
	onMenu func()
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSpinner shows a spinner on w while the session waits on the relay.
func WithSpinner(w io.Writer) Option {
	return func(r *Renderer) {
		r.spin = spinner.New(spinner.CharSets[SPIN], 100*time.Millisecond, spinner.WithWriter(w))
	}
}

// OnMenu registers fn to run once a started session falls back to the menu.
func OnMenu(fn func()) Option {
	return func(r *Renderer) { r.onMenu = fn }
}

func NewRenderer(out io.Writer, opts ...Option) *Renderer {
	r := &Renderer{out: out}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render implements session.Display.
func (r *Renderer) Render(snap session.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.waiting(snap.State == session.StateConnecting ||
		snap.State == session.StateWaitingForPeer ||
		snap.State == session.StateAwaitingRemote)

	if snap.State == session.StateMenu {
		if r.inGame {
			r.inGame = false
			fmt.Fprintln(r.out, "Back at the menu.")
			if r.onMenu != nil {
				r.onMenu()
			}
		}
		return
	}
	r.inGame = true

	switch snap.State {
	case session.StateConnecting:
		fmt.Fprintln(r.out, "Creating a room...")
		return
	case session.StateWaitingForPeer:
		if snap.Role == session.RoleHost {
			fmt.Fprintf(r.out, "Room code: %s\nShare it with your opponent. Waiting for them to join...\n", snap.RoomCode)
		} else {
			fmt.Fprintf(r.out, "Joining room %s...\n", snap.RoomCode)
		}
		return
	}

	fmt.Fprintln(r.out)
	fmt.Fprint(r.out, FormatBoard(snap.Board, snap.Result.Combo))
	fmt.Fprintln(r.out, Status(snap))
}

// Notify implements session.Display.
func (r *Renderer) Notify(notice session.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.waiting(false)
	fmt.Fprintf(r.out, "! %s\n", notice.Message)
}

// Println writes a line between renders.
func (r *Renderer) Println(a ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out, a...)
}

// Close stops the spinner.
func (r *Renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.waiting(false)
}

func (r *Renderer) waiting(on bool) {
	if r.spin == nil {
		return
	}
	if on {
		r.spin.Start()
	} else {
		r.spin.Stop()
	}
}

// FormatBoard draws the grid. Empty cells show their 1-based key, cells of
// the winning combo are bracketed.
func FormatBoard(b game.Board, combo *game.Combo) string {
	winning := make(map[int]bool, 3)
	if combo != nil {
		for _, i := range combo {
			winning[i] = true
		}
	}

	var sb strings.Builder
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			i := row*3 + col
			cell := string(b[i])
			if b[i] == game.None {
				cell = fmt.Sprint(i + 1)
			}
			if winning[i] {
				sb.WriteString("[" + cell + "]")
			} else {
				sb.WriteString(" " + cell + " ")
			}
			if col < 2 {
				sb.WriteString("|")
			}
		}
		sb.WriteString("\n")
		if row < 2 {
			sb.WriteString("---+---+---\n")
		}
	}
	return sb.String()
}

// Status is the one-line caption under the board.
func Status(snap session.Snapshot) string {
	switch snap.State {
	case session.StateAwaitingMove:
		name := nameOf(snap, snap.Active)
		if snap.Interactive {
			return fmt.Sprintf("%s (%s), your move. Enter 1-9.", name, snap.Active)
		}
		return fmt.Sprintf("Waiting for %s (%s)...", name, snap.Active)
	case session.StateAwaitingRemote:
		return "Move sent, waiting for the server..."
	case session.StateTerminal:
		var headline string
		if snap.Result.Outcome == game.Draw {
			headline = "It's a draw."
		} else {
			headline = fmt.Sprintf("%s (%s) wins!", nameOf(snap, snap.Result.Winner), snap.Result.Winner)
		}
		return fmt.Sprintf("%s Score: %s %d, %s %d, draws %d.",
			headline, nameOf(snap, game.PlayerX), snap.Scores.X, nameOf(snap, game.PlayerO), snap.Scores.O, snap.Scores.Draws)
	}
	return string(snap.State)
}

func nameOf(snap session.Snapshot, mark game.PlayerMark) string {
	name := snap.Names.O
	if mark == game.PlayerX {
		name = snap.Names.X
	}
	if name == "" {
		return string(mark)
	}
	return name
}
