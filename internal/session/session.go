package session

import (
	"arcade/tictactoe/internal/bot"
	"arcade/tictactoe/internal/game"
)

// Mode selects who plays the two marks.
type Mode string

const (
	ModeLocal     Mode = "local-vs-local"
	ModeComputer  Mode = "local-vs-computer"
	ModeNetworked Mode = "networked"
)

// State is the turn controller's position in the game lifecycle.
type State string

const (
	// StateMenu is only reported by snapshots taken with no session.
	StateMenu State = "menu"
	// StateConnecting: the host asked for a room and waits for its code.
	StateConnecting     State = "connecting"
	StateWaitingForPeer State = "waiting_for_peer"
	StateAwaitingMove   State = "awaiting_move"
	// StateAwaitingRemote: a local move was forwarded and the relay has not
	// answered yet.
	StateAwaitingRemote State = "awaiting_remote_confirmation"
	StateTerminal       State = "terminal"
)

// Role is the local player's side of a networked room.
type Role string

const (
	RoleHost  Role = "host"
	RoleGuest Role = "guest"
)

// Authority names the side that resolves outcomes.
type Authority string

const (
	AuthorityLocal  Authority = "local"
	AuthorityRemote Authority = "remote"
)

const (
	// FirstMark opens every locally started game.
	FirstMark = game.PlayerX
	// ComputerMark is the computer's mark; the human always plays X.
	ComputerMark = game.PlayerO
	// GuestMark is assigned to a player joining someone else's room.
	GuestMark = game.PlayerO

	DefaultPlayerOne = "Player one"
	DefaultPlayerTwo = "Player two"
	ComputerName     = "Computer"
)

// Names holds the display name for each mark.
type Names struct {
	X string `json:"x"`
	O string `json:"o"`
}

// Set stores name for mark.
func (n *Names) Set(mark game.PlayerMark, name string) {
	switch mark {
	case game.PlayerX:
		n.X = name
	case game.PlayerO:
		n.O = name
	}
}

// Scores counts results across one series of games.
type Scores struct {
	X     int `json:"x"`
	O     int `json:"o"`
	Draws int `json:"draws"`
}

// Add counts result. Unfinished results are ignored.
func (s *Scores) Add(result game.Result) {
	switch {
	case result.Outcome == game.Draw:
		s.Draws++
	case result.Outcome == game.Win && result.Winner == game.PlayerX:
		s.X++
	case result.Outcome == game.Win && result.Winner == game.PlayerO:
		s.O++
	}
}

// GameSession is one playthrough. It is owned by the Controller and never
// shared; the outside world only sees Snapshots.
type GameSession struct {
	ID         string
	Board      game.Board
	Active     game.PlayerMark
	Mode       Mode
	Difficulty bot.Difficulty
	State      State
	Result     game.Result
	Names      Names
	Authority  Authority

	// Networked only.
	Role      Role
	LocalMark game.PlayerMark
	LocalName string
	PeerName  string
	RoomCode  string
}

// interactive reports whether a local player may move right now.
func (s *GameSession) interactive() bool {
	if s.State != StateAwaitingMove {
		return false
	}
	switch s.Mode {
	case ModeComputer:
		return s.Active != ComputerMark
	case ModeNetworked:
		return s.Active == s.LocalMark
	}
	return true
}

// Snapshot is a read-only copy of the controller state for renderers.
type Snapshot struct {
	SessionID   string          `json:"sessionId,omitempty"`
	Mode        Mode            `json:"mode,omitempty"`
	Difficulty  bot.Difficulty  `json:"difficulty,omitempty"`
	State       State           `json:"state"`
	Board       game.Board      `json:"board"`
	Active      game.PlayerMark `json:"active,omitempty"`
	Result      game.Result     `json:"result"`
	Names       Names           `json:"names"`
	Scores      Scores          `json:"scores"`
	Interactive bool            `json:"interactive"`
	Role        Role            `json:"role,omitempty"`
	LocalMark   game.PlayerMark `json:"localMark,omitempty"`
	PeerName    string          `json:"peerName,omitempty"`
	RoomCode    string          `json:"roomCode,omitempty"`
}

// Conclusion is emitted exactly once per finished game.
type Conclusion struct {
	SessionID string      `json:"sessionId"`
	Mode      Mode        `json:"mode"`
	Result    game.Result `json:"result"`
	Names     Names       `json:"names"`
}

// Notice is a message the display must surface, such as a relay error or a
// lost opponent. Err is one of the apperror sentinels.
type Notice struct {
	Err     error
	Message string
}

// Participant is one player as announced by the relay.
type Participant struct {
	Name string
	Mark game.PlayerMark
}
