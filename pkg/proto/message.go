package proto

import "arcade/tictactoe/internal/session"

// Viewer message types.
const (
	TypeMove     = "move"
	TypeRestart  = "restart"
	TypeLeave    = "leave"
	TypeSnapshot = "snapshot"
	TypeNotice   = "notice"
	TypeError    = "error"
)

// ClientToServerMessage represents a message from a viewer to the hub.
type ClientToServerMessage struct {
	Type  string `json:"type" validate:"required,oneof=move restart leave"`
	Index int    `json:"index" validate:"min=0,max=8"`
}

// ServerToClientMessage represents a message from the hub to a viewer.
type ServerToClientMessage struct {
	Type     string            `json:"type" validate:"required"`
	Snapshot *session.Snapshot `json:"snapshot,omitempty"`
	Reason   string            `json:"reason,omitempty"`
}
