package models

// NewGameRequest starts a local game.
type NewGameRequest struct {
	Mode       string `json:"mode" binding:"required,oneof=local-vs-local local-vs-computer"`
	Difficulty string `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	PlayerOne  string `json:"playerOne" binding:"max=20"`
	PlayerTwo  string `json:"playerTwo" binding:"max=20"`
}

// MoveRequest places the active mark.
type MoveRequest struct {
	Index *int `json:"index" binding:"required,min=0,max=8"`
}

// HostRequest opens a networked room.
type HostRequest struct {
	PlayerName string `json:"playerName" binding:"required,max=20"`
}

// JoinRequest joins a networked room. The code is normalized by the
// controller, so only presence is checked here.
type JoinRequest struct {
	RoomCode   string `json:"roomCode" binding:"required"`
	PlayerName string `json:"playerName" binding:"required,max=20"`
}
