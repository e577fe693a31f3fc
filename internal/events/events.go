package events

import (
	"arcade/tictactoe/internal/game"
	"arcade/tictactoe/internal/validator"
	"encoding/json"
	"fmt"
)

// Outbound event names sent to the relay.
const (
	CreateRoom = "createRoom"
	JoinRoom   = "joinRoom"
	MakeMove   = "makeMove"
	LeaveRoom  = "leaveRoom"
)

// Inbound event names received from the relay.
const (
	RoomCreated          = "roomCreated"
	PlayerJoined         = "playerJoined"
	GameStart            = "gameStart"
	MoveMade             = "moveMade"
	GameOver             = "gameOver"
	Error                = "error"
	OpponentDisconnected = "opponentDisconnected"
	// ConnectionLost is raised by a transport whose connection dropped
	// underneath an open session.
	ConnectionLost = "connectionLost"
)

// DrawWinner is the gameOver winner value for a drawn game.
const DrawWinner = "draw"

// Event is one message on the relay channel.
type Event struct {
	Type    string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// New marshals payload into an Event. A nil payload yields an empty one.
func New(eventType string, payload any) (Event, error) {
	if payload == nil {
		return Event{Type: eventType}, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return Event{Type: eventType, Payload: data}, nil
}

// Decode unmarshals the payload of ev into T and validates it.
func Decode[T any](ev Event) (T, error) {
	var payload T
	if len(ev.Payload) == 0 {
		return payload, fmt.Errorf("%s: empty payload", ev.Type)
	}
	if err := json.Unmarshal(ev.Payload, &payload); err != nil {
		return payload, fmt.Errorf("%s: could not unmarshal payload: %w", ev.Type, err)
	}
	if err := validator.GetValidator().Struct(payload); err != nil {
		return payload, fmt.Errorf("%s: invalid payload: %w", ev.Type, err)
	}
	return payload, nil
}

// JoinRoomPayload is the payload for the "joinRoom" event.
type JoinRoomPayload struct {
	RoomCode   string `json:"roomCode" validate:"len=6"`
	PlayerName string `json:"playerName" validate:"required"`
}

// MakeMovePayload is the payload for the "makeMove" event.
type MakeMovePayload struct {
	RoomCode string `json:"roomCode" validate:"required"`
	Index    int    `json:"index" validate:"min=0,max=8"`
}

// RoomCreatedPayload is the payload for the "roomCreated" event.
type RoomCreatedPayload struct {
	RoomCode string          `json:"roomCode" validate:"len=6"`
	Symbol   game.PlayerMark `json:"symbol" validate:"playermark"`
}

// Player is one entry of a relay player list.
type Player struct {
	ID     string          `json:"id,omitempty"`
	Name   string          `json:"name"`
	Symbol game.PlayerMark `json:"symbol,omitempty" validate:"mark"`
}

// PlayerJoinedPayload is the payload for the "playerJoined" event.
type PlayerJoinedPayload struct {
	Players []Player `json:"players" validate:"max=2,dive"`
}

// GameStartPayload is the payload for the "gameStart" event.
type GameStartPayload struct {
	Players     []Player        `json:"players" validate:"max=2,dive"`
	CurrentTurn game.PlayerMark `json:"currentTurn" validate:"playermark"`
}

// MoveMadePayload is the payload for the "moveMade" event. Board is the
// relay's full snapshot after the move.
type MoveMadePayload struct {
	Board       []game.PlayerMark `json:"board" validate:"len=9,dive,mark"`
	CurrentTurn game.PlayerMark   `json:"currentTurn" validate:"mark"`
	MoveIndex   int               `json:"moveIndex" validate:"min=0,max=8"`
}

// GameOverPayload is the payload for the "gameOver" event.
type GameOverPayload struct {
	Winner string `json:"winner" validate:"oneof=X O draw"`
}

// ErrorPayload is the object form of the "error" event.
type ErrorPayload struct {
	Message string `json:"message"`
}

// DecodeErrorMessage accepts both a bare JSON string and {"message": ...}.
func DecodeErrorMessage(ev Event) string {
	var message string
	if err := json.Unmarshal(ev.Payload, &message); err == nil && message != "" {
		return message
	}
	var payload ErrorPayload
	if err := json.Unmarshal(ev.Payload, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return "The game server reported an error."
}

// NewCreateRoom builds the "createRoom" request. The payload is the bare
// host name.
func NewCreateRoom(playerName string) (Event, error) {
	if playerName == "" {
		return Event{}, fmt.Errorf("%s: player name is required", CreateRoom)
	}
	return New(CreateRoom, playerName)
}

// NewJoinRoom builds a validated "joinRoom" request.
func NewJoinRoom(roomCode, playerName string) (Event, error) {
	payload := JoinRoomPayload{RoomCode: roomCode, PlayerName: playerName}
	if err := validator.GetValidator().Struct(payload); err != nil {
		return Event{}, fmt.Errorf("%s: invalid payload: %w", JoinRoom, err)
	}
	return New(JoinRoom, payload)
}

// NewMakeMove builds a validated "makeMove" request.
func NewMakeMove(roomCode string, index int) (Event, error) {
	payload := MakeMovePayload{RoomCode: roomCode, Index: index}
	if err := validator.GetValidator().Struct(payload); err != nil {
		return Event{}, fmt.Errorf("%s: invalid payload: %w", MakeMove, err)
	}
	return New(MakeMove, payload)
}

// NewLeaveRoom builds the "leaveRoom" request. The payload is the bare
// room code.
func NewLeaveRoom(roomCode string) (Event, error) {
	return New(LeaveRoom, roomCode)
}
