package apperror

import "errors"

// ErrInvalidMove is the umbrella for every rejected move request. Local UI
// adapters drop errors matching it without telling the player.
var ErrInvalidMove = errors.New("invalid move")

var (
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrInvalidCell     = errors.New("invalid cell index")
	ErrNotYourTurn     = errors.New("it's not your turn")
	ErrGameFinished    = errors.New("game is already finished")
	ErrNoSession       = errors.New("no active session")
	ErrNoLegalMoves    = errors.New("no legal moves")
	ErrRemoteRejected  = errors.New("rejected by relay")
	ErrPeerLost        = errors.New("opponent connection lost")
	ErrOffline         = errors.New("no relay configured")
	ErrRemoteAuthority = errors.New("outcome is decided by the relay")
	ErrInvalidRoomCode = errors.New("room code must be 6 characters")
	ErrInvalidName     = errors.New("player name is required")
)
