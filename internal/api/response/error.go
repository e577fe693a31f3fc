package response

import (
	"arcade/tictactoe/internal/apperror"
	"arcade/tictactoe/internal/hub"
	"errors"
	"net/http"
)

type Error struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Extras  string `json:"extras"`
}

func (e Error) Error() string {
	return e.Extras
}

func NewError(success bool, code int, message string) Error {
	return Error{
		Success: success,
		Code:    code,
		Extras:  message,
	}
}

// statusByError maps domain sentinels to HTTP status codes. Order matters:
// the specific move reasons are checked before the umbrella.
var statusByError = []struct {
	err  error
	code int
}{
	{apperror.ErrNoSession, http.StatusNotFound},
	{apperror.ErrInvalidRoomCode, http.StatusBadRequest},
	{apperror.ErrInvalidName, http.StatusBadRequest},
	{apperror.ErrInvalidCell, http.StatusBadRequest},
	{apperror.ErrInvalidMove, http.StatusConflict},
	{apperror.ErrRemoteAuthority, http.StatusConflict},
	{apperror.ErrOffline, http.StatusServiceUnavailable},
	{apperror.ErrPeerLost, http.StatusBadGateway},
	{hub.ErrClosed, http.StatusServiceUnavailable},
}

// FromError converts err into an Error carrying the matching status code.
func FromError(err error) Error {
	var appErr Error
	if errors.As(err, &appErr) {
		return appErr
	}
	for _, m := range statusByError {
		if errors.Is(err, m.err) {
			return NewError(false, m.code, err.Error())
		}
	}
	return NewError(false, http.StatusInternalServerError, err.Error())
}
