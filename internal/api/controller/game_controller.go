package controller

import (
	"arcade/tictactoe/internal/api/models"
	"arcade/tictactoe/internal/api/response"
	"arcade/tictactoe/internal/api/service"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GameController handles the display bridge's HTTP requests.
type GameController struct {
	gameService service.GameService
}

// NewGameController creates a new GameController.
func NewGameController(gameService service.GameService) *GameController {
	return &GameController{
		gameService: gameService,
	}
}

// Session returns the current snapshot.
func (gc *GameController) Session(c *gin.Context) {
	snap, err := gc.gameService.Snapshot(c.Request.Context())
	if err != nil {
		response.AppErrorResponse(c, err)
		return
	}
	response.SuccessResponse(c, snap)
}

// NewGame starts a local game.
func (gc *GameController) NewGame(c *gin.Context) {
	var req models.NewGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := gc.gameService.NewGame(c.Request.Context(), &req)
	if err != nil {
		response.AppErrorResponse(c, err)
		return
	}
	response.SuccessResponse(c, snap)
}

// Restart replays the current local pairing.
func (gc *GameController) Restart(c *gin.Context) {
	snap, err := gc.gameService.Restart(c.Request.Context())
	if err != nil {
		response.AppErrorResponse(c, err)
		return
	}
	response.SuccessResponse(c, snap)
}

// Move places the active mark, or forwards it in networked games.
func (gc *GameController) Move(c *gin.Context) {
	var req models.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := gc.gameService.Move(c.Request.Context(), *req.Index)
	if err != nil {
		slog.DebugContext(c.Request.Context(), "Move rejected", "move.index", *req.Index, "error", err)
		response.AppErrorResponse(c, err)
		return
	}
	response.SuccessResponse(c, snap)
}

// Host opens a networked room.
func (gc *GameController) Host(c *gin.Context) {
	var req models.HostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := gc.gameService.Host(c.Request.Context(), &req)
	if err != nil {
		response.AppErrorResponse(c, err)
		return
	}
	response.SuccessResponse(c, snap)
}

// Join enters an existing networked room.
func (gc *GameController) Join(c *gin.Context) {
	var req models.JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := gc.gameService.Join(c.Request.Context(), &req)
	if err != nil {
		response.AppErrorResponse(c, err)
		return
	}
	response.SuccessResponse(c, snap)
}

// Leave abandons the session and returns to the menu.
func (gc *GameController) Leave(c *gin.Context) {
	snap, err := gc.gameService.Leave(c.Request.Context())
	if err != nil {
		response.AppErrorResponse(c, err)
		return
	}
	response.SuccessResponse(c, snap)
}

// Stats returns all-time totals.
func (gc *GameController) Stats(c *gin.Context) {
	response.SuccessResponse(c, gc.gameService.Stats(c.Request.Context()))
}

// ResetStats clears all-time totals.
func (gc *GameController) ResetStats(c *gin.Context) {
	gc.gameService.ResetStats(c.Request.Context())
	response.SuccessResponse(c, gc.gameService.Stats(c.Request.Context()))
}
