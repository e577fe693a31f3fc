package scoreboard

import (
	"arcade/tictactoe/internal/game"
	"arcade/tictactoe/internal/session"
	"testing"

	"github.com/stretchr/testify/assert"
)

func conclusion(mode session.Mode, result game.Result) session.Conclusion {
	return session.Conclusion{SessionID: "s", Mode: mode, Result: result}
}

func TestScoreboard_GameConcluded(t *testing.T) {
	// Given
	sb := New()

	// When
	sb.GameConcluded(conclusion(session.ModeLocal, game.WinResult(game.PlayerX, nil)))
	sb.GameConcluded(conclusion(session.ModeComputer, game.WinResult(game.PlayerO, nil)))
	sb.GameConcluded(conclusion(session.ModeComputer, game.DrawResult()))
	sb.GameConcluded(conclusion(session.ModeLocal, game.Result{Outcome: game.InProgress}))

	// Then
	stats := sb.Stats()
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.XWins)
	assert.Equal(t, 1, stats.OWins)
	assert.Equal(t, 1, stats.Draws)
	assert.Equal(t, map[session.Mode]int{session.ModeLocal: 1, session.ModeComputer: 2}, stats.ByMode)
	assert.Len(t, sb.Stats().Recent, 3)
}

func TestScoreboard_StatsIsACopy(t *testing.T) {
	sb := New()
	sb.GameConcluded(conclusion(session.ModeLocal, game.DrawResult()))

	stats := sb.Stats()
	stats.ByMode[session.ModeLocal] = 99

	assert.Equal(t, 1, sb.Stats().ByMode[session.ModeLocal])
}

func TestScoreboard_RecentIsBounded(t *testing.T) {
	sb := New()
	for i := 0; i < recentLimit+5; i++ {
		sb.GameConcluded(conclusion(session.ModeLocal, game.DrawResult()))
	}
	assert.Len(t, sb.Stats().Recent, recentLimit)
	assert.Equal(t, recentLimit+5, sb.Stats().Total)
}

func TestScoreboard_Reset(t *testing.T) {
	sb := New()
	sb.GameConcluded(conclusion(session.ModeLocal, game.DrawResult()))

	sb.Reset()

	assert.Equal(t, 0, sb.Stats().Total)
	assert.Empty(t, sb.Stats().Recent)
}
