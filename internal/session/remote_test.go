package session_test

import (
	"arcade/tictactoe/internal/apperror"
	"arcade/tictactoe/internal/game"
	"arcade/tictactoe/internal/session"
	"arcade/tictactoe/internal/session/mocks"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// hostedGame brings a host session to the first move of a started game.
func hostedGame(t *testing.T, h *harness, ch *mocks.MockChannel) {
	t.Helper()
	ctx := context.Background()
	ch.EXPECT().CreateRoom(gomock.Any(), "Ann").Return(nil)

	require.NoError(t, h.ctrl.Host(ctx, "Ann"))
	assert.Equal(t, session.StateConnecting, h.ctrl.Snapshot().State)

	require.NoError(t, h.ctrl.Establish(ctx, "ROOM42", game.PlayerX))
	snap := h.ctrl.Snapshot()
	assert.Equal(t, session.StateWaitingForPeer, snap.State)
	assert.Equal(t, "ROOM42", snap.RoomCode)

	require.NoError(t, h.ctrl.StartRemote(ctx, []session.Participant{{Name: "Ann"}, {Name: "Ben"}}, game.PlayerX))
}

// joinedGame brings a guest session to a started game where X moves first.
func joinedGame(t *testing.T, h *harness, ch *mocks.MockChannel) {
	t.Helper()
	ctx := context.Background()
	ch.EXPECT().JoinRoom(gomock.Any(), "ABC123", "Ben").Return(nil)

	require.NoError(t, h.ctrl.Join(ctx, " abc123 ", "Ben"))
	snap := h.ctrl.Snapshot()
	assert.Equal(t, session.StateWaitingForPeer, snap.State)
	assert.Equal(t, game.PlayerO, snap.LocalMark)
	assert.Equal(t, session.RoleGuest, snap.Role)

	require.NoError(t, h.ctrl.StartRemote(ctx, []session.Participant{
		{Name: "Ann", Mark: game.PlayerX},
		{Name: "Ben", Mark: game.PlayerO},
	}, game.PlayerX))
}

func TestRemote_HostStartsGame(t *testing.T) {
	mc := gomock.NewController(t)
	ch := mocks.NewMockChannel(mc)
	h := newHarness(ch)

	hostedGame(t, h, ch)

	snap := h.ctrl.Snapshot()
	assert.Equal(t, session.StateAwaitingMove, snap.State)
	assert.Equal(t, session.ModeNetworked, snap.Mode)
	assert.Equal(t, game.PlayerX, snap.LocalMark)
	assert.Equal(t, "Ben", snap.PeerName)
	assert.Equal(t, session.Names{X: "Ann", O: "Ben"}, snap.Names)
	assert.True(t, snap.Interactive)
}

func TestRemote_MoveIsForwardedNotApplied(t *testing.T) {
	mc := gomock.NewController(t)
	ch := mocks.NewMockChannel(mc)
	h := newHarness(ch)
	hostedGame(t, h, ch)
	ctx := context.Background()

	ch.EXPECT().MakeMove(gomock.Any(), "ROOM42", 4).Return(nil)
	require.NoError(t, h.ctrl.Move(ctx, 4))

	snap := h.ctrl.Snapshot()
	assert.Equal(t, session.StateAwaitingRemote, snap.State)
	assert.Equal(t, game.Board{}, snap.Board, "board waits for the relay")
	assert.False(t, snap.Interactive)

	err := h.ctrl.Move(ctx, 0)
	assert.ErrorIs(t, err, apperror.ErrNotYourTurn, "no second move while awaiting confirmation")

	require.NoError(t, h.ctrl.ApplyRemoteMove(ctx, boardOf("....X...."), game.PlayerO, 4))
	snap = h.ctrl.Snapshot()
	assert.Equal(t, session.StateAwaitingMove, snap.State)
	assert.Equal(t, game.PlayerX, snap.Board[4])
	assert.Equal(t, game.PlayerO, snap.Active)
	assert.False(t, snap.Interactive)
}

func TestRemote_NotYourTurnIsNotForwarded(t *testing.T) {
	mc := gomock.NewController(t)
	ch := mocks.NewMockChannel(mc)
	h := newHarness(ch)
	joinedGame(t, h, ch)

	// No MakeMove expectation: gomock fails the test if one is sent.
	err := h.ctrl.Move(context.Background(), 0)
	assert.ErrorIs(t, err, apperror.ErrInvalidMove)
	assert.ErrorIs(t, err, apperror.ErrNotYourTurn)
	assert.Equal(t, session.StateAwaitingMove, h.ctrl.Snapshot().State)
}

func TestRemote_OccupiedCellIsNotForwarded(t *testing.T) {
	mc := gomock.NewController(t)
	ch := mocks.NewMockChannel(mc)
	h := newHarness(ch)
	joinedGame(t, h, ch)
	ctx := context.Background()

	require.NoError(t, h.ctrl.ApplyRemoteMove(ctx, boardOf("....X...."), game.PlayerO, 4))
	err := h.ctrl.Move(ctx, 4)
	assert.ErrorIs(t, err, apperror.ErrCellOccupied)
}

func TestRemote_DuplicateSnapshotIsIdempotent(t *testing.T) {
	mc := gomock.NewController(t)
	ch := mocks.NewMockChannel(mc)
	h := newHarness(ch)
	joinedGame(t, h, ch)
	ctx := context.Background()

	board := boardOf("X...O...X")
	require.NoError(t, h.ctrl.ApplyRemoteMove(ctx, board, game.PlayerO, 8))
	before := h.ctrl.Snapshot()
	renders := len(h.display.snapshots)

	require.NoError(t, h.ctrl.ApplyRemoteMove(ctx, board, game.PlayerO, 8))
	assert.Equal(t, before, h.ctrl.Snapshot())
	assert.Equal(t, renders, len(h.display.snapshots))
}

func TestRemote_WinIsCountedOnce(t *testing.T) {
	final := boardOf("XX.OOOX.X")

	tests := []struct {
		name  string
		apply func(ctx context.Context, c *session.Controller) error
	}{
		{
			name: "move then game over",
			apply: func(ctx context.Context, c *session.Controller) error {
				if err := c.ApplyRemoteMove(ctx, final, game.PlayerX, 5); err != nil {
					return err
				}
				return c.ApplyRemoteGameOver(ctx, game.PlayerO)
			},
		},
		{
			name: "game over then move",
			apply: func(ctx context.Context, c *session.Controller) error {
				if err := c.ApplyRemoteGameOver(ctx, game.PlayerO); err != nil {
					return err
				}
				return c.ApplyRemoteMove(ctx, final, game.PlayerX, 5)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mc := gomock.NewController(t)
			ch := mocks.NewMockChannel(mc)
			h := newHarness(ch)
			joinedGame(t, h, ch)
			ctx := context.Background()

			require.NoError(t, h.ctrl.ApplyRemoteMove(ctx, boardOf("XX.OO.X.X"), game.PlayerO, 8))
			require.NoError(t, tt.apply(ctx, h.ctrl))

			snap := h.ctrl.Snapshot()
			assert.Equal(t, session.StateTerminal, snap.State)
			assert.Equal(t, final, snap.Board)
			assert.Equal(t, game.PlayerO, snap.Result.Winner)
			require.NotNil(t, snap.Result.Combo)
			assert.Equal(t, game.Combo{3, 4, 5}, *snap.Result.Combo)

			// Replays of either message change nothing.
			require.NoError(t, h.ctrl.ApplyRemoteGameOver(ctx, game.PlayerO))
			require.NoError(t, h.ctrl.ApplyRemoteMove(ctx, final, game.PlayerX, 5))

			assert.Len(t, h.recorder.conclusions, 1)
			assert.Equal(t, session.Scores{O: 1}, h.ctrl.Snapshot().Scores)
		})
	}
}

func TestRemote_GameOverBeforeStartIsRejected(t *testing.T) {
	mc := gomock.NewController(t)
	ch := mocks.NewMockChannel(mc)
	h := newHarness(ch)
	ctx := context.Background()
	ch.EXPECT().CreateRoom(gomock.Any(), "Ann").Return(nil)

	require.NoError(t, h.ctrl.Host(ctx, "Ann"))
	err := h.ctrl.ApplyRemoteGameOver(ctx, game.PlayerX)
	assert.ErrorIs(t, err, apperror.ErrRemoteRejected)
	assert.Equal(t, session.StateConnecting, h.ctrl.Snapshot().State)

	require.NoError(t, h.ctrl.Establish(ctx, "ROOM42", game.PlayerX))
	err = h.ctrl.ApplyRemoteGameOver(ctx, game.None)
	assert.ErrorIs(t, err, apperror.ErrRemoteRejected)
	assert.Equal(t, session.StateWaitingForPeer, h.ctrl.Snapshot().State)

	assert.Empty(t, h.recorder.conclusions)
	assert.Equal(t, session.Scores{}, h.ctrl.Snapshot().Scores)
}

func TestRemote_GameOverWithoutFinalSnapshot(t *testing.T) {
	tests := []struct {
		name      string
		board     game.Board
		winner    game.PlayerMark
		outcome   game.Outcome
		wantCombo *game.Combo
	}{
		{name: "x wins off board", board: boardOf("XX.OO...."), winner: game.PlayerX, outcome: game.Win},
		{name: "o wins off board", board: boardOf("XX.OO...."), winner: game.PlayerO, outcome: game.Win},
		{name: "no snapshot at all", winner: game.PlayerX, outcome: game.Win},
		{name: "draw", board: boardOf("XOXXOOOX."), winner: game.None, outcome: game.Draw},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mc := gomock.NewController(t)
			ch := mocks.NewMockChannel(mc)
			h := newHarness(ch)
			joinedGame(t, h, ch)
			ctx := context.Background()

			if tt.board != (game.Board{}) {
				require.NoError(t, h.ctrl.ApplyRemoteMove(ctx, tt.board, game.PlayerX, 0))
			}
			require.NoError(t, h.ctrl.ApplyRemoteGameOver(ctx, tt.winner))

			snap := h.ctrl.Snapshot()
			assert.Equal(t, session.StateTerminal, snap.State)
			assert.Equal(t, tt.outcome, snap.Result.Outcome)
			assert.Equal(t, tt.winner, snap.Result.Winner)
			assert.Equal(t, tt.wantCombo, snap.Result.Combo)
			assert.Len(t, h.recorder.conclusions, 1)
		})
	}
}

func TestRemote_RestartIsRefused(t *testing.T) {
	mc := gomock.NewController(t)
	ch := mocks.NewMockChannel(mc)
	h := newHarness(ch)
	hostedGame(t, h, ch)

	err := h.ctrl.Restart(context.Background())
	assert.ErrorIs(t, err, apperror.ErrRemoteAuthority)
}

func TestRemote_RematchKeepsSeries(t *testing.T) {
	mc := gomock.NewController(t)
	ch := mocks.NewMockChannel(mc)
	h := newHarness(ch)
	joinedGame(t, h, ch)
	ctx := context.Background()

	require.NoError(t, h.ctrl.ApplyRemoteMove(ctx, boardOf("XXXOO...."), game.PlayerO, 2))
	require.Equal(t, session.StateTerminal, h.ctrl.Snapshot().State)

	require.NoError(t, h.ctrl.StartRemote(ctx, nil, game.PlayerO))
	snap := h.ctrl.Snapshot()
	assert.Equal(t, session.StateAwaitingMove, snap.State)
	assert.Equal(t, game.Board{}, snap.Board)
	assert.Equal(t, game.PlayerO, snap.Active)
	assert.True(t, snap.Interactive)
	assert.Equal(t, session.Scores{X: 1}, snap.Scores)
}

func TestRemote_LeaveNotifiesRelay(t *testing.T) {
	mc := gomock.NewController(t)
	ch := mocks.NewMockChannel(mc)
	h := newHarness(ch)
	hostedGame(t, h, ch)

	gomock.InOrder(
		ch.EXPECT().LeaveRoom(gomock.Any(), "ROOM42").Return(nil),
		ch.EXPECT().Close().Return(nil),
	)
	h.ctrl.Leave(context.Background())

	assert.Equal(t, session.StateMenu, h.ctrl.Snapshot().State)
}

func TestRemote_AbortWithoutLeave(t *testing.T) {
	mc := gomock.NewController(t)
	ch := mocks.NewMockChannel(mc)
	display := mocks.NewMockDisplay(mc)
	h := newHarness(ch)
	ctrl := session.NewController(session.Config{Channel: ch, Scheduler: h.scheduler, Display: display})

	ch.EXPECT().JoinRoom(gomock.Any(), "ABC123", "Ben").Return(nil)
	display.EXPECT().Render(gomock.Any()).AnyTimes()
	require.NoError(t, ctrl.Join(context.Background(), "ABC123", "Ben"))

	notice := session.Notice{Err: apperror.ErrRemoteRejected, Message: "Room not found"}
	display.EXPECT().Notify(notice)
	ch.EXPECT().Close().Return(nil)

	ctrl.Abort(context.Background(), notice, false)
	assert.Equal(t, session.StateMenu, ctrl.Snapshot().State)
}

func TestRemote_ForwardFailureAborts(t *testing.T) {
	mc := gomock.NewController(t)
	ch := mocks.NewMockChannel(mc)
	h := newHarness(ch)
	hostedGame(t, h, ch)

	ch.EXPECT().MakeMove(gomock.Any(), "ROOM42", 0).Return(errors.New("broken pipe"))
	ch.EXPECT().Close().Return(nil)

	err := h.ctrl.Move(context.Background(), 0)
	assert.ErrorIs(t, err, apperror.ErrPeerLost)
	assert.Equal(t, session.StateMenu, h.ctrl.Snapshot().State)
	require.Len(t, h.display.notices, 1)
	assert.ErrorIs(t, h.display.notices[0].Err, apperror.ErrPeerLost)
}

func TestRemote_JoinValidation(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		player  string
		wantErr error
	}{
		{name: "short code", code: "ABC12", player: "Ben", wantErr: apperror.ErrInvalidRoomCode},
		{name: "long code", code: "ABC1234", player: "Ben", wantErr: apperror.ErrInvalidRoomCode},
		{name: "blank name", code: "ABC123", player: "  ", wantErr: apperror.ErrInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mc := gomock.NewController(t)
			ch := mocks.NewMockChannel(mc)
			h := newHarness(ch)

			err := h.ctrl.Join(context.Background(), tt.code, tt.player)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, session.StateMenu, h.ctrl.Snapshot().State)
		})
	}
}

func TestRemote_OfflineController(t *testing.T) {
	h := newHarness(nil)
	assert.ErrorIs(t, h.ctrl.Host(context.Background(), "Ann"), apperror.ErrOffline)
	assert.ErrorIs(t, h.ctrl.Join(context.Background(), "ABC123", "Ann"), apperror.ErrOffline)
}
