package game

import (
	"arcade/tictactoe/internal/apperror"
	"errors"
	"reflect"
	"testing"
)

func boardOf(cells string) Board {
	var b Board
	for i, c := range cells {
		switch c {
		case 'X':
			b[i] = PlayerX
		case 'O':
			b[i] = PlayerO
		}
	}
	return b
}

func TestCheckWin_EveryCombo(t *testing.T) {
	for _, combo := range WinCombos {
		for _, mark := range []PlayerMark{PlayerX, PlayerO} {
			var b Board
			for _, idx := range combo {
				b[idx] = mark
			}

			got, ok := CheckWin(b, mark)
			if !ok || got != combo {
				t.Errorf("CheckWin(%s, %s) = %v, %v; want %v, true", b, mark, got, ok, combo)
			}
			if _, ok := CheckWin(b, Opponent(mark)); ok {
				t.Errorf("CheckWin(%s, %s) found a win for the wrong mark", b, Opponent(mark))
			}

			// Two of three is never a win.
			b[combo[2]] = None
			if _, ok := CheckWin(b, mark); ok {
				t.Errorf("CheckWin(%s, %s) reported a win with only two cells", b, mark)
			}
		}
	}
}

func TestCheckWin_AllBoards(t *testing.T) {
	marks := [3]PlayerMark{None, PlayerX, PlayerO}
	for code := 0; code < 19683; code++ {
		var b Board
		n := code
		for i := range b {
			b[i] = marks[n%3]
			n /= 3
		}

		for _, mark := range []PlayerMark{PlayerX, PlayerO} {
			var want *Combo
			for _, combo := range WinCombos {
				if b[combo[0]] == mark && b[combo[1]] == mark && b[combo[2]] == mark {
					c := combo
					want = &c
					break
				}
			}

			got, ok := CheckWin(b, mark)
			if ok != (want != nil) {
				t.Fatalf("CheckWin(%s, %s) ok = %v, want %v", b, mark, ok, want != nil)
			}
			if ok && got != *want {
				t.Fatalf("CheckWin(%s, %s) = %v, want first combo %v", b, mark, got, *want)
			}
		}
	}
}

func TestCheckWin_FirstComboInListOrder(t *testing.T) {
	// Row 0 and column 0 both belong to X; rows come first.
	b := boardOf("XXXX..X..")
	got, ok := CheckWin(b, PlayerX)
	if !ok || got != (Combo{0, 1, 2}) {
		t.Errorf("CheckWin() = %v, %v; want [0 1 2], true", got, ok)
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		board   Board
		index   int
		mark    PlayerMark
		wantErr error
	}{
		{name: "empty cell", board: Board{}, index: 4, mark: PlayerX},
		{name: "occupied cell", board: boardOf("....O...."), index: 4, mark: PlayerX, wantErr: apperror.ErrCellOccupied},
		{name: "below range", board: Board{}, index: -1, mark: PlayerX, wantErr: apperror.ErrInvalidCell},
		{name: "above range", board: Board{}, index: 9, mark: PlayerO, wantErr: apperror.ErrInvalidCell},
		{name: "empty mark", board: Board{}, index: 0, mark: None, wantErr: apperror.ErrInvalidMove},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.board
			got, err := tt.board.Apply(tt.index, tt.mark)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) || !errors.Is(err, apperror.ErrInvalidMove) {
					t.Fatalf("Apply() error = %v, want %v wrapped in ErrInvalidMove", err, tt.wantErr)
				}
				if got != before {
					t.Errorf("Apply() changed the board on error: %s", got)
				}
				return
			}

			if err != nil {
				t.Fatalf("Apply() unexpected error: %v", err)
			}
			if got[tt.index] != tt.mark {
				t.Errorf("Apply() cell %d = %q, want %q", tt.index, got[tt.index], tt.mark)
			}
			if tt.board != before {
				t.Errorf("Apply() mutated its receiver")
			}
		})
	}
}

func TestIsFull(t *testing.T) {
	tests := []struct {
		name  string
		board Board
		want  bool
	}{
		{name: "Empty board is not full", board: Board{}, want: false},
		{name: "Partial board is not full", board: boardOf("X...O...."), want: false},
		{name: "Full board is full", board: boardOf("XOXXOOOXX"), want: true},
		{name: "Full board with winner is full", board: boardOf("XXXOOXOXO"), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.board.IsFull(); got != tt.want {
				t.Errorf("IsFull() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	diag := Combo{0, 4, 8}
	row := Combo{0, 1, 2}

	tests := []struct {
		name  string
		board Board
		mover PlayerMark
		want  Result
	}{
		{name: "in progress", board: boardOf("X...O...."), mover: PlayerO, want: Result{Outcome: InProgress}},
		{name: "diagonal win", board: boardOf("XOO.X...X"), mover: PlayerX, want: WinResult(PlayerX, &diag)},
		{name: "draw", board: boardOf("XOXXOOOXX"), mover: PlayerX, want: DrawResult()},
		{name: "full and winning is a win", board: boardOf("XXXOOXOXO"), mover: PlayerX, want: WinResult(PlayerX, &row)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.board, tt.mover)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Evaluate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFindWinningCombo(t *testing.T) {
	b := boardOf("OOOXX.X..")
	if got := FindWinningCombo(b, PlayerO); got == nil || *got != (Combo{0, 1, 2}) {
		t.Errorf("FindWinningCombo(O) = %v, want [0 1 2]", got)
	}
	if got := FindWinningCombo(b, PlayerX); got != nil {
		t.Errorf("FindWinningCombo(X) = %v, want nil", *got)
	}
}

func TestEmptyCells(t *testing.T) {
	got := boardOf("X.O.X.O.X").EmptyCells()
	want := []int{1, 3, 5, 7}
	if len(got) != len(want) {
		t.Fatalf("EmptyCells() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("EmptyCells() = %v, want %v", got, want)
		}
	}
}

func TestBoardFromSlice(t *testing.T) {
	if _, ok := BoardFromSlice(make([]PlayerMark, 8)); ok {
		t.Error("BoardFromSlice accepted 8 cells")
	}
	b, ok := BoardFromSlice([]PlayerMark{PlayerX, None, None, None, PlayerO, None, None, None, None})
	if !ok || b != boardOf("X...O....") {
		t.Errorf("BoardFromSlice() = %s, %v", b, ok)
	}
}
