package game

import (
	"arcade/tictactoe/internal/apperror"
	"fmt"
)

// PlayerMark represents the mark of a player (X, O) or an empty cell.
type PlayerMark string

const (
	None    PlayerMark = ""
	PlayerX PlayerMark = "X"
	PlayerO PlayerMark = "O"
)

// Board boundaries
const (
	CellCount = 9
	BorderMin = 0
	BorderMax = CellCount - 1
)

// Board is the 3x3 grid in row-major order. It is a value type: copying a
// Board copies every cell.
type Board [CellCount]PlayerMark

// Combo is one of the index triples that wins the game.
type Combo [3]int

// WinCombos lists rows, then columns, then diagonals. CheckWin reports the
// first match in this order.
var WinCombos = [8]Combo{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Apply returns a copy of the board with mark placed at index. The receiver
// is left untouched.
func (b Board) Apply(index int, mark PlayerMark) (Board, error) {
	if index < BorderMin || index > BorderMax {
		return b, fmt.Errorf("%w: %w: cell %d", apperror.ErrInvalidMove, apperror.ErrInvalidCell, index)
	}
	if mark != PlayerX && mark != PlayerO {
		return b, fmt.Errorf("%w: unknown mark %q", apperror.ErrInvalidMove, mark)
	}
	if b[index] != None {
		return b, fmt.Errorf("%w: %w: cell %d", apperror.ErrInvalidMove, apperror.ErrCellOccupied, index)
	}

	b[index] = mark
	return b, nil
}

// CheckWin returns the first combo fully owned by mark.
func CheckWin(b Board, mark PlayerMark) (Combo, bool) {
	if mark == None {
		return Combo{}, false
	}
	for _, combo := range WinCombos {
		if b[combo[0]] == mark && b[combo[1]] == mark && b[combo[2]] == mark {
			return combo, true
		}
	}
	return Combo{}, false
}

// IsFull reports whether no empty cell remains.
func (b Board) IsFull() bool {
	for _, cell := range b {
		if cell == None {
			return false
		}
	}
	return true
}

// EmptyCells returns the free indices in ascending order.
func (b Board) EmptyCells() []int {
	cells := make([]int, 0, CellCount)
	for i, cell := range b {
		if cell == None {
			cells = append(cells, i)
		}
	}
	return cells
}

// Count returns how many cells hold mark.
func (b Board) Count(mark PlayerMark) int {
	n := 0
	for _, cell := range b {
		if cell == mark {
			n++
		}
	}
	return n
}

// String renders the board as three rows, using '.' for empty cells.
func (b Board) String() string {
	out := make([]byte, 0, 12)
	for i, cell := range b {
		if cell == None {
			out = append(out, '.')
		} else {
			out = append(out, cell[0])
		}
		if i%3 == 2 && i != BorderMax {
			out = append(out, '/')
		}
	}
	return string(out)
}
