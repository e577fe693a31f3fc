package game

// Opponent returns the other player's mark. The empty mark maps to PlayerX,
// which always opens.
func Opponent(mark PlayerMark) PlayerMark {
	if mark == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// BoardFromSlice copies a wire board into a Board. It reports false when
// the slice does not hold exactly nine cells.
func BoardFromSlice(cells []PlayerMark) (Board, bool) {
	var b Board
	if len(cells) != CellCount {
		return b, false
	}
	copy(b[:], cells)
	return b, true
}

// BoardToSlice converts the board to a slice for the wire.
func BoardToSlice(b Board) []PlayerMark {
	cells := make([]PlayerMark, CellCount)
	copy(cells, b[:])
	return cells
}
