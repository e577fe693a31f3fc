package game

// Outcome is the coarse state of a game.
type Outcome string

const (
	InProgress Outcome = "in_progress"
	Win        Outcome = "win"
	Draw       Outcome = "draw"
)

// Result describes how a game ended. Combo is nil for draws and for wins
// whose line is not visible on the board.
type Result struct {
	Outcome Outcome    `json:"outcome"`
	Winner  PlayerMark `json:"winner,omitempty"`
	Combo   *Combo     `json:"combo,omitempty"`
}

// IsTerminal reports whether the result ends the game.
func (r Result) IsTerminal() bool {
	return r.Outcome == Win || r.Outcome == Draw
}

// Evaluate checks the board after mover has played. A win by mover is
// checked first, then a win by the other mark, then a full board. A board
// that is both full and winning is a win.
func Evaluate(b Board, mover PlayerMark) Result {
	for _, mark := range []PlayerMark{mover, Opponent(mover)} {
		if combo, ok := CheckWin(b, mark); ok {
			return WinResult(mark, &combo)
		}
	}
	if b.IsFull() {
		return DrawResult()
	}
	return Result{Outcome: InProgress}
}

// WinResult builds a win for mark.
func WinResult(mark PlayerMark, combo *Combo) Result {
	return Result{Outcome: Win, Winner: mark, Combo: combo}
}

// DrawResult builds a draw.
func DrawResult() Result {
	return Result{Outcome: Draw}
}

// FindWinningCombo scans for the first combo fully owned by mark. It is
// used when the relay reports a winner without the line.
func FindWinningCombo(b Board, mark PlayerMark) *Combo {
	combo, ok := CheckWin(b, mark)
	if !ok {
		return nil
	}
	return &combo
}
