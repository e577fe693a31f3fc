package bot

import (
	"arcade/tictactoe/internal/apperror"
	"arcade/tictactoe/internal/game"
	"fmt"
	"strings"
)

// Difficulty selects the computer opponent's strategy.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Terminal scores from the computer's point of view. They are not
// discounted by depth, so a slow win scores the same as a fast one.
const (
	winScore  = 10
	lossScore = -10
	drawScore = 0
)

// mediumHardChance is the per-move probability that medium plays the hard
// strategy.
const mediumHardChance = 0.5

// RNG is the randomness the engine needs. *rand.Rand from math/rand/v2
// satisfies it.
type RNG interface {
	IntN(n int) int
	Float64() float64
}

// ParseDifficulty accepts the three difficulty names in any case.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case Easy, Medium, Hard:
		return d, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// ChooseMove picks the cell the computer playing mark should take. The board
// is passed by value, so the search never touches the caller's copy.
func ChooseMove(board game.Board, mark game.PlayerMark, difficulty Difficulty, rng RNG) (int, error) {
	index, _, err := chooseMove(board, mark, difficulty, rng)
	return index, err
}

// chooseMove also reports how many search nodes were visited; zero means the
// move was random.
func chooseMove(board game.Board, mark game.PlayerMark, difficulty Difficulty, rng RNG) (index, nodes int, err error) {
	if mark != game.PlayerX && mark != game.PlayerO {
		return -1, 0, fmt.Errorf("choose move: unknown mark %q", mark)
	}
	if game.Evaluate(board, mark).IsTerminal() {
		return -1, 0, fmt.Errorf("choose move: %w: game is over", apperror.ErrNoLegalMoves)
	}

	switch difficulty {
	case Easy:
		return easyMove(board, rng), 0, nil
	case Medium:
		index, nodes = mediumMove(board, mark, rng)
		return index, nodes, nil
	default:
		index, nodes = hardMove(board, mark)
		return index, nodes, nil
	}
}

// easyMove picks uniformly among the empty cells.
func easyMove(board game.Board, rng RNG) int {
	available := board.EmptyCells()
	return available[rng.IntN(len(available))]
}

// mediumMove rolls between hard and easy on every call.
func mediumMove(board game.Board, mark game.PlayerMark, rng RNG) (int, int) {
	if rng.Float64() < mediumHardChance {
		return hardMove(board, mark)
	}
	return easyMove(board, rng), 0
}

// hardMove runs a full minimax for mark and returns the lowest index with
// the best score, plus the number of nodes visited.
func hardMove(board game.Board, mark game.PlayerMark) (int, int) {
	s := searcher{max: mark, min: game.Opponent(mark)}

	best, bestScore := -1, lossScore-1
	for _, index := range board.EmptyCells() {
		next := board
		next[index] = mark
		score := s.minimax(next, s.min)
		if score > bestScore {
			best, bestScore = index, score
		}
	}
	return best, s.nodes
}

type searcher struct {
	max, min game.PlayerMark
	nodes    int
}

// minimax scores board with toMove about to play. Each child is a fresh
// copy of the array, so nothing needs undoing on the way back up.
func (s *searcher) minimax(board game.Board, toMove game.PlayerMark) int {
	s.nodes++

	if _, ok := game.CheckWin(board, s.min); ok {
		return lossScore
	}
	if _, ok := game.CheckWin(board, s.max); ok {
		return winScore
	}
	available := board.EmptyCells()
	if len(available) == 0 {
		return drawScore
	}

	if toMove == s.max {
		best := lossScore - 1
		for _, index := range available {
			next := board
			next[index] = toMove
			if score := s.minimax(next, s.min); score > best {
				best = score
			}
		}
		return best
	}

	best := winScore + 1
	for _, index := range available {
		next := board
		next[index] = toMove
		if score := s.minimax(next, s.max); score < best {
			best = score
		}
	}
	return best
}
