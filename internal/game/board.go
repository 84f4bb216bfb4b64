package game

import (
	"encoding/json"
	"errors"
	"fmt"
)

const Size = 3

var (
	ErrOutOfRange  = errors.New("cell coordinates out of range")
	ErrInvalidMark = errors.New("invalid player mark")

	// WinPatterns holds the eight winning lines: three rows, three columns
	// and both diagonals, as (row, col) triples.
	WinPatterns = [8][3][2]int{
		{{0, 0}, {0, 1}, {0, 2}},
		{{1, 0}, {1, 1}, {1, 2}},
		{{2, 0}, {2, 1}, {2, 2}},
		{{0, 0}, {1, 0}, {2, 0}},
		{{0, 1}, {1, 1}, {2, 1}},
		{{0, 2}, {1, 2}, {2, 2}},
		{{0, 0}, {1, 1}, {2, 2}},
		{{0, 2}, {1, 1}, {2, 0}},
	}
)

// Board is a 3x3 grid of marks. It knows nothing about players or turns;
// callers mutate it only through Place and Reset.
type Board struct {
	cells  [Size][Size]Mark
	filled int
}

func NewBoard() *Board {
	return &Board{}
}

// IsEmpty reports whether the cell at (row, col) holds no mark.
func (that *Board) IsEmpty(row, col int) (bool, error) {
	if !inRange(row, col) {
		return false, fmt.Errorf("%w: (%d, %d)", ErrOutOfRange, row, col)
	}

	return that.cells[row][col] == Empty, nil
}

// Place writes mark into the cell at (row, col). An occupied target yields a
// rejected result and leaves the board untouched; a successful placement
// returns the recomputed board state.
func (that *Board) Place(row, col int, mark Mark) (MoveResult, error) {
	if !inRange(row, col) {
		return MoveResult{}, fmt.Errorf("%w: (%d, %d)", ErrOutOfRange, row, col)
	}

	if !mark.IsPlayer() {
		return MoveResult{}, fmt.Errorf("%w: %d", ErrInvalidMark, mark)
	}

	if that.cells[row][col] != Empty {
		return MoveResult{Rejected: true}, nil
	}

	that.cells[row][col] = mark
	that.filled++

	return MoveResult{State: that.state()}, nil
}

// Reset returns every cell to Empty.
func (that *Board) Reset() {
	that.cells = [Size][Size]Mark{}
	that.filled = 0
}

// Snapshot returns a copy of the grid; mutating it does not affect the board.
func (that *Board) Snapshot() [Size][Size]Mark {
	return that.cells
}

// FillCount returns the number of non-empty cells.
func (that *Board) FillCount() int {
	return that.filled
}

// state derives the board state from the grid. The win check runs before the
// fill check so a ninth placement that completes a line reports the win, not
// a tie.
func (that *Board) state() State {
	for _, pattern := range WinPatterns {
		a := that.cells[pattern[0][0]][pattern[0][1]]
		b := that.cells[pattern[1][0]][pattern[1][1]]
		c := that.cells[pattern[2][0]][pattern[2][1]]

		if a != Empty && a == b && b == c {
			if a == MarkX {
				return WinX
			}
			return WinO
		}
	}

	if that.filled == Size*Size {
		return Tie
	}

	return Ongoing
}

func inRange(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

type boardJSON struct {
	Cells [Size][Size]Mark `json:"cells"`
}

func (that *Board) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(boardJSON{Cells: that.cells})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal board: %w", err)
	}

	return data, nil
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var raw boardJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal board: %w", err)
	}

	that.cells = raw.Cells
	that.filled = 0

	// the fill count is derived, never trusted from the wire
	for row := range that.cells {
		for col := range that.cells[row] {
			cell := that.cells[row][col]
			if cell != Empty && !cell.IsPlayer() {
				return fmt.Errorf("%w: cell (%d, %d) holds %d", ErrInvalidMark, row, col, cell)
			}
			if cell != Empty {
				that.filled++
			}
		}
	}

	return nil
}
