package entity

import (
	"fmt"
	"strings"
)

// Cell is either EmptyCell or the mark of a player.
type Cell uint8

const EmptyCell Cell = 0

const BoardSize = 9

// Board is stored row-major:
//
//	0 1 2
//	3 4 5
//	6 7 8
type Board [BoardSize]Cell

// WinCombos is scanned in order, the first complete line decides the winner.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

func Mark(player Player) Cell {
	return Cell(player)
}

func (c Cell) IsEmpty() bool {
	return c == EmptyCell
}

// Owner returns NoPlayer for an empty cell.
func (c Cell) Owner() Player {
	return Player(c)
}

func (c Cell) String() string {
	return c.Owner().String()
}

func (c Cell) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Cell) UnmarshalText(text []byte) error {
	var player Player
	if err := player.UnmarshalText(text); err != nil {
		return fmt.Errorf("invalid cell: %w", err)
	}

	*c = Mark(player)

	return nil
}

func IsValidCell(cell int) bool {
	return cell >= 0 && cell < BoardSize
}

func (b Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range b {
		if cell.IsEmpty() {
			cells = append(cells, i)
		}
	}

	return cells
}

func (b Board) Occupied() int {
	count := 0
	for _, cell := range b {
		if !cell.IsEmpty() {
			count++
		}
	}

	return count
}

func (b Board) IsFull() bool {
	for _, cell := range b {
		if cell.IsEmpty() {
			return false
		}
	}

	return true
}

// Winner returns the owner of the first complete line, or NoPlayer.
func (b Board) Winner() Player {
	for _, combo := range WinCombos {
		a, m, c := b[combo[0]], b[combo[1]], b[combo[2]]
		if !a.IsEmpty() && a == m && m == c {
			return a.Owner()
		}
	}

	return NoPlayer
}

// String renders the board as three rows, "." for empty cells.
func (b Board) String() string {
	var sb strings.Builder
	for i, cell := range b {
		if cell.IsEmpty() {
			sb.WriteByte('.')
		} else {
			sb.WriteString(cell.String())
		}

		if i%3 == 2 && i != BoardSize-1 {
			sb.WriteByte('/')
		}
	}

	return sb.String()
}

// EvaluateTerminal is pure and safe to call after every move and inside search.
func EvaluateTerminal(board Board) Status {
	if winner := board.Winner(); winner != NoPlayer {
		return Status{Outcome: Won, Winner: winner}
	}

	if board.IsFull() {
		return Status{Outcome: Draw}
	}

	return Status{Outcome: InProgress}
}
