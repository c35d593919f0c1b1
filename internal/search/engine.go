// Package search selects moves for the computer player with a full-depth minimax search.
package search

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	WinScore  = 10
	LossScore = -10
	DrawScore = 0
)

// DefaultOpeningSet holds the four corners and the centre.
var DefaultOpeningSet = []int{0, 2, 4, 6, 8}

// Randomizer picks an index in [0, n).
type Randomizer interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int {
	return rand.IntN(n) //nolint: gosec // move variety only
}

type Option func(*Engine)

// WithRand replaces the random source used by the opening heuristic.
func WithRand(r Randomizer) Option {
	return func(that *Engine) {
		that.rand = r
	}
}

// WithOpeningSet replaces the cells the opening heuristic picks from.
func WithOpeningSet(cells ...int) Option {
	return func(that *Engine) {
		that.opening = append([]int(nil), cells...)
	}
}

// WithoutOpening forces a full search on every move.
func WithoutOpening() Option {
	return func(that *Engine) {
		that.useOpening = false
	}
}

// WithDepthScoring makes the engine prefer faster wins and slower losses.
func WithDepthScoring() Option {
	return func(that *Engine) {
		that.depthScoring = true
	}
}

// Engine is stateless between calls and safe for concurrent use
// as long as its Randomizer is.
type Engine struct {
	rand         Randomizer
	opening      []int
	useOpening   bool
	depthScoring bool
}

func NewEngine(opts ...Option) *Engine {
	engine := &Engine{
		rand:       globalRand{},
		opening:    DefaultOpeningSet,
		useOpening: true,
	}

	for _, opt := range opts {
		opt(engine)
	}

	return engine
}

// SelectMove returns the cell the computer should play. The board is a private copy,
// trial moves made during the search never reach the caller.
func (that *Engine) SelectMove(board entity.Board, computer entity.Player) (int, error) {
	if !computer.IsValid() {
		return -1, fmt.Errorf("%w: computer %d", apperror.ErrInvalidPlayer, computer)
	}

	if board.IsFull() {
		return -1, fmt.Errorf("%w: board is full", apperror.ErrNoLegalMove)
	}

	if status := entity.EvaluateTerminal(board); status.IsTerminal() {
		return -1, fmt.Errorf("%w: game is already %s", apperror.ErrNoLegalMove, status)
	}

	if that.useOpening && board.Occupied() <= 1 {
		if cell, ok := that.openingMove(board); ok {
			return cell, nil
		}
	}

	cell, _ := that.bestMove(&board, computer)

	return cell, nil
}

// openingMove - picks a random free cell from the opening set.
func (that *Engine) openingMove(board entity.Board) (int, bool) {
	free := make([]int, 0, len(that.opening))
	for _, cell := range that.opening {
		if entity.IsValidCell(cell) && board[cell].IsEmpty() {
			free = append(free, cell)
		}
	}

	if len(free) == 0 {
		return -1, false
	}

	return free[that.rand.IntN(len(free))], true
}

// bestMove - ties keep the lowest cell index.
func (that *Engine) bestMove(board *entity.Board, computer entity.Player) (int, int) {
	bestCell, bestScore := -1, math.MinInt

	for cell := range board {
		if !board[cell].IsEmpty() {
			continue
		}

		board[cell] = entity.Mark(computer)
		score := that.minimax(board, computer, 1, false)
		board[cell] = entity.EmptyCell

		if score > bestScore {
			bestCell, bestScore = cell, score
		}
	}

	return bestCell, bestScore
}

func (that *Engine) minimax(board *entity.Board, computer entity.Player, depth int, maximizing bool) int {
	if score, ok := that.score(*board, computer, depth); ok {
		return score
	}

	mover := computer
	bestScore := math.MinInt
	if !maximizing {
		mover = computer.Opponent()
		bestScore = math.MaxInt
	}

	for cell := range board {
		if !board[cell].IsEmpty() {
			continue
		}

		board[cell] = entity.Mark(mover)
		score := that.minimax(board, computer, depth+1, !maximizing)
		board[cell] = entity.EmptyCell

		if maximizing {
			bestScore = max(bestScore, score)
		} else {
			bestScore = min(bestScore, score)
		}
	}

	return bestScore
}

func (that *Engine) score(board entity.Board, computer entity.Player, depth int) (int, bool) {
	score, ok := Score(board, computer)
	if !ok || !that.depthScoring {
		return score, ok
	}

	switch {
	case score > 0:
		return score - depth, true
	case score < 0:
		return score + depth, true
	default:
		return score, true
	}
}

// Score is the ply-blind terminal score from the maximizer's point of view.
// The second result is false while the game is still in progress.
func Score(board entity.Board, maximizer entity.Player) (int, bool) {
	status := entity.EvaluateTerminal(board)

	switch status.Outcome {
	case entity.Won:
		if status.Winner == maximizer {
			return WinScore, true
		}
		return LossScore, true
	case entity.Draw:
		return DrawScore, true
	default:
		return 0, false
	}
}
