package search

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	o = entity.Cell(entity.PlayerO)
	x = entity.Cell(entity.PlayerX)
	e = entity.EmptyCell
)

// fixedRand always returns the same index, clamped to n.
type fixedRand struct {
	index int
	calls []int
}

func (that *fixedRand) IntN(n int) int {
	that.calls = append(that.calls, n)
	if that.index >= n {
		return n - 1
	}
	return that.index
}

func sideToMove(board entity.Board) entity.Player {
	if board.Occupied()%2 == 0 {
		return entity.FirstPlayer
	}
	return entity.SecondPlayer
}

// reachable returns every in-progress position reachable by alternating play.
func reachable() []entity.Board {
	seen := make(map[entity.Board]struct{})
	var boards []entity.Board

	var walk func(board entity.Board)
	walk = func(board entity.Board) {
		if _, ok := seen[board]; ok {
			return
		}
		seen[board] = struct{}{}

		if entity.EvaluateTerminal(board).IsTerminal() {
			return
		}
		boards = append(boards, board)

		mover := sideToMove(board)
		for _, cell := range board.EmptyCells() {
			next := board
			next[cell] = entity.Mark(mover)
			walk(next)
		}
	}
	walk(entity.Board{})

	return boards
}

// solve is a memoized negamax: 1 when mover can force a win, 0 a draw, -1 a loss.
func solve(board entity.Board, mover entity.Player, memo map[entity.Board]int) int {
	if value, ok := memo[board]; ok {
		return value
	}

	var value int
	switch winner := board.Winner(); {
	case winner == mover:
		value = 1
	case winner != entity.NoPlayer:
		value = -1
	case board.IsFull():
		value = 0
	default:
		value = -2
		for _, cell := range board.EmptyCells() {
			next := board
			next[cell] = entity.Mark(mover)
			value = max(value, -solve(next, mover.Opponent(), memo))
		}
	}

	memo[board] = value

	return value
}

func TestEngine_SelectMove_BlocksThreat(t *testing.T) {
	// Given: O threatens the top row and X is to move
	board := entity.Board{
		o, o, e,
		e, x, e,
		e, e, e,
	}
	engine := NewEngine(WithoutOpening())

	// When: selecting the computer's move for X
	cell, err := engine.SelectMove(board, entity.PlayerX)

	// Then: X must block at 2
	require.NoError(t, err)
	assert.Equal(t, 2, cell)
}

func TestEngine_SelectMove_TakesWin(t *testing.T) {
	// Given: X can win on the middle row while O also threatens
	board := entity.Board{
		o, o, e,
		x, x, e,
		o, e, e,
	}
	engine := NewEngine()

	// When: selecting X's move
	cell, err := engine.SelectMove(board, entity.PlayerX)

	// Then: X plays 5; 2 would only block and lose the tempo
	require.NoError(t, err)
	assert.Equal(t, 5, cell)
}

func TestEngine_SelectMove_DoesNotMutateBoard(t *testing.T) {
	board := entity.Board{
		o, e, e,
		e, x, e,
		e, e, o,
	}
	before := board

	_, err := NewEngine().SelectMove(board, entity.PlayerX)

	require.NoError(t, err)
	assert.Equal(t, before, board)
}

func TestEngine_SelectMove_Errors(t *testing.T) {
	engine := NewEngine()

	t.Run("Full board returns ErrNoLegalMove", func(t *testing.T) {
		board := entity.Board{
			o, x, o,
			o, x, x,
			x, o, o,
		}

		cell, err := engine.SelectMove(board, entity.PlayerX)

		require.ErrorIs(t, err, apperror.ErrNoLegalMove)
		assert.Equal(t, -1, cell)
	})

	t.Run("Decided board returns ErrNoLegalMove", func(t *testing.T) {
		board := entity.Board{
			o, o, o,
			x, x, e,
			e, e, e,
		}

		_, err := engine.SelectMove(board, entity.PlayerX)

		require.ErrorIs(t, err, apperror.ErrNoLegalMove)
	})

	t.Run("Invalid computer player", func(t *testing.T) {
		_, err := engine.SelectMove(entity.Board{}, entity.NoPlayer)

		require.ErrorIs(t, err, apperror.ErrInvalidPlayer)
	})
}

func TestEngine_OpeningHeuristic(t *testing.T) {
	t.Run("Empty board picks from the opening set", func(t *testing.T) {
		for index := range len(DefaultOpeningSet) {
			// Given: a deterministic random source
			random := &fixedRand{index: index}
			engine := NewEngine(WithRand(random))

			// When: the computer opens the game
			cell, err := engine.SelectMove(entity.Board{}, entity.PlayerO)

			// Then: the move is the chosen member of {0,2,4,6,8}
			require.NoError(t, err)
			assert.Equal(t, DefaultOpeningSet[index], cell)
			assert.Equal(t, []int{5}, random.calls)
		}
	})

	t.Run("One occupied cell restricts the set to free cells", func(t *testing.T) {
		// Given: O took the centre
		board := entity.Board{e, e, e, e, o, e, e, e, e}
		random := &fixedRand{index: 1}
		engine := NewEngine(WithRand(random))

		// When: X makes its first move
		cell, err := engine.SelectMove(board, entity.PlayerX)

		// Then: only the four corners are candidates
		require.NoError(t, err)
		assert.Equal(t, 2, cell)
		assert.Equal(t, []int{4}, random.calls)
	})

	t.Run("Falls through to search when the set is exhausted", func(t *testing.T) {
		// Given: an opening set whose only cell is taken
		board := entity.Board{e, e, e, e, o, e, e, e, e}
		random := &fixedRand{}
		engine := NewEngine(WithRand(random), WithOpeningSet(4))

		// When: X makes its first move
		cell, err := engine.SelectMove(board, entity.PlayerX)

		// Then: full search answers with the lowest optimal corner
		require.NoError(t, err)
		assert.Equal(t, 0, cell)
		assert.Empty(t, random.calls)
	})

	t.Run("Not used after the first move", func(t *testing.T) {
		// Given: a board with two marks
		board := entity.Board{o, e, e, e, x, e, e, e, e}
		random := &fixedRand{}
		engine := NewEngine(WithRand(random))

		// When: selecting a move
		_, err := engine.SelectMove(board, entity.PlayerO)

		// Then: the random source is never consulted
		require.NoError(t, err)
		assert.Empty(t, random.calls)
	})
}

func TestEngine_SelectMove_IsOptimalOnAllReachableBoards(t *testing.T) {
	engine := NewEngine(WithoutOpening())
	memo := make(map[entity.Board]int)

	for _, board := range reachable() {
		computer := sideToMove(board)

		// When: the computer moves on any open position
		cell, err := engine.SelectMove(board, computer)
		require.NoError(t, err, board.String())

		// Then: the cell was empty
		require.True(t, board[cell].IsEmpty(), "cell %d on %s", cell, board)

		// And: the move keeps the game-theoretic value of the position
		next := board
		next[cell] = entity.Mark(computer)
		require.Equal(t, solve(board, computer, memo), -solve(next, computer.Opponent(), memo),
			"cell %d on %s", cell, board)
	}
}

func TestEngine_SelfPlayEndsInDraw(t *testing.T) {
	// Given: full search on both sides
	engine := NewEngine(WithoutOpening())
	session := entity.NewGameSession("self", entity.ModeFriend)

	// When: the computer plays itself from an empty board
	for session.IsOngoing() {
		cell, err := engine.SelectMove(session.Board, session.Turn)
		require.NoError(t, err)

		session.Board[cell] = entity.Mark(session.Turn)
		session.Count++
		session.Turn = session.Turn.Opponent()
		session.Status = entity.EvaluateTerminal(session.Board)
	}

	// Then: optimal play always draws
	assert.Equal(t, entity.Status{Outcome: entity.Draw}, session.Status)
	assert.Equal(t, entity.BoardSize, session.Count)
}

func TestEngine_DepthScoring(t *testing.T) {
	// Given: O can win now at 8, or set up a double threat at 2
	board := entity.Board{
		o, x, e,
		x, o, e,
		e, e, e,
	}

	t.Run("Ply-blind scoring keeps the lowest winning index", func(t *testing.T) {
		cell, err := NewEngine().SelectMove(board, entity.PlayerO)

		require.NoError(t, err)
		assert.Equal(t, 2, cell)
	})

	t.Run("Depth scoring takes the immediate win", func(t *testing.T) {
		cell, err := NewEngine(WithDepthScoring()).SelectMove(board, entity.PlayerO)

		require.NoError(t, err)
		assert.Equal(t, 8, cell)
	})

	t.Run("Depth scoring always finishes the game when it can", func(t *testing.T) {
		engine := NewEngine(WithoutOpening(), WithDepthScoring())

		for _, position := range reachable() {
			computer := sideToMove(position)

			canWin := false
			for _, cell := range position.EmptyCells() {
				next := position
				next[cell] = entity.Mark(computer)
				if next.Winner() == computer {
					canWin = true
					break
				}
			}
			if !canWin {
				continue
			}

			cell, err := engine.SelectMove(position, computer)
			require.NoError(t, err)

			position[cell] = entity.Mark(computer)
			require.Equal(t, computer, position.Winner(), position.String())
		}
	})
}

func TestScore(t *testing.T) {
	won := entity.Board{x, x, x, o, o, e, e, e, e}
	drawn := entity.Board{o, x, o, o, x, x, x, o, o}

	score, ok := Score(won, entity.PlayerX)
	assert.True(t, ok)
	assert.Equal(t, WinScore, score)

	score, ok = Score(won, entity.PlayerO)
	assert.True(t, ok)
	assert.Equal(t, LossScore, score)

	score, ok = Score(drawn, entity.PlayerX)
	assert.True(t, ok)
	assert.Equal(t, DrawScore, score)

	_, ok = Score(entity.Board{}, entity.PlayerX)
	assert.False(t, ok)
}
