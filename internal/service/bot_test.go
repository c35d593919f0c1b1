package service

import (
	"errors"
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/search"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errEngineBroken = errors.New("engine broken")

type mockSelector struct {
	mock.Mock
}

func (that *mockSelector) SelectMove(board entity.Board, computer entity.Player) (int, error) {
	args := that.Called(board, computer)
	return args.Int(0), args.Error(1)
}

func TestBotService_MakeTurn(t *testing.T) {
	t.Run("Applies the engine's move for X", func(t *testing.T) {
		// Given: an AI session where O has opened in the centre
		session := entity.NewGameSession("1", entity.ModeAI)
		require.NoError(t, tictactoe.ApplyMove(session, entity.PlayerO, 4))

		selector := &mockSelector{}
		selector.On("SelectMove", session.Board, entity.PlayerX).Return(8, nil).Once()
		bot := NewBotService(selector)

		// When: the bot makes its turn
		cell, err := bot.MakeTurn(session)

		// Then: the move is applied and the turn goes back to O
		require.NoError(t, err)
		assert.Equal(t, 8, cell)
		assert.Equal(t, entity.Mark(entity.PlayerX), session.Board[8])
		assert.Equal(t, entity.PlayerO, session.Turn)
		assert.Equal(t, 2, session.Count)
		selector.AssertExpectations(t)
	})

	t.Run("Blocks a threat with the real engine", func(t *testing.T) {
		// Given: O threatens the top row
		session := entity.NewGameSession("1", entity.ModeAI)
		require.NoError(t, tictactoe.ApplyMove(session, entity.PlayerO, 0))
		require.NoError(t, tictactoe.ApplyMove(session, entity.PlayerX, 4))
		require.NoError(t, tictactoe.ApplyMove(session, entity.PlayerO, 1))
		bot := NewBotService(search.NewEngine())

		// When: the bot makes its turn
		cell, err := bot.MakeTurn(session)

		// Then: it blocks at 2
		require.NoError(t, err)
		assert.Equal(t, 2, cell)
	})

	t.Run("Refuses in friend mode", func(t *testing.T) {
		session := entity.NewGameSession("1", entity.ModeFriend)
		bot := NewBotService(&mockSelector{})

		_, err := bot.MakeTurn(session)

		require.ErrorIs(t, err, apperror.ErrNotComputerTurn)
	})

	t.Run("Refuses on the human's turn", func(t *testing.T) {
		session := entity.NewGameSession("1", entity.ModeAI)
		bot := NewBotService(&mockSelector{})

		_, err := bot.MakeTurn(session)

		require.ErrorIs(t, err, apperror.ErrNotComputerTurn)
	})

	t.Run("Refuses on a finished game", func(t *testing.T) {
		session := entity.NewGameSession("1", entity.ModeAI)
		session.Status = entity.Status{Outcome: entity.Draw}
		session.Turn = entity.PlayerX
		bot := NewBotService(&mockSelector{})

		_, err := bot.MakeTurn(session)

		require.ErrorIs(t, err, apperror.ErrNoLegalMove)
	})

	t.Run("Engine errors leave the session untouched", func(t *testing.T) {
		session := entity.NewGameSession("1", entity.ModeAI)
		require.NoError(t, tictactoe.ApplyMove(session, entity.PlayerO, 4))
		before := *session

		selector := &mockSelector{}
		selector.On("SelectMove", mock.Anything, entity.PlayerX).Return(-1, errEngineBroken).Once()
		bot := NewBotService(selector)

		_, err := bot.MakeTurn(session)

		require.ErrorIs(t, err, errEngineBroken)
		assert.Equal(t, before, *session)
	})
}
