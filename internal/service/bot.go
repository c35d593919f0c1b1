package service

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

type BotService interface {
	MakeTurn(session *entity.GameSession) (int, error)
}

type moveSelector interface {
	SelectMove(board entity.Board, computer entity.Player) (int, error)
}

type botService struct {
	engine moveSelector
}

func NewBotService(engine moveSelector) BotService {
	return &botService{
		engine: engine,
	}
}

// MakeTurn - selects and applies the computer's move, returns the chosen cell.
func (that *botService) MakeTurn(session *entity.GameSession) (int, error) {
	computer := session.Mode.ComputerPlayer()
	if computer == entity.NoPlayer {
		return -1, fmt.Errorf("%w: mode %s has no computer player", apperror.ErrNotComputerTurn, session.Mode)
	}

	if session.IsFinished() {
		return -1, fmt.Errorf("%w: game is already %s", apperror.ErrNoLegalMove, session.Status)
	}

	if session.Turn != computer {
		return -1, apperror.ErrNotComputerTurn
	}

	cell, err := that.engine.SelectMove(session.Board, computer)
	if err != nil {
		return -1, fmt.Errorf("failed to select move: %w", err)
	}

	if err = tictactoe.ApplyMove(session, computer, cell); err != nil {
		return -1, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return cell, nil
}
