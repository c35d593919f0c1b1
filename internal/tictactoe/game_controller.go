package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// ApplyMove places player's mark on cell. Every check runs before the first write,
// so a rejected move leaves the session exactly as it was.
func ApplyMove(session *entity.GameSession, player entity.Player, cell int) error {
	if !entity.IsValidCell(cell) {
		return fmt.Errorf("%w: cell %d", apperror.ErrOutOfRange, cell)
	}

	if err := session.ConfirmOngoingState(); err != nil {
		return err
	}

	if err := validateMove(session, player, cell); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	session.Board[cell] = entity.Mark(player)
	session.Count++
	session.Turn = player.Opponent()

	updateGameStatus(session)

	return nil
}

// Reset - starts a new game, the score tally is kept.
func Reset(session *entity.GameSession) {
	session.Board = entity.Board{}
	session.Count = 0
	session.Turn = entity.FirstPlayer
	session.Status = entity.Status{Outcome: entity.InProgress}
}

// SetMode - switches the opponent mode and starts a new game.
func SetMode(session *entity.GameSession, mode entity.Mode) error {
	if !mode.IsValid() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidMode, mode)
	}

	session.Mode = mode
	Reset(session)

	return nil
}

// validateMove - checks if the move is valid.
func validateMove(session *entity.GameSession, player entity.Player, cell int) error {
	if session.Turn != player {
		return apperror.ErrNotYourTurn
	}

	if !session.Board[cell].IsEmpty() {
		return apperror.ErrCellOccupied
	}

	return nil
}

// updateGameStatus - checks the game status after a move and credits the winner.
func updateGameStatus(session *entity.GameSession) {
	session.Status = entity.EvaluateTerminal(session.Board)

	if session.Status.Outcome == entity.Won {
		session.Score.Credit(session.Status.Winner)
	}
}
