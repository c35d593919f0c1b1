package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrOutOfRange  = errors.New("cell index out of range")
	ErrNoLegalMove = errors.New("no legal move")

	ErrCellOccupied = fmt.Errorf("%w: cell is already occupied", ErrIllegalMove)
	ErrNotYourTurn  = fmt.Errorf("%w: it's not your turn", ErrIllegalMove)
	ErrGameFinished = fmt.Errorf("%w: game is already finished", ErrIllegalMove)

	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidMode     = errors.New("invalid opponent mode")
	ErrInvalidPlayer   = errors.New("invalid player")
	ErrNotComputerTurn = errors.New("it's not the computer's turn")
)
