package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// Mode is the opponent mode chosen by the presentation layer.
type Mode string

const (
	// ModeFriend - both sides are driven by humans.
	ModeFriend Mode = "friend"
	// ModeAI - the second side is driven by the move search engine.
	ModeAI Mode = "ai"
)

func ParseMode(value string) (Mode, error) {
	mode := Mode(value)
	if !mode.IsValid() {
		return "", fmt.Errorf("%w: %q", apperror.ErrInvalidMode, value)
	}

	return mode, nil
}

func (m Mode) IsValid() bool {
	return m == ModeFriend || m == ModeAI
}

// ComputerPlayer returns the side played by the engine, NoPlayer in friend mode.
func (m Mode) ComputerPlayer() Player {
	if m == ModeAI {
		return SecondPlayer
	}

	return NoPlayer
}
