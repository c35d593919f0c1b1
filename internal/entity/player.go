package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// Player identifies a side. O always moves first, X second.
type Player uint8

const (
	NoPlayer Player = iota
	PlayerO
	PlayerX
)

const (
	FirstPlayer  = PlayerO
	SecondPlayer = PlayerX
)

func ParsePlayer(value string) (Player, error) {
	switch value {
	case "O":
		return PlayerO, nil
	case "X":
		return PlayerX, nil
	default:
		return NoPlayer, fmt.Errorf("%w: %q", apperror.ErrInvalidPlayer, value)
	}
}

func (p Player) IsValid() bool {
	return p == PlayerO || p == PlayerX
}

func (p Player) Opponent() Player {
	switch p {
	case PlayerO:
		return PlayerX
	case PlayerX:
		return PlayerO
	default:
		return NoPlayer
	}
}

func (p Player) String() string {
	switch p {
	case PlayerO:
		return "O"
	case PlayerX:
		return "X"
	default:
		return ""
	}
}

func (p Player) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Player) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*p = NoPlayer
		return nil
	}

	player, err := ParsePlayer(string(text))
	if err != nil {
		return err
	}

	*p = player

	return nil
}
