package entity

import (
	"errors"
	"fmt"
)

var ErrUnknownOutcome = errors.New("unknown outcome")

type Outcome uint8

const (
	InProgress Outcome = iota
	Won
	Draw
)

const (
	outcomeInProgress = "in_progress"
	outcomeWon        = "won"
	outcomeDraw       = "draw"
)

func (o Outcome) String() string {
	switch o {
	case InProgress:
		return outcomeInProgress
	case Won:
		return outcomeWon
	case Draw:
		return outcomeDraw
	default:
		return fmt.Sprintf("outcome(%d)", uint8(o))
	}
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Outcome) UnmarshalText(text []byte) error {
	switch string(text) {
	case outcomeInProgress:
		*o = InProgress
	case outcomeWon:
		*o = Won
	case outcomeDraw:
		*o = Draw
	default:
		return fmt.Errorf("%w: %s", ErrUnknownOutcome, text)
	}

	return nil
}

// Status is the terminal status of a board. Winner is set only when Outcome is Won.
type Status struct {
	Outcome Outcome `json:"outcome"`
	Winner  Player  `json:"winner,omitempty"`
}

func (s Status) IsTerminal() bool {
	return s.Outcome != InProgress
}

func (s Status) String() string {
	if s.Outcome == Won {
		return fmt.Sprintf("%s(%s)", s.Outcome, s.Winner)
	}

	return s.Outcome.String()
}
