package entity

import "github.com/rocketscienceinc/tictactoe-engine/internal/apperror"

// Score is the cumulative win tally. It survives resets.
type Score struct {
	O int `json:"o"`
	X int `json:"x"`
}

func (that *Score) Credit(player Player) {
	switch player {
	case PlayerO:
		that.O++
	case PlayerX:
		that.X++
	}
}

func (that Score) Of(player Player) int {
	switch player {
	case PlayerO:
		return that.O
	case PlayerX:
		return that.X
	default:
		return 0
	}
}

// GameSession is owned by one presentation layer. Its board is mutated only by tictactoe.ApplyMove.
type GameSession struct {
	ID     string `json:"id"`
	Mode   Mode   `json:"mode"`
	Board  Board  `json:"board"`
	Count  int    `json:"count"`
	Turn   Player `json:"turn"`
	Status Status `json:"status"`
	Score  Score  `json:"score"`
}

func NewGameSession(id string, mode Mode) *GameSession {
	return &GameSession{
		ID:     id,
		Mode:   mode,
		Turn:   FirstPlayer,
		Status: Status{Outcome: InProgress},
	}
}

func (that *GameSession) IsFinished() bool {
	return that.Status.IsTerminal()
}

func (that *GameSession) IsOngoing() bool {
	return that.Status.Outcome == InProgress
}

func (that *GameSession) IsWithComputer() bool {
	return that.Mode == ModeAI
}

func (that *GameSession) IsComputerTurn() bool {
	return that.IsWithComputer() && that.IsOngoing() && that.Turn == that.Mode.ComputerPlayer()
}

func (that *GameSession) ConfirmOngoingState() error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	return nil
}
