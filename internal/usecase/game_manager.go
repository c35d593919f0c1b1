package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.GameSession) error
	GetByID(ctx context.Context, id string) (*entity.GameSession, error)
	DeleteByID(ctx context.Context, id string) error
}

type botService interface {
	MakeTurn(session *entity.GameSession) (int, error)
}

// GameManager - drives game sessions on behalf of a presentation layer.
// Calls for the same session are serialized.
type GameManager struct {
	logger *slog.Logger

	sessionRepo sessionRepo
	botService  botService

	locks sync.Map
}

func NewGameManager(logger *slog.Logger, sessionRepo sessionRepo, botService botService) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		sessionRepo: sessionRepo,
		botService:  botService,
	}
}

func (that *GameManager) NewSession(ctx context.Context, mode entity.Mode) (*entity.GameSession, error) {
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidMode, mode)
	}

	session := entity.NewGameSession(pkg.GenerateSessionID(), mode)
	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	that.logger.Info("session created", "session", session.ID, "mode", mode)

	return session, nil
}

func (that *GameManager) GetSession(ctx context.Context, id string) (*entity.GameSession, error) {
	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

// MakeTurn - applies a human move. In AI mode the computer's side cannot be played by hand.
func (that *GameManager) MakeTurn(ctx context.Context, id string, player entity.Player, cell int) (*entity.GameSession, error) {
	defer that.lock(id)()

	session, err := that.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if session.IsWithComputer() && player == session.Mode.ComputerPlayer() {
		return nil, fmt.Errorf("failed make turn: %w", apperror.ErrNotYourTurn)
	}

	if err = tictactoe.ApplyMove(session, player, cell); err != nil {
		return nil, fmt.Errorf("failed make turn: %w", err)
	}

	if err = that.updateSession(ctx, session); err != nil {
		return nil, err
	}

	that.logFinished(session)

	return session, nil
}

// ComputerTurn - lets the search engine play the computer's side, returns the chosen cell.
func (that *GameManager) ComputerTurn(ctx context.Context, id string) (*entity.GameSession, int, error) {
	defer that.lock(id)()

	session, err := that.GetSession(ctx, id)
	if err != nil {
		return nil, -1, err
	}

	cell, err := that.botService.MakeTurn(session)
	if err != nil {
		return nil, -1, fmt.Errorf("failed computer turn: %w", err)
	}

	if err = that.updateSession(ctx, session); err != nil {
		return nil, -1, err
	}

	that.logger.Debug("computer moved", "session", id, "cell", cell)
	that.logFinished(session)

	return session, cell, nil
}

func (that *GameManager) Reset(ctx context.Context, id string) (*entity.GameSession, error) {
	defer that.lock(id)()

	session, err := that.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	tictactoe.Reset(session)

	if err = that.updateSession(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (that *GameManager) SetMode(ctx context.Context, id string, mode entity.Mode) (*entity.GameSession, error) {
	defer that.lock(id)()

	session, err := that.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = tictactoe.SetMode(session, mode); err != nil {
		return nil, fmt.Errorf("failed to set mode: %w", err)
	}

	if err = that.updateSession(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// DeleteSession - removes the session. Its mutex stays in place so callers already
// waiting on it and later callers for the same id still exclude each other.
func (that *GameManager) DeleteSession(ctx context.Context, id string) error {
	defer that.lock(id)()

	if err := that.sessionRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.logger.Info("session deleted", "session", id)

	return nil
}

func (that *GameManager) updateSession(ctx context.Context, session *entity.GameSession) error {
	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	return nil
}

func (that *GameManager) logFinished(session *entity.GameSession) {
	if !session.IsFinished() {
		return
	}

	that.logger.Info("game finished",
		"session", session.ID,
		"status", session.Status.String(),
		"score_o", session.Score.O,
		"score_x", session.Score.X,
	)
}

// lock - returns the unlock func of the session's mutex.
func (that *GameManager) lock(id string) func() {
	value, _ := that.locks.LoadOrStore(id, &sync.Mutex{})
	mu, _ := value.(*sync.Mutex)
	mu.Lock()

	return mu.Unlock
}
