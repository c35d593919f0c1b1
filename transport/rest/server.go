package rest

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type uGame interface {
	NewSession(ctx context.Context, mode entity.Mode) (*entity.GameSession, error)
	GetSession(ctx context.Context, id string) (*entity.GameSession, error)
	DeleteSession(ctx context.Context, id string) error

	MakeTurn(ctx context.Context, id string, player entity.Player, cell int) (*entity.GameSession, error)
	ComputerTurn(ctx context.Context, id string) (*entity.GameSession, int, error)

	Reset(ctx context.Context, id string) (*entity.GameSession, error)
	SetMode(ctx context.Context, id string, mode entity.Mode) (*entity.GameSession, error)
}

type Server struct {
	logger *slog.Logger
	uGame  uGame
}

func New(logger *slog.Logger, uGame uGame) *Server {
	return &Server{
		logger: logger.With("component", "rest"),
		uGame:  uGame,
	}
}

// Routes - returns the HTTP API of the game sessions.
func (that *Server) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	router.Get("/ping", pingHandler)

	router.Route("/sessions", func(r chi.Router) {
		r.Post("/", that.handleNewSession)

		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", that.handleGetSession)
			r.Delete("/", that.handleDeleteSession)
			r.Post("/moves", that.handleMakeTurn)
			r.Post("/computer-move", that.handleComputerTurn)
			r.Post("/reset", that.handleReset)
			r.Put("/mode", that.handleSetMode)
		})
	})

	return router
}
