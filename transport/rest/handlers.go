package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var errBadRequest = errors.New("bad request")

type modeRequest struct {
	Mode entity.Mode `json:"mode"`
}

type moveRequest struct {
	Player entity.Player `json:"player"`
	Cell   *int          `json:"cell"`
}

type sessionResponse struct {
	Session      *entity.GameSession `json:"session"`
	ComputerCell *int                `json:"computer_cell,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	request := modeRequest{Mode: entity.ModeFriend}
	if r.ContentLength != 0 {
		if err := decode(r, &request); err != nil {
			that.writeError(w, r, err)
			return
		}
	}

	session, err := that.uGame.NewSession(r.Context(), request.Mode)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, sessionResponse{Session: session})
}

func (that *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := that.uGame.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{Session: session})
}

func (that *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := that.uGame.DeleteSession(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		that.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleMakeTurn - applies the human move; against the computer its reply is applied before responding.
func (that *Server) handleMakeTurn(w http.ResponseWriter, r *http.Request) {
	var request moveRequest
	if err := decode(r, &request); err != nil {
		that.writeError(w, r, err)
		return
	}

	if !request.Player.IsValid() {
		that.writeError(w, r, fmt.Errorf("%w: player is required", apperror.ErrInvalidPlayer))
		return
	}

	if request.Cell == nil {
		that.writeError(w, r, fmt.Errorf("%w: cell is required", errBadRequest))
		return
	}

	sessionID := chi.URLParam(r, "sessionID")

	session, err := that.uGame.MakeTurn(r.Context(), sessionID, request.Player, *request.Cell)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	response := sessionResponse{Session: session}

	if session.IsComputerTurn() {
		var cell int
		session, cell, err = that.uGame.ComputerTurn(r.Context(), sessionID)
		if err != nil {
			that.writeError(w, r, err)
			return
		}

		response = sessionResponse{Session: session, ComputerCell: &cell}
	}

	writeJSON(w, http.StatusOK, response)
}

func (that *Server) handleComputerTurn(w http.ResponseWriter, r *http.Request) {
	session, cell, err := that.uGame.ComputerTurn(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{Session: session, ComputerCell: &cell})
}

func (that *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	session, err := that.uGame.Reset(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{Session: session})
}

func (that *Server) handleSetMode(w http.ResponseWriter, r *http.Request) {
	var request modeRequest
	if err := decode(r, &request); err != nil {
		that.writeError(w, r, err)
		return
	}

	session, err := that.uGame.SetMode(r.Context(), chi.URLParam(r, "sessionID"), request.Mode)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{Session: session})
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", errBadRequest, err)
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (that *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFromError(err)

	log := that.logger.With("method", r.Method, "path", r.URL.Path)
	if status == http.StatusInternalServerError {
		log.Error("request failed", "error", err)
	} else {
		log.Debug("request rejected", "status", status, "error", err)
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// StatusFromError maps error kinds to HTTP status codes.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrIllegalMove),
		errors.Is(err, apperror.ErrNoLegalMove),
		errors.Is(err, apperror.ErrNotComputerTurn):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrOutOfRange),
		errors.Is(err, apperror.ErrInvalidMode),
		errors.Is(err, apperror.ErrInvalidPlayer),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
