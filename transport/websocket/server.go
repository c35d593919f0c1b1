package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var ErrUnknownAction = errors.New("unknown action")

type uGame interface {
	NewSession(ctx context.Context, mode entity.Mode) (*entity.GameSession, error)
	GetSession(ctx context.Context, id string) (*entity.GameSession, error)

	MakeTurn(ctx context.Context, id string, player entity.Player, cell int) (*entity.GameSession, error)
	ComputerTurn(ctx context.Context, id string) (*entity.GameSession, int, error)

	Reset(ctx context.Context, id string) (*entity.GameSession, error)
	SetMode(ctx context.Context, id string, mode entity.Mode) (*entity.GameSession, error)
}

type handlerFunc func(ctx context.Context, conn *websocket.Conn, payload *RequestPayload) error

type Server struct {
	logger *slog.Logger
	uGame  uGame

	// computerDelay stages the computer's reply so the human move is visible first.
	computerDelay time.Duration

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, uGame uGame, computerDelay time.Duration) *Server {
	server := &Server{
		logger:        logger.With("component", "websocket"),
		uGame:         uGame,
		computerDelay: computerDelay,

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionNewSession] = server.handleNewSession
	server.handlers[actionGetSession] = server.handleGetSession
	server.handlers[actionTurn] = server.handleTurn
	server.handlers[actionReset] = server.handleReset
	server.handlers[actionMode] = server.handleMode

	return server
}

// ServeHTTP - upgrades the connection and serves messages until the client leaves.
func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Error("failed to accept websocket", "error", err)
		return
	}
	defer conn.CloseNow()

	log.Info("WebSocket connection established", "remote", r.RemoteAddr)

	if err = that.handleMessages(r.Context(), conn); err != nil {
		log.Error("error handling messages", "error", err)
		return
	}

	conn.Close(websocket.StatusNormalClosure, "")
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleMessages")

	for {
		var message Message
		if err := wsjson.Read(ctx, conn, &message); err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure || websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return nil
			}
			return fmt.Errorf("failed to read message: %w", err)
		}

		if err := that.dispatch(ctx, conn, &message); err != nil {
			log.Debug("error processing message", "action", message.Action, "error", err)

			if err = that.sendMessage(ctx, conn, actionError, ResponsePayload{Error: err.Error()}); err != nil {
				return err
			}
		}
	}
}

func (that *Server) dispatch(ctx context.Context, conn *websocket.Conn, message *Message) error {
	handler, ok := that.handlers[message.Action]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, message.Action)
	}

	var payload RequestPayload
	if len(message.Payload) > 0 {
		if err := json.Unmarshal(message.Payload, &payload); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}
	}

	return handler(ctx, conn, &payload)
}

func (that *Server) sendMessage(ctx context.Context, conn *websocket.Conn, action string, payload ResponsePayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = wsjson.Write(ctx, conn, Message{Action: action, Payload: data}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}
