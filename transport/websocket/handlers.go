package websocket

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nhooyr.io/websocket"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var (
	ErrSessionIDRequired = errors.New("session_id is required")
	ErrCellRequired      = errors.New("cell is required")
)

func (that *Server) handleNewSession(ctx context.Context, conn *websocket.Conn, payload *RequestPayload) error {
	mode := payload.Mode
	if mode == "" {
		mode = entity.ModeFriend
	}

	session, err := that.uGame.NewSession(ctx, mode)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return that.sendMessage(ctx, conn, actionState, ResponsePayload{Session: session})
}

func (that *Server) handleGetSession(ctx context.Context, conn *websocket.Conn, payload *RequestPayload) error {
	if payload.SessionID == "" {
		return ErrSessionIDRequired
	}

	session, err := that.uGame.GetSession(ctx, payload.SessionID)
	if err != nil {
		return err
	}

	return that.sendMessage(ctx, conn, actionState, ResponsePayload{Session: session})
}

// handleTurn - sends the state after the human move, then the staged computer reply.
func (that *Server) handleTurn(ctx context.Context, conn *websocket.Conn, payload *RequestPayload) error {
	if payload.SessionID == "" {
		return ErrSessionIDRequired
	}

	if payload.Cell == nil {
		return ErrCellRequired
	}

	session, err := that.uGame.MakeTurn(ctx, payload.SessionID, payload.Player, *payload.Cell)
	if err != nil {
		return err
	}

	if err = that.sendMessage(ctx, conn, actionState, ResponsePayload{Session: session}); err != nil {
		return err
	}

	if !session.IsComputerTurn() {
		return nil
	}

	select {
	case <-ctx.Done():
		return fmt.Errorf("computer turn canceled: %w", ctx.Err())
	case <-time.After(that.computerDelay):
	}

	session, cell, err := that.uGame.ComputerTurn(ctx, payload.SessionID)
	if err != nil {
		return err
	}

	return that.sendMessage(ctx, conn, actionComputer, ResponsePayload{Session: session, Cell: &cell})
}

func (that *Server) handleReset(ctx context.Context, conn *websocket.Conn, payload *RequestPayload) error {
	if payload.SessionID == "" {
		return ErrSessionIDRequired
	}

	session, err := that.uGame.Reset(ctx, payload.SessionID)
	if err != nil {
		return err
	}

	return that.sendMessage(ctx, conn, actionState, ResponsePayload{Session: session})
}

func (that *Server) handleMode(ctx context.Context, conn *websocket.Conn, payload *RequestPayload) error {
	if payload.SessionID == "" {
		return ErrSessionIDRequired
	}

	session, err := that.uGame.SetMode(ctx, payload.SessionID, payload.Mode)
	if err != nil {
		return err
	}

	return that.sendMessage(ctx, conn, actionState, ResponsePayload{Session: session})
}
