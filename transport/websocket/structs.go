package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	actionNewSession = "session:new"
	actionGetSession = "session:get"
	actionTurn       = "session:turn"
	actionReset      = "session:reset"
	actionMode       = "session:mode"

	actionState    = "session:state"
	actionComputer = "session:computer"
	actionError    = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	SessionID string        `json:"session_id,omitempty"`
	Mode      entity.Mode   `json:"mode,omitempty"`
	Player    entity.Player `json:"player,omitempty"`
	Cell      *int          `json:"cell,omitempty"`
}

type ResponsePayload struct {
	Session *entity.GameSession `json:"session,omitempty"`
	Cell    *int                `json:"cell,omitempty"`
	Error   string              `json:"error,omitempty"`
}
