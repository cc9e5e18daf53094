package protocol

import (
	"github.com/mo-shahab/duel-pong/game"
)

// message types
const (
	TypeMove       = "move"
	TypeRole       = "role"
	TypeWaiting    = "waiting"
	TypeGameState  = "gameState"
	TypeError      = "error"
	TypePlayerLeft = "playerLeft"
)

// Message is the envelope for every frame in either direction. Only the fields
// that belong to Type are set.
type Message struct {
	Type      string      `json:"type" msgpack:"type"`
	Role      string      `json:"role,omitempty" msgpack:"role,omitempty"`
	Direction string      `json:"direction,omitempty" msgpack:"direction,omitempty"`
	Message   string      `json:"message,omitempty" msgpack:"message,omitempty"`
	State     *game.State `json:"state,omitempty" msgpack:"state,omitempty"`
}

func Role(role string) Message {
	return Message{Type: TypeRole, Role: role}
}

func Waiting() Message {
	return Message{Type: TypeWaiting}
}

// GameState wraps a copy of s, so the caller may keep mutating its own state
func GameState(s game.State) Message {
	return Message{Type: TypeGameState, State: &s}
}

func Error(message string) Message {
	return Message{Type: TypeError, Message: message}
}

func PlayerLeft() Message {
	return Message{Type: TypePlayerLeft}
}

func Move(direction string) Message {
	return Message{Type: TypeMove, Direction: direction}
}
