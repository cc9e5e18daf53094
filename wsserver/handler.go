// wsserver/handler.go

package wsserver

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/mo-shahab/duel-pong/client"
	"github.com/mo-shahab/duel-pong/paddle"
	"github.com/mo-shahab/duel-pong/protocol"
)

// handleMessage processes incoming messages
func (wsh *WebSocketHandler) handleMessage(c *client.Client, message protocol.Message) {
	switch message.Type {
	case protocol.TypeMove:
		wsh.handleMovementMessage(c, message.Direction)

	default:
		log.Printf("Unknown message type %q from client %s", message.Type, c.ID())
	}
}

// handleMovementMessage handles paddle movement
func (wsh *WebSocketHandler) handleMovementMessage(c *client.Client, direction string) {
	if direction != paddle.Up && direction != paddle.Down {
		log.Printf("Invalid direction %q from client %s", direction, c.ID())
		return
	}
	if !wsh.Room.Move(c, direction) {
		log.Printf("Ignoring move %s from client %s", direction, c.ID())
	}
}

// StatusHandler reports seat occupancy and score as JSON
func (wsh *WebSocketHandler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(wsh.Room.Status()); err != nil {
		log.Printf("Failed to encode status: %v", err)
	}
}
