package wsserver

import (
	"github.com/gorilla/websocket"

	"github.com/mo-shahab/duel-pong/room"
)

type WebSocketHandler struct {
	Upgrader websocket.Upgrader
	Room     *room.Room
}
