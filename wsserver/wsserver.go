package wsserver

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/mo-shahab/duel-pong/client"
	"github.com/mo-shahab/duel-pong/protocol"
	"github.com/mo-shahab/duel-pong/room"
)

// inbound frames are tiny movement intents
const maxMessageSize = 4096

func NewWebSocketHandler(r *room.Room) *WebSocketHandler {
	return &WebSocketHandler{
		Upgrader: websocket.Upgrader{
			CheckOrigin:  func(r *http.Request) bool { return true },
			Subprotocols: protocol.Subprotocols(),
		},
		Room: r,
	}
}

// ServeHTTP upgrades the connection, seats the client and runs its read loop
// until the transport reports a close or an error.
func (wsh *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := wsh.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Error %s when connecting to the socket", err)
		return
	}

	codec, err := protocol.CodecFor(conn.Subprotocol())
	if err != nil {
		log.Printf("Closing connection from %s: %v", conn.RemoteAddr(), err)
		conn.Close()
		return
	}

	c := client.New(conn, codec)
	log.Printf("Client %s connected from %s using %s", c.ID(), conn.RemoteAddr(), codec.Name())

	go c.WritePump()

	if _, err := wsh.Room.Join(c); err != nil {
		log.Printf("Client %s not seated: %v", c.ID(), err)
		return
	}

	conn.SetReadLimit(maxMessageSize)

	for {
		_, p, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("Error reading message from client %s: %v", c.ID(), err)
			}
			wsh.disconnectPlayer(c)
			return
		}

		message, err := codec.Decode(p)
		if err != nil {
			log.Printf("Error decoding message from client %s: %v", c.ID(), err)
			continue
		}

		wsh.handleMessage(c, message)
	}
}

// disconnectPlayer frees the seat and lets the writer shut the connection down
func (wsh *WebSocketHandler) disconnectPlayer(c *client.Client) {
	log.Printf("Client %s disconnected", c.ID())
	wsh.Room.Leave(c)
	c.Close()
}
