package client

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mo-shahab/duel-pong/protocol"
)

func TestSendAfterCloseIsSkipped(t *testing.T) {
	c := New(nil, protocol.JSONCodec{})

	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}

	if c.Send(protocol.Waiting()) {
		t.Fatalf("send on a closed client was accepted")
	}
}

func TestSendDropsWhenQueueFull(t *testing.T) {
	c := New(nil, protocol.JSONCodec{})
	defer c.Close()

	for i := 0; i < SendQueueSize; i++ {
		if !c.Send(protocol.Waiting()) {
			t.Fatalf("send %d refused before the queue filled", i)
		}
	}

	start := time.Now()
	for i := 0; i < 10; i++ {
		if c.Send(protocol.Waiting()) {
			t.Fatalf("send past a full queue was accepted")
		}
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Fatalf("sends on a full queue took %v", elapsed)
	}
}

func TestWritePumpFlushesQueueThenCloses(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		c := New(conn, protocol.JSONCodec{})
		c.Send(protocol.Role("player1"))
		c.Send(protocol.Waiting())
		c.Close()
		c.WritePump()
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	want := []string{protocol.TypeRole, protocol.TypeWaiting}
	for _, msgType := range want {
		var msg protocol.Message
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read %s: %v", msgType, err)
		}
		if msg.Type != msgType {
			t.Fatalf("got %+v, want %s", msg, msgType)
		}
	}

	if _, _, err := conn.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Fatalf("got %v, want a normal close", err)
	}
}
