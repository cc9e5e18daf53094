package room

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mo-shahab/duel-pong/game"
	"github.com/mo-shahab/duel-pong/protocol"
)

type fakeConn struct {
	id     string
	sendCh chan protocol.Message

	mu     sync.Mutex
	closed bool
}

func newFakeConn(id string) *fakeConn {
	return &fakeConn{id: id, sendCh: make(chan protocol.Message, 1024)}
}

func (f *fakeConn) ID() string { return f.id }

func (f *fakeConn) Send(msg protocol.Message) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return false
	}
	select {
	case f.sendCh <- msg:
		return true
	default:
		return false
	}
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// next returns the next message, failing the test after a second
func (f *fakeConn) next(t *testing.T) protocol.Message {
	t.Helper()
	select {
	case msg := <-f.sendCh:
		return msg
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for a message on %s", f.id)
		return protocol.Message{}
	}
}

// drain returns everything already delivered
func (f *fakeConn) drain() []protocol.Message {
	var msgs []protocol.Message
	for {
		select {
		case msg := <-f.sendCh:
			msgs = append(msgs, msg)
		default:
			return msgs
		}
	}
}

func (f *fakeConn) waitFor(t *testing.T, msgType string) protocol.Message {
	t.Helper()
	timeout := time.After(time.Second)
	for {
		select {
		case msg := <-f.sendCh:
			if msg.Type == msgType {
				return msg
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %s on %s", msgType, f.id)
			return protocol.Message{}
		}
	}
}

func newTestRoom(t *testing.T) *Room {
	t.Helper()
	r := New(WithEngine(game.NewSeededEngine(1)))
	t.Cleanup(r.Close)
	return r
}

func TestJoinAssignsSeatsInOrder(t *testing.T) {
	r := newTestRoom(t)
	a, b, c := newFakeConn("a"), newFakeConn("b"), newFakeConn("c")

	role, err := r.Join(a)
	if err != nil || role != Player1 {
		t.Fatalf("first join = %q, %v; want player1", role, err)
	}
	if msg := a.next(t); msg.Type != protocol.TypeRole || msg.Role != "player1" {
		t.Fatalf("first message to seat A = %+v, want role player1", msg)
	}
	if msg := a.next(t); msg.Type != protocol.TypeWaiting {
		t.Fatalf("second message to seat A = %+v, want waiting", msg)
	}
	if r.Status().Running {
		t.Fatalf("game must not run with one seat filled")
	}

	role, err = r.Join(b)
	if err != nil || role != Player2 {
		t.Fatalf("second join = %q, %v; want player2", role, err)
	}
	if msg := b.next(t); msg.Type != protocol.TypeRole || msg.Role != "player2" {
		t.Fatalf("first message to seat B = %+v, want role player2", msg)
	}

	role, err = r.Join(c)
	if !errors.Is(err, ErrRoomFull) || role != "" {
		t.Fatalf("third join = %q, %v; want ErrRoomFull", role, err)
	}
	if msg := c.next(t); msg.Type != protocol.TypeError || msg.Message != RejectMessage {
		t.Fatalf("rejected client got %+v, want error %q", msg, RejectMessage)
	}
	if !c.isClosed() {
		t.Fatalf("rejected client was not closed")
	}

	status := r.Status()
	if status.Players != 2 || !status.Running {
		t.Fatalf("status = %+v, want 2 players running", status)
	}
	if status.Seats[Player1] != "a" || status.Seats[Player2] != "b" {
		t.Fatalf("seats = %v", status.Seats)
	}
}

func TestFullRoomBroadcastsStateWithFreshScore(t *testing.T) {
	r := newTestRoom(t)
	r.state.Score.Player1, r.state.Score.Player2 = 4, 2

	a, b := newFakeConn("a"), newFakeConn("b")
	r.Join(a)
	r.Join(b)

	for _, c := range []*fakeConn{a, b} {
		msg := c.waitFor(t, protocol.TypeGameState)
		if msg.State == nil {
			t.Fatalf("gameState without state on %s", c.id)
		}
		if msg.State.Score.Player1 != 0 || msg.State.Score.Player2 != 0 {
			t.Fatalf("score = %+v, want 0-0", msg.State.Score)
		}
		if msg.State.CanvasWidth != 800 || msg.State.CanvasHeight != 400 {
			t.Fatalf("canvas = %vx%v", msg.State.CanvasWidth, msg.State.CanvasHeight)
		}
	}
}

func TestLeaveStopsGameAndNotifiesRemainingPlayer(t *testing.T) {
	r := newTestRoom(t)
	a, b := newFakeConn("a"), newFakeConn("b")
	r.Join(a)
	r.Join(b)
	b.waitFor(t, protocol.TypeGameState)

	r.Leave(a)

	left := 0
	for _, msg := range b.drain() {
		if msg.Type == protocol.TypePlayerLeft {
			left++
		}
	}
	if left != 1 {
		t.Fatalf("remaining player got %d playerLeft messages, want 1", left)
	}
	if r.Status().Running {
		t.Fatalf("game still running after a seat emptied")
	}

	time.Sleep(100 * time.Millisecond)
	if msgs := b.drain(); len(msgs) != 0 {
		t.Fatalf("remaining player got %d messages after the game stopped: %+v", len(msgs), msgs[0])
	}
	for _, msg := range a.drain() {
		if msg.Type == protocol.TypePlayerLeft {
			t.Fatalf("leaving player must not be told it left")
		}
	}
}

func TestLastPlayerLeavingEmptiesRoom(t *testing.T) {
	r := newTestRoom(t)
	a, b := newFakeConn("a"), newFakeConn("b")
	r.Join(a)
	r.Join(b)

	r.Leave(b)
	r.Leave(a)

	status := r.Status()
	if status.Players != 0 || status.Running {
		t.Fatalf("status = %+v, want an empty idle room", status)
	}
}

func TestNewcomerFillsFreedSeatAndRestarts(t *testing.T) {
	r := newTestRoom(t)
	a, b := newFakeConn("a"), newFakeConn("b")
	r.Join(a)
	r.Join(b)
	r.Leave(a)
	b.drain()

	d := newFakeConn("d")
	role, err := r.Join(d)
	if err != nil || role != Player1 {
		t.Fatalf("rejoin = %q, %v; want player1", role, err)
	}
	if msg := d.next(t); msg.Type != protocol.TypeRole || msg.Role != "player1" {
		t.Fatalf("newcomer got %+v, want role player1", msg)
	}

	// seat B is filled, so no waiting notice comes before the first tick
	msg := d.next(t)
	if msg.Type != protocol.TypeGameState {
		t.Fatalf("newcomer got %+v, want gameState", msg)
	}
	if msg.State.Score.Player1 != 0 || msg.State.Score.Player2 != 0 {
		t.Fatalf("score = %+v, want 0-0 after restart", msg.State.Score)
	}
	b.waitFor(t, protocol.TypeGameState)
}

func TestLeaveUnknownConnectionIsNoop(t *testing.T) {
	r := newTestRoom(t)
	a, b := newFakeConn("a"), newFakeConn("b")
	r.Join(a)
	r.Join(b)

	r.Leave(newFakeConn("stranger"))

	if !r.Status().Running {
		t.Fatalf("unknown leave stopped the game")
	}
	for _, msg := range a.drain() {
		if msg.Type == protocol.TypePlayerLeft {
			t.Fatalf("unknown leave sent playerLeft")
		}
	}
}

func TestMoveAffectsOnlyOwnPaddle(t *testing.T) {
	r := newTestRoom(t)
	a, b := newFakeConn("a"), newFakeConn("b")
	r.Join(a)

	if !r.Move(a, "up") {
		t.Fatalf("seat A could not move")
	}
	if s := r.Snapshot(); s.Paddle1.Y != 145 || s.Paddle2.Y != 150 {
		t.Fatalf("paddles at %v and %v, want 145 and 150", s.Paddle1.Y, s.Paddle2.Y)
	}

	if r.Move(b, "down") {
		t.Fatalf("unseated connection moved a paddle")
	}
	if r.Move(a, "sideways") {
		t.Fatalf("unknown direction moved a paddle")
	}

	r.Join(b)
	r.Move(b, "down")
	if s := r.Snapshot(); s.Paddle1.Y != 145 || s.Paddle2.Y != 155 {
		t.Fatalf("paddles at %v and %v, want 145 and 155", s.Paddle1.Y, s.Paddle2.Y)
	}
}

func TestMoveStopsAtCanvasEdges(t *testing.T) {
	r := newTestRoom(t)
	a := newFakeConn("a")
	r.Join(a)

	for i := 0; i < 30; i++ {
		if !r.Move(a, "up") {
			t.Fatalf("move %d up refused at y=%v", i, r.Snapshot().Paddle1.Y)
		}
	}
	if r.Move(a, "up") {
		t.Fatalf("moved above the canvas")
	}
	if y := r.Snapshot().Paddle1.Y; y != 0 {
		t.Fatalf("y = %v, want 0", y)
	}

	for i := 0; i < 60; i++ {
		r.Move(a, "down")
	}
	if r.Move(a, "down") {
		t.Fatalf("moved below the canvas")
	}
	if y := r.Snapshot().Paddle1.Y; y != 300 {
		t.Fatalf("y = %v, want 300", y)
	}
}

func TestCloseStopsTicking(t *testing.T) {
	r := New(WithEngine(game.NewSeededEngine(1)))
	a, b := newFakeConn("a"), newFakeConn("b")
	r.Join(a)
	r.Join(b)
	a.waitFor(t, protocol.TypeGameState)

	r.Close()
	a.drain()

	time.Sleep(50 * time.Millisecond)
	if msgs := a.drain(); len(msgs) != 0 {
		t.Fatalf("got %d messages after Close", len(msgs))
	}
}
