package room

import (
	"errors"
	"log"
	"sync"

	"github.com/mo-shahab/duel-pong/game"
	"github.com/mo-shahab/duel-pong/paddle"
	"github.com/mo-shahab/duel-pong/protocol"
	"github.com/mo-shahab/duel-pong/scores"
)

// Role names the seat a connection holds
type Role string

const (
	Player1 Role = "player1"
	Player2 Role = "player2"
)

// RejectMessage is sent to a connection that arrives while both seats are taken
const RejectMessage = "session full"

var ErrRoomFull = errors.New("room is full")

// Conn is the part of a client connection the room needs
type Conn interface {
	ID() string
	Send(msg protocol.Message) bool
	Close() error
}

// Room owns the game state and the two seats. The game ticks only while both
// seats are filled. Every method is safe for concurrent use.
type Room struct {
	mu     sync.Mutex
	state  game.State
	engine *game.Engine
	loop   *game.Loop
	seats  [2]Conn
	roles  map[string]Role
}

type Option func(*Room)

// WithEngine swaps the physics engine, mostly to pin the serve randomness
func WithEngine(e *game.Engine) Option {
	return func(r *Room) { r.engine = e }
}

// WithLoop swaps the tick scheduler
func WithLoop(l *game.Loop) Option {
	return func(r *Room) { r.loop = l }
}

func New(opts ...Option) *Room {
	r := &Room{
		state:  game.NewState(),
		engine: game.NewEngine(),
		loop:   game.NewLoop(game.TickRate),
		roles:  make(map[string]Role),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Join seats c in the first free seat. When both seats are already taken, c is
// sent an error, closed and ErrRoomFull is returned.
func (r *Room) Join(c Conn) (Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case r.seats[0] == nil:
		r.seat(0, c)
		if r.seats[1] == nil {
			c.Send(protocol.Waiting())
		}
	case r.seats[1] == nil:
		r.seat(1, c)
	default:
		log.Printf("Rejecting client %s, both seats are taken", c.ID())
		c.Send(protocol.Error(RejectMessage))
		c.Close()
		return "", ErrRoomFull
	}

	if r.full() {
		r.start()
	}
	return r.roles[c.ID()], nil
}

// Leave frees the seat held by c. The game stops whenever a seat empties and
// the player still seated is told the other one left.
func (r *Room) Leave(c Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	role, ok := r.roles[c.ID()]
	if !ok {
		return
	}
	delete(r.roles, c.ID())
	r.seats[seatIndex(role)] = nil
	log.Printf("Client %s left seat %s", c.ID(), role)

	r.stop()

	for _, seated := range r.seats {
		if seated != nil {
			seated.Send(protocol.PlayerLeft())
		}
	}
}

// Move applies a movement intent from c to its own paddle. Moves from
// connections without a seat, unknown directions and moves that would leave the
// canvas are ignored. It reports whether the paddle moved.
func (r *Room) Move(c Conn, direction string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	role, ok := r.roles[c.ID()]
	if !ok {
		return false
	}
	return r.paddleFor(role).Move(direction, r.state.Canvas())
}

// Snapshot returns a copy of the current game state
func (r *Room) Snapshot() game.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Status is a point-in-time view of the room for monitoring
type Status struct {
	Players int             `json:"players"`
	Running bool            `json:"running"`
	Seats   map[Role]string `json:"seats"`
	Score   scores.Scores   `json:"score"`
}

func (r *Room) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()

	status := Status{
		Running: r.loop.Running(),
		Seats:   make(map[Role]string),
		Score:   r.state.Score,
	}
	for i, c := range r.seats {
		if c != nil {
			status.Players++
			status.Seats[seatRole(i)] = c.ID()
		}
	}
	return status
}

// Close stops the game loop. Seated connections are left to the transport.
func (r *Room) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stop()
}

func (r *Room) seat(i int, c Conn) {
	role := seatRole(i)
	r.seats[i] = c
	r.roles[c.ID()] = role
	log.Printf("Client %s assigned to seat %s", c.ID(), role)
	c.Send(protocol.Role(string(role)))
}

func (r *Room) full() bool {
	return r.seats[0] != nil && r.seats[1] != nil
}

func (r *Room) start() {
	r.state.Score.Reset()
	r.engine.ResetBall(&r.state)
	r.loop.Start(r.tick)
	log.Println("Both seats filled, game started")
}

func (r *Room) stop() {
	if !r.loop.Running() {
		return
	}
	r.loop.Stop()
	log.Println("Game stopped")
}

// tick runs on the loop goroutine. A stop issued while it waited for the lock
// closes its channel first, so a partial session is never advanced.
func (r *Room) tick(stop <-chan struct{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if game.Stopped(stop) {
		return
	}

	r.engine.Advance(&r.state)
	r.broadcast(protocol.GameState(r.state))
}

// broadcast sends msg to every seated connection. Closed connections and full
// queues are skipped inside Send.
func (r *Room) broadcast(msg protocol.Message) {
	for _, c := range r.seats {
		if c != nil {
			c.Send(msg)
		}
	}
}

func (r *Room) paddleFor(role Role) *paddle.Paddle {
	if role == Player1 {
		return &r.state.Paddle1
	}
	return &r.state.Paddle2
}

func seatRole(i int) Role {
	if i == 0 {
		return Player1
	}
	return Player2
}

func seatIndex(role Role) int {
	if role == Player1 {
		return 0
	}
	return 1
}
