// game/engine.go
package game

import (
	"log"
	"math"
	"time"

	"golang.org/x/exp/rand"
)

const (
	// Game loop
	TickRate = time.Second / 60

	// vertical speed range handed out by a paddle hit, scaled by where the ball lands
	DeflectionScale = 10.0
)

// Engine advances the ball and resolves collisions and scoring. It does no
// locking; callers serialize access to the State.
type Engine struct {
	rnd *rand.Rand
}

// NewEngine creates an engine seeded from the clock
func NewEngine() *Engine {
	return NewSeededEngine(uint64(time.Now().UnixNano()))
}

// NewSeededEngine creates an engine with a fixed seed so serves are reproducible
func NewSeededEngine(seed uint64) *Engine {
	return &Engine{rnd: rand.New(rand.NewSource(seed))}
}

// Advance runs one tick. The checks run in a fixed order (walls, left paddle,
// right paddle, scoring) and do not exclude each other.
func (e *Engine) Advance(s *State) {
	c := s.Canvas()

	s.Ball.Move()

	// Wall collision (top & bottom)
	s.Ball.BounceWalls(c)

	e.handlePaddleCollision(s)
	e.checkBallOutOfBounds(s)
}

// ResetBall serves a new ball from the centre
func (e *Engine) ResetBall(s *State) {
	s.Ball.Reset(s.Canvas(), e.rnd)
}

// handlePaddleCollision detects and handles ball-paddle collisions
func (e *Engine) handlePaddleCollision(s *State) {
	b := &s.Ball

	// Left paddle collision
	left := &s.Paddle1
	if b.Left() <= left.X+left.Width && left.Spans(b.Y) {
		b.Dx = math.Abs(b.Dx)
		b.Dy = (left.HitPosition(b.Y) - 0.5) * DeflectionScale
	}

	// Right paddle collision
	right := &s.Paddle2
	if b.Right() >= right.X && right.Spans(b.Y) {
		b.Dx = -math.Abs(b.Dx)
		b.Dy = (right.HitPosition(b.Y) - 0.5) * DeflectionScale
	}
}

// checkBallOutOfBounds handles scoring when ball goes out of bounds
func (e *Engine) checkBallOutOfBounds(s *State) {
	if s.Ball.Left() <= 0 {
		s.Score.Player2++
		e.ResetBall(s)
		log.Printf("Player 2 scored! Score: %d-%d", s.Score.Player1, s.Score.Player2)
	} else if s.Ball.Right() >= s.CanvasWidth {
		s.Score.Player1++
		e.ResetBall(s)
		log.Printf("Player 1 scored! Score: %d-%d", s.Score.Player1, s.Score.Player2)
	}
}
