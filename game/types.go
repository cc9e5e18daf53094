package game

import (
	"github.com/mo-shahab/duel-pong/ball"
	"github.com/mo-shahab/duel-pong/canvas"
	"github.com/mo-shahab/duel-pong/paddle"
	"github.com/mo-shahab/duel-pong/scores"
)

// State is the authoritative game state shared by both seats. It holds no
// pointers so a plain copy is a safe snapshot.
type State struct {
	Paddle1      paddle.Paddle `json:"paddle1" msgpack:"paddle1"`
	Paddle2      paddle.Paddle `json:"paddle2" msgpack:"paddle2"`
	Ball         ball.Ball     `json:"ball" msgpack:"ball"`
	Score        scores.Scores `json:"score" msgpack:"score"`
	CanvasWidth  float64       `json:"canvasWidth" msgpack:"canvasWidth"`
	CanvasHeight float64       `json:"canvasHeight" msgpack:"canvasHeight"`
}

// NewState lays out paddles and ball for a fresh process
func NewState() State {
	c := canvas.Default()
	return State{
		Paddle1:      paddle.Left(),
		Paddle2:      paddle.Right(c),
		Ball:         ball.New(c),
		CanvasWidth:  c.Width,
		CanvasHeight: c.Height,
	}
}

func (s *State) Canvas() canvas.Canvas {
	return canvas.Canvas{Width: s.CanvasWidth, Height: s.CanvasHeight}
}
