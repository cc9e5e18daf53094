package ball

import (
	"github.com/mo-shahab/duel-pong/canvas"
)

// ball constants
const (
	Radius     = 8.0
	ServeSpeed = 4.0
	// vertical serve speed is drawn from [-MaxServeDy, MaxServeDy]
	MaxServeDy = 2.0
)

type Ball struct {
	X      float64 `json:"x" msgpack:"x"`
	Y      float64 `json:"y" msgpack:"y"`
	Radius float64 `json:"radius" msgpack:"radius"`
	Dx     float64 `json:"dx" msgpack:"dx"`
	Dy     float64 `json:"dy" msgpack:"dy"`
}

// Random is the source of serve randomness
type Random interface {
	Float64() float64
}

// New returns the ball in its starting spot at the centre of the canvas
func New(c canvas.Canvas) Ball {
	x, y := c.Center()
	return Ball{X: x, Y: y, Radius: Radius, Dx: ServeSpeed, Dy: ServeSpeed}
}

func (b *Ball) Left() float64 { return b.X - b.Radius }
func (b *Ball) Right() float64 { return b.X + b.Radius }
func (b *Ball) Top() float64 { return b.Y - b.Radius }
func (b *Ball) Bottom() float64 { return b.Y + b.Radius }
