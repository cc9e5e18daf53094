package paddle

import (
	"github.com/mo-shahab/duel-pong/canvas"
)

// paddle constants
const (
	Width  = 10.0
	Height = 100.0
	Speed  = 5.0
	Margin = 10.0
	StartY = 150.0
)

// movement directions sent by the clients
const (
	Up   = "up"
	Down = "down"
)

type Paddle struct {
	X      float64 `json:"x" msgpack:"x"`
	Y      float64 `json:"y" msgpack:"y"`
	Width  float64 `json:"width" msgpack:"width"`
	Height float64 `json:"height" msgpack:"height"`
	Speed  float64 `json:"speed" msgpack:"speed"`
}

// Left returns the paddle for the first seat
func Left() Paddle {
	return Paddle{X: Margin, Y: StartY, Width: Width, Height: Height, Speed: Speed}
}

// Right returns the paddle for the second seat, against the right edge
func Right(c canvas.Canvas) Paddle {
	return Paddle{
		X:      c.Width - Margin - Width,
		Y:      StartY,
		Width:  Width,
		Height: Height,
		Speed:  Speed,
	}
}

func (p *Paddle) Top() float64 { return p.Y }
func (p *Paddle) Bottom() float64 { return p.Y + p.Height }

// Spans reports whether y lies within the paddle's vertical extent
func (p *Paddle) Spans(y float64) bool {
	return y >= p.Top() && y <= p.Bottom()
}

// HitPosition returns where y lands on the paddle, 0 at the top and 1 at the bottom
func (p *Paddle) HitPosition(y float64) float64 {
	return (y - p.Y) / p.Height
}
