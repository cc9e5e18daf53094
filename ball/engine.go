package ball

import (
	"github.com/mo-shahab/duel-pong/canvas"
)

// Move advances the ball by exactly its velocity
func (b *Ball) Move() {
	b.X += b.Dx
	b.Y += b.Dy
}

// BounceWalls reflects the vertical velocity when the ball touches the top or
// bottom edge. The position is left alone, so the ball can sit past the edge for
// a tick.
func (b *Ball) BounceWalls(c canvas.Canvas) bool {
	if b.Top() <= 0 || b.Bottom() >= c.Height {
		b.Dy *= -1
		return true
	}
	return false
}

// Reset puts the ball back in the centre and serves it in a random direction
func (b *Ball) Reset(c canvas.Canvas, rnd Random) {
	b.X, b.Y = c.Center()

	if rnd.Float64() > 0.5 {
		b.Dx = ServeSpeed
	} else {
		b.Dx = -ServeSpeed
	}
	b.Dy = rnd.Float64()*2*MaxServeDy - MaxServeDy
}
