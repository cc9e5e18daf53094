package paddle

import (
	"github.com/mo-shahab/duel-pong/canvas"
)

// Move shifts the paddle by its speed in the given direction. A move that would
// leave [0, canvas height - paddle height] is dropped entirely rather than
// clamped to the edge. It reports whether the paddle moved.
func (p *Paddle) Move(direction string, c canvas.Canvas) bool {
	var movement float64

	switch direction {
	case Up:
		movement = -p.Speed
	case Down:
		movement = p.Speed
	default:
		return false
	}

	newPosition := p.Y + movement
	if newPosition < 0 || newPosition > c.Height-p.Height {
		return false
	}

	p.Y = newPosition
	return true
}
