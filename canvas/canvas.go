package canvas

// playfield size, fixed for the lifetime of the process
const (
	Width  = 800.0
	Height = 400.0
)

type Canvas struct {
	Width  float64
	Height float64
}

func Default() Canvas {
	return Canvas{Width: Width, Height: Height}
}

// Center returns the middle of the playfield
func (c Canvas) Center() (float64, float64) {
	return c.Width / 2, c.Height / 2
}
