package gradient

import (
	"errors"
	"image/color"
	"math"
	"sort"

	"TiledMandelbrot/misc"
)

var ErrNoStops = errors.New("gradient has no color stops")

// Stop is a color at a position in [0, 1]. Color components are in [0, 1] as well.
type Stop struct {
	Pos float32
	R   float32
	G   float32
	B   float32
}

// Gradient maps positions in [0, 1] to colors by interpolating between its stops.
type Gradient struct {
	Name  string
	Stops []Stop
}

// New creates a gradient from stops. Stops are sorted by position and a later
// stop replaces an earlier one at (nearly) the same position.
func New(name string, stops ...Stop) Gradient {
	g := Gradient{Name: name}
	for _, s := range stops {
		g.setStop(s)
	}
	g.sort()
	return g
}

// FromColors spreads colors evenly over [0, 1].
func FromColors(name string, colors ...color.RGBA) (Gradient, error) {
	if len(colors) == 0 {
		return Gradient{}, ErrNoStops
	}
	if len(colors) == 1 {
		c := colors[0]
		return New(name, stopFromColor(0, c), stopFromColor(1, c)), nil
	}

	stops := make([]Stop, len(colors))
	for i, c := range colors {
		stops[i] = stopFromColor(float32(i)/float32(len(colors)-1), c)
	}
	return New(name, stops...), nil
}

func stopFromColor(pos float32, c color.RGBA) Stop {
	return Stop{Pos: pos, R: float32(c.R) / 255, G: float32(c.G) / 255, B: float32(c.B) / 255}
}

// ColorAt returns the opaque color at pos. Positions not bracketed by two stops are black.
func (g Gradient) ColorAt(pos float32) color.RGBA {
	for i := 0; i+1 < len(g.Stops); i++ {
		left, right := g.Stops[i], g.Stops[i+1]
		if left.Pos <= pos && pos <= right.Pos {
			return colorBetween(left, right, pos)
		}
	}
	return color.RGBA{A: 255}
}

func colorBetween(left Stop, right Stop, pos float32) color.RGBA {
	var fraction float32
	if right.Pos > left.Pos {
		fraction = (pos - left.Pos) / (right.Pos - left.Pos)
	}
	return color.RGBA{
		R: misc.UnitToUint8(float64(misc.LerpFloat32(left.R, right.R, fraction))),
		G: misc.UnitToUint8(float64(misc.LerpFloat32(left.G, right.G, fraction))),
		B: misc.UnitToUint8(float64(misc.LerpFloat32(left.B, right.B, fraction))),
		A: 255,
	}
}

func (g *Gradient) setStop(stop Stop) {
	for i := range g.Stops {
		if equalEnough(g.Stops[i].Pos, stop.Pos) {
			g.Stops[i] = stop
			return
		}
	}
	g.Stops = append(g.Stops, stop)
}

func (g *Gradient) sort() {
	sort.SliceStable(g.Stops, func(i, j int) bool {
		return g.Stops[i].Pos < g.Stops[j].Pos
	})
}

func equalEnough(a float32, b float32) bool {
	const epsilon = 1.1920929e-07

	a = float32(math.Abs(float64(a)))
	b = float32(math.Abs(float64(b)))
	return float32(math.Abs(float64(a-b))) <= max(a, b)*epsilon
}

func (g Gradient) String() string {
	return g.Name
}
