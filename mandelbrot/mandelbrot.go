package mandelbrot

import (
	"image"
	"math"

	"TiledMandelbrot/misc"
	"TiledMandelbrot/task"
)

// Bailout is the magnitude at which a point is considered to escape.
const Bailout = 20.0

var (
	logLogBailout = math.Log(math.Log(Bailout))
	log2          = math.Log(2)
)

// Calculate computes the escape time of every pixel of area and stores it in
// results, which holds one entry per pixel of the whole image. histogram is
// cleared and then counts the escape iterations of the escaped points; it
// needs maxIterations+1 entries.
func Calculate(size task.ImageSize, section task.FractalSection, maxIterations int,
	histogram []int, results []task.CalculationResult, area image.Rectangle) {
	width := section.Width(size)

	xLeft := section.CenterX - width/2
	xRight := section.CenterX + width/2
	yTop := section.CenterY + section.Height/2
	yBottom := section.CenterY - section.Height/2

	imageWidth := float64(size.Width)
	imageHeight := float64(size.Height)

	clear(histogram)

	for py := area.Min.Y; py < area.Max.Y; py++ {
		y0 := misc.LerpFloat64(yTop, yBottom, float64(py)/imageHeight)
		row := results[py*size.Width : (py+1)*size.Width]

		for px := area.Min.X; px < area.Max.X; px++ {
			x0 := misc.LerpFloat64(xLeft, xRight, float64(px)/imageWidth)

			iter, magnitude := escapeTime(x0, y0, maxIterations)
			if iter < maxIterations {
				histogram[iter]++
				row[px] = task.CalculationResult{Iter: iter, DistanceToNextIteration: smoothDistance(magnitude)}
			} else {
				row[px] = task.CalculationResult{Iter: iter}
			}
		}
	}
}

// escapeTime iterates z = z² + c from z = 0. It returns maxIterations for
// points that did not escape, otherwise the iteration count and the final |z|.
func escapeTime(x0 float64, y0 float64, maxIterations int) (int, float64) {
	const bailoutSquared = Bailout * Bailout

	x, y := 0.0, 0.0
	for iter := 0; iter < maxIterations; iter++ {
		xSquared := x * x
		ySquared := y * y

		if xSquared+ySquared >= bailoutSquared {
			return iter, math.Sqrt(xSquared + ySquared)
		}

		xTemp := xSquared - ySquared + x0
		y = 2*x*y + y0
		x = xTemp
	}
	return maxIterations, 0
}

// smoothDistance is the fractional distance to the next iteration used for
// continuous coloring.
func smoothDistance(magnitude float64) float32 {
	return 1 - min(1, float32((math.Log(math.Log(magnitude))-logLogBailout)/log2))
}
