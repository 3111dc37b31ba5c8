package mandelbrot

import (
	"image"
	"math"

	"TiledMandelbrot/gradient"
	"TiledMandelbrot/misc"
	"TiledMandelbrot/task"
)

// Colorize writes the RGBA colors of numRows rows starting at startRow into
// buffer, which like results covers the whole image. Points inside the set
// are black.
func Colorize(results []task.CalculationResult, equalized []float32, g gradient.Gradient,
	maxIterations int, startRow int, numRows int, rowWidth int, buffer []byte) {
	for y := startRow; y < startRow+numRows; y++ {
		for x := 0; x < rowWidth; x++ {
			i := y*rowWidth + x
			p := buffer[4*i : 4*i+4]
			point := results[i]

			if point.Iter >= maxIterations {
				p[0], p[1], p[2], p[3] = 0, 0, 0, 255
				continue
			}

			current := equalized[point.Iter]
			next := equalized[point.Iter+1]
			smoothed := misc.LerpFloat32(current, next, point.DistanceToNextIteration)

			c := g.ColorAt(smoothed / float32(maxIterations))
			p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
		}
	}
}

// Preview writes a grayscale rendering of area into pixels, four bytes per
// pixel in row-major order of area. Points escaping early are bright.
func Preview(results []task.CalculationResult, size task.ImageSize, area image.Rectangle, maxIterations int, pixels []byte) {
	logMaxIterations := math.Log(float64(maxIterations))

	p := 0
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			v := grayscale(results[y*size.Width+x].Iter, maxIterations, logMaxIterations)
			pixels[p], pixels[p+1], pixels[p+2], pixels[p+3] = v, v, v, 255
			p += 4
		}
	}
}

func grayscale(iter int, maxIterations int, logMaxIterations float64) uint8 {
	if iter >= maxIterations {
		return 0
	}
	if iter <= 1 {
		return 255
	}
	return misc.UnitToUint8(1 - math.Log(float64(iter))/logMaxIterations)
}
