package mandelbrot

import (
	"TiledMandelbrot/task"
)

// Buffers are shared between the supervisor and its workers. Workers write
// disjoint parts of ResultsPerPoint and ColorizationBuffer. Only the
// supervisor resizes or scrolls them, and only while no work is in flight.
type Buffers struct {
	ResultsPerPoint     []task.CalculationResult
	Histogram           *Histogram
	EqualizedIterations []float32
	ColorizationBuffer  []byte

	imageSize     task.ImageSize
	maxIterations int
}

func NewBuffers() *Buffers {
	return &Buffers{Histogram: NewHistogram(0)}
}

func (b *Buffers) ImageSize() task.ImageSize {
	return b.imageSize
}

func (b *Buffers) MaxIterations() int {
	return b.maxIterations
}

// ResizeIfNeeded adapts the buffers to a new image size or iteration count
// and reports whether it did. Resized buffers hold no valid results.
func (b *Buffers) ResizeIfNeeded(size task.ImageSize, maxIterations int) bool {
	if size == b.imageSize && maxIterations == b.maxIterations && len(b.ResultsPerPoint) == size.Pixels() {
		return false
	}

	if size != b.imageSize || len(b.ResultsPerPoint) != size.Pixels() {
		b.ResultsPerPoint = resize(b.ResultsPerPoint, size.Pixels())
		b.ColorizationBuffer = resize(b.ColorizationBuffer, 4*size.Pixels())
	}
	if maxIterations != b.maxIterations || len(b.EqualizedIterations) != maxIterations+1 {
		b.EqualizedIterations = resize(b.EqualizedIterations, maxIterations+1)
		b.Histogram.Resize(maxIterations)
	}

	b.imageSize = size
	b.maxIterations = maxIterations
	return true
}

func resize[T any](s []T, n int) []T {
	if cap(s) >= n {
		s = s[:n]
		clear(s)
		return s
	}
	return make([]T, n)
}

// Scroll moves the results so that pixel (x, y) holds what pixel
// (x+dx, y+dy) held before. Results moved in from outside the image are
// left as they were and must be recalculated.
func (b *Buffers) Scroll(scroll task.Scroll) {
	height := b.imageSize.Height
	dx, dy := scroll.X, scroll.Y

	if dy < 0 {
		for y := height - 1; y >= 0; y-- {
			b.scrollRow(dx, dy, y)
		}
	} else {
		for y := 0; y < height; y++ {
			b.scrollRow(dx, dy, y)
		}
	}
}

func (b *Buffers) scrollRow(dx int, dy int, y int) {
	width, height := b.imageSize.Width, b.imageSize.Height
	dstY := y - dy
	if dstY < 0 || dstY >= height {
		return
	}

	src := b.ResultsPerPoint[y*width : (y+1)*width]
	dst := b.ResultsPerPoint[dstY*width : (dstY+1)*width]

	if dx < 0 {
		for x := width - 1; x >= 0; x-- {
			if dstX := x - dx; dstX >= 0 && dstX < width {
				dst[dstX] = src[x]
			}
		}
	} else {
		for x := 0; x < width; x++ {
			if dstX := x - dx; dstX >= 0 && dstX < width {
				dst[dstX] = src[x]
			}
		}
	}
}
