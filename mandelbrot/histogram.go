package mandelbrot

import (
	"image"
	"sync"

	"gonum.org/v1/gonum/floats"

	"TiledMandelbrot/task"
)

// Histogram counts escape iterations over the whole image. Workers merge
// their per-tile counts into it concurrently.
type Histogram struct {
	mutex  sync.Mutex
	counts []int
}

func NewHistogram(maxIterations int) *Histogram {
	return &Histogram{counts: make([]int, maxIterations+1)}
}

// Resize makes room for maxIterations+1 buckets and clears all counts.
func (h *Histogram) Resize(maxIterations int) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if cap(h.counts) >= maxIterations+1 {
		h.counts = h.counts[:maxIterations+1]
		clear(h.counts)
	} else {
		h.counts = make([]int, maxIterations+1)
	}
}

func (h *Histogram) Reset() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	clear(h.counts)
}

// Merge adds the counts of a local histogram.
func (h *Histogram) Merge(local []int) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	n := min(len(local), len(h.counts))
	for i := 0; i < n; i++ {
		h.counts[i] += local[i]
	}
}

// AddRetained counts the escaped points of results that lie outside of area.
// Those points keep their values when only area gets recalculated.
func (h *Histogram) AddRetained(results []task.CalculationResult, size task.ImageSize, maxIterations int, area image.Rectangle) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			if image.Pt(x, y).In(area) {
				continue
			}
			iter := results[y*size.Width+x].Iter
			if iter < maxIterations && iter < len(h.counts) {
				h.counts[iter]++
			}
		}
	}
}

// Counts returns a copy of the histogram. The last bucket, which would
// count points inside the set, is always zero.
func (h *Histogram) Counts() []int {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	counts := make([]int, len(h.counts))
	copy(counts, h.counts)
	if len(counts) > 0 {
		counts[len(counts)-1] = 0
	}
	return counts
}

// Equalize maps the iteration counts of histogram to the range
// [0, maxIterations] so that colors get evenly distributed over the gradient.
// equalized needs at least len(histogram) entries.
func Equalize(histogram []int, maxIterations int, equalized []float32) {
	n := len(histogram)
	if n == 0 {
		return
	}

	values := make([]float64, n)
	for i, count := range histogram {
		values[i] = float64(count)
	}
	cdf := make([]float64, n)
	floats.CumSum(cdf, values)

	cdfMin := 0.0
	for _, c := range cdf {
		if c > 0 {
			cdfMin = c
			break
		}
	}
	total := cdf[n-1]

	for i, c := range cdf {
		switch {
		case c <= 0:
			equalized[i] = 0
		case total == cdfMin:
			// a single distinct escape value
			equalized[i] = float32(maxIterations)
		default:
			equalized[i] = float32(float64(maxIterations) * (c - cdfMin) / (total - cdfMin))
		}
	}
}
