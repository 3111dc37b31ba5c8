package canvas

import (
	"image"
	"image/color"
	"math"
	"sync"

	"golang.org/x/image/draw"

	"TiledMandelbrot/task"
)

var background = color.RGBA{A: 255}

// Canvas holds the rendered image. Regions are updated by the supervisor
// while other goroutines take snapshots for saving or serving.
type Canvas struct {
	mutex   sync.Mutex
	image   *image.RGBA
	updates int
}

func NewCanvas(size task.ImageSize) *Canvas {
	c := &Canvas{}
	c.Resize(size)
	return c
}

// Resize replaces the image with an empty one of the given size.
func (c *Canvas) Resize(size task.ImageSize) {
	img := image.NewRGBA(size.Rect())
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	c.mutex.Lock()
	c.image = img
	c.mutex.Unlock()
}

// UpdateRegion copies pixels, four bytes per pixel of area in row-major
// order, into the image. Parts of area outside of the image are ignored.
func (c *Canvas) UpdateRegion(pixels []byte, area image.Rectangle) {
	if len(pixels) < 4*area.Dx()*area.Dy() {
		return
	}
	src := &image.RGBA{Pix: pixels, Stride: 4 * area.Dx(), Rect: area}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	draw.Copy(c.image, area.Min, src, area, draw.Src, nil)
	c.updates++
}

func (c *Canvas) Size() task.ImageSize {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	b := c.image.Bounds()
	return task.ImageSize{Width: b.Dx(), Height: b.Dy()}
}

// Updates is the number of regions received so far.
func (c *Canvas) Updates() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.updates
}

// Snapshot returns a copy of the current image.
func (c *Canvas) Snapshot() *image.RGBA {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	img := image.NewRGBA(c.image.Bounds())
	draw.Copy(img, image.Point{}, c.image, c.image.Bounds(), draw.Src, nil)
	return img
}

// Scaled returns a copy of the image resized by factor.
func (c *Canvas) Scaled(factor float64) *image.RGBA {
	src := c.Snapshot()
	if factor <= 0 || factor == 1 {
		return src
	}

	width := max(1, int(math.Round(float64(src.Bounds().Dx())*factor)))
	height := max(1, int(math.Round(float64(src.Bounds().Dy())*factor)))
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
