package task

import (
	"fmt"
	"image"
)

// ImageSize is the size of the rendered image in pixels.
type ImageSize struct {
	Width  int
	Height int
}

func (s ImageSize) Rect() image.Rectangle {
	return image.Rect(0, 0, s.Width, s.Height)
}

func (s ImageSize) Pixels() int {
	return s.Width * s.Height
}

func (s ImageSize) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// FractalSection is the visible part of the complex plane. The width of the
// section follows from Height and the aspect ratio of the image.
type FractalSection struct {
	CenterX float64
	CenterY float64
	Height  float64
}

// Width returns the section width for an image of the given size.
func (f FractalSection) Width(size ImageSize) float64 {
	return f.Height * (float64(size.Width) / float64(size.Height))
}

// PixelSize returns the distance between two neighboring pixels on the complex plane.
func (f FractalSection) PixelSize(size ImageSize) float64 {
	return f.Height / float64(size.Height)
}

// Scrolled returns the section moved by the given amount of pixels. Pixel
// (x, y) of the scrolled section shows what pixel (x+dx, y+dy) showed before.
func (f FractalSection) Scrolled(size ImageSize, scroll Scroll) FractalSection {
	ps := f.PixelSize(size)
	return FractalSection{
		CenterX: f.CenterX + float64(scroll.X)*ps,
		CenterY: f.CenterY - float64(scroll.Y)*ps,
		Height:  f.Height,
	}
}

func (f FractalSection) String() string {
	return fmt.Sprintf("{center: %g/%g, height: %g}", f.CenterX, f.CenterY, f.Height)
}

// Scroll is a pixel offset. Positive X moves the view to the right, positive Y moves it down.
type Scroll struct {
	X int
	Y int
}

func (s Scroll) IsZero() bool {
	return s.X == 0 && s.Y == 0
}

// CalculationResult is the escape time of a single pixel. Iter equals the
// maximum number of iterations for points inside the Mandelbrot set.
type CalculationResult struct {
	Iter                    int
	DistanceToNextIteration float32
}

// ImageRequest describes one rendering job. Area is the part of the image that
// needs to be (re)calculated; the whole image unless scrolling.
type ImageRequest struct {
	MaxIterations  int
	TileSize       int
	ImageSize      ImageSize
	Area           image.Rectangle
	Scroll         Scroll
	FractalSection FractalSection
}

// NewImageRequest creates a request that calculates the whole image.
func NewImageRequest(size ImageSize, section FractalSection, maxIterations int, tileSize int) ImageRequest {
	return ImageRequest{
		MaxIterations:  maxIterations,
		TileSize:       tileSize,
		ImageSize:      size,
		Area:           size.Rect(),
		FractalSection: section,
	}
}

// ScrollRequest creates a request that moves the previous image by scroll
// pixels and only calculates the newly exposed border.
func ScrollRequest(previous ImageRequest, scroll Scroll) ImageRequest {
	r := previous
	r.Scroll = scroll
	r.FractalSection = previous.FractalSection.Scrolled(previous.ImageSize, scroll)
	r.Area = ExposedArea(previous.ImageSize, scroll)
	return r
}

func (r ImageRequest) String() string {
	return fmt.Sprintf("{size: %s, area: %v, scroll: %d/%d, tile size: %d, max iterations: %d, section: %s}",
		r.ImageSize, r.Area, r.Scroll.X, r.Scroll.Y, r.TileSize, r.MaxIterations, r.FractalSection)
}
