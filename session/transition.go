package session

import (
	"TiledMandelbrot/misc"
	"TiledMandelbrot/task"
)

// TransitionSettings describe a sequence of frames. Every frame scrolls by
// ScrollX/ScrollY pixels. With a ZoomEnd the section height moves toward it
// and every frame is calculated in full.
type TransitionSettings struct {
	Frames  int     `yaml:"frames"`
	ScrollX int     `yaml:"scrollX"`
	ScrollY int     `yaml:"scrollY"`
	ZoomEnd float64 `yaml:"zoomEnd"`
}

func (ts *TransitionSettings) Verify() error {
	if ts.Frames < 1 {
		ts.Frames = 1
	}
	if ts.ZoomEnd < 0 {
		ts.ZoomEnd = 0
	}
	return nil
}

func (ts *TransitionSettings) Zooms() bool {
	return ts.ZoomEnd > 0
}

// Next returns the request for frame (1 to Frames) of the transition.
// start is the request the transition began with, previous the one of the
// frame before.
func (ts *TransitionSettings) Next(start task.ImageRequest, previous task.ImageRequest, frame int) task.ImageRequest {
	scroll := task.Scroll{X: ts.ScrollX, Y: ts.ScrollY}
	if !ts.Zooms() {
		if scroll.IsZero() {
			return task.NewImageRequest(previous.ImageSize, previous.FractalSection, previous.MaxIterations, previous.TileSize)
		}
		return task.ScrollRequest(previous, scroll)
	}

	t := float64(frame) / float64(ts.Frames)
	startHeight := start.FractalSection.Height

	section := previous.FractalSection.Scrolled(previous.ImageSize, scroll)
	if ts.ZoomEnd < startHeight {
		// zooming in
		section.Height = misc.LerpFloat64(startHeight, ts.ZoomEnd, misc.EaseOutExpo(t))
	} else {
		// zooming out
		section.Height = misc.LerpFloat64(startHeight, ts.ZoomEnd, misc.EaseInExpo(t))
	}

	return task.NewImageRequest(previous.ImageSize, section, previous.MaxIterations, previous.TileSize)
}
