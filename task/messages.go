package task

import (
	"image"

	"TiledMandelbrot/gradient"
)

// WorkerMessage is implemented by every message a worker receives.
type WorkerMessage interface {
	isWorkerMessage()
}

// Calculate asks a worker to calculate one tile. Pixels receives the grayscale
// preview of the tile and travels back with the result.
type Calculate struct {
	MaxIterations  int
	ImageSize      ImageSize
	Area           image.Rectangle
	FractalSection FractalSection
	Pixels         []byte
}

// Colorize asks a worker to colorize NumRows rows starting at StartRow.
type Colorize struct {
	MaxIterations int
	StartRow      int
	NumRows       int
	RowWidth      int
	Gradient      gradient.Gradient
}

type WorkerQuit struct{}

func (Calculate) isWorkerMessage()  {}
func (Colorize) isWorkerMessage()   {}
func (WorkerQuit) isWorkerMessage() {}

// SupervisorMessage is implemented by every message the supervisor receives.
type SupervisorMessage interface {
	isSupervisorMessage()
}

type CalculationResults struct {
	MaxIterations int
	ImageSize     ImageSize
	Area          image.Rectangle
	Pixels        []byte
}

type ColorizationResults struct {
	StartRow int
	NumRows  int
	RowWidth int
}

// ColorizeRequest recolors the last calculated image with another gradient.
type ColorizeRequest struct {
	Gradient gradient.Gradient
}

type Cancel struct{}

type Quit struct{}

func (ImageRequest) isSupervisorMessage()        {}
func (CalculationResults) isSupervisorMessage()  {}
func (ColorizationResults) isSupervisorMessage() {}
func (ColorizeRequest) isSupervisorMessage()     {}
func (Cancel) isSupervisorMessage()              {}
func (Quit) isSupervisorMessage()                {}
