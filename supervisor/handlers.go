package supervisor

import (
	"image"

	"TiledMandelbrot/mandelbrot"
	"TiledMandelbrot/misc"
	"TiledMandelbrot/task"
)

func (s *Supervisor) handleImageRequest(request task.ImageRequest) {
	if s.busy() {
		s.deferMessage(request)
		return
	}

	s.logger.Debugf("Received image request %s", request)
	s.status.startCalculation(RequestReceived)
	s.phase = RequestReceived
	s.canceled = false

	full := request.ImageSize.Rect()
	if s.resizeBuffersIfNeeded(request.ImageSize, request.MaxIterations) || !s.resultsValid {
		request.Scroll = task.Scroll{}
		request.Area = full
	}
	if !request.Scroll.IsZero() {
		s.buffers.Scroll(request.Scroll)
	}
	request.Area = request.Area.Intersect(full)

	s.buffers.Histogram.Reset()
	if request.Area != full {
		s.buffers.Histogram.AddRetained(s.buffers.ResultsPerPoint, request.ImageSize, request.MaxIterations, request.Area)
	}
	s.resultsValid = false

	s.sendCalculationMessages(request)
	s.setPhase(Calculating)

	if s.waitingForCalculationResults == 0 {
		s.calculationFinished()
	}
}

// resizeBuffersIfNeeded reports whether the buffers changed, in which case
// nothing of the previous image can be reused.
func (s *Supervisor) resizeBuffersIfNeeded(size task.ImageSize, maxIterations int) bool {
	previousSize := s.buffers.ImageSize()
	if !s.buffers.ResizeIfNeeded(size, maxIterations) {
		return false
	}

	s.logger.Debugf("Resized buffers to %s with %s iterations", size, misc.Count(maxIterations))
	if r, ok := s.sink.(Resizer); ok && size != previousSize {
		r.Resize(size)
	}
	return true
}

func (s *Supervisor) sendCalculationMessages(request task.ImageRequest) {
	tiles := task.Tiles(request.Area, request.TileSize)

	for _, tile := range tiles {
		s.workerQueue.Send(task.Calculate{
			MaxIterations:  request.MaxIterations,
			ImageSize:      request.ImageSize,
			Area:           tile,
			FractalSection: request.FractalSection,
			Pixels:         make([]byte, 4*tile.Dx()*tile.Dy()),
		})
	}
	s.waitingForCalculationResults += len(tiles)

	s.logger.Debugf("Sent %s tiles for area %v", misc.Count(len(tiles)), request.Area)
}

func (s *Supervisor) handleCalculationResults(results task.CalculationResults) {
	s.sink.UpdateRegion(results.Pixels, results.Area)

	s.waitingForCalculationResults--
	s.checkCounters()

	if s.waitingForCalculationResults == 0 {
		s.calculationFinished()
	}
}

func (s *Supervisor) calculationFinished() {
	if s.canceled {
		s.logger.Infof("Calculation canceled after %s", s.status.CalculationTime())
		s.finish()
		return
	}

	s.resultsValid = true
	mandelbrot.Equalize(s.buffers.Histogram.Counts(), s.buffers.MaxIterations(), s.buffers.EqualizedIterations)
	s.sendColorizationMessages()
}

// sendColorizationMessages splits the image into one row band per worker.
func (s *Supervisor) sendColorizationMessages() {
	s.setPhase(Coloring)
	size := s.buffers.ImageSize()

	for _, band := range task.RowBands(size.Height, s.numWorkers) {
		if band.NumRows == 0 {
			continue
		}
		s.workerQueue.Send(task.Colorize{
			MaxIterations: s.buffers.MaxIterations(),
			StartRow:      band.StartRow,
			NumRows:       band.NumRows,
			RowWidth:      size.Width,
			Gradient:      s.gradient,
		})
		s.waitingForColorizationResults++
	}

	if s.waitingForColorizationResults == 0 {
		s.finish()
	}
}

func (s *Supervisor) handleColorizationResults(results task.ColorizationResults) {
	start := 4 * results.StartRow * results.RowWidth
	end := 4 * (results.StartRow + results.NumRows) * results.RowWidth
	area := image.Rect(0, results.StartRow, results.RowWidth, results.StartRow+results.NumRows)
	s.sink.UpdateRegion(s.buffers.ColorizationBuffer[start:end], area)

	s.waitingForColorizationResults--
	s.checkCounters()

	if s.waitingForColorizationResults == 0 {
		s.logger.Infof("Finished %s image in %s", s.buffers.ImageSize(), s.status.CalculationTime())
		s.finish()
	}
}

func (s *Supervisor) handleColorizeRequest(request task.ColorizeRequest) {
	if s.busy() {
		s.deferMessage(request)
		return
	}

	s.logger.Debugf("Received colorize request with gradient %s", request.Gradient)
	s.gradient = request.Gradient

	if !s.resultsValid {
		s.logger.Debug("Nothing to colorize")
		s.finish()
		return
	}

	s.status.startCalculation(Coloring)
	s.sendColorizationMessages()
}

func (s *Supervisor) handleCancel() {
	switch s.phase {
	case Calculating, Canceled:
		drained := s.workerQueue.Clear()
		s.waitingForCalculationResults -= drained
		s.checkCounters()
		s.canceled = true
		s.deferred = nil

		s.logger.Infof("Canceled %s queued tiles, waiting for %s", misc.Count(drained), misc.Count(s.waitingForCalculationResults))

		if s.waitingForCalculationResults > 0 {
			s.setPhase(Canceled)
		} else {
			s.calculationFinished()
		}
	default:
		s.logger.Warningf("Ignoring cancel while %s", s.phase)
	}
}
