package worker

import (
	"fmt"

	"github.com/BrugadaSyndrome/bslogger"

	"TiledMandelbrot/mandelbrot"
	"TiledMandelbrot/misc"
	"TiledMandelbrot/queue"
	"TiledMandelbrot/task"
)

// Worker calculates tiles and colorizes row bands. It receives its work from
// the worker queue and reports back through the supervisor queue.
type Worker struct {
	id                  int
	logger              bslogger.Logger
	buffers             *mandelbrot.Buffers
	workerQueue         *queue.MessageQueue[task.WorkerMessage]
	supervisorQueue     *queue.MessageQueue[task.SupervisorMessage]
	iterationsHistogram []int
	tasksCompleted      int
	done                chan struct{}
}

func NewWorker(id int, workerQueue *queue.MessageQueue[task.WorkerMessage],
	supervisorQueue *queue.MessageQueue[task.SupervisorMessage], buffers *mandelbrot.Buffers, verbosity int) *Worker {
	return &Worker{
		id:              id,
		logger:          misc.NewLogger(fmt.Sprintf("Worker %d", id), verbosity),
		buffers:         buffers,
		workerQueue:     workerQueue,
		supervisorQueue: supervisorQueue,
	}
}

// Run starts processing messages until a quit message arrives.
func (w *Worker) Run() {
	w.done = make(chan struct{})
	go w.processTasks()
}

// Join waits for the worker to stop.
func (w *Worker) Join() {
	if w.done != nil {
		<-w.done
	}
}

func (w *Worker) TasksCompleted() int {
	return w.tasksCompleted
}

func (w *Worker) processTasks() {
	defer close(w.done)
	w.logger.Debug("Started")

	for w.handleMessage(w.workerQueue.WaitForMessage()) {
	}

	w.logger.Debugf("Stopping after %s tasks", misc.Count(w.tasksCompleted))
}

// handleMessage reports whether the worker should keep running.
func (w *Worker) handleMessage(message task.WorkerMessage) bool {
	switch msg := message.(type) {
	case task.Calculate:
		w.calculate(msg)
	case task.Colorize:
		w.colorize(msg)
	case task.WorkerQuit:
		return false
	default:
		panic(fmt.Sprintf("worker %d: unknown message %T", w.id, message))
	}
	w.tasksCompleted++
	return true
}

func (w *Worker) calculate(msg task.Calculate) {
	if len(w.buffers.ResultsPerPoint) < msg.ImageSize.Pixels() {
		panic(fmt.Sprintf("worker %d: results buffer holds %d points, image %s needs %d",
			w.id, len(w.buffers.ResultsPerPoint), msg.ImageSize, msg.ImageSize.Pixels()))
	}
	w.resizeHistogramIfNeeded(msg.MaxIterations)

	mandelbrot.Calculate(msg.ImageSize, msg.FractalSection, msg.MaxIterations,
		w.iterationsHistogram, w.buffers.ResultsPerPoint, msg.Area)
	mandelbrot.Preview(w.buffers.ResultsPerPoint, msg.ImageSize, msg.Area, msg.MaxIterations, msg.Pixels)
	w.buffers.Histogram.Merge(w.iterationsHistogram)

	w.supervisorQueue.Send(task.CalculationResults{
		MaxIterations: msg.MaxIterations,
		ImageSize:     msg.ImageSize,
		Area:          msg.Area,
		Pixels:        msg.Pixels,
	})
}

func (w *Worker) colorize(msg task.Colorize) {
	mandelbrot.Colorize(w.buffers.ResultsPerPoint, w.buffers.EqualizedIterations, msg.Gradient,
		msg.MaxIterations, msg.StartRow, msg.NumRows, msg.RowWidth, w.buffers.ColorizationBuffer)

	w.supervisorQueue.Send(task.ColorizationResults{
		StartRow: msg.StartRow,
		NumRows:  msg.NumRows,
		RowWidth: msg.RowWidth,
	})
}

func (w *Worker) resizeHistogramIfNeeded(maxIterations int) {
	if len(w.iterationsHistogram) != maxIterations+1 {
		w.iterationsHistogram = make([]int, maxIterations+1)
	}
}
