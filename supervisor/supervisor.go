package supervisor

import (
	"fmt"
	"image"

	"github.com/BrugadaSyndrome/bslogger"

	"TiledMandelbrot/gradient"
	"TiledMandelbrot/mandelbrot"
	"TiledMandelbrot/misc"
	"TiledMandelbrot/queue"
	"TiledMandelbrot/task"
	"TiledMandelbrot/worker"
)

// Sink receives finished parts of the image. pixels holds four bytes per
// pixel of area in row-major order and is only valid during the call.
type Sink interface {
	UpdateRegion(pixels []byte, area image.Rectangle)
}

// Resizer is implemented by sinks that want to know when the image size changes.
type Resizer interface {
	Resize(size task.ImageSize)
}

// Supervisor splits image requests into tiles, hands them to a pool of
// workers and colorizes the image once every tile is done. All decisions are
// made on the supervisor goroutine; callers only send messages and poll the
// status.
type Supervisor struct {
	logger          bslogger.Logger
	verbosity       int
	sink            Sink
	buffers         *mandelbrot.Buffers
	workerQueue     *queue.MessageQueue[task.WorkerMessage]
	supervisorQueue *queue.MessageQueue[task.SupervisorMessage]
	workers         []*worker.Worker
	numWorkers      int
	done            chan struct{}
	status          Status

	// owned by the supervisor goroutine
	running                       bool
	phase                         Phase
	gradient                      gradient.Gradient
	canceled                      bool
	resultsValid                  bool
	waitingForCalculationResults  int
	waitingForColorizationResults int
	deferred                      []task.SupervisorMessage
}

func NewSupervisor(sink Sink, g gradient.Gradient, verbosity int) *Supervisor {
	return &Supervisor{
		logger:          misc.NewLogger("Supervisor", verbosity),
		verbosity:       verbosity,
		sink:            sink,
		buffers:         mandelbrot.NewBuffers(),
		workerQueue:     queue.NewMessageQueue[task.WorkerMessage](),
		supervisorQueue: queue.NewMessageQueue[task.SupervisorMessage](),
		gradient:        g,
	}
}

// Run starts the supervisor and numWorkers workers in the background.
func (s *Supervisor) Run(numWorkers int) {
	s.numWorkers = max(1, numWorkers)
	s.status.setPhase(Starting)
	s.done = make(chan struct{})
	go s.main()
}

// Join waits for the supervisor to stop.
func (s *Supervisor) Join() {
	if s.done != nil {
		<-s.done
	}
}

// Shutdown stops the supervisor and all workers. Queued work is discarded.
func (s *Supervisor) Shutdown() {
	if s.done == nil {
		return
	}
	s.supervisorQueue.Send(task.Quit{})
	s.Join()
	s.done = nil
}

// Restart shuts down and starts again with numWorkers workers.
func (s *Supervisor) Restart(numWorkers int) {
	s.Shutdown()
	s.Run(numWorkers)
}

func (s *Supervisor) CalculateImage(request task.ImageRequest) {
	s.status.compareAndSwapPhase(Idle, RequestSent)
	s.supervisorQueue.Send(request)
}

// Colorize recolors the last calculated image with g.
func (s *Supervisor) Colorize(g gradient.Gradient) {
	s.status.compareAndSwapPhase(Idle, RequestSent)
	s.supervisorQueue.Send(task.ColorizeRequest{Gradient: g})
}

// Cancel stops the running calculation. It has no effect while coloring.
func (s *Supervisor) Cancel() {
	s.supervisorQueue.Send(task.Cancel{})
}

func (s *Supervisor) Status() *Status {
	return &s.status
}

func (s *Supervisor) NumWorkers() int {
	return s.numWorkers
}

// IterationsHistogram returns the escape iteration counts of the last image.
func (s *Supervisor) IterationsHistogram() []int {
	return s.buffers.Histogram.Counts()
}

func (s *Supervisor) main() {
	defer close(s.done)

	s.logger.Debugf("Starting %d workers", s.numWorkers)
	s.startWorkers()

	s.running = true
	s.phase = Idle
	s.status.setPhase(Idle)

	for s.running {
		s.handleMessage(s.supervisorQueue.WaitForMessage())
	}

	s.logger.Debug("Shutting down")
	s.phase = Shutdown
	s.status.stopCalculation(Shutdown)
	s.clearMessageQueues()
	s.shutdownWorkers()
	s.clearMessageQueues()
}

func (s *Supervisor) startWorkers() {
	s.workers = make([]*worker.Worker, s.numWorkers)
	for i := range s.workers {
		s.workers[i] = worker.NewWorker(i, s.workerQueue, s.supervisorQueue, s.buffers, s.verbosity)
		s.workers[i].Run()
	}
}

func (s *Supervisor) shutdownWorkers() {
	for range s.workers {
		s.workerQueue.Send(task.WorkerQuit{})
	}

	tasks := 0
	for _, w := range s.workers {
		w.Join()
		tasks += w.TasksCompleted()
	}
	s.logger.Debugf("Stopped %d workers after %s tasks", len(s.workers), misc.Count(tasks))
	s.workers = nil
}

func (s *Supervisor) clearMessageQueues() {
	if s.waitingForCalculationResults > 0 || s.waitingForColorizationResults > 0 {
		s.resultsValid = false
	}
	s.workerQueue.Clear()
	s.supervisorQueue.Clear()
	s.waitingForCalculationResults = 0
	s.waitingForColorizationResults = 0
	s.deferred = nil
	s.canceled = false
}

func (s *Supervisor) handleMessage(message task.SupervisorMessage) {
	switch msg := message.(type) {
	case task.ImageRequest:
		s.handleImageRequest(msg)
	case task.CalculationResults:
		s.handleCalculationResults(msg)
	case task.ColorizationResults:
		s.handleColorizationResults(msg)
	case task.ColorizeRequest:
		s.handleColorizeRequest(msg)
	case task.Cancel:
		s.handleCancel()
	case task.Quit:
		s.running = false
	default:
		panic(fmt.Sprintf("supervisor: unknown message %T", message))
	}
}

func (s *Supervisor) setPhase(p Phase) {
	s.phase = p
	s.status.setPhase(p)
}

func (s *Supervisor) busy() bool {
	return s.phase != Idle
}

// deferMessage keeps a request that arrived while an image is in progress.
// Buffers must not change while workers use them.
func (s *Supervisor) deferMessage(message task.SupervisorMessage) {
	s.logger.Debugf("Deferring %T while %s", message, s.phase)
	s.deferred = append(s.deferred, message)
}

// finish returns to idle or continues with the next deferred request.
func (s *Supervisor) finish() {
	s.phase = Idle

	if len(s.deferred) > 0 {
		next := s.deferred[0]
		s.deferred = s.deferred[1:]
		s.handleMessage(next)
		return
	}

	s.status.stopCalculation(Idle)
}

func (s *Supervisor) checkCounters() {
	if s.waitingForCalculationResults < 0 || s.waitingForColorizationResults < 0 {
		panic(fmt.Sprintf("supervisor: negative result count (calculation: %d, colorization: %d)",
			s.waitingForCalculationResults, s.waitingForColorizationResults))
	}
}
