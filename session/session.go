package session

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"gonum.org/v1/gonum/stat"

	"TiledMandelbrot/canvas"
	"TiledMandelbrot/gradient"
	"TiledMandelbrot/misc"
	"TiledMandelbrot/supervisor"
	"TiledMandelbrot/task"
)

// FrameStats summarizes a saved frame.
type FrameStats struct {
	Frame            int
	Path             string
	CalculationTime  time.Duration
	Escaped          int
	MeanIterations   float64
	StdDevIterations float64
}

// Session renders the frames described by its settings one after another and
// saves each of them.
type Session struct {
	logger     bslogger.Logger
	settings   Settings
	canvas     *canvas.Canvas
	supervisor *supervisor.Supervisor
	runDir     string

	pollInterval      time.Duration
	heartBeatInterval time.Duration

	mutex  sync.Mutex
	frames []FrameStats
}

func NewSession(settings Settings, g gradient.Gradient) *Session {
	c := canvas.NewCanvas(settings.ImageSize())
	return &Session{
		logger:            misc.NewLogger("Session", settings.Verbosity),
		settings:          settings,
		canvas:            c,
		supervisor:        supervisor.NewSupervisor(c, g, settings.Verbosity),
		runDir:            filepath.Join(settings.SavePath, settings.RunName),
		pollInterval:      10 * time.Millisecond,
		heartBeatInterval: 30 * time.Second,
	}
}

// Frames returns the statistics of all frames saved so far.
func (s *Session) Frames() []FrameStats {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return append([]FrameStats(nil), s.frames...)
}

func (s *Session) framesCompleted() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.frames)
}

// Run renders all frames. A canceled context cancels the running calculation
// and ends the session with the context's error.
func (s *Session) Run(ctx context.Context) error {
	if err := misc.EnsureDir(s.runDir); err != nil {
		return err
	}

	// Copy the settings to the run directory so the run can be repeated
	if err := s.settings.Save(filepath.Join(s.runDir, "settings.yaml")); err != nil {
		return err
	}

	s.supervisor.Run(s.settings.Workers)
	defer s.supervisor.Shutdown()

	ctx, stop := context.WithCancel(ctx)
	defer stop()
	go s.tickers(ctx)

	if err := s.waitForIdle(ctx); err != nil {
		return err
	}

	startTime := time.Now()
	request := s.settings.Request()
	if err := s.renderFrame(ctx, request); err != nil {
		return err
	}

	for i := range s.settings.Transitions {
		transition := &s.settings.Transitions[i]
		start := request
		for frame := 1; frame <= transition.Frames; frame++ {
			request = transition.Next(start, request, frame)
			if err := s.renderFrame(ctx, request); err != nil {
				return err
			}
		}
	}

	s.logSummary(time.Since(startTime))
	return nil
}

func (s *Session) tickers(ctx context.Context) {
	heartBeat := time.NewTicker(s.heartBeatInterval)
	defer heartBeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-heartBeat.C:
			s.logger.Debug("Heart beat ticker")
			status := s.supervisor.Status()
			completed := s.framesCompleted()
			s.logger.Infof("Frames [Completed: %d] [Todo: %d] | Phase: %s [%s]",
				completed, s.settings.FrameCount()-completed, status.Phase(), status.CalculationTime().Round(time.Millisecond))
		}
	}
}

// waitForIdle polls the supervisor status until the current image is done.
func (s *Session) waitForIdle(ctx context.Context) error {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		if err := ctx.Err(); err != nil {
			s.supervisor.Cancel()
			return err
		}
		if s.supervisor.Status().Phase() == supervisor.Idle {
			return nil
		}

		select {
		case <-ctx.Done():
		case <-ticker.C:
		}
	}
}

func (s *Session) renderFrame(ctx context.Context, request task.ImageRequest) error {
	s.supervisor.CalculateImage(request)
	if err := s.waitForIdle(ctx); err != nil {
		return err
	}

	frame := s.framesCompleted() + 1
	path := filepath.Join(s.runDir, fmt.Sprintf("%d%s", frame, canvas.Extension(s.settings.Format)))
	if err := s.canvas.Save(path, s.settings.Scale); err != nil {
		return err
	}

	stats := s.frameStats(frame, path)
	s.logger.Infof("Saved frame %d/%d to %s in %s (%s escaped, mean %.1f, std dev %.1f iterations)",
		frame, s.settings.FrameCount(), path, stats.CalculationTime.Round(time.Millisecond),
		misc.Count(stats.Escaped), stats.MeanIterations, stats.StdDevIterations)

	s.mutex.Lock()
	s.frames = append(s.frames, stats)
	s.mutex.Unlock()
	return nil
}

func (s *Session) frameStats(frame int, path string) FrameStats {
	stats := FrameStats{
		Frame:           frame,
		Path:            path,
		CalculationTime: s.supervisor.Status().CalculationTime(),
	}

	counts := s.supervisor.IterationsHistogram()
	iterations := make([]float64, len(counts))
	weights := make([]float64, len(counts))
	for i, n := range counts {
		iterations[i] = float64(i)
		weights[i] = float64(n)
		stats.Escaped += n
	}

	switch {
	case stats.Escaped > 1:
		stats.MeanIterations, stats.StdDevIterations = stat.MeanStdDev(iterations, weights)
	case stats.Escaped == 1:
		stats.MeanIterations = stat.Mean(iterations, weights)
	}
	return stats
}

func (s *Session) logSummary(elapsed time.Duration) {
	frames := s.Frames()
	if len(frames) == 0 {
		return
	}

	seconds := make([]float64, len(frames))
	for i, f := range frames {
		seconds[i] = f.CalculationTime.Seconds()
	}
	mean := time.Duration(stat.Mean(seconds, nil) * float64(time.Second))

	s.logger.Infof("Rendered %d frames in %s, %s per frame on average", len(frames), elapsed.Round(time.Millisecond), mean.Round(time.Millisecond))
}
