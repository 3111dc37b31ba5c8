package supervisor

import (
	"sync"
	"sync/atomic"
	"time"
)

// Status is the polled view of a supervisor: the current phase and how long
// the current or last calculation took.
type Status struct {
	phase atomic.Int32

	mutex     sync.Mutex
	running   bool
	startTime time.Time
	elapsed   time.Duration
}

func (s *Status) Phase() Phase {
	return Phase(s.phase.Load())
}

func (s *Status) setPhase(p Phase) {
	s.phase.Store(int32(p))
}

func (s *Status) compareAndSwapPhase(from Phase, to Phase) bool {
	return s.phase.CompareAndSwap(int32(from), int32(to))
}

// startCalculation sets the phase and restarts the stopwatch.
func (s *Status) startCalculation(p Phase) {
	s.mutex.Lock()
	s.running = true
	s.startTime = time.Now()
	s.elapsed = 0
	s.mutex.Unlock()

	s.setPhase(p)
}

// stopCalculation sets the phase and stops the stopwatch.
func (s *Status) stopCalculation(p Phase) {
	s.mutex.Lock()
	if s.running {
		s.running = false
		s.elapsed = time.Since(s.startTime)
	}
	s.mutex.Unlock()

	s.setPhase(p)
}

// CalculationTime is the time spent on the current calculation so far, or on
// the last one if none is running.
func (s *Status) CalculationTime() time.Duration {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.running {
		return time.Since(s.startTime)
	}
	return s.elapsed
}

func (s *Status) CalculationRunning() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.running
}
