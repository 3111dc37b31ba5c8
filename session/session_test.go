package session

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"TiledMandelbrot/gradient"
	"TiledMandelbrot/task"
)

func testSettings(t *testing.T) Settings {
	t.Helper()
	s := DefaultSettings()
	s.Width = 64
	s.Height = 48
	s.MaxIterations = 60
	s.TileSize = 16
	s.Workers = 2
	s.SavePath = t.TempDir()
	s.RunName = "test"
	s.Verbosity = 0
	if err := s.Verify(); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSessionRendersAllFrames(t *testing.T) {
	settings := testSettings(t)
	settings.Transitions = []TransitionSettings{
		{Frames: 2, ScrollX: 8},
		{Frames: 2, ZoomEnd: 1},
	}

	s := NewSession(settings, gradient.Benchmark())
	if err := s.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	frames := s.Frames()
	if len(frames) != 5 {
		t.Fatalf("rendered %d frames, want 5", len(frames))
	}
	for i, f := range frames {
		if f.Frame != i+1 {
			t.Errorf("frame %d is numbered %d", i+1, f.Frame)
		}
		if _, err := os.Stat(f.Path); err != nil {
			t.Errorf("frame %d was not saved: %v", f.Frame, err)
		}
		if f.Escaped == 0 || math.IsNaN(f.MeanIterations) || f.MeanIterations <= 0 {
			t.Errorf("frame %d stats = %+v", f.Frame, f)
		}
	}
	if filepath.Base(frames[4].Path) != "5.png" {
		t.Errorf("last frame saved as %s", frames[4].Path)
	}

	saved, err := LoadSettings(filepath.Join(settings.SavePath, settings.RunName, "settings.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if saved.Width != 64 || saved.TileSize != 16 || len(saved.Transitions) != 2 || saved.Transitions[1].ZoomEnd != 1 {
		t.Errorf("settings copy = %+v", saved)
	}
}

func TestSessionStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewSession(testSettings(t), gradient.Benchmark())
	if err := s.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
}

func TestScrollTransition(t *testing.T) {
	size := task.ImageSize{Width: 64, Height: 64}
	start := task.NewImageRequest(size, task.FractalSection{CenterX: -0.5, Height: 4}, 100, 16)
	transition := TransitionSettings{Frames: 3, ScrollY: -4}

	request := start
	for frame := 1; frame <= transition.Frames; frame++ {
		request = transition.Next(start, request, frame)
		if request.Scroll != (task.Scroll{Y: -4}) || request.Area.Dy() != 4 {
			t.Errorf("frame %d: scroll %v, area %v", frame, request.Scroll, request.Area)
		}
	}
	if want := 3 * 4 * 4.0 / 64; request.FractalSection.CenterY != want {
		t.Errorf("center y = %v, want %v", request.FractalSection.CenterY, want)
	}
}

func TestZoomTransition(t *testing.T) {
	size := task.ImageSize{Width: 64, Height: 64}
	start := task.NewImageRequest(size, task.FractalSection{CenterX: -0.5, Height: 2}, 100, 16)

	for _, end := range []float64{0.5, 3} {
		transition := TransitionSettings{Frames: 4, ZoomEnd: end}
		request := start
		for frame := 1; frame <= transition.Frames; frame++ {
			previous := request
			request = transition.Next(start, request, frame)
			if request.Area != size.Rect() || !request.Scroll.IsZero() {
				t.Errorf("zoom frame %d is not a full request: %v", frame, request)
			}
			if end < 2 && request.FractalSection.Height > previous.FractalSection.Height {
				t.Errorf("zooming in grew the section at frame %d", frame)
			}
			if end > 2 && request.FractalSection.Height < previous.FractalSection.Height {
				t.Errorf("zooming out shrank the section at frame %d", frame)
			}
		}
		if request.FractalSection.Height != end {
			t.Errorf("zoom ended at %v, want %v", request.FractalSection.Height, end)
		}
	}
}
