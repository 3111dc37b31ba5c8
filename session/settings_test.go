package session

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name string, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSettingsJSON(t *testing.T) {
	path := writeFile(t, "settings.json", `{
		"Width": 320,
		"Height": 200,
		"MaxIterations": 500,
		"Format": "jpg",
		"Transitions": [{"Frames": 0, "ScrollX": 4}]
	}`)

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Width != 320 || s.Height != 200 || s.MaxIterations != 500 {
		t.Errorf("image settings = %dx%d %d", s.Width, s.Height, s.MaxIterations)
	}
	if s.TileSize != 100 || s.SectionHeight != 2 || s.CenterX != -0.8 {
		t.Errorf("defaults were not kept: %+v", s)
	}
	if s.Format != "jpeg" {
		t.Errorf("format = %q, want jpeg", s.Format)
	}
	if s.Transitions[0].Frames != 1 {
		t.Errorf("transition frames = %d, want 1", s.Transitions[0].Frames)
	}
	if s.RunName == "" || s.SavePath == "" {
		t.Errorf("run name %q, save path %q", s.RunName, s.SavePath)
	}
}

func TestLoadSettingsYAML(t *testing.T) {
	path := writeFile(t, "settings.yaml", `
width: 640
height: 480
tileSize: 32
centerX: -0.5
gradient: fire
palette:
  - {r: 255, g: 0, b: 0, a: 255}
  - {r: 0, g: 0, b: 255, a: 255}
transitions:
  - frames: 10
    zoomEnd: 0.01
`)

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Width != 640 || s.TileSize != 32 || s.CenterX != -0.5 || s.Gradient != "fire" {
		t.Errorf("settings = %+v", s)
	}
	if len(s.Transitions) != 1 || s.Transitions[0].Frames != 10 || s.Transitions[0].ZoomEnd != 0.01 {
		t.Errorf("transitions = %+v", s.Transitions)
	}
	if s.FrameCount() != 11 {
		t.Errorf("frame count = %d, want 11", s.FrameCount())
	}

	g, err := s.LoadGradient()
	if err != nil {
		t.Fatal(err)
	}
	if got := g.ColorAt(0); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("palette gradient starts with %v", got)
	}
}

func TestLoadSettingsErrors(t *testing.T) {
	if _, err := LoadSettings(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("loading a missing file succeeded")
	}
	if _, err := LoadSettings(writeFile(t, "broken.json", "{")); err == nil {
		t.Error("loading broken JSON succeeded")
	}
}

func TestVerifyClampsValues(t *testing.T) {
	s := Settings{
		Width:         -1,
		MaxIterations: 0,
		CenterX:       10,
		Format:        "gif",
		Scale:         -2,
		Verbosity:     7,
		Workers:       -3,
	}
	if err := s.Verify(); err != nil {
		t.Fatal(err)
	}
	if s.Width != 800 || s.Height != 600 || s.MaxIterations != 1000 || s.CenterX != -0.8 {
		t.Errorf("image settings were not defaulted: %+v", s)
	}
	if s.Format != "png" || s.Scale != 1 || s.Verbosity != 2 || s.Workers < 1 {
		t.Errorf("output settings were not defaulted: %+v", s)
	}
}

func TestSaveSettingsJSON(t *testing.T) {
	s := DefaultSettings()
	s.Width = 123
	path := filepath.Join(t.TempDir(), "copy.json")
	if err := s.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadSettings(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Width != 123 {
		t.Errorf("width = %d, want 123", loaded.Width)
	}
}

func TestRequest(t *testing.T) {
	s := DefaultSettings()
	r := s.Request()
	if r.ImageSize.Width != 800 || r.Area != r.ImageSize.Rect() || r.FractalSection.Height != 2 || r.TileSize != 100 {
		t.Errorf("request = %v", r)
	}
}
