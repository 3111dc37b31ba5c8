package session

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"gopkg.in/yaml.v3"

	"TiledMandelbrot/canvas"
	"TiledMandelbrot/gradient"
	"TiledMandelbrot/misc"
	"TiledMandelbrot/task"
)

type Settings struct {
	logger bslogger.Logger

	Width         int                  `yaml:"width"`
	Height        int                  `yaml:"height"`
	MaxIterations int                  `yaml:"maxIterations"`
	TileSize      int                  `yaml:"tileSize"`
	Workers       int                  `yaml:"workers"`
	CenterX       float64              `yaml:"centerX"`
	CenterY       float64              `yaml:"centerY"`
	SectionHeight float64              `yaml:"sectionHeight"`
	Gradient      string               `yaml:"gradient"`
	GradientsPath string               `yaml:"gradientsPath"`
	Palette       []color.RGBA         `yaml:"palette,omitempty"`
	RunName       string               `yaml:"runName"`
	SavePath      string               `yaml:"savePath"`
	Format        string               `yaml:"format"`
	Scale         float64              `yaml:"scale"`
	Verbosity     int                  `yaml:"verbosity"`
	ServerAddress string               `yaml:"serverAddress"`
	Transitions   []TransitionSettings `yaml:"transitions,omitempty"`
}

func DefaultSettings() Settings {
	return Settings{
		logger:        misc.NewLogger("SessionSettings", 1),
		Width:         800,
		Height:        600,
		MaxIterations: 1000,
		TileSize:      100,
		Workers:       runtime.NumCPU(),
		CenterX:       -0.8,
		CenterY:       0.0,
		SectionHeight: 2.0,
		GradientsPath: filepath.Join("assets", "gradients"),
		Format:        "png",
		Scale:         1,
		Verbosity:     1,
		ServerAddress: "localhost:51000",
	}
}

// LoadSettings reads settings from a .json, .yaml or .yml file. Missing
// values keep their defaults.
func LoadSettings(settingsFile string) (Settings, error) {
	s := DefaultSettings()

	fileBytes, err := misc.ReadFile(settingsFile)
	if err != nil {
		return s, err
	}

	switch strings.ToLower(filepath.Ext(settingsFile)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(fileBytes, &s)
	default:
		err = json.Unmarshal(fileBytes, &s)
	}
	if err != nil {
		return s, fmt.Errorf("unable to parse %s: %w", settingsFile, err)
	}

	if err = s.Verify(); err != nil {
		return s, err
	}
	s.logger.Debug(s.String())
	return s, nil
}

// Save writes the settings to path, as YAML or JSON depending on the extension.
func (s *Settings) Save(path string) error {
	var (
		fileBytes []byte
		err       error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		fileBytes, err = yaml.Marshal(s)
	default:
		fileBytes, err = json.MarshalIndent(s, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("unable to encode settings: %w", err)
	}

	bytesWritten, err := misc.WriteFile(path, fileBytes)
	if err != nil {
		return err
	}
	if bytesWritten == 0 {
		return fmt.Errorf("unable to make a backup copy of the settings at %s", path)
	}
	return nil
}

func (s *Settings) String() string {
	output := "\nSession settings\n"
	output += fmt.Sprintf("Image: %dx%d, %d iterations, tile size %d, %d workers\n", s.Width, s.Height, s.MaxIterations, s.TileSize, s.Workers)
	output += fmt.Sprintf("Section: %g/%g height %g\n", s.CenterX, s.CenterY, s.SectionHeight)
	output += fmt.Sprintf("Gradient: %q (%s)\n", s.Gradient, s.GradientsPath)
	output += fmt.Sprintf("Output: %s as %s at scale %g\n", filepath.Join(s.SavePath, s.RunName), s.Format, s.Scale)
	output += fmt.Sprintf("Transitions: %d\n", len(s.Transitions))
	return output
}

// Verify replaces missing or invalid values with defaults.
func (s *Settings) Verify() error {
	defaults := DefaultSettings()
	s.logger = misc.NewLogger("SessionSettings", s.Verbosity)

	if s.Width <= 0 {
		s.Width = defaults.Width
	}
	if s.Height <= 0 {
		s.Height = defaults.Height
	}
	if s.MaxIterations < 1 {
		s.MaxIterations = defaults.MaxIterations
	}
	if s.TileSize <= 0 {
		s.TileSize = defaults.TileSize
	}
	if s.Workers <= 0 {
		s.Workers = defaults.Workers
	}
	if s.CenterX > 4.0 || s.CenterX < -4.0 {
		s.CenterX = defaults.CenterX
	}
	if s.CenterY > 4.0 || s.CenterY < -4.0 {
		s.CenterY = defaults.CenterY
	}
	if s.SectionHeight <= 0 {
		s.SectionHeight = defaults.SectionHeight
	}
	if s.RunName == "" {
		s.RunName = "run_" + time.Now().Format("2006_01_02-03_04_05")
	}
	if s.SavePath == "" {
		s.SavePath, _ = os.Getwd()
	}
	if s.Format == "jpg" {
		s.Format = "jpeg"
	}
	if !slices.Contains(canvas.Formats, s.Format) {
		s.logger.Warningf("Unknown format %q, saving as png", s.Format)
		s.Format = "png"
	}
	if s.Scale <= 0 {
		s.Scale = 1
	}
	s.Verbosity = min(max(s.Verbosity, 0), 2)
	if s.ServerAddress == "" {
		s.ServerAddress = defaults.ServerAddress
	}

	for i := range s.Transitions {
		misc.CheckError(s.Transitions[i].Verify(), s.logger, misc.Warning)
	}
	return nil
}

func (s *Settings) ImageSize() task.ImageSize {
	return task.ImageSize{Width: s.Width, Height: s.Height}
}

// Request is the request for the first frame.
func (s *Settings) Request() task.ImageRequest {
	section := task.FractalSection{CenterX: s.CenterX, CenterY: s.CenterY, Height: s.SectionHeight}
	return task.NewImageRequest(s.ImageSize(), section, s.MaxIterations, s.TileSize)
}

// LoadGradient returns the configured gradient. An inline palette takes
// precedence over a named gradient.
func (s *Settings) LoadGradient() (gradient.Gradient, error) {
	if len(s.Palette) > 0 {
		return gradient.FromColors("palette", s.Palette...)
	}
	return gradient.Find(s.GradientsPath, s.Gradient)
}

// FrameCount is the number of frames the session renders.
func (s *Settings) FrameCount() int {
	count := 1
	for _, t := range s.Transitions {
		count += t.Frames
	}
	return count
}
