package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/BrugadaSyndrome/bslogger"

	"TiledMandelbrot/canvas"
	"TiledMandelbrot/misc"
	"TiledMandelbrot/rpc"
	"TiledMandelbrot/session"
	"TiledMandelbrot/supervisor"
)

var (
	mode, settingsFile, address, output string
	verbosity                           int
)

func main() {
	parseArguments()

	settings := loadSettings()
	logger := misc.NewLogger("Main", settings.Verbosity)

	switch mode {
	case "render":
		render(settings, logger)
	case "serve":
		serve(settings, logger)
	case "calculate":
		calculate(settings, logger)
	case "status":
		status(settings, logger)
	case "cancel":
		cancel(settings, logger)
	default:
		logger.Fatalf("Unknown mode %q", mode)
	}
}

func parseArguments() {
	flag.StringVar(&mode, "mode", "render", "render, serve, calculate, status or cancel")
	flag.StringVar(&settingsFile, "settings", "", "settings file (.json, .yaml or .yml)")
	flag.StringVar(&address, "address", "", "control server address, overrides the settings")
	flag.StringVar(&output, "output", "", "image file the server saves after calculating")
	flag.IntVar(&verbosity, "v", -1, "verbosity 0-2, overrides the settings")
	flag.Parse()
}

func loadSettings() session.Settings {
	settings := session.DefaultSettings()
	if settingsFile != "" {
		var err error
		settings, err = session.LoadSettings(settingsFile)
		if err != nil {
			logger := misc.NewLogger("Main", 1)
			misc.CheckError(err, logger, misc.Fatal)
		}
	}

	if address != "" {
		settings.ServerAddress = address
	}
	if verbosity >= 0 {
		settings.Verbosity = verbosity
	}
	misc.CheckError(settings.Verify(), misc.NewLogger("Main", settings.Verbosity), misc.Warning)
	return settings
}

func render(settings session.Settings, logger bslogger.Logger) {
	g, err := settings.LoadGradient()
	misc.CheckError(err, logger, misc.Fatal)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Infof("Rendering %d frames with %d workers", settings.FrameCount(), settings.Workers)
	if err := session.NewSession(settings, g).Run(ctx); err != nil {
		misc.CheckError(err, logger, misc.Error)
		os.Exit(1)
	}
}

func serve(settings session.Settings, logger bslogger.Logger) {
	g, err := settings.LoadGradient()
	misc.CheckError(err, logger, misc.Fatal)

	c := canvas.NewCanvas(settings.ImageSize())
	s := supervisor.NewSupervisor(c, g, settings.Verbosity)
	s.Run(settings.Workers)
	defer s.Shutdown()

	server := rpc.NewControlServer(s, c, settings.ServerAddress, settings.Verbosity)
	misc.CheckError(server.Run(), logger, misc.Fatal)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	<-ctx.Done()

	misc.CheckError(server.Stop(), logger, misc.Warning)
}

func connect(settings session.Settings, logger bslogger.Logger) *rpc.ControlClient {
	client := rpc.NewControlClient(settings.ServerAddress, settings.Verbosity)
	misc.CheckError(client.Connect(), logger, misc.Fatal)
	return client
}

func calculate(settings session.Settings, logger bslogger.Logger) {
	client := connect(settings, logger)
	defer client.Disconnect()

	misc.CheckError(client.CalculateImage(settings.Request()), logger, misc.Fatal)
	reply, err := client.WaitForIdle(50*time.Millisecond, time.Hour)
	misc.CheckError(err, logger, misc.Fatal)
	logger.Infof("Calculated %s image in %s", reply.ImageSize, reply.CalculationTime.Round(time.Millisecond))

	if output != "" {
		misc.CheckError(client.Save(output), logger, misc.Fatal)
		logger.Infof("Saved image to %s", output)
	}
}

func status(settings session.Settings, logger bslogger.Logger) {
	client := connect(settings, logger)
	defer client.Disconnect()

	reply, err := client.Status()
	misc.CheckError(err, logger, misc.Fatal)
	fmt.Printf("phase: %s\ncalculation time: %s (running: %v)\nworkers: %d\nimage: %s\n",
		reply.Phase, reply.CalculationTime.Round(time.Millisecond), reply.CalculationRunning, reply.Workers, reply.ImageSize)
}

func cancel(settings session.Settings, logger bslogger.Logger) {
	client := connect(settings, logger)
	defer client.Disconnect()

	misc.CheckError(client.Cancel(), logger, misc.Fatal)
	logger.Info("Canceled calculation")
}
