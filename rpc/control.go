package rpc

import (
	"fmt"
	"time"

	"github.com/BrugadaSyndrome/bslogger"

	"TiledMandelbrot/canvas"
	"TiledMandelbrot/gradient"
	"TiledMandelbrot/misc"
	"TiledMandelbrot/supervisor"
	"TiledMandelbrot/task"
)

type Nothing struct{}

type StatusReply struct {
	Phase              string
	CalculationTime    time.Duration
	CalculationRunning bool
	Workers            int
	ImageSize          task.ImageSize
	Updates            int
}

// Control exposes a supervisor and the canvas it draws on to remote clients.
type Control struct {
	logger     bslogger.Logger
	supervisor *supervisor.Supervisor
	canvas     *canvas.Canvas
}

func NewControl(s *supervisor.Supervisor, c *canvas.Canvas, verbosity int) *Control {
	return &Control{
		logger:     misc.NewLogger("Control", verbosity),
		supervisor: s,
		canvas:     c,
	}
}

func (c *Control) CalculateImage(request task.ImageRequest, reply *Nothing) error {
	c.logger.Debugf("Calculate image %s", request)
	c.supervisor.CalculateImage(request)
	return nil
}

func (c *Control) Colorize(g gradient.Gradient, reply *Nothing) error {
	c.logger.Debugf("Colorize with gradient %s", g)
	c.supervisor.Colorize(g)
	return nil
}

func (c *Control) Cancel(request Nothing, reply *Nothing) error {
	c.logger.Debug("Cancel")
	c.supervisor.Cancel()
	return nil
}

func (c *Control) Status(request Nothing, reply *StatusReply) error {
	status := c.supervisor.Status()
	*reply = StatusReply{
		Phase:              status.Phase().String(),
		CalculationTime:    status.CalculationTime(),
		CalculationRunning: status.CalculationRunning(),
		Workers:            c.supervisor.NumWorkers(),
		ImageSize:          c.canvas.Size(),
		Updates:            c.canvas.Updates(),
	}
	return nil
}

func (c *Control) RollCall(request Nothing, present *bool) error {
	*present = true
	return nil
}

// Save writes the current image to path on the server.
func (c *Control) Save(path string, reply *Nothing) error {
	c.logger.Infof("Saving image to %s", path)
	return c.canvas.Save(path, 1)
}

// ControlServer runs a supervisor behind a TCP control server.
type ControlServer struct {
	Server *TcpServer
}

func NewControlServer(s *supervisor.Supervisor, c *canvas.Canvas, address string, verbosity int) *ControlServer {
	return &ControlServer{
		Server: NewTcpServer(NewControl(s, c, verbosity), address, "ControlServer", verbosity),
	}
}

func (cs *ControlServer) Run() error {
	return cs.Server.Run()
}

func (cs *ControlServer) Stop() error {
	return cs.Server.Stop()
}

func (cs *ControlServer) Address() string {
	return cs.Server.Address()
}

// ControlClient calls the methods of a remote Control.
type ControlClient struct {
	client *TcpClient
}

func NewControlClient(address string, verbosity int) *ControlClient {
	return &ControlClient{client: NewTcpClient(address, "ControlClient", verbosity)}
}

func (cc *ControlClient) Connect() error {
	return cc.client.Connect()
}

func (cc *ControlClient) Disconnect() error {
	return cc.client.Disconnect()
}

func (cc *ControlClient) CalculateImage(request task.ImageRequest) error {
	var nothing Nothing
	return cc.client.Call("Control.CalculateImage", request, &nothing)
}

func (cc *ControlClient) Colorize(g gradient.Gradient) error {
	var nothing Nothing
	return cc.client.Call("Control.Colorize", g, &nothing)
}

func (cc *ControlClient) Cancel() error {
	var nothing Nothing
	return cc.client.Call("Control.Cancel", nothing, &nothing)
}

func (cc *ControlClient) Status() (StatusReply, error) {
	var reply StatusReply
	err := cc.client.Call("Control.Status", Nothing{}, &reply)
	return reply, err
}

func (cc *ControlClient) RollCall() (bool, error) {
	var present bool
	err := cc.client.Call("Control.RollCall", Nothing{}, &present)
	return present, err
}

func (cc *ControlClient) Save(path string) error {
	var nothing Nothing
	return cc.client.Call("Control.Save", path, &nothing)
}

// WaitForIdle polls the server until its supervisor is idle.
func (cc *ControlClient) WaitForIdle(pollInterval time.Duration, timeout time.Duration) (StatusReply, error) {
	deadline := time.Now().Add(timeout)
	for {
		status, err := cc.Status()
		if err != nil || status.Phase == supervisor.Idle.String() {
			return status, err
		}
		if time.Now().After(deadline) {
			return status, fmt.Errorf("still %s after %s", status.Phase, timeout)
		}
		time.Sleep(pollInterval)
	}
}
