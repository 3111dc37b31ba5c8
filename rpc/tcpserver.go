package rpc

import (
	"errors"
	"net"
	"net/rpc"
	"sync"
	"time"

	"github.com/BrugadaSyndrome/bslogger"

	"TiledMandelbrot/misc"
)

// TcpServer serves the exported methods of an object over net/rpc.
type TcpServer struct {
	address  string
	listener *net.TCPListener
	object   any
	shutdown chan struct{}
	wg       sync.WaitGroup

	Logger bslogger.Logger
	Name   string
}

func NewTcpServer(object any, address string, name string, verbosity int) *TcpServer {
	return &TcpServer{
		address:  address,
		object:   object,
		shutdown: make(chan struct{}),
		Logger:   misc.NewLogger(name, verbosity),
		Name:     name,
	}
}

// Address is the address the server listens on once it runs.
func (ts *TcpServer) Address() string {
	if ts.listener != nil {
		return ts.listener.Addr().String()
	}
	return ts.address
}

func (ts *TcpServer) Run() error {
	handler := rpc.NewServer()
	err := handler.Register(ts.object)
	if err != nil {
		ts.Logger.Error("Registering object")
		return err
	}

	tcpAddress, err := net.ResolveTCPAddr("tcp", ts.address)
	if err != nil {
		ts.Logger.Errorf("Resolving tcp address %s", ts.address)
		return err
	}

	ts.listener, err = net.ListenTCP("tcp", tcpAddress)
	if err != nil {
		ts.Logger.Errorf("Listening at address %s", ts.address)
		return err
	}

	ts.wg.Add(1)
	go func() {
		defer ts.wg.Done()
		for {
			select {
			case <-ts.shutdown:
				// Server has been given the signal to shutdown
				err := ts.listener.Close()
				if err != nil {
					ts.Logger.Infof("Server closed listener - %s", err)
				}
				return
			default:
				// Poll this connection periodically
				ts.listener.SetDeadline(time.Now().Add(250 * time.Millisecond))
			}

			conn, err := ts.listener.Accept()
			if err != nil {
				var netErr net.Error
				if errors.As(err, &netErr) && netErr.Timeout() {
					// Deadline timeout has occurred
					continue
				}
				ts.Logger.Warningf("Accepting connection at address %s - %s", ts.Address(), err)
				continue
			}

			ts.Logger.Debugf("Server opened connection to client at address %s", conn.RemoteAddr())
			go handler.ServeConn(conn)
		}
	}()

	ts.Logger.Infof("Running server at address %s", ts.Address())
	return nil
}

// Stop closes the listener. Open connections are served until the clients disconnect.
func (ts *TcpServer) Stop() error {
	ts.Logger.Infof("Shutting down server at address %s", ts.Address())
	close(ts.shutdown)
	ts.wg.Wait()
	return nil
}
