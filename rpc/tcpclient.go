package rpc

import (
	"errors"
	"fmt"
	"net/rpc"

	"github.com/BrugadaSyndrome/bslogger"

	"TiledMandelbrot/misc"
)

var ErrNotConnected = errors.New("not connected")

type TcpClient struct {
	client        *rpc.Client
	serverAddress string

	Logger bslogger.Logger
	Name   string
}

func NewTcpClient(serverAddress string, name string, verbosity int) *TcpClient {
	return &TcpClient{
		serverAddress: serverAddress,
		Name:          name,
		Logger:        misc.NewLogger(name, verbosity),
	}
}

func (tc *TcpClient) Connect() error {
	if tc.client != nil {
		tc.Logger.Warningf("Already connected to server at address %s", tc.serverAddress)
		return nil
	}

	var err error
	tc.client, err = rpc.Dial("tcp", tc.serverAddress)
	if err != nil {
		return fmt.Errorf("connecting to server at address %s: %w", tc.serverAddress, err)
	}
	tc.Logger.Debugf("Connected to server at: %s", tc.serverAddress)
	return nil
}

func (tc *TcpClient) Call(method string, request any, reply any) error {
	if tc.client == nil {
		return fmt.Errorf("calling %s at %s: %w", method, tc.serverAddress, ErrNotConnected)
	}

	err := tc.client.Call(method, request, reply)
	if err != nil {
		return fmt.Errorf("calling %s at %s: %w", method, tc.serverAddress, err)
	}
	tc.Logger.Debugf("Calling server [%s] %s", tc.serverAddress, method)
	return nil
}

func (tc *TcpClient) Disconnect() error {
	if tc.client == nil {
		return fmt.Errorf("disconnecting from %s: %w", tc.serverAddress, ErrNotConnected)
	}

	err := tc.client.Close()
	tc.client = nil
	if err != nil {
		return fmt.Errorf("disconnecting from server at address %s: %w", tc.serverAddress, err)
	}
	tc.Logger.Debugf("Disconnected from server at %s", tc.serverAddress)
	return nil
}
