package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gologme/log"
	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
)

// ErrNotConnected is returned when a call is attempted without an established connection.
var ErrNotConnected = errors.New("client is not connected")

// Dialer opens a transport; handler serves requests the backend issues over the same channel.
type Dialer func(ctx context.Context, handler transport.Handler) (transport.Transport, error)

type Client struct {
	name      string
	dial      Dialer
	handler   *Handler
	logger    *log.Logger
	timeout   time.Duration
	mux       sync.RWMutex
	state     State
	transport transport.Transport
	listeners []func(State)
}

// State returns current connection state
func (c *Client) State() State {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return c.state
}

// Handler returns handler serving backend initiated requests
func (c *Client) Handler() *Handler {
	return c.handler
}

// OnStateChange registers a connection state listener
func (c *Client) OnStateChange(listener func(State)) {
	c.mux.Lock()
	defer c.mux.Unlock()
	c.listeners = append(c.listeners, listener)
}

func (c *Client) setState(state State) {
	c.mux.Lock()
	if c.state == state {
		c.mux.Unlock()
		return
	}
	c.changeState(state)
}

// changeState sets state and notifies listeners; c.mux must be held and is released.
func (c *Client) changeState(state State) {
	c.state = state
	listeners := make([]func(State), len(c.listeners))
	copy(listeners, c.listeners)
	c.mux.Unlock()
	c.logger.Infof("%v: %v", c.name, state)
	for _, listener := range listeners {
		listener(state)
	}
}

// Connect dials the backend; concurrent calls dial once.
func (c *Client) Connect(ctx context.Context) error {
	c.mux.Lock()
	if c.state != Disconnected {
		c.mux.Unlock()
		return nil
	}
	c.changeState(Pending)
	aTransport, err := c.dial(ctx, c.handler)
	if err != nil {
		c.setState(Disconnected)
		return fmt.Errorf("failed to connect %v: %w", c.name, err)
	}
	c.mux.Lock()
	c.transport = aTransport
	c.mux.Unlock()
	c.setState(Connected)
	return nil
}

// Disconnect drops the transport
func (c *Client) Disconnect() error {
	c.mux.Lock()
	aTransport := c.transport
	c.transport = nil
	c.mux.Unlock()
	var err error
	if closer, ok := aTransport.(io.Closer); ok {
		err = closer.Close()
	}
	c.setState(Disconnected)
	return err
}

// Call invokes a remote method with positional arguments and returns the raw result.
func (c *Client) Call(ctx context.Context, method string, args ...interface{}) (json.RawMessage, error) {
	c.mux.RLock()
	aTransport, state := c.transport, c.state
	c.mux.RUnlock()
	if state != Connected || aTransport == nil {
		return nil, ErrNotConnected
	}
	if args == nil {
		args = []interface{}{}
	}
	req, err := jsonrpc.NewRequest(method, args)
	if err != nil {
		return nil, jsonrpc.NewInvalidRequest(err.Error(), nil)
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	c.logger.Debugf("%v: calling %v", c.name, method)
	started := time.Now()
	response, err := aTransport.Send(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%v: %v failed: %w", c.name, method, err)
	}
	if response.Error != nil {
		return nil, response.Error
	}
	c.logger.Debugf("%v: %v completed in %v", c.name, method, time.Since(started))
	return response.Result, nil
}

// Invoke calls method and unmarshals the result into R
func Invoke[R any](ctx context.Context, client *Client, method string, args ...interface{}) (*R, error) {
	data, err := client.Call(ctx, method, args...)
	if err != nil {
		return nil, err
	}
	var result R
	if len(data) == 0 {
		return &result, nil
	}
	if err = json.Unmarshal(data, &result); err != nil {
		return nil, jsonrpc.NewInternalError(fmt.Sprintf("failed to unmarshal %v result: %v", method, err), nil)
	}
	return &result, nil
}

// New creates a client; it starts disconnected.
func New(dial Dialer, options ...Option) *Client {
	ret := &Client{dial: dial, name: "client"}
	for _, opt := range options {
		opt(ret)
	}
	if ret.handler == nil {
		ret.handler = NewHandler()
	}
	if ret.logger == nil {
		ret.logger = log.New(io.Discard, "", log.Flags())
	}
	if ret.handler.logger == nil {
		ret.handler.logger = ret.logger
	}
	return ret
}
