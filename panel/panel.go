package panel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gologme/log"
	"github.com/google/uuid"
	"github.com/viant/volinsight/client"
)

var (
	// ErrBusy is returned when an action is triggered while a previous one is in flight
	ErrBusy = errors.New("panel: operation in progress")
	// ErrNotConnected is returned when the backend connection is not established
	ErrNotConnected = errors.New("panel: backend is not connected")
	// ErrPrecondition is returned when a feature prerequisite does not hold
	ErrPrecondition = errors.New("panel: precondition not met")
	// ErrMissingResult is returned when a call succeeded but its result was never pushed
	ErrMissingResult = errors.New("panel: result missing from cache")
)

// NewID generates correlation identifiers
var NewID = uuid.NewString

// DefaultResultWait bounds how long a panel waits for a pushed result after its call returned
const DefaultResultWait = 2 * time.Second

// Connection is the remote invocation surface a panel needs
type Connection interface {
	State() client.State
	Call(ctx context.Context, method string, args ...interface{}) (json.RawMessage, error)
}

// Panel orchestrates one remote operation at a time: Idle -> Loading -> Idle.
type Panel struct {
	name       string
	conn       Connection
	logger     *log.Logger
	alerter    Alerter
	resultWait time.Duration
	onFailure  func(ctx context.Context, err error)

	mux       sync.Mutex
	loading   bool
	listeners []func(loading bool)
}

// Name returns panel name
func (p *Panel) Name() string {
	return p.name
}

// Logger returns panel logger
func (p *Panel) Logger() *log.Logger {
	return p.logger
}

// ResultWait returns how long results are awaited
func (p *Panel) ResultWait() time.Duration {
	return p.resultWait
}

// Loading returns true while an operation is in flight
func (p *Panel) Loading() bool {
	p.mux.Lock()
	defer p.mux.Unlock()
	return p.loading
}

// OnLoading registers a loading flag listener
func (p *Panel) OnLoading(listener func(loading bool)) {
	p.mux.Lock()
	defer p.mux.Unlock()
	p.listeners = append(p.listeners, listener)
}

// OnFailure replaces the failure reporter; the default raises an alert.
func (p *Panel) OnFailure(fn func(ctx context.Context, err error)) {
	p.onFailure = fn
}

// Connected returns true if the backend connection is established
func (p *Panel) Connected() bool {
	return p.conn != nil && p.conn.State() == client.Connected
}

// Call invokes method on the backend
func (p *Panel) Call(ctx context.Context, method string, args ...interface{}) error {
	_, err := p.conn.Call(ctx, method, args...)
	if err != nil {
		return fmt.Errorf("%v failed: %w", method, err)
	}
	return nil
}

func (p *Panel) setLoading(loading bool) {
	p.mux.Lock()
	p.loading = loading
	listeners := make([]func(bool), len(p.listeners))
	copy(listeners, p.listeners)
	p.mux.Unlock()
	for _, listener := range listeners {
		listener(loading)
	}
}

func (p *Panel) begin() error {
	p.mux.Lock()
	defer p.mux.Unlock()
	if p.loading {
		return ErrBusy
	}
	p.loading = true
	return nil
}

// Run executes op under the loading gate. Connection and precondition failures are returned without being
// reported; op failures are logged and reported once.
func (p *Panel) Run(ctx context.Context, precondition func() error, op func(ctx context.Context) error) error {
	if p.Loading() {
		return ErrBusy
	}
	if !p.Connected() {
		return ErrNotConnected
	}
	if precondition != nil {
		if err := precondition(); err != nil {
			if errors.Is(err, ErrPrecondition) {
				return err
			}
			return fmt.Errorf("%w: %v", ErrPrecondition, err)
		}
	}
	if err := p.begin(); err != nil {
		return err
	}
	p.setLoading(true)
	defer p.setLoading(false)

	err := op(ctx)
	if err == nil {
		return nil
	}
	p.logger.Errorf("%v: %v", p.name, err)
	if p.onFailure != nil {
		p.onFailure(ctx, err)
	} else {
		p.alerter.Alert(ctx, fmt.Sprintf("%v failed", p.name), err)
	}
	return err
}

// New creates a panel bound to conn
func New(name string, conn Connection, options ...Option) *Panel {
	ret := &Panel{name: name, conn: conn, resultWait: DefaultResultWait}
	for _, opt := range options {
		opt(ret)
	}
	if ret.logger == nil {
		ret.logger = log.New(io.Discard, "", log.Flags())
	}
	if ret.alerter == nil {
		ret.alerter = NewAlerts(ret.logger)
	}
	return ret
}
