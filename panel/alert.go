package panel

import (
	"context"
	"sync"
	"time"

	"github.com/gologme/log"
)

// Alerter surfaces user visible failures
type Alerter interface {
	Alert(ctx context.Context, message string, err error)
}

// Alert is a transient user visible failure notice
type Alert struct {
	Message string
	Err     error
	Time    time.Time
}

// Alerts records alerts in memory and logs them
type Alerts struct {
	mux    sync.RWMutex
	items  []Alert
	logger *log.Logger
}

func (a *Alerts) Alert(_ context.Context, message string, err error) {
	a.mux.Lock()
	a.items = append(a.items, Alert{Message: message, Err: err, Time: time.Now()})
	a.mux.Unlock()
	if a.logger != nil {
		a.logger.Warnf("%v: %v", message, err)
	}
}

// Items returns recorded alerts
func (a *Alerts) Items() []Alert {
	a.mux.RLock()
	defer a.mux.RUnlock()
	ret := make([]Alert, len(a.items))
	copy(ret, a.items)
	return ret
}

// NewAlerts creates an alert recorder
func NewAlerts(logger *log.Logger) *Alerts {
	return &Alerts{logger: logger}
}
