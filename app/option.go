package app

import (
	"github.com/gologme/log"
	"github.com/viant/volinsight/client"
)

// Option represents app option
type Option func(a *App)

// WithLogger sets logger
func WithLogger(logger *log.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithDialer replaces the configured transport of a backend ("segment", "generate" or "chat")
func WithDialer(backend string, dial client.Dialer) Option {
	return func(a *App) {
		if a.dialers == nil {
			a.dialers = map[string]client.Dialer{}
		}
		a.dialers[backend] = dial
	}
}
