package panel

import (
	"time"

	"github.com/gologme/log"
)

// Option represents panel option
type Option func(p *Panel)

// WithLogger sets logger
func WithLogger(logger *log.Logger) Option {
	return func(p *Panel) {
		p.logger = logger
	}
}

// WithAlerter sets alert sink
func WithAlerter(alerter Alerter) Option {
	return func(p *Panel) {
		p.alerter = alerter
	}
}

// WithResultWait sets how long a pushed result is awaited after the call returned
func WithResultWait(wait time.Duration) Option {
	return func(p *Panel) {
		p.resultWait = wait
	}
}
