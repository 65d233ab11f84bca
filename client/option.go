package client

import (
	"time"

	"github.com/gologme/log"
)

// Option represents option
type Option func(c *Client)

// WithName sets client name used in log lines
func WithName(name string) Option {
	return func(c *Client) {
		c.name = name
	}
}

// WithHandler sets handler serving backend initiated requests
func WithHandler(handler *Handler) Option {
	return func(c *Client) {
		c.handler = handler
	}
}

// WithLogger sets logger
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout bounds each call; zero means no timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}
