package backend

import (
	"net/http"

	"github.com/gologme/log"
	"github.com/viant/jsonrpc/transport/server/stdio"
)

// Option is a function that configures the server.
type Option func(s *Server)

// WithName sets the server name used by log notifications
func WithName(name string) Option {
	return func(s *Server) {
		s.name = name
	}
}

// WithLogger sets the local logger
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMethod exposes a method
func WithMethod(name string, method MethodFunc) Option {
	return func(s *Server) {
		s.methods[name] = method
	}
}

// WithCORS sets the CORS policy; allowed origins are also enforced on every request.
func WithCORS(cors *Cors) Option {
	return func(s *Server) {
		s.cors = cors
	}
}

// WithAddr sets the default HTTP listen address
func WithAddr(addr string) Option {
	return func(s *Server) {
		s.addr = addr
	}
}

// WithStreamableHTTP toggles the root redirect target between streamable and SSE endpoints
func WithStreamableHTTP(flag bool) Option {
	return func(s *Server) {
		s.useStreamableHTTP = flag
	}
}

// WithHTTPHandler mounts a custom handler on path
func WithHTTPHandler(path string, handler http.HandlerFunc) Option {
	return func(s *Server) {
		if s.customHTTPHandlers == nil {
			s.customHTTPHandlers = make(map[string]http.HandlerFunc)
		}
		s.customHTTPHandlers[path] = handler
	}
}

// WithStdioOptions sets stdio server options
func WithStdioOptions(options ...stdio.Option) Option {
	return func(s *Server) {
		s.stdioOption = options
	}
}
