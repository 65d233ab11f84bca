package backend

import (
	"context"
	"io"
	"sync"

	"github.com/gologme/log"
	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
	"github.com/viant/jsonrpc/transport/server/stdio"
	"github.com/viant/mcp-protocol/syncmap"
)

// MethodFunc executes an exposed remote procedure. Results meant for the caller's stores are pushed
// through call.Frontend; the returned value is sent back as the call result.
type MethodFunc func(ctx context.Context, call *Call) (interface{}, *jsonrpc.Error)

// Server hosts inference adapters behind JSON-RPC
type Server struct {
	name        string
	logger      *log.Logger
	mux         sync.RWMutex
	methods     map[string]MethodFunc
	stdioOption []stdio.Option
	httpServer
}

// Expose registers method under name, replacing any previous registration
func (s *Server) Expose(name string, method MethodFunc) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.methods[name] = method
}

// Implements returns true if name is exposed
func (s *Server) Implements(name string) bool {
	_, ok := s.method(name)
	return ok
}

func (s *Server) method(name string) (MethodFunc, bool) {
	s.mux.RLock()
	defer s.mux.RUnlock()
	ret, ok := s.methods[name]
	return ret, ok
}

// Methods returns exposed method names
func (s *Server) Methods() []string {
	s.mux.RLock()
	defer s.mux.RUnlock()
	var ret = make([]string, 0, len(s.methods))
	for name := range s.methods {
		ret = append(ret, name)
	}
	return ret
}

// NewHandler creates a new handler instance bound to transport
func (s *Server) NewHandler(ctx context.Context, transport transport.Transport) transport.Handler {
	return s.newHandler(ctx, transport)
}

func (s *Server) newHandler(_ context.Context, aTransport transport.Transport) *Handler {
	ret := &Handler{
		Server:      s,
		Notifier:    aTransport,
		frontend:    NewFrontend(aTransport),
		activeCalls: syncmap.NewMap[int, *activeCall](),
	}
	ret.Logger = NewLogger(s.name, ret.Notifier)
	return ret
}

// Stdio returns stdio server
func (s *Server) Stdio(ctx context.Context) *stdio.Server {
	return stdio.New(ctx, s.NewHandler, s.stdioOption...)
}

// New creates a server
func New(options ...Option) *Server {
	s := &Server{
		name:    "backend",
		methods: make(map[string]MethodFunc),
	}
	for _, option := range options {
		option(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard, "", log.Flags())
	}
	return s
}
