package backend

import (
	"context"
	"sync/atomic"

	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
)

// loopback delivers messages directly to a handler in the same process
type loopback struct {
	handler transport.Handler
	seq     uint64
}

func (l *loopback) Send(ctx context.Context, request *jsonrpc.Request) (*jsonrpc.Response, error) {
	if request.Jsonrpc == "" {
		request.Jsonrpc = jsonrpc.Version
	}
	if request.Id == nil {
		request.Id = l.NextRequestID()
	}
	response := &jsonrpc.Response{}
	l.handler.Serve(ctx, request, response)
	return response, nil
}

func (l *loopback) Notify(ctx context.Context, notification *jsonrpc.Notification) error {
	l.handler.OnNotification(ctx, notification)
	return nil
}

func (l *loopback) NextRequestID() jsonrpc.RequestId {
	return atomic.AddUint64(&l.seq, 1)
}

func (l *loopback) LastRequestID() jsonrpc.RequestId {
	return atomic.LoadUint64(&l.seq)
}

// Loopback returns a dialer connecting a client handler to the server in process.
// Requests the server issues back to the caller are served by the dialing handler.
func (s *Server) Loopback() func(ctx context.Context, handler transport.Handler) (transport.Transport, error) {
	return func(ctx context.Context, handler transport.Handler) (transport.Transport, error) {
		toClient := &loopback{handler: handler}
		serverHandler := s.NewHandler(ctx, toClient)
		return &loopback{handler: serverHandler}, nil
	}
}
