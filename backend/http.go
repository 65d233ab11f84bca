package backend

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"sort"

	"github.com/gorilla/mux"
	"github.com/viant/jsonrpc/transport/server/http/sse"
	"github.com/viant/jsonrpc/transport/server/http/streamable"
)

const (
	defaultAddr          = "127.0.0.1:5000"
	defaultSSEURI        = "/sse"
	defaultMessageURI    = "/message"
	defaultStreamableURI = "/rpc"
	healthURI            = "/health"
)

type httpServer struct {
	sseHandler         *sse.Handler
	streamingHandler   *streamable.Handler
	useStreamableHTTP  bool
	addr               string
	cors               *Cors
	customHTTPHandlers map[string]http.HandlerFunc
}

// Router returns the HTTP router exposing SSE, streamable and health endpoints.
func (s *Server) Router() *mux.Router {
	s.sseHandler = sse.New(s.NewHandler,
		sse.WithURI(defaultSSEURI),
		sse.WithMessageURI(defaultMessageURI),
	)
	s.streamingHandler = streamable.New(s.NewHandler,
		streamable.WithURI(defaultStreamableURI),
	)
	router := mux.NewRouter().SkipClean(true).UseEncodedPath()
	for path, handler := range s.customHTTPHandlers {
		router.Path(path).HandlerFunc(handler)
	}
	router.Path(healthURI).Methods(http.MethodGet).HandlerFunc(s.health)

	var sseHandler, streamingHandler http.Handler = s.sseHandler, s.streamingHandler
	if s.cors != nil {
		sseHandler, streamingHandler = s.cors.Handler(sseHandler), s.cors.Handler(streamingHandler)
	}
	router.Path(defaultSSEURI).Handler(sseHandler)
	router.Path(defaultMessageURI).Handler(sseHandler)
	router.Path(defaultStreamableURI).Handler(streamingHandler)
	router.Path("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		target := defaultSSEURI
		if s.useStreamableHTTP {
			target = defaultStreamableURI
		}
		http.Redirect(w, r, target, http.StatusTemporaryRedirect)
	})
	return router
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	methods := s.Methods()
	sort.Strings(methods)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"status": "ok", "name": s.name, "methods": methods})
}

// HTTP creates an HTTP server; addr defaults to the configured address, then 127.0.0.1:5000.
func (s *Server) HTTP(ctx context.Context, addr string) *http.Server {
	if addr == "" {
		addr = s.addr
	}
	if addr == "" {
		addr = defaultAddr
	}
	return &http.Server{
		Addr:    addr,
		Handler: s.Router(),
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}
}
