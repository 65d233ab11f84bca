package client

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gologme/log"
	"github.com/viant/jsonrpc"
	"github.com/viant/volinsight/schema"
)

// Method serves a backend initiated request
type Method func(ctx context.Context, args schema.Args) (interface{}, *jsonrpc.Error)

// Handler dispatches backend initiated requests, such as out-of-band result pushes, to registered methods.
type Handler struct {
	mux     sync.RWMutex
	methods map[string]Method
	logger  *log.Logger
}

// Register registers method under name
func (h *Handler) Register(name string, method Method) {
	h.mux.Lock()
	defer h.mux.Unlock()
	h.methods[name] = method
}

// Implements returns true if method is registered
func (h *Handler) Implements(name string) bool {
	h.mux.RLock()
	defer h.mux.RUnlock()
	_, ok := h.methods[name]
	return ok
}

func (h *Handler) method(name string) (Method, bool) {
	h.mux.RLock()
	defer h.mux.RUnlock()
	method, ok := h.methods[name]
	return method, ok
}

// Serve handles incoming JSON-RPC requests
func (h *Handler) Serve(ctx context.Context, request *jsonrpc.Request, response *jsonrpc.Response) {
	response.Id = request.Id
	response.Jsonrpc = request.Jsonrpc
	method, ok := h.method(request.Method)
	if !ok {
		response.Error = jsonrpc.NewMethodNotFound(fmt.Sprintf("method %s not found", request.Method), nil)
		return
	}
	args, rpcErr := schema.ParseArgs(request.Params)
	if rpcErr != nil {
		response.Error = rpcErr
		return
	}
	result, rpcErr := method(ctx, args)
	h.setResponse(response, result, rpcErr)
}

// OnNotification relays backend log messages to the logger; other notifications are logged at debug level.
func (h *Handler) OnNotification(ctx context.Context, notification *jsonrpc.Notification) {
	if h.logger == nil {
		return
	}
	if notification.Method != schema.MethodNotificationMessage {
		h.logger.Debugf("notification %v: %s", notification.Method, notification.Params)
		return
	}
	message := schema.LogMessage{}
	if err := json.Unmarshal(notification.Params, &message); err != nil {
		h.logger.Warnf("invalid log notification: %v", err)
		return
	}
	switch message.Level {
	case "error":
		h.logger.Errorf("%v: %v", message.Logger, message.Data)
	case "warning":
		h.logger.Warnf("%v: %v", message.Logger, message.Data)
	case "debug":
		h.logger.Debugf("%v: %v", message.Logger, message.Data)
	default:
		h.logger.Infof("%v: %v", message.Logger, message.Data)
	}
}

func (h *Handler) setResponse(response *jsonrpc.Response, result interface{}, rpcError *jsonrpc.Error) {
	if rpcError != nil {
		response.Error = rpcError
		return
	}
	var err error
	response.Result, err = json.Marshal(result)
	if err != nil {
		response.Error = jsonrpc.NewInternalError(err.Error(), []byte{})
	}
}

// NewHandler creates an empty handler
func NewHandler() *Handler {
	return &Handler{methods: make(map[string]Method)}
}
