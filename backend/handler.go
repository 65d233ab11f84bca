package backend

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
	"github.com/viant/mcp-protocol/syncmap"
	"github.com/viant/volinsight/internal/conv"
	"github.com/viant/volinsight/schema"
)

// Handler represents a per connection handler
type Handler struct {
	transport.Notifier
	*Logger
	*Server
	frontend *Frontend

	// request ids are only unique within a connection
	activeCalls *syncmap.Map[int, *activeCall]
}

// Serve handles incoming JSON-RPC requests
func (h *Handler) Serve(parent context.Context, request *jsonrpc.Request, response *jsonrpc.Response) {
	response.Id = request.Id
	response.Jsonrpc = jsonrpc.Version
	if jsonrpc.Version != request.Jsonrpc {
		response.Error = jsonrpc.NewInvalidRequest("invalid JSON-RPC version", nil)
		return
	}
	if request.Method == schema.MethodPing {
		h.setResponse(response, map[string]interface{}{}, nil)
		return
	}
	method, ok := h.method(request.Method)
	if !ok {
		response.Error = jsonrpc.NewMethodNotFound(fmt.Sprintf("method: %v not found", request.Method), request.Params)
		return
	}
	args, rpcErr := schema.ParseArgs(request.Params)
	if rpcErr != nil {
		response.Error = rpcErr
		return
	}

	id := conv.AsInt(request.Id)
	ctx, cancel := context.WithCancel(parent)
	h.activeCalls.Put(id, &activeCall{Context: ctx, CancelFunc: cancel})
	defer h.cancelOperation(id)

	h.logger.Infof("%v: serving %v", h.Server.name, request.Method)
	result, rpcErr := method(ctx, &Call{Method: request.Method, Args: args, Frontend: h.frontend, Logger: h.Logger})
	if rpcErr != nil {
		h.logger.Warnf("%v: %v failed: %v", h.Server.name, request.Method, rpcErr.Error())
	}
	h.setResponse(response, result, rpcErr)
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

// OnNotification handles incoming JSON-RPC notifications
func (h *Handler) OnNotification(ctx context.Context, notification *jsonrpc.Notification) {
	switch notification.Method {
	case schema.MethodNotificationCancel:
		if err := h.Cancel(ctx, notification); err != nil {
			h.logger.Warnf("%v: %v", h.Server.name, err.Error())
		}
	}
}

// Cancel cancels an in-flight call referenced by the notification
func (h *Handler) Cancel(_ context.Context, notification *jsonrpc.Notification) *jsonrpc.Error {
	var params schema.CancelledParams
	if err := json.Unmarshal(notification.Params, &params); err != nil {
		return jsonrpc.NewParsingError(fmt.Sprintf("failed to parse notification: %v", err), notification.Params)
	}
	if params.RequestId == 0 {
		return jsonrpc.NewInvalidParamsError("invalid requestId", notification.Params)
	}
	h.cancelOperation(params.RequestId)
	return nil
}

func (h *Handler) cancelOperation(id int) {
	if active, ok := h.activeCalls.Get(id); ok {
		active.CancelFunc()
		h.activeCalls.Delete(id)
	}
}
