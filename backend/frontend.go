package backend

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
	"github.com/viant/volinsight/payload"
	"github.com/viant/volinsight/schema"
)

// Frontend lets exposed methods invoke the caller's store methods over the connection the call arrived on.
type Frontend struct {
	transport.Transport
	transport.Sequencer
	seq uint64
}

func (f *Frontend) nextID() jsonrpc.RequestId {
	if f.Sequencer != nil {
		return f.NextRequestID()
	}
	return atomic.AddUint64(&f.seq, 1)
}

// Call invokes a client side method with positional arguments
func (f *Frontend) Call(ctx context.Context, method string, args ...interface{}) (json.RawMessage, *jsonrpc.Error) {
	if args == nil {
		args = []interface{}{}
	}
	req, err := jsonrpc.NewRequest(method, args)
	if err != nil {
		return nil, jsonrpc.NewInvalidRequest(err.Error(), nil)
	}
	req.Id = f.nextID()
	response, err := f.Send(ctx, req)
	if err != nil {
		return nil, jsonrpc.NewInternalError(err.Error(), req.Params)
	}
	if response.Error != nil {
		return nil, response.Error
	}
	return response.Result, nil
}

// SetResult pushes value into "<store>.<setter>" under id; it returns once the caller acknowledged the write.
func (f *Frontend) SetResult(ctx context.Context, store, setter, id string, value interface{}) *jsonrpc.Error {
	_, err := f.Call(ctx, schema.StoreMethod(store, setter), id, value)
	return err
}

// ImageData pulls the vtk.js image the caller holds under id
func (f *Frontend) ImageData(ctx context.Context, id string) (*payload.Image, *jsonrpc.Error) {
	data, rpcErr := f.Call(ctx, schema.StoreMethod(schema.StoreImageCache, schema.GetVtkImageData), id)
	if rpcErr != nil {
		return nil, rpcErr
	}
	if len(data) == 0 || string(data) == "null" {
		return nil, schema.NewImageNotFound(id)
	}
	image := &payload.Image{}
	if err := json.Unmarshal(data, image); err != nil {
		return nil, jsonrpc.NewInternalError(err.Error(), nil)
	}
	return image, nil
}

// SelectedModel reads backend-model-store.selectedModel
func (f *Frontend) SelectedModel(ctx context.Context) (string, *jsonrpc.Error) {
	data, rpcErr := f.Call(ctx, schema.StoreMethod(schema.StoreBackendModel, schema.GetSelectedModel))
	if rpcErr != nil {
		return "", rpcErr
	}
	var model string
	if err := json.Unmarshal(data, &model); err != nil {
		return "", jsonrpc.NewInternalError(err.Error(), nil)
	}
	return model, nil
}

// AnalysisInput reads backend-model-store.analysisInput[id]
func (f *Frontend) AnalysisInput(ctx context.Context, id string) (*schema.AnalysisInput, *jsonrpc.Error) {
	data, rpcErr := f.Call(ctx, schema.StoreMethod(schema.StoreBackendModel, schema.GetAnalysisInput), id)
	if rpcErr != nil {
		return nil, rpcErr
	}
	input := &schema.AnalysisInput{}
	if err := json.Unmarshal(data, input); err != nil {
		return nil, jsonrpc.NewInternalError(err.Error(), nil)
	}
	return input, nil
}

// NewFrontend creates a frontend over transport
func NewFrontend(aTransport transport.Transport) *Frontend {
	seq, _ := aTransport.(transport.Sequencer)
	return &Frontend{Transport: aTransport, Sequencer: seq}
}
