package analysis

import (
	"context"
	"fmt"

	"github.com/viant/jsonrpc"
	"github.com/viant/volinsight/backend"
	"github.com/viant/volinsight/schema"
)

// Method exposes multimodalLlmAnalysis: [imageId, sliceIndex?]. The model name is read from the caller's
// backend-model-store, the answer text is pushed to "<store>.<setter>" under imageId.
func Method(models map[string]Model, store, setter string) backend.MethodFunc {
	return func(ctx context.Context, call *backend.Call) (interface{}, *jsonrpc.Error) {
		id, rpcErr := call.ID()
		if rpcErr != nil {
			return nil, rpcErr
		}
		slice := 0
		if call.Args.Has(1) {
			if rpcErr = call.Args.Decode(1, &slice); rpcErr != nil {
				return nil, rpcErr
			}
		}
		name, rpcErr := call.Frontend.SelectedModel(ctx)
		if rpcErr != nil {
			return nil, rpcErr
		}
		model, ok := models[name]
		if !ok {
			return nil, schema.NewUnknownModel(name)
		}
		input, rpcErr := call.Frontend.AnalysisInput(ctx, id)
		if rpcErr != nil {
			return nil, rpcErr
		}
		image, rpcErr := call.Frontend.ImageData(ctx, id)
		if rpcErr != nil {
			return nil, rpcErr
		}
		plane, err := Slice(image, slice)
		if err != nil {
			return nil, jsonrpc.NewInvalidParamsError(err.Error(), nil)
		}
		_ = call.Logger.Info(ctx, fmt.Sprintf("analysing %v slice %d with %v", id, slice, name))
		answer, err := model.Analyze(ctx, plane, input)
		if err != nil {
			return nil, schema.NewInferenceFailed(err.Error())
		}
		if rpcErr = call.Frontend.SetResult(ctx, store, setter, id, answer); rpcErr != nil {
			return nil, rpcErr
		}
		return 0, nil
	}
}
