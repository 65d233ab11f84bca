package cache

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/jsonrpc"
	"github.com/viant/volinsight/client"
	"github.com/viant/volinsight/payload"
	"github.com/viant/volinsight/schema"
)

func TestBind(t *testing.T) {
	ctx := context.Background()
	handler := client.NewHandler()
	store := NewMemory[*payload.Result]()
	Bind[*payload.Result](handler, schema.StoreMAISI, schema.SetMAISIResult, store, payload.DecodeImage)

	var testCases = []struct {
		description string
		params      string
		expectErr   bool
		expectID    string
	}{
		{
			description: "image push",
			params:      `["gen-1", {"vtkClass":"vtkImageData","dimensions":[1,1,1],"spacing":[1,1,1],"origin":[0,0,0],"pointData":{"arrays":[{"data":{"numberOfComponents":1,"dataType":"Float32Array","values":[5]}}]}}]`,
			expectID:    "gen-1",
		},
		{description: "missing payload", params: `["gen-2"]`, expectErr: true},
		{description: "empty id", params: `["", {}]`, expectErr: true},
		{description: "bad payload", params: `["gen-3", "text"]`, expectErr: true},
	}

	for _, testCase := range testCases {
		response := &jsonrpc.Response{}
		handler.Serve(ctx, &jsonrpc.Request{
			Jsonrpc: jsonrpc.Version,
			Id:      1,
			Method:  schema.StoreMethod(schema.StoreMAISI, schema.SetMAISIResult),
			Params:  json.RawMessage(testCase.params),
		}, response)
		if testCase.expectErr {
			assert.NotNil(t, response.Error, testCase.description)
			continue
		}
		require.Nil(t, response.Error, testCase.description)
		value, ok, _ := store.Get(ctx, testCase.expectID)
		require.True(t, ok, testCase.description)
		assert.Equal(t, payload.KindImage, value.Kind, testCase.description)
		assert.EqualValues(t, []float64{5}, value.Image.Values, testCase.description)
	}
}

func TestBindGetter(t *testing.T) {
	ctx := context.Background()
	handler := client.NewHandler()
	store := NewMemory[schema.AnalysisInput]()
	_ = store.Set(ctx, "img-1", schema.AnalysisInput{Prompt: "describe"})
	BindGetter[schema.AnalysisInput](handler, schema.StoreBackendModel, schema.GetAnalysisInput, store)

	response := &jsonrpc.Response{}
	handler.Serve(ctx, &jsonrpc.Request{Jsonrpc: jsonrpc.Version, Id: 1, Method: "backend-model-store.analysisInput", Params: json.RawMessage(`["img-1"]`)}, response)
	require.Nil(t, response.Error)
	assert.JSONEq(t, `{"prompt":"describe"}`, string(response.Result))

	_ = store.Set(ctx, "img-3", schema.AnalysisInput{Prompt: "again", History: []schema.ChatMessage{{Role: "user", Content: "describe"}}})
	response = &jsonrpc.Response{}
	handler.Serve(ctx, &jsonrpc.Request{Jsonrpc: jsonrpc.Version, Id: 3, Method: "backend-model-store.analysisInput", Params: json.RawMessage(`["img-3"]`)}, response)
	require.Nil(t, response.Error)
	assert.JSONEq(t, `{"prompt":"again","history":[{"role":"user","content":"describe"}]}`, string(response.Result))

	response = &jsonrpc.Response{}
	handler.Serve(ctx, &jsonrpc.Request{Jsonrpc: jsonrpc.Version, Id: 2, Method: "backend-model-store.analysisInput", Params: json.RawMessage(`["img-2"]`)}, response)
	require.NotNil(t, response.Error)
	assert.Equal(t, schema.ResourceNotFound, response.Error.Code)
}
