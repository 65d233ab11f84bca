package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/viant/jsonrpc"
	"github.com/viant/volinsight/client"
	"github.com/viant/volinsight/schema"
)

// Bind registers "<store>.<setter>" on handler; the method takes [id, payload] and writes payload into cache.
func Bind[T any](handler *client.Handler, store, setter string, cache Store[T], decode func(data json.RawMessage) (T, error)) {
	handler.Register(schema.StoreMethod(store, setter), func(ctx context.Context, args schema.Args) (interface{}, *jsonrpc.Error) {
		id, rpcErr := args.String(0)
		if rpcErr != nil {
			return nil, rpcErr
		}
		if id == "" {
			return nil, jsonrpc.NewInvalidParamsError("empty id", nil)
		}
		if args.Len() < 2 {
			return nil, jsonrpc.NewInvalidParamsError(fmt.Sprintf("missing payload for %v", id), nil)
		}
		value, err := decode(args[1])
		if err != nil {
			return nil, jsonrpc.NewInvalidParamsError(fmt.Sprintf("invalid payload for %v: %v", id, err), nil)
		}
		if err = cache.Set(ctx, id, value); err != nil {
			return nil, jsonrpc.NewInternalError(err.Error(), nil)
		}
		return true, nil
	})
}

// BindGetter registers "<store>.<getter>" returning the cached value for [id]; absent ids yield a resource not found error.
func BindGetter[T any](handler *client.Handler, store, getter string, cache Store[T]) {
	handler.Register(schema.StoreMethod(store, getter), func(ctx context.Context, args schema.Args) (interface{}, *jsonrpc.Error) {
		id, rpcErr := args.String(0)
		if rpcErr != nil {
			return nil, rpcErr
		}
		value, ok, err := cache.Get(ctx, id)
		if err != nil {
			return nil, jsonrpc.NewInternalError(err.Error(), nil)
		}
		if !ok {
			return nil, schema.NewResourceNotFound(id)
		}
		return value, nil
	})
}
