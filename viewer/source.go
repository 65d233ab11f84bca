package viewer

import (
	"context"
	"errors"

	"github.com/viant/jsonrpc"
	"github.com/viant/volinsight/client"
	"github.com/viant/volinsight/schema"
)

// BindImageSource serves image-cache.getVtkImageData [id] from viewer
func BindImageSource(handler *client.Handler, viewer Viewer) {
	handler.Register(schema.StoreMethod(schema.StoreImageCache, schema.GetVtkImageData), func(ctx context.Context, args schema.Args) (interface{}, *jsonrpc.Error) {
		id, rpcErr := args.String(0)
		if rpcErr != nil {
			return nil, rpcErr
		}
		image, err := viewer.ImageData(ctx, id)
		if errors.Is(err, ErrImageNotFound) {
			return nil, schema.NewImageNotFound(id)
		}
		if err != nil {
			return nil, jsonrpc.NewInternalError(err.Error(), nil)
		}
		return image, nil
	})
}
