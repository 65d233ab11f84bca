package schema

import "github.com/viant/jsonrpc"

const (
	ResourceNotFound = -32002
	InferenceFailed  = -32003
)

// NewImageNotFound creates an image not found error
func NewImageNotFound(imageID string) *jsonrpc.Error {
	return jsonrpc.NewError(ResourceNotFound, "No image found for ID: "+imageID, map[string]interface{}{"imageId": imageID})
}

// NewUnknownModel creates an unknown model error
func NewUnknownModel(model string) *jsonrpc.Error {
	return jsonrpc.NewError(jsonrpc.InvalidParams, "Unknown model specified: "+model, nil)
}

// NewInferenceFailed wraps a backend inference failure
func NewInferenceFailed(message string) *jsonrpc.Error {
	return jsonrpc.NewError(InferenceFailed, message, nil)
}

// NewResourceNotFound creates a generic not found error for a store key
func NewResourceNotFound(id string) *jsonrpc.Error {
	return jsonrpc.NewError(ResourceNotFound, "Resource not found", map[string]interface{}{"id": id})
}
