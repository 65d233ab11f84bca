package backend

import (
	"context"

	"github.com/viant/jsonrpc"
	"github.com/viant/volinsight/schema"
)

type activeCall struct {
	context.Context
	context.CancelFunc
}

// Call represents an in-flight remote procedure invocation
type Call struct {
	Method string
	Args   schema.Args
	// Frontend reaches back into the caller's stores over the same connection.
	Frontend *Frontend
	Logger   *Logger
}

// ID returns the first positional argument as a string, which every exposed method uses as its correlation id.
func (c *Call) ID() (string, *jsonrpc.Error) {
	return c.Args.String(0)
}
