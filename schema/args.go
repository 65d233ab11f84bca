package schema

import (
	"encoding/json"
	"fmt"

	"github.com/viant/jsonrpc"
)

// Args represents positional JSON-RPC parameters.
type Args []json.RawMessage

// ParseArgs decodes request params into positional arguments. Null or empty params yield no arguments;
// a single object is treated as one argument.
func ParseArgs(params json.RawMessage) (Args, *jsonrpc.Error) {
	if len(params) == 0 || string(params) == "null" {
		return Args{}, nil
	}
	var args Args
	if err := json.Unmarshal(params, &args); err != nil {
		var single json.RawMessage
		if err2 := json.Unmarshal(params, &single); err2 != nil {
			return nil, jsonrpc.NewParsingError(fmt.Sprintf("failed to parse params: %v", err), params)
		}
		return Args{single}, nil
	}
	return args, nil
}

// Len returns number of arguments
func (a Args) Len() int {
	return len(a)
}

// Has returns true if argument at index is present and not null
func (a Args) Has(index int) bool {
	return index < len(a) && len(a[index]) > 0 && string(a[index]) != "null"
}

// Decode decodes argument at index into dest
func (a Args) Decode(index int, dest interface{}) *jsonrpc.Error {
	if index >= len(a) {
		return jsonrpc.NewInvalidParamsError(fmt.Sprintf("missing argument %d", index), nil)
	}
	if err := json.Unmarshal(a[index], dest); err != nil {
		return jsonrpc.NewInvalidParamsError(fmt.Sprintf("invalid argument %d: %v", index, err), a[index])
	}
	return nil
}

// String decodes argument at index as string
func (a Args) String(index int) (string, *jsonrpc.Error) {
	var ret string
	err := a.Decode(index, &ret)
	return ret, err
}
