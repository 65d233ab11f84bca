// Package payload defines the result variants produced by inference backends:
// a vtk.js serialized image volume, a raw binary blob, or plain text.
//
// Results travel as JSON over JSON-RPC and as CBOR when persisted.
package payload
