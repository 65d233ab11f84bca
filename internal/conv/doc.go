// Package conv holds small internal conversion helpers.
//
// AsInt coerces JSON-RPC request ids, which arrive as any numeric or string type,
// into the int keys used to track in-flight calls.
package conv
