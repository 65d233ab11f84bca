// Package client implements the remote invocation client used by feature panels.
//
// A Client wraps a viant/jsonrpc transport dialed on demand and reports its
// connection through a tri-state State (Disconnected, Pending, Connected).
// Call sends a request with positional arguments; the backend usually answers
// with an insignificant value and delivers the real result out-of-band by
// issuing requests back to the client over the same channel. Those requests are
// served by the client's Handler, where caches register their store setters.
//
// Example:
//
//	cli := client.New(dialer, client.WithName("segment"))
//	if err := cli.Connect(ctx); err != nil { ... }
//	_, err := cli.Call(ctx, schema.MethodSegmentWithMONAI, imageID)
package client
