// Package backend hosts inference adapters behind JSON-RPC.
//
// Exposed methods receive positional arguments and a Frontend bound to the connection
// the call arrived on. Long running adapters push their results into the caller's
// stores through Frontend.SetResult, which completes only once the caller acknowledged
// the write, and then return an insignificant value. Adapters pull inputs the same way,
// e.g. Frontend.ImageData reads the caller's image cache.
//
// The server can be reached over HTTP (SSE and streamable transports), stdio, or an
// in-process loopback used by tests and single binary deployments.
package backend
