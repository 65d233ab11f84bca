// Package panel provides the controller shared by feature panels.
//
// A panel runs one remote operation at a time. It checks the connection and its feature
// prerequisite, invokes a backend method keyed by a correlation identifier, then reads the
// result the backend pushed into a cache under that identifier, hands it to the viewer and
// removes the entry. Operation failures are logged and reported exactly once.
package panel
