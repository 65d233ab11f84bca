// Package volinsight wires the AI integrations of a volumetric image viewer to their inference backends.
//
// The package exposes two entry points:
//  1. NewClient – returns a backend client for the configured transport (sse, streamable or stdio) and
//  2. NewServer – returns a backend host exposing MONAI bundles and chat model scripts as remote methods.
//
// Feature panels (see the panel packages) use the client to call a backend method with a correlation id; the
// backend pushes the result into the caller's store over the same connection before the call returns.
package volinsight
