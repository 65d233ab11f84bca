// Package schema defines the wire contract shared by volinsight clients and backends:
// remote method names, client store method names, positional argument decoding,
// request payloads, and JSON-RPC error helpers.
package schema
