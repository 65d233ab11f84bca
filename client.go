package volinsight

import (
	"context"
	"fmt"
	"time"

	"github.com/gologme/log"
	"github.com/viant/jsonrpc/transport"
	"github.com/viant/jsonrpc/transport/client/http/sse"
	"github.com/viant/jsonrpc/transport/client/http/streamable"
	"github.com/viant/jsonrpc/transport/client/stdio"
	"github.com/viant/volinsight/client"
)

// ClientOptions defines options for connecting to an inference backend.
type ClientOptions struct {
	Name      string          `yaml:"name" json:"name,omitempty" short:"n" long:"name" description:"backend name"`
	Timeout   int             `yaml:"timeout,omitempty" json:"timeout,omitempty" long:"timeout" description:"call timeout in seconds, 0 disables"`
	Transport ClientTransport `yaml:"transport,omitempty" json:"transport,omitempty"`
}

// ClientTransport defines transport options.
type ClientTransport struct {
	Type                 string `yaml:"type" json:"type" short:"T" long:"transport-type" description:"transport type, e.g., stdio, sse, streamable" choice:"stdio" choice:"sse" choice:"streamable"`
	ClientTransportStdio `yaml:",inline"`
	ClientTransportHTTP  `yaml:",inline"`
}

// ClientTransportStdio defines options for a backend started as a child process.
type ClientTransportStdio struct {
	Command   string   `yaml:"command" json:"command" short:"C" long:"command" description:"backend command"`
	Arguments []string `yaml:"arguments" json:"arguments" short:"A" long:"arguments" description:"backend command arguments"`
}

// ClientTransportHTTP defines options for an HTTP backend.
type ClientTransportHTTP struct {
	URL string `yaml:"url" json:"url" short:"u" long:"url" description:"backend url"`
}

func (c *ClientOptions) Init() {
	if c.Name == "" {
		c.Name = "backend"
	}
	if c.Transport.Type == "" && c.Transport.URL != "" {
		c.Transport.Type = "sse"
	}
}

// Dialer returns a dialer building the configured transport
func (c *ClientOptions) Dialer() (client.Dialer, error) {
	switch c.Transport.Type {
	case "stdio":
		stdioOptions := c.Transport.ClientTransportStdio
		if stdioOptions.Command == "" {
			return nil, fmt.Errorf("command is required for stdio transport")
		}
		return func(ctx context.Context, handler transport.Handler) (transport.Transport, error) {
			ret, err := stdio.New(stdioOptions.Command,
				stdio.WithHandler(handler),
				stdio.WithArguments(stdioOptions.Arguments...))
			if err != nil {
				return nil, fmt.Errorf("failed to create stdio transport: %w", err)
			}
			return ret, nil
		}, nil
	case "sse":
		URL := c.Transport.URL
		if URL == "" {
			return nil, fmt.Errorf("URL is required for sse transport")
		}
		return func(ctx context.Context, handler transport.Handler) (transport.Transport, error) {
			ret, err := sse.New(ctx, URL, sse.WithHandler(handler))
			if err != nil {
				return nil, fmt.Errorf("failed to create SSE transport: %w", err)
			}
			return ret, nil
		}, nil
	case "streamable":
		URL := c.Transport.URL
		if URL == "" {
			return nil, fmt.Errorf("URL is required for streamable transport")
		}
		return func(ctx context.Context, handler transport.Handler) (transport.Transport, error) {
			ret, err := streamable.New(ctx, URL, streamable.WithHandler(handler))
			if err != nil {
				return nil, fmt.Errorf("failed to create streamable transport: %w", err)
			}
			return ret, nil
		}, nil
	default:
		return nil, fmt.Errorf("no transport configured for %v", c.Name)
	}
}

// NewClient creates a disconnected backend client; handler serves the stores the backend reads and writes.
func NewClient(handler *client.Handler, options *ClientOptions, logger *log.Logger) (*client.Client, error) {
	options.Init()
	dial, err := options.Dialer()
	if err != nil {
		return nil, err
	}
	opts := []client.Option{client.WithName(options.Name), client.WithHandler(handler)}
	if logger != nil {
		opts = append(opts, client.WithLogger(logger))
	}
	if options.Timeout > 0 {
		opts = append(opts, client.WithTimeout(time.Duration(options.Timeout)*time.Second))
	}
	return client.New(dial, opts...), nil
}
