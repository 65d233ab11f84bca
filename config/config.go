package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/viant/afs"
	"github.com/viant/volinsight"
	"gopkg.in/yaml.v3"
)

// Environment variables supplying default backend URLs
const (
	EnvSegmentURL  = "VOLINSIGHT_SEGMENT_URL"
	EnvGenerateURL = "VOLINSIGHT_GENERATE_URL"
	EnvChatURL     = "VOLINSIGHT_CHAT_URL"
)

// Config represents volinsight configuration
type Config struct {
	Segment  *volinsight.ClientOptions `yaml:"segment" json:"segment"`
	Generate *volinsight.ClientOptions `yaml:"generate" json:"generate"`
	Chat     *volinsight.ClientOptions `yaml:"chat" json:"chat"`

	// ResultWait is the number of seconds a pushed result is awaited after its call returned.
	ResultWait float64                   `yaml:"resultWait,omitempty" json:"resultWait,omitempty"`
	StoreDSN   string                    `yaml:"storeDSN,omitempty" json:"storeDSN,omitempty"`
	ExportURL  string                    `yaml:"exportURL,omitempty" json:"exportURL,omitempty"`
	Debug      bool                      `yaml:"debug,omitempty" json:"debug,omitempty"`
	Server     *volinsight.ServerOptions `yaml:"server,omitempty" json:"server,omitempty"`
}

// ResultWaitDuration returns result wait, zero when unset
func (c *Config) ResultWaitDuration() time.Duration {
	return time.Duration(c.ResultWait * float64(time.Second))
}

// Init applies names and environment supplied backend URLs
func (c *Config) Init() {
	c.Segment = initClient(c.Segment, "segment", EnvSegmentURL)
	c.Generate = initClient(c.Generate, "generate", EnvGenerateURL)
	c.Chat = initClient(c.Chat, "chat", EnvChatURL)
}

func initClient(options *volinsight.ClientOptions, name, env string) *volinsight.ClientOptions {
	if options == nil {
		options = &volinsight.ClientOptions{}
	}
	if options.Name == "" {
		options.Name = name
	}
	if options.Transport.URL == "" && options.Transport.Command == "" {
		options.Transport.URL = os.Getenv(env)
	}
	options.Init()
	return options
}

// Load reads a YAML config from URL; an empty URL yields the environment based defaults.
func Load(ctx context.Context, URL string) (*Config, error) {
	ret := &Config{}
	if URL != "" {
		fs := afs.New()
		data, err := fs.DownloadWithURL(ctx, URL)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %v: %w", URL, err)
		}
		if err = yaml.Unmarshal(data, ret); err != nil {
			return nil, fmt.Errorf("invalid config %v: %w", URL, err)
		}
	}
	ret.Init()
	return ret, nil
}
