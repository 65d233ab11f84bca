package volinsight

import (
	"context"
	"fmt"

	"github.com/gologme/log"
	"github.com/viant/volinsight/backend"
	"github.com/viant/volinsight/backend/analysis"
	"github.com/viant/volinsight/backend/bundle"
	"github.com/viant/volinsight/schema"
)

// ServerOptions defines options for hosting inference adapters.
type ServerOptions struct {
	Name      string           `yaml:"name" json:"name"`
	Transport *ServerTransport `yaml:"transport" json:"transport"`
	Bundles   []*BundleOptions `yaml:"bundles" json:"bundles"`
	Analysis  *AnalysisOptions `yaml:"analysis" json:"analysis"`
}

type ServerTransport struct {
	Type string        `yaml:"type" json:"type" short:"T" long:"transport-type" description:"transport type, e.g., stdio, sse, streamable" choice:"stdio" choice:"sse" choice:"streamable"`
	Addr string        `yaml:"addr" json:"addr" short:"a" long:"addr" description:"listen address"`
	Cors *backend.Cors `yaml:"cors" json:"cors"`
}

// BundleOptions binds a MONAI bundle to a remote method.
type BundleOptions struct {
	Method string `yaml:"method" json:"method"`
	// Store and Setter default from Method.
	Store         string `yaml:"store,omitempty" json:"store,omitempty"`
	Setter        string `yaml:"setter,omitempty" json:"setter,omitempty"`
	Download      bool   `yaml:"download,omitempty" json:"download,omitempty"`
	bundle.Config `yaml:",inline"`
}

// AnalysisOptions binds chat model scripts to multimodalLlmAnalysis.
type AnalysisOptions struct {
	Python string            `yaml:"python,omitempty" json:"python,omitempty"`
	Models map[string]string `yaml:"models" json:"models"`
}

// ResultStore returns the caller store and setter a method pushes its result to
func ResultStore(method string) (string, string, bool) {
	switch method {
	case schema.MethodSegmentWithMONAI:
		return schema.StoreVista3d, schema.SetVista3dResult, true
	case schema.MethodSegmentWithNVSegmentCT, schema.MethodSegmentWithNVSegmentMRI:
		return schema.StoreNVSegment, schema.SetNVSegmentResult, true
	case schema.MethodGenerateWithMAISI:
		return schema.StoreMAISI, schema.SetMAISIResult, true
	case schema.MethodMultimodalLlmAnalysis:
		return schema.StoreBackendModel, schema.SetAnalysisResult, true
	}
	return "", "", false
}

func (b *BundleOptions) init() error {
	if b.Store == "" || b.Setter == "" {
		store, setter, ok := ResultStore(b.Method)
		if !ok {
			return fmt.Errorf("store is required for bundle method %v", b.Method)
		}
		if b.Store == "" {
			b.Store = store
		}
		if b.Setter == "" {
			b.Setter = setter
		}
	}
	return nil
}

// NewServer creates a backend exposing configured bundles and analysis models; commands run through shell.
func NewServer(ctx context.Context, options *ServerOptions, shell bundle.Shell, logger *log.Logger) (*backend.Server, error) {
	if options == nil {
		return nil, fmt.Errorf("server options were nil")
	}
	serverOptions := []backend.Option{}
	if options.Name != "" {
		serverOptions = append(serverOptions, backend.WithName(options.Name))
	}
	if logger != nil {
		serverOptions = append(serverOptions, backend.WithLogger(logger))
	}
	if transportOptions := options.Transport; transportOptions != nil {
		if transportOptions.Addr != "" {
			serverOptions = append(serverOptions, backend.WithAddr(transportOptions.Addr))
		}
		if transportOptions.Cors != nil {
			serverOptions = append(serverOptions, backend.WithCORS(transportOptions.Cors))
		}
		if transportOptions.Type == "streamable" {
			serverOptions = append(serverOptions, backend.WithStreamableHTTP(true))
		}
	}
	for _, bundleOptions := range options.Bundles {
		if err := bundleOptions.init(); err != nil {
			return nil, err
		}
		runner := bundle.New(bundleOptions.Config, shell, logger)
		if bundleOptions.Download {
			if err := runner.Download(ctx); err != nil {
				return nil, fmt.Errorf("failed to download bundle %v: %w", bundleOptions.Name, err)
			}
		}
		var method backend.MethodFunc
		if bundleOptions.Method == schema.MethodGenerateWithMAISI {
			method = bundle.Generate(runner, bundleOptions.Store, bundleOptions.Setter)
		} else {
			method = bundle.Segment(runner, bundleOptions.Store, bundleOptions.Setter)
		}
		serverOptions = append(serverOptions, backend.WithMethod(bundleOptions.Method, method))
	}
	if analysisOptions := options.Analysis; analysisOptions != nil && len(analysisOptions.Models) > 0 {
		models := make(map[string]analysis.Model, len(analysisOptions.Models))
		for name, script := range analysisOptions.Models {
			models[name] = analysis.NewCommand(analysisOptions.Python, script, shell)
		}
		store, setter, _ := ResultStore(schema.MethodMultimodalLlmAnalysis)
		serverOptions = append(serverOptions, backend.WithMethod(schema.MethodMultimodalLlmAnalysis, analysis.Method(models, store, setter)))
	}
	return backend.New(serverOptions...), nil
}
