package generate

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/viant/volinsight/cache"
	"github.com/viant/volinsight/client"
	"github.com/viant/volinsight/panel"
	"github.com/viant/volinsight/payload"
	"github.com/viant/volinsight/schema"
	"github.com/viant/volinsight/viewer"
)

// ErrUnsupportedResult is returned when a pushed result is neither an image nor a file
var ErrUnsupportedResult = errors.New("generate: unsupported result")

// Panel generates synthetic CT volumes and loads them into the viewer
type Panel struct {
	*panel.Panel
	viewer  viewer.Viewer
	results cache.Store[*payload.Result]

	mux        sync.RWMutex
	params     Params
	autoSelect bool
	generated  int
}

// Params returns current settings
func (p *Panel) Params() Params {
	p.mux.RLock()
	defer p.mux.RUnlock()
	ret := p.params
	ret.AnatomyList = append([]string{}, p.params.AnatomyList...)
	return ret
}

// SetParams replaces settings once validated
func (p *Panel) SetParams(params Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	p.mux.Lock()
	defer p.mux.Unlock()
	p.params = params
	p.params.AnatomyList = append([]string{}, params.AnatomyList...)
	return nil
}

// SetAutoSelect controls whether a generated volume becomes the active image
func (p *Panel) SetAutoSelect(autoSelect bool) {
	p.mux.Lock()
	defer p.mux.Unlock()
	p.autoSelect = autoSelect
}

// Generate requests a volume with the current settings and returns its viewer id
func (p *Panel) Generate(ctx context.Context) (string, error) {
	params := p.Params()
	var viewerID string
	err := p.Run(ctx, params.Validate, func(ctx context.Context) error {
		generationID := panel.NewID()
		if err := p.Call(ctx, schema.MethodGenerateWithMAISI, generationID, params.Wire()); err != nil {
			return err
		}
		return panel.Consume(ctx, p.results, generationID, p.ResultWait(), func(result *payload.Result) error {
			var err error
			viewerID, err = p.load(ctx, result)
			return err
		})
	})
	return viewerID, err
}

func (p *Panel) load(ctx context.Context, result *payload.Result) (string, error) {
	p.mux.RLock()
	name := fmt.Sprintf("MAISI Generated CT %d", p.generated+1)
	autoSelect := p.autoSelect
	p.mux.RUnlock()

	var id string
	var err error
	switch result.Kind {
	case payload.KindImage:
		id, err = p.viewer.AddImage(ctx, name, result.Image)
	case payload.KindBlob:
		id, err = p.viewer.ImportFile(ctx, name, result.Blob)
	default:
		err = fmt.Errorf("%w: %v", ErrUnsupportedResult, result.Kind)
	}
	if err != nil {
		return "", err
	}
	p.mux.Lock()
	p.generated++
	p.mux.Unlock()
	p.Logger().Infof("%v: loaded %q as %v", p.Name(), name, id)
	if autoSelect {
		if err = p.viewer.Select(ctx, id); err != nil {
			return "", err
		}
	}
	return id, nil
}

// New creates a generation panel and registers its result store on handler
func New(conn panel.Connection, handler *client.Handler, aViewer viewer.Viewer, stores panel.Stores, options ...panel.Option) (*Panel, error) {
	results, err := panel.BindResults(handler, stores, schema.StoreMAISI, schema.SetMAISIResult, payload.DecodeImageOrBlob)
	if err != nil {
		return nil, err
	}
	return &Panel{
		Panel:      panel.New("generate", conn, options...),
		viewer:     aViewer,
		results:    results,
		params:     DefaultParams(),
		autoSelect: true,
	}, nil
}
