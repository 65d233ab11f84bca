package segment

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/viant/volinsight/cache"
	"github.com/viant/volinsight/client"
	"github.com/viant/volinsight/labelmap"
	"github.com/viant/volinsight/panel"
	"github.com/viant/volinsight/payload"
	"github.com/viant/volinsight/schema"
	"github.com/viant/volinsight/viewer"
)

// ErrUnsupportedResult is returned when a pushed segmentation cannot be read as a label map
var ErrUnsupportedResult = errors.New("segment: unsupported result")

// Panel runs segmentation models against images loaded in the viewer
type Panel struct {
	*panel.Panel
	viewer  viewer.Viewer
	results map[string]cache.Store[*payload.Result]
	palette labelmap.Palette

	mux      sync.RWMutex
	model    *Model
	classes  []int
	modality string
}

// SetModel selects a model by key
func (p *Panel) SetModel(key string) error {
	model, ok := Lookup(key)
	if !ok {
		return fmt.Errorf("unknown segmentation model: %v", key)
	}
	p.mux.Lock()
	defer p.mux.Unlock()
	p.model = model
	return nil
}

// Model returns selected model
func (p *Panel) Model() *Model {
	p.mux.RLock()
	defer p.mux.RUnlock()
	return p.model
}

// SetClasses sets the label prompt; empty selects every class
func (p *Panel) SetClasses(classes []int) {
	p.mux.Lock()
	defer p.mux.Unlock()
	p.classes = append([]int{}, classes...)
}

// SetModality sets the MRI model modality
func (p *Panel) SetModality(modality string) error {
	if !schema.IsValidModality(modality) {
		return fmt.Errorf("unsupported modality: %v", modality)
	}
	p.mux.Lock()
	defer p.mux.Unlock()
	p.modality = modality
	return nil
}

func (p *Panel) snapshot() (*Model, []int, string) {
	p.mux.RLock()
	defer p.mux.RUnlock()
	return p.model, append([]int{}, p.classes...), p.modality
}

// Segment runs the selected model on imageID and attaches the result as a new segment group
func (p *Panel) Segment(ctx context.Context, imageID string) (*labelmap.Group, error) {
	model, classes, modality := p.snapshot()
	var group *labelmap.Group
	err := p.Run(ctx, func() error {
		if imageID == "" || !p.viewer.HasImage(imageID) {
			return fmt.Errorf("%w: no image loaded", panel.ErrPrecondition)
		}
		return nil
	}, func(ctx context.Context) error {
		if err := p.Call(ctx, model.Method, model.Args(imageID, classes, modality)...); err != nil {
			return err
		}
		return panel.Consume(ctx, p.results[model.Store], imageID, p.ResultWait(), func(result *payload.Result) error {
			var err error
			group, err = p.attach(ctx, model, imageID, result)
			return err
		})
	})
	return group, err
}

func (p *Panel) attach(ctx context.Context, model *Model, imageID string, result *payload.Result) (*labelmap.Group, error) {
	labels, err := labelImage(result)
	if err != nil {
		return nil, err
	}
	source, err := p.viewer.ImageData(ctx, imageID)
	if err != nil {
		return nil, err
	}
	resampled, err := labelmap.Resample(labels, source)
	if err != nil {
		return nil, err
	}
	group := &labelmap.Group{
		Name:     labelmap.UniqueName(labelmap.GroupBase(model.Label), p.viewer.SegmentGroupNames(imageID)),
		ParentID: imageID,
		Labelmap: resampled,
		Segments: labelmap.Segments(resampled, model.Names, p.palette),
	}
	if _, err = p.viewer.AddSegmentGroup(ctx, group); err != nil {
		return nil, err
	}
	p.Logger().Infof("%v: added %q with %d segments", p.Name(), group.Name, len(group.Segments))
	return group, nil
}

func labelImage(result *payload.Result) (*payload.Image, error) {
	switch result.Kind {
	case payload.KindImage:
		return result.Image, nil
	case payload.KindBlob:
		image, err := payload.DecodeNRRD(result.Blob)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedResult, err)
		}
		return image, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedResult, result.Kind)
}

// New creates a segmentation panel and registers its result stores on handler
func New(conn panel.Connection, handler *client.Handler, aViewer viewer.Viewer, stores panel.Stores, options ...panel.Option) (*Panel, error) {
	ret := &Panel{
		Panel:    panel.New("segment", conn, options...),
		viewer:   aViewer,
		results:  map[string]cache.Store[*payload.Result]{},
		palette:  labelmap.Tab10,
		model:    Models[0],
		modality: schema.ModalityMRIBody,
	}
	for _, model := range Models {
		if _, ok := ret.results[model.Store]; ok {
			continue
		}
		results, err := panel.BindResults(handler, stores, model.Store, model.Setter, payload.DecodeImageOrBlob)
		if err != nil {
			return nil, err
		}
		ret.results[model.Store] = results
	}
	return ret, nil
}
