package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/viant/jsonrpc"
	"github.com/viant/volinsight/cache"
	"github.com/viant/volinsight/client"
	"github.com/viant/volinsight/panel"
	"github.com/viant/volinsight/payload"
	"github.com/viant/volinsight/schema"
	"github.com/viant/volinsight/viewer"
)

// ErrUnsupportedResult is returned when the analysis result is not text
var ErrUnsupportedResult = errors.New("chat: unsupported result")

// Panel holds a conversation per model about the selected image slice
type Panel struct {
	*panel.Panel
	viewer  viewer.Viewer
	inputs  *cache.Memory[*schema.AnalysisInput]
	results cache.Store[*payload.Result]

	mux   sync.RWMutex
	model string
	turn  string
	logs  map[string][]Message
}

// SetModel selects the conversation model
func (p *Panel) SetModel(model string) error {
	for _, candidate := range schema.Models {
		if candidate == model {
			p.mux.Lock()
			p.model = model
			p.mux.Unlock()
			return nil
		}
	}
	return fmt.Errorf("unknown chat model: %v", model)
}

// Model returns the selected model
func (p *Panel) Model() string {
	p.mux.RLock()
	defer p.mux.RUnlock()
	return p.model
}

// selectedModel is the model of the turn in flight, else the selected one
func (p *Panel) selectedModel() string {
	loading := p.Loading()
	p.mux.RLock()
	defer p.mux.RUnlock()
	if loading && p.turn != "" {
		return p.turn
	}
	return p.model
}

// Messages returns a copy of the model log
func (p *Panel) Messages(model string) []Message {
	p.mux.RLock()
	defer p.mux.RUnlock()
	return append([]Message{}, p.logs[model]...)
}

func (p *Panel) record(model string, message Message) {
	p.mux.Lock()
	defer p.mux.Unlock()
	p.logs[model] = append(p.logs[model], message)
}

// begin snapshots the history and appends the user turn
func (p *Panel) begin(prompt string) (string, []schema.ChatMessage) {
	p.mux.Lock()
	defer p.mux.Unlock()
	model := p.model
	previous := history(p.logs[model])
	p.logs[model] = append(p.logs[model], Message{Role: schema.RoleUser, Content: prompt})
	p.turn = model
	return model, previous
}

// Send asks the selected model about slice of imageID and returns the assistant reply
func (p *Panel) Send(ctx context.Context, imageID string, slice int, prompt string) (*Message, error) {
	prompt = strings.TrimSpace(prompt)
	var reply *Message
	err := p.Run(ctx, func() error {
		if prompt == "" {
			return fmt.Errorf("%w: empty prompt", panel.ErrPrecondition)
		}
		if imageID == "" || !p.viewer.HasImage(imageID) {
			return fmt.Errorf("%w: no image loaded", panel.ErrPrecondition)
		}
		return nil
	}, func(ctx context.Context) error {
		model, previous := p.begin(prompt)
		if err := p.inputs.Set(ctx, imageID, &schema.AnalysisInput{Prompt: prompt, History: previous}); err != nil {
			return err
		}
		defer func() { _ = p.inputs.Remove(ctx, imageID) }()
		if err := p.Call(ctx, schema.MethodMultimodalLlmAnalysis, imageID, slice); err != nil {
			return err
		}
		return panel.Consume(ctx, p.results, imageID, p.ResultWait(), func(result *payload.Result) error {
			if result.Kind != payload.KindText {
				return fmt.Errorf("%w: %v", ErrUnsupportedResult, result.Kind)
			}
			message := newAssistant(result.Text, false)
			p.record(model, message)
			reply = &message
			return nil
		})
	})
	return reply, err
}

func (p *Panel) reportFailure(_ context.Context, err error) {
	p.mux.RLock()
	model := p.turn
	p.mux.RUnlock()
	p.record(model, newAssistant(fmt.Sprintf("Error: %v", err), true))
}

// New creates a chat panel and registers backend-model-store methods on handler
func New(conn panel.Connection, handler *client.Handler, aViewer viewer.Viewer, stores panel.Stores, options ...panel.Option) (*Panel, error) {
	results, err := panel.BindResults(handler, stores, schema.StoreBackendModel, schema.SetAnalysisResult, payload.DecodeAny)
	if err != nil {
		return nil, err
	}
	ret := &Panel{
		Panel:   panel.New("chat", conn, options...),
		viewer:  aViewer,
		inputs:  cache.NewMemory[*schema.AnalysisInput](),
		results: results,
		model:   schema.Models[0],
		logs:    map[string][]Message{},
	}
	ret.OnFailure(ret.reportFailure)
	cache.BindGetter[*schema.AnalysisInput](handler, schema.StoreBackendModel, schema.GetAnalysisInput, ret.inputs)
	handler.Register(schema.StoreMethod(schema.StoreBackendModel, schema.GetSelectedModel), func(ctx context.Context, args schema.Args) (interface{}, *jsonrpc.Error) {
		return ret.selectedModel(), nil
	})
	return ret, nil
}
