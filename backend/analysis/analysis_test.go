package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/jsonrpc"
	"github.com/viant/volinsight/backend"
	"github.com/viant/volinsight/client"
	"github.com/viant/volinsight/panel"
	"github.com/viant/volinsight/panel/chat"
	"github.com/viant/volinsight/payload"
	"github.com/viant/volinsight/schema"
	"github.com/viant/volinsight/viewer"
)

func volume() *payload.Image {
	image := payload.NewVolume([3]int{2, 1, 3}, "Int16Array")
	image.Spacing = [3]float64{1, 1, 2.5}
	image.Values = []float64{1, 2, 3, 4, 5, 6}
	return image
}

func TestSlice(t *testing.T) {
	var testCases = []struct {
		description  string
		index        int
		expectValues []float64
		expectOrigin [3]float64
		expectErr    bool
	}{
		{description: "first", index: 0, expectValues: []float64{1, 2}},
		{description: "last", index: 2, expectValues: []float64{5, 6}, expectOrigin: [3]float64{0, 0, 5}},
		{description: "out of range", index: 3, expectErr: true},
		{description: "negative", index: -1, expectErr: true},
	}
	for _, testCase := range testCases {
		actual, err := Slice(volume(), testCase.index)
		if testCase.expectErr {
			assert.Error(t, err, testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		assert.Equal(t, [3]int{2, 1, 1}, actual.Dimensions, testCase.description)
		assert.Equal(t, testCase.expectValues, actual.Values, testCase.description)
		assert.Equal(t, testCase.expectOrigin, actual.Origin, testCase.description)
	}

	plane := payload.NewVolume([3]int{2, 2, 1}, "Uint8Array")
	actual, err := Slice(plane, 7)
	require.NoError(t, err)
	assert.Same(t, plane, actual)
}

type modelFunc func(ctx context.Context, image *payload.Image, input *schema.AnalysisInput) (string, error)

func (f modelFunc) Analyze(ctx context.Context, image *payload.Image, input *schema.AnalysisInput) (string, error) {
	return f(ctx, image, input)
}

type fakeShell struct {
	commands []string
	output   string
	code     int
}

func (f *fakeShell) Run(ctx context.Context, command string) (string, int, error) {
	f.commands = append(f.commands, command)
	return f.output, f.code, nil
}

func newChat(t *testing.T, models map[string]Model) (*chat.Panel, *panel.Alerts) {
	srv := backend.New()
	srv.Expose(schema.MethodMultimodalLlmAnalysis, Method(models, schema.StoreBackendModel, schema.SetAnalysisResult))
	handler := client.NewHandler()
	images := viewer.NewMemory()
	images.Load("img-1", "chest", volume())
	viewer.BindImageSource(handler, images)
	cli := client.New(srv.Loopback(), client.WithHandler(handler))
	require.NoError(t, cli.Connect(context.Background()))
	alerts := panel.NewAlerts(nil)
	aPanel, err := chat.New(cli, handler, images, nil, panel.WithAlerter(alerts))
	require.NoError(t, err)
	return aPanel, alerts
}

func TestMethod(t *testing.T) {
	ctx := context.Background()
	var seen []*payload.Image
	var inputs []*schema.AnalysisInput
	models := map[string]Model{
		schema.ModelMedGemma: modelFunc(func(ctx context.Context, image *payload.Image, input *schema.AnalysisInput) (string, error) {
			seen = append(seen, image)
			inputs = append(inputs, input)
			return "No acute *findings*.", nil
		}),
		schema.ModelClaraReason: modelFunc(func(ctx context.Context, image *payload.Image, input *schema.AnalysisInput) (string, error) {
			return "", errors.New("out of memory")
		}),
	}
	aPanel, alerts := newChat(t, models)

	reply, err := aPanel.Send(ctx, "img-1", 1, "Findings?")
	require.NoError(t, err)
	assert.Equal(t, "No acute *findings*.", reply.Content)
	require.Len(t, seen, 1)
	assert.Equal(t, []float64{3, 4}, seen[0].Values)
	assert.Equal(t, "Findings?", inputs[0].Prompt)

	_, err = aPanel.Send(ctx, "img-1", 9, "Again?")
	require.Error(t, err)

	require.NoError(t, aPanel.SetModel(schema.ModelClaraReason))
	_, err = aPanel.Send(ctx, "img-1", 0, "Heart size?")
	require.Error(t, err)
	messages := aPanel.Messages(schema.ModelClaraReason)
	require.Len(t, messages, 2)
	assert.True(t, messages[1].Error)
	assert.Contains(t, messages[1].Content, "out of memory")
	assert.Empty(t, alerts.Items())
}

func TestMethod_UnknownModel(t *testing.T) {
	aPanel, _ := newChat(t, map[string]Model{})
	_, err := aPanel.Send(context.Background(), "img-1", 0, "hello")
	var rpcErr *jsonrpc.Error
	require.True(t, errors.As(err, &rpcErr))
	assert.EqualValues(t, -32602, rpcErr.Code)
}

func TestCommand_Analyze(t *testing.T) {
	ctx := context.Background()
	shell := &fakeShell{output: "  Normal study.\n"}
	model := NewCommand("", "medgemma.py", shell)
	answer, err := model.Analyze(ctx, volume(), &schema.AnalysisInput{Prompt: "Findings?"})
	require.NoError(t, err)
	assert.Equal(t, "Normal study.", answer)
	require.Len(t, shell.commands, 1)
	assert.True(t, strings.HasPrefix(shell.commands[0], "python medgemma.py --image '"))

	shell.code = 2
	shell.output = "Traceback"
	_, err = model.Analyze(ctx, volume(), &schema.AnalysisInput{})
	assert.ErrorContains(t, err, "exited with 2")
}
