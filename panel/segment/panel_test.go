package segment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/jsonrpc"
	"github.com/viant/volinsight/backend"
	"github.com/viant/volinsight/client"
	"github.com/viant/volinsight/panel"
	"github.com/viant/volinsight/payload"
	"github.com/viant/volinsight/schema"
	"github.com/viant/volinsight/viewer"
)

type fixture struct {
	panel  *Panel
	viewer *viewer.Memory
	alerts *panel.Alerts
	args   map[string]schema.Args
}

// newFixture wires a panel to an in-process backend whose methods push result for the requested image.
func newFixture(t *testing.T, result func(image *payload.Image) interface{}) *fixture {
	ret := &fixture{viewer: viewer.NewMemory(), alerts: panel.NewAlerts(nil), args: map[string]schema.Args{}}
	srv := backend.New()
	for _, model := range Models {
		model := model
		srv.Expose(model.Method, func(ctx context.Context, call *backend.Call) (interface{}, *jsonrpc.Error) {
			ret.args[model.Method] = call.Args
			id, rpcErr := call.ID()
			if rpcErr != nil {
				return nil, rpcErr
			}
			image, rpcErr := call.Frontend.ImageData(ctx, id)
			if rpcErr != nil {
				return nil, rpcErr
			}
			if rpcErr = call.Frontend.SetResult(ctx, model.Store, model.Setter, id, result(image)); rpcErr != nil {
				return nil, rpcErr
			}
			return 0, nil
		})
	}
	handler := client.NewHandler()
	viewer.BindImageSource(handler, ret.viewer)
	cli := client.New(srv.Loopback(), client.WithHandler(handler))
	require.NoError(t, cli.Connect(context.Background()))
	var err error
	ret.panel, err = New(cli, handler, ret.viewer, nil, panel.WithAlerter(ret.alerts))
	require.NoError(t, err)
	return ret
}

func source() *payload.Image {
	image := payload.NewVolume([3]int{2, 2, 1}, "Int16Array")
	image.Values = []float64{-100, 40, 60, 300}
	return image
}

func labels(image *payload.Image) *payload.Image {
	ret := payload.NewVolume(image.Dimensions, "Uint8Array")
	ret.Values = []float64{0, 1, 3, 1}
	return ret
}

func TestPanel_Segment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, func(image *payload.Image) interface{} { return labels(image) })
	f.viewer.Load("img-1", "chest", source())

	group, err := f.panel.Segment(ctx, "img-1")
	require.NoError(t, err)
	assert.Equal(t, "Segment Group for CT (1)", group.Name)
	assert.Equal(t, "img-1", group.ParentID)
	require.Len(t, group.Segments, 2)
	assert.Equal(t, "liver", group.Segments[0].Name)
	assert.Equal(t, "spleen", group.Segments[1].Name)
	assert.NotEqual(t, group.Segments[0].Color, group.Segments[1].Color)
	assert.Len(t, f.args[schema.MethodSegmentWithMONAI], 1)

	group, err = f.panel.Segment(ctx, "img-1")
	require.NoError(t, err)
	assert.Equal(t, "Segment Group for CT (2)", group.Name)
	assert.Equal(t, []string{"Segment Group for CT (1)", "Segment Group for CT (2)"}, f.viewer.SegmentGroupNames("img-1"))
	assert.False(t, f.panel.Loading())
	assert.Empty(t, f.alerts.Items())
}

func TestPanel_SegmentArgs(t *testing.T) {
	ctx := context.Background()
	var testCases = []struct {
		description string
		model       string
		classes     []int
		modality    string
		expectArgs  []string
		expectGroup string
	}{
		{description: "empty class list", model: ModelNVSegmentCT, expectArgs: []string{`"img-1"`, `[]`}, expectGroup: "Segment Group for CT (1)"},
		{description: "selected classes", model: ModelNVSegmentCT, classes: []int{1, 3}, expectArgs: []string{`"img-1"`, `[1,3]`}, expectGroup: "Segment Group for CT (1)"},
		{description: "mri modality", model: ModelNVSegmentMRI, modality: schema.ModalityMRIBrain, expectArgs: []string{`"img-1"`, `[]`, `"MRI_BRAIN"`}, expectGroup: "Segment Group for MRI (1)"},
	}
	for _, testCase := range testCases {
		f := newFixture(t, func(image *payload.Image) interface{} { return labels(image) })
		f.viewer.Load("img-1", "scan", source())
		require.NoError(t, f.panel.SetModel(testCase.model), testCase.description)
		f.panel.SetClasses(testCase.classes)
		if testCase.modality != "" {
			require.NoError(t, f.panel.SetModality(testCase.modality), testCase.description)
		}
		group, err := f.panel.Segment(ctx, "img-1")
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expectGroup, group.Name, testCase.description)
		var actual []string
		for _, arg := range f.args[f.panel.Model().Method] {
			actual = append(actual, string(arg))
		}
		assert.Equal(t, testCase.expectArgs, actual, testCase.description)
	}
}

func TestPanel_SegmentResampled(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, func(image *payload.Image) interface{} {
		coarse := payload.NewVolume([3]int{1, 1, 1}, "Uint8Array")
		coarse.Spacing = [3]float64{2, 2, 1}
		coarse.Origin = [3]float64{0.5, 0.5, 0}
		coarse.Values = []float64{2}
		data, err := payload.EncodeNRRD(coarse, true)
		require.NoError(t, err)
		return data
	})
	f.viewer.Load("img-1", "chest", source())

	group, err := f.panel.Segment(ctx, "img-1")
	require.NoError(t, err)
	assert.Equal(t, [3]int{2, 2, 1}, group.Labelmap.Dimensions)
	assert.Equal(t, []float64{2, 2, 2, 2}, group.Labelmap.Values)
	require.Len(t, group.Segments, 1)
	assert.Equal(t, "kidney", group.Segments[0].Name)
}

func TestPanel_SegmentFailures(t *testing.T) {
	ctx := context.Background()

	f := newFixture(t, func(image *payload.Image) interface{} { return labels(image) })
	_, err := f.panel.Segment(ctx, "img-1")
	assert.ErrorIs(t, err, panel.ErrPrecondition)
	assert.Empty(t, f.args)
	assert.Empty(t, f.alerts.Items())

	f = newFixture(t, func(image *payload.Image) interface{} { return []byte("not a volume") })
	f.viewer.Load("img-1", "chest", source())
	_, err = f.panel.Segment(ctx, "img-1")
	assert.ErrorIs(t, err, ErrUnsupportedResult)
	assert.Len(t, f.alerts.Items(), 1)
	assert.Empty(t, f.viewer.SegmentGroupNames("img-1"))
	assert.False(t, f.panel.Loading())

	assert.Error(t, f.panel.SetModel("unknown"))
	assert.Error(t, f.panel.SetModality("PET"))
}
