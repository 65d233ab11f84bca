package viewer

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/jsonrpc"
	"github.com/viant/volinsight/client"
	"github.com/viant/volinsight/labelmap"
	"github.com/viant/volinsight/payload"
	"github.com/viant/volinsight/schema"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	viewer := NewMemory()
	var events []string
	viewer.OnEvent(func(event Event) { events = append(events, event.Kind) })

	image := payload.NewVolume([3]int{2, 2, 1}, "Int16Array")
	id, err := viewer.AddImage(ctx, "CT", image)
	require.NoError(t, err)
	assert.True(t, viewer.HasImage(id))
	require.NoError(t, viewer.Select(ctx, id))
	assert.Equal(t, id, viewer.Selected())
	assert.Error(t, viewer.Select(ctx, "missing"))

	group := &labelmap.Group{Name: "Segment Group for CT (1)", ParentID: id, Labelmap: image}
	_, err = viewer.AddSegmentGroup(ctx, group)
	require.NoError(t, err)
	_, err = viewer.AddSegmentGroup(ctx, group)
	assert.Error(t, err)
	_, err = viewer.AddSegmentGroup(ctx, &labelmap.Group{Name: "x", ParentID: "missing"})
	assert.ErrorIs(t, err, ErrImageNotFound)
	assert.Equal(t, []string{"Segment Group for CT (1)"}, viewer.SegmentGroupNames(id))

	encoded, err := payload.EncodeNRRD(image, true)
	require.NoError(t, err)
	nrrdID, err := viewer.ImportFile(ctx, "generated.nrrd", encoded)
	require.NoError(t, err)
	decoded, err := viewer.ImageData(ctx, nrrdID)
	require.NoError(t, err)
	assert.Equal(t, image.Dimensions, decoded.Dimensions)

	blobID, err := viewer.ImportFile(ctx, "generated.nii.gz", []byte{1, 2, 3})
	require.NoError(t, err)
	_, err = viewer.ImageData(ctx, blobID)
	assert.ErrorIs(t, err, ErrImageNotFound)
	assert.Len(t, viewer.Images(), 3)
	assert.Equal(t, []string{EventImageAdded, EventSelected, EventSegmentGroupAdded, EventImageAdded, EventImageAdded}, events)
}

func TestBindImageSource(t *testing.T) {
	ctx := context.Background()
	viewer := NewMemory()
	image := payload.NewVolume([3]int{1, 1, 1}, "Int16Array")
	viewer.Load("img-1", "CT", image)
	handler := client.NewHandler()
	BindImageSource(handler, viewer)

	response := &jsonrpc.Response{}
	handler.Serve(ctx, &jsonrpc.Request{Jsonrpc: jsonrpc.Version, Id: 1, Method: "image-cache.getVtkImageData", Params: json.RawMessage(`["img-1"]`)}, response)
	require.Nil(t, response.Error)
	actual := &payload.Image{}
	require.NoError(t, json.Unmarshal(response.Result, actual))
	assert.Equal(t, image.Dimensions, actual.Dimensions)

	response = &jsonrpc.Response{}
	handler.Serve(ctx, &jsonrpc.Request{Jsonrpc: jsonrpc.Version, Id: 2, Method: "image-cache.getVtkImageData", Params: json.RawMessage(`["img-2"]`)}, response)
	require.NotNil(t, response.Error)
	assert.Equal(t, schema.ResourceNotFound, response.Error.Code)
}

func TestExporter(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	exporter := NewExporter(dir)
	labels := payload.NewVolume([3]int{1, 1, 1}, "Uint8Array")
	labels.Values = []float64{1}
	group := &labelmap.Group{Name: "Segment Group for CT (1)", ParentID: "img-1", Labelmap: labels,
		Segments: []labelmap.Segment{{Value: 1, Name: "liver", Color: labelmap.Tab10[0]}}}

	location, err := exporter.Export(ctx, Event{Kind: EventSegmentGroupAdded, Group: group})
	require.NoError(t, err)
	assert.Equal(t, "Segment_Group_for_CT_1.nrrd", filepath.Base(location))

	data, err := os.ReadFile(filepath.Join(dir, "Segment_Group_for_CT_1.nrrd"))
	require.NoError(t, err)
	actual, err := payload.DecodeNRRD(data)
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, actual.Values)

	table, err := os.ReadFile(filepath.Join(dir, "Segment_Group_for_CT_1.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(table), "liver")
}
