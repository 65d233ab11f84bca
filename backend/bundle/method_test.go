package bundle

import (
	"context"
	"os"
	"path"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/volinsight/backend"
	"github.com/viant/volinsight/cache"
	"github.com/viant/volinsight/client"
	"github.com/viant/volinsight/payload"
	"github.com/viant/volinsight/schema"
)

type fakeShell struct {
	commands []string
	run      func(command string) error
}

func (f *fakeShell) Run(ctx context.Context, command string) (string, int, error) {
	f.commands = append(f.commands, command)
	if f.run != nil {
		if err := f.run(command); err != nil {
			return err.Error(), 1, nil
		}
	}
	return "", 0, nil
}

var outputDirExpr = regexp.MustCompile(`--output_dir '([^']+)'`)

func writeNRRD(t *testing.T, location string, image *payload.Image) {
	data, err := payload.EncodeNRRD(image, true)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(path.Dir(location), 0755))
	require.NoError(t, os.WriteFile(location, data, 0644))
}

func connect(t *testing.T, srv *backend.Server, handler *client.Handler) *client.Client {
	cli := client.New(srv.Loopback(), client.WithHandler(handler))
	require.NoError(t, cli.Connect(context.Background()))
	return cli
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()
	generated := payload.NewVolume([3]int{2, 2, 1}, "Int16Array")
	generated.Values = []float64{-1000, 0, 40, 1200}
	shell := &fakeShell{run: func(command string) error {
		if !strings.Contains(command, "monai.bundle run") {
			return nil
		}
		match := outputDirExpr.FindStringSubmatch(command)
		writeNRRD(t, path.Join(match[1], "sample_image.nrrd"), generated)
		return nil
	}}
	runner := New(Config{BundleDir: t.TempDir(), Name: "maisi_ct_generative"}, shell, nil)
	srv := backend.New()
	srv.Expose(schema.MethodGenerateWithMAISI, Generate(runner, schema.StoreMAISI, schema.SetMAISIResult))

	handler := client.NewHandler()
	results := cache.NewMemory[*payload.Result]()
	cache.Bind[*payload.Result](handler, schema.StoreMAISI, schema.SetMAISIResult, results, payload.DecodeImageOrBlob)
	cli := connect(t, srv, handler)

	params := schema.GenerateParams{AnatomyList: []string{"liver"}, OutputSize: [3]int{256, 256, 128}, Spacing: [3]float64{1, 1, 1}}
	_, err := cli.Call(ctx, schema.MethodGenerateWithMAISI, "gen-1", params)
	require.NoError(t, err)

	result, ok, _ := results.Get(ctx, "gen-1")
	require.True(t, ok)
	require.Equal(t, payload.KindImage, result.Kind)
	assert.Equal(t, generated.Values, result.Image.Values)

	require.Len(t, shell.commands, 1)
	assert.Contains(t, shell.commands[0], `--anatomy_list '["liver"]'`)
	assert.Contains(t, shell.commands[0], `--output_size '[256,256,128]'`)
	assert.Contains(t, shell.commands[0], `--num_output_samples '1'`)
}

func TestSegment(t *testing.T) {
	ctx := context.Background()
	bundleDir := t.TempDir()
	source := payload.NewVolume([3]int{2, 1, 1}, "Int16Array")
	source.Values = []float64{10, 20}
	labels := payload.NewVolume([3]int{2, 1, 1}, "Uint8Array")
	labels.Values = []float64{0, 5}

	shell := &fakeShell{run: func(command string) error {
		if strings.Contains(command, "monai.bundle run") {
			writeNRRD(t, path.Join(bundleDir, "vista3d", "eval", "input_image", "input_image_trans.nrrd"), labels)
		}
		return nil
	}}
	runner := New(Config{BundleDir: bundleDir, Name: "vista3d"}, shell, nil)
	srv := backend.New()
	srv.Expose(schema.MethodSegmentWithNVSegmentCT, Segment(runner, schema.StoreNVSegment, schema.SetNVSegmentResult))

	handler := client.NewHandler()
	images := cache.NewMemory[*payload.Image]()
	_ = images.Set(ctx, "img-1", source)
	cache.BindGetter[*payload.Image](handler, schema.StoreImageCache, schema.GetVtkImageData, images)
	results := cache.NewMemory[*payload.Result]()
	cache.Bind[*payload.Result](handler, schema.StoreNVSegment, schema.SetNVSegmentResult, results, payload.DecodeImageOrBlob)
	cli := connect(t, srv, handler)

	_, err := cli.Call(ctx, schema.MethodSegmentWithNVSegmentCT, "img-1", []int{5, 6})
	require.NoError(t, err)
	result, ok, _ := results.Get(ctx, "img-1")
	require.True(t, ok)
	assert.Equal(t, labels.Values, result.Image.Values)
	assert.Contains(t, shell.commands[0], `'\''label_prompt'\'':[5,6]`)
	assert.NotContains(t, shell.commands[0], "--modality")

	_, err = cli.Call(ctx, schema.MethodSegmentWithNVSegmentCT, "img-1", []int{}, schema.ModalityMRIBrain)
	require.NoError(t, err)
	assert.Contains(t, shell.commands[len(shell.commands)-1], "--modality 'MRI_BRAIN'")

	_, err = cli.Call(ctx, schema.MethodSegmentWithNVSegmentCT, "img-1", []int{}, "PET")
	assert.Error(t, err)

	_, err = cli.Call(ctx, schema.MethodSegmentWithNVSegmentCT, "missing", []int{})
	assert.Error(t, err)
}

func TestRunner_MissingOutput(t *testing.T) {
	runner := New(Config{BundleDir: t.TempDir(), Name: "vista3d"}, &fakeShell{}, nil)
	_, err := runner.Run(context.Background(), t.TempDir(), nil)
	assert.Error(t, err)
}

func TestInputDict(t *testing.T) {
	assert.Equal(t, "{'image':'/tmp/a.nrrd'}", inputDict("/tmp/a.nrrd", nil))
	assert.Equal(t, "{'image':'/tmp/a.nrrd','label_prompt':[1,2]}", inputDict("/tmp/a.nrrd", []int{1, 2}))
}
