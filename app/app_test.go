package app

import (
	"context"
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/jsonrpc"
	"github.com/viant/volinsight/backend"
	"github.com/viant/volinsight/config"
	"github.com/viant/volinsight/panel"
	"github.com/viant/volinsight/payload"
	"github.com/viant/volinsight/schema"
)

func newBackend() *backend.Server {
	srv := backend.New(backend.WithName("inference"))
	srv.Expose(schema.MethodSegmentWithMONAI, func(ctx context.Context, call *backend.Call) (interface{}, *jsonrpc.Error) {
		id, rpcErr := call.ID()
		if rpcErr != nil {
			return nil, rpcErr
		}
		image, rpcErr := call.Frontend.ImageData(ctx, id)
		if rpcErr != nil {
			return nil, rpcErr
		}
		labels := payload.NewVolume(image.Dimensions, "Uint8Array")
		labels.Values[0] = 1
		if rpcErr = call.Frontend.SetResult(ctx, schema.StoreVista3d, schema.SetVista3dResult, id, labels); rpcErr != nil {
			return nil, rpcErr
		}
		return 0, nil
	})
	srv.Expose(schema.MethodGenerateWithMAISI, func(ctx context.Context, call *backend.Call) (interface{}, *jsonrpc.Error) {
		id, rpcErr := call.ID()
		if rpcErr != nil {
			return nil, rpcErr
		}
		image := payload.NewVolume([3]int{2, 2, 2}, "Int16Array")
		if rpcErr = call.Frontend.SetResult(ctx, schema.StoreMAISI, schema.SetMAISIResult, id, image); rpcErr != nil {
			return nil, rpcErr
		}
		return 0, nil
	})
	return srv
}

func clearEnv(t *testing.T) {
	for _, key := range []string{config.EnvSegmentURL, config.EnvGenerateURL, config.EnvChatURL} {
		t.Setenv(key, "")
	}
}

func TestApp(t *testing.T) {
	clearEnv(t)
	ctx := context.Background()
	exportDir := t.TempDir()
	cfg := &config.Config{
		StoreDSN:  path.Join(t.TempDir(), "results.db"),
		ExportURL: exportDir,
	}
	srv := newBackend()
	anApp, err := New(cfg, WithDialer("segment", srv.Loopback()), WithDialer("generate", srv.Loopback()))
	require.NoError(t, err)
	require.NoError(t, anApp.Connect(ctx))
	defer anApp.Close()

	_, ok := anApp.Client("chat")
	assert.False(t, ok)

	anApp.Viewer.Load("img-1", "chest", payload.NewVolume([3]int{2, 2, 1}, "Int16Array"))
	group, err := anApp.Segment.Segment(ctx, "img-1")
	require.NoError(t, err)
	assert.Equal(t, "Segment Group for CT (1)", group.Name)

	id, err := anApp.Generate.Generate(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, anApp.Viewer.Selected())

	for _, name := range []string{"chest.nrrd", "Segment_Group_for_CT_1.nrrd", "Segment_Group_for_CT_1.yaml", "MAISI_Generated_CT_1.nrrd"} {
		_, err := os.Stat(path.Join(exportDir, name))
		assert.NoError(t, err, name)
	}

	_, err = anApp.Chat.Send(ctx, "img-1", 0, "hello")
	assert.ErrorIs(t, err, panel.ErrNotConnected)
	assert.Empty(t, anApp.Alerts.Items())
}

func TestApp_InvalidTransport(t *testing.T) {
	clearEnv(t)
	cfg := &config.Config{}
	cfg.Init()
	cfg.Chat.Transport.Type = "sse"
	cfg.Chat.Transport.URL = ""
	_, err := New(cfg)
	assert.Error(t, err)
}
