package volinsight

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/volinsight/client"
	"github.com/viant/volinsight/schema"
)

type fakeShell struct {
	commands []string
}

func (f *fakeShell) Run(ctx context.Context, command string) (string, int, error) {
	f.commands = append(f.commands, command)
	return "", 0, nil
}

func TestClientOptions_Dialer(t *testing.T) {
	var testCases = []struct {
		description string
		options     ClientOptions
		expectErr   bool
	}{
		{description: "sse", options: ClientOptions{Transport: ClientTransport{Type: "sse", ClientTransportHTTP: ClientTransportHTTP{URL: "http://localhost:4014/sse"}}}},
		{description: "streamable", options: ClientOptions{Transport: ClientTransport{Type: "streamable", ClientTransportHTTP: ClientTransportHTTP{URL: "http://localhost:4014/rpc"}}}},
		{description: "stdio", options: ClientOptions{Transport: ClientTransport{Type: "stdio", ClientTransportStdio: ClientTransportStdio{Command: "volinsight"}}}},
		{description: "sse without url", options: ClientOptions{Transport: ClientTransport{Type: "sse"}}, expectErr: true},
		{description: "stdio without command", options: ClientOptions{Transport: ClientTransport{Type: "stdio"}}, expectErr: true},
		{description: "no transport", options: ClientOptions{}, expectErr: true},
	}
	for _, testCase := range testCases {
		dial, err := testCase.options.Dialer()
		if testCase.expectErr {
			assert.Error(t, err, testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		assert.NotNil(t, dial, testCase.description)
	}
}

func TestNewClient(t *testing.T) {
	options := &ClientOptions{Timeout: 30, Transport: ClientTransport{ClientTransportHTTP: ClientTransportHTTP{URL: "http://localhost:4014/sse"}}}
	cli, err := NewClient(client.NewHandler(), options, nil)
	require.NoError(t, err)
	assert.Equal(t, "sse", options.Transport.Type)
	assert.Equal(t, "backend", options.Name)
	assert.Equal(t, client.Disconnected, cli.State())
}

func TestNewServer(t *testing.T) {
	ctx := context.Background()
	shell := &fakeShell{}
	options := &ServerOptions{
		Name: "inference",
		Bundles: []*BundleOptions{
			{Method: schema.MethodSegmentWithMONAI, Download: true},
			{Method: schema.MethodSegmentWithNVSegmentCT},
			{Method: schema.MethodGenerateWithMAISI},
		},
		Analysis: &AnalysisOptions{Models: map[string]string{schema.ModelMedGemma: "medgemma.py"}},
	}
	options.Bundles[0].Name = "vista3d"
	options.Bundles[0].BundleDir = "/opt/bundles"
	srv, err := NewServer(ctx, options, shell, nil)
	require.NoError(t, err)
	methods := srv.Methods()
	sort.Strings(methods)
	assert.Equal(t, []string{
		schema.MethodGenerateWithMAISI,
		schema.MethodMultimodalLlmAnalysis,
		schema.MethodSegmentWithMONAI,
		schema.MethodSegmentWithNVSegmentCT,
	}, methods)
	require.Len(t, shell.commands, 1)
	assert.Contains(t, shell.commands[0], "monai.bundle download --name 'vista3d'")
	assert.Equal(t, schema.StoreNVSegment, options.Bundles[1].Store)
	assert.Equal(t, schema.SetMAISIResult, options.Bundles[2].Setter)

	_, err = NewServer(ctx, &ServerOptions{Bundles: []*BundleOptions{{Method: "custom"}}}, shell, nil)
	assert.Error(t, err)
}
