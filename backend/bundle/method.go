package bundle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/viant/jsonrpc"
	"github.com/viant/volinsight/backend"
	"github.com/viant/volinsight/payload"
	"github.com/viant/volinsight/schema"
)

const inputFile = "input_image.nrrd"

// Segment exposes a segmentation bundle: [imageId, labelPrompt?, modality?]. The caller's image is pulled from its
// image cache, the label map is pushed to "<store>.<setter>" under imageId.
func Segment(runner *Runner, store, setter string) backend.MethodFunc {
	return func(ctx context.Context, call *backend.Call) (interface{}, *jsonrpc.Error) {
		id, rpcErr := call.ID()
		if rpcErr != nil {
			return nil, rpcErr
		}
		labelPrompt := []int{}
		if call.Args.Has(1) {
			if rpcErr = call.Args.Decode(1, &labelPrompt); rpcErr != nil {
				return nil, rpcErr
			}
		}
		modality := ""
		if call.Args.Has(2) {
			if rpcErr = call.Args.Decode(2, &modality); rpcErr != nil {
				return nil, rpcErr
			}
			if !schema.IsValidModality(modality) {
				return nil, jsonrpc.NewInvalidParamsError(fmt.Sprintf("unsupported modality: %v", modality), nil)
			}
		}
		image, rpcErr := call.Frontend.ImageData(ctx, id)
		if rpcErr != nil {
			return nil, rpcErr
		}
		workDir, err := os.MkdirTemp("", "volinsight-")
		if err != nil {
			return nil, jsonrpc.NewInternalError(err.Error(), nil)
		}
		defer os.RemoveAll(workDir)

		data, err := payload.EncodeNRRD(image, false)
		if err != nil {
			return nil, jsonrpc.NewInvalidParamsError(err.Error(), nil)
		}
		inputPath := path.Join(workDir, inputFile)
		if err = runner.fs.Upload(ctx, inputPath, 0644, bytes.NewReader(data)); err != nil {
			return nil, jsonrpc.NewInternalError(err.Error(), nil)
		}
		_ = call.Logger.Info(ctx, fmt.Sprintf("segmenting %v with %v", id, runner.config.Name))
		overrides := map[string]string{"input_dict": inputDict(inputPath, labelPrompt)}
		if modality != "" {
			overrides["modality"] = modality
		}
		output, err := runner.Run(ctx, "", overrides)
		if err != nil {
			return nil, schema.NewInferenceFailed(err.Error())
		}
		return push(ctx, call, store, setter, id, output)
	}
}

// Generate exposes a generation bundle: [generationId, params]. The generated volume is pushed to
// "<store>.<setter>" under generationId.
func Generate(runner *Runner, store, setter string) backend.MethodFunc {
	return func(ctx context.Context, call *backend.Call) (interface{}, *jsonrpc.Error) {
		id, rpcErr := call.ID()
		if rpcErr != nil {
			return nil, rpcErr
		}
		params := &schema.GenerateParams{}
		if rpcErr = call.Args.Decode(1, params); rpcErr != nil {
			return nil, rpcErr
		}
		outputDir, err := os.MkdirTemp("", "volinsight-")
		if err != nil {
			return nil, jsonrpc.NewInternalError(err.Error(), nil)
		}
		defer os.RemoveAll(outputDir)

		overrides := map[string]string{
			"output_dir":         outputDir,
			"num_output_samples": "1",
		}
		if len(params.AnatomyList) > 0 {
			overrides["anatomy_list"] = asJSON(params.AnatomyList)
		}
		if params.OutputSize != [3]int{} {
			overrides["output_size"] = asJSON(params.OutputSize)
		}
		if params.Spacing != [3]float64{} {
			overrides["spacing"] = asJSON(params.Spacing)
		}
		_ = call.Logger.Info(ctx, fmt.Sprintf("generating %v with %v", id, runner.config.Name))
		output, err := runner.Run(ctx, outputDir, overrides)
		if err != nil {
			return nil, schema.NewInferenceFailed(err.Error())
		}
		return push(ctx, call, store, setter, id, output)
	}
}

func push(ctx context.Context, call *backend.Call, store, setter, id string, output *Output) (interface{}, *jsonrpc.Error) {
	var value interface{} = output.Data
	if output.IsNRRD() {
		image, err := payload.DecodeNRRD(output.Data)
		if err != nil {
			return nil, schema.NewInferenceFailed(err.Error())
		}
		value = image
	}
	if rpcErr := call.Frontend.SetResult(ctx, store, setter, id, value); rpcErr != nil {
		return nil, rpcErr
	}
	return 0, nil
}

func inputDict(imagePath string, labelPrompt []int) string {
	if len(labelPrompt) == 0 {
		return fmt.Sprintf("{'image':'%v'}", imagePath)
	}
	labels := make([]string, len(labelPrompt))
	for i, label := range labelPrompt {
		labels[i] = fmt.Sprint(label)
	}
	return fmt.Sprintf("{'image':'%v','label_prompt':[%v]}", imagePath, strings.Join(labels, ","))
}

func asJSON(value interface{}) string {
	data, _ := json.Marshal(value)
	return string(data)
}
