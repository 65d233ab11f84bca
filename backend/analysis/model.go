package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/volinsight/backend/bundle"
	"github.com/viant/volinsight/payload"
	"github.com/viant/volinsight/schema"
)

// Model answers a prompt about an image slice
type Model interface {
	Analyze(ctx context.Context, image *payload.Image, input *schema.AnalysisInput) (string, error)
}

// Command runs an inference script: the slice and the prompt are written to a work directory and the script's standard
// output is the answer.
type Command struct {
	Python string `yaml:"Python,omitempty"`
	Script string `yaml:"Script"`
	shell  bundle.Shell
	fs     afs.Service
}

func (c *Command) Analyze(ctx context.Context, image *payload.Image, input *schema.AnalysisInput) (string, error) {
	workDir, err := os.MkdirTemp("", "volinsight-analysis-")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(workDir)

	imageData, err := payload.EncodeNRRD(image, false)
	if err != nil {
		return "", err
	}
	inputData, err := json.Marshal(input)
	if err != nil {
		return "", err
	}
	imagePath := path.Join(workDir, "slice.nrrd")
	inputPath := path.Join(workDir, "input.json")
	if err = c.fs.Upload(ctx, imagePath, 0644, bytes.NewReader(imageData)); err != nil {
		return "", err
	}
	if err = c.fs.Upload(ctx, inputPath, 0644, bytes.NewReader(inputData)); err != nil {
		return "", err
	}
	command := fmt.Sprintf("%v %v --image '%v' --input '%v'", c.Python, c.Script, imagePath, inputPath)
	output, code, err := c.shell.Run(ctx, command)
	if err != nil {
		return "", err
	}
	if code != 0 {
		return "", fmt.Errorf("%v exited with %d: %v", c.Script, code, strings.TrimSpace(output))
	}
	return strings.TrimSpace(output), nil
}

// NewCommand creates a script backed model
func NewCommand(python, script string, shell bundle.Shell) *Command {
	if python == "" {
		python = "python"
	}
	return &Command{Python: python, Script: script, shell: shell, fs: afs.New()}
}
