package bundle

import (
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/gologme/log"
	"github.com/viant/afs"
)

// Shell runs a shell command returning its combined output and exit code
type Shell interface {
	Run(ctx context.Context, command string) (string, int, error)
}

// Config describes a MONAI bundle
type Config struct {
	Python     string `yaml:"Python,omitempty"`
	BundleDir  string `yaml:"BundleDir"`
	Name       string `yaml:"Name"`
	ConfigFile string `yaml:"ConfigFile,omitempty"`
	// OutputDir is relative to the bundle root unless absolute; overridden per run when an output_dir override is passed.
	OutputDir string `yaml:"OutputDir,omitempty"`
	// OutputSuffixes lists accepted output file suffixes in preference order.
	OutputSuffixes []string `yaml:"OutputSuffixes,omitempty"`
}

func (c *Config) init() {
	if c.Python == "" {
		c.Python = "python"
	}
	if c.ConfigFile == "" {
		c.ConfigFile = "configs/inference.json"
	}
	if c.OutputDir == "" {
		c.OutputDir = "eval"
	}
	if len(c.OutputSuffixes) == 0 {
		c.OutputSuffixes = []string{".nrrd", ".nii.gz"}
	}
}

// Root returns the bundle root directory
func (c *Config) Root() string {
	return path.Join(c.BundleDir, c.Name)
}

// Runner downloads and runs a MONAI bundle through a shell
type Runner struct {
	config Config
	shell  Shell
	fs     afs.Service
	logger *log.Logger
}

// Download ensures the bundle is present
func (r *Runner) Download(ctx context.Context) error {
	command := fmt.Sprintf("%v -m monai.bundle download --name %v --bundle_dir %v", r.config.Python, quote(r.config.Name), quote(r.config.BundleDir))
	_, err := r.run(ctx, command)
	return err
}

// Run executes the bundle inference config with key=value overrides and returns the produced output file.
// outputDir is scanned for the result; empty means the configured output directory.
func (r *Runner) Run(ctx context.Context, outputDir string, overrides map[string]string) (*Output, error) {
	if outputDir == "" {
		outputDir = r.config.OutputDir
		if !path.IsAbs(outputDir) {
			outputDir = path.Join(r.config.Root(), outputDir)
		}
		if ok, _ := r.fs.Exists(ctx, outputDir); ok {
			if err := r.fs.Delete(ctx, outputDir); err != nil {
				return nil, fmt.Errorf("failed to clean %v: %w", outputDir, err)
			}
		}
	}
	keys := make([]string, 0, len(overrides))
	for key := range overrides {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	builder := strings.Builder{}
	fmt.Fprintf(&builder, "cd %v && %v -m monai.bundle run --config_file %v", quote(r.config.Root()), r.config.Python, quote(r.config.ConfigFile))
	for _, key := range keys {
		fmt.Fprintf(&builder, " --%v %v", key, quote(overrides[key]))
	}
	if _, err := r.run(ctx, builder.String()); err != nil {
		return nil, err
	}
	return r.output(ctx, outputDir)
}

func (r *Runner) run(ctx context.Context, command string) (string, error) {
	r.logger.Debugf("bundle %v: %v", r.config.Name, command)
	output, code, err := r.shell.Run(ctx, command)
	if err != nil {
		return output, fmt.Errorf("bundle %v: command failed: %w\n%v", r.config.Name, err, output)
	}
	if code != 0 {
		return output, fmt.Errorf("bundle %v: command exited with %d\n%v", r.config.Name, code, output)
	}
	return output, nil
}

func (r *Runner) output(ctx context.Context, outputDir string) (*Output, error) {
	var candidates []string
	if err := r.list(ctx, outputDir, &candidates); err != nil {
		return nil, fmt.Errorf("failed to list %v: %w", outputDir, err)
	}
	sort.Strings(candidates)
	for _, suffix := range r.config.OutputSuffixes {
		for _, candidate := range candidates {
			if strings.HasSuffix(candidate, suffix) {
				data, err := r.fs.DownloadWithURL(ctx, candidate)
				if err != nil {
					return nil, fmt.Errorf("failed to read %v: %w", candidate, err)
				}
				return &Output{URL: candidate, Data: data}, nil
			}
		}
	}
	return nil, fmt.Errorf("bundle %v finished but no output matching %v was found in %v", r.config.Name, r.config.OutputSuffixes, outputDir)
}

func (r *Runner) list(ctx context.Context, location string, files *[]string) error {
	objects, err := r.fs.List(ctx, location)
	if err != nil {
		return err
	}
	for _, object := range objects {
		if !object.IsDir() {
			*files = append(*files, object.URL())
			continue
		}
		if strings.HasSuffix(strings.TrimRight(object.URL(), "/"), strings.TrimRight(location, "/")) {
			continue
		}
		if err = r.list(ctx, object.URL(), files); err != nil {
			return err
		}
	}
	return nil
}

// Output is a file produced by a bundle run
type Output struct {
	URL  string
	Data []byte
}

// IsNRRD returns true if output is NRRD encoded
func (o *Output) IsNRRD() bool {
	return strings.HasSuffix(o.URL, ".nrrd") || strings.HasSuffix(o.URL, ".nhdr")
}

func quote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}

// New creates a bundle runner
func New(config Config, shell Shell, logger *log.Logger) *Runner {
	config.init()
	if logger == nil {
		logger = log.New(io.Discard, "", log.Flags())
	}
	return &Runner{config: config, shell: shell, fs: afs.New(), logger: logger}
}
