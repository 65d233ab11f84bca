package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"

	"github.com/gologme/log"
	"github.com/jessevdk/go-flags"
	"github.com/viant/afs"
	"github.com/viant/volinsight"
	"github.com/viant/volinsight/app"
	"github.com/viant/volinsight/backend/bundle"
	"github.com/viant/volinsight/config"
	"github.com/viant/volinsight/panel/generate"
	"github.com/viant/volinsight/payload"
)

// Run parses args and executes the selected command
func Run(args []string) error {
	options := &Options{}
	_, err := flags.ParseArgs(options, args)
	return err
}

func (c *Common) logger() *log.Logger {
	logger := log.New(os.Stderr, "volinsight ", log.Flags())
	logger.EnableLevelsByNumber(5)
	if c.Debug {
		logger.EnableLevelsByNumber(10)
	}
	return logger
}

func (c *Common) load(ctx context.Context, exportURL string) (*config.Config, error) {
	cfg, err := config.Load(ctx, c.ConfigURL)
	if err != nil {
		return nil, err
	}
	if exportURL != "" {
		cfg.ExportURL = exportURL
	}
	return cfg, nil
}

func (c *Common) open(ctx context.Context, cfg *config.Config) (*app.App, error) {
	anApp, err := app.New(cfg, app.WithLogger(c.logger()))
	if err != nil {
		return nil, err
	}
	if err = anApp.Connect(ctx); err != nil {
		_ = anApp.Close()
		return nil, err
	}
	return anApp, nil
}

func loadImage(ctx context.Context, anApp *app.App, URL string) (string, error) {
	data, err := afs.New().DownloadWithURL(ctx, URL)
	if err != nil {
		return "", fmt.Errorf("failed to read %v: %w", URL, err)
	}
	image, err := payload.DecodeNRRD(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %v: %w", URL, err)
	}
	id := path.Base(URL)
	anApp.Viewer.Load(id, id, image)
	return id, nil
}

func (s *ServeCommand) Execute(_ []string) error {
	ctx := context.Background()
	cfg, err := s.load(ctx, "")
	if err != nil {
		return err
	}
	if cfg.Server == nil {
		return errors.New("server section is missing in config")
	}
	if cfg.Server.Transport == nil {
		cfg.Server.Transport = &volinsight.ServerTransport{}
	}
	if s.Type != "" {
		cfg.Server.Transport.Type = s.Type
	}
	if s.Addr != "" {
		cfg.Server.Transport.Addr = s.Addr
	}
	shell, err := bundle.NewLocalShell(ctx)
	if err != nil {
		return err
	}
	logger := s.logger()
	srv, err := volinsight.NewServer(ctx, cfg.Server, shell, logger)
	if err != nil {
		return err
	}
	if cfg.Server.Transport.Type == "stdio" {
		return srv.Stdio(ctx).ListenAndServe()
	}
	httpServer := srv.HTTP(ctx, cfg.Server.Transport.Addr)
	logger.Infof("listening on %v", httpServer.Addr)
	if err = httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *SegmentCommand) Execute(_ []string) error {
	ctx := context.Background()
	cfg, err := s.load(ctx, s.Output)
	if err != nil {
		return err
	}
	anApp, err := s.open(ctx, cfg)
	if err != nil {
		return err
	}
	defer anApp.Close()
	id, err := loadImage(ctx, anApp, s.Image)
	if err != nil {
		return err
	}
	if err = anApp.Segment.SetModel(s.Model); err != nil {
		return err
	}
	if err = anApp.Segment.SetModality(s.Modality); err != nil {
		return err
	}
	anApp.Segment.SetClasses(s.Classes)
	group, err := anApp.Segment.Segment(ctx, id)
	if err != nil {
		return err
	}
	for _, segment := range group.Segments {
		fmt.Printf("%d\t%v\n", segment.Value, segment.Name)
	}
	return nil
}

func (g *GenerateCommand) params() (generate.Params, error) {
	ret := generate.DefaultParams()
	ret.XY, ret.Z, ret.AnatomyList = g.XY, g.Z, g.Anatomy
	switch len(g.Spacing) {
	case 0:
	case 1:
		ret.Spacing = [3]float64{g.Spacing[0], g.Spacing[0], g.Spacing[0]}
	case 3:
		copy(ret.Spacing[:], g.Spacing)
	default:
		return ret, fmt.Errorf("expected one or three spacing values, but had %d", len(g.Spacing))
	}
	return ret, ret.Validate()
}

func (g *GenerateCommand) Execute(_ []string) error {
	ctx := context.Background()
	params, err := g.params()
	if err != nil {
		return err
	}
	cfg, err := g.load(ctx, g.Output)
	if err != nil {
		return err
	}
	anApp, err := g.open(ctx, cfg)
	if err != nil {
		return err
	}
	defer anApp.Close()
	if err = anApp.Generate.SetParams(params); err != nil {
		return err
	}
	id, err := anApp.Generate.Generate(ctx)
	if err != nil {
		return err
	}
	if entry, ok := anApp.Viewer.Entry(id); ok {
		fmt.Println(entry.Name)
	}
	return nil
}

func (c *ChatCommand) Execute(_ []string) error {
	ctx := context.Background()
	cfg, err := c.load(ctx, "")
	if err != nil {
		return err
	}
	anApp, err := c.open(ctx, cfg)
	if err != nil {
		return err
	}
	defer anApp.Close()
	id, err := loadImage(ctx, anApp, c.Image)
	if err != nil {
		return err
	}
	if err = anApp.Chat.SetModel(c.Model); err != nil {
		return err
	}
	reply, err := anApp.Chat.Send(ctx, id, c.Slice, c.Prompt)
	if err != nil {
		return err
	}
	fmt.Println(reply.Content)
	return nil
}
