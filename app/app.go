package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"

	"github.com/gologme/log"
	"github.com/viant/volinsight"
	"github.com/viant/volinsight/cache"
	"github.com/viant/volinsight/cache/sqlstore"
	"github.com/viant/volinsight/client"
	"github.com/viant/volinsight/config"
	"github.com/viant/volinsight/panel"
	"github.com/viant/volinsight/panel/chat"
	"github.com/viant/volinsight/panel/generate"
	"github.com/viant/volinsight/panel/segment"
	"github.com/viant/volinsight/payload"
	"github.com/viant/volinsight/viewer"
)

const (
	segmentRole  = "segment"
	generateRole = "generate"
	chatRole     = "chat"
)

var tableChars = regexp.MustCompile(`[^a-z0-9_]+`)

// App connects the viewer and feature panels to their backends
type App struct {
	Viewer   *viewer.Memory
	Alerts   *panel.Alerts
	Segment  *segment.Panel
	Generate *generate.Panel
	Chat     *chat.Panel

	config   *config.Config
	logger   *log.Logger
	dialers  map[string]client.Dialer
	handler  *client.Handler
	clients  map[string]*client.Client
	exporter *viewer.Exporter
}

// Client returns the backend client of a role: "segment", "generate" or "chat"
func (a *App) Client(name string) (*client.Client, bool) {
	ret, ok := a.clients[name]
	return ret, ok
}

// Connect connects every configured backend
func (a *App) Connect(ctx context.Context) error {
	var errs []error
	for _, name := range []string{segmentRole, generateRole, chatRole} {
		if cli, ok := a.clients[name]; ok {
			if err := cli.Connect(ctx); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Close disconnects all backends
func (a *App) Close() error {
	var errs []error
	for _, cli := range a.clients {
		if err := cli.Disconnect(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (a *App) newClient(role string, options *volinsight.ClientOptions) (*client.Client, error) {
	if dial, ok := a.dialers[role]; ok {
		return client.New(dial, client.WithName(options.Name), client.WithHandler(a.handler), client.WithLogger(a.logger)), nil
	}
	if options.Transport.Type == "" {
		return nil, nil
	}
	return volinsight.NewClient(a.handler, options, a.logger)
}

func (a *App) connection(role string, options *volinsight.ClientOptions) (panel.Connection, error) {
	cli, err := a.newClient(role, options)
	if err != nil || cli == nil {
		return nil, err
	}
	a.clients[role] = cli
	return cli, nil
}

func (a *App) stores() (panel.Stores, error) {
	if a.config.StoreDSN == "" {
		return panel.MemoryStores, nil
	}
	db, err := sqlstore.Open(a.config.StoreDSN)
	if err != nil {
		return nil, err
	}
	return func(name string) (cache.Store[*payload.Result], error) {
		return sqlstore.New[*payload.Result](db, "result_"+tableChars.ReplaceAllString(name, "_"))
	}, nil
}

func (a *App) export(event viewer.Event) {
	if event.Kind == viewer.EventSelected {
		return
	}
	location, err := a.exporter.Export(context.Background(), event)
	if err != nil {
		a.logger.Errorf("failed to export %v: %v", event.Name, err)
		return
	}
	a.logger.Infof("exported %v to %v", event.Name, location)
}

// New creates an app from cfg; backends without a transport stay unavailable and their panels report not connected.
func New(cfg *config.Config, options ...Option) (*App, error) {
	cfg.Init()
	ret := &App{
		Viewer:  viewer.NewMemory(),
		config:  cfg,
		handler: client.NewHandler(),
		clients: map[string]*client.Client{},
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.logger == nil {
		ret.logger = log.New(io.Discard, "", log.Flags())
	}
	ret.Alerts = panel.NewAlerts(ret.logger)
	viewer.BindImageSource(ret.handler, ret.Viewer)
	if cfg.ExportURL != "" {
		ret.exporter = viewer.NewExporter(cfg.ExportURL)
		ret.Viewer.OnEvent(ret.export)
	}
	stores, err := ret.stores()
	if err != nil {
		return nil, err
	}
	panelOptions := []panel.Option{panel.WithLogger(ret.logger), panel.WithAlerter(ret.Alerts)}
	if wait := cfg.ResultWaitDuration(); wait > 0 {
		panelOptions = append(panelOptions, panel.WithResultWait(wait))
	}

	conn, err := ret.connection(segmentRole, cfg.Segment)
	if err != nil {
		return nil, fmt.Errorf("segment backend: %w", err)
	}
	if ret.Segment, err = segment.New(conn, ret.handler, ret.Viewer, stores, panelOptions...); err != nil {
		return nil, err
	}
	if conn, err = ret.connection(generateRole, cfg.Generate); err != nil {
		return nil, fmt.Errorf("generate backend: %w", err)
	}
	if ret.Generate, err = generate.New(conn, ret.handler, ret.Viewer, stores, panelOptions...); err != nil {
		return nil, err
	}
	if conn, err = ret.connection(chatRole, cfg.Chat); err != nil {
		return nil, fmt.Errorf("chat backend: %w", err)
	}
	if ret.Chat, err = chat.New(conn, ret.handler, ret.Viewer, stores, panelOptions...); err != nil {
		return nil, err
	}
	return ret, nil
}
