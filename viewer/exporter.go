package viewer

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"github.com/viant/volinsight/labelmap"
	"github.com/viant/volinsight/payload"
	"gopkg.in/yaml.v3"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Exporter writes viewer content to any afs supported location
type Exporter struct {
	fs      afs.Service
	baseURL string
}

// FileName returns a filesystem safe name
func FileName(name string) string {
	return strings.Trim(unsafeChars.ReplaceAllString(name, "_"), "_")
}

// ExportImage writes image as gzip NRRD and returns its URL
func (e *Exporter) ExportImage(ctx context.Context, name string, image *payload.Image) (string, error) {
	data, err := payload.EncodeNRRD(image, true)
	if err != nil {
		return "", err
	}
	return e.upload(ctx, FileName(name)+".nrrd", data)
}

// ExportFile writes an encoded volume as is
func (e *Exporter) ExportFile(ctx context.Context, name string, data []byte) (string, error) {
	return e.upload(ctx, FileName(name), data)
}

// ExportSegmentGroup writes the label map plus a YAML segment table next to it
func (e *Exporter) ExportSegmentGroup(ctx context.Context, group *labelmap.Group) (string, error) {
	location, err := e.ExportImage(ctx, group.Name, group.Labelmap)
	if err != nil {
		return "", err
	}
	table, err := yaml.Marshal(map[string]interface{}{
		"name":     group.Name,
		"parentId": group.ParentID,
		"segments": group.Segments,
	})
	if err != nil {
		return "", err
	}
	if _, err = e.upload(ctx, FileName(group.Name)+".yaml", table); err != nil {
		return "", err
	}
	return location, nil
}

// Export writes the memory viewer entry or group identified by an event
func (e *Exporter) Export(ctx context.Context, event Event) (string, error) {
	switch {
	case event.Group != nil:
		return e.ExportSegmentGroup(ctx, event.Group)
	case event.Entry != nil && event.Entry.Image != nil:
		return e.ExportImage(ctx, event.Entry.Name, event.Entry.Image)
	case event.Entry != nil:
		return e.ExportFile(ctx, event.Entry.Name, event.Entry.File)
	}
	return "", nil
}

func (e *Exporter) upload(ctx context.Context, name string, data []byte) (string, error) {
	location := url.Join(e.baseURL, name)
	if err := e.fs.Upload(ctx, location, 0644, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("failed to write %v: %w", location, err)
	}
	return location, nil
}

// NewExporter creates an exporter writing under baseURL
func NewExporter(baseURL string) *Exporter {
	return &Exporter{fs: afs.New(), baseURL: baseURL}
}
