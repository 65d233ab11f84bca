package viewer

import (
	"context"
	"errors"

	"github.com/viant/volinsight/labelmap"
	"github.com/viant/volinsight/payload"
)

// ErrImageNotFound is returned when an image id is unknown to the viewer
var ErrImageNotFound = errors.New("viewer: image not found")

// Viewer ingests results produced by feature panels
type Viewer interface {
	// ImageData returns the loaded volume for id
	ImageData(ctx context.Context, id string) (*payload.Image, error)
	// HasImage returns true if id is loaded
	HasImage(id string) bool
	// AddImage registers a volume under name and returns its id
	AddImage(ctx context.Context, name string, image *payload.Image) (string, error)
	// ImportFile hands an encoded volume file to the viewer's loading pipeline and returns the image id
	ImportFile(ctx context.Context, name string, data []byte) (string, error)
	// Select makes id the active dataset
	Select(ctx context.Context, id string) error
	// SegmentGroupNames returns names of segment groups attached to parentID
	SegmentGroupNames(parentID string) []string
	// AddSegmentGroup attaches group to its parent image and returns the group id
	AddSegmentGroup(ctx context.Context, group *labelmap.Group) (string, error)
}
