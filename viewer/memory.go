package viewer

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/viant/volinsight/internal/collection"
	"github.com/viant/volinsight/labelmap"
	"github.com/viant/volinsight/payload"
)

// Entry is a loaded image
type Entry struct {
	ID    string
	Name  string
	Image *payload.Image
	// File holds the encoded source when the volume could not be decoded locally.
	File []byte
}

// Memory is an in-process viewer keeping images and segment groups in memory
type Memory struct {
	images   *collection.SyncMap[string, *Entry]
	groups   *collection.SyncMap[string, *labelmap.Group]
	mux      sync.RWMutex
	selected string
	listener func(event Event)
}

// Event describes a viewer change
type Event struct {
	Kind  string
	ID    string
	Name  string
	Entry *Entry
	Group *labelmap.Group
}

const (
	EventImageAdded        = "imageAdded"
	EventSegmentGroupAdded = "segmentGroupAdded"
	EventSelected          = "selected"
)

// OnEvent registers a change listener
func (m *Memory) OnEvent(listener func(event Event)) {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.listener = listener
}

func (m *Memory) notify(event Event) {
	m.mux.RLock()
	listener := m.listener
	m.mux.RUnlock()
	if listener != nil {
		listener(event)
	}
}

func (m *Memory) ImageData(_ context.Context, id string) (*payload.Image, error) {
	entry, ok := m.images.Get(id)
	if !ok || entry.Image == nil {
		return nil, fmt.Errorf("%w: %v", ErrImageNotFound, id)
	}
	return entry.Image, nil
}

func (m *Memory) HasImage(id string) bool {
	_, ok := m.images.Get(id)
	return ok
}

// Entry returns loaded image entry
func (m *Memory) Entry(id string) (*Entry, bool) {
	return m.images.Get(id)
}

// Images returns loaded images in load order
func (m *Memory) Images() []*Entry {
	var ret []*Entry
	m.images.Range(func(_ string, entry *Entry) bool {
		ret = append(ret, entry)
		return true
	})
	return ret
}

// Load registers image under a caller supplied id
func (m *Memory) Load(id, name string, image *payload.Image) {
	entry := &Entry{ID: id, Name: name, Image: image}
	m.images.Put(id, entry)
	m.notify(Event{Kind: EventImageAdded, ID: id, Name: name, Entry: entry})
}

func (m *Memory) AddImage(_ context.Context, name string, image *payload.Image) (string, error) {
	if err := image.Validate(); err != nil {
		return "", err
	}
	id := uuid.NewString()
	m.Load(id, name, image)
	return id, nil
}

func (m *Memory) ImportFile(_ context.Context, name string, data []byte) (string, error) {
	id := uuid.NewString()
	entry := &Entry{ID: id, Name: name}
	if image, err := payload.DecodeNRRD(data); err == nil {
		entry.Image = image
	} else {
		entry.File = data
	}
	m.images.Put(id, entry)
	m.notify(Event{Kind: EventImageAdded, ID: id, Name: name, Entry: entry})
	return id, nil
}

func (m *Memory) Select(_ context.Context, id string) error {
	if !m.HasImage(id) {
		return fmt.Errorf("%w: %v", ErrImageNotFound, id)
	}
	m.mux.Lock()
	m.selected = id
	m.mux.Unlock()
	m.notify(Event{Kind: EventSelected, ID: id})
	return nil
}

// Selected returns the active image id
func (m *Memory) Selected() string {
	m.mux.RLock()
	defer m.mux.RUnlock()
	return m.selected
}

func (m *Memory) SegmentGroupNames(parentID string) []string {
	var ret []string
	m.groups.Range(func(_ string, group *labelmap.Group) bool {
		if group.ParentID == parentID {
			ret = append(ret, group.Name)
		}
		return true
	})
	return ret
}

// SegmentGroups returns groups attached to parentID
func (m *Memory) SegmentGroups(parentID string) []*labelmap.Group {
	var ret []*labelmap.Group
	m.groups.Range(func(_ string, group *labelmap.Group) bool {
		if group.ParentID == parentID {
			ret = append(ret, group)
		}
		return true
	})
	return ret
}

func (m *Memory) AddSegmentGroup(_ context.Context, group *labelmap.Group) (string, error) {
	if !m.HasImage(group.ParentID) {
		return "", fmt.Errorf("%w: %v", ErrImageNotFound, group.ParentID)
	}
	for _, name := range m.SegmentGroupNames(group.ParentID) {
		if name == group.Name {
			return "", fmt.Errorf("viewer: segment group %q already exists", group.Name)
		}
	}
	id := uuid.NewString()
	m.groups.Put(id, group)
	m.notify(Event{Kind: EventSegmentGroupAdded, ID: id, Name: group.Name, Group: group})
	return id, nil
}

// NewMemory creates an empty viewer
func NewMemory() *Memory {
	return &Memory{
		images: collection.NewSyncMap[string, *Entry](),
		groups: collection.NewSyncMap[string, *labelmap.Group](),
	}
}

var _ Viewer = (*Memory)(nil)
