package segment

import (
	"github.com/viant/volinsight/labelmap"
	"github.com/viant/volinsight/schema"
)

// Model keys
const (
	ModelVista3d      = "vista3d"
	ModelNVSegmentCT  = "nv-segment-ct"
	ModelNVSegmentMRI = "nv-segment-mri"
)

// Model describes a segmentation backend method and where its result lands
type Model struct {
	Key    string
	Label  string
	Method string
	Store  string
	Setter string
	Names  labelmap.Names
	// Classes tells whether the method takes a label prompt argument.
	Classes bool
	// Modality tells whether the method takes a modality argument.
	Modality bool
}

// Models lists supported segmentation models
var Models = []*Model{
	{Key: ModelVista3d, Label: "CT", Method: schema.MethodSegmentWithMONAI, Store: schema.StoreVista3d, Setter: schema.SetVista3dResult, Names: labelmap.VISTA3D},
	{Key: ModelNVSegmentCT, Label: "CT", Method: schema.MethodSegmentWithNVSegmentCT, Store: schema.StoreNVSegment, Setter: schema.SetNVSegmentResult, Names: labelmap.VISTA3D, Classes: true},
	{Key: ModelNVSegmentMRI, Label: "MRI", Method: schema.MethodSegmentWithNVSegmentMRI, Store: schema.StoreNVSegment, Setter: schema.SetNVSegmentResult, Names: labelmap.VISTA3D, Classes: true, Modality: true},
}

// Lookup returns model by key
func Lookup(key string) (*Model, bool) {
	for _, candidate := range Models {
		if candidate.Key == key {
			return candidate, true
		}
	}
	return nil, false
}

// Args builds call arguments for imageID
func (m *Model) Args(imageID string, classes []int, modality string) []interface{} {
	args := []interface{}{imageID}
	if m.Classes || m.Modality {
		if classes == nil {
			classes = []int{}
		}
		args = append(args, classes)
	}
	if m.Modality {
		args = append(args, modality)
	}
	return args
}
