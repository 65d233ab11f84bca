package payload

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	vtkImageData         = "vtkImageData"
	vtkDataSetAttributes = "vtkDataSetAttributes"
	vtkDataArray         = "vtkDataArray"
)

// Image is a volumetric image in the vtk.js image data layout: x varies fastest, then y, then z.
type Image struct {
	Dimensions         [3]int     `cbor:"1,keyasint"`
	Spacing            [3]float64 `cbor:"2,keyasint"`
	Origin             [3]float64 `cbor:"3,keyasint"`
	Direction          [9]float64 `cbor:"4,keyasint"`
	Values             []float64  `cbor:"5,keyasint"`
	NumberOfComponents int        `cbor:"6,keyasint"`
	DataType           string     `cbor:"7,keyasint"`
}

// Identity is the default direction cosine matrix
var Identity = [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}

// NewVolume creates a zero filled single component image with identity direction and unit spacing
func NewVolume(dimensions [3]int, dataType string) *Image {
	return &Image{
		Dimensions:         dimensions,
		Spacing:            [3]float64{1, 1, 1},
		Direction:          Identity,
		Values:             make([]float64, dimensions[0]*dimensions[1]*dimensions[2]),
		NumberOfComponents: 1,
		DataType:           dataType,
	}
}

// Voxels returns number of voxels
func (i *Image) Voxels() int {
	return i.Dimensions[0] * i.Dimensions[1] * i.Dimensions[2]
}

// Components returns number of scalar components, at least 1
func (i *Image) Components() int {
	if i.NumberOfComponents < 1 {
		return 1
	}
	return i.NumberOfComponents
}

// Index returns the flat voxel index of (x, y, z)
func (i *Image) Index(x, y, z int) int {
	return x + i.Dimensions[0]*(y+i.Dimensions[1]*z)
}

// At returns the first component at (x, y, z)
func (i *Image) At(x, y, z int) float64 {
	return i.Values[i.Index(x, y, z)*i.Components()]
}

// Set sets the first component at (x, y, z)
func (i *Image) Set(x, y, z int, value float64) {
	i.Values[i.Index(x, y, z)*i.Components()] = value
}

// HasDirection returns true when a non zero direction matrix is set
func (i *Image) HasDirection() bool {
	return i.Direction != [9]float64{}
}

// DirectionOrIdentity returns direction matrix, identity when unset
func (i *Image) DirectionOrIdentity() [9]float64 {
	if i.HasDirection() {
		return i.Direction
	}
	return Identity
}

// SameGeometry returns true if both images share grid dimensions, spacing, origin and direction.
func (i *Image) SameGeometry(other *Image) bool {
	return i.Dimensions == other.Dimensions &&
		i.Spacing == other.Spacing &&
		i.Origin == other.Origin &&
		i.DirectionOrIdentity() == other.DirectionOrIdentity()
}

// Validate checks the scalar array matches the grid
func (i *Image) Validate() error {
	for _, d := range i.Dimensions {
		if d <= 0 {
			return fmt.Errorf("invalid image dimensions: %v", i.Dimensions)
		}
	}
	if expect := i.Voxels() * i.Components(); len(i.Values) != expect {
		return fmt.Errorf("invalid image scalars: expected %d values, but had %d", expect, len(i.Values))
	}
	return nil
}

type (
	vtkImage struct {
		VtkClass   string        `json:"vtkClass"`
		Dimensions [3]int        `json:"dimensions"`
		Spacing    [3]float64    `json:"spacing"`
		Origin     [3]float64    `json:"origin"`
		Direction  []float64     `json:"direction,omitempty"`
		PointData  vtkAttributes `json:"pointData"`
	}

	vtkAttributes struct {
		VtkClass string     `json:"vtkClass"`
		Arrays   []vtkArray `json:"arrays"`
	}

	vtkArray struct {
		Data vtkScalars `json:"data"`
	}

	vtkScalars struct {
		VtkClass           string    `json:"vtkClass"`
		Name               string    `json:"name"`
		NumberOfComponents int       `json:"numberOfComponents"`
		Size               int       `json:"size"`
		DataType           string    `json:"dataType"`
		Values             []float64 `json:"values"`
	}
)

// MarshalJSON encodes the image as vtk.js image data
func (i *Image) MarshalJSON() ([]byte, error) {
	direction := i.DirectionOrIdentity()
	return json.Marshal(&vtkImage{
		VtkClass:   vtkImageData,
		Dimensions: i.Dimensions,
		Spacing:    i.Spacing,
		Origin:     i.Origin,
		Direction:  direction[:],
		PointData: vtkAttributes{
			VtkClass: vtkDataSetAttributes,
			Arrays: []vtkArray{{Data: vtkScalars{
				VtkClass:           vtkDataArray,
				Name:               "Scalars",
				NumberOfComponents: i.Components(),
				Size:               len(i.Values),
				DataType:           i.DataType,
				Values:             i.Values,
			}}},
		},
	})
}

// UnmarshalJSON decodes vtk.js image data
func (i *Image) UnmarshalJSON(data []byte) error {
	aux := &vtkImage{}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	if aux.VtkClass != "" && aux.VtkClass != vtkImageData {
		return fmt.Errorf("unsupported vtkClass: %v", aux.VtkClass)
	}
	if len(aux.PointData.Arrays) == 0 {
		return errors.New("image has no point data scalars")
	}
	scalars := aux.PointData.Arrays[0].Data
	i.Dimensions = aux.Dimensions
	i.Spacing = aux.Spacing
	i.Origin = aux.Origin
	i.Direction = [9]float64{}
	if len(aux.Direction) == 9 {
		copy(i.Direction[:], aux.Direction)
	}
	i.Values = scalars.Values
	i.NumberOfComponents = scalars.NumberOfComponents
	i.DataType = scalars.DataType
	return nil
}
