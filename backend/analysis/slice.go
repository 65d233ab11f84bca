package analysis

import (
	"fmt"

	"github.com/viant/volinsight/payload"
)

// Slice extracts the axial plane at index; single plane images are returned as is.
func Slice(image *payload.Image, index int) (*payload.Image, error) {
	if err := image.Validate(); err != nil {
		return nil, err
	}
	depth := image.Dimensions[2]
	if depth == 1 {
		return image, nil
	}
	if index < 0 || index >= depth {
		return nil, fmt.Errorf("slice %d out of range [0, %d)", index, depth)
	}
	direction := image.DirectionOrIdentity()
	ret := &payload.Image{
		Dimensions:         [3]int{image.Dimensions[0], image.Dimensions[1], 1},
		Spacing:            image.Spacing,
		Origin:             image.Origin,
		Direction:          direction,
		NumberOfComponents: image.NumberOfComponents,
		DataType:           image.DataType,
	}
	for k := 0; k < 3; k++ {
		ret.Origin[k] += direction[6+k] * image.Spacing[2] * float64(index)
	}
	plane := image.Dimensions[0] * image.Dimensions[1] * image.Components()
	ret.Values = append([]float64{}, image.Values[index*plane:(index+1)*plane]...)
	return ret, nil
}
