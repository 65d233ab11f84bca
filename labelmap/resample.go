package labelmap

import (
	"errors"
	"math"

	"github.com/viant/volinsight/payload"
)

// ErrSingular is returned when an image's index to world transform cannot be inverted
var ErrSingular = errors.New("labelmap: singular image transform")

type affine struct {
	origin [3]float64
	m      [3][3]float64
}

// indexToWorld builds world = origin + direction * diag(spacing) * index; direction columns are the axis vectors.
func indexToWorld(image *payload.Image) affine {
	direction := image.DirectionOrIdentity()
	ret := affine{origin: image.Origin}
	for axis := 0; axis < 3; axis++ {
		for k := 0; k < 3; k++ {
			ret.m[k][axis] = direction[3*axis+k] * image.Spacing[axis]
		}
	}
	return ret
}

func (a affine) inverse() (affine, error) {
	m := a.m
	det := m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
	if math.Abs(det) < 1e-12 {
		return affine{}, ErrSingular
	}
	var inv [3][3]float64
	inv[0][0] = (m[1][1]*m[2][2] - m[1][2]*m[2][1]) / det
	inv[0][1] = (m[0][2]*m[2][1] - m[0][1]*m[2][2]) / det
	inv[0][2] = (m[0][1]*m[1][2] - m[0][2]*m[1][1]) / det
	inv[1][0] = (m[1][2]*m[2][0] - m[1][0]*m[2][2]) / det
	inv[1][1] = (m[0][0]*m[2][2] - m[0][2]*m[2][0]) / det
	inv[1][2] = (m[0][2]*m[1][0] - m[0][0]*m[1][2]) / det
	inv[2][0] = (m[1][0]*m[2][1] - m[1][1]*m[2][0]) / det
	inv[2][1] = (m[0][1]*m[2][0] - m[0][0]*m[2][1]) / det
	inv[2][2] = (m[0][0]*m[1][1] - m[0][1]*m[1][0]) / det
	ret := affine{m: inv}
	for i := 0; i < 3; i++ {
		ret.origin[i] = -(inv[i][0]*a.origin[0] + inv[i][1]*a.origin[1] + inv[i][2]*a.origin[2])
	}
	return ret, nil
}

func (a affine) apply(p [3]float64) [3]float64 {
	var ret [3]float64
	for i := 0; i < 3; i++ {
		ret[i] = a.origin[i] + a.m[i][0]*p[0] + a.m[i][1]*p[1] + a.m[i][2]*p[2]
	}
	return ret
}

// Resample maps labels onto the reference grid with nearest neighbour lookup; reference voxels outside the
// label volume become background. The result carries the reference geometry and integral label values.
func Resample(labels, reference *payload.Image) (*payload.Image, error) {
	if err := labels.Validate(); err != nil {
		return nil, err
	}
	ret := &payload.Image{
		Dimensions:         reference.Dimensions,
		Spacing:            reference.Spacing,
		Origin:             reference.Origin,
		Direction:          reference.DirectionOrIdentity(),
		NumberOfComponents: 1,
		Values:             make([]float64, reference.Voxels()),
	}
	if labels.SameGeometry(reference) {
		for i := range ret.Values {
			ret.Values[i] = math.Round(labels.Values[i*labels.Components()])
		}
		ret.DataType = dataType(ret.Values)
		return ret, nil
	}
	toWorld := indexToWorld(reference)
	toLabel, err := indexToWorld(labels).inverse()
	if err != nil {
		return nil, err
	}
	dims := labels.Dimensions
	for z := 0; z < reference.Dimensions[2]; z++ {
		for y := 0; y < reference.Dimensions[1]; y++ {
			for x := 0; x < reference.Dimensions[0]; x++ {
				index := toLabel.apply(toWorld.apply([3]float64{float64(x), float64(y), float64(z)}))
				i, j, k := int(math.Round(index[0])), int(math.Round(index[1])), int(math.Round(index[2]))
				if i < 0 || j < 0 || k < 0 || i >= dims[0] || j >= dims[1] || k >= dims[2] {
					continue
				}
				ret.Values[ret.Index(x, y, z)] = math.Round(labels.At(i, j, k))
			}
		}
	}
	ret.DataType = dataType(ret.Values)
	return ret, nil
}

func dataType(values []float64) string {
	maxValue := 0.0
	for _, v := range values {
		if v < 0 {
			return "Int16Array"
		}
		if v > maxValue {
			maxValue = v
		}
	}
	if maxValue <= math.MaxUint8 {
		return "Uint8Array"
	}
	return "Uint16Array"
}
