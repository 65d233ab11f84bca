package generate

import (
	"fmt"

	"github.com/viant/volinsight/schema"
)

// Supported output resolutions
var (
	XYResolutions = []int{256, 384, 512}
	ZResolutions  = []int{128, 256, 384, 512, 640, 768}
)

// Spacing bounds in millimetres
const (
	MinSpacing = 0.5
	MaxSpacing = 5.0
)

// LockedXY is the XY resolution from which spacing is locked to LockedSpacing
const LockedXY = 512

// LockedSpacing is the spacing applied for high XY resolutions
var LockedSpacing = [3]float64{1, 1, 1}

// Params holds generation settings as selected by the user
type Params struct {
	XY          int
	Z           int
	Spacing     [3]float64
	AnatomyList []string
}

// Validate checks resolution and spacing ranges
func (p *Params) Validate() error {
	if !contains(XYResolutions, p.XY) {
		return fmt.Errorf("unsupported XY resolution: %v", p.XY)
	}
	if !contains(ZResolutions, p.Z) {
		return fmt.Errorf("unsupported Z resolution: %v", p.Z)
	}
	for _, spacing := range p.Spacing {
		if spacing < MinSpacing || spacing > MaxSpacing {
			return fmt.Errorf("spacing %v out of range [%v, %v]", spacing, MinSpacing, MaxSpacing)
		}
	}
	return nil
}

// SpacingLocked returns true when the spacing sliders are overridden
func (p *Params) SpacingLocked() bool {
	return p.XY >= LockedXY
}

// Wire returns backend parameters
func (p *Params) Wire() *schema.GenerateParams {
	ret := &schema.GenerateParams{
		AnatomyList: append([]string{}, p.AnatomyList...),
		OutputSize:  [3]int{p.XY, p.XY, p.Z},
		Spacing:     p.Spacing,
	}
	if p.SpacingLocked() {
		ret.Spacing = LockedSpacing
	}
	return ret
}

// DefaultParams returns initial generation settings
func DefaultParams() Params {
	return Params{XY: 256, Z: 256, Spacing: [3]float64{1.5, 1.5, 1.5}}
}

func contains(values []int, value int) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}
