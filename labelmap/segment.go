package labelmap

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/viant/volinsight/payload"
)

// Segment describes one label value of a label map
type Segment struct {
	Value int      `json:"value"`
	Name  string   `json:"name"`
	Color [4]uint8 `json:"color"`
}

// Group is a named label map attached to a source image
type Group struct {
	Name     string         `json:"name"`
	ParentID string         `json:"parentId"`
	Labelmap *payload.Image `json:"labelmap"`
	Segments []Segment      `json:"segments"`
}

// Values returns distinct non zero label values in ascending order
func Values(labelmap *payload.Image) []int {
	seen := map[int]bool{}
	for i := 0; i < labelmap.Voxels(); i++ {
		if value := int(labelmap.Values[i*labelmap.Components()]); value != 0 {
			seen[value] = true
		}
	}
	ret := make([]int, 0, len(seen))
	for value := range seen {
		ret = append(ret, value)
	}
	sort.Ints(ret)
	return ret
}

// Segments names each distinct non zero value with names and colours it round robin from palette.
func Segments(labelmap *payload.Image, names Names, palette Palette) []Segment {
	values := Values(labelmap)
	ret := make([]Segment, len(values))
	for i, value := range values {
		ret[i] = Segment{Value: value, Name: names.Name(value), Color: palette.Color(i)}
	}
	return ret
}

// UniqueName returns "<base> (n)" with n the smallest positive integer not already taken.
func UniqueName(base string, existing []string) string {
	taken := make(map[string]bool, len(existing))
	for _, name := range existing {
		taken[name] = true
	}
	for n := 1; ; n++ {
		candidate := base + " (" + strconv.Itoa(n) + ")"
		if !taken[candidate] {
			return candidate
		}
	}
}

// GroupBase returns the base segment group name for a model label, e.g. "Segment Group for CT".
func GroupBase(label string) string {
	return fmt.Sprintf("Segment Group for %v", label)
}
