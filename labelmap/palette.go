package labelmap

// Palette is a fixed categorical colour list used round robin
type Palette [][4]uint8

// Tab10 is the ten colour categorical palette
var Tab10 = Palette{
	{31, 119, 180, 255},
	{255, 127, 14, 255},
	{44, 160, 44, 255},
	{214, 39, 40, 255},
	{148, 103, 189, 255},
	{140, 86, 75, 255},
	{227, 119, 194, 255},
	{127, 127, 127, 255},
	{188, 189, 34, 255},
	{23, 190, 207, 255},
}

// Color returns the colour for the index-th segment
func (p Palette) Color(index int) [4]uint8 {
	if len(p) == 0 {
		return [4]uint8{255, 255, 255, 255}
	}
	return p[index%len(p)]
}
