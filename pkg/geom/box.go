package geom

// Box is an axis-aligned bounding box.
type Box struct {
	MinX, MinY, MaxX, MaxY float64
}

// Union returns the smallest box containing both b and o.
func (b Box) Union(o Box) Box {
	if o.MinX < b.MinX {
		b.MinX = o.MinX
	}
	if o.MinY < b.MinY {
		b.MinY = o.MinY
	}
	if o.MaxX > b.MaxX {
		b.MaxX = o.MaxX
	}
	if o.MaxY > b.MaxY {
		b.MaxY = o.MaxY
	}
	return b
}

// Overlaps reports whether two boxes intersect, boundary contact included.
func (b Box) Overlaps(o Box) bool {
	return b.MinX <= o.MaxX && o.MinX <= b.MaxX &&
		b.MinY <= o.MaxY && o.MinY <= b.MaxY
}

// size is the combined extent along both axes, the metric the pairwise
// intersection recursion terminates on.
func (b Box) size() float64 {
	return (b.MaxX - b.MinX) + (b.MaxY - b.MinY)
}

// BBoxOf returns the union bounding box of a set of curves.
func BBoxOf(curves []Cubic) Box {
	if len(curves) == 0 {
		return Box{}
	}
	box := curves[0].BBox()
	for _, c := range curves[1:] {
		box = box.Union(c.BBox())
	}
	return box
}
