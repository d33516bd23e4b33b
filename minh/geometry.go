package minh

// Geometry describes the periodic 3-D spatial box a minh file's cells tile:
// a cube of side L divided into cells^3 cells, each padded by boundary on
// every side when read as a "boundary block" (spec §4.4).
type Geometry struct {
	L        float32
	Boundary float32
	Cells    int64
}

// CellWidth is the side length of one unpadded cell.
func (g Geometry) CellWidth() float32 {
	if g.Cells == 0 {
		return 0
	}

	return g.L / float32(g.Cells)
}

// BlockWidth is the side length of one boundary-padded block.
func (g Geometry) BlockWidth() float32 {
	return g.CellWidth() + 2*g.Boundary
}

// CellOrigin returns the (x, y, z) origin of cell index b in row-major
// order: x varies fastest, then y, then z.
func (g Geometry) CellOrigin(b int64) (x, y, z float32) {
	cells := g.Cells
	cw := g.CellWidth()

	ix := b % cells
	iy := (b / cells) % cells
	iz := b / (cells * cells)

	return float32(ix) * cw, float32(iy) * cw, float32(iz) * cw
}

// BlockOrigin returns the origin of the boundary-padded block for cell b:
// the cell origin shifted by -boundary on each axis, with any resulting
// negative coordinate wrapped into [0, L) (periodic box).
func (g Geometry) BlockOrigin(b int64) (x, y, z float32) {
	cx, cy, cz := g.CellOrigin(b)

	return wrap(cx-g.Boundary, g.L), wrap(cy-g.Boundary, g.L), wrap(cz-g.Boundary, g.L)
}

func wrap(v, l float32) float32 {
	if v < 0 {
		return v + l
	}

	return v
}

// IsBoundary reports whether this geometry describes a boundary-padded
// layout, i.e. whether cell count is nonzero.
func (g Geometry) IsBoundary() bool {
	return g.Cells > 0
}
