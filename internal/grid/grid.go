package grid

// Size is the fixed rectangular dimensions of a Grid.
type Size struct {
	X, Y int
}

// Grid is the fixed-size rectangular array of Tile backing a GameMap.
// The invariant is that exactly Size.X*Size.Y tiles are stored; reads
// outside those bounds return (Tile{}, false).
type Grid struct {
	size  Size
	tiles []Tile // row-major, index = y*size.X + x
}

// NewGrid builds a Grid of the given size, every tile defaulting to Void.
func NewGrid(size Size) *Grid {
	return &Grid{
		size:  size,
		tiles: make([]Tile, size.X*size.Y),
	}
}

func (g *Grid) Size() Size { return g.size }

func (g *Grid) inBounds(p Position) bool {
	return p.X >= 0 && p.X < g.size.X && p.Y >= 0 && p.Y < g.size.Y
}

// Get returns the tile at p and whether p is in bounds. Out-of-bounds
// reads return the zero Tile (kind Void) and false, matching "out of
// bounds reads return absent" from §3.
func (g *Grid) Get(p Position) (Tile, bool) {
	if !g.inBounds(p) {
		return Tile{}, false
	}
	return g.tiles[p.Y*g.size.X+p.X], true
}

// Set writes the tile at p. Panics if p is out of bounds - callers
// populate a Grid only during map construction, where bounds are
// already validated.
func (g *Grid) Set(p Position, t Tile) {
	if !g.inBounds(p) {
		panic("grid.Set: position out of bounds")
	}
	g.tiles[p.Y*g.size.X+p.X] = t
}

// InBounds reports whether p addresses a real tile of this grid.
func (g *Grid) InBounds(p Position) bool {
	return g.inBounds(p)
}
