package grid

// Walls is a bitset of the four cardinal sides of a tile that carry a
// wall segment.
type Walls uint8

const (
	WallUp Walls = 1 << iota
	WallRight
	WallDown
	WallLeft
)

func wallBit(d Direction) Walls {
	switch d {
	case Up:
		return WallUp
	case Right:
		return WallRight
	case Down:
		return WallDown
	case Left:
		return WallLeft
	default:
		panic("invalid direction")
	}
}

// Has reports whether the wall set carries a wall on side d.
func (w Walls) Has(d Direction) bool {
	return w&wallBit(d) != 0
}

// With returns the wall set with side d additionally set.
func (w Walls) With(d Direction) Walls {
	return w | wallBit(d)
}

// TileKind discriminates the tile type taxonomy of §3.
type TileKind uint8

const (
	Void TileKind = iota
	Floor
	Belt
	PushPanel
	Rotation
)

// Tile is one cell of the Grid. Only the fields relevant to its Kind
// are meaningful; e.g. BeltFast/BeltDirection are unused unless
// Kind == Belt.
type Tile struct {
	Kind  TileKind
	Walls Walls

	// Belt
	BeltFast      bool
	BeltDirection Direction

	// PushPanel: active on register i (1-based) iff (i mod Divisor) == Remainder
	PanelDirection Direction
	PanelDivisor   int
	PanelRemainder int

	// Rotation
	RotationClockwise bool
}

func FloorTile() Tile { return Tile{Kind: Floor} }

func VoidTile() Tile { return Tile{Kind: Void} }

func BeltTile(fast bool, dir Direction) Tile {
	return Tile{Kind: Belt, BeltFast: fast, BeltDirection: dir}
}

func PushPanelTile(dir Direction, divisor, remainder int) Tile {
	return Tile{Kind: PushPanel, PanelDirection: dir, PanelDivisor: divisor, PanelRemainder: remainder}
}

func RotationTile(clockwise bool) Tile {
	return Tile{Kind: Rotation, RotationClockwise: clockwise}
}

// ActiveOnRegister reports whether a PushPanel tile is active during
// the given zero-based register index (§3: "active on register i
// (1-based) iff (i mod divisor)=remainder").
func (t Tile) ActiveOnRegister(registerIndex int) bool {
	if t.Kind != PushPanel {
		return false
	}
	oneBased := registerIndex + 1
	if t.PanelDivisor == 0 {
		return false
	}
	return oneBased%t.PanelDivisor == t.PanelRemainder
}
