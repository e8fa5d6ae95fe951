// Package mapfile parses the text map format of SPEC_FULL.md §6.1
// into a *grid.GameMap. Any unrecognized or missing field is a fatal
// parse error referencing the offending input - map parsing happens
// at game-creation time, never mid-simulation (spec.md §7 kind 3).
package mapfile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mvolfik/roborally-sub000/internal/grid"
)

// ParseError carries the line and a human-readable reason, so a 400
// response from the new-game endpoint can point at the offending
// input directly.
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("map parse error on line %d: %s", e.Line, e.Reason)
}

func parseErr(line int, format string, args ...any) error {
	return &ParseError{Line: line, Reason: fmt.Sprintf(format, args...)}
}

// Parse reads the whole map-file text and builds a *grid.GameMap.
func Parse(text string) (*grid.GameMap, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return nil, parseErr(1, "empty map file")
	}

	header, err := parseHeader(lines[0])
	if err != nil {
		return nil, err
	}

	if header.size.X <= 0 || header.size.Y <= 0 {
		return nil, parseErr(1, "Size must have both dimensions > 0, got %+v", header.size)
	}
	if len(lines)-1 < header.size.Y {
		return nil, parseErr(1, "Size declares %d rows but file has %d", header.size.Y, len(lines)-1)
	}

	g := grid.NewGrid(header.size)
	occupied := make(map[grid.Position]string)

	for y := 0; y < header.size.Y; y++ {
		lineNo := y + 2
		row := strings.Split(lines[y+1], ";")
		if len(row) != header.size.X {
			return nil, parseErr(lineNo, "expected %d tiles, got %d", header.size.X, len(row))
		}
		for x, spec := range row {
			tile, err := parseTileSpec(lineNo, spec)
			if err != nil {
				return nil, err
			}
			g.Set(grid.Position{X: x, Y: y}, tile)
		}
	}

	requireFloor := func(lineNo int, label string, pos grid.Position, needAllWalls bool) error {
		if !g.InBounds(pos) {
			return parseErr(lineNo, "%s position %v is out of bounds", label, pos)
		}
		tile, _ := g.Get(pos)
		if tile.Kind != grid.Floor {
			return parseErr(lineNo, "%s position %v must be a Floor tile", label, pos)
		}
		if needAllWalls && tile.Walls != (grid.WallUp|grid.WallRight|grid.WallDown|grid.WallLeft) {
			return parseErr(lineNo, "%s position %v must have walls on all four sides", label, pos)
		}
		if other, taken := occupied[pos]; taken {
			return parseErr(lineNo, "%s position %v overlaps %s", label, pos, other)
		}
		occupied[pos] = label
		return nil
	}

	if err := requireFloor(1, "Antenna", header.antenna, true); err != nil {
		return nil, err
	}
	if err := requireFloor(1, "Reboot", header.reboot.Position, false); err != nil {
		return nil, err
	}
	if facesOutward(header.size, header.reboot.Position, header.reboot.Direction) {
		return nil, parseErr(1, "Reboot at %v faces outward (%v)", header.reboot.Position, header.reboot.Direction)
	}

	for i, cp := range header.checkpoints {
		if err := requireFloor(1, fmt.Sprintf("Checkpoints[%d]", i), cp, false); err != nil {
			return nil, err
		}
	}
	for i, sp := range header.spawnPoints {
		label := fmt.Sprintf("Spawnpoints[%d]", i)
		if err := requireFloor(1, label, sp.Position, false); err != nil {
			return nil, err
		}
		if facesOutward(header.size, sp.Position, sp.Direction) {
			return nil, parseErr(1, "%s at %v faces outward (%v)", label, sp.Position, sp.Direction)
		}
	}
	for i, l := range header.lasers {
		label := fmt.Sprintf("Lasers[%d]", i)
		if !g.InBounds(l.Position) {
			return nil, parseErr(1, "%s position %v is out of bounds", label, l.Position)
		}
		tile, _ := g.Get(l.Position)
		if tile.Kind != grid.Floor {
			return nil, parseErr(1, "%s position %v must be a Floor tile", label, l.Position)
		}
		if other, taken := occupied[l.Position]; taken {
			return nil, parseErr(1, "%s position %v overlaps %s", label, l.Position, other)
		}
		occupied[l.Position] = label
	}

	return &grid.GameMap{
		Grid:        g,
		Antenna:     header.antenna,
		RebootToken: header.reboot,
		Checkpoints: header.checkpoints,
		SpawnPoints: header.spawnPoints,
		Lasers:      header.lasers,
	}, nil
}

func facesOutward(size grid.Size, pos grid.Position, dir grid.Direction) bool {
	target := dir.Apply(pos)
	return target.X < 0 || target.X >= size.X || target.Y < 0 || target.Y >= size.Y
}

type header struct {
	size        grid.Size
	antenna     grid.Position
	reboot      grid.RebootToken
	checkpoints []grid.Position
	spawnPoints []grid.SpawnPoint
	lasers      []grid.Laser
}

func parseHeader(line string) (*header, error) {
	fields := map[string]string{}
	for _, pair := range strings.Fields(line) {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			return nil, parseErr(1, "malformed key=value pair %q", pair)
		}
		switch kv[0] {
		case "Size", "Antenna", "Reboot", "Checkpoints", "Spawnpoints", "Lasers":
		default:
			return nil, parseErr(1, "unrecognized field %q", kv[0])
		}
		fields[kv[0]] = kv[1]
	}

	h := &header{}
	var err error

	sizeStr, ok := fields["Size"]
	if !ok {
		return nil, parseErr(1, "missing required field Size")
	}
	if h.size, err = parseXY(sizeStr); err != nil {
		return nil, parseErr(1, "Size: %v", err)
	}

	antennaStr, ok := fields["Antenna"]
	if !ok {
		return nil, parseErr(1, "missing required field Antenna")
	}
	antennaSize, err := parseXY(antennaStr)
	if err != nil {
		return nil, parseErr(1, "Antenna: %v", err)
	}
	h.antenna = grid.Position{X: antennaSize.X, Y: antennaSize.Y}

	rebootStr, ok := fields["Reboot"]
	if !ok {
		return nil, parseErr(1, "missing required field Reboot")
	}
	if h.reboot, err = parsePosDir(rebootStr); err != nil {
		return nil, parseErr(1, "Reboot: %v", err)
	}

	cpStr, ok := fields["Checkpoints"]
	if !ok {
		return nil, parseErr(1, "missing required field Checkpoints")
	}
	for _, part := range strings.Split(cpStr, ";") {
		if part == "" {
			continue
		}
		p, err := parseXY(part)
		if err != nil {
			return nil, parseErr(1, "Checkpoints: %v", err)
		}
		h.checkpoints = append(h.checkpoints, grid.Position{X: p.X, Y: p.Y})
	}
	if len(h.checkpoints) == 0 {
		return nil, parseErr(1, "Checkpoints must list at least one checkpoint")
	}

	spStr, ok := fields["Spawnpoints"]
	if !ok {
		return nil, parseErr(1, "missing required field Spawnpoints")
	}
	for _, part := range strings.Split(spStr, ";") {
		if part == "" {
			continue
		}
		pd, err := parsePosDir(part)
		if err != nil {
			return nil, parseErr(1, "Spawnpoints: %v", err)
		}
		h.spawnPoints = append(h.spawnPoints, grid.SpawnPoint{Position: pd.Position, Direction: pd.Direction})
	}
	if len(h.spawnPoints) == 0 {
		return nil, parseErr(1, "Spawnpoints must list at least one spawn point")
	}

	if lStr, ok := fields["Lasers"]; ok {
		for _, part := range strings.Split(lStr, ";") {
			if part == "" {
				continue
			}
			pd, err := parsePosDir(part)
			if err != nil {
				return nil, parseErr(1, "Lasers: %v", err)
			}
			h.lasers = append(h.lasers, grid.Laser{Position: pd.Position, Direction: pd.Direction})
		}
	} else {
		return nil, parseErr(1, "missing required field Lasers")
	}

	return h, nil
}

func parseXY(s string) (grid.Size, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return grid.Size{}, fmt.Errorf("expected x,y got %q", s)
	}
	x, err := strconv.Atoi(parts[0])
	if err != nil {
		return grid.Size{}, fmt.Errorf("bad x in %q: %v", s, err)
	}
	y, err := strconv.Atoi(parts[1])
	if err != nil {
		return grid.Size{}, fmt.Errorf("bad y in %q: %v", s, err)
	}
	return grid.Size{X: x, Y: y}, nil
}

func parseDirLetter(c byte) (grid.Direction, error) {
	switch c {
	case 'u':
		return grid.Up, nil
	case 'r':
		return grid.Right, nil
	case 'd':
		return grid.Down, nil
	case 'l':
		return grid.Left, nil
	default:
		return 0, fmt.Errorf("unknown direction letter %q", string(c))
	}
}

func parsePosDir(s string) (grid.RebootToken, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 || len(parts[1]) != 1 {
		return grid.RebootToken{}, fmt.Errorf("expected x,y:d got %q", s)
	}
	xy, err := parseXY(parts[0])
	if err != nil {
		return grid.RebootToken{}, err
	}
	dir, err := parseDirLetter(parts[1][0])
	if err != nil {
		return grid.RebootToken{}, err
	}
	return grid.RebootToken{Position: grid.Position{X: xy.X, Y: xy.Y}, Direction: dir}, nil
}

func parseTileSpec(lineNo int, spec string) (grid.Tile, error) {
	if spec == "" {
		return grid.Tile{}, parseErr(lineNo, "empty tile spec")
	}
	parts := strings.SplitN(spec, ":", 2)
	typeSpec := parts[0]
	var walls grid.Walls
	if len(parts) == 2 {
		seen := map[byte]bool{}
		for i := 0; i < len(parts[1]); i++ {
			c := parts[1][i]
			if seen[c] {
				return grid.Tile{}, parseErr(lineNo, "wall letter %q repeated in spec %q", string(c), spec)
			}
			seen[c] = true
			d, err := parseDirLetter(c)
			if err != nil {
				return grid.Tile{}, parseErr(lineNo, "%v in spec %q", err, spec)
			}
			walls = walls.With(d)
		}
	}

	var tile grid.Tile
	switch {
	case typeSpec == "V":
		tile = grid.VoidTile()
	case typeSpec == "F":
		tile = grid.FloorTile()
	case len(typeSpec) == 3 && typeSpec[0] == 'B':
		fast, err := parseBeltSpeed(typeSpec[1])
		if err != nil {
			return grid.Tile{}, parseErr(lineNo, "%v in spec %q", err, spec)
		}
		dir, err := parseDirLetter(typeSpec[2])
		if err != nil {
			return grid.Tile{}, parseErr(lineNo, "%v in spec %q", err, spec)
		}
		tile = grid.BeltTile(fast, dir)
	case len(typeSpec) >= 2 && typeSpec[0] == 'P':
		dir, err := parseDirLetter(typeSpec[1])
		if err != nil {
			return grid.Tile{}, parseErr(lineNo, "%v in spec %q", err, spec)
		}
		divisor, remainder, err := parsePanelCounts(typeSpec[2:])
		if err != nil {
			return grid.Tile{}, parseErr(lineNo, "%v in spec %q", err, spec)
		}
		tile = grid.PushPanelTile(dir, divisor, remainder)
	case typeSpec == "Rcw":
		tile = grid.RotationTile(true)
	case typeSpec == "Rccw":
		tile = grid.RotationTile(false)
	default:
		return grid.Tile{}, parseErr(lineNo, "unrecognized tile type spec %q", typeSpec)
	}
	tile.Walls = walls
	return tile, nil
}

func parseBeltSpeed(c byte) (bool, error) {
	switch c {
	case 'f':
		return true, nil
	case 's':
		return false, nil
	default:
		return false, fmt.Errorf("unknown belt speed letter %q", string(c))
	}
}

func parsePanelCounts(s string) (divisor, remainder int, err error) {
	parts := strings.SplitN(s, "+", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected <divisor>+<remainder>, got %q", s)
	}
	divisor, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("bad divisor %q: %v", parts[0], err)
	}
	remainder, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("bad remainder %q: %v", parts[1], err)
	}
	if divisor <= 0 {
		return 0, 0, fmt.Errorf("divisor must be > 0, got %d", divisor)
	}
	return divisor, remainder, nil
}
