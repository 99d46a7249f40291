// Package arena models the static battlefield: a grid of cells classified
// as wall, blocked or open, built once from a list of barrier segments.
package arena

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Terrain classifies a single cell.
type Terrain uint8

const (
	// Movable cells are open to tanks and bullets.
	Movable Terrain = iota
	// Immovable cells surround walls; bullets pass, tanks do not.
	Immovable
	// Wall cells deflect bullets.
	Wall
)

func (t Terrain) String() string {
	switch t {
	case Movable:
		return "movable"
	case Immovable:
		return "immovable"
	case Wall:
		return "wall"
	default:
		return fmt.Sprintf("terrain(%d)", uint8(t))
	}
}

// Axis is the direction a wall segment runs along.
type Axis uint8

const (
	AxisNone Axis = iota
	AxisX
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisZ:
		return "z"
	default:
		return "none"
	}
}

// Point is a cell coordinate; Y indexes the z axis of world space.
type Point struct {
	X, Y int
}

// Line is a barrier segment between two cell coordinates.
type Line struct {
	Start, End Point
}

var (
	ErrDiagonalBarrier = errors.New("barrier must be axis aligned")
	ErrEmptyBarrier    = errors.New("barrier has zero length")
	ErrOutOfBounds     = errors.New("barrier leaves the map")
)

// Map is the cell grid. It is written only while barriers are added and is
// read-only afterwards.
type Map struct {
	width, height int
	tankRadius    int
	terrain       []Terrain
	xAxis         []bool
	barriers      []Line
}

// New creates a width x height map of movable cells. tankRadius is how far
// around a wall tanks are kept out.
func New(width, height, tankRadius int) *Map {
	return &Map{
		width:      width,
		height:     height,
		tankRadius: tankRadius,
		terrain:    make([]Terrain, width*height),
		xAxis:      make([]bool, width*height),
	}
}

func (m *Map) idx(x, z int) int { return x*m.height + z }

// Width returns the number of cells along x.
func (m *Map) Width() int { return m.width }

// Height returns the number of cells along z.
func (m *Map) Height() int { return m.height }

// TankRadius returns the clearance kept around walls.
func (m *Map) TankRadius() int { return m.tankRadius }

// Barriers returns the segments the map was built from.
func (m *Map) Barriers() []Line {
	return append([]Line(nil), m.barriers...)
}

// InBounds reports whether the cell (x, z) exists.
func (m *Map) InBounds(x, z int) bool {
	return x >= 0 && z >= 0 && x < m.width && z < m.height
}

// Terrain returns the classification of (x, z). Cells outside the map
// report Wall.
func (m *Map) Terrain(x, z int) Terrain {
	if !m.InBounds(x, z) {
		return Wall
	}
	return m.terrain[m.idx(x, z)]
}

// block marks (x, z) immovable unless it is already a wall.
func (m *Map) block(x, z int) {
	if m.InBounds(x, z) && m.terrain[m.idx(x, z)] != Wall {
		m.terrain[m.idx(x, z)] = Immovable
	}
}

// AddBarrier rasterizes l into the grid. Line cells become walls; cells
// within the tank radius of the line and its endpoints become immovable.
func (m *Map) AddBarrier(l Line) error {
	dx, dz := l.End.X-l.Start.X, l.End.Y-l.Start.Y
	switch {
	case dx == 0 && dz == 0:
		return fmt.Errorf("%w: %v", ErrEmptyBarrier, l)
	case dx != 0 && dz != 0:
		return fmt.Errorf("%w: %v", ErrDiagonalBarrier, l)
	case !m.InBounds(l.Start.X, l.Start.Y) || !m.InBounds(l.End.X, l.End.Y):
		return fmt.Errorf("%w: %v", ErrOutOfBounds, l)
	}

	length := abs(dx) + abs(dz)
	dirX, dirZ := sign(dx), sign(dz)
	orthoX, orthoZ := dirZ, dirX
	r := m.tankRadius

	for _, p := range []Point{l.Start, l.End} {
		for i := -r; i <= r; i++ {
			for j := -r; j <= r; j++ {
				if i*i+j*j >= r*r {
					continue
				}
				m.block(p.X+i, p.Y+j)
			}
		}
	}

	for step := 0; step <= length; step++ {
		x, z := l.Start.X+dirX*step, l.Start.Y+dirZ*step
		for j := -r; j <= r; j++ {
			m.block(x+orthoX*j, z+orthoZ*j)
		}
	}

	isX := dirX != 0
	for step := 0; step <= length; step++ {
		x, z := l.Start.X+dirX*step, l.Start.Y+dirZ*step
		i := m.idx(x, z)
		m.terrain[i] = Wall
		m.xAxis[i] = isX
	}

	m.barriers = append(m.barriers, l)
	return nil
}

func cell(pos mgl32.Vec3) (int, int, bool) {
	if pos.X() < 0 || pos.Z() < 0 {
		return 0, 0, false
	}
	return int(pos.X()), int(pos.Z()), true
}

// IsValid reports whether pos lies on the map.
func (m *Map) IsValid(pos mgl32.Vec3) bool {
	x, z, ok := cell(pos)
	return ok && m.InBounds(x, z)
}

// IsOpen reports whether the cell under pos can be entered. Tanks need a
// movable cell; bullets only need a non-wall cell. For a bullet on a wall
// cell the returned axis tells which way the wall runs. Positions outside
// the map are never open and carry AxisNone.
func (m *Map) IsOpen(pos mgl32.Vec3, bullet bool) (bool, Axis) {
	x, z, ok := cell(pos)
	if !ok || !m.InBounds(x, z) {
		return false, AxisNone
	}
	i := m.idx(x, z)
	t := m.terrain[i]
	if !bullet {
		return t == Movable, AxisNone
	}
	if t != Wall {
		return true, AxisNone
	}
	if m.xAxis[i] {
		return false, AxisX
	}
	return false, AxisZ
}

// IsOpenCell reports whether a tank could stand on (x, z).
func (m *Map) IsOpenCell(x, z int) bool {
	return m.InBounds(x, z) && m.terrain[m.idx(x, z)] == Movable
}

// Rect is an axis-aligned rectangle on the xz plane.
type Rect struct {
	MinX, MinZ, MaxX, MaxZ float32
}

// Clamp pulls pos inside r, leaving y untouched.
func (r Rect) Clamp(pos mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		mgl32.Clamp(pos.X(), r.MinX, r.MaxX),
		pos.Y(),
		mgl32.Clamp(pos.Z(), r.MinZ, r.MaxZ),
	}
}

// Walkable returns the rectangle tanks are confined to: margin cells in
// from the near walls and margin cells in from the last interior cell on
// the far side.
func (m *Map) Walkable(margin float32) Rect {
	return Rect{
		MinX: margin,
		MinZ: margin,
		MaxX: float32(m.width-2) - margin,
		MaxZ: float32(m.height-2) - margin,
	}
}

// String renders the grid with '#' for walls and '.' for everything else,
// one row per z coordinate.
func (m *Map) String() string {
	var sb strings.Builder
	sb.Grow((m.width + 1) * m.height)
	for z := 0; z < m.height; z++ {
		for x := 0; x < m.width; x++ {
			if m.terrain[m.idx(x, z)] == Wall {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
