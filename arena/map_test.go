package arena_test

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/tanks/arena"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(x0, z0, x1, z1 int) arena.Line {
	return arena.Line{Start: arena.Point{X: x0, Y: z0}, End: arena.Point{X: x1, Y: z1}}
}

func TestAddBarrierHorizontal(t *testing.T) {
	m := arena.New(10, 10, 1)
	require.NoError(t, m.AddBarrier(line(2, 5, 7, 5)))

	for x := 2; x <= 7; x++ {
		assert.Equal(t, arena.Wall, m.Terrain(x, 5), "x=%d", x)
		assert.Equal(t, arena.Immovable, m.Terrain(x, 4), "x=%d", x)
		assert.Equal(t, arena.Immovable, m.Terrain(x, 6), "x=%d", x)
	}
	assert.Equal(t, arena.Movable, m.Terrain(1, 5))
	assert.Equal(t, arena.Movable, m.Terrain(8, 5))
	assert.Equal(t, arena.Movable, m.Terrain(5, 3))

	open, axis := m.IsOpen(mgl32.Vec3{4.5, 0, 5.2}, true)
	assert.False(t, open)
	assert.Equal(t, arena.AxisX, axis)
}

func TestAddBarrierVertical(t *testing.T) {
	m := arena.New(10, 10, 1)
	require.NoError(t, m.AddBarrier(line(4, 8, 4, 1)))

	for z := 1; z <= 8; z++ {
		assert.Equal(t, arena.Wall, m.Terrain(4, z), "z=%d", z)
		assert.Equal(t, arena.Immovable, m.Terrain(3, z), "z=%d", z)
		assert.Equal(t, arena.Immovable, m.Terrain(5, z), "z=%d", z)
	}

	open, axis := m.IsOpen(mgl32.Vec3{4.1, 0, 3}, true)
	assert.False(t, open)
	assert.Equal(t, arena.AxisZ, axis)
}

func TestAddBarrierRejectsBadSegments(t *testing.T) {
	m := arena.New(10, 10, 1)

	assert.ErrorIs(t, m.AddBarrier(line(1, 1, 3, 3)), arena.ErrDiagonalBarrier)
	assert.ErrorIs(t, m.AddBarrier(line(1, 1, 1, 1)), arena.ErrEmptyBarrier)
	assert.ErrorIs(t, m.AddBarrier(line(0, 0, 10, 0)), arena.ErrOutOfBounds)
	assert.Empty(t, m.Barriers())
}

func TestCrossingBarriersKeepWalls(t *testing.T) {
	m := arena.New(10, 10, 1)
	require.NoError(t, m.AddBarrier(line(0, 5, 9, 5)))
	require.NoError(t, m.AddBarrier(line(5, 0, 5, 9)))

	// The second barrier's clearance band must not downgrade the first wall.
	assert.Equal(t, arena.Wall, m.Terrain(4, 5))
	assert.Equal(t, arena.Wall, m.Terrain(6, 5))
}

func TestIsOpenTankVersusBullet(t *testing.T) {
	m := arena.New(10, 10, 1)
	require.NoError(t, m.AddBarrier(line(0, 5, 9, 5)))

	blocked := mgl32.Vec3{3, 0, 4.5}
	open, _ := m.IsOpen(blocked, false)
	assert.False(t, open, "tanks cannot enter the clearance band")
	open, axis := m.IsOpen(blocked, true)
	assert.True(t, open, "bullets fly through the clearance band")
	assert.Equal(t, arena.AxisNone, axis)

	open, _ = m.IsOpen(mgl32.Vec3{3, 0, 2}, false)
	assert.True(t, open)
}

func TestIsOpenOutsideMap(t *testing.T) {
	m := arena.New(10, 10, 1)

	for _, pos := range []mgl32.Vec3{{-0.5, 0, 3}, {3, 0, -0.1}, {10, 0, 3}, {3, 0, 10.5}} {
		assert.False(t, m.IsValid(pos))
		open, axis := m.IsOpen(pos, true)
		assert.False(t, open)
		assert.Equal(t, arena.AxisNone, axis)
	}
	assert.Equal(t, arena.Wall, m.Terrain(-1, 0))
}

func TestDefaultArena(t *testing.T) {
	m, err := arena.NewDefault(80, 60)
	require.NoError(t, err)

	assert.Equal(t, 81, m.Width())
	assert.Equal(t, 61, m.Height())
	assert.Len(t, m.Barriers(), 6)

	assert.Equal(t, arena.Wall, m.Terrain(0, 30))
	assert.Equal(t, arena.Wall, m.Terrain(80, 30))
	assert.Equal(t, arena.Wall, m.Terrain(40, 0))
	assert.Equal(t, arena.Wall, m.Terrain(40, 60))
	assert.Equal(t, arena.Wall, m.Terrain(26, 20), "left partition")
	assert.Equal(t, arena.Wall, m.Terrain(53, 50), "right partition")

	assert.True(t, m.IsOpenCell(5, 5))
	assert.False(t, m.IsOpenCell(1, 5))
	assert.False(t, m.IsOpenCell(79, 5))

	rows := strings.Split(strings.TrimSuffix(m.String(), "\n"), "\n")
	require.Len(t, rows, 61)
	assert.Equal(t, strings.Repeat("#", 81), rows[0])
	assert.Equal(t, byte('#'), rows[10][26])
	assert.Equal(t, byte('.'), rows[10][25])
}

func TestWalkableClamp(t *testing.T) {
	m, err := arena.NewDefault(80, 60)
	require.NoError(t, err)

	rect := m.Walkable(3)
	assert.Equal(t, arena.Rect{MinX: 3, MinZ: 3, MaxX: 76, MaxZ: 56}, rect)

	clamped := rect.Clamp(mgl32.Vec3{79, 1, 0.5})
	assert.Equal(t, mgl32.Vec3{76, 1, 3}, clamped)

	inside := mgl32.Vec3{40, 0, 30}
	assert.Equal(t, inside, rect.Clamp(inside))
}
