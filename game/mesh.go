package game

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is indexed triangle geometry. Uploading it anywhere is the
// renderer's business.
type Mesh struct {
	Name     string
	Vertices []mgl32.Vec3
	Indices  []uint32
}

const (
	MeshTank        = "tank"
	MeshBullet      = "bullet"
	MeshBarrierUnit = "barrier_unit"
)

func tankMesh() *Mesh {
	const h = 3.0
	return &Mesh{
		Name: MeshTank,
		Vertices: []mgl32.Vec3{
			{6, h, 3}, {-6, h, 3}, {6, h, -3}, {-6, h, -3},
			{0, h, 1}, {0, h, -1}, {9, h, 1}, {9, h, -1},
			{6, 0, 3}, {-6, 0, 3}, {6, 0, -3}, {-6, 0, -3},
			{0, 0, 1}, {0, 0, -1}, {9, 0, 1}, {9, 0, -1},
		},
		Indices: []uint32{
			0, 1, 2, 1, 3, 2, 4, 5, 6, 5, 7, 6, 10, 9, 8, 10, 11, 9,
			14, 13, 12, 14, 15, 13, 8, 9, 0, 0, 9, 1, 9, 11, 1, 1, 11, 3,
			11, 10, 3, 3, 10, 2, 10, 8, 2, 2, 8, 0, 12, 14, 4, 4, 14, 6,
			13, 5, 15, 15, 5, 7, 12, 4, 13, 13, 4, 5, 14, 15, 6, 6, 15, 7,
		},
	}
}

func unitCube(name string) *Mesh {
	return &Mesh{
		Name: name,
		Vertices: []mgl32.Vec3{
			{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5},
			{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5},
		},
		Indices: []uint32{
			0, 1, 2, 2, 3, 0,
			4, 5, 6, 6, 7, 4,
			7, 3, 0, 0, 4, 7,
			6, 2, 1, 1, 5, 6,
			0, 1, 5, 5, 4, 0,
			3, 2, 6, 6, 7, 3,
		},
	}
}

const (
	barrierHalfWidth  = 0.5
	barrierHalfHeight = 3.2
)

// BarrierMesh builds a box running from start to end, one unit thick.
func BarrierMesh(start, end mgl32.Vec3) *Mesh {
	dir := end.Sub(start).Normalize()
	right := dir.Cross(mgl32.Vec3{0, 1, 0}).Normalize().Mul(barrierHalfWidth)
	down := mgl32.Vec3{0, -barrierHalfHeight, 0}
	up := mgl32.Vec3{0, barrierHalfHeight, 0}

	return &Mesh{
		Name: "barrier",
		Vertices: []mgl32.Vec3{
			start.Add(right).Add(down),
			start.Sub(right).Add(down),
			end.Add(right).Add(down),
			end.Sub(right).Add(down),
			start.Add(right).Add(up),
			start.Sub(right).Add(up),
			end.Add(right).Add(up),
			end.Sub(right).Add(up),
		},
		Indices: []uint32{
			0, 1, 2, 2, 1, 3,
			4, 6, 5, 6, 7, 5,
			0, 2, 4, 4, 2, 6,
			1, 5, 3, 3, 5, 7,
			1, 0, 5, 5, 0, 4,
			2, 3, 6, 6, 3, 7,
		},
	}
}
