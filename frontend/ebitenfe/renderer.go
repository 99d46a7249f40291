package ebitenfe

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/tanks/arena"
	"github.com/plus3/tanks/game"
)

var (
	backgroundColor  = color.RGBA{0x10, 0x14, 0x1c, 0xff}
	wallColor        = color.RGBA{0x3a, 0x44, 0x58, 0xff}
	environmentColor = color.RGBA{0xb0, 0xb8, 0xc8, 0xff}
	playerColor      = color.RGBA{0xf2, 0xa6, 0x3c, 0xff}
)

type segment struct {
	x0, z0, x1, z1 float32
}

type drawable struct {
	segments []segment
	profile  game.ShaderProfile
}

// Renderer draws a top-down wireframe of everything submitted in the last
// completed frame. Submissions are buffered, so the simulation may run
// from Update while drawing happens in Draw.
type Renderer struct {
	arena   *arena.Map
	scale   float32
	pending []drawable
	current []drawable
	elapsed float32
	edges   map[*game.Mesh][][2]uint32
}

// NewRenderer creates a renderer for m drawn at scale pixels per unit.
func NewRenderer(m *arena.Map, scale float32) *Renderer {
	return &Renderer{
		arena: m,
		scale: scale,
		edges: make(map[*game.Mesh][][2]uint32),
	}
}

func (r *Renderer) BeginFrame(elapsed float32) {
	r.elapsed = elapsed
	r.pending = r.pending[:0]
}

func (r *Renderer) Submit(transform mgl32.Mat4, mesh *game.Mesh, profile game.ShaderProfile) {
	r.pending = append(r.pending, drawable{
		segments: project(transform, mesh.Vertices, r.meshEdges(mesh)),
		profile:  profile,
	})
}

func (r *Renderer) EndFrame() error {
	r.pending, r.current = r.current, r.pending
	return nil
}

// Draw paints the last completed frame.
func (r *Renderer) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	for x := 0; x < r.arena.Width(); x++ {
		for z := 0; z < r.arena.Height(); z++ {
			if r.arena.Terrain(x, z) == arena.Wall {
				vector.DrawFilledRect(screen, float32(x)*r.scale, float32(z)*r.scale, r.scale, r.scale, wallColor, false)
			}
		}
	}

	for _, d := range r.current {
		clr := environmentColor
		if d.profile == game.ProfilePlayer {
			clr = playerColor
		}
		for _, s := range d.segments {
			vector.StrokeLine(screen, s.x0*r.scale, s.z0*r.scale, s.x1*r.scale, s.z1*r.scale, 1, clr, true)
		}
	}
}

// Size returns the window size needed for the arena.
func (r *Renderer) Size() (int, int) {
	return int(float32(r.arena.Width()) * r.scale), int(float32(r.arena.Height()) * r.scale)
}

func (r *Renderer) meshEdges(mesh *game.Mesh) [][2]uint32 {
	if e, ok := r.edges[mesh]; ok {
		return e
	}
	e := edges(mesh.Indices)
	r.edges[mesh] = e
	return e
}

// edges returns the unique undirected edges of a triangle list.
func edges(indices []uint32) [][2]uint32 {
	seen := make(map[[2]uint32]bool)
	var out [][2]uint32
	for i := 0; i+2 < len(indices); i += 3 {
		tri := [3]uint32{indices[i], indices[i+1], indices[i+2]}
		for j := range 3 {
			a, b := tri[j], tri[(j+1)%3]
			if a > b {
				a, b = b, a
			}
			if !seen[[2]uint32{a, b}] {
				seen[[2]uint32{a, b}] = true
				out = append(out, [2]uint32{a, b})
			}
		}
	}
	return out
}

// project transforms the vertices into world space and drops y.
func project(transform mgl32.Mat4, vertices []mgl32.Vec3, edges [][2]uint32) []segment {
	world := make([]mgl32.Vec3, len(vertices))
	for i, v := range vertices {
		world[i] = mgl32.TransformCoordinate(v, transform)
	}
	out := make([]segment, 0, len(edges))
	for _, e := range edges {
		a, b := world[e[0]], world[e[1]]
		if a.X() == b.X() && a.Z() == b.Z() {
			continue
		}
		out = append(out, segment{a.X(), a.Z(), b.X(), b.Z()})
	}
	return out
}
