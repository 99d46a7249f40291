package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/plus3/tanks/arena"
)

// ShaderProfile selects how the renderer shades a mesh.
type ShaderProfile uint8

const (
	ProfileEnvironment ShaderProfile = iota
	ProfilePlayer
)

func (p ShaderProfile) String() string {
	switch p {
	case ProfilePlayer:
		return "player"
	case ProfileEnvironment:
		return "environment"
	default:
		return fmt.Sprintf("profile(%d)", uint8(p))
	}
}

// Resources is the read-only context shared by the world and its systems:
// the arena map, the shared meshes and the single random source.
type Resources struct {
	Map  *arena.Map
	Rand *rand.Rand

	meshes map[string]*Mesh
}

// NewResources builds the shared meshes around m. rng must not be shared
// with anything outside the simulation if runs are to be reproducible.
func NewResources(m *arena.Map, rng *rand.Rand) *Resources {
	r := &Resources{
		Map:    m,
		Rand:   rng,
		meshes: make(map[string]*Mesh),
	}
	for _, mesh := range []*Mesh{tankMesh(), unitCube(MeshBullet), unitCube(MeshBarrierUnit)} {
		r.meshes[mesh.Name] = mesh
	}
	return r
}

// NewSeededResources builds the standard arena and a PCG source seeded
// with seed.
func NewSeededResources(width, height int, seed uint64) (*Resources, error) {
	m, err := arena.NewDefault(width, height)
	if err != nil {
		return nil, fmt.Errorf("build arena: %w", err)
	}
	return NewResources(m, rand.New(rand.NewPCG(seed, seed))), nil
}

// Mesh returns the shared mesh called name, or nil.
func (r *Resources) Mesh(name string) *Mesh {
	return r.meshes[name]
}

// Profile resolves a shader profile by name.
func (r *Resources) Profile(name string) (ShaderProfile, bool) {
	switch name {
	case "player":
		return ProfilePlayer, true
	case "environment":
		return ProfileEnvironment, true
	}
	return 0, false
}

// Width returns the arena width in world units.
func (r *Resources) Width() float32 { return float32(r.Map.Width() - 1) }

// Height returns the arena height in world units.
func (r *Resources) Height() float32 { return float32(r.Map.Height() - 1) }
