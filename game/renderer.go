package game

import "github.com/go-gl/mathgl/mgl32"

// Renderer receives the drawables of a tick. Implementations may buffer
// submissions and draw them at EndFrame or later.
type Renderer interface {
	BeginFrame(elapsed float32)
	Submit(transform mgl32.Mat4, mesh *Mesh, profile ShaderProfile)
	EndFrame() error
}

// NullRenderer discards everything.
type NullRenderer struct{}

func (NullRenderer) BeginFrame(float32)                      {}
func (NullRenderer) Submit(mgl32.Mat4, *Mesh, ShaderProfile) {}
func (NullRenderer) EndFrame() error                         { return nil }

// ModelMatrix returns translate(position) * rotateY(yaw) * scale(scale).
func ModelMatrix(t Transform) mgl32.Mat4 {
	return mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).
		Mul4(mgl32.HomogRotate3DY(t.Yaw)).
		Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
}
