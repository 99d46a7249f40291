package term

import (
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/tanks/arena"
	"github.com/plus3/tanks/game"
)

var (
	wallStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	floorStyle  = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	tankStyle   = tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true)
	bulletStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	hudStyle    = tcell.StyleDefault.Reverse(true)
)

// headings are the tank glyphs for eight compass directions, starting at
// +x and turning toward -z.
var headings = [8]rune{'>', '/', '^', '\\', '<', '/', 'v', '\\'}

type glyph struct {
	x, z  float32
	r     rune
	style tcell.Style
}

// Renderer draws the arena as text, scaled to the terminal. The last row
// is left for the status line.
type Renderer struct {
	arena   *arena.Map
	pending []glyph
	current []glyph

	cols, rows int
	walls      []bool
}

func NewRenderer(m *arena.Map) *Renderer {
	return &Renderer{arena: m}
}

func (r *Renderer) BeginFrame(float32) {
	r.pending = r.pending[:0]
}

func (r *Renderer) Submit(transform mgl32.Mat4, mesh *game.Mesh, profile game.ShaderProfile) {
	pos := transform.Col(3)
	switch {
	case profile == game.ProfilePlayer:
		r.pending = append(r.pending, glyph{pos.X(), pos.Z(), heading(transform), tankStyle})
	case mesh != nil && mesh.Name == game.MeshBullet:
		r.pending = append(r.pending, glyph{pos.X(), pos.Z(), '*', bulletStyle})
	}
}

func (r *Renderer) EndFrame() error {
	r.pending, r.current = r.current, r.pending
	return nil
}

// heading picks the glyph for the direction the model's +x axis points.
func heading(m mgl32.Mat4) rune {
	angle := math.Atan2(-float64(m[2]), float64(m[0]))
	octant := int(math.Round(angle/(math.Pi/4))) & 7
	return headings[octant]
}

// Resize rebuilds the wall grid from the arena dump, downsampled to a
// cols x rows terminal.
func (r *Renderer) Resize(cols, rows int) {
	rows--
	if cols <= 0 || rows <= 0 {
		r.cols, r.rows, r.walls = 0, 0, nil
		return
	}
	r.cols, r.rows = cols, rows
	r.walls = make([]bool, cols*rows)
	for z, line := range strings.Split(r.arena.String(), "\n") {
		for x, ch := range line {
			if ch == '#' {
				cx, cy := r.cell(float32(x), float32(z))
				r.walls[cy*cols+cx] = true
			}
		}
	}
}

func (r *Renderer) cell(x, z float32) (int, int) {
	cx := int(x * float32(r.cols) / float32(r.arena.Width()))
	cy := int(z * float32(r.rows) / float32(r.arena.Height()))
	return min(max(cx, 0), r.cols-1), min(max(cy, 0), r.rows-1)
}

// Draw paints the last completed frame and the status line.
func (r *Renderer) Draw(screen tcell.Screen, status string) {
	if cols, rows := screen.Size(); cols != r.cols || rows-1 != r.rows {
		r.Resize(cols, rows)
	}
	screen.Clear()
	if r.cols == 0 {
		return
	}

	for cy := 0; cy < r.rows; cy++ {
		for cx := 0; cx < r.cols; cx++ {
			if r.walls[cy*r.cols+cx] {
				screen.SetContent(cx, cy, '#', nil, wallStyle)
			} else {
				screen.SetContent(cx, cy, '.', nil, floorStyle)
			}
		}
	}
	for _, g := range r.current {
		cx, cy := r.cell(g.x, g.z)
		screen.SetContent(cx, cy, g.r, nil, g.style)
	}

	for i, ch := range []rune(status) {
		if i >= r.cols {
			break
		}
		screen.SetContent(i, r.rows, ch, nil, hudStyle)
	}
}
