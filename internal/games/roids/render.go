package roids

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/vovakirdan/tui-roids/internal/core"
	"github.com/vovakirdan/tui-roids/internal/sim"
	"github.com/vovakirdan/tui-roids/internal/world"
)

// Visual characters for rendering
var (
	shipGlyphs     = [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}
	asteroidGlyphs = [...]rune{'#', '%', '+', '*'}
)

const (
	playerShotChar = '·'
	ufoShotChar    = '•'
	fragmentChar   = '.'
	flameChar      = '*'
	flashChar      = '✶'
	smallFlashChar = '+'
)

// mirror is the renderer collaborator. It keeps the latest view of every
// live entity keyed by handle.
type mirror struct {
	views map[sim.Handle]sim.EntityView
	order []sim.EntityView
}

func newMirror() *mirror {
	return &mirror{views: make(map[sim.Handle]sim.EntityView)}
}

// EntityAdded implements sim.Renderer.
func (m *mirror) EntityAdded(v sim.EntityView) { m.views[v.Handle] = v }

// EntityRemoved implements sim.Renderer.
func (m *mirror) EntityRemoved(h sim.Handle) { delete(m.views, h) }

// EntityMoved implements sim.Renderer.
func (m *mirror) EntityMoved(v sim.EntityView) { m.views[v.Handle] = v }

func (m *mirror) reset() { clear(m.views) }

func (m *mirror) len() int { return len(m.views) }

// sorted returns the views in a stable draw order: asteroids first, the
// ship last.
func (m *mirror) sorted() []sim.EntityView {
	m.order = m.order[:0]
	for _, v := range m.views {
		m.order = append(m.order, v)
	}
	slices.SortFunc(m.order, func(a, b sim.EntityView) int {
		if c := cmp.Compare(drawLayer(a.Category), drawLayer(b.Category)); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Pos.Y, b.Pos.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.Pos.X, b.Pos.X)
	})
	return m.order
}

func drawLayer(c sim.Category) int {
	switch c {
	case sim.CategoryFragment:
		return 0
	case sim.CategoryAsteroid:
		return 1
	case sim.CategoryUFO:
		return 2
	case sim.CategoryUFOShot, sim.CategoryPlayerShot:
		return 3
	default:
		return 4
	}
}

// viewport maps world coordinates onto the screen area below the HUD.
type viewport struct {
	w          world.World
	top        int
	cols, rows int
}

func newViewport(w world.World, dst *core.Screen) viewport {
	return viewport{w: w, top: 1, cols: dst.Width(), rows: dst.Height() - 1}
}

func (v viewport) cell(p core.Vec2) (int, int) {
	x := int(math.Floor((p.X - v.w.MinX()) / v.w.Width * float64(v.cols)))
	y := int(math.Floor((p.Y - v.w.MinY()) / v.w.Height * float64(v.rows)))
	return x, v.top + y
}

// field is the playfield area of the screen.
func (v viewport) field() core.Rect {
	return core.Rect{Y: v.top, W: v.cols, H: v.rows}
}

func (v viewport) inside(x, y int) bool {
	return v.field().Contains(x, y)
}

func (v viewport) set(dst *core.Screen, p core.Vec2, r rune, c core.Color) {
	x, y := v.cell(p)
	if v.inside(x, y) {
		dst.SetColored(x, y, r, c)
	}
}

// polygon draws a closed outline rotated about pos.
func (v viewport) polygon(dst *core.Screen, pos core.Vec2, rot float64, shape []core.Vec2, r rune, c core.Color) {
	if len(shape) == 0 {
		return
	}
	prevX, prevY := v.cell(pos.Add(shape[len(shape)-1].Rotate(rot)))
	for _, pt := range shape {
		x, y := v.cell(pos.Add(pt.Rotate(rot)))
		v.line(dst, prevX, prevY, x, y, r, c)
		prevX, prevY = x, y
	}
}

func (v viewport) line(dst *core.Screen, x0, y0, x1, y1 int, r rune, c core.Color) {
	dst.DrawLineIn(v.field(), x0, y0, x1, y1, r, c)
}

// shipGlyph picks the arrow closest to the heading. Screen Y grows down.
func shipGlyph(rotation float64) rune {
	octant := int(math.Round(rotation/(math.Pi/4))) % 8
	if octant < 0 {
		octant += 8
	}
	return shipGlyphs[octant]
}

func (g *Game) drawEntities(dst *core.Screen, vp viewport) {
	for _, v := range g.view.sorted() {
		switch v.Category {
		case sim.CategoryAsteroid:
			glyph := asteroidGlyphs[min(int(v.Size), len(asteroidGlyphs)-1)]
			if v.Size == sim.SizeSmall {
				vp.set(dst, v.Pos, 'o', core.ColorPebble)
				continue
			}
			vp.polygon(dst, v.Pos, v.Rotation, v.Shape, glyph, core.ColorAsteroid)

		case sim.CategoryUFO:
			if v.Small {
				vp.set(dst, v.Pos, '◆', core.ColorSmallUFO)
				continue
			}
			x, y := vp.cell(v.Pos)
			for i, r := range "<o>" {
				if vp.inside(x-1+i, y) {
					dst.SetColored(x-1+i, y, r, core.ColorUFO)
				}
			}

		case sim.CategoryPlayer:
			if v.Thrusting {
				tail := v.Pos.Add(core.FromAngle(v.Rotation+math.Pi, 2*v.Radius))
				vp.set(dst, tail, flameChar, core.ColorFlame)
			}
			vp.set(dst, v.Pos, shipGlyph(v.Rotation), core.ColorShip)

		case sim.CategoryPlayerShot:
			vp.set(dst, v.Pos, playerShotChar, core.ColorPlayerShot)

		case sim.CategoryUFOShot:
			vp.set(dst, v.Pos, ufoShotChar, core.ColorUFOShot)

		case sim.CategoryFragment:
			vp.set(dst, v.Pos, fragmentChar, core.ColorDebris)
		}
	}

	for _, fl := range g.fx.flashes {
		if fl.big {
			vp.set(dst, fl.pos, flashChar, core.ColorBrightYellow)
		} else {
			vp.set(dst, fl.pos, smallFlashChar, core.ColorYellow)
		}
	}
}

// renderHUD draws the score, lives and wave indicator.
func (g *Game) renderHUD(dst *core.Screen) {
	st := g.sim.State()

	dst.DrawTextColored(1, 0, fmt.Sprintf("Score: %d", st.Score), core.ColorHUD)

	lives := fmt.Sprintf("Lives: %d", st.Lives)
	if st.Streak > 1 {
		lives += fmt.Sprintf("  Streak: %d", st.Streak)
	}
	dst.DrawTextCentered(0, lives)

	wave := fmt.Sprintf("Wave: %d", st.Wave)
	dst.DrawText(dst.Width()-len(wave)-1, 0, wave)
}

func (g *Game) renderOverlay(dst *core.Screen) {
	mid := dst.Height() / 2
	st := g.State()
	switch {
	case st.GameOver:
		dst.DrawTextCentered(mid-1, "GAME OVER")
		dst.DrawTextCentered(mid+1, fmt.Sprintf("Final score: %d", st.Score))
		dst.DrawTextCentered(mid+3, "Press R to restart, Q to quit")
	case g.sim.ExplicitlyPaused():
		dst.DrawTextCentered(mid, "PAUSED - press P to resume")
	case st.Paused:
		dst.DrawTextCentered(mid, "SUSPENDED")
	case g.fx.banner != "":
		dst.DrawTextCentered(mid-dst.Height()/4, g.fx.banner)
	}
}
