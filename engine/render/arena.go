package render

import (
	"image/color"

	"github.com/1siamBot/skirmish/engine/core"
	"github.com/1siamBot/skirmish/engine/match"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	colGround   = color.RGBA{34, 52, 38, 255}
	colLane     = color.RGBA{58, 78, 56, 255}
	colBorder   = color.RGBA{90, 110, 90, 255}
	colHPBack   = color.RGBA{40, 0, 0, 200}
	colHPFull   = color.RGBA{60, 220, 60, 255}
	colHPLow    = color.RGBA{230, 60, 40, 255}
	colRubble   = color.RGBA{70, 70, 70, 255}
	sideColors  = [2]color.RGBA{{70, 140, 255, 255}, {235, 70, 70, 255}}
	rangeColors = [2]color.RGBA{{70, 140, 255, 60}, {235, 70, 70, 60}}
)

// ArenaRenderer draws a match snapshot
type ArenaRenderer struct {
	Camera    *Camera
	ShowRange bool
}

func NewArenaRenderer(cam *Camera) *ArenaRenderer {
	return &ArenaRenderer{Camera: cam, ShowRange: true}
}

// Draw renders the arena, towers and living units
func (r *ArenaRenderer) Draw(screen *ebiten.Image, snap match.Snapshot) {
	r.drawGround(screen, snap.Width, snap.Height)
	for _, t := range snap.Towers {
		r.drawTower(screen, t)
	}
	for _, u := range snap.Units {
		r.drawUnit(screen, u)
	}
}

func (r *ArenaRenderer) drawGround(screen *ebiten.Image, w, h float64) {
	c := r.Camera
	x0, y0 := c.WorldToScreen(0, 0)
	x1, y1 := c.WorldToScreen(w, h)
	vector.DrawFilledRect(screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), colGround, false)

	// Lane between the towers
	laneH := c.Scale(60)
	midY := (y0 + y1) / 2
	vector.DrawFilledRect(screen, float32(x0), float32(midY-laneH/2), float32(x1-x0), float32(laneH), colLane, false)
	vector.StrokeRect(screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), 2, colBorder, false)

	midX := (x0 + x1) / 2
	vector.StrokeLine(screen, float32(midX), float32(y0), float32(midX), float32(y1), 1, colBorder, false)
}

func (r *ArenaRenderer) drawTower(screen *ebiten.Image, t match.TowerView) {
	c := r.Camera
	sx, sy := c.WorldToScreen(t.X, t.Y)
	size := c.Scale(t.Size)

	if t.HP <= 0 {
		vector.DrawFilledRect(screen, float32(sx-size/2), float32(sy-size/4), float32(size), float32(size/2), colRubble, false)
		return
	}
	if r.ShowRange {
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(c.Scale(t.Range)), rangeColors[sideIndex(t.Owner)], false)
	}
	vector.DrawFilledRect(screen, float32(sx-size/2), float32(sy-size/2), float32(size), float32(size), SideColor(t.Owner), false)
	vector.StrokeRect(screen, float32(sx-size/2), float32(sy-size/2), float32(size), float32(size), 2, color.White, false)
	drawHPBar(screen, sx-size/2, sy-size/2-10, size, 5, t.HP, t.MaxHP)
}

func (r *ArenaRenderer) drawUnit(screen *ebiten.Image, u match.UnitView) {
	c := r.Camera
	sx, sy := c.WorldToScreen(u.X, u.Y)
	rad := c.Scale(u.Radius)
	vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(rad), SideColor(u.Owner), false)
	vector.StrokeCircle(screen, float32(sx), float32(sy), float32(rad), 1, color.White, false)
	drawHPBar(screen, sx-rad, sy-rad-6, 2*rad, 3, u.HP, u.MaxHP)
}

// drawHPBar draws a health bar with its top-left corner at (x, y)
func drawHPBar(screen *ebiten.Image, x, y, w, h float64, hp, maxHP int) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), colHPBack, false)
	ratio := HealthRatio(hp, maxHP)
	if ratio <= 0 {
		return
	}
	col := colHPFull
	if ratio < 0.3 {
		col = colHPLow
	}
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w*ratio), float32(h), col, false)
}

// HealthRatio returns hp/maxHP clamped to [0, 1]
func HealthRatio(hp, maxHP int) float64 {
	if maxHP <= 0 || hp <= 0 {
		return 0
	}
	if hp >= maxHP {
		return 1
	}
	return float64(hp) / float64(maxHP)
}

// SideColor returns the team color for side
func SideColor(s core.Side) color.RGBA {
	return sideColors[sideIndex(s)]
}

func sideIndex(s core.Side) int {
	if s == core.SideAI {
		return 1
	}
	return 0
}
