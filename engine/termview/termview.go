// Package termview renders match snapshots into a terminal grid.
package termview

import (
	"fmt"
	"math"

	"github.com/1siamBot/skirmish/engine/core"
	"github.com/1siamBot/skirmish/engine/match"
	"github.com/gdamore/tcell/v2"
)

// Projection maps arena coordinates onto terminal cells. Row 0 holds the
// status line and the last row the key help, the arena gets the rest.
type Projection struct {
	Cols, Rows     int
	ArenaW, ArenaH float64
}

// Cell returns the column and row for an arena position
func (p Projection) Cell(x, y float64) (int, int) {
	cols, rows := p.Cols-2, p.Rows-4
	if cols < 1 || rows < 1 || p.ArenaW <= 0 || p.ArenaH <= 0 {
		return 0, 1
	}
	col := int(math.Floor(x / p.ArenaW * float64(cols)))
	row := int(math.Floor(y / p.ArenaH * float64(rows)))
	col = clamp(col, 0, cols-1)
	row = clamp(row, 0, rows-1)
	return col + 1, row + 2
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var (
	styleDefault = tcell.StyleDefault
	styleBorder  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleHelp    = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleWin     = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true).Reverse(true)
	styleLoss    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true).Reverse(true)
	sideStyles   = [2]tcell.Style{
		tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true),
		tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
	}
)

// Help is the key legend drawn on the last row
const Help = "space: spawn  p: pause  r: restart  q: quit"

// View draws onto a tcell screen
type View struct {
	Screen tcell.Screen
}

func New(s tcell.Screen) *View {
	return &View{Screen: s}
}

// Draw renders snap and shows the frame
func (v *View) Draw(snap match.Snapshot) {
	s := v.Screen
	s.Clear()
	cols, rows := s.Size()
	proj := Projection{Cols: cols, Rows: rows, ArenaW: snap.Width, ArenaH: snap.Height}

	v.drawBorder(cols, rows)
	for _, t := range snap.Towers {
		v.drawTower(proj, t)
	}
	for _, u := range snap.Units {
		col, row := proj.Cell(u.X, u.Y)
		s.SetContent(col, row, unitGlyph(u), nil, sideStyles[sideIndex(u.Owner)])
	}

	v.print(0, 0, StatusLine(snap), styleDefault)
	v.print(0, rows-1, Help, styleHelp)

	switch snap.Outcome {
	case core.OutcomePlayerWon:
		v.banner(cols, rows, " VICTORY - r to play again ", styleWin)
	case core.OutcomePlayerLost:
		v.banner(cols, rows, " DEFEAT - r to play again ", styleLoss)
	default:
		if snap.Paused {
			v.banner(cols, rows, " PAUSED ", styleBorder.Reverse(true))
		}
	}
	s.Show()
}

// StatusLine summarizes the match in one row
func StatusLine(snap match.Snapshot) string {
	pt, at := snap.Tower(core.SidePlayer), snap.Tower(core.SideAI)
	return fmt.Sprintf("Elixir %d/%d | Towers %d vs %d | Units %d | %.1fs",
		snap.Elixir, snap.MaxElixir, max(pt.HP, 0), max(at.HP, 0), len(snap.Units), snap.Elapsed)
}

func (v *View) drawBorder(cols, rows int) {
	top, bottom := 1, rows-2
	for x := 0; x < cols; x++ {
		v.Screen.SetContent(x, top, '─', nil, styleBorder)
		v.Screen.SetContent(x, bottom, '─', nil, styleBorder)
	}
	for y := top + 1; y < bottom; y++ {
		v.Screen.SetContent(0, y, '│', nil, styleBorder)
		v.Screen.SetContent(cols-1, y, '│', nil, styleBorder)
	}
}

func (v *View) drawTower(proj Projection, t match.TowerView) {
	col, row := proj.Cell(t.X, t.Y)
	style := sideStyles[sideIndex(t.Owner)]
	glyph := '█'
	if t.HP <= 0 {
		glyph = '░'
		style = styleBorder
	}
	for dy := -1; dy <= 1; dy++ {
		v.Screen.SetContent(col, row+dy, glyph, nil, style)
	}
	v.print(col-1, row-2, fmt.Sprintf("%d", max(t.HP, 0)), style)
}

func (v *View) banner(cols, rows int, msg string, style tcell.Style) {
	v.print((cols-len(msg))/2, rows/2, msg, style)
}

func (v *View) print(x, y int, msg string, style tcell.Style) {
	for i, r := range []rune(msg) {
		v.Screen.SetContent(x+i, y, r, nil, style)
	}
}

// unitGlyph picks a glyph by remaining health
func unitGlyph(u match.UnitView) rune {
	if u.MaxHP > 0 && u.HP*2 < u.MaxHP {
		return 'o'
	}
	return 'O'
}

func sideIndex(s core.Side) int {
	if s == core.SideAI {
		return 1
	}
	return 0
}
