// Package ui draws the heads-up display over the arena: the elixir pool,
// the spawn button, and the pause and game-over overlays.
package ui

import (
	"fmt"
	"image/color"

	"github.com/1siamBot/skirmish/engine/core"
	"github.com/1siamBot/skirmish/engine/match"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	colBar       = color.RGBA{0, 0, 0, 180}
	colPip       = color.RGBA{200, 60, 220, 255}
	colPipEmpty  = color.RGBA{60, 30, 70, 255}
	colBtn       = color.RGBA{40, 70, 120, 255}
	colBtnHover  = color.RGBA{60, 100, 170, 255}
	colBtnDis    = color.RGBA{50, 50, 60, 255}
	colBtnBorder = color.RGBA{150, 150, 200, 255}
	colPanel     = color.RGBA{16, 20, 32, 235}
	colWin       = color.RGBA{60, 220, 90, 255}
	colLoss      = color.RGBA{235, 70, 70, 255}
)

// Button is a clickable rectangle in screen pixels
type Button struct {
	X, Y, W, H int
	Text       string
}

// Contains reports whether the point lies inside the button
func (b Button) Contains(mx, my int) bool {
	return mx >= b.X && mx < b.X+b.W && my >= b.Y && my < b.Y+b.H
}

// HUD is the main heads-up display
type HUD struct {
	ScreenW, ScreenH int
	TopBarHeight     int
	UnitCost         int
	UnitName         string
}

func NewHUD(sw, sh int, unitName string, unitCost float64) *HUD {
	return &HUD{
		ScreenW:      sw,
		ScreenH:      sh,
		TopBarHeight: 30,
		UnitName:     unitName,
		UnitCost:     int(unitCost),
	}
}

// Resize updates the layout for a new screen size
func (h *HUD) Resize(sw, sh int) {
	h.ScreenW = sw
	h.ScreenH = sh
}

// SpawnButton is the bottom-center button that buys a unit
func (h *HUD) SpawnButton() Button {
	w, ht := 180, 40
	return Button{
		X:    h.ScreenW/2 - w/2,
		Y:    h.ScreenH - ht - 12,
		W:    w,
		H:    ht,
		Text: fmt.Sprintf("%s (%d)", h.UnitName, h.UnitCost),
	}
}

// RestartButton is shown on the game-over panel
func (h *HUD) RestartButton() Button {
	w, ht := 200, 40
	return Button{X: h.ScreenW/2 - w/2, Y: h.ScreenH/2 + 50, W: w, H: ht, Text: "PLAY AGAIN"}
}

// Draw renders the entire HUD
func (h *HUD) Draw(screen *ebiten.Image, snap match.Snapshot) {
	h.drawTopBar(screen, snap)
	h.drawSpawnButton(screen, snap)
	switch {
	case snap.Outcome != core.OutcomeNone:
		h.drawGameOver(screen, snap)
	case snap.Paused:
		h.drawPaused(screen)
	}
}

func (h *HUD) drawTopBar(screen *ebiten.Image, snap match.Snapshot) {
	vector.DrawFilledRect(screen, 0, 0, float32(h.ScreenW), float32(h.TopBarHeight), colBar, false)
	info := fmt.Sprintf("Elixir: %d/%d", snap.Elixir, snap.MaxElixir)
	ebitenutil.DebugPrintAt(screen, info, 10, 8)

	// One pip per whole elixir
	for i := 0; i < snap.MaxElixir; i++ {
		clr := colPipEmpty
		if i < snap.Elixir {
			clr = colPip
		}
		vector.DrawFilledRect(screen, float32(110+i*16), 9, 12, 12, clr, false)
	}

	pt, at := snap.Tower(core.SidePlayer), snap.Tower(core.SideAI)
	status := fmt.Sprintf("%5.1fs  Tower %d vs %d", snap.Elapsed, max(pt.HP, 0), max(at.HP, 0))
	ebitenutil.DebugPrintAt(screen, status, h.ScreenW-len(status)*6-10, 8)
}

func (h *HUD) drawSpawnButton(screen *ebiten.Image, snap match.Snapshot) {
	b := h.SpawnButton()
	mx, my := ebiten.CursorPosition()

	clr := colBtn
	switch {
	case snap.Elixir < h.UnitCost || snap.Outcome != core.OutcomeNone:
		clr = colBtnDis
	case b.Contains(mx, my):
		clr = colBtnHover
	}
	drawButton(screen, b, clr)
}

func (h *HUD) drawPaused(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, float32(h.ScreenW), float32(h.ScreenH), color.RGBA{0, 0, 0, 120}, false)
	drawCentered(screen, "PAUSED - press P to resume", h.ScreenW/2, h.ScreenH/2, color.White)
}

func (h *HUD) drawGameOver(screen *ebiten.Image, snap match.Snapshot) {
	vector.DrawFilledRect(screen, 0, 0, float32(h.ScreenW), float32(h.ScreenH), color.RGBA{0, 0, 0, 160}, false)

	cx, cy := h.ScreenW/2, h.ScreenH/2
	panelW, panelH := 360, 200
	px, py := float32(cx-panelW/2), float32(cy-panelH/2)
	vector.DrawFilledRect(screen, px, py, float32(panelW), float32(panelH), colPanel, false)
	vector.StrokeRect(screen, px, py, float32(panelW), float32(panelH), 2, colBtnBorder, false)

	title, clr := "DEFEAT", colLoss
	if snap.Outcome == core.OutcomePlayerWon {
		title, clr = "VICTORY", colWin
	}
	ty := int(py) + 40
	drawCentered(screen, title, cx, ty, clr)
	vector.DrawFilledRect(screen, float32(cx-60), float32(ty+8), 120, 3, clr, false)

	drawCentered(screen, fmt.Sprintf("Match time: %.1fs", snap.Elapsed), cx, ty+34, color.White)
	drawCentered(screen, fmt.Sprintf("Units fallen: %d", snap.Dead), cx, ty+54, color.White)

	drawButton(screen, h.RestartButton(), colBtn)
}

func drawButton(screen *ebiten.Image, b Button, clr color.RGBA) {
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), clr, false)
	vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 1, colBtnBorder, false)
	drawCentered(screen, b.Text, b.X+b.W/2, b.Y+b.H/2+5, color.White)
}

// drawCentered draws s with its baseline at y, centered on x
func drawCentered(screen *ebiten.Image, s string, x, y int, clr color.Color) {
	w := len(s) * basicfont.Face7x13.Advance
	text.Draw(screen, s, basicfont.Face7x13, x-w/2, y, clr)
}
