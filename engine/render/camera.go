package render

import "math"

// Camera maps arena coordinates onto the window. The arena is flat, so
// this is a uniform scale plus a letterbox offset.
type Camera struct {
	X, Y    float64 // arena point shown at the screen center
	Zoom    float64 // screen pixels per arena unit
	MinZoom float64
	MaxZoom float64
	ScreenW int // viewport width in pixels
	ScreenH int // viewport height in pixels
}

// NewCamera creates a camera with default settings
func NewCamera(screenW, screenH int) *Camera {
	return &Camera{
		Zoom:    1.0,
		MinZoom: 0.25,
		MaxZoom: 4.0,
		ScreenW: screenW,
		ScreenH: screenH,
	}
}

// Resize updates the viewport size
func (c *Camera) Resize(screenW, screenH int) {
	c.ScreenW = screenW
	c.ScreenH = screenH
}

// Fit centers an arena of the given size and zooms so it fills the
// viewport without cropping, leaving margin pixels on the tight axis.
func (c *Camera) Fit(arenaW, arenaH float64, margin int) {
	c.X = arenaW / 2
	c.Y = arenaH / 2
	if arenaW <= 0 || arenaH <= 0 {
		return
	}
	availW := float64(c.ScreenW - 2*margin)
	availH := float64(c.ScreenH - 2*margin)
	c.SetZoom(math.Min(availW/arenaW, availH/arenaH))
}

// SetZoom sets zoom level with clamping
func (c *Camera) SetZoom(z float64) {
	c.Zoom = math.Max(c.MinZoom, math.Min(c.MaxZoom, z))
}

// WorldToScreen converts an arena position to a screen pixel position
func (c *Camera) WorldToScreen(wx, wy float64) (float64, float64) {
	sx := (wx-c.X)*c.Zoom + float64(c.ScreenW)/2
	sy := (wy-c.Y)*c.Zoom + float64(c.ScreenH)/2
	return sx, sy
}

// ScreenToWorld converts a screen pixel to an arena position
func (c *Camera) ScreenToWorld(sx, sy int) (float64, float64) {
	wx := (float64(sx)-float64(c.ScreenW)/2)/c.Zoom + c.X
	wy := (float64(sy)-float64(c.ScreenH)/2)/c.Zoom + c.Y
	return wx, wy
}

// Scale converts an arena length to pixels
func (c *Camera) Scale(d float64) float64 {
	return d * c.Zoom
}
