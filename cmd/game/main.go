package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/1siamBot/skirmish/engine/audio"
	"github.com/1siamBot/skirmish/engine/input"
	"github.com/1siamBot/skirmish/engine/launch"
	"github.com/1siamBot/skirmish/engine/match"
	"github.com/1siamBot/skirmish/engine/render"
	"github.com/1siamBot/skirmish/engine/ui"
	"github.com/atotto/clipboard"
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720
	ArenaMargin  = 48
)

// Game implements ebiten.Game interface
type Game struct {
	session  *launch.Session
	camera   *render.Camera
	renderer *render.ArenaRenderer
	hud      *ui.HUD
	input    *input.InputState
	audio    *audio.AudioManager

	log   *slog.Logger
	start time.Time
	muted bool
}

func NewGame(s *launch.Session, am *audio.AudioManager, logger *slog.Logger) *Game {
	m := s.Match
	cam := render.NewCamera(ScreenWidth, ScreenHeight)
	cam.Fit(m.Rules.Arena.Width, m.Rules.Arena.Height, ArenaMargin)

	g := &Game{
		session:  s,
		camera:   cam,
		renderer: render.NewArenaRenderer(cam),
		hud:      ui.NewHUD(ScreenWidth, ScreenHeight, m.Rules.Unit.Name, m.Rules.Unit.Cost),
		input:    input.NewInputState(),
		audio:    am,
		log:      logger,
		start:    time.Now(),
	}
	am.SetListener(m.Rules.Arena.Width/2, m.Rules.Arena.Height/2)
	am.MaxDist = m.Rules.Arena.Width
	am.Listen(m.Bus)
	return g
}

func (g *Game) Update() error {
	g.input.Update()
	m := g.session.Match

	if g.input.Has(input.ActQuit) {
		return ebiten.Termination
	}
	if g.input.Has(input.ActPause) && !m.Over() {
		m.Pause()
	}
	if g.input.Has(input.ActMute) {
		g.setMuted(!g.muted)
	}
	if g.input.Has(input.ActToggleRange) {
		g.renderer.ShowRange = !g.renderer.ShowRange
	}
	if g.input.Has(input.ActCopy) {
		if err := clipboard.WriteAll(g.session.ShareText()); err != nil {
			g.log.Warn("copy to clipboard failed", "error", err)
		} else {
			g.log.Info("match info copied to clipboard")
		}
	}

	if m.Over() {
		clickRestart := g.input.LeftJustPressed && g.hud.RestartButton().Contains(g.input.MouseX, g.input.MouseY)
		if g.input.Has(input.ActRestart) || clickRestart {
			g.session.Restart()
			ebiten.SetWindowTitle(windowTitle(m.ID))
		}
	} else if !m.Paused() && (g.input.Has(input.ActSpawn) || g.input.LeftJustPressed) {
		m.SpawnPlayerUnit()
	}

	m.Frame(time.Since(g.start))
	g.session.Publish()
	return nil
}

func (g *Game) setMuted(muted bool) {
	g.muted = muted
	if muted {
		g.audio.SetVolume(0)
	} else {
		g.audio.SetVolume(1)
	}
}

func windowTitle(id uuid.UUID) string {
	return fmt.Sprintf("Skirmish - %s", id.String()[:8])
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{12, 14, 20, 255})
	snap := g.session.Match.Snapshot()
	g.renderer.Draw(screen, snap)
	g.hud.Draw(screen, snap)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.camera.ScreenW || outsideHeight != g.camera.ScreenH {
		r := g.session.Match.Rules
		g.camera.Resize(outsideWidth, outsideHeight)
		g.camera.Fit(r.Arena.Width, r.Arena.Height, ArenaMargin)
		g.hud.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

func main() {
	var flags launch.Flags
	flags.Register(flag.CommandLine, 0.25)
	mute := flag.Bool("mute", false, "start without sound")
	flag.Parse()

	logger := launch.NewLogger(os.Stderr, flags.Verbose)
	session, err := launch.Start(flags, match.Options{}, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Error("shutdown", "error", err)
		}
	}()

	am := audio.NewAudioManager()
	if err := am.Init(); err != nil {
		// Non-fatal, the game runs without sound
		logger.Warn("audio unavailable", "error", err)
	}
	defer am.Close()

	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle(windowTitle(session.Match.ID))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(true)

	game := NewGame(session, am, logger)
	game.setMuted(*mute)
	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		logger.Error("game stopped", "error", err)
	}
}
