package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/1siamBot/skirmish/engine/launch"
	"github.com/1siamBot/skirmish/engine/match"
	"github.com/1siamBot/skirmish/engine/termview"
	"github.com/gdamore/tcell/v2"
)

const frameInterval = 33 * time.Millisecond // ~30 FPS

type app struct {
	session *launch.Session
	screen  tcell.Screen
	view    *termview.View
	start   time.Time
}

// handleEvent applies one terminal event. It returns false to quit.
func (a *app) handleEvent(ev tcell.Event) bool {
	m := a.session.Match
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyEnter:
			m.SpawnPlayerUnit()
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				m.SpawnPlayerUnit()
			case 'p':
				if !m.Over() {
					m.Pause()
				}
			case 'r':
				if m.Over() {
					a.session.Restart()
				}
			}
		}
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *app) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev := <-events:
			if !a.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			a.session.Match.Frame(time.Since(a.start))
			a.session.Publish()
			a.view.Draw(a.session.Match.Snapshot())
		}
	}
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "skirmish-term: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var flags launch.Flags
	flags.Register(flag.CommandLine, 0.25)
	logPath := flag.String("log", "", "write logs to this file (the terminal is taken by the game)")
	flag.Parse()

	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := launch.NewLogger(logOut, flags.Verbose)

	session, err := launch.Start(flags, match.Options{}, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Error("shutdown", "error", err)
		}
	}()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("initialize screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initialize screen: %w", err)
	}
	defer screen.Fini()

	a := &app{
		session: session,
		screen:  screen,
		view:    termview.New(screen),
		start:   time.Now(),
	}
	a.run()
	return nil
}
