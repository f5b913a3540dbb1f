package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"
)

// LobbyState is the match summary served to spectators at /info
type LobbyState struct {
	HostName   string `json:"host_name"`
	MatchID    string `json:"match_id"`
	Difficulty string `json:"difficulty"`
	Spectators int    `json:"spectators"`
	Finished   bool   `json:"finished"`
	Outcome    string `json:"outcome,omitempty"`
}

// Lobby serves the spectator endpoints: /ws streams snapshots through the
// hub, /info describes the running match.
type Lobby struct {
	mu    sync.Mutex
	State LobbyState
	Hub   *Hub

	srv      *http.Server
	listener net.Listener
	log      *slog.Logger
}

// NewLobby creates a lobby around hub
func NewLobby(hostName string, hub *Hub, log *slog.Logger) *Lobby {
	if log == nil {
		log = slog.Default()
	}
	return &Lobby{
		State: LobbyState{HostName: hostName},
		Hub:   hub,
		log:   log,
	}
}

// Handler returns the lobby's routes
func (l *Lobby) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", l.Hub)
	mux.HandleFunc("/info", func(w http.ResponseWriter, r *http.Request) {
		data, err := l.Marshal()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
	})
	return mux
}

// Listen starts serving on addr in the background
func (l *Lobby) Listen(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("lobby listen %s: %w", addr, err)
	}
	l.listener = ln
	l.srv = &http.Server{Handler: l.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := l.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.log.Error("lobby server stopped", "error", err)
		}
	}()
	l.log.Info("spectator lobby listening", "addr", ln.Addr().String())
	return nil
}

// Addr returns the bound address, or "" before Listen
func (l *Lobby) Addr() string {
	if l.listener == nil {
		return ""
	}
	return l.listener.Addr().String()
}

// SetMatch announces a new match to spectators
func (l *Lobby) SetMatch(id, difficulty string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.State.MatchID = id
	l.State.Difficulty = difficulty
	l.State.Finished = false
	l.State.Outcome = ""
}

// Finish records the outcome of the current match
func (l *Lobby) Finish(outcome string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.State.Finished = true
	l.State.Outcome = outcome
}

// Marshal returns JSON of the lobby state
func (l *Lobby) Marshal() ([]byte, error) {
	l.mu.Lock()
	state := l.State
	l.mu.Unlock()
	state.Spectators = l.Hub.ClientCount()
	return json.Marshal(state)
}

// Close disconnects spectators and stops the server
func (l *Lobby) Close(ctx context.Context) error {
	l.Hub.Close()
	if l.srv == nil {
		return nil
	}
	return l.srv.Shutdown(ctx)
}
