package network

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHub_BroadcastReachesSpectator(t *testing.T) {
	hub := NewHub(quietLogger())
	srv := httptest.NewServer(hub)
	defer srv.Close()
	defer hub.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	type frame struct {
		Tick   int    `json:"tick"`
		Status string `json:"status"`
	}
	if err := hub.Broadcast(frame{Tick: 7, Status: "playing"}); err != nil {
		t.Fatal(err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got frame
	if err := json.Unmarshal(msg, &got); err != nil {
		t.Fatalf("bad json %q: %v", msg, err)
	}
	if got.Tick != 7 || got.Status != "playing" {
		t.Errorf("got %+v", got)
	}
}

func TestHub_ClientLeaving(t *testing.T) {
	hub := NewHub(quietLogger())
	srv := httptest.NewServer(hub)
	defer srv.Close()
	defer hub.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	conn.Close()
	waitFor(t, func() bool { return hub.ClientCount() == 0 })

	if err := hub.Broadcast(map[string]int{"tick": 1}); err != nil {
		t.Fatalf("broadcast with no clients: %v", err)
	}
}

func TestHub_BroadcastRejectsUnencodable(t *testing.T) {
	hub := NewHub(quietLogger())
	if err := hub.Broadcast(func() {}); err == nil {
		t.Fatal("expected json error")
	}
}
