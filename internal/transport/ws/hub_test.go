package ws

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

func dialHub(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHubBroadcastsContentUpdates(t *testing.T) {
	hub := NewHub(zap.NewNop())
	defer hub.Close()

	srv := httptest.NewServer(hub)
	defer srv.Close()

	first := dialHub(t, srv)
	second := dialHub(t, srv)

	// Registration happens after the upgrade response; give both
	// connections a moment to land in the client set.
	deadline := time.Now().Add(2 * time.Second)
	for {
		hub.mu.Lock()
		n := len(hub.clients)
		hub.mu.Unlock()
		if n == 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("viewers registered = %d, want 2", n)
		}
		time.Sleep(10 * time.Millisecond)
	}

	hub.ContentUpdated("projects")

	for _, conn := range []*websocket.Conn{first, second} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, payload, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}

		var event Event
		if err := json.Unmarshal(payload, &event); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		if event.Event != "content-updated" || event.Category != "projects" {
			t.Errorf("event = %+v", event)
		}
	}
}

func TestHubCloseDisconnectsViewers(t *testing.T) {
	hub := NewHub(zap.NewNop())

	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dialHub(t, srv)

	deadline := time.Now().Add(2 * time.Second)
	for {
		hub.mu.Lock()
		n := len(hub.clients)
		hub.mu.Unlock()
		if n == 1 || time.Now().After(deadline) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	hub.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("expected close error after hub shutdown")
	}

	hub.mu.Lock()
	remaining := len(hub.clients)
	hub.mu.Unlock()
	if remaining != 0 {
		t.Errorf("clients after close = %d, want 0", remaining)
	}
}
