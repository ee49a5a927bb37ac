package spectator

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gridsnake/game"
	"gridsnake/game/types"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

func TestStateBeforePublish(t *testing.T) {
	h := NewHub(zerolog.Nop())
	rec := httptest.NewRecorder()

	h.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/state", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503, got %d", rec.Code)
	}
}

func TestStateReturnsLatest(t *testing.T) {
	h := NewHub(zerolog.Nop())
	g := game.NewGame(game.DefaultOptions())
	h.Publish(g.Tick())
	h.Publish(g.Tick())

	rec := httptest.NewRecorder()
	h.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/state", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var v game.View
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if v.Tick != 2 {
		t.Errorf("Expected tick 2, got %d", v.Tick)
	}
	if !strings.Contains(rec.Header().Get("Content-Type"), "application/json") {
		t.Errorf("Unexpected content type %q", rec.Header().Get("Content-Type"))
	}
}

func TestWebsocketStream(t *testing.T) {
	h := NewHub(zerolog.Nop())
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(5 * time.Second)
	for h.Clients() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	g := game.NewGame(game.DefaultOptions())
	h.Publish(g.Tick())

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var v game.View
	if err := conn.ReadJSON(&v); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if v.Tick != 1 || v.Session != g.UUID {
		t.Errorf("Unexpected frame tick=%d session=%q", v.Tick, v.Session)
	}
	if v.Heading != types.Up {
		t.Errorf("Expected heading up, got %v", v.Heading)
	}
	if len(v.Segments) < 2 {
		t.Errorf("Expected at least 2 segments, got %d", len(v.Segments))
	}
}
