package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ayusman/hoopshot/internal/game"
	"github.com/ayusman/hoopshot/internal/physics"
)

func TestGameHandler_State(t *testing.T) {
	g := newFakeGame()
	h := NewGameHandler(g)

	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %s", ct)
	}

	var snap game.Snapshot
	if err := json.NewDecoder(rec.Body).Decode(&snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.Mode != "single" || len(snap.Hoops) != 2 {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestGameHandler_Layout(t *testing.T) {
	g := newFakeGame()
	h := NewGameHandler(g)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/layout", nil))

	var l physics.Layout
	if err := json.NewDecoder(rec.Body).Decode(&l); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if l != g.Layout() {
		t.Errorf("GET layout = %+v, want %+v", l, g.Layout())
	}

	l.RightHoop.RimPostLeft.Y -= 25
	body, _ := json.Marshal(l)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/layout", bytes.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("PUT status = %d: %s", rec.Code, rec.Body.String())
	}
	if g.Layout() != l {
		t.Errorf("layout not applied: %+v", g.Layout())
	}
}

func TestGameHandler_Layout_BadRequest(t *testing.T) {
	h := NewGameHandler(newFakeGame())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/layout", bytes.NewBufferString("{")))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestGameHandler_ResetAndPause(t *testing.T) {
	g := newFakeGame()
	h := NewGameHandler(g)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reset", nil))
	if rec.Code != http.StatusOK || g.resets != 1 {
		t.Errorf("reset: status %d, resets %d", rec.Code, g.resets)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/pause", bytes.NewBufferString(`{"paused":true}`)))
	if rec.Code != http.StatusOK || !g.IsPaused() {
		t.Errorf("pause: status %d, paused %v", rec.Code, g.IsPaused())
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/pause", nil))
	var resp pauseResponse
	json.NewDecoder(rec.Body).Decode(&resp)
	if !resp.Paused {
		t.Error("GET /api/pause should report paused")
	}
}

func TestGameHandler_MethodNotAllowed(t *testing.T) {
	h := NewGameHandler(newFakeGame())

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/state"},
		{http.MethodDelete, "/api/layout"},
		{http.MethodGet, "/api/reset"},
		{http.MethodPost, "/api/pause"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			if rec.Code != http.StatusMethodNotAllowed {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
			}
		})
	}
}
