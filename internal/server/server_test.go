package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ayusman/hoopshot/internal/capture"
	"github.com/ayusman/hoopshot/internal/store"
)

func getHealth(t *testing.T, s *Server) map[string]interface{} {
	t.Helper()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("health status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %s", ct)
	}
	var response map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return response
}

func TestServer_Health(t *testing.T) {
	s := New(Config{})

	t.Run("reports status and uptime", func(t *testing.T) {
		response := getHealth(t, s)
		if response["status"] != "ok" {
			t.Errorf("status = %v", response["status"])
		}
		if _, ok := response["uptime"]; !ok {
			t.Error("expected 'uptime' field in response")
		}
	})

	t.Run("counts snapshot viewers", func(t *testing.T) {
		if got := getHealth(t, s)["viewers"]; got != float64(0) {
			t.Fatalf("viewers = %v, want 0", got)
		}

		ts := httptest.NewServer(s)
		defer ts.Close()
		dialSnapshots(t, ts)
		dialSnapshots(t, ts)
		waitForClients(t, s.Hub(), 2)

		if got := getHealth(t, s)["viewers"]; got != float64(2) {
			t.Errorf("viewers = %v, want 2", got)
		}
	})

	t.Run("only allows GET", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/health", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("POST status = %d", rec.Code)
		}
	})
}

func TestServer_RouteWiring(t *testing.T) {
	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	full := Config{Store: st, Game: newSessionGame(), Frames: capture.NewFrameBuffer()}

	tests := []struct {
		name   string
		config Config
		method string
		path   string
		want   int
	}{
		{"state without a game", Config{}, http.MethodGet, "/api/state", http.StatusNotFound},
		{"calibrations without a store", Config{}, http.MethodGet, "/api/calibrations", http.StatusNotFound},
		{"stream without frames", Config{}, http.MethodGet, "/api/stream", http.StatusNotFound},
		{"snapshots needs a websocket upgrade", Config{}, http.MethodGet, "/api/snapshots", http.StatusBadRequest},
		{"unknown api path", full, http.MethodGet, "/api/nonexistent", http.StatusNotFound},

		{"state", full, http.MethodGet, "/api/state", http.StatusOK},
		{"layout", full, http.MethodGet, "/api/layout", http.StatusOK},
		{"pause", full, http.MethodGet, "/api/pause", http.StatusOK},
		{"reset is POST only", full, http.MethodGet, "/api/reset", http.StatusMethodNotAllowed},
		{"reset", full, http.MethodPost, "/api/reset", http.StatusOK},
		{"calibration list", full, http.MethodGet, "/api/calibrations", http.StatusOK},
		{"calibration by id", full, http.MethodGet, "/api/calibrations/missing", http.StatusNotFound},
		{"calibrations without a game still list", Config{Store: st}, http.MethodGet, "/api/calibrations", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.config)
			rec := httptest.NewRecorder()
			s.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != tt.want {
				t.Errorf("%s %s = %d, want %d", tt.method, tt.path, rec.Code, tt.want)
			}
		})
	}
}

func TestServer_StreamRoute(t *testing.T) {
	s := New(Config{Frames: capture.NewFrameBuffer()})

	// A cancelled request returns once the stream headers are written.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/api/stream", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "multipart/x-mixed-replace") {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestServer_StaticFiles(t *testing.T) {
	dir := t.TempDir()
	index := "<html><body>hoopshot</body></html>"
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte(index), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	s := New(Config{StaticDir: dir, Game: newSessionGame()})

	t.Run("serves index.html at root path", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusOK || rec.Body.String() != index {
			t.Errorf("GET / = %d %q", rec.Code, rec.Body.String())
		}
	})

	t.Run("api routes win over the file server", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/state", nil))
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("GET /api/state Content-Type = %q", ct)
		}
	})

	t.Run("missing files are 404", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nonexistent.html", nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d", rec.Code)
		}
	})

	t.Run("no static dir", func(t *testing.T) {
		rec := httptest.NewRecorder()
		New(Config{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d", rec.Code)
		}
	})
}
