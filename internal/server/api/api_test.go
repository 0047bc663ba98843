package api

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/ayusman/hoopshot/internal/game"
	"github.com/ayusman/hoopshot/internal/physics"
	"github.com/ayusman/hoopshot/internal/store"
)

// fakeGame drives a real session without a camera.
type fakeGame struct {
	mu      sync.Mutex
	session *game.Session
	paused  bool
	resets  int
	applied []*store.Calibration
}

func newFakeGame() *fakeGame {
	cfg := game.SingleHandConfig()
	cfg.Seed = 3
	return &fakeGame{session: game.NewSession(cfg)}
}

func (g *fakeGame) Snapshot() game.Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session.Snapshot()
}

func (g *fakeGame) Layout() physics.Layout {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session.Layout()
}

func (g *fakeGame) SetLayout(l physics.Layout) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session.SetLayout(l)
}

func (g *fakeGame) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.resets++
	g.session.Reset()
}

func (g *fakeGame) SetPaused(paused bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.paused = paused
}

func (g *fakeGame) IsPaused() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.paused
}

func (g *fakeGame) ApplyCalibration(c *store.Calibration) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.applied = append(g.applied, c)
	return g.session.SetLayout(c.Layout)
}

func (g *fakeGame) CurrentCalibration(name string) *store.Calibration {
	g.mu.Lock()
	defer g.mu.Unlock()
	return &store.Calibration{
		Name:   name,
		Layout: g.session.Layout(),
		Width:  game.DefaultWidth,
		Height: game.DefaultHeight,
	}
}

// newTestStore creates a new Store with a temporary database for testing.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}
