// Package tray provides a system tray menu for pausing the game and watching
// the score.
package tray

import (
	"fmt"
	"sync"

	"github.com/getlantern/systray"

	"github.com/ayusman/hoopshot/internal/game"
	"github.com/ayusman/hoopshot/internal/physics"
)

// Tray represents the system tray application.
type Tray struct {
	onPause func(paused bool)
	onReset func()
	onOpen  func()
	onQuit  func()
	paused  bool
	mode    string
	scores  physics.Scores
	mu      sync.RWMutex

	// Menu items stored for later updates
	menuPause *systray.MenuItem
	menuScore *systray.MenuItem
}

// New creates a new Tray with the game running.
func New() *Tray {
	return &Tray{}
}

// OnPause sets the callback invoked when the pause item is toggled.
func (t *Tray) OnPause(fn func(paused bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onPause = fn
}

// OnReset sets the callback invoked by the reset item.
func (t *Tray) OnReset(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onReset = fn
}

// OnOpen sets the callback invoked by the open item.
func (t *Tray) OnOpen(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onOpen = fn
}

// OnQuit sets the callback function to be called when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("Hoopshot")
	systray.SetTooltip("Hoopshot")

	t.mu.Lock()
	t.menuPause = systray.AddMenuItem(pauseTitle(t.paused), "Pause or resume the game")
	systray.AddSeparator()
	t.menuScore = systray.AddMenuItem(scoreTitle(t.mode, t.scores), "Current score")
	t.menuScore.Disable()
	t.mu.Unlock()

	menuReset := systray.AddMenuItem("New Game", "Respawn the balls and clear the score")
	systray.AddSeparator()
	menuOpen := systray.AddMenuItem("Open Game...", "Open the game in a browser")
	systray.AddSeparator()
	menuQuit := systray.AddMenuItem("Quit", "Quit Hoopshot")

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-t.menuPause.ClickedCh:
				t.handlePause()
			case <-menuReset.ClickedCh:
				t.handle(func() func() { return t.onReset })
			case <-menuOpen.ClickedCh:
				t.handle(func() func() { return t.onOpen })
			case <-menuQuit.ClickedCh:
				t.handle(func() func() { return t.onQuit })
				systray.Quit()
				return
			}
		}
	}()
}

func (t *Tray) onExit() {}

// handlePause flips the paused state and notifies the callback.
func (t *Tray) handlePause() {
	t.mu.Lock()
	t.paused = !t.paused
	paused := t.paused
	if t.menuPause != nil {
		t.menuPause.SetTitle(pauseTitle(paused))
	}
	callback := t.onPause
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(paused)
	}
}

func (t *Tray) handle(get func() func()) {
	t.mu.RLock()
	callback := get()
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// Render updates the score line. It only touches the menu when the score
// changes.
func (t *Tray) Render(snap game.Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if snap.Scores == t.scores && snap.Mode == t.mode {
		return
	}
	t.scores = snap.Scores
	t.mode = snap.Mode
	if t.menuScore != nil {
		t.menuScore.SetTitle(scoreTitle(t.mode, t.scores))
	}
}

// SetPaused shows paused without invoking the pause callback, for changes
// made elsewhere.
func (t *Tray) SetPaused(paused bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.paused = paused
	if t.menuPause != nil {
		t.menuPause.SetTitle(pauseTitle(paused))
	}
}

// IsPaused returns the current paused state.
func (t *Tray) IsPaused() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.paused
}

// Scores returns the last score shown.
func (t *Tray) Scores() physics.Scores {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.scores
}

func pauseTitle(paused bool) string {
	if paused {
		return "○ Paused"
	}
	return "● Playing"
}

// scoreTitle shows one combined score in single-hand mode and both sides
// otherwise.
func scoreTitle(mode string, s physics.Scores) string {
	if mode == "single" {
		return fmt.Sprintf("Score: %d", s.Total())
	}
	return fmt.Sprintf("Left %d - Right %d", s.Left, s.Right)
}
