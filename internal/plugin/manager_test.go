package plugin

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestManager_Discover(t *testing.T) {
	root := t.TempDir()
	writeHook(t, root, "buzzer", "echo '{}'\n", "score")
	writeHook(t, root, "announcer", "echo '{}'\n", "score", "reset")

	// Directories without a manifest, with a broken manifest, and plain files
	// are all ignored.
	os.MkdirAll(filepath.Join(root, "empty"), 0o755)
	os.MkdirAll(filepath.Join(root, "broken"), 0o755)
	os.WriteFile(filepath.Join(root, "broken", manifestFile), []byte("{"), 0o644)
	os.WriteFile(filepath.Join(root, "README"), []byte("hi"), 0o644)

	m := NewManager(root)
	if err := m.Discover(); err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	plugins := m.List()
	if len(plugins) != 2 {
		t.Fatalf("expected 2 plugins, got %d", len(plugins))
	}
	if plugins[0].Manifest.Name != "announcer" || plugins[1].Manifest.Name != "buzzer" {
		t.Errorf("List() not sorted: %s, %s", plugins[0].Manifest.Name, plugins[1].Manifest.Name)
	}

	p, err := m.Get("buzzer")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if p.Executable != filepath.Join(root, "buzzer", "hook.sh") {
		t.Errorf("Executable = %q", p.Executable)
	}
}

func TestManager_Discover_MissingDir(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "nope"))

	if err := m.Discover(); err != nil {
		t.Errorf("Discover() error = %v, want nil", err)
	}
	if len(m.List()) != 0 {
		t.Error("expected no plugins")
	}
}

func TestManager_Discover_Rescan(t *testing.T) {
	root := t.TempDir()
	writeHook(t, root, "buzzer", "echo '{}'\n", "score")

	m := NewManager(root)
	m.Discover()
	os.RemoveAll(filepath.Join(root, "buzzer"))
	m.Discover()

	if _, err := m.Get("buzzer"); !errors.Is(err, ErrPluginNotFound) {
		t.Errorf("Get() after removal error = %v, want ErrPluginNotFound", err)
	}
}

func TestManager_Subscribers(t *testing.T) {
	root := t.TempDir()
	writeHook(t, root, "buzzer", "echo '{}'\n", "score")
	writeHook(t, root, "announcer", "echo '{}'\n", "score", "reset")

	m := NewManager(root)
	m.Discover()

	tests := []struct {
		event string
		want  int
	}{
		{"score", 2},
		{"reset", 1},
		{"other", 0},
	}
	for _, tt := range tests {
		if got := len(m.Subscribers(tt.event)); got != tt.want {
			t.Errorf("Subscribers(%q) = %d, want %d", tt.event, got, tt.want)
		}
	}
}
