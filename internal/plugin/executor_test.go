package plugin

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/ayusman/hoopshot/internal/physics"
)

// writeHook creates an executable shell hook in its own plugin directory
// under root and returns the plugin.
func writeHook(t *testing.T, root, name, script string, events ...string) *Plugin {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell hooks are not supported on Windows")
	}

	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "hook.sh"), []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatalf("write hook: %v", err)
	}

	manifest := Manifest{
		Name:       name,
		Version:    "1.0.0",
		Executable: "hook.sh",
		Events:     events,
	}
	data, _ := json.Marshal(manifest)
	if err := os.WriteFile(filepath.Join(dir, manifestFile), data, 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	return &Plugin{Manifest: manifest, Path: dir, Executable: filepath.Join(dir, "hook.sh")}
}

func scoreRequest() *Request {
	return &Request{
		Event:  "score",
		BallID: 2,
		Hoop:   physics.SideLeft,
		Scorer: physics.SideRight,
		Left:   0,
		Right:  3,
	}
}

func TestExecutor_Execute(t *testing.T) {
	p := writeHook(t, t.TempDir(), "ok", `cat <<'EOF'
{"success":true,"data":{"message":"swish"}}
EOF
`, "score")

	resp, err := NewExecutor(5*time.Second).Execute(context.Background(), p, scoreRequest())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !resp.Success || resp.Error != "" {
		t.Errorf("response = %+v", resp)
	}

	var data map[string]string
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if data["message"] != "swish" {
		t.Errorf("message = %q", data["message"])
	}
}

func TestExecutor_Execute_ReadsStdin(t *testing.T) {
	p := writeHook(t, t.TempDir(), "echo", `input=$(cat)
case "$input" in
  *'"scorer":"right"'*) echo '{"success":true,"data":"right"}' ;;
  *) echo '{"success":false,"error":"unexpected input"}' ;;
esac
`, "score")

	resp, err := NewExecutor(5*time.Second).Execute(context.Background(), p, scoreRequest())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !resp.Success {
		t.Errorf("hook did not see the request: %s", resp.Error)
	}
}

func TestExecutor_Execute_PassesManifestConfig(t *testing.T) {
	p := writeHook(t, t.TempDir(), "cfg", `input=$(cat)
case "$input" in
  *'"volume":7'*) echo '{"success":true}' ;;
  *) echo '{"success":false}' ;;
esac
`, "score")
	p.Manifest.Config = json.RawMessage(`{"volume":7}`)

	resp, err := NewExecutor(5*time.Second).Execute(context.Background(), p, scoreRequest())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !resp.Success {
		t.Error("manifest config should be forwarded when the request has none")
	}
}

func TestExecutor_Execute_Failures(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		timeout time.Duration
		wantErr string
	}{
		{"timeout", "sleep 5\n", 100 * time.Millisecond, "timed out"},
		{"invalid json", "echo not-json\n", time.Second, "parse plugin response"},
		{"non-zero exit", "echo boom >&2\nexit 3\n", time.Second, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeHook(t, t.TempDir(), "bad", tt.script, "score")

			_, err := NewExecutor(tt.timeout).Execute(context.Background(), p, scoreRequest())
			if err == nil {
				t.Fatal("Execute() should fail")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestExecutor_Execute_ErrorResponse(t *testing.T) {
	p := writeHook(t, t.TempDir(), "sad", `echo '{"success":false,"error":"no speakers"}'`+"\n", "score")

	resp, err := NewExecutor(time.Second).Execute(context.Background(), p, scoreRequest())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if resp.Success || resp.Error != "no speakers" {
		t.Errorf("response = %+v", resp)
	}
}

func TestNewExecutor_DefaultTimeout(t *testing.T) {
	if got := NewExecutor(0).timeout; got != DefaultTimeout {
		t.Errorf("timeout = %v, want %v", got, DefaultTimeout)
	}
}
