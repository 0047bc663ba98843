// Package main provides a hook that appends every basket to a tab-separated
// log file.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ayusman/hoopshot/internal/plugin"
)

// Config is read from the manifest's config block.
type Config struct {
	// Path of the log file. Relative paths are under the user's home.
	Path string `json:"path"`
}

const defaultPath = ".hoopshot/scores.tsv"

func main() {
	// Read request from stdin
	var req plugin.Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeResponse(plugin.Response{Error: fmt.Sprintf("failed to decode request: %v", err)})
		return
	}

	cfg := Config{Path: defaultPath}
	if len(req.Config) > 0 {
		if err := json.Unmarshal(req.Config, &cfg); err != nil {
			writeResponse(plugin.Response{Error: fmt.Sprintf("invalid config: %v", err)})
			return
		}
	}

	path, err := resolvePath(cfg.Path)
	if err != nil {
		writeResponse(plugin.Response{Error: err.Error()})
		return
	}
	if err := appendLine(path, formatLine(&req)); err != nil {
		writeResponse(plugin.Response{Error: fmt.Sprintf("write log: %v", err)})
		return
	}

	writeResponse(plugin.Response{Success: true})
}

// formatLine renders req as one log line.
func formatLine(req *plugin.Request) string {
	at := req.At
	if at.IsZero() {
		at = time.Now()
	}
	return fmt.Sprintf("%s\t%s\t%s\t%d\t%s\t%d\t%d\n",
		at.UTC().Format(time.RFC3339), req.Session, req.Event, req.BallID, req.Scorer, req.Left, req.Right)
}

func resolvePath(p string) (string, error) {
	if p == "" {
		p = defaultPath
	}
	if filepath.IsAbs(p) {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home directory: %w", err)
	}
	return filepath.Join(home, p), nil
}

func appendLine(path, line string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writeResponse writes resp to stdout.
func writeResponse(resp plugin.Response) {
	json.NewEncoder(os.Stdout).Encode(resp)
}
