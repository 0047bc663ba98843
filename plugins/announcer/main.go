// Package main provides an announcer hook that calls out baskets through the
// system speech synthesizer ("say" on macOS, espeak elsewhere).
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/ayusman/hoopshot/internal/plugin"
)

// Config is read from the manifest's config block.
type Config struct {
	Voice string `json:"voice"`
	// Quiet only reports what would be said.
	Quiet bool `json:"quiet"`
}

func main() {
	// Read request from stdin
	var req plugin.Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeResponse(plugin.Response{Error: fmt.Sprintf("failed to decode request: %v", err)})
		return
	}

	var cfg Config
	if len(req.Config) > 0 {
		if err := json.Unmarshal(req.Config, &cfg); err != nil {
			writeResponse(plugin.Response{Error: fmt.Sprintf("invalid config: %v", err)})
			return
		}
	}

	line := announcement(&req)
	if line == "" {
		writeResponse(plugin.Response{Success: true})
		return
	}

	if !cfg.Quiet {
		if err := speak(line, cfg.Voice); err != nil {
			writeResponse(plugin.Response{Error: fmt.Sprintf("speak failed: %v", err)})
			return
		}
	}

	data, _ := json.Marshal(map[string]string{"said": line})
	writeResponse(plugin.Response{Success: true, Data: data})
}

// announcement returns the phrase for req, or "" for events it ignores.
func announcement(req *plugin.Request) string {
	switch req.Event {
	case "score":
		return fmt.Sprintf("%s scores! %d to %d", req.Scorer, req.Left, req.Right)
	case "reset":
		return "New game"
	default:
		return ""
	}
}

func speak(line, voice string) error {
	var cmd *exec.Cmd
	if runtime.GOOS == "darwin" {
		args := []string{line}
		if voice != "" {
			args = append([]string{"-v", voice}, args...)
		}
		cmd = exec.Command("say", args...)
	} else {
		args := []string{line}
		if voice != "" {
			args = append([]string{"-v", voice}, args...)
		}
		cmd = exec.Command("espeak", args...)
	}

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, string(output))
	}
	return nil
}

// writeResponse writes resp to stdout.
func writeResponse(resp plugin.Response) {
	json.NewEncoder(os.Stdout).Encode(resp)
}
