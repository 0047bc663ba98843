package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/ayusman/hoopshot/internal/app"
	"github.com/ayusman/hoopshot/internal/capture"
	"github.com/ayusman/hoopshot/internal/config"
	"github.com/ayusman/hoopshot/internal/events"
	"github.com/ayusman/hoopshot/internal/game"
	"github.com/ayusman/hoopshot/internal/server"
	"github.com/ayusman/hoopshot/internal/store"
	"github.com/ayusman/hoopshot/internal/tray"
)

func main() {
	fmt.Println("Hoopshot - Gesture Basketball")

	cfg := config.Load()

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}
	st, err := store.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	gameCfg := game.ConfigForMode(cfg.Mode)
	gameCfg.Width = cfg.Width
	gameCfg.Height = cfg.Height
	gameCfg.TickRate = cfg.TickRate

	var publishers []events.Publisher
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rdb, err := events.Connect(ctx, cfg.RedisURL)
		cancel()
		if err != nil {
			log.Printf("Redis unavailable, score events stay local: %v", err)
		} else {
			log.Printf("Publishing score events to redis channel %s", cfg.RedisChannel)
			publishers = append(publishers, events.NewRedisPublisher(rdb, cfg.RedisChannel))
		}
	}

	camCfg := capture.DefaultConfig()
	camCfg.DeviceID = cfg.CameraID

	a := app.New(app.Config{
		Game:         gameCfg,
		Camera:       camCfg,
		Store:        st,
		PluginDir:    cfg.PluginDir,
		MotionThresh: cfg.MotionThresh,
		Publishers:   publishers,
	})
	defer a.Close()

	if err := a.LoadCalibration(); err != nil {
		log.Printf("Failed to load calibration: %v", err)
	}

	webDir := cfg.WebDir
	if webDir == "" {
		webDir = findWebDir(cfg.DataDir)
	}
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		Game:      a,
		Frames:    a.Frames(),
	})
	a.AddRenderer(srv.Hub())

	if err := a.Start(); err != nil {
		log.Printf("Camera unavailable, serving without capture: %v", err)
	}

	go func() {
		fmt.Printf("Starting server on %s\n", cfg.Addr)
		if err := srv.ListenAndServe(cfg.Addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if cfg.Tray {
		runTray(a, cfg.Addr)
		return
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	log.Println("Shutting down")
}

// runTray blocks on the tray menu until Quit is chosen.
func runTray(a *app.App, addr string) {
	t := tray.New()
	t.OnPause(a.SetPaused)
	t.OnReset(a.Reset)
	t.OnOpen(func() { openBrowser("http://localhost" + addr) })
	a.AddRenderer(t)
	t.Run()
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and <dataDir>/web.
// Returns the first existing directory or empty string if none found.
func findWebDir(dataDir string) string {
	for _, p := range []string{"web", "../web", "../../web", filepath.Join(dataDir, "web")} {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			if abs, err := filepath.Abs(p); err == nil {
				return abs
			}
			return p
		}
	}
	return ""
}
