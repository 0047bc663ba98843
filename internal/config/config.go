// Package config loads runtime settings from the environment and an optional
// .env file.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ayusman/hoopshot/internal/gesture"
)

// Config holds process-level settings.
type Config struct {
	// Server
	Addr   string
	WebDir string

	// Storage
	DataDir string
	DBPath  string

	// Camera
	CameraID     int
	MotionThresh float64

	// Game
	Mode     gesture.Mode
	Width    float64
	Height   float64
	TickRate int

	// Integrations
	RedisURL     string
	RedisChannel string
	PluginDir    string

	Tray bool
}

// Load reads .env (if present) and the HOOPSHOT_* environment variables.
func Load() *Config {
	// A missing .env file is fine.
	godotenv.Load()

	dataDir := getEnv("HOOPSHOT_DATA_DIR", defaultDataDir())

	mode, err := gesture.ParseMode(getEnv("HOOPSHOT_MODE", "single"))
	if err != nil {
		mode = gesture.ModeSingle
	}

	return &Config{
		Addr:   getEnv("HOOPSHOT_ADDR", ":8080"),
		WebDir: getEnv("HOOPSHOT_WEB_DIR", ""),

		DataDir: dataDir,
		DBPath:  getEnv("HOOPSHOT_DB_PATH", filepath.Join(dataDir, "hoopshot.db")),

		CameraID:     getEnvInt("HOOPSHOT_CAMERA_ID", 0),
		MotionThresh: getEnvFloat("HOOPSHOT_MOTION_THRESH", 1.0),

		Mode:     mode,
		Width:    getEnvFloat("HOOPSHOT_WIDTH", 1280),
		Height:   getEnvFloat("HOOPSHOT_HEIGHT", 720),
		TickRate: getEnvInt("HOOPSHOT_TICK_RATE", 60),

		RedisURL:     getEnv("HOOPSHOT_REDIS_URL", ""),
		RedisChannel: getEnv("HOOPSHOT_REDIS_CHANNEL", "hoopshot:events"),
		PluginDir:    getEnv("HOOPSHOT_PLUGIN_DIR", filepath.Join(dataDir, "plugins")),

		Tray: getEnvBool("HOOPSHOT_TRAY", false),
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hoopshot"
	}
	return filepath.Join(home, ".hoopshot")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return defaultValue
}
