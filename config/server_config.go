package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is read when no explicit env file is given. Missing is fine.
const DefaultEnvFile = ".env"

// Config holds server configuration loaded from environment variables.
type Config struct {
	Port            string
	GRPCPort        string // empty disables the gRPC health endpoint
	StaticDir       string // empty disables static file serving
	AllowedOrigins  []string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	SendBuffer      int
	Game            Game
}

// LoadEnvFile loads variables from path into the process environment without
// overriding variables that are already set. An empty path means DefaultEnvFile,
// which may be absent.
func LoadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	log.Printf("Loaded environment variables from %s", path)
	return nil
}

// Load builds a Config from the environment, falling back to defaults.
func Load() Config {
	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		GRPCPort:        getEnv("GRPC_PORT", ""),
		StaticDir:       getEnv("STATIC_DIR", ""),
		AllowedOrigins:  parseList(getEnv("ALLOWED_ORIGINS", "*")),
		ReadTimeout:     parseDuration(getEnv("HTTP_READ_TIMEOUT", "15s"), 15*time.Second),
		WriteTimeout:    parseDuration(getEnv("HTTP_WRITE_TIMEOUT", "15s"), 15*time.Second),
		ShutdownTimeout: parseDuration(getEnv("SHUTDOWN_TIMEOUT", "5s"), 5*time.Second),
		SendBuffer:      parseInt(getEnv("SEND_BUFFER", "256"), 256),
		Game:            DefaultGame(),
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		log.Println("[WARN] Accepting WebSocket connections from any origin; set ALLOWED_ORIGINS in production")
	}
	return cfg
}

// Addr is the HTTP listen address.
func (c Config) Addr() string { return ":" + c.Port }

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func parseInt(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
