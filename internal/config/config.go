package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields lumen needs to reach and observe an album
// server.
type Config struct {
	ServerURL    string
	PollInterval time.Duration
	LogDir       string
	WatchDir     string
}

const (
	defaultConfigPath  = "~/.config/lumen/config.toml"
	defaultLogDir      = "~/.local/share/lumen/logs"
	defaultServerURL   = "http://127.0.0.1:8000"
	defaultPollSeconds = 2

	// serverURLEnv overrides server_url when set, either in the process
	// environment or in a .env file next to the working directory.
	serverURLEnv = "LUMEN_SERVER_URL"
)

// Load locates and parses the lumen config, falling back to defaults when
// missing. The LUMEN_SERVER_URL environment variable wins over the file.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	// A .env file is optional; a missing one is not an error.
	_ = godotenv.Load()

	cfg := Config{
		ServerURL:    defaultServerURL,
		PollInterval: defaultPollSeconds * time.Second,
		LogDir:       mustExpand(defaultLogDir),
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		ServerURL   string `toml:"server_url"`
		PollSeconds int    `toml:"poll_seconds"`
		LogDir      string `toml:"log_dir"`
		WatchDir    string `toml:"watch_dir"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if url := strings.TrimSpace(raw.ServerURL); url != "" {
		cfg.ServerURL = url
	}
	if raw.PollSeconds > 0 {
		cfg.PollInterval = time.Duration(raw.PollSeconds) * time.Second
	}
	if dir := strings.TrimSpace(raw.LogDir); dir != "" {
		cfg.LogDir = mustExpand(dir)
	}
	if dir := strings.TrimSpace(raw.WatchDir); dir != "" {
		cfg.WatchDir = mustExpand(dir)
	}

	applyEnv(&cfg)
	return cfg, nil
}

// LogPath returns the path of the client log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/lumen.log")
	}
	return filepath.Join(c.LogDir, "lumen.log")
}

func applyEnv(cfg *Config) {
	if url := strings.TrimSpace(os.Getenv(serverURLEnv)); url != "" {
		cfg.ServerURL = url
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
