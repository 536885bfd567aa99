package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the gallery settings.
type Config struct {
	APIBase   string
	Timeout   time.Duration
	StorePath string
	LogPath   string
	LogLevel  string
	ProbeRate float64
}

const (
	defaultConfigPath = "~/.config/gallery/config.toml"
	defaultAPIBase    = "https://json.medrating.org"
	defaultTimeout    = 30 * time.Second
	defaultStorePath  = "~/.local/share/gallery/gallery.db"
	defaultLogPath    = "~/.local/state/gallery/gallery.log"
	defaultLogLevel   = "info"
	defaultProbeRate  = 8
)

// file is the on-disk TOML layout.
type file struct {
	APIBase        string  `toml:"api_base"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	StorePath      string  `toml:"store_path"`
	LogPath        string  `toml:"log_path"`
	LogLevel       string  `toml:"log_level"`
	ProbeRate      float64 `toml:"probe_rate"`
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the built-in configuration with paths expanded.
func Default() Config {
	return Config{
		APIBase:   defaultAPIBase,
		Timeout:   defaultTimeout,
		StorePath: mustExpand(defaultStorePath),
		LogPath:   mustExpand(defaultLogPath),
		LogLevel:  defaultLogLevel,
		ProbeRate: defaultProbeRate,
	}
}

// Load reads the config at path, falling back to defaults when the file or
// any field is missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	f, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	bytes, err := io.ReadAll(f)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw file
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBase); v != "" {
		cfg.APIBase = strings.TrimRight(v, "/")
	}
	if raw.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(raw.TimeoutSeconds) * time.Second
	}
	if v := strings.TrimSpace(raw.StorePath); v != "" {
		cfg.StorePath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogPath); v != "" {
		cfg.LogPath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if raw.ProbeRate > 0 {
		cfg.ProbeRate = raw.ProbeRate
	}

	return cfg, nil
}

// WriteDefault writes the default configuration to path. It refuses to
// overwrite an existing file unless force is set.
func WriteDefault(path string, force bool) (string, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return "", err
	}
	if !force {
		if _, err := os.Stat(resolved); err == nil {
			return resolved, fmt.Errorf("config already exists: %s", resolved)
		}
	}

	bytes, err := toml.Marshal(file{
		APIBase:        defaultAPIBase,
		TimeoutSeconds: int(defaultTimeout / time.Second),
		StorePath:      defaultStorePath,
		LogPath:        defaultLogPath,
		LogLevel:       defaultLogLevel,
		ProbeRate:      defaultProbeRate,
	})
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return resolved, nil
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
