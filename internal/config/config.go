package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configFile = "config.yaml"

	defaultRefreshInterval = 2 * time.Second
	defaultFollowInterval  = 500 * time.Millisecond
)

// Config holds lazyq configuration.
type Config struct {
	// Socket is the path to the queued daemon's unix socket.
	Socket string

	// RefreshInterval is the idle wait between background snapshot fetches.
	RefreshInterval time.Duration

	// FollowInterval replaces RefreshInterval while the log viewer is in
	// follow mode.
	FollowInterval time.Duration

	// LogFile receives debug logging when set. A TUI cannot log to stdout.
	LogFile string
}

// fileConfig is the raw yaml shape; intervals are duration strings.
type fileConfig struct {
	Socket          string `yaml:"socket"`
	RefreshInterval string `yaml:"refresh_interval"`
	FollowInterval  string `yaml:"follow_interval"`
	LogFile         string `yaml:"log_file"`
}

// Load loads configuration with the following precedence (highest first):
// 1. Environment variables (LAZYQ_SOCKET, LAZYQ_REFRESH_INTERVAL, ...)
// 2. Global ~/.config/lazyq/config.yaml
// 3. Built-in defaults
func Load() (*Config, error) {
	cfg := &Config{
		Socket:          DefaultSocketPath(),
		RefreshInterval: defaultRefreshInterval,
		FollowInterval:  defaultFollowInterval,
	}

	globalPath := filepath.Join(ConfigDir(), configFile)
	if err := loadFromFile(globalPath, cfg); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConfigDir returns the directory holding lazyq's config and UI settings.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "lazyq")
}

// DefaultSocketPath returns the queued daemon's default socket location:
// $XDG_RUNTIME_DIR/queued/queued.sock, falling back to the user's data dir.
func DefaultSocketPath() string {
	if runtime := os.Getenv("XDG_RUNTIME_DIR"); runtime != "" {
		return filepath.Join(runtime, "queued", "queued.sock")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "queued", "queued.sock")
}

// loadFromFile merges non-empty values from a yaml file into cfg.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fileCfg fileConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if fileCfg.Socket != "" {
		cfg.Socket = ExpandPath(fileCfg.Socket)
	}
	if fileCfg.LogFile != "" {
		cfg.LogFile = ExpandPath(fileCfg.LogFile)
	}
	if err := setInterval(&cfg.RefreshInterval, fileCfg.RefreshInterval, "refresh_interval"); err != nil {
		return err
	}
	if err := setInterval(&cfg.FollowInterval, fileCfg.FollowInterval, "follow_interval"); err != nil {
		return err
	}
	return nil
}

// applyEnv applies environment variables to config.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("LAZYQ_SOCKET"); v != "" {
		cfg.Socket = ExpandPath(v)
	}
	if v := os.Getenv("LAZYQ_LOG_FILE"); v != "" {
		cfg.LogFile = ExpandPath(v)
	}
	if err := setInterval(&cfg.RefreshInterval, os.Getenv("LAZYQ_REFRESH_INTERVAL"), "LAZYQ_REFRESH_INTERVAL"); err != nil {
		return err
	}
	if err := setInterval(&cfg.FollowInterval, os.Getenv("LAZYQ_FOLLOW_INTERVAL"), "LAZYQ_FOLLOW_INTERVAL"); err != nil {
		return err
	}
	return nil
}

func setInterval(dst *time.Duration, value, name string) error {
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	if d <= 0 {
		return fmt.Errorf("invalid %s %q: must be positive", name, value)
	}
	*dst = d
	return nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[1:])
	}
	return path
}
