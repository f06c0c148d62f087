// Package config resolves runtime settings from defaults, an optional YAML
// file, SHELLPAGE_* environment variables and command-line flags, in that
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

const (
	EnvPrefix      = "SHELLPAGE_"
	appName        = "shellpage"
	configFileName = "config.yaml"

	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

// Config holds every tunable setting.
type Config struct {
	DocumentDir   string        `yaml:"document_dir" env:"DOCUMENT_DIR"`
	ProgressDir   string        `yaml:"progress_dir" env:"PROGRESS_DIR"`
	Extension     string        `yaml:"extension" env:"EXTENSION"`
	Store         string        `yaml:"store" env:"STORE"`
	MenuPause     time.Duration `yaml:"menu_pause" env:"MENU_PAUSE"`
	EscapeTimeout time.Duration `yaml:"escape_timeout" env:"ESCAPE_TIMEOUT"`
	LogFile       string        `yaml:"log_file" env:"LOG_FILE"`
	Debug         bool          `yaml:"debug" env:"DEBUG"`
}

// DefaultFor returns the defaults with directories placed under baseDir.
func DefaultFor(baseDir string) Config {
	return Config{
		DocumentDir:   filepath.Join(baseDir, "text"),
		ProgressDir:   filepath.Join(baseDir, "progress"),
		Extension:     ".txt",
		Store:         StoreFile,
		MenuPause:     time.Second,
		EscapeTimeout: 30 * time.Millisecond,
	}
}

// LoadOptions controls where Load looks for settings.
type LoadOptions struct {
	// Path names a YAML file that must exist. When empty the per-user
	// config file is read if present.
	Path string
	// Environ replaces the process environment when non-nil.
	Environ map[string]string
	// BaseDir anchors default directories. Empty means the executable's
	// directory.
	BaseDir string
}

// Load resolves the configuration without flags.
func Load(opts LoadOptions) (Config, error) {
	base := opts.BaseDir
	if base == "" {
		base = executableDir()
	}
	cfg := DefaultFor(base)

	path, required := opts.Path, true
	if path == "" {
		path, required = UserConfigPath(), false
	}
	if path != "" {
		if err := cfg.mergeFile(path, required); err != nil {
			return Config{}, err
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix, Environment: opts.Environ}); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string, required bool) error {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("expand config path: %w", err)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", expanded, err)
	}
	return nil
}

// Validate normalises paths and the extension and rejects unusable values.
func (c *Config) Validate() error {
	var err error
	if c.DocumentDir, err = expandDir(c.DocumentDir); err != nil {
		return fmt.Errorf("document dir: %w", err)
	}
	if c.ProgressDir, err = expandDir(c.ProgressDir); err != nil {
		return fmt.Errorf("progress dir: %w", err)
	}
	if c.LogFile != "" {
		if c.LogFile, err = homedir.Expand(c.LogFile); err != nil {
			return fmt.Errorf("log file: %w", err)
		}
	}

	c.Extension = strings.TrimSpace(c.Extension)
	if c.Extension == "" {
		return errors.New("extension must not be empty")
	}
	if !strings.HasPrefix(c.Extension, ".") {
		c.Extension = "." + c.Extension
	}

	switch c.Store {
	case StoreFile, StoreSQLite:
	default:
		return fmt.Errorf("unknown store %q (want %s or %s)", c.Store, StoreFile, StoreSQLite)
	}
	if c.MenuPause < 0 {
		return fmt.Errorf("menu pause must not be negative: %s", c.MenuPause)
	}
	if c.EscapeTimeout < 0 {
		return fmt.Errorf("escape timeout must not be negative: %s", c.EscapeTimeout)
	}
	return nil
}

// UserConfigPath returns the per-user config file location.
func UserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName, configFileName)
	}
	home, err := homedir.Dir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".config", appName, configFileName)
}

func expandDir(dir string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		return "", errors.New("must not be empty")
	}
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return "", err
	}
	return filepath.Abs(expanded)
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		if wd, wdErr := os.Getwd(); wdErr == nil {
			return wd
		}
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}
