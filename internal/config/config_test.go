package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	base := t.TempDir()
	cfg, err := Load(LoadOptions{BaseDir: base, Environ: map[string]string{}, Path: writeConfig(t, "")})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DocumentDir != filepath.Join(base, "text") || cfg.ProgressDir != filepath.Join(base, "progress") {
		t.Fatalf("unexpected default dirs: %+v", cfg)
	}
	if cfg.Extension != ".txt" || cfg.Store != StoreFile || cfg.MenuPause != time.Second {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadLayersFileThenEnvironment(t *testing.T) {
	path := writeConfig(t, `
document_dir: /srv/books
extension: md
store: sqlite
menu_pause: 250ms
`)
	cfg, err := Load(LoadOptions{
		Path:    path,
		BaseDir: t.TempDir(),
		Environ: map[string]string{
			"SHELLPAGE_STORE":          "file",
			"SHELLPAGE_ESCAPE_TIMEOUT": "80ms",
			"SHELLPAGE_DEBUG":          "true",
		},
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DocumentDir != "/srv/books" || cfg.Extension != "md" || cfg.MenuPause != 250*time.Millisecond {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Store != StoreFile || cfg.EscapeTimeout != 80*time.Millisecond || !cfg.Debug {
		t.Fatalf("environment values not applied: %+v", cfg)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(LoadOptions{Path: filepath.Join(t.TempDir(), "nope.yaml"), Environ: map[string]string{}})
	if err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	_, err := Load(LoadOptions{Path: writeConfig(t, "store: [oops"), Environ: map[string]string{}})
	if err == nil {
		t.Fatalf("expected YAML error")
	}
}

func TestApplyFlagsOverridesOnlyChanged(t *testing.T) {
	cfg := DefaultFor("/base")
	cfg.Store = StoreSQLite

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse([]string{"-d", "/tmp/books", "--debug"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := ApplyFlags(fs, &cfg); err != nil {
		t.Fatalf("ApplyFlags: %v", err)
	}
	if cfg.DocumentDir != "/tmp/books" || !cfg.Debug {
		t.Fatalf("flags not applied: %+v", cfg)
	}
	if cfg.Store != StoreSQLite {
		t.Fatalf("unset flag overrode store: %q", cfg.Store)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		check   func(*testing.T, Config)
	}{
		{
			name:   "adds extension dot",
			mutate: func(c *Config) { c.Extension = "md" },
			check: func(t *testing.T, c Config) {
				if c.Extension != ".md" {
					t.Fatalf("extension = %q", c.Extension)
				}
			},
		},
		{
			name:   "relative dirs become absolute",
			mutate: func(c *Config) { c.DocumentDir = "books" },
			check: func(t *testing.T, c Config) {
				if !filepath.IsAbs(c.DocumentDir) {
					t.Fatalf("document dir not absolute: %q", c.DocumentDir)
				}
			},
		},
		{name: "unknown store", mutate: func(c *Config) { c.Store = "redis" }, wantErr: true},
		{name: "empty extension", mutate: func(c *Config) { c.Extension = " " }, wantErr: true},
		{name: "negative pause", mutate: func(c *Config) { c.MenuPause = -time.Second }, wantErr: true},
		{name: "empty document dir", mutate: func(c *Config) { c.DocumentDir = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultFor(t.TempDir())
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}
