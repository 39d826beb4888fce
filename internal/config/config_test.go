package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/notetree/internal/config"
	"github.com/Paintersrp/notetree/internal/constants"
)

func writeConfig(t *testing.T, home string, data map[string]any) {
	t.Helper()
	configPath := config.GetConfigPath(home)

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("failed to create config directory: %v", err)
	}

	raw, err := yaml.Marshal(data)
	if err != nil {
		t.Fatalf("failed to marshal config data: %v", err)
	}

	if err := os.WriteFile(configPath, raw, 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()

	cfg, err := config.Load(home)
	if err != nil {
		t.Fatalf("expected load to succeed: %v", err)
	}

	root, err := cfg.NotesRoot()
	if err != nil {
		t.Fatalf("notes root: %v", err)
	}
	if !filepath.IsAbs(root) || filepath.Base(root) != constants.DefaultNotesDir {
		t.Fatalf("unexpected default notes root %q", root)
	}
	if cfg.GlamourStyle != constants.DefaultGlamourStyle {
		t.Fatalf("expected style %q, got %q", constants.DefaultGlamourStyle, cfg.GlamourStyle)
	}
	if !cfg.WatchEnabled() {
		t.Fatalf("expected watching to default on")
	}
	if cfg.WordWrap != constants.DefaultWordWrap {
		t.Fatalf("expected word wrap %d, got %d", constants.DefaultWordWrap, cfg.WordWrap)
	}
}

func TestLoadReadsFileValues(t *testing.T) {
	home := t.TempDir()
	notes := filepath.Join(home, "vault")
	writeConfig(t, home, map[string]any{
		"notes_dir":     notes,
		"log_level":     "debug",
		"glamour_style": "light",
		"watch":         false,
		"ignore":        []string{"archive/**"},
		"word_wrap":     80,
	})

	cfg, err := config.Load(home)
	if err != nil {
		t.Fatalf("expected load to succeed: %v", err)
	}

	root, _ := cfg.NotesRoot()
	if root != notes {
		t.Fatalf("expected notes root %q, got %q", notes, root)
	}
	if cfg.WatchEnabled() {
		t.Fatalf("expected watching disabled")
	}
	if len(cfg.Ignore) != 1 || cfg.Ignore[0] != "archive/**" {
		t.Fatalf("unexpected ignore list %v", cfg.Ignore)
	}
	if cfg.WordWrap != 80 {
		t.Fatalf("expected word wrap 80, got %d", cfg.WordWrap)
	}
}

func TestLoadRejectsUnknownStyle(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, map[string]any{"glamour_style": "neon"})

	if _, err := config.Load(home); err == nil {
		t.Fatalf("expected load to fail for unknown style")
	}
}

func TestLoadRejectsUnknownLevel(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, map[string]any{"log_level": "loud"})

	_, err := config.Load(home)
	if err == nil {
		t.Fatalf("expected load to fail for unknown level")
	}
	if _, ok := err.(*config.ConfigInitError); !ok {
		t.Fatalf("expected ConfigInitError, got %T", err)
	}
}

func TestRelativeNotesDirResolvesAgainstHome(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, map[string]any{"notes_dir": "stuff/notes"})

	cfg, err := config.Load(home)
	if err != nil {
		t.Fatalf("expected load to succeed: %v", err)
	}

	root, _ := cfg.NotesRoot()
	if want := filepath.Join(home, "stuff", "notes"); root != want {
		t.Fatalf("expected %q, got %q", want, root)
	}
}

func TestApplyOverrides(t *testing.T) {
	home := t.TempDir()
	cfg := config.Default(home)

	v := viper.New()
	v.Set("notes_dir", filepath.Join(home, "elsewhere"))
	v.Set("log_level", "debug")
	v.Set("no_watch", true)

	if err := cfg.ApplyOverrides(v); err != nil {
		t.Fatalf("apply overrides: %v", err)
	}

	root, _ := cfg.NotesRoot()
	if root != filepath.Join(home, "elsewhere") {
		t.Fatalf("unexpected notes root %q", root)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected debug level, got %q", cfg.LogLevel)
	}
	if cfg.WatchEnabled() {
		t.Fatalf("expected --no-watch to disable watching")
	}
}

func TestEnsureConfigExistsWritesDefaults(t *testing.T) {
	home := t.TempDir()

	if err := config.EnsureConfigExists(home); err != nil {
		t.Fatalf("ensure config: %v", err)
	}

	data, err := os.ReadFile(config.GetConfigPath(home))
	if err != nil {
		t.Fatalf("read config: %v", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal config: %v", err)
	}
	if raw["glamour_style"] != constants.DefaultGlamourStyle {
		t.Fatalf("expected default style persisted, got %v", raw["glamour_style"])
	}
}

func TestPathsLiveUnderConfigDir(t *testing.T) {
	home := t.TempDir()
	cfg := config.Default(home)

	dir := filepath.Join(home, constants.ConfigDir)
	if filepath.Dir(cfg.SessionPath()) != dir {
		t.Fatalf("session path %q not under %q", cfg.SessionPath(), dir)
	}
	if filepath.Dir(cfg.LogPath()) != dir {
		t.Fatalf("log path %q not under %q", cfg.LogPath(), dir)
	}
}
