package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/notetree/internal/constants"
	"github.com/Paintersrp/notetree/internal/pathutil"
)

type Config struct {
	NotesDir     string   `yaml:"notes_dir"     json:"notes_dir"`
	LogLevel     string   `yaml:"log_level"     json:"log_level"`
	LogFile      string   `yaml:"log_file"      json:"log_file"`
	GlamourStyle string   `yaml:"glamour_style" json:"glamour_style"`
	Watch        *bool    `yaml:"watch"         json:"watch"`
	Ignore       []string `yaml:"ignore"        json:"ignore"`
	WordWrap     int      `yaml:"word_wrap"     json:"word_wrap"`

	home string `yaml:"-"`
}

var validStyleNames = []string{"auto", "dark", "light", "dracula", "pink", "ascii", "notty"}

var ValidStyles = func() map[string]bool {
	styles := make(map[string]bool, len(validStyleNames))
	for _, style := range validStyleNames {
		styles[style] = true
	}

	return styles
}()

var validLevels = map[string]bool{
	"trace": true, "debug": true, "info": true,
	"warn": true, "warning": true, "error": true,
}

func ValidateStyle(style string) error {
	if ValidStyles[style] {
		return nil
	}

	return fmt.Errorf(
		"invalid glamour style: %q. Please choose from %s.",
		style,
		strings.Join(validStyleNames, ", "),
	)
}

func Default(home string) *Config {
	cfg := &Config{home: home}
	cfg.ensureDefaults()
	return cfg
}

func (cfg *Config) ensureDefaults() {
	if strings.TrimSpace(cfg.NotesDir) == "" {
		cfg.NotesDir = filepath.Join("~", constants.DefaultNotesDir)
	}
	if strings.TrimSpace(cfg.LogLevel) == "" {
		cfg.LogLevel = constants.DefaultLogLevel
	}
	if strings.TrimSpace(cfg.GlamourStyle) == "" {
		cfg.GlamourStyle = constants.DefaultGlamourStyle
	}
	if cfg.Watch == nil {
		watch := true
		cfg.Watch = &watch
	}
	if cfg.Ignore == nil {
		cfg.Ignore = []string{}
	}
	if cfg.WordWrap <= 0 {
		cfg.WordWrap = constants.DefaultWordWrap
	}
}

func (cfg *Config) validate() error {
	if !validLevels[strings.ToLower(strings.TrimSpace(cfg.LogLevel))] {
		return &ConfigInitError{msg: fmt.Sprintf("invalid log level %q", cfg.LogLevel)}
	}
	if err := ValidateStyle(cfg.GlamourStyle); err != nil {
		return err
	}
	return nil
}

// Load reads the config file under home. A missing or empty file yields the
// defaults.
func Load(home string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(GetConfigPath(home))
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", GetConfigPath(home), err)
		}
	}

	cfg.home = home
	cfg.ensureDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyOverrides layers flag and environment values bound in v over the
// file values.
func (cfg *Config) ApplyOverrides(v *viper.Viper) error {
	if v.IsSet("notes_dir") {
		if dir := strings.TrimSpace(v.GetString("notes_dir")); dir != "" {
			cfg.NotesDir = dir
		}
	}
	if v.IsSet("log_level") {
		if level := strings.TrimSpace(v.GetString("log_level")); level != "" {
			cfg.LogLevel = level
		}
	}
	if v.IsSet("log_file") {
		cfg.LogFile = v.GetString("log_file")
	}
	if v.IsSet("glamour_style") {
		if style := strings.TrimSpace(v.GetString("glamour_style")); style != "" {
			cfg.GlamourStyle = style
		}
	}
	if v.IsSet("watch") {
		watch := v.GetBool("watch")
		cfg.Watch = &watch
	}
	if v.IsSet("no_watch") && v.GetBool("no_watch") {
		watch := false
		cfg.Watch = &watch
	}

	return cfg.validate()
}

func (cfg *Config) WatchEnabled() bool {
	return cfg.Watch == nil || *cfg.Watch
}

// NotesRoot returns the absolute notes directory. "~" and relative values
// resolve against the home directory the config was loaded from.
func (cfg *Config) NotesRoot() (string, error) {
	dir := pathutil.NormalizePath(strings.TrimSpace(cfg.NotesDir))
	if dir == "" {
		return "", &ConfigInitError{msg: `required config variable "notes_dir" is not set`}
	}
	if dir == "~" || strings.HasPrefix(dir, "~"+string(filepath.Separator)) {
		dir = filepath.Join(cfg.home, dir[1:])
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(cfg.home, dir)
	}
	return filepath.Clean(dir), nil
}

func (cfg *Config) LogPath() string {
	if strings.TrimSpace(cfg.LogFile) != "" {
		if p, err := pathutil.ExpandHome(cfg.LogFile); err == nil {
			return p
		}
		return cfg.LogFile
	}
	return filepath.Join(cfg.home, constants.ConfigDir, constants.LogFile)
}

func (cfg *Config) SessionPath() string {
	return filepath.Join(cfg.home, constants.ConfigDir, constants.SessionFile)
}

func (cfg *Config) GetConfigPath() string {
	return GetConfigPath(cfg.home)
}

func (cfg *Config) Save() error {
	if err := cfg.validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	configPath := cfg.GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}
