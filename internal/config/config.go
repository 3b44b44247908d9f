// Package config loads tidsplan settings from an optional YAML file
// overlaid by TIDSPLAN_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/tidsplan/internal/domain"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	StoreSQLite = "sqlite"
	StoreLocal  = "local"
)

// Config is the application configuration.
type Config struct {
	DBPath             string   `yaml:"db_path"`
	Store              string   `yaml:"store"`
	LocalPath          string   `yaml:"local_path"`
	User               string   `yaml:"user"`
	MeTokens           []string `yaml:"me_tokens"`
	WarningDays        int      `yaml:"warning_days"`
	HTTPPort           int      `yaml:"http_port"`
	TrashRetentionDays int      `yaml:"trash_retention_days"`
	DigestSchedule     string   `yaml:"digest_schedule"`
	SlackWebhookURL    string   `yaml:"slack_webhook_url"`
	LogLevel           string   `yaml:"log_level"`
}

// DefaultDir is where tidsplan keeps its files unless configured otherwise.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tidsplan"
	}
	return filepath.Join(home, ".tidsplan")
}

// Load reads the YAML file at path, applies env overrides, and validates.
// A missing file is not an error: defaults and env still apply.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return parse(data, os.Getenv)
}

// Parse unmarshals YAML bytes into a validated Config without consulting
// the environment.
func Parse(data []byte) (*Config, error) {
	return parse(data, func(string) string { return "" })
}

// explicitInts records numeric keys where zero is a real setting, so the
// default only applies when the key is absent.
type explicitInts struct {
	WarningDays        *int `yaml:"warning_days"`
	TrashRetentionDays *int `yaml:"trash_retention_days"`
}

func parse(data []byte, getenv func(string) string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	var set explicitInts
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyEnv(getenv, &set)
	cfg.applyDefaults(set)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string, set *explicitInts) {
	str := func(name string, dst *string) {
		if v := getenv(name); v != "" {
			*dst = v
		}
	}
	num := func(name string, dst **int) {
		if v := getenv(name); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = &n
			}
		}
	}
	str("TIDSPLAN_DB", &c.DBPath)
	str("TIDSPLAN_STORE", &c.Store)
	str("TIDSPLAN_LOCAL_PATH", &c.LocalPath)
	str("TIDSPLAN_USER", &c.User)
	str("TIDSPLAN_DIGEST_SCHEDULE", &c.DigestSchedule)
	str("TIDSPLAN_SLACK_WEBHOOK_URL", &c.SlackWebhookURL)
	str("TIDSPLAN_LOG_LEVEL", &c.LogLevel)
	num("TIDSPLAN_WARNING_DAYS", &set.WarningDays)
	num("TIDSPLAN_TRASH_RETENTION_DAYS", &set.TrashRetentionDays)
	var port *int
	num("TIDSPLAN_HTTP_PORT", &port)
	if port != nil {
		c.HTTPPort = *port
	}
	if v := getenv("TIDSPLAN_ME_TOKENS"); v != "" {
		c.MeTokens = splitList(v)
	}
}

// applyDefaults fills in default values.
func (c *Config) applyDefaults(set explicitInts) {
	dir := DefaultDir()
	if c.Store == "" {
		c.Store = StoreSQLite
	}
	if c.DBPath == "" {
		c.DBPath = filepath.Join(dir, "tidsplan.db")
	}
	if c.LocalPath == "" {
		c.LocalPath = filepath.Join(dir, "local.json")
	}
	if c.User == "" {
		c.User = os.Getenv("USER")
	}
	if c.User == "" {
		c.User = "local"
	}
	if len(c.MeTokens) == 0 {
		c.MeTokens = []string{"jag", "me", "i"}
	}
	c.WarningDays = domain.IntFromPtrWithDefault(domain.DefaultWarningDays, set.WarningDays)
	if c.HTTPPort == 0 {
		c.HTTPPort = 8420
	}
	c.TrashRetentionDays = domain.IntFromPtrWithDefault(30, set.TrashRetentionDays)
	if c.DigestSchedule == "" {
		c.DigestSchedule = "0 7 * * 1-5"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// validate checks that all fields are in range.
func (c *Config) validate() error {
	var errs []string
	if c.Store != StoreSQLite && c.Store != StoreLocal {
		errs = append(errs, fmt.Sprintf("store must be %q or %q, got %q", StoreSQLite, StoreLocal, c.Store))
	}
	if c.WarningDays < 0 || c.WarningDays > domain.MaxWarningDays {
		errs = append(errs, fmt.Sprintf("warning_days must be between 0 and %d", domain.MaxWarningDays))
	}
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errs = append(errs, "http_port must be between 1 and 65535")
	}
	if c.TrashRetentionDays < 0 {
		errs = append(errs, "trash_retention_days must not be negative")
	}
	if _, err := cron.ParseStandard(c.DigestSchedule); err != nil {
		errs = append(errs, fmt.Sprintf("digest_schedule %q: %v", c.DigestSchedule, err))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err.Error())
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// SlogLevel maps log_level onto a slog.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level %q is not a valid level", c.LogLevel)
	}
	return lvl, nil
}

// Tokens returns the words that mean "me" in the only-mine filter: the
// configured tokens plus the user's own name.
func (c *Config) Tokens() []string {
	out := append([]string(nil), c.MeTokens...)
	if c.User != "" {
		out = append(out, c.User)
	}
	return out
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
