package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"eventdate/internal/interpret"
	appLog "eventdate/internal/log"
)

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputICS  = "ics"
)

// ErrInvalid marks a config value that Normalize could not repair.
var ErrInvalid = errors.New("config: invalid value")

// Config is the top-level application configuration.
type Config struct {
	// SuspectYearThreshold demotes results starting before this year to SUSPECT.
	SuspectYearThreshold int `yaml:"suspect_year_threshold" json:"suspect_year_threshold"`

	// AssumeMonthFirst resolves n/n/yyyy dates one way. Unset reports both
	// readings as AMBIGUOUS.
	AssumeMonthFirst *bool `yaml:"assume_month_first,omitempty" json:"assume_month_first,omitempty"`

	// Workers bounds parallel interpretation in batch mode.
	Workers int `yaml:"workers" json:"workers"`

	// Output is one of "text", "json", "ics".
	Output string `yaml:"output" json:"output"`

	// UnmatchedOnly prints only the raw lines that produced no value.
	UnmatchedOnly bool `yaml:"unmatched_only" json:"unmatched_only"`

	// Watch is a cron schedule (e.g. "*/15 * * * *") for re-reading the
	// input. Empty runs once.
	Watch string `yaml:"watch" json:"watch"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" json:"log_level"`

	// Listen is the HTTP API address (e.g. "127.0.0.1:8080"). Empty keeps
	// the CLI in batch mode.
	Listen string `yaml:"listen,omitempty" json:"listen,omitempty"`

	// BasicAuth guards the HTTP API. Nil or incomplete credentials disable it.
	BasicAuth *BasicAuth `yaml:"basic_auth,omitempty" json:"basic_auth,omitempty"`
}

// BasicAuth holds HTTP Basic credentials for the API.
type BasicAuth struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		SuspectYearThreshold: interpret.DefaultSuspectYearThreshold,
		Workers:              runtime.NumCPU(),
		Output:               OutputText,
		LogLevel:             "info",
	}
}

// Normalize fills in zero values with defaults so that partially-filled
// configs still behave. Values that cannot be defaulted (a malformed cron
// spec, an unknown log level) are reported as ErrInvalid.
func (c *Config) Normalize() error {
	if c.SuspectYearThreshold == 0 {
		c.SuspectYearThreshold = interpret.DefaultSuspectYearThreshold
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}

	c.Output = strings.ToLower(strings.TrimSpace(c.Output))
	switch c.Output {
	case OutputText, OutputJSON, OutputICS:
	case "":
		c.Output = OutputText
	default:
		appLog.Warn("unknown output format, using text", "output", c.Output)
		c.Output = OutputText
	}

	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if _, err := appLog.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(ErrInvalid, "log_level %q", c.LogLevel)
	}

	c.Listen = strings.TrimSpace(c.Listen)

	c.Watch = strings.TrimSpace(c.Watch)
	if c.Watch != "" {
		if _, err := cron.ParseStandard(c.Watch); err != nil {
			return errors.Wrapf(ErrInvalid, "watch %q: %v", c.Watch, err)
		}
	}
	return nil
}

// Options returns the interpretation options this config describes.
func (c *Config) Options() interpret.Options {
	return interpret.Options{
		SuspectYearThreshold: c.SuspectYearThreshold,
		AssumeMonthFirst:     c.AssumeMonthFirst,
	}
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist, a default config is written with 0600
//     perms (creating the parent directory) and returned.
//   - Otherwise the YAML is read and normalized.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config: path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			appLog.Info("wrote default config", "path", path)
			return cfg, nil
		}
		return nil, errors.Wrap(err, "config: read")
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "config: parse %s", path)
	}
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path atomically (temp file in the same directory,
// then rename) with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config: path is empty")
	}
	if cfg == nil {
		return errors.New("config: nil config")
	}
	if err := cfg.Normalize(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Wrap(err, "config: create directory")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "config: marshal")
	}

	tmp, err := os.CreateTemp(dir, ".eventdate-config-*.tmp")
	if err != nil {
		return errors.Wrap(err, "config: create temp file")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "config: write")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "config: sync")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "config: close")
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return errors.Wrap(err, "config: chmod")
	}
	return errors.Wrap(os.Rename(tmpName, path), "config: rename")
}

// Save delegates to the package-level Save.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
