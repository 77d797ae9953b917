package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the operator defaults, stored in ~/.wsjtx-adif/config.yaml.
// Command line flags override every value.
type Config struct {
	// MyCall is the operator's own callsign, logged as station_callsign.
	MyCall string `yaml:"mycall"`
	// Timezone is the IANA zone the WSJT-X log timestamps are written in.
	Timezone string `yaml:"timezone"`
	// Power is the transmitter power in watts. Zero leaves tx_pwr out.
	Power int `yaml:"power"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

const (
	// DefaultTimezone is used when neither the file nor a flag names one.
	DefaultTimezone = "UTC"
	// DefaultLogLevel is the diagnostic level on stderr.
	DefaultLogLevel = "info"
)

func defaultConfig() Config {
	return Config{
		Timezone: DefaultTimezone,
		LogLevel: DefaultLogLevel,
	}
}

// configTemplate is the annotated config written on first run.
const configTemplate = `# wsjtx-adif configuration – ~/.wsjtx-adif/config.yaml
#
# All settings are optional. Command line flags take precedence.

# Your own callsign, written as station_callsign on every record.
# Overridden with: wsjtx-adif convert --mycall <call>
mycall: ""

# IANA time zone of the timestamps in the WSJT-X log, e.g. "Europe/Helsinki".
# Times are converted from this zone to UTC for ADIF.
timezone: "UTC"

# Transmitter power in watts. 0 leaves tx_pwr out of the records.
power: 0

# Diagnostic verbosity on stderr: debug, info, warn, error.
log_level: "info"
`

// DefaultPath returns the path to ~/.wsjtx-adif/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".wsjtx-adif", "config.yaml"), nil
}

// Load reads the config at path. When the file does not exist the annotated
// template is written there and the defaults are returned; failing to write
// it is reported on stderr but is not an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		return defaultConfig(), nil
	}
	if err != nil {
		return defaultConfig(), fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return defaultConfig(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}

	// An explicit empty value in the file still means the default.
	if strings.TrimSpace(cfg.Timezone) == "" {
		cfg.Timezone = DefaultTimezone
	}
	if strings.TrimSpace(cfg.LogLevel) == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.Power < 0 {
		return defaultConfig(), fmt.Errorf("config file %s: power must not be negative, got %d", path, cfg.Power)
	}
	cfg.MyCall = strings.TrimSpace(cfg.MyCall)
	return cfg, nil
}

// LoadLocation resolves an IANA zone name.
func LoadLocation(name string) (*time.Location, error) {
	if strings.TrimSpace(name) == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown time zone %q: %w", name, err)
	}
	return loc, nil
}

func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
