package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is read when no --config flag is given
const DefaultPath = "videobatch.toml"

// EnvPrefix prefixes every environment override
const EnvPrefix = "VIDEOBATCH_"

// Config holds the tunables shared by all tasks. Precedence is
// CLI flags > environment > config file > defaults.
type Config struct {
	LogLevel          string   `toml:"log_level"`
	Workers           int      `toml:"workers"`
	Preset            string   `toml:"preset"`
	Format            string   `toml:"format"`
	RequiredFields    []string `toml:"required_fields"`
	FilterHighBitrate bool     `toml:"filter_high_bitrate"`
	VerifyThreshold   int      `toml:"verify_threshold"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		LogLevel:        "warn",
		Preset:          "medium",
		Format:          "mp4",
		VerifyThreshold: 10,
	}
}

// Load reads the TOML file at path on top of the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string, getenv func(string) string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse TOML config %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if getenv == nil {
		getenv = os.Getenv
	}
	if err := cfg.applyEnv(getenv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := getenv(EnvPrefix + "PRESET"); v != "" {
		c.Preset = v
	}
	if v := getenv(EnvPrefix + "FORMAT"); v != "" {
		c.Format = v
	}
	if v := getenv(EnvPrefix + "REQUIRED_FIELDS"); v != "" {
		c.RequiredFields = splitList(v)
	}
	if v := getenv(EnvPrefix + "WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sWORKERS %q: %w", EnvPrefix, v, err)
		}
		c.Workers = n
	}
	if v := getenv(EnvPrefix + "VERIFY_THRESHOLD"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sVERIFY_THRESHOLD %q: %w", EnvPrefix, v, err)
		}
		c.VerifyThreshold = n
	}
	if v := getenv(EnvPrefix + "FILTER_HIGH_BITRATE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sFILTER_HIGH_BITRATE %q: %w", EnvPrefix, v, err)
		}
		c.FilterHighBitrate = b
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
