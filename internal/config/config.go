// Package config loads the configuration of the demo binary.
//
// Values are resolved in this order, later sources winning: defaults, the
// YAML file, then the environment. A .env file in the working directory is
// loaded into the environment first, variables that are already set are
// not overwritten by it.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding the configuration.
const (
	EnvLogLevel       = "STASH_LOG_LEVEL"
	EnvLogDevelopment = "STASH_LOG_DEVELOPMENT"
	EnvFPS            = "STASH_FPS"
	EnvProfile        = "STASH_PROFILE"
)

// Profile selects the profiler to run the demo with.
type Profile string

const (
	ProfileNone Profile = ""
	ProfileCPU  Profile = "cpu"
	ProfileMem  Profile = "mem"
)

// Log configures the logger.
type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Config is the configuration of the demo binary.
type Config struct {
	Log         Log     `yaml:"log"`
	FPS         uint32  `yaml:"fps"`
	Profile     Profile `yaml:"profile"`
	Interactive bool    `yaml:"interactive"`
}

// Default returns the configuration used when no other source sets a value.
func Default() Config {
	return Config{
		Log: Log{Level: "info"},
		FPS: 60,
	}
}

// Load resolves the configuration. An empty path skips the YAML file.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}

func (c *Config) readFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %q: %w", path, err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)

	if err := decoder.Decode(c); err != nil {
		return fmt.Errorf("parse config %q: %w", path, err)
	}

	return nil
}

func (c *Config) applyEnv() error {
	if value, ok := os.LookupEnv(EnvLogLevel); ok {
		c.Log.Level = value
	}

	if value, ok := os.LookupEnv(EnvLogDevelopment); ok {
		development, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvLogDevelopment, err)
		}

		c.Log.Development = development
	}

	if value, ok := os.LookupEnv(EnvFPS); ok {
		fps, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvFPS, err)
		}

		c.FPS = uint32(fps)
	}

	if value, ok := os.LookupEnv(EnvProfile); ok {
		c.Profile = Profile(value)
	}

	return nil
}

// LogLevel parses the configured log level.
func (c Config) LogLevel() (zapcore.Level, error) {
	return zapcore.ParseLevel(c.Log.Level)
}

// Validate checks the log level, the profile mode and the frame rate.
func (c Config) Validate() error {
	if _, err := c.LogLevel(); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	switch c.Profile {
	case ProfileNone, ProfileCPU, ProfileMem:
	default:
		return fmt.Errorf("invalid profile mode %q", c.Profile)
	}

	if c.FPS == 0 {
		return errors.New("fps must be positive")
	}

	return nil
}
