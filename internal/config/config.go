// Package config loads webtrace configuration from file and environment.
//
// Precedence (highest to lowest):
//  1. Environment variables (WEBTRACE_*)
//  2. Config file
//  3. Built-in defaults
//
// Config file search order:
//  1. .webtrace.yaml in current directory
//  2. ~/.config/webtrace/config.yaml
//
// Values are read once per process and not reloaded during a run.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all webtrace configuration.
type Config struct {
	// Registry overrides the root directory that receives TestRun-* folders.
	Registry string `yaml:"registry"`

	// Listener switches
	CaptureScreenshots bool   `yaml:"capture_screenshots"`
	ShadowPaths        bool   `yaml:"shadow_paths"`
	Performance        bool   `yaml:"performance"`
	LogLocators        bool   `yaml:"log_locators"`
	StepsDir           string `yaml:"steps_dir"` // reproduction scripts and shadow dictionaries

	// Logging
	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error
	LogFormat string `yaml:"log_format"` // text, json

	// Socket is the lifecycle collector's unixgram path.
	Socket string `yaml:"socket"`

	// OTEL
	OTELEndpoint string `yaml:"otel_endpoint"`
	OTELHeaders  string `yaml:"otel_headers"`

	// ConfigFile is the path to the config file that was loaded (empty if none).
	ConfigFile string `yaml:"-"`
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		StepsDir:  "target",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads configuration from file and environment variables.
// Environment variables always override file values.
func Load() (*Config, error) {
	cfg := Defaults()

	if path, data, err := findConfigFile(); err == nil {
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
		cfg.ConfigFile = path
		mergeFile(cfg, &fileCfg)
	}

	if err := mergeEnv(cfg); err != nil {
		return nil, err
	}

	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q (supported: text, json)", cfg.LogFormat)
	}

	return cfg, nil
}

// RegistryRoot resolves the directory that holds run folders: the configured
// override, or a folder in the working directory named for the platform.
func (c *Config) RegistryRoot() string {
	if c.Registry != "" {
		return c.Registry
	}
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	return filepath.Join(wd, registryDirName(runtime.GOOS))
}

func registryDirName(goos string) string {
	if goos == "windows" {
		return "webtrace"
	}
	return ".webtrace"
}

// findConfigFile searches for a config file and returns its path and contents.
func findConfigFile() (string, []byte, error) {
	if data, err := os.ReadFile(".webtrace.yaml"); err == nil {
		return ".webtrace.yaml", data, nil
	}

	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".config", "webtrace", "config.yaml")
		if data, err := os.ReadFile(path); err == nil {
			return path, data, nil
		}
	}

	return "", nil, fmt.Errorf("no config file found")
}

// mergeFile applies non-zero file values onto cfg.
func mergeFile(cfg *Config, file *Config) {
	if file.Registry != "" {
		cfg.Registry = file.Registry
	}
	if file.CaptureScreenshots {
		cfg.CaptureScreenshots = true
	}
	if file.ShadowPaths {
		cfg.ShadowPaths = true
	}
	if file.Performance {
		cfg.Performance = true
	}
	if file.LogLocators {
		cfg.LogLocators = true
	}
	if file.StepsDir != "" {
		cfg.StepsDir = file.StepsDir
	}
	if file.LogLevel != "" {
		cfg.LogLevel = file.LogLevel
	}
	if file.LogFormat != "" {
		cfg.LogFormat = file.LogFormat
	}
	if file.Socket != "" {
		cfg.Socket = file.Socket
	}
	if file.OTELEndpoint != "" {
		cfg.OTELEndpoint = file.OTELEndpoint
	}
	if file.OTELHeaders != "" {
		cfg.OTELHeaders = file.OTELHeaders
	}
}

// mergeEnv applies environment variables onto cfg. Env always wins, so a
// boolean set to "false" in the environment turns off a file setting.
func mergeEnv(cfg *Config) error {
	if v := os.Getenv("WEBTRACE_REGISTRY"); v != "" {
		cfg.Registry = v
	}
	for _, b := range []struct {
		key string
		dst *bool
	}{
		{"WEBTRACE_CAPTURE_SCREENSHOTS", &cfg.CaptureScreenshots},
		{"WEBTRACE_SHADOW_PATHS", &cfg.ShadowPaths},
		{"WEBTRACE_PERFORMANCE", &cfg.Performance},
		{"WEBTRACE_LOG_LOCATORS", &cfg.LogLocators},
	} {
		v, ok := os.LookupEnv(b.key)
		if !ok || v == "" {
			continue
		}
		parsed, err := parseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", b.key, err)
		}
		*b.dst = parsed
	}
	if v := os.Getenv("WEBTRACE_STEPS_DIR"); v != "" {
		cfg.StepsDir = v
	}
	if v := os.Getenv("WEBTRACE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("WEBTRACE_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("WEBTRACE_SOCKET"); v != "" {
		cfg.Socket = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.OTELEndpoint = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"); v != "" {
		cfg.OTELHeaders = v
	}
	return nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean: %q", s)
}

// ParseLevel maps a level name onto a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log level %q (supported: debug, info, warn, error)", s)
}
