package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.StepsDir != "target" {
		t.Errorf("StepsDir: got %q, want %q", cfg.StepsDir, "target")
	}
	if cfg.CaptureScreenshots {
		t.Error("CaptureScreenshots should be off by default")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel: got %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat: got %q, want %q", cfg.LogFormat, "text")
	}
}

// chdirTemp moves into a fresh directory with an isolated HOME for the test.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(orig) })
	t.Setenv("HOME", filepath.Join(dir, "home"))
	return dir
}

func TestLoadFromFile(t *testing.T) {
	dir := chdirTemp(t)
	data := []byte("registry: /tmp/reg\ncapture_screenshots: true\nlog_locators: true\nsteps_dir: out\nlog_level: debug\n")
	if err := os.WriteFile(filepath.Join(dir, ".webtrace.yaml"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ConfigFile != ".webtrace.yaml" {
		t.Errorf("ConfigFile: got %q", cfg.ConfigFile)
	}
	if cfg.Registry != "/tmp/reg" {
		t.Errorf("Registry: got %q", cfg.Registry)
	}
	if !cfg.CaptureScreenshots {
		t.Error("CaptureScreenshots: want true from file")
	}
	if !cfg.LogLocators {
		t.Error("LogLocators: want true from file")
	}
	if cfg.StepsDir != "out" {
		t.Errorf("StepsDir: got %q", cfg.StepsDir)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q", cfg.LogLevel)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)
	data := []byte("registry: /from/file\ncapture_screenshots: true\n")
	if err := os.WriteFile(filepath.Join(dir, ".webtrace.yaml"), data, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("WEBTRACE_REGISTRY", "/from/env")
	t.Setenv("WEBTRACE_CAPTURE_SCREENSHOTS", "false")
	t.Setenv("WEBTRACE_SHADOW_PATHS", "1")
	t.Setenv("WEBTRACE_LOG_LOCATORS", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Registry != "/from/env" {
		t.Errorf("Registry: got %q, want /from/env", cfg.Registry)
	}
	if cfg.CaptureScreenshots {
		t.Error("CaptureScreenshots: env false should win over file true")
	}
	if !cfg.ShadowPaths {
		t.Error("ShadowPaths: want true from env")
	}
	if !cfg.LogLocators {
		t.Error("LogLocators: want true from env")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad bool", "WEBTRACE_PERFORMANCE", "maybe"},
		{"bad level", "WEBTRACE_LOG_LEVEL", "loud"},
		{"bad format", "WEBTRACE_LOG_FORMAT", "xml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdirTemp(t)
			t.Setenv(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.val)
			}
		})
	}
}

func TestRegistryRoot(t *testing.T) {
	cfg := &Config{Registry: "/explicit"}
	if got := cfg.RegistryRoot(); got != "/explicit" {
		t.Errorf("override: got %q", got)
	}

	dir := chdirTemp(t)
	cfg = &Config{}
	got := cfg.RegistryRoot()
	wd, _ := os.Getwd()
	if filepath.Dir(got) != wd {
		t.Errorf("RegistryRoot %q not under working dir %q (tmp %q)", got, wd, dir)
	}
}

func TestRegistryDirName(t *testing.T) {
	if got := registryDirName("windows"); got != "webtrace" {
		t.Errorf("windows: got %q", got)
	}
	for _, goos := range []string{"linux", "darwin"} {
		if got := registryDirName(goos); got != ".webtrace" {
			t.Errorf("%s: got %q", goos, got)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		if err != nil {
			t.Errorf("ParseLevel(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
