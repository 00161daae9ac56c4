package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/crimson-sun/tinsel/internal/model"
	"github.com/crimson-sun/tinsel/internal/rotation"
)

var envKeys = []string{
	"TINSEL_CONFIG", "TINSEL_LOG_DIR", "TINSEL_INTERVAL", "TINSEL_LEVELS",
	"TINSEL_BUFFER_SIZE", "TINSEL_MAX_SIZE", "TINSEL_WIDTH", "TINSEL_STYLING",
	"TINSEL_COLOR", "TINSEL_DEBUG", "TINSEL_DIAG_LEVEL", "TINSEL_DIAG_JSON",
	"NO_COLOR",
}

// clearEnv blanks every variable Load reads; t.Setenv restores them.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg := Load()

	if cfg.Sink.Dir != "" {
		t.Errorf("expected file output disabled, got dir %q", cfg.Sink.Dir)
	}
	if cfg.Sink.Interval != "1h" || cfg.Sink.Levels != "all" {
		t.Errorf("sink defaults = %+v", cfg.Sink)
	}
	if cfg.Console.Width != DefaultWidth {
		t.Errorf("width = %d, want %d", cfg.Console.Width, DefaultWidth)
	}
	if !cfg.Console.Styling || !cfg.Console.Color || !cfg.Console.Debug {
		t.Errorf("console defaults = %+v", cfg.Console)
	}
	if cfg.Diagnostics.Level != "info" || cfg.Diagnostics.JSON {
		t.Errorf("diagnostics defaults = %+v", cfg.Diagnostics)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("TINSEL_LOG_DIR", "/var/log/app")
	t.Setenv("TINSEL_INTERVAL", "6h")
	t.Setenv("TINSEL_LEVELS", "warn,error")
	t.Setenv("TINSEL_BUFFER_SIZE", "8192")
	t.Setenv("TINSEL_WIDTH", "100")
	t.Setenv("TINSEL_STYLING", "false")
	t.Setenv("TINSEL_DEBUG", "0")
	t.Setenv("TINSEL_DIAG_JSON", "true")

	cfg := Load()
	if cfg.Sink.Dir != "/var/log/app" || cfg.Sink.BufferSize != 8192 {
		t.Errorf("sink = %+v", cfg.Sink)
	}
	if iv, err := cfg.Interval(); err != nil || iv != rotation.SixHour {
		t.Errorf("Interval = %v, %v", iv, err)
	}
	if ls, err := cfg.Levels(); err != nil || !reflect.DeepEqual(ls, []model.Level{model.Warn, model.Error}) {
		t.Errorf("Levels = %v, %v", ls, err)
	}
	if cfg.Console.Width != 100 || cfg.Console.Styling || cfg.Console.Debug {
		t.Errorf("console = %+v", cfg.Console)
	}
	if !cfg.Diagnostics.JSON {
		t.Error("expected JSON diagnostics")
	}
}

func TestLoad_BadNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("TINSEL_WIDTH", "wide")
	t.Setenv("TINSEL_STYLING", "maybe")
	cfg := Load()
	if cfg.Console.Width != DefaultWidth || !cfg.Console.Styling {
		t.Errorf("console = %+v", cfg.Console)
	}
}

func TestLoad_NoColor(t *testing.T) {
	clearEnv(t)
	t.Setenv("NO_COLOR", "1")
	if Load().Console.Color {
		t.Error("NO_COLOR should disable color")
	}
	t.Setenv("TINSEL_COLOR", "true")
	if !Load().Console.Color {
		t.Error("TINSEL_COLOR should win over NO_COLOR")
	}
}

func TestLoadDotenv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	content := "TINSEL_LOG_DIR=/from/dotenv\nTINSEL_INTERVAL=3h\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TINSEL_INTERVAL", "12h")
	// godotenv skips keys that exist even when empty
	os.Unsetenv("TINSEL_LOG_DIR")

	if err := LoadDotenv(path); err != nil {
		t.Fatalf("LoadDotenv error: %v", err)
	}
	cfg := Load()
	if cfg.Sink.Dir != "/from/dotenv" {
		t.Errorf("dir = %q", cfg.Sink.Dir)
	}
	if cfg.Sink.Interval != "12h" {
		t.Errorf("existing env var was overridden: %q", cfg.Sink.Interval)
	}
}

func TestLoadDotenv_MissingExplicitFile(t *testing.T) {
	if err := LoadDotenv(filepath.Join(t.TempDir(), "absent.env")); err == nil {
		t.Fatal("expected error for missing explicit file")
	}
}

func TestLoadDotenv_MissingDefaultFile(t *testing.T) {
	t.Chdir(t.TempDir())
	if err := LoadDotenv(); err != nil {
		t.Fatalf("missing ./.env should be ignored: %v", err)
	}
}

func TestDecode_Overlay(t *testing.T) {
	clearEnv(t)
	doc := `
log_dir: logs
interval: 12h
levels: error
width: 60
styling: false
diagnostics:
  level: debug
colors:
  info: "#ff0000"
  reset: "\e[0m"
symbols:
  info: "i"
borders:
  horizontal: "="
`
	cfg, err := Decode(strings.NewReader(doc), Load())
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if cfg.Sink.Dir != "logs" || cfg.Sink.Interval != "12h" || cfg.Sink.Levels != "error" {
		t.Errorf("sink = %+v", cfg.Sink)
	}
	if cfg.Console.Width != 60 || cfg.Console.Styling {
		t.Errorf("console = %+v", cfg.Console)
	}
	if !cfg.Console.Debug {
		t.Error("absent key must keep the base value")
	}
	if cfg.Diagnostics.Level != "debug" {
		t.Errorf("diagnostics = %+v", cfg.Diagnostics)
	}
	if cfg.Theme.Colors.Info != "\x1b[38;2;255;0;0m" {
		t.Errorf("info color = %q", cfg.Theme.Colors.Info)
	}
	if cfg.Theme.Colors.Reset != "\x1b[0m" {
		t.Errorf("reset = %q", cfg.Theme.Colors.Reset)
	}
	if cfg.Theme.Symbols.Info != "i" || cfg.Theme.Borders.Horizontal != "=" {
		t.Errorf("theme = %+v", cfg.Theme)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown key", "colour: red\n"},
		{"bad type", "width: wide\n"},
		{"bad hex", "colors:\n  warn: \"#xyz\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tt.doc), Config{}); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestDecode_Empty(t *testing.T) {
	base := Config{Sink: SinkConfig{Interval: "3h"}}
	cfg, err := Decode(strings.NewReader(""), base)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if !reflect.DeepEqual(cfg, base) {
		t.Errorf("empty document changed config: %+v", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tinsel.yaml")
	if err := os.WriteFile(path, []byte("interval: 1d\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path, Config{Sink: SinkConfig{Interval: "1h", Levels: "all"}})
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if cfg.Sink.Interval != "1d" || cfg.File != path {
		t.Errorf("cfg = %+v", cfg)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), cfg); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v", err)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		Sink:    SinkConfig{Interval: "3h", Levels: "info,warn"},
		Console: ConsoleConfig{Width: 75},
	}
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantKey string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad interval", func(c *Config) { c.Sink.Interval = "2h" }, "interval"},
		{"bad levels", func(c *Config) { c.Sink.Levels = "info,loud" }, "levels"},
		{"negative width", func(c *Config) { c.Console.Width = -1 }, "width"},
		{"negative buffer", func(c *Config) { c.Sink.BufferSize = -5 }, "buffer_size"},
		{"negative max size", func(c *Config) { c.Sink.MaxSize = -1 }, "max_size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantKey == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var fe *FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("error %v is not a *FieldError", err)
			}
			if fe.Key != tt.wantKey {
				t.Errorf("key = %q, want %q", fe.Key, tt.wantKey)
			}
		})
	}
}
