// Package config loads tinsel settings from the environment, optional
// .env files and an optional YAML file, in that order of increasing
// precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/crimson-sun/tinsel/internal/model"
	"github.com/crimson-sun/tinsel/internal/rotation"
	"github.com/crimson-sun/tinsel/internal/theme"
)

// DefaultWidth is the box width used when none is configured.
const DefaultWidth = 75

// Config holds all tinsel configuration.
type Config struct {
	File        string // YAML file to overlay, from TINSEL_CONFIG
	Sink        SinkConfig
	Console     ConsoleConfig
	Theme       ThemeConfig
	Diagnostics DiagnosticsConfig
}

// SinkConfig controls the file mirror.
type SinkConfig struct {
	Dir        string // empty disables file output
	Interval   string // "1h", "3h", "6h", "9h", "12h" or "1d"
	Levels     string // comma list, "all" or "none"
	BufferSize int    // 0 opens the file per write
	MaxSize    int64  // bytes; 0 disables size rotation
}

// ConsoleConfig controls what reaches the terminal.
type ConsoleConfig struct {
	Width   int  // box width; 0 means the terminal width
	Styling bool // translate markup into escape codes
	Color   bool // false selects theme.NoColors
	Debug   bool // show debug messages on the console
}

// ThemeConfig carries overrides for the stock theme. Empty slots keep the
// default glyph or color.
type ThemeConfig struct {
	Colors  theme.Colors
	Symbols theme.Symbols
	Borders theme.Borders
}

// DiagnosticsConfig controls tinsel's own slog output.
type DiagnosticsConfig struct {
	Level string
	JSON  bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		File: os.Getenv("TINSEL_CONFIG"),
		Sink: SinkConfig{
			Dir:        os.Getenv("TINSEL_LOG_DIR"),
			Interval:   getenv("TINSEL_INTERVAL", "1h"),
			Levels:     getenv("TINSEL_LEVELS", "all"),
			BufferSize: getenvInt("TINSEL_BUFFER_SIZE", 0),
			MaxSize:    int64(getenvInt("TINSEL_MAX_SIZE", 0)),
		},
		Console: ConsoleConfig{
			Width:   getenvInt("TINSEL_WIDTH", DefaultWidth),
			Styling: getenvBool("TINSEL_STYLING", true),
			Color:   getenvBool("TINSEL_COLOR", os.Getenv("NO_COLOR") == ""),
			Debug:   getenvBool("TINSEL_DEBUG", true),
		},
		Diagnostics: DiagnosticsConfig{
			Level: getenv("TINSEL_DIAG_LEVEL", "info"),
			JSON:  getenvBool("TINSEL_DIAG_JSON", false),
		},
	}
}

// LoadDotenv loads KEY=VALUE files into the process environment without
// overriding variables that are already set. With no paths it reads ./.env
// and treats a missing file as empty.
func LoadDotenv(paths ...string) error {
	if len(paths) == 0 {
		err := godotenv.Load()
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("config: load .env: %w", err)
		}
		return nil
	}
	if err := godotenv.Load(paths...); err != nil {
		return fmt.Errorf("config: load %s: %w", strings.Join(paths, ", "), err)
	}
	return nil
}

// fileConfig is the YAML document layout. Pointers distinguish an absent
// key from a zero value.
type fileConfig struct {
	LogDir     *string `yaml:"log_dir"`
	Interval   *string `yaml:"interval"`
	Levels     *string `yaml:"levels"`
	BufferSize *int    `yaml:"buffer_size"`
	MaxSize    *int64  `yaml:"max_size"`
	Width      *int    `yaml:"width"`
	Styling    *bool   `yaml:"styling"`
	Color      *bool   `yaml:"color"`
	Debug      *bool   `yaml:"debug"`

	Diagnostics struct {
		Level *string `yaml:"level"`
		JSON  *bool   `yaml:"json"`
	} `yaml:"diagnostics"`

	Colors  theme.Colors  `yaml:"colors"`
	Symbols theme.Symbols `yaml:"symbols"`
	Borders theme.Borders `yaml:"borders"`
}

// LoadFile overlays the YAML file at path onto base. Unknown keys are an
// error. Colors may be "#rrggbb", "#rgb" or a literal escape sequence.
func LoadFile(path string, base Config) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return base, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()
	cfg, err := Decode(f, base)
	if err != nil {
		return base, fmt.Errorf("config: %s: %w", path, err)
	}
	cfg.File = path
	return cfg, nil
}

// Decode overlays one YAML document read from r onto base. An empty
// document leaves base unchanged.
func Decode(r io.Reader, base Config) (Config, error) {
	var fc fileConfig
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return base, fmt.Errorf("decode: %w", err)
	}

	colors, err := theme.ResolveColors(fc.Colors)
	if err != nil {
		return base, &FieldError{Key: "colors", Err: err}
	}

	cfg := base
	overlay(&cfg.Sink.Dir, fc.LogDir)
	overlay(&cfg.Sink.Interval, fc.Interval)
	overlay(&cfg.Sink.Levels, fc.Levels)
	overlay(&cfg.Sink.BufferSize, fc.BufferSize)
	overlay(&cfg.Sink.MaxSize, fc.MaxSize)
	overlay(&cfg.Console.Width, fc.Width)
	overlay(&cfg.Console.Styling, fc.Styling)
	overlay(&cfg.Console.Color, fc.Color)
	overlay(&cfg.Console.Debug, fc.Debug)
	overlay(&cfg.Diagnostics.Level, fc.Diagnostics.Level)
	overlay(&cfg.Diagnostics.JSON, fc.Diagnostics.JSON)
	cfg.Theme.Colors = cfg.Theme.Colors.Merge(colors)
	cfg.Theme.Symbols = cfg.Theme.Symbols.Merge(fc.Symbols)
	cfg.Theme.Borders = cfg.Theme.Borders.Merge(fc.Borders)
	return cfg, nil
}

func overlay[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// FieldError reports a configuration value that failed validation.
type FieldError struct {
	Key   string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("config: %s: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("config: %s=%q: %v", e.Key, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// Interval parses the configured rotation interval.
func (c Config) Interval() (rotation.Interval, error) {
	iv, err := rotation.ParseInterval(c.Sink.Interval)
	if err != nil {
		return 0, &FieldError{Key: "interval", Value: c.Sink.Interval, Err: err}
	}
	return iv, nil
}

// Levels parses the configured sink allow-set.
func (c Config) Levels() ([]model.Level, error) {
	ls, err := model.ParseLevels(c.Sink.Levels)
	if err != nil {
		return nil, &FieldError{Key: "levels", Value: c.Sink.Levels, Err: err}
	}
	return ls, nil
}

var errNegative = errors.New("must not be negative")

// Validate checks every field that has a restricted domain and returns the
// first failure as a *FieldError.
func (c Config) Validate() error {
	if _, err := c.Interval(); err != nil {
		return err
	}
	if _, err := c.Levels(); err != nil {
		return err
	}
	ints := []struct {
		key string
		v   int64
	}{
		{"width", int64(c.Console.Width)},
		{"buffer_size", int64(c.Sink.BufferSize)},
		{"max_size", c.Sink.MaxSize},
	}
	for _, f := range ints {
		if f.v < 0 {
			return &FieldError{Key: f.key, Value: strconv.FormatInt(f.v, 10), Err: errNegative}
		}
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
