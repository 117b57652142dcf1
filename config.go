package symtree

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ============================================================
// Configuration
// ============================================================

// Format is a configuration file format.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
	// FormatAuto picks the format from the file extension.
	FormatAuto
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatAuto:
		return "auto"
	}
	return "unknown"
}

// Config holds the settings of a differentiate-and-simplify session.
type Config struct {
	// Variable is the default differentiation variable.
	Variable string `toml:"variable" yaml:"variable"`
	// MaxRewrites bounds the rules one Simplify call may fire; 0 is unbounded.
	MaxRewrites int       `toml:"max_rewrites" yaml:"max_rewrites"`
	Log         LogConfig `toml:"log" yaml:"log"`
}

type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`
	// Format is text or json.
	Format string `toml:"format" yaml:"format"`
}

func DefaultConfig() Config {
	return Config{
		Variable:    DefaultVariable,
		MaxRewrites: DefaultMaxRewrites,
		Log:         LogConfig{Level: "info", Format: "text"},
	}
}

// LoadConfig reads a TOML or YAML file chosen by its extension. Keys missing
// from the file keep their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return Config{}, fmt.Errorf("%w: config file path is empty", ErrInvalidConfig)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data, formatOf(path))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func formatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	}
	return FormatAuto
}

// ParseConfig decodes data in format f over DefaultConfig and validates it.
func ParseConfig(data []byte, f Format) (Config, error) {
	cfg := DefaultConfig()
	var err error
	switch f {
	case FormatTOML:
		_, err = toml.Decode(string(data), &cfg)
	case FormatYAML:
		err = yaml.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("%w: unsupported config format %s", ErrInvalidConfig, f)
	}
	if err != nil {
		return Config{}, fmt.Errorf("%w: decode %s: %v", ErrInvalidConfig, f, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Variable) == "" {
		return fmt.Errorf("%w: variable is empty", ErrInvalidConfig)
	}
	if c.MaxRewrites < 0 {
		return fmt.Errorf("%w: max_rewrites %d < 0", ErrInvalidConfig, c.MaxRewrites)
	}
	if _, err := c.Log.level(); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

func (l LogConfig) level() (slog.Level, error) {
	var lvl slog.Level
	if l.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalidConfig, l.Level)
	}
	return lvl, nil
}

// Logger returns a text or JSON logger writing to w at the configured level.
func (c Config) Logger(w io.Writer) *slog.Logger {
	lvl, err := c.Log.level()
	if err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Options returns the analyzer options for c, logging to w.
func (c Config) Options(w io.Writer) []Option {
	return []Option{WithLogger(c.Logger(w)), WithMaxRewrites(c.MaxRewrites)}
}

func (c Config) Simplifier(w io.Writer) *Simplifier { return NewSimplifier(c.Options(w)...) }
func (c Config) Differentiator(w io.Writer) *Differentiator {
	return NewDifferentiator(c.Options(w)...)
}

// Context returns a differentiator context for the configured variable.
func (c Config) Context(functions *FunctionTable) *DifferentiatorContext {
	return NewDifferentiatorContext(S(c.Variable), functions)
}
