package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/typist/internal/config/loader"
)

// EnvPrefix is the prefix for environment overrides.
const EnvPrefix = "TYPIST_"

// Config is the full typist configuration.
type Config struct {
	Session   SessionConfig   `toml:"session"`
	Logging   LoggingConfig   `toml:"logging"`
	UI        UIConfig        `toml:"ui"`
	Reference ReferenceConfig `toml:"reference"`

	// path is the file the configuration was read from, if any.
	path string
}

// SessionConfig configures typing sessions.
type SessionConfig struct {
	// Precision is the number of recent mismatches the cursor estimate absorbs.
	Precision int `toml:"precision"`
}

// LoggingConfig configures the application logger.
type LoggingConfig struct {
	Level string `toml:"level"`
	// File receives log output. Logging is disabled when empty, since the
	// terminal is owned by the UI.
	File string `toml:"file"`
}

// UIConfig configures the terminal display.
type UIConfig struct {
	// ScrollOffset is the number of lines kept above the current line.
	ScrollOffset int          `toml:"scrollOffset"`
	ShowTyped    bool         `toml:"showTyped"`
	Colors       ColorsConfig `toml:"colors"`
}

// ColorsConfig holds display colors as names or #rrggbb strings.
type ColorsConfig struct {
	Correct string `toml:"correct"`
	Pending string `toml:"pending"`
	Status  string `toml:"status"`
}

// ReferenceConfig configures how the reference text file is followed.
type ReferenceConfig struct {
	Watch      bool `toml:"watch"`
	DebounceMS int  `toml:"debounceMs"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Session: SessionConfig{Precision: 5},
		Logging: LoggingConfig{Level: "info"},
		UI: UIConfig{
			ScrollOffset: 3,
			ShowTyped:    true,
			Colors: ColorsConfig{
				Correct: "green",
				Pending: "gray",
				Status:  "#5f87af",
			},
		},
		Reference: ReferenceConfig{Watch: true, DebounceMS: 150},
	}
}

// Path returns the file the configuration was loaded from, or "".
func (c *Config) Path() string { return c.path }

// Debounce returns the reference reload debounce interval.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Reference.DebounceMS) * time.Millisecond
}

// Validate checks every setting and returns the first problem found.
func (c *Config) Validate() error {
	if c.Session.Precision < 0 {
		return &ValidationError{Path: "session.precision", Value: c.Session.Precision, Err: ErrInvalidPrecision}
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Path: "logging.level", Value: c.Logging.Level, Err: ErrInvalidLogLevel}
	}
	if c.UI.ScrollOffset < 0 {
		return &ValidationError{Path: "ui.scrollOffset", Value: c.UI.ScrollOffset, Err: ErrInvalidValue}
	}
	if c.Reference.DebounceMS < 0 {
		return &ValidationError{Path: "reference.debounceMs", Value: c.Reference.DebounceMS, Err: ErrInvalidValue}
	}
	return nil
}

// options collects Load settings.
type options struct {
	path   string
	fs     loader.FileSystem
	useEnv bool
}

// Option configures Load.
type Option func(*options)

// WithPath reads the TOML file at path instead of the default location.
func WithPath(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// WithFS reads files through fsys.
func WithFS(fsys loader.FileSystem) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

// WithEnv enables or disables environment overrides.
func WithEnv(enable bool) Option {
	return func(o *options) {
		o.useEnv = enable
	}
}

// Load builds a validated configuration from defaults, the TOML file and
// the environment. A missing file is not an error.
func Load(opts ...Option) (*Config, error) {
	o := options{
		fs:     loader.DefaultFS(),
		useEnv: true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.path == "" {
		o.path = DefaultPath()
	}

	merged, err := toMap(Default())
	if err != nil {
		return nil, err
	}

	// Later sources override earlier ones.
	file := loader.NewTOMLLoaderWithFS(o.fs, o.path)
	sources := []loader.Loader{file}
	if o.useEnv {
		sources = append(sources, loader.NewEnvLoader(EnvPrefix))
	}

	fileFound := false
	for _, src := range sources {
		m, err := src.Load()
		if err != nil {
			return nil, err
		}
		if m != nil && src == loader.Loader(file) {
			fileFound = true
		}
		merged = loader.DeepMerge(merged, m)
	}

	cfg, err := fromMap(merged)
	if err != nil {
		return nil, err
	}
	if fileFound {
		cfg.path = o.path
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// toMap converts a Config to its generic map form.
func toMap(c *Config) (map[string]any, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return m, nil
}

// fromMap decodes a merged map into a Config.
func fromMap(m map[string]any) (*Config, error) {
	data, err := toml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encoding merged config: %w", err)
	}
	cfg := &Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	return cfg, nil
}

// DefaultPath returns the user configuration file location.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "typist", "config.toml")
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".typist", "config.toml")
	}
	return filepath.Join(dir, "typist", "config.toml")
}
