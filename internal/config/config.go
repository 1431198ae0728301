package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-md2word/internal/fileutil"
	"github.com/alnah/go-md2word/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppDirName is the directory under the user config dir searched for configs.
const AppDirName = "go-md2word"

// Field length limits.
const (
	MaxAddrLength     = 255
	MaxPathLength     = 2048
	MaxStyleLength    = 64
	MaxLogLevelLength = 10
)

// Defaults used by DefaultConfig.
const (
	DefaultAddr              = "127.0.0.1:8080"
	DefaultBasePath          = "/"
	DefaultMaxBodyBytes      = 2 << 20
	DefaultMaxInputBytes     = 5 << 20
	DefaultTimeout           = 10 * time.Second
	DefaultHighlightStyle    = "github"
	DefaultMetricsPath       = "/metrics"
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "text"
	reservedHealthPath       = "/healthz"
	maxMaxInputBytes         = 64 << 20
	maxTimeout               = 10 * time.Minute
	defaultConfigPermissions = 0o600
)

// Config holds all configuration for conversion and serving.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Render  RenderConfig  `yaml:"render"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
	Output  OutputConfig  `yaml:"output"`
	Assets  AssetsConfig  `yaml:"assets"`
}

// ServerConfig defines the HTTP server.
type ServerConfig struct {
	Addr              string        `yaml:"addr"`
	BasePath          string        `yaml:"basePath"`     // mount point of the interface, "/" = root
	MaxBodyBytes      int64         `yaml:"maxBodyBytes"` // request body limit, 413 above
	ReadHeaderTimeout time.Duration `yaml:"readHeaderTimeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdownTimeout"`
}

// RenderConfig defines conversion options.
type RenderConfig struct {
	Highlight      bool   `yaml:"highlight"`      // colour fenced code with a language
	HighlightStyle string `yaml:"highlightStyle"` // chroma style name
	RawHTML        bool   `yaml:"rawHTML"`        // pass raw HTML through
	MaxInputBytes  int    `yaml:"maxInputBytes"`
}

// LogConfig defines server logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// MetricsConfig defines the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:              DefaultAddr,
			BasePath:          DefaultBasePath,
			MaxBodyBytes:      DefaultMaxBodyBytes,
			ReadHeaderTimeout: DefaultTimeout,
			ShutdownTimeout:   DefaultTimeout,
		},
		Render: RenderConfig{
			HighlightStyle: DefaultHighlightStyle,
			MaxInputBytes:  DefaultMaxInputBytes,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Metrics: MetricsConfig{
			Path: DefaultMetricsPath,
		},
	}
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct or override Config manually (e.g. from flags).
func (c *Config) Validate() error {
	if err := validateFieldLength("server.addr", c.Server.Addr, MaxAddrLength); err != nil {
		return err
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr: required", ErrInvalidValue)
	}
	if err := validateFieldLength("server.basePath", c.Server.BasePath, MaxPathLength); err != nil {
		return err
	}
	if c.Server.BasePath != "" && !strings.HasPrefix(c.Server.BasePath, "/") {
		return fmt.Errorf("%w: server.basePath: must start with /, got %q", ErrInvalidValue, c.Server.BasePath)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("%w: server.maxBodyBytes: must be positive, got %d", ErrInvalidValue, c.Server.MaxBodyBytes)
	}
	if err := validateTimeout("server.readHeaderTimeout", c.Server.ReadHeaderTimeout); err != nil {
		return err
	}
	if err := validateTimeout("server.shutdownTimeout", c.Server.ShutdownTimeout); err != nil {
		return err
	}

	if err := validateFieldLength("render.highlightStyle", c.Render.HighlightStyle, MaxStyleLength); err != nil {
		return err
	}
	if c.Render.MaxInputBytes <= 0 || c.Render.MaxInputBytes > maxMaxInputBytes {
		return fmt.Errorf("%w: render.maxInputBytes: must be between 1 and %d, got %d",
			ErrInvalidValue, maxMaxInputBytes, c.Render.MaxInputBytes)
	}

	if err := validateFieldLength("log.level", c.Log.Level, MaxLogLevelLength); err != nil {
		return err
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log.format: invalid value %q (must be text or json)", ErrInvalidValue, c.Log.Format)
	}

	if c.Metrics.Enabled {
		if err := validateFieldLength("metrics.path", c.Metrics.Path, MaxPathLength); err != nil {
			return err
		}
		if !strings.HasPrefix(c.Metrics.Path, "/") {
			return fmt.Errorf("%w: metrics.path: must start with /, got %q", ErrInvalidValue, c.Metrics.Path)
		}
		if c.Metrics.Path == reservedHealthPath {
			return fmt.Errorf("%w: metrics.path: %s is reserved", ErrInvalidValue, reservedHealthPath)
		}
	}

	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	return validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength)
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateTimeout accepts durations in (0, maxTimeout].
func validateTimeout(fieldName string, d time.Duration) error {
	if d <= 0 || d > maxTimeout {
		return fmt.Errorf("%w: %s: must be between 1ns and %s, got %s", ErrInvalidValue, fieldName, maxTimeout, d)
	}
	return nil
}

// ParseLogLevel maps a level name to a slog.Level. Empty means info.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: log.level: invalid value %q (must be debug, info, warn, or error)", ErrInvalidValue, level)
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in SearchPaths.
// Fields absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Marshal renders cfg as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yamlutil.Marshal(c)
}

// SearchPaths lists the files tried for a config name, in lookup order:
// current directory then the user config directory, .yaml before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDirName, name+ext))
		}
	}

	return paths
}

// resolveConfigPath returns the first existing file of SearchPaths.
func resolveConfigPath(name string) (string, error) {
	triedPaths := SearchPaths(name)
	for _, p := range triedPaths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// WriteExample writes cfg as YAML to path, refusing to overwrite a file.
func WriteExample(cfg *Config, path string) error {
	if fileutil.FileExists(path) {
		return fmt.Errorf("%w: %s already exists", ErrInvalidValue, path)
	}
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, defaultConfigPermissions); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
