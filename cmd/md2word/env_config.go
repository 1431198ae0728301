package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/alnah/go-md2word/internal/config"
)

// Highlight values with special meaning in flags and MD2WORD_HIGHLIGHT.
const (
	highlightConfigured = "default" // enable with the configured style
	highlightOff        = "none"
)

// envConfig holds configuration from environment variables.
// Provides container-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MD2WORD_CONFIG: config file name or path

	// Server
	Addr      string // MD2WORD_ADDR: listen address
	BasePath  string // MD2WORD_BASE_PATH: mount point of the interface
	LogLevel  string // MD2WORD_LOG_LEVEL: debug, info, warn, error
	LogFormat string // MD2WORD_LOG_FORMAT: text, json
	Metrics   *bool  // MD2WORD_METRICS: expose Prometheus metrics
	AssetPath string // MD2WORD_ASSET_PATH: custom web interface directory

	// Rendering
	Highlight string // MD2WORD_HIGHLIGHT: style name, "default" or "none"
	RawHTML   *bool  // MD2WORD_RAW_HTML: pass raw HTML through

	// Batch
	OutputDir string // MD2WORD_OUTPUT_DIR: default output directory
	Workers   int    // MD2WORD_WORKERS: parallel workers
}

// knownEnvVars lists valid MD2WORD_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2WORD_CONFIG":     true,
	"MD2WORD_ADDR":       true,
	"MD2WORD_BASE_PATH":  true,
	"MD2WORD_LOG_LEVEL":  true,
	"MD2WORD_LOG_FORMAT": true,
	"MD2WORD_METRICS":    true,
	"MD2WORD_ASSET_PATH": true,
	"MD2WORD_HIGHLIGHT":  true,
	"MD2WORD_RAW_HTML":   true,
	"MD2WORD_OUTPUT_DIR": true,
	"MD2WORD_WORKERS":    true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed booleans and integers are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("MD2WORD_CONFIG"),
		Addr:       getenv("MD2WORD_ADDR"),
		BasePath:   getenv("MD2WORD_BASE_PATH"),
		LogLevel:   getenv("MD2WORD_LOG_LEVEL"),
		LogFormat:  getenv("MD2WORD_LOG_FORMAT"),
		AssetPath:  getenv("MD2WORD_ASSET_PATH"),
		Highlight:  getenv("MD2WORD_HIGHLIGHT"),
		OutputDir:  getenv("MD2WORD_OUTPUT_DIR"),
		Metrics:    parseBoolEnv(getenv("MD2WORD_METRICS")),
		RawHTML:    parseBoolEnv(getenv("MD2WORD_RAW_HTML")),
	}

	if workers := getenv("MD2WORD_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// parseBoolEnv returns nil for unset or malformed values.
func parseBoolEnv(v string) *bool {
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}

// warnUnknownEnvVars logs warnings for unrecognized MD2WORD_* variables.
// Helps catch typos like MD2WORD_ADRESS instead of MD2WORD_ADDR.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	var unknown []string
	for _, kv := range environ {
		if !strings.HasPrefix(kv, "MD2WORD_") {
			continue
		}
		name := strings.SplitN(kv, "=", 2)[0]
		if !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig applies environment variable values to config.
// Environment values override the config file; flags are applied later
// and override both.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Addr != "" {
		cfg.Server.Addr = env.Addr
	}
	if env.BasePath != "" {
		cfg.Server.BasePath = env.BasePath
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.LogFormat != "" {
		cfg.Log.Format = env.LogFormat
	}
	if env.Metrics != nil {
		cfg.Metrics.Enabled = *env.Metrics
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	applyHighlight(env.Highlight, &cfg.Render)
	if env.RawHTML != nil {
		cfg.Render.RawHTML = *env.RawHTML
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
}

// applyHighlight interprets a highlight setting: empty leaves the config
// alone, "none" disables, "default" enables with the configured style, and
// any other value enables with that style.
func applyHighlight(value string, r *config.RenderConfig) {
	switch strings.ToLower(value) {
	case "":
		return
	case highlightOff, "off", "false":
		r.Highlight = false
	case highlightConfigured, "true":
		r.Highlight = true
	default:
		r.Highlight = true
		r.HighlightStyle = value
	}
}
