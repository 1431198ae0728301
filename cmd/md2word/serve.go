package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/alnah/go-md2word/internal/assets"
	"github.com/alnah/go-md2word/internal/config"
	"github.com/alnah/go-md2word/internal/fileutil"
	"github.com/alnah/go-md2word/internal/hints"
	"github.com/alnah/go-md2word/internal/metrics"
	"github.com/alnah/go-md2word/internal/server"
)

// defaultEnvFile is read by serve when present and --env-file is not given.
const defaultEnvFile = ".env"

// runServe starts the HTTP server and blocks until ctx is canceled.
func runServe(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	env, err = loadDotenv(flags.envFile, env)
	if err != nil {
		return err
	}

	cfg, _, err := loadConfig(flags.common.config, env)
	if err != nil {
		return err
	}
	mergeServeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(env.Stderr, cfg.Log)
	if err != nil {
		return err
	}

	srv, err := buildServer(cfg, logger)
	if err != nil {
		return err
	}

	if err := srv.Run(ctx); err != nil {
		if errors.Is(err, server.ErrListen) {
			return fmt.Errorf("%w%s", err, hints.ForListen(cfg.Server.Addr, errors.Is(err, syscall.EADDRINUSE)))
		}
		return err
	}
	return nil
}

// loadDotenv layers a .env file under the process environment. An explicit
// path must exist; the default .env is read only when present.
func loadDotenv(path string, env *Environment) (*Environment, error) {
	if path == "" {
		if !fileutil.FileExists(defaultEnvFile) {
			return env, nil
		}
		path = defaultEnvFile
	}

	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}
	return env.withDotenv(vars), nil
}

// mergeServeFlags merges serve flags into config. Flags win.
func mergeServeFlags(f *serveFlags, cfg *config.Config) {
	if f.addr != "" {
		cfg.Server.Addr = f.addr
	}
	if f.basePath != "" {
		cfg.Server.BasePath = f.basePath
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.logFormat != "" {
		cfg.Log.Format = f.logFormat
	}
	if f.common.verbose {
		cfg.Log.Level = "debug"
	}
	if f.common.quiet {
		cfg.Log.Level = "warn"
	}
	if f.metrics {
		cfg.Metrics.Enabled = true
	}
	mergeRenderFlags(&f.render, cfg)
}

// newLogger creates the server logger writing to w.
func newLogger(w io.Writer, lc config.LogConfig) (*slog.Logger, error) {
	level, err := config.ParseLogLevel(lc.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(lc.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// buildServer wires the converter, web assets and metrics into a server.
func buildServer(cfg *config.Config, logger *slog.Logger) (*server.Server, error) {
	conv, err := newConverter(cfg)
	if err != nil {
		return nil, err
	}

	opts := []server.Option{server.WithLogger(logger)}

	if cfg.Assets.BasePath != "" {
		resolver, err := assets.NewAssetResolver(cfg.Assets.BasePath)
		if err != nil {
			return nil, fmt.Errorf("loading web assets: %w", err)
		}
		opts = append(opts, server.WithAssetLoader(resolver))
		logger.Debug("custom web assets", slog.String("path", cfg.Assets.BasePath))
	}

	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
		opts = append(opts, server.WithMetrics(metrics.NewRegistry()))
	}

	return server.New(server.Config{
		Addr:              cfg.Server.Addr,
		BasePath:          cfg.Server.BasePath,
		MaxBodyBytes:      cfg.Server.MaxBodyBytes,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ShutdownTimeout:   cfg.Server.ShutdownTimeout,
		MetricsPath:       metricsPath,
		Version:           Version,
	}, conv, opts...)
}
