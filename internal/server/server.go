package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"path"
	"strings"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/alnah/go-md2word"
	"github.com/alnah/go-md2word/internal/assets"
	"github.com/alnah/go-md2word/internal/metrics"
)

// Sentinel errors for server operations.
var (
	ErrListen       = errors.New("cannot listen")
	ErrInvalidSetup = errors.New("invalid server setup")
)

// Defaults applied to zero Config fields.
const (
	DefaultAddr              = "127.0.0.1:8080"
	DefaultMaxBodyBytes      = 2 << 20
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultShutdownTimeout   = 10 * time.Second
)

// Converter is the conversion entry point the server calls.
type Converter interface {
	Convert(ctx context.Context, input md2word.Input) (*md2word.Result, error)
}

// Config configures a Server.
type Config struct {
	Addr              string
	BasePath          string // mount point of the interface and format endpoint
	MaxBodyBytes      int64
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
	MetricsPath       string // empty disables the metrics endpoint
	Version           string
}

// Server serves the browser interface and the format endpoint.
type Server struct {
	cfg       Config
	converter Converter
	assets    assets.AssetLoader
	logger    *slog.Logger
	recorder  metrics.Recorder
	registry  *prom.Registry
	indexPage []byte
	handler   http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the structured logger (default: discard).
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithAssetLoader replaces the embedded browser interface.
func WithAssetLoader(loader assets.AssetLoader) Option {
	return func(s *Server) {
		s.assets = loader
	}
}

// WithMetrics records metrics on reg and serves them at Config.MetricsPath.
func WithMetrics(reg *prom.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

// New creates a Server. The index page is rendered once here, so a broken
// custom page fails at startup rather than on the first request.
func New(cfg Config, converter Converter, opts ...Option) (*Server, error) {
	if converter == nil {
		return nil, fmt.Errorf("%w: nil converter", ErrInvalidSetup)
	}

	s := &Server{
		cfg:       withDefaults(cfg),
		converter: converter,
		assets:    assets.NewEmbeddedLoader(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		recorder:  metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.registry != nil {
		if s.cfg.MetricsPath == "" {
			return nil, fmt.Errorf("%w: metrics enabled without a path", ErrInvalidSetup)
		}
		s.recorder = metrics.NewPrometheusRecorder(s.registry)
	}

	page, err := assets.RenderPage(s.assets, assets.IndexPage, assets.PageData{
		BasePath:  s.cfg.BasePath,
		FormatURL: s.cfg.BasePath + "format",
		StaticURL: s.cfg.BasePath + "static/",
		Version:   s.cfg.Version,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSetup, err)
	}
	s.indexPage = page

	s.handler = s.routes()
	return s, nil
}

// withDefaults fills zero fields of cfg.
func withDefaults(cfg Config) Config {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	cfg.BasePath = NormalizeBasePath(cfg.BasePath)
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.ReadHeaderTimeout <= 0 {
		cfg.ReadHeaderTimeout = DefaultReadHeaderTimeout
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	return cfg
}

// NormalizeBasePath returns p with exactly one leading and one trailing slash.
// An empty path mounts at the root.
func NormalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || p == "/" {
		return "/"
	}
	p = path.Clean("/" + p)
	if p == "/" {
		return p
	}
	return p + "/"
}

// routes builds the mux wrapped in middleware.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	base := s.cfg.BasePath

	mux.HandleFunc("GET "+base+"{$}", s.handleIndex)
	mux.HandleFunc("GET "+base+"static/{file}", s.handleStatic)
	mux.HandleFunc("POST "+base+"format", s.handleFormat)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	if s.registry != nil {
		mux.Handle("GET "+s.cfg.MetricsPath, metrics.HTTPHandler(s.registry))
	}

	return Chain(s.logger, s.recorder)(mux)
}

// Handler returns the HTTP handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on Config.Addr and serves until ctx is done, then shuts down
// gracefully within Config.ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrListen, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done. ln is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpSrv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.Serve(ln)
	}()

	s.logger.Info("server listening",
		slog.String("addr", ln.Addr().String()),
		slog.String("base_path", s.cfg.BasePath),
		slog.String("version", s.cfg.Version))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", slog.Duration("timeout", s.cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
