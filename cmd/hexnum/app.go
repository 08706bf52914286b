// Runtime wiring shared by hexnum commands.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/hexnum/numeral"
	"github.com/katalvlaran/hexnum/patterncache"
	"github.com/katalvlaran/hexnum/search"
)

// defaultCacheNames are used when cache.path is empty.
var defaultCacheNames = map[string]string{
	patterncache.BackendText:   "patterns.txt",
	patterncache.BackendSQLite: "patterns.db",
	patterncache.BackendBadger: "badger",
}

// app holds everything a command needs. Built in PersistentPreRunE, closed
// in PersistentPostRunE.
type app struct {
	cfg       Config
	configDir string
	logger    *slog.Logger
	registry  *prometheus.Registry
	engine    *search.Engine
	store     patterncache.Store
	cache     *patterncache.Source
	source    numeral.Source
	formatter *numeral.Formatter
	metrics   *http.Server
}

// newLogger builds a slog logger writing to w. level is any slog level name,
// format is "text" or "json".
func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("log format %q is not text or json", format)
	}
}

func newApp(cfg Config, configDir string, stderr io.Writer) (*app, error) {
	logger, err := newLogger(stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, configDir: configDir, logger: logger, registry: prometheus.NewRegistry()}
	a.registry.MustRegister(collectors.NewGoCollector())

	a.engine = search.NewEngine(
		search.WithSeed(cfg.Seed),
		search.WithMaxAttempts(cfg.MaxAttempts),
		search.WithMaxDepth(cfg.MaxDepth),
		search.WithTolerance(cfg.Tolerance),
		search.WithCacheSize(cfg.MemoryCache),
		search.WithLogger(logger.With(slog.String("component", "search"))),
		search.WithMetrics(search.NewMetrics(a.registry)),
	)

	var src numeral.Source = a.engine
	if cfg.Cache.Backend != backendNone {
		path := a.cachePath()
		a.store, err = patterncache.Open(cfg.Cache.Backend, path)
		if err != nil {
			return nil, err
		}
		a.cache = patterncache.NewSource(a.store, a.engine,
			patterncache.WithLogger(logger.With(slog.String("component", "cache"))),
			patterncache.WithRegisterer(a.registry),
		)
		src = a.cache
		logger.Debug("cache opened", slog.String("backend", cfg.Cache.Backend), slog.String("path", path))
	}
	a.source = src
	a.formatter = numeral.NewFormatter(src, numeral.WithLogger(logger.With(slog.String("component", "numeral"))))

	if cfg.Metrics.Addr != "" {
		if err := a.serveMetrics(cfg.Metrics.Addr); err != nil {
			a.close(context.Background())
			return nil, err
		}
	}
	return a, nil
}

func (a *app) cachePath() string {
	p := a.cfg.Cache.Path
	if p == "" {
		p = defaultCacheNames[a.cfg.Cache.Backend]
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(a.configDir, p)
	}
	return p
}

// requireCache fails commands that only make sense with a persistent cache.
func (a *app) requireCache() error {
	if a.store == nil {
		return errors.New("this command needs a cache; set cache.backend or --cache-backend")
	}
	return nil
}

// serveMetrics exposes the registry on addr/metrics until close.
func (a *app) serveMetrics(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("metrics listener: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	a.metrics = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := a.metrics.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server stopped", slog.String("error", err.Error()))
		}
	}()
	a.logger.Info("serving metrics", slog.String("addr", ln.Addr().String()))
	return nil
}

func (a *app) close(ctx context.Context) error {
	var errs []error
	if a.metrics != nil {
		sctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		errs = append(errs, a.metrics.Shutdown(sctx))
		cancel()
	}
	if a.store != nil {
		errs = append(errs, a.store.Close())
	}
	return errors.Join(errs...)
}
