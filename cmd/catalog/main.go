package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"ParasiteAtlas/internal/cache"
	"ParasiteAtlas/internal/catalog"
	"ParasiteAtlas/internal/config"
	"ParasiteAtlas/internal/wiki"
	"ParasiteAtlas/pkg/kit"
)

func main() {
	service := "catalog"

	configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, err := kit.NewLogger(service, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	store, err := openCache(cfg.Cache, log)
	if err != nil {
		log.Fatal("open cache failed", zap.Error(err), zap.String("backend", cfg.Cache.Backend))
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("close cache failed", zap.Error(err))
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	svc := catalog.NewService(catalog.ServiceDeps{
		Upstream: wiki.NewClient(cfg.Wiki.BaseURL, cfg.Wiki.UserAgent, cfg.Wiki.Timeout),
		Cache:    store,
		Log:      log,
		Metrics:  catalog.NewMetrics(reg),
		TTL:      cfg.Cache.TTL,
	})

	h := catalog.NewHandler(&catalog.Server{Catalog: svc, Log: log}, catalog.HTTPDeps{
		Log:             log,
		Service:         service,
		Registry:        reg,
		MetricsEnabled:  cfg.MetricsEnabled,
		MetricsToken:    cfg.MetricsToken,
		SearchPerMinute: cfg.Search.RatePerMinute,
		SearchBurst:     cfg.Search.Burst,
	})

	log.Info("catalog configured",
		zap.String("cache_backend", cfg.Cache.Backend),
		zap.Duration("cache_ttl", cfg.Cache.TTL),
		zap.String("wiki", cfg.Wiki.BaseURL),
	)

	if err := kit.RunHTTPServer(context.Background(), ":"+cfg.Port, h, log); err != nil {
		log.Error("http server stopped", zap.Error(err))
	}
}

func openCache(cfg config.CacheConfig, log *zap.Logger) (cache.Store, error) {
	if cfg.Backend == "badger" {
		return cache.OpenBadger(cache.BadgerConfig{
			Path:     cfg.BadgerPath,
			InMemory: cfg.BadgerPath == "",
			Log:      log.Named("badger"),
		})
	}
	return cache.Open(cfg.Backend, cfg.MaxItems, cfg.BadgerPath)
}
