// Command server runs the contact discovery service: an HTTP API that pulls
// newly registered advisory firms, scores them for fit, and enriches each
// with a best-guess contact.
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"surge/internal/audit"
	"surge/internal/contactstore"
	"surge/internal/discovery"
	"surge/internal/enrich/crawl"
	"surge/internal/enrich/directory"
	"surge/internal/enrich/extract"
	"surge/internal/enrich/fetch"
	enrichhandler "surge/internal/enrich/handler"
	"surge/internal/enrich/metrics"
	"surge/internal/enrich/reconcile"
	enrichservice "surge/internal/enrich/service"
	httpapi "surge/internal/http"
	"surge/internal/platform/config"
	"surge/internal/platform/httpserver"
	"surge/internal/platform/logger"
	platformredis "surge/internal/platform/redis"
	"surge/internal/registry"
	"surge/internal/score"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	store, cleanup, err := buildStore(cfg)
	if err != nil {
		log.Error("store initialization failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	m := metrics.New()
	fetcher := fetch.New(cfg.Crawler.FetchTimeout)
	extractor := extract.NewExtractor()
	crawler := crawl.New(fetcher, extractor, cfg.Crawler.MaxSubpages, cfg.Crawler.PageDelay, m, log)
	dir := directory.New(cfg.Directory.BaseURL, cfg.Directory.APIKey, m, log)
	reconciler := reconcile.New(dir, log)
	enricher := enrichservice.New(crawler, dir, reconciler, m, log)

	feed := registry.NewFeed(registry.DefaultBaseURL, log)
	scorer := score.NewScorer(fetcher, log)
	auditor := audit.NewPublisher(audit.NewInMemoryStore())
	pipeline := discovery.New(feed, scorer, enricher, store, auditor, log)

	router := httpapi.NewRouter(httpapi.Deps{
		Enrich:     enrichhandler.New(enricher, dir, log),
		Discovery:  discovery.NewHandler(pipeline, log),
		Health:     store,
		APIKeyHash: cfg.Server.APIKeyHash,
		Logger:     log,
	})

	srv := httpserver.New(cfg.Server.Addr, router)

	log.Info("starting contact discovery service",
		"addr", cfg.Server.Addr,
		"directory_enabled", dir.Enabled(),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

// buildStore picks the firm cache backend: Postgres when a DSN is set, Redis
// when a URL is set, otherwise process memory.
func buildStore(cfg config.Config) (contactstore.Store, func(), error) {
	if cfg.Postgres.DSN != "" {
		db, err := sql.Open("postgres", cfg.Postgres.DSN)
		if err != nil {
			return nil, nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		store, err := contactstore.NewPostgres(ctx, db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, func() { db.Close() }, nil
	}

	client, err := platformredis.New(cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	if client != nil {
		return contactstore.NewRedis(client.Client), func() { client.Close() }, nil
	}

	return contactstore.NewInMemoryStore(), func() {}, nil
}
