package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/wfsquery/internal/config"
	dbRedis "github.com/kailas-cloud/wfsquery/internal/db/redis"
	logpkg "github.com/kailas-cloud/wfsquery/internal/logger"
	"github.com/kailas-cloud/wfsquery/internal/metrics"
	profilerepo "github.com/kailas-cloud/wfsquery/internal/repository/profile"
	"github.com/kailas-cloud/wfsquery/internal/repository/requestcache"
	chiTransport "github.com/kailas-cloud/wfsquery/internal/transport/chi"
	"github.com/kailas-cloud/wfsquery/internal/usecase/getfeature"
	healthuc "github.com/kailas-cloud/wfsquery/internal/usecase/health"
	searchuc "github.com/kailas-cloud/wfsquery/internal/usecase/search"
	"github.com/kailas-cloud/wfsquery/internal/version"
	"github.com/kailas-cloud/wfsquery/internal/wfs"
)

func main() {
	env := config.GetEnv()

	cfg := config.MustLoad(env)

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting wfsquery API server",
		zap.String("build", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Int("profiles", len(cfg.Profiles)),
		zap.Bool("cache_enabled", cfg.Cache.Enabled()),
	)

	profiles, err := profilerepo.New(cfg.Profiles)
	if err != nil {
		logger.Fatal("Invalid search profiles", zap.Error(err))
	}

	metrics.RegisterRequestMetrics()

	recorder := metrics.NewCombineRecorder(metrics.CombineTotal, metrics.QueryBlocks)
	searchSvc := searchuc.New(wfs.Writer{}).WithRecorder(recorder)

	// Pass a nil interface, not a typed nil *Store, when the cache is off:
	// (*dbRedis.Store)(nil) wrapped in healthuc.Pinger != nil.
	var combiner getfeature.Combiner = searchSvc
	var cachePinger healthuc.Pinger
	if cfg.Cache.Enabled() {
		store := mustConnectCache(cfg.Cache, logger)
		defer store.Close()

		combiner = requestcache.New(searchSvc, store, cfg.Cache.TTL(), metrics.RequestCacheTotal, logger).
			WithRecorder(recorder)
		cachePinger = store
	}

	getfeatureSvc := getfeature.New(profiles, combiner)
	healthSvc := healthuc.New(cachePinger, len(cfg.Profiles))

	server := chiTransport.NewServer(getfeatureSvc, searchSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	chiTransport.HandlerWithOptions(server, chiTransport.ServerOptions{
		BaseRouter: r,
		ErrorHandlerFunc: func(w http.ResponseWriter, _ *http.Request, err error) {
			writeJSONError(w, http.StatusBadRequest, "bad_request", err.Error())
		},
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// mustConnectCache opens the Redis/Valkey cache and waits until it answers PING.
func mustConnectCache(cc config.CacheConfig, logger *zap.Logger) *dbRedis.Store {
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cc.Addrs,
		Username: cc.Username,
		Password: cc.Password,
		DB:       cc.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create cache store", zap.Error(err))
	}

	if err := store.WaitForReady(context.Background(), time.Duration(cc.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		logger.Fatal("Cache not ready", zap.Error(err))
	}
	logger.Info("Connected to cache", zap.Strings("addrs", cc.Addrs), zap.Duration("ttl", cc.TTL()))
	return store
}
