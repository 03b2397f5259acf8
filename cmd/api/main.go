package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cpinopacheco/sistema-inventario-BD/api/routes"
	categorysvc "github.com/cpinopacheco/sistema-inventario-BD/internal/categories"
	productsvc "github.com/cpinopacheco/sistema-inventario-BD/internal/products"
	statssvc "github.com/cpinopacheco/sistema-inventario-BD/internal/stats"
	"github.com/cpinopacheco/sistema-inventario-BD/pkg/config"
	"github.com/cpinopacheco/sistema-inventario-BD/pkg/db"
	"github.com/cpinopacheco/sistema-inventario-BD/pkg/logger"
	"github.com/cpinopacheco/sistema-inventario-BD/pkg/metrics"
	"github.com/cpinopacheco/sistema-inventario-BD/pkg/migrate"
	"github.com/cpinopacheco/sistema-inventario-BD/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	var statsCache statssvc.Cache
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		statsCache = redisClient
	} else {
		logg.Warn(context.Background(), "redis not configured, statistics cache disabled")
	}

	statsService, err := statssvc.NewService(statssvc.NewRepository(dbClient.DB()), statsCache, cfg.Stats.CacheTTL, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create stats service", err)
		os.Exit(1)
	}

	productService, err := productsvc.NewService(productsvc.NewRepository(dbClient.DB()), dbClient, logg, statsService)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	categoryService, err := categorysvc.NewService(categorysvc.NewRepository(dbClient.DB()), dbClient, statsService)
	if err != nil {
		logg.Error(context.Background(), "failed to create category service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	deps := routes.Deps{
		Config:      cfg,
		Logger:      logg,
		DBClient:    dbClient,
		HTTPMetrics: httpMetrics,
		MetricsHTTP: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Products:    productService,
		Categories:  categoryService,
		Stats:       statsService,
	}
	if redisClient != nil {
		deps.Cache = redisClient
	}

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(deps),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
