package main

import (
	"context"
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/xlab/closer"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/adsemenov/calendar-planner-backend/internal/api"
	items_service "github.com/adsemenov/calendar-planner-backend/internal/business/items"
	"github.com/adsemenov/calendar-planner-backend/internal/config"
	"github.com/adsemenov/calendar-planner-backend/internal/database"
	"github.com/adsemenov/calendar-planner-backend/internal/database/items"
	"github.com/adsemenov/calendar-planner-backend/internal/metrics"
	"github.com/adsemenov/calendar-planner-backend/internal/planner"
	"github.com/adsemenov/calendar-planner-backend/internal/redis"
)

func main() {
	ctx := context.Background()

	logger, err := initLogger()
	if err != nil {
		log.Fatalf("unable to initialize logger: %v", err)
	}

	if err := database.RunMigrations(config.PostgresURL()); err != nil {
		logger.Fatalw("unable to run migrations", "err", err)
	}

	db, err := database.NewPGX(ctx)
	if err != nil {
		logger.Fatalw("unable to initialize db", "err", err)
	}

	redisPool := redis.NewRedisPool(logger)
	itemsCache := redis.NewItemsCacheRepository(redisPool, logger)

	itemsRepository := items.NewRepository()
	itemsService := items_service.NewService(db, logger, itemsRepository, itemsCache)

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	controller := planner.NewController(logger, itemsService, collector, 0, true)
	if err := controller.Refresh(ctx); err != nil {
		logger.Errorw("initial fetch failed, starting with empty collection", "err", err)
	}

	api, err := api.NewApi(logger, controller, metrics.Handler(registry))
	if err != nil {
		logger.Fatalw("unable to initialize api", "err", err)
	}

	errLogger, err := zap.NewStdLogAt(logger.Desugar(), zap.ErrorLevel)
	if err != nil {
		logger.Fatalw("error initiating server logger", "err", err)
	}

	server := &http.Server{
		Addr:     ":" + config.Port(),
		Handler:  api,
		ErrorLog: errLogger,
	}

	logger.Infow("Started server", "port", config.Port())
	logger.Fatalw("server error", "err", server.ListenAndServe())
}

func initLogger() (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error

	if config.Production() {
		logger, err = zap.NewProduction()
	} else {
		conf := zap.NewDevelopmentConfig()
		conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		logger, err = conf.Build()
	}

	if err != nil {
		return nil, err
	}

	closer.Bind(func() {
		_ = logger.Sync()
	})

	return logger.Sugar(), nil
}
