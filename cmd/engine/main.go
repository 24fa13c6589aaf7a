package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/freightx/pkg/config"
	"github.com/lintang-b-s/freightx/pkg/engine"
	"github.com/lintang-b-s/freightx/pkg/http"
	"github.com/lintang-b-s/freightx/pkg/http/usecases"
	"github.com/lintang-b-s/freightx/pkg/logger"
	"github.com/lintang-b-s/freightx/pkg/metrics"
	"github.com/lintang-b-s/freightx/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	useRateLimit = flag.Bool("rate_limit", false, "token bucket rate limit on the api (RATE_LIMIT_RPS, RATE_LIMIT_BURST)")
)

func main() {
	flag.Parse()
	if err := util.ReadConfig(); err != nil {
		panic(err)
	}
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	engineConfig, err := config.Load(viper.GetViper())
	if err != nil {
		logger.Fatal("load engine config", zap.Error(err))
	}
	config.ServerDefaults(viper.GetViper())

	planningEngine, err := engine.NewEngine(engineConfig.Cost, engineConfig.Consolidation, logger)
	if err != nil {
		logger.Fatal("create engine", zap.Error(err))
	}

	planningService, err := usecases.NewPlanningService(logger, planningEngine, viper.GetInt("ROUTE_CACHE_SIZE"))
	if err != nil {
		logger.Fatal("create planning service", zap.Error(err))
	}
	metrics.RegisterDefault()

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}

	api := http.NewServer(logger)
	if _, err := api.Use(ctx, logger, *useRateLimit, planningService); err != nil {
		logger.Fatal("start server", zap.Error(err))
	}

	signal := http.GracefulShutdown()

	logger.Info("freightx server stopping", zap.String("signal", signal.String()))
	cleanup()
	if err := api.Wait(); err != nil && err != context.Canceled {
		logger.Error("server stopped with error", zap.Error(err))
	}
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
