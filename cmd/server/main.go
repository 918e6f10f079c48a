package main

import (
	"context"
	"flag"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sblrm/cultural-trip-planner/pkg/datastructure"
	"github.com/sblrm/cultural-trip-planner/pkg/engine"
	"github.com/sblrm/cultural-trip-planner/pkg/http"
	"github.com/sblrm/cultural-trip-planner/pkg/http/usecases"
	"github.com/sblrm/cultural-trip-planner/pkg/logger"
	"github.com/sblrm/cultural-trip-planner/pkg/prediction"
	"github.com/sblrm/cultural-trip-planner/pkg/pricing"
	"github.com/sblrm/cultural-trip-planner/pkg/routedata"
	"github.com/sblrm/cultural-trip-planner/pkg/spatialindex"
	"github.com/sblrm/cultural-trip-planner/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	catalogPath  = flag.String("catalog", "./data/destinations.json", "destination catalog json file")
	useRateLimit = flag.Bool("rate_limit", false, "rate limit the public API")
)

func main() {
	flag.Parse()
	_ = godotenv.Load()

	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	if err := util.ReadConfig(); err != nil {
		logger.Warn("no config file found, using defaults and environment", zap.Error(err))
	}

	viper.SetDefault("FUEL_PRICE_PER_LITER", 12500.0)
	viper.SetDefault("ROUTE_CACHE_TTL", "1h")

	catalog, err := datastructure.LoadDestinations(*catalogPath)
	if err != nil {
		panic(err)
	}

	rtree := spatialindex.NewRtree()
	rtree.Build(catalog, logger)

	cache := newCache(logger)

	var provider routedata.Provider
	if apiKey := viper.GetString("ORS_API_KEY"); apiKey != "" {
		ors, err := routedata.NewORSProvider(apiKey, cache, logger)
		if err != nil {
			panic(err)
		}
		provider = ors
	} else {
		logger.Warn("ORS_API_KEY not set, planning on haversine estimates only")
	}

	pricingEngine := pricing.NewEngine(
		pricing.StaticFuelPrice(viper.GetFloat64("FUEL_PRICE_PER_LITER")))
	predictor := prediction.NewHybridPredictor(pricingEngine, nil, logger)

	planner := engine.NewTripPlanner(logger, provider, predictor)

	tripService := usecases.NewTripService(logger, planner, rtree, catalog)

	api := http.NewServer(logger)

	ctx, cleanup := newContext()

	if _, err := api.Use(ctx, logger, *useRateLimit, tripService); err != nil {
		panic(err)
	}

	signal := http.GracefulShutdown()

	logger.Info("Trip Planner Server Stopped", zap.String("signal", signal.String()))
	cleanup()
}

func newCache(log *zap.Logger) routedata.Cache {
	ttl := viper.GetDuration("ROUTE_CACHE_TTL")

	if addr := viper.GetString("REDIS_ADDR"); addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: viper.GetString("REDIS_PASSWORD"),
		})
		log.Info("using redis route cache", zap.String("addr", addr))
		return routedata.NewRedisCache(client, ttl, log)
	}

	cache := routedata.NewMemoryCache(ttl)
	cache.StartSweeper(context.Background(), ttl)
	return cache
}

func newContext() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	return ctx, func() { cancel() }
}
