// Package bootstrap assembles the market service from configuration for the
// command entry points.
package bootstrap

import (
	"context"
	"log"
	"time"

	"market-bridge/internal/analysis"
	"market-bridge/internal/cache"
	"market-bridge/internal/chart"
	"market-bridge/internal/config"
	"market-bridge/internal/provider/coinbase"
	"market-bridge/internal/service"

	"go.opentelemetry.io/otel/trace"
)

var initRedisFunc = cache.InitRedis

// NewMarketService connects Redis when caching is enabled, then builds the
// upstream client, analysis engine and chart renderer. A Redis failure is
// logged and the service runs uncached.
func NewMarketService(ctx context.Context, cfg *config.Config, tracer trace.Tracer) *service.MarketService {
	if cfg.CacheEnabled && cache.Client == nil {
		if err := initRedisFunc(ctx, cfg.RedisURL); err != nil {
			log.Printf("Warning: cache disabled, redis unavailable: %v", err)
		}
	}
	client := NewMarketClient(cfg, tracer)
	engine := analysis.NewEngine(cfg.AnalysisTrendThreshold)
	return service.NewMarketService(tracer, client, engine, chart.NewRenderer())
}

// NewMarketClient builds the Coinbase client, wrapped in the Redis read-through
// cache when a Redis connection is available.
func NewMarketClient(cfg *config.Config, tracer trace.Tracer) service.MarketDataClient {
	client := coinbase.NewClient(
		coinbase.WithBaseURL(cfg.CoinbaseAPIURL),
		coinbase.WithExchangeURL(cfg.CoinbaseExchangeURL),
		coinbase.WithHTTPClient(coinbase.NewHTTPClient(time.Duration(cfg.UpstreamTimeoutSecs)*time.Second)),
		coinbase.WithBudget(coinbase.NewBudget(cfg.RateLimitPerMinute, cfg.RateLimitPerHour)),
		coinbase.WithUserAgent(cfg.ServiceName+"/"+cfg.ServiceVersion),
		coinbase.WithTracer(tracer),
	)
	if !cfg.CacheEnabled || cache.Client == nil {
		return client
	}
	return cache.NewCachingMarketClient(cache.Client, time.Duration(cfg.CacheTTLSeconds)*time.Second, client, cfg.ServiceName)
}
