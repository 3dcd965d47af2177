package cache

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"market-bridge/internal/domain"
	"market-bridge/internal/service"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	defaultTTL       = time.Minute
	defaultNamespace = "market"
	unboundedParam   = "-"
)

// CachingMarketClient decorates a MarketDataClient with a Redis read-through
// cache keyed by operation and normalized parameters. Errors are never cached
// and a nil Redis client disables caching entirely.
type CachingMarketClient struct {
	inner     service.MarketDataClient
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ service.MarketDataClient = (*CachingMarketClient)(nil)

func NewCachingMarketClient(rdb *redis.Client, ttl time.Duration, inner service.MarketDataClient, namespace string) *CachingMarketClient {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if namespace == "" {
		namespace = defaultNamespace
	}
	return &CachingMarketClient{inner: inner, rdb: rdb, ttl: ttl, namespace: namespace}
}

func (c *CachingMarketClient) GetSpotPrice(ctx context.Context, pair domain.CurrencyPair) (*domain.SpotPrice, error) {
	return readThrough(ctx, c, c.key("spot", pair.String()), func(ctx context.Context) (*domain.SpotPrice, error) {
		return c.inner.GetSpotPrice(ctx, pair)
	})
}

func (c *CachingMarketClient) GetHistoricPrices(ctx context.Context, req domain.HistoricalRequest) (*domain.HistoricalSeries, error) {
	key := c.key("historic", req.Pair.String(), string(req.Period), formatBound(req.Start), formatBound(req.End))
	return readThrough(ctx, c, key, func(ctx context.Context) (*domain.HistoricalSeries, error) {
		return c.inner.GetHistoricPrices(ctx, req)
	})
}

func (c *CachingMarketClient) GetExchangeRates(ctx context.Context, currency string) (*domain.ExchangeRateSet, error) {
	return readThrough(ctx, c, c.key("rates", currency), func(ctx context.Context) (*domain.ExchangeRateSet, error) {
		return c.inner.GetExchangeRates(ctx, currency)
	})
}

func (c *CachingMarketClient) GetMarketStats(ctx context.Context, pair domain.CurrencyPair) (*domain.MarketStats, error) {
	return readThrough(ctx, c, c.key("stats", pair.String()), func(ctx context.Context) (*domain.MarketStats, error) {
		return c.inner.GetMarketStats(ctx, pair)
	})
}

func (c *CachingMarketClient) ListAssets(ctx context.Context) ([]domain.Asset, error) {
	return readThrough(ctx, c, c.key("assets"), c.inner.ListAssets)
}

// GetServerTime always goes upstream.
func (c *CachingMarketClient) GetServerTime(ctx context.Context) (*domain.ServerTime, error) {
	return c.inner.GetServerTime(ctx)
}

func readThrough[T any](ctx context.Context, c *CachingMarketClient, key string, fetch func(context.Context) (T, error)) (T, error) {
	if c.rdb == nil {
		return fetch(ctx)
	}

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out T
		if err := msgpack.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// corrupted entry
		_ = c.rdb.Del(ctx, key).Err()
	} else if err != nil && !errors.Is(err, redis.Nil) {
		// redis unavailable: serve uncached
		return fetch(ctx)
	}

	out, err := fetch(ctx)
	if err != nil {
		return out, err
	}
	if b, err := msgpack.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

func (c *CachingMarketClient) key(op string, params ...string) string {
	parts := make([]string, 0, len(params)+2)
	parts = append(parts, c.namespace, op)
	for _, p := range params {
		parts = append(parts, safe(p))
	}
	return strings.Join(parts, ":")
}

func formatBound(t *time.Time) string {
	if t == nil {
		return unboundedParam
	}
	return strconv.FormatInt(t.UTC().Unix(), 10)
}

func safe(s string) string {
	if s == "" {
		return unboundedParam
	}
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
