package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"market-bridge/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

type countingClient struct {
	spotCalls   int
	assetCalls  int
	histCalls   int
	timeCalls   int
	err         error
	spot        *domain.SpotPrice
	assets      []domain.Asset
	series      *domain.HistoricalSeries
	lastHistReq domain.HistoricalRequest
}

func (c *countingClient) GetSpotPrice(ctx context.Context, pair domain.CurrencyPair) (*domain.SpotPrice, error) {
	c.spotCalls++
	if c.err != nil {
		return nil, c.err
	}
	return c.spot, nil
}

func (c *countingClient) GetHistoricPrices(ctx context.Context, req domain.HistoricalRequest) (*domain.HistoricalSeries, error) {
	c.histCalls++
	c.lastHistReq = req
	return c.series, c.err
}

func (c *countingClient) GetExchangeRates(ctx context.Context, currency string) (*domain.ExchangeRateSet, error) {
	return &domain.ExchangeRateSet{Currency: currency, Rates: map[string]string{"EUR": "0.9"}}, c.err
}

func (c *countingClient) GetMarketStats(ctx context.Context, pair domain.CurrencyPair) (*domain.MarketStats, error) {
	return &domain.MarketStats{Volume: "1"}, c.err
}

func (c *countingClient) ListAssets(ctx context.Context) ([]domain.Asset, error) {
	c.assetCalls++
	return c.assets, c.err
}

func (c *countingClient) GetServerTime(ctx context.Context) (*domain.ServerTime, error) {
	c.timeCalls++
	return &domain.ServerTime{Epoch: 1}, c.err
}

func newMiniredisClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

var ethUSD = domain.CurrencyPair{Base: "ETH", Quote: "USD"}

func TestCachingMarketClientServesSecondReadFromCache(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	inner := &countingClient{spot: &domain.SpotPrice{Amount: "3000.01", Base: "ETH", Currency: "USD"}}
	c := NewCachingMarketClient(rdb, time.Minute, inner, "")

	first, err := c.GetSpotPrice(context.Background(), ethUSD)
	require.NoError(t, err)
	second, err := c.GetSpotPrice(context.Background(), ethUSD)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.spotCalls)
	assert.Equal(t, first, second)
	assert.True(t, mr.Exists("market:spot:ETH-USD"))
	assert.Equal(t, time.Minute, mr.TTL("market:spot:ETH-USD"))

	mr.FastForward(2 * time.Minute)
	_, err = c.GetSpotPrice(context.Background(), ethUSD)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.spotCalls)
}

func TestCachingMarketClientDoesNotCacheErrors(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	inner := &countingClient{err: &domain.UpstreamAPIError{StatusCode: 503}}
	c := NewCachingMarketClient(rdb, time.Minute, inner, "")

	_, err := c.GetSpotPrice(context.Background(), ethUSD)
	var upErr *domain.UpstreamAPIError
	require.ErrorAs(t, err, &upErr)
	assert.False(t, mr.Exists("market:spot:ETH-USD"))

	_, _ = c.GetSpotPrice(context.Background(), ethUSD)
	assert.Equal(t, 2, inner.spotCalls)
}

func TestCachingMarketClientReplacesCorruptedEntries(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	require.NoError(t, mr.Set("market:assets", "\xc1not-msgpack"))
	inner := &countingClient{assets: []domain.Asset{{ID: "btc", Code: "BTC", Name: "Bitcoin", Type: domain.AssetTypeCrypto}}}
	c := NewCachingMarketClient(rdb, time.Minute, inner, "")

	got, err := c.ListAssets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, inner.assets, got)
	assert.Equal(t, 1, inner.assetCalls)

	got, err = c.ListAssets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, inner.assets, got)
	assert.Equal(t, 1, inner.assetCalls)
}

func TestCachingMarketClientKeysHistoricByWindow(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	inner := &countingClient{series: &domain.HistoricalSeries{Base: "ETH", Currency: "USD", Prices: []domain.HistoricalPricePoint{{Timestamp: "2024-01-01T00:00:00Z", Price: "1"}}}}
	c := NewCachingMarketClient(rdb, time.Minute, inner, "bridge")

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	req := domain.HistoricalRequest{Pair: ethUSD, Period: domain.HistoricPeriodDay, Start: &start}
	_, err := c.GetHistoricPrices(context.Background(), req)
	require.NoError(t, err)
	_, err = c.GetHistoricPrices(context.Background(), domain.HistoricalRequest{Pair: ethUSD, Period: domain.HistoricPeriodHour})
	require.NoError(t, err)

	assert.Equal(t, 2, inner.histCalls)
	assert.True(t, mr.Exists("bridge:historic:ETH-USD:day:1704067200:-"))
	assert.True(t, mr.Exists("bridge:historic:ETH-USD:hour:-:-"))
}

func TestCachingMarketClientKeysHistoricBoundsToTheSecond(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	inner := &countingClient{series: &domain.HistoricalSeries{Base: "BTC", Currency: "USD"}}
	c := NewCachingMarketClient(rdb, time.Minute, inner, "market")

	early := time.Date(2024, 1, 1, 0, 0, 5, 0, time.UTC)
	late := time.Date(2024, 1, 1, 0, 0, 55, 0, time.UTC)
	for _, start := range []time.Time{early, late, early} {
		_, err := c.GetHistoricPrices(context.Background(), domain.HistoricalRequest{
			Pair:   domain.CurrencyPair{Base: "BTC", Quote: "USD"},
			Period: domain.HistoricPeriodHour,
			Start:  &start,
		})
		require.NoError(t, err)
	}

	assert.Equal(t, 2, inner.histCalls)
	assert.True(t, mr.Exists("market:historic:BTC-USD:hour:1704067205:-"))
	assert.True(t, mr.Exists("market:historic:BTC-USD:hour:1704067255:-"))
}

func TestCachingMarketClientNeverCachesServerTime(t *testing.T) {
	_, rdb := newMiniredisClient(t)
	inner := &countingClient{}
	c := NewCachingMarketClient(rdb, time.Minute, inner, "")

	for i := 0; i < 3; i++ {
		_, err := c.GetServerTime(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 3, inner.timeCalls)
}

func TestCachingMarketClientNilRedisBypasses(t *testing.T) {
	inner := &countingClient{spot: &domain.SpotPrice{Amount: "1"}}
	c := NewCachingMarketClient(nil, 0, inner, "")

	assert.Equal(t, defaultTTL, c.ttl)
	assert.Equal(t, defaultNamespace, c.namespace)

	for i := 0; i < 2; i++ {
		_, err := c.GetSpotPrice(context.Background(), ethUSD)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, inner.spotCalls)
}

func TestCachingMarketClientWritesMsgpackWithTTL(t *testing.T) {
	db, mock := redismock.NewClientMock()
	spot := &domain.SpotPrice{Amount: "64000.5", Base: "BTC", Currency: "USD"}
	encoded, err := msgpack.Marshal(spot)
	require.NoError(t, err)

	mock.ExpectGet("market:spot:BTC-USD").RedisNil()
	mock.ExpectSet("market:spot:BTC-USD", encoded, 30*time.Second).SetVal("OK")

	c := NewCachingMarketClient(db, 30*time.Second, &countingClient{spot: spot}, "")
	got, err := c.GetSpotPrice(context.Background(), domain.CurrencyPair{Base: "BTC", Quote: "USD"})
	require.NoError(t, err)
	assert.Equal(t, spot, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingMarketClientFallsBackWhenRedisFails(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectGet("market:spot:BTC-USD").SetErr(errors.New("connection refused"))

	inner := &countingClient{spot: &domain.SpotPrice{Amount: "1"}}
	c := NewCachingMarketClient(db, time.Minute, inner, "")
	got, err := c.GetSpotPrice(context.Background(), domain.CurrencyPair{Base: "BTC", Quote: "USD"})
	require.NoError(t, err)
	assert.Equal(t, "1", got.Amount)
	assert.Equal(t, 1, inner.spotCalls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisOptions(t *testing.T) {
	opts, err := redisOptions("")
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", opts.Addr)

	opts, err = redisOptions("redis://:secret@cache.internal:6380/2")
	require.NoError(t, err)
	assert.Equal(t, "cache.internal:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)
}

func TestInitRedisWithMiniredis(t *testing.T) {
	mr := miniredis.RunT(t)
	orig := Client
	defer func() { Client = orig }()

	require.NoError(t, InitRedis(context.Background(), mr.Addr()))
	require.NotNil(t, Client)
	assert.NoError(t, Client.Ping(context.Background()).Err())
}
