package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"market-bridge/internal/analysis"
	"market-bridge/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// MarketDataClient is the upstream read surface. Implemented by the Coinbase
// client and by the Redis caching decorator.
type MarketDataClient interface {
	GetSpotPrice(ctx context.Context, pair domain.CurrencyPair) (*domain.SpotPrice, error)
	GetHistoricPrices(ctx context.Context, req domain.HistoricalRequest) (*domain.HistoricalSeries, error)
	GetExchangeRates(ctx context.Context, currency string) (*domain.ExchangeRateSet, error)
	GetMarketStats(ctx context.Context, pair domain.CurrencyPair) (*domain.MarketStats, error)
	ListAssets(ctx context.Context) ([]domain.Asset, error)
	GetServerTime(ctx context.Context) (*domain.ServerTime, error)
}

type AnalysisEngine interface {
	Analyze(req domain.AnalysisRequest, series *domain.HistoricalSeries) (*domain.PriceAnalysis, error)
}

type ChartRenderer interface {
	RenderAnalysisChart(series *domain.HistoricalSeries, result *domain.PriceAnalysis) (*domain.ChartImage, error)
}

// MarketService is the request handler core shared by every façade. Callers
// pass already-validated requests; errors from the client propagate unchanged.
type MarketService struct {
	tracer   trace.Tracer
	client   MarketDataClient
	engine   AnalysisEngine
	renderer ChartRenderer
	now      func() time.Time
}

func NewMarketService(tracer trace.Tracer, client MarketDataClient, engine AnalysisEngine, renderer ChartRenderer) *MarketService {
	return &MarketService{
		tracer:   tracer,
		client:   client,
		engine:   engine,
		renderer: renderer,
		now:      time.Now,
	}
}

func (s *MarketService) SpotPrice(ctx context.Context, pair domain.CurrencyPair) (*domain.SpotPrice, error) {
	ctx, span := s.tracer.Start(ctx, "market-service.spot-price")
	defer span.End()
	span.SetAttributes(attribute.String("currency_pair", pair.String()))

	return s.client.GetSpotPrice(ctx, pair)
}

func (s *MarketService) HistoricalPrices(ctx context.Context, req domain.HistoricalRequest) (*domain.HistoricalSeries, error) {
	ctx, span := s.tracer.Start(ctx, "market-service.historical-prices")
	defer span.End()
	span.SetAttributes(attribute.String("currency_pair", req.Pair.String()))

	return s.client.GetHistoricPrices(ctx, req)
}

func (s *MarketService) ExchangeRates(ctx context.Context, currency string) (*domain.ExchangeRateSet, error) {
	ctx, span := s.tracer.Start(ctx, "market-service.exchange-rates")
	defer span.End()

	return s.client.GetExchangeRates(ctx, currency)
}

// SearchAssets matches query case-insensitively against id, code, name and
// slug, preserving upstream order.
func (s *MarketService) SearchAssets(ctx context.Context, req domain.AssetSearchRequest) ([]domain.Asset, error) {
	ctx, span := s.tracer.Start(ctx, "market-service.search-assets")
	defer span.End()

	assets, err := s.client.ListAssets(ctx)
	if err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = len(assets)
	}
	query := strings.ToLower(req.Query)
	out := make([]domain.Asset, 0, min(limit, len(assets)))
	for _, a := range assets {
		if len(out) >= limit {
			break
		}
		if matchesAsset(a, query) {
			out = append(out, a)
		}
	}
	span.SetAttributes(attribute.Int("results", len(out)))
	return out, nil
}

// AssetDetails looks an asset up by id or code. A miss is reported as the
// upstream's not_found.
func (s *MarketService) AssetDetails(ctx context.Context, assetID string) (*domain.Asset, error) {
	ctx, span := s.tracer.Start(ctx, "market-service.asset-details")
	defer span.End()

	assets, err := s.client.ListAssets(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range assets {
		if strings.EqualFold(a.ID, assetID) || strings.EqualFold(a.Code, assetID) {
			found := a
			return &found, nil
		}
	}
	return nil, &domain.UpstreamAPIError{
		StatusCode: http.StatusNotFound,
		ErrorID:    "not_found",
		Message:    fmt.Sprintf("asset %q not found", assetID),
	}
}

func (s *MarketService) MarketStats(ctx context.Context, pair domain.CurrencyPair) (*domain.MarketStats, error) {
	ctx, span := s.tracer.Start(ctx, "market-service.market-stats")
	defer span.End()
	span.SetAttributes(attribute.String("currency_pair", pair.String()))

	return s.client.GetMarketStats(ctx, pair)
}

func (s *MarketService) ServerTime(ctx context.Context) (*domain.ServerTime, error) {
	ctx, span := s.tracer.Start(ctx, "market-service.server-time")
	defer span.End()

	return s.client.GetServerTime(ctx)
}

func (s *MarketService) AnalyzePrice(ctx context.Context, req domain.AnalysisRequest) (*domain.PriceAnalysis, error) {
	result, _, err := s.analyze(ctx, req)
	return result, err
}

// AnalysisChart renders the analysed window with mean, support and
// resistance overlays.
func (s *MarketService) AnalysisChart(ctx context.Context, req domain.AnalysisRequest) (*domain.ChartImage, error) {
	if s.renderer == nil {
		return nil, fmt.Errorf("chart renderer unavailable")
	}
	req.Metrics = domain.NewMetricSet(append(req.Metrics, domain.MetricSupportResistance)...)
	result, series, err := s.analyze(ctx, req)
	if err != nil {
		return nil, err
	}

	_, span := s.tracer.Start(ctx, "market-service.render-chart")
	defer span.End()
	img, err := s.renderer.RenderAnalysisChart(series, result)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("render chart for %s: %w", req.Pair, err)
	}
	return img, nil
}

func (s *MarketService) analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.PriceAnalysis, *domain.HistoricalSeries, error) {
	ctx, span := s.tracer.Start(ctx, "market-service.analyze-price")
	defer span.End()
	span.SetAttributes(
		attribute.String("currency_pair", req.Pair.String()),
		attribute.String("period", string(req.Period)),
	)

	histReq, err := analysis.HistoricalRequestFor(req.Pair, req.Period, s.now())
	if err != nil {
		return nil, nil, err
	}
	series, err := s.client.GetHistoricPrices(ctx, histReq)
	if err != nil {
		return nil, nil, err
	}

	result, err := s.engine.Analyze(req, series)
	if err != nil {
		span.RecordError(err)
		return nil, nil, err
	}

	if req.Metrics.Has(domain.MetricVolume) {
		stats, err := s.client.GetMarketStats(ctx, req.Pair)
		if err != nil {
			return nil, nil, err
		}
		analysis.ApplyVolume(result, req, stats)
	}
	return result, series, nil
}

func matchesAsset(a domain.Asset, query string) bool {
	for _, field := range []string{a.ID, a.Code, a.Name, a.Slug} {
		if field != "" && strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
