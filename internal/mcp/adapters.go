package mcp

import (
	"context"

	"market-bridge/internal/domain"
)

// MarketReader is the read surface the tools and resources call into.
// Implemented by service.MarketService.
type MarketReader interface {
	SpotPrice(ctx context.Context, pair domain.CurrencyPair) (*domain.SpotPrice, error)
	HistoricalPrices(ctx context.Context, req domain.HistoricalRequest) (*domain.HistoricalSeries, error)
	ExchangeRates(ctx context.Context, currency string) (*domain.ExchangeRateSet, error)
	SearchAssets(ctx context.Context, req domain.AssetSearchRequest) ([]domain.Asset, error)
	AssetDetails(ctx context.Context, assetID string) (*domain.Asset, error)
	MarketStats(ctx context.Context, pair domain.CurrencyPair) (*domain.MarketStats, error)
	ServerTime(ctx context.Context) (*domain.ServerTime, error)
	AnalyzePrice(ctx context.Context, req domain.AnalysisRequest) (*domain.PriceAnalysis, error)
}
