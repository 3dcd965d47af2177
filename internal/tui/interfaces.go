package tui

import (
	"context"
	"time"

	"market-bridge/internal/domain"
)

const defaultRefreshInterval = 15 * time.Second

// MarketQuerier provides quotes and derived analysis for the watchlist.
type MarketQuerier interface {
	SpotPrice(ctx context.Context, pair domain.CurrencyPair) (*domain.SpotPrice, error)
	AnalyzePrice(ctx context.Context, req domain.AnalysisRequest) (*domain.PriceAnalysis, error)
}

// Services holds the dependencies the TUI needs.
type Services struct {
	Market          MarketQuerier
	Pairs           []domain.CurrencyPair
	RefreshInterval time.Duration
}

func (s Services) refreshInterval() time.Duration {
	if s.RefreshInterval <= 0 {
		return defaultRefreshInterval
	}
	return s.RefreshInterval
}
