package mcp

import (
	"context"
	"fmt"

	"market-bridge/internal/domain"
	"market-bridge/internal/validation"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var errMarketUnavailable = fmt.Errorf("market service unavailable")

func registerTools(server *mcp.Server, market MarketReader) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_spot_price",
		Description: "Get the current spot price for a currency pair such as BTC-USD",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in validation.SpotPriceInput) (*mcp.CallToolResult, domain.SpotPrice, error) {
		if market == nil {
			return nil, domain.SpotPrice{}, newToolError(errMarketUnavailable)
		}
		pair, err := validation.SpotPrice(in)
		if err != nil {
			return nil, domain.SpotPrice{}, newToolError(err)
		}
		spot, err := market.SpotPrice(ctx, pair)
		if err != nil {
			return nil, domain.SpotPrice{}, newToolError(err)
		}
		return nil, *spot, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_historical_prices",
		Description: "Get historical prices for a currency pair in ascending timestamp order, optionally within a start/end window",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in validation.HistoricalPricesInput) (*mcp.CallToolResult, domain.HistoricalSeries, error) {
		if market == nil {
			return nil, domain.HistoricalSeries{}, newToolError(errMarketUnavailable)
		}
		req, err := validation.HistoricalPrices(in)
		if err != nil {
			return nil, domain.HistoricalSeries{}, newToolError(err)
		}
		series, err := market.HistoricalPrices(ctx, req)
		if err != nil {
			return nil, domain.HistoricalSeries{}, newToolError(err)
		}
		if series.Prices == nil {
			series.Prices = []domain.HistoricalPricePoint{}
		}
		return nil, *series, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_exchange_rates",
		Description: "Get exchange rates from a base currency to every other supported currency",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in validation.ExchangeRatesInput) (*mcp.CallToolResult, domain.ExchangeRateSet, error) {
		if market == nil {
			return nil, domain.ExchangeRateSet{}, newToolError(errMarketUnavailable)
		}
		currency, err := validation.ExchangeRates(in)
		if err != nil {
			return nil, domain.ExchangeRateSet{}, newToolError(err)
		}
		rates, err := market.ExchangeRates(ctx, currency)
		if err != nil {
			return nil, domain.ExchangeRateSet{}, newToolError(err)
		}
		if rates.Rates == nil {
			rates.Rates = map[string]string{}
		}
		return nil, *rates, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_assets",
		Description: "Search crypto and fiat assets by id, code, name or slug",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in validation.SearchAssetsInput) (*mcp.CallToolResult, searchAssetsOutput, error) {
		if market == nil {
			return nil, searchAssetsOutput{}, newToolError(errMarketUnavailable)
		}
		req, err := validation.SearchAssets(in)
		if err != nil {
			return nil, searchAssetsOutput{}, newToolError(err)
		}
		assets, err := market.SearchAssets(ctx, req)
		if err != nil {
			return nil, searchAssetsOutput{}, newToolError(err)
		}
		if assets == nil {
			assets = []domain.Asset{}
		}
		return nil, searchAssetsOutput{Assets: assets}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_asset_details",
		Description: "Get details for one asset by id or ticker code",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in validation.AssetDetailsInput) (*mcp.CallToolResult, domain.Asset, error) {
		if market == nil {
			return nil, domain.Asset{}, newToolError(errMarketUnavailable)
		}
		id, err := validation.AssetDetails(in)
		if err != nil {
			return nil, domain.Asset{}, newToolError(err)
		}
		asset, err := market.AssetDetails(ctx, id)
		if err != nil {
			return nil, domain.Asset{}, newToolError(err)
		}
		return nil, *asset, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_market_stats",
		Description: "Get 24h open, high, low, last and volume for a currency pair",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in validation.MarketStatsInput) (*mcp.CallToolResult, domain.MarketStats, error) {
		if market == nil {
			return nil, domain.MarketStats{}, newToolError(errMarketUnavailable)
		}
		pair, err := validation.MarketStats(in)
		if err != nil {
			return nil, domain.MarketStats{}, newToolError(err)
		}
		stats, err := market.MarketStats(ctx, pair)
		if err != nil {
			return nil, domain.MarketStats{}, newToolError(err)
		}
		return nil, *stats, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_price_data",
		Description: "Compute volatility, trend, support/resistance and volume for a currency pair over 1d, 7d, 30d or 1y",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in validation.AnalyzePriceInput) (*mcp.CallToolResult, domain.PriceAnalysis, error) {
		if market == nil {
			return nil, domain.PriceAnalysis{}, newToolError(errMarketUnavailable)
		}
		req, err := validation.AnalyzePrice(in)
		if err != nil {
			return nil, domain.PriceAnalysis{}, newToolError(err)
		}
		result, err := market.AnalyzePrice(ctx, req)
		if err != nil {
			return nil, domain.PriceAnalysis{}, newToolError(err)
		}
		return nil, *result, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_server_time",
		Description: "Get the upstream API server time",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ serverTimeInput) (*mcp.CallToolResult, domain.ServerTime, error) {
		if market == nil {
			return nil, domain.ServerTime{}, newToolError(errMarketUnavailable)
		}
		ts, err := market.ServerTime(ctx)
		if err != nil {
			return nil, domain.ServerTime{}, newToolError(err)
		}
		return nil, *ts, nil
	})
}
