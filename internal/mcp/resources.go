package mcp

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"market-bridge/internal/domain"
	"market-bridge/internal/validation"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerResources(server *mcp.Server, market MarketReader) {
	server.AddResource(&mcp.Resource{
		URI:         "market://analysis-periods",
		Name:        "analysis-periods",
		Description: "Windows accepted by analyze_price_data",
		MIMEType:    "application/json",
	}, func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return jsonResource(req.Params.URI, listOutput[domain.AnalysisPeriod]{Items: domain.SupportedAnalysisPeriods})
	})

	server.AddResource(&mcp.Resource{
		URI:         "market://analysis-metrics",
		Name:        "analysis-metrics",
		Description: "Metrics accepted by analyze_price_data",
		MIMEType:    "application/json",
	}, func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return jsonResource(req.Params.URI, listOutput[domain.Metric]{Items: domain.SupportedMetrics})
	})

	server.AddResource(&mcp.Resource{
		URI:         "market://historic-periods",
		Name:        "historic-periods",
		Description: "Sampling periods accepted by get_historical_prices",
		MIMEType:    "application/json",
	}, func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return jsonResource(req.Params.URI, listOutput[domain.HistoricPeriod]{Items: domain.RequestableHistoricPeriods})
	})

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "prices://spot/{pair}",
		Name:        "spot-price-by-pair",
		Description: "Current spot price for a currency pair, e.g. prices://spot/BTC-USD",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if market == nil {
			return nil, errMarketUnavailable
		}

		parsed, err := url.Parse(req.Params.URI)
		if err != nil {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		if parsed.Scheme != "prices" || parsed.Host != "spot" {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}

		pair, err := validation.SpotPrice(validation.SpotPriceInput{
			CurrencyPair: strings.Trim(strings.TrimSpace(parsed.Path), "/"),
		})
		if err != nil {
			return nil, err
		}
		spot, err := market.SpotPrice(ctx, pair)
		if err != nil {
			return nil, err
		}
		return jsonResource(req.Params.URI, spot)
	})
}

func jsonResource(uri string, payload any) (*mcp.ReadResourceResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(body),
		}},
	}, nil
}
