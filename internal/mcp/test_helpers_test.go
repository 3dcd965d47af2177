package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"market-bridge/internal/domain"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type stubMarket struct {
	spot     map[string]*domain.SpotPrice
	series   *domain.HistoricalSeries
	rates    *domain.ExchangeRateSet
	assets   []domain.Asset
	stats    *domain.MarketStats
	analysis *domain.PriceAnalysis
	err      error

	lastHistorical domain.HistoricalRequest
	lastSearch     domain.AssetSearchRequest
	lastAnalysis   domain.AnalysisRequest
}

func (s *stubMarket) SpotPrice(ctx context.Context, pair domain.CurrencyPair) (*domain.SpotPrice, error) {
	if s.err != nil {
		return nil, s.err
	}
	if spot, ok := s.spot[pair.String()]; ok {
		copy := *spot
		return &copy, nil
	}
	return nil, &domain.UpstreamAPIError{StatusCode: 404, ErrorID: "not_found", Message: "Invalid currency"}
}

func (s *stubMarket) HistoricalPrices(ctx context.Context, req domain.HistoricalRequest) (*domain.HistoricalSeries, error) {
	s.lastHistorical = req
	if s.err != nil {
		return nil, s.err
	}
	copy := *s.series
	return &copy, nil
}

func (s *stubMarket) ExchangeRates(ctx context.Context, currency string) (*domain.ExchangeRateSet, error) {
	if s.err != nil {
		return nil, s.err
	}
	copy := *s.rates
	return &copy, nil
}

func (s *stubMarket) SearchAssets(ctx context.Context, req domain.AssetSearchRequest) ([]domain.Asset, error) {
	s.lastSearch = req
	if s.err != nil {
		return nil, s.err
	}
	var out []domain.Asset
	for _, a := range s.assets {
		if strings.Contains(strings.ToLower(a.Name), strings.ToLower(req.Query)) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubMarket) AssetDetails(ctx context.Context, assetID string) (*domain.Asset, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, a := range s.assets {
		if strings.EqualFold(a.ID, assetID) {
			found := a
			return &found, nil
		}
	}
	return nil, &domain.UpstreamAPIError{StatusCode: 404, ErrorID: "not_found", Message: fmt.Sprintf("asset %q not found", assetID)}
}

func (s *stubMarket) MarketStats(ctx context.Context, pair domain.CurrencyPair) (*domain.MarketStats, error) {
	if s.err != nil {
		return nil, s.err
	}
	copy := *s.stats
	return &copy, nil
}

func (s *stubMarket) ServerTime(ctx context.Context) (*domain.ServerTime, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.ServerTime{ISO: "2026-01-01T00:00:00Z", Epoch: 1767225600}, nil
}

func (s *stubMarket) AnalyzePrice(ctx context.Context, req domain.AnalysisRequest) (*domain.PriceAnalysis, error) {
	s.lastAnalysis = req
	if s.err != nil {
		return nil, s.err
	}
	copy := *s.analysis
	return &copy, nil
}

func testServer() (*sdkmcp.Server, *stubMarket) {
	support, resistance := 90.0, 110.0
	market := &stubMarket{
		spot: map[string]*domain.SpotPrice{
			"BTC-USD": {Amount: "50000.00", Base: "BTC", Currency: "USD"},
		},
		series: &domain.HistoricalSeries{Base: "BTC", Currency: "USD", Prices: []domain.HistoricalPricePoint{
			{Timestamp: "2026-01-01T00:00:00Z", Price: "100"},
			{Timestamp: "2026-01-02T00:00:00Z", Price: "110"},
		}},
		rates: &domain.ExchangeRateSet{Currency: "USD", Rates: map[string]string{"BTC": "0.00002", "EUR": "0.92"}},
		assets: []domain.Asset{
			{ID: "BTC", Name: "Bitcoin", Code: "BTC", Type: "crypto", Exponent: 8},
			{ID: "ETH", Name: "Ethereum", Code: "ETH", Type: "crypto", Exponent: 8},
		},
		stats: &domain.MarketStats{Open: "49000", High: "51000", Low: "48000", Last: "50000", Volume: "1234.5"},
		analysis: &domain.PriceAnalysis{
			CurrencyPair: "BTC-USD", Period: domain.AnalysisPeriod7D, CurrentPrice: 110,
			Trend: domain.TrendBullish, SupportLevel: &support, ResistanceLevel: &resistance,
			Mean: 105, DataPoints: 2,
		},
	}

	srv := NewServer(nil, market, ServerConfig{RequestTimeout: time.Second})
	return srv, market
}

func connectInMemory(ctx context.Context, srv *sdkmcp.Server) (*sdkmcp.ClientSession, context.CancelFunc, error) {
	clientTransport, serverTransport := sdkmcp.NewInMemoryTransports()
	runCtx, cancel := context.WithCancel(ctx)
	go func() { _ = srv.Run(runCtx, serverTransport) }()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "mcp-test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	return session, cancel, nil
}

func decodeResourceJSON(result *sdkmcp.ReadResourceResult, out any) error {
	if len(result.Contents) == 0 {
		return nil
	}
	return json.Unmarshal([]byte(result.Contents[0].Text), out)
}

func decodeStructured(result *sdkmcp.CallToolResult, out any) error {
	body, err := json.Marshal(result.StructuredContent)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

func decodeToolError(result *sdkmcp.CallToolResult) (toolErrorPayload, error) {
	var payload toolErrorPayload
	if len(result.Content) == 0 {
		return payload, fmt.Errorf("no content in tool result")
	}
	text, ok := result.Content[0].(*sdkmcp.TextContent)
	if !ok {
		return payload, fmt.Errorf("unexpected content type %T", result.Content[0])
	}
	err := json.Unmarshal([]byte(text.Text), &payload)
	return payload, err
}
