package coinbase

import (
	"context"
	"net/url"
	"time"

	"market-bridge/internal/domain"

	"github.com/shopspring/decimal"
)

func (c *Client) GetSpotPrice(ctx context.Context, pair domain.CurrencyPair) (*domain.SpotPrice, error) {
	var resp spotResponse
	path := "/prices/" + url.PathEscape(pair.String()) + "/spot"
	if err := c.getJSON(ctx, "coinbase.get-spot-price", c.baseURL, path, nil, &resp); err != nil {
		return nil, err
	}
	return &domain.SpotPrice{
		Amount:   resp.Data.Amount,
		Base:     firstNonEmpty(resp.Data.Base, pair.Base),
		Currency: firstNonEmpty(resp.Data.Currency, pair.Quote),
	}, nil
}

// GetHistoricPrices returns the series in ascending timestamp order. The
// upstream answers newest first, so a descending response is reversed.
func (c *Client) GetHistoricPrices(ctx context.Context, req domain.HistoricalRequest) (*domain.HistoricalSeries, error) {
	query := url.Values{}
	if req.Period != "" {
		query.Set("period", string(req.Period))
	}
	if req.Start != nil {
		query.Set("start", req.Start.UTC().Format(time.RFC3339))
	}
	if req.End != nil {
		query.Set("end", req.End.UTC().Format(time.RFC3339))
	}

	var resp historicResponse
	path := "/prices/" + url.PathEscape(req.Pair.String()) + "/historic"
	if err := c.getJSON(ctx, "coinbase.get-historic-prices", c.baseURL, path, query, &resp); err != nil {
		return nil, err
	}

	points := make([]domain.HistoricalPricePoint, 0, len(resp.Data.Prices))
	for _, p := range resp.Data.Prices {
		points = append(points, domain.HistoricalPricePoint{Timestamp: p.Time, Price: p.Price})
	}
	if isDescending(points) {
		for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
			points[i], points[j] = points[j], points[i]
		}
	}

	return &domain.HistoricalSeries{
		Base:     firstNonEmpty(resp.Data.Base, req.Pair.Base),
		Currency: firstNonEmpty(resp.Data.Currency, req.Pair.Quote),
		Period:   req.Period,
		Prices:   points,
	}, nil
}

func (c *Client) GetExchangeRates(ctx context.Context, currency string) (*domain.ExchangeRateSet, error) {
	var resp exchangeRatesResponse
	query := url.Values{"currency": []string{currency}}
	if err := c.getJSON(ctx, "coinbase.get-exchange-rates", c.baseURL, "/exchange-rates", query, &resp); err != nil {
		return nil, err
	}
	rates := resp.Data.Rates
	if rates == nil {
		rates = map[string]string{}
	}
	return &domain.ExchangeRateSet{
		Currency: firstNonEmpty(resp.Data.Currency, currency),
		Rates:    rates,
	}, nil
}

func (c *Client) GetMarketStats(ctx context.Context, pair domain.CurrencyPair) (*domain.MarketStats, error) {
	var resp statsResponse
	path := "/products/" + url.PathEscape(pair.String()) + "/stats"
	if err := c.getJSON(ctx, "coinbase.get-market-stats", c.exchangeURL, path, nil, &resp); err != nil {
		return nil, err
	}
	return &domain.MarketStats{
		Open:        resp.Open,
		High:        resp.High,
		Low:         resp.Low,
		Last:        resp.Last,
		Volume:      resp.Volume,
		Volume30Day: resp.Volume30Day,
	}, nil
}

// ListAssets returns crypto assets followed by fiat currencies, each in upstream order.
func (c *Client) ListAssets(ctx context.Context) ([]domain.Asset, error) {
	var crypto cryptoCurrenciesResponse
	if err := c.getJSON(ctx, "coinbase.list-crypto-currencies", c.baseURL, "/currencies/crypto", nil, &crypto); err != nil {
		return nil, err
	}
	var fiat fiatCurrenciesResponse
	if err := c.getJSON(ctx, "coinbase.list-fiat-currencies", c.baseURL, "/currencies", nil, &fiat); err != nil {
		return nil, err
	}

	assets := make([]domain.Asset, 0, len(crypto.Data)+len(fiat.Data))
	for _, a := range crypto.Data {
		assets = append(assets, domain.Asset{
			ID:        firstNonEmpty(a.AssetID, a.Code),
			Name:      a.Name,
			Code:      a.Code,
			Color:     a.Color,
			Type:      domain.AssetTypeCrypto,
			SortIndex: a.SortIndex,
			Exponent:  a.Exponent,
			Slug:      a.Slug,
		})
	}
	for i, f := range fiat.Data {
		assets = append(assets, domain.Asset{
			ID:        f.ID,
			Name:      f.Name,
			Code:      f.ID,
			Type:      domain.AssetTypeFiat,
			SortIndex: i,
			Exponent:  exponentFromMinSize(f.MinSize),
		})
	}
	return assets, nil
}

func (c *Client) GetServerTime(ctx context.Context) (*domain.ServerTime, error) {
	var resp timeResponse
	if err := c.getJSON(ctx, "coinbase.get-server-time", c.baseURL, "/time", nil, &resp); err != nil {
		return nil, err
	}
	return &domain.ServerTime{ISO: resp.Data.ISO, Epoch: resp.Data.Epoch}, nil
}

// exponentFromMinSize derives display precision, e.g. "0.01" -> 2.
func exponentFromMinSize(minSize string) int {
	d, err := decimal.NewFromString(minSize)
	if err != nil {
		return 0
	}
	if exp := d.Exponent(); exp < 0 {
		return int(-exp)
	}
	return 0
}

func isDescending(points []domain.HistoricalPricePoint) bool {
	if len(points) < 2 {
		return false
	}
	first, err := time.Parse(time.RFC3339, points[0].Timestamp)
	if err != nil {
		return false
	}
	last, err := time.Parse(time.RFC3339, points[len(points)-1].Timestamp)
	if err != nil {
		return false
	}
	return first.After(last)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
