package handler

import (
	"net/http"
	"strconv"
	"strings"

	"market-bridge/internal/domain"
	"market-bridge/internal/validation"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetServerTime godoc
// @Summary      Upstream server time
// @Tags         meta
// @Produce      json
// @Success      200  {object}  domain.ServerTime
// @Failure      502  {object}  map[string]interface{}
// @Router       /api/v1/time [get]
func (h *Handler) GetServerTime(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-server-time")
	defer span.End()

	ts, err := h.marketService.ServerTime(ctx)
	if err != nil {
		respondError(c, span, err)
		return
	}
	c.JSON(http.StatusOK, ts)
}

// GetSpotPrice godoc
// @Summary      Spot price for a currency pair
// @Tags         prices
// @Produce      json
// @Param        currencyPair  path  string  true  "Currency pair (e.g., BTC-USD)"
// @Success      200  {object}  domain.SpotPrice
// @Failure      400  {object}  map[string]interface{}
// @Failure      429  {object}  map[string]interface{}
// @Failure      502  {object}  map[string]interface{}
// @Router       /api/v1/prices/{currencyPair}/spot [get]
func (h *Handler) GetSpotPrice(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-spot-price")
	defer span.End()

	pair, err := validation.SpotPrice(validation.SpotPriceInput{CurrencyPair: c.Param("currencyPair")})
	if err != nil {
		respondError(c, span, err)
		return
	}
	span.SetAttributes(attribute.String("currency_pair", pair.String()))

	spot, err := h.marketService.SpotPrice(ctx, pair)
	if err != nil {
		respondError(c, span, err)
		return
	}
	c.JSON(http.StatusOK, spot)
}

// GetHistoricalPrices godoc
// @Summary      Historical prices for a currency pair
// @Description  Returns the series in ascending timestamp order
// @Tags         prices
// @Produce      json
// @Param        currencyPair  path   string  true   "Currency pair (e.g., BTC-USD)"
// @Param        start         query  string  false  "Window start (YYYY-MM-DD or RFC3339)"
// @Param        end           query  string  false  "Window end (YYYY-MM-DD or RFC3339)"
// @Param        period        query  string  false  "hour or day"
// @Success      200  {object}  domain.HistoricalSeries
// @Failure      400  {object}  map[string]interface{}
// @Failure      502  {object}  map[string]interface{}
// @Router       /api/v1/prices/{currencyPair}/historic [get]
func (h *Handler) GetHistoricalPrices(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-historical-prices")
	defer span.End()

	req, err := validation.HistoricalPrices(validation.HistoricalPricesInput{
		CurrencyPair: c.Param("currencyPair"),
		Start:        c.Query("start"),
		End:          c.Query("end"),
		Period:       c.Query("period"),
	})
	if err != nil {
		respondError(c, span, err)
		return
	}

	series, err := h.marketService.HistoricalPrices(ctx, req)
	if err != nil {
		respondError(c, span, err)
		return
	}
	c.JSON(http.StatusOK, series)
}

// GetExchangeRates godoc
// @Summary      Exchange rates for a base currency
// @Tags         rates
// @Produce      json
// @Param        currency  query  string  true  "Base currency (e.g., USD)"
// @Success      200  {object}  domain.ExchangeRateSet
// @Failure      400  {object}  map[string]interface{}
// @Failure      502  {object}  map[string]interface{}
// @Router       /api/v1/exchange-rates [get]
func (h *Handler) GetExchangeRates(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-exchange-rates")
	defer span.End()

	currency, err := validation.ExchangeRates(validation.ExchangeRatesInput{Currency: c.Query("currency")})
	if err != nil {
		respondError(c, span, err)
		return
	}

	rates, err := h.marketService.ExchangeRates(ctx, currency)
	if err != nil {
		respondError(c, span, err)
		return
	}
	c.JSON(http.StatusOK, rates)
}

// SearchAssets godoc
// @Summary      Search assets
// @Tags         assets
// @Produce      json
// @Param        query  query  string  true   "Text matched against id, code, name and slug"
// @Param        limit  query  int     false  "Maximum results (default 25)"
// @Success      200  {array}   domain.Asset
// @Failure      400  {object}  map[string]interface{}
// @Failure      502  {object}  map[string]interface{}
// @Router       /api/v1/assets/search [get]
func (h *Handler) SearchAssets(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.search-assets")
	defer span.End()

	in := validation.SearchAssetsInput{Query: c.Query("query")}
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, span, domain.NewValidationError("limit", "must be an integer"))
			return
		}
		in.Limit = &n
	}
	req, err := validation.SearchAssets(in)
	if err != nil {
		respondError(c, span, err)
		return
	}

	assets, err := h.marketService.SearchAssets(ctx, req)
	if err != nil {
		respondError(c, span, err)
		return
	}
	c.JSON(http.StatusOK, assets)
}

// GetAssetDetails godoc
// @Summary      Asset details
// @Tags         assets
// @Produce      json
// @Param        assetId  path  string  true  "Asset id or code"
// @Success      200  {object}  domain.Asset
// @Failure      404  {object}  map[string]interface{}
// @Failure      502  {object}  map[string]interface{}
// @Router       /api/v1/assets/{assetId} [get]
func (h *Handler) GetAssetDetails(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-asset-details")
	defer span.End()

	id, err := validation.AssetDetails(validation.AssetDetailsInput{AssetID: c.Param("assetId")})
	if err != nil {
		respondError(c, span, err)
		return
	}

	asset, err := h.marketService.AssetDetails(ctx, id)
	if err != nil {
		respondError(c, span, err)
		return
	}
	c.JSON(http.StatusOK, asset)
}

// GetMarketStats godoc
// @Summary      24h market stats for a currency pair
// @Tags         stats
// @Produce      json
// @Param        currencyPair  path  string  true  "Currency pair (e.g., BTC-USD)"
// @Success      200  {object}  domain.MarketStats
// @Failure      400  {object}  map[string]interface{}
// @Failure      502  {object}  map[string]interface{}
// @Router       /api/v1/stats/{currencyPair} [get]
func (h *Handler) GetMarketStats(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-market-stats")
	defer span.End()

	pair, err := validation.MarketStats(validation.MarketStatsInput{CurrencyPair: c.Param("currencyPair")})
	if err != nil {
		respondError(c, span, err)
		return
	}

	stats, err := h.marketService.MarketStats(ctx, pair)
	if err != nil {
		respondError(c, span, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
