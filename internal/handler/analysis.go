package handler

import (
	"net/http"
	"strings"

	"market-bridge/internal/domain"
	"market-bridge/internal/validation"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// AnalyzePrice godoc
// @Summary      Price analysis for a currency pair
// @Description  Volatility, trend and optional support/resistance and volume over a window
// @Tags         analysis
// @Produce      json
// @Param        currencyPair  path   string  true  "Currency pair (e.g., BTC-USD)"
// @Param        period        query  string  true  "1d, 7d, 30d or 1y"
// @Param        metrics       query  string  true  "Comma-separated: volatility,trend,support_resistance,volume"
// @Success      200  {object}  domain.PriceAnalysis
// @Failure      400  {object}  map[string]interface{}
// @Failure      422  {object}  map[string]interface{}
// @Failure      429  {object}  map[string]interface{}
// @Failure      502  {object}  map[string]interface{}
// @Router       /api/v1/analysis/{currencyPair} [get]
func (h *Handler) AnalyzePrice(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.analyze-price")
	defer span.End()

	req, err := validation.AnalyzePrice(validation.AnalyzePriceInput{
		CurrencyPair: c.Param("currencyPair"),
		Period:       c.Query("period"),
		Metrics:      queryList(c, "metrics"),
	})
	if err != nil {
		respondError(c, span, err)
		return
	}
	span.SetAttributes(attribute.String("currency_pair", req.Pair.String()), attribute.String("period", string(req.Period)))

	result, err := h.marketService.AnalyzePrice(ctx, req)
	if err != nil {
		respondError(c, span, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetAnalysisChart godoc
// @Summary      PNG chart of the analysed window
// @Tags         analysis
// @Produce      png
// @Param        currencyPair  path   string  true   "Currency pair (e.g., BTC-USD)"
// @Param        period        query  string  false  "1d, 7d, 30d or 1y"  default(7d)
// @Success      200
// @Failure      400  {object}  map[string]interface{}
// @Failure      422  {object}  map[string]interface{}
// @Router       /api/v1/analysis/{currencyPair}/chart [get]
func (h *Handler) GetAnalysisChart(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-analysis-chart")
	defer span.End()

	period := c.DefaultQuery("period", string(domain.AnalysisPeriod7D))
	req, err := validation.AnalyzePrice(validation.AnalyzePriceInput{
		CurrencyPair: c.Param("currencyPair"),
		Period:       period,
		Metrics:      []string{string(domain.MetricSupportResistance)},
	})
	if err != nil {
		respondError(c, span, err)
		return
	}

	img, err := h.marketService.AnalysisChart(ctx, req)
	if err != nil {
		respondError(c, span, err)
		return
	}
	c.Data(http.StatusOK, img.MimeType, img.Bytes)
}

// queryList accepts both ?k=a,b and ?k=a&k=b. Returns nil when the key is absent.
func queryList(c *gin.Context, key string) []string {
	raw, ok := c.GetQueryArray(key)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
