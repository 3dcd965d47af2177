package handler

import (
	"net/http"
	"time"

	"market-bridge/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type Handler struct {
	tracer         trace.Tracer
	marketService  *service.MarketService
	serviceName    string
	serviceVersion string
	now            func() time.Time
}

func New(tracer trace.Tracer, marketService *service.MarketService, serviceName, serviceVersion string) *Handler {
	return &Handler{
		tracer:         tracer,
		marketService:  marketService,
		serviceName:    serviceName,
		serviceVersion: serviceVersion,
		now:            time.Now,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)

	api := r.Group("/api/v1")
	api.GET("/time", h.GetServerTime)
	api.GET("/prices/:currencyPair/spot", h.GetSpotPrice)
	api.GET("/prices/:currencyPair/historic", h.GetHistoricalPrices)
	api.GET("/exchange-rates", h.GetExchangeRates)
	api.GET("/assets/search", h.SearchAssets)
	api.GET("/assets/:assetId", h.GetAssetDetails)
	api.GET("/stats/:currencyPair", h.GetMarketStats)
	api.GET("/analysis/:currencyPair", h.AnalyzePrice)
	api.GET("/analysis/:currencyPair/chart", h.GetAnalysisChart)
}

// Health godoc
// @Summary      Health check
// @Description  Reports liveness of the HTTP façade
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": h.now().UTC().Format(time.RFC3339),
		"service":   h.serviceName,
		"version":   h.serviceVersion,
	})
}
