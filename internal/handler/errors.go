package handler

import (
	"errors"
	"net/http"
	"strconv"

	"market-bridge/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// respondError writes the {error, message, details?} body with the status
// mirroring the error kind.
func respondError(c *gin.Context, span trace.Span, err error) {
	status := statusFor(err)
	body := gin.H{"error": domain.KindOf(err), "message": err.Error()}

	var (
		validationErr *domain.ValidationError
		rateLimitErr  *domain.RateLimitError
		upstreamErr   *domain.UpstreamAPIError
	)
	switch {
	case errors.As(err, &validationErr):
		body["details"] = validationErr.Violations
	case errors.As(err, &rateLimitErr):
		retryAfter := rateLimitErr.RetryAfterSeconds()
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		body["retryAfter"] = retryAfter
	case errors.As(err, &upstreamErr):
		if upstreamErr.ErrorID != "" {
			body["details"] = gin.H{"statusCode": upstreamErr.StatusCode, "errorId": upstreamErr.ErrorID}
		}
	}

	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, domain.KindOf(err))
	}
	c.JSON(status, body)
}

func statusFor(err error) int {
	var (
		validationErr *domain.ValidationError
		rateLimitErr  *domain.RateLimitError
		analysisErr   *domain.AnalysisError
		upstreamErr   *domain.UpstreamAPIError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &rateLimitErr):
		return http.StatusTooManyRequests
	case errors.As(err, &analysisErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &upstreamErr):
		switch {
		case upstreamErr.IsTimeout():
			return http.StatusGatewayTimeout
		case upstreamErr.StatusCode == http.StatusNotFound:
			return http.StatusNotFound
		default:
			return http.StatusBadGateway
		}
	default:
		return http.StatusInternalServerError
	}
}
