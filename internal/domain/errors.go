package domain

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net"
	"strings"
	"time"
)

// Error kinds reported to callers on both façades.
const (
	KindValidation = "validation_error"
	KindUpstream   = "upstream_api_error"
	KindRateLimit  = "rate_limit_error"
	KindAnalysis   = "analysis_error"
	KindInternal   = "internal_error"
)

// StatusNetworkFailure marks an UpstreamAPIError that never got an HTTP response.
const StatusNetworkFailure = 0

type Violation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type ValidationError struct {
	Violations []Violation
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Violations: []Violation{{Field: field, Reason: reason}}}
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type UpstreamAPIError struct {
	StatusCode int
	ErrorID    string
	Message    string
	Err        error
}

func (e *UpstreamAPIError) Error() string {
	if e.StatusCode == StatusNetworkFailure {
		return fmt.Sprintf("upstream unreachable: %s", e.Message)
	}
	if e.ErrorID != "" {
		return fmt.Sprintf("upstream returned %d (%s): %s", e.StatusCode, e.ErrorID, e.Message)
	}
	return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Message)
}

func (e *UpstreamAPIError) Unwrap() error { return e.Err }

func (e *UpstreamAPIError) IsNetworkFailure() bool {
	return e.StatusCode == StatusNetworkFailure
}

func (e *UpstreamAPIError) IsTimeout() bool {
	if !e.IsNetworkFailure() || e.Err == nil {
		return false
	}
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited, retry after %ds", e.RetryAfterSeconds())
}

// RetryAfterSeconds rounds up so callers never retry early.
func (e *RateLimitError) RetryAfterSeconds() int {
	if e.RetryAfter <= 0 {
		return 0
	}
	return int(math.Ceil(e.RetryAfter.Seconds()))
}

type AnalysisError struct {
	Reason string
}

func (e *AnalysisError) Error() string {
	return "analysis failed: " + e.Reason
}

// KindOf maps err onto one of the Kind constants.
func KindOf(err error) string {
	var (
		validationErr *ValidationError
		rateLimitErr  *RateLimitError
		analysisErr   *AnalysisError
		upstreamErr   *UpstreamAPIError
	)
	switch {
	case errors.As(err, &validationErr):
		return KindValidation
	case errors.As(err, &rateLimitErr):
		return KindRateLimit
	case errors.As(err, &analysisErr):
		return KindAnalysis
	case errors.As(err, &upstreamErr):
		return KindUpstream
	default:
		return KindInternal
	}
}
