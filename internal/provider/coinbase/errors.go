package coinbase

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"market-bridge/internal/domain"
)

// DefaultRetryAfter applies when a throttling response carries no usable Retry-After.
const DefaultRetryAfter = 60 * time.Second

type errorBody struct {
	Errors []struct {
		ID      string `json:"id"`
		Message string `json:"message"`
	} `json:"errors"`
	Message string `json:"message"`
}

// mapErrorResponse converts a non-2xx response. 429 and any status carrying
// Retry-After become RateLimitError; everything else is UpstreamAPIError.
func mapErrorResponse(status int, header http.Header, body []byte, now time.Time) error {
	retryAfter, hasRetryAfter := parseRetryAfter(header.Get("Retry-After"), now)
	if status == http.StatusTooManyRequests || hasRetryAfter {
		if !hasRetryAfter {
			retryAfter = DefaultRetryAfter
		}
		return &domain.RateLimitError{RetryAfter: retryAfter}
	}

	upErr := &domain.UpstreamAPIError{StatusCode: status, Message: http.StatusText(status)}
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		switch {
		case len(parsed.Errors) > 0:
			upErr.ErrorID = parsed.Errors[0].ID
			if parsed.Errors[0].Message != "" {
				upErr.Message = parsed.Errors[0].Message
			}
		case parsed.Message != "":
			upErr.Message = parsed.Message
		}
	}
	return upErr
}

// parseRetryAfter accepts delta-seconds or an HTTP date.
func parseRetryAfter(raw string, now time.Time) (time.Duration, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		if secs < 0 {
			return 0, false
		}
		return time.Duration(secs) * time.Second, true
	}
	at, err := http.ParseTime(raw)
	if err != nil {
		return 0, false
	}
	d := at.Sub(now)
	if d < 0 {
		d = 0
	}
	return d, true
}
