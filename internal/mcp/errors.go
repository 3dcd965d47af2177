package mcp

import (
	"encoding/json"
	"errors"

	"market-bridge/internal/domain"
)

// toolErrorPayload is the JSON carried in the text content of a failed tool call.
type toolErrorPayload struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
	RetryAfter int    `json:"retryAfter,omitempty"`
}

// toolError renders err as the structured payload when the SDK reports it
// through CallToolResult.IsError.
type toolError struct {
	payload toolErrorPayload
	err     error
}

func (e *toolError) Error() string {
	body, err := json.Marshal(e.payload)
	if err != nil {
		return e.err.Error()
	}
	return string(body)
}

func (e *toolError) Unwrap() error { return e.err }

func newToolError(err error) error {
	if err == nil {
		return nil
	}
	payload := toolErrorPayload{Error: domain.KindOf(err), Message: err.Error()}

	var (
		validationErr *domain.ValidationError
		rateLimitErr  *domain.RateLimitError
		upstreamErr   *domain.UpstreamAPIError
	)
	switch {
	case errors.As(err, &validationErr):
		payload.Details = validationErr.Violations
	case errors.As(err, &rateLimitErr):
		payload.RetryAfter = rateLimitErr.RetryAfterSeconds()
	case errors.As(err, &upstreamErr):
		if upstreamErr.ErrorID != "" {
			payload.Details = map[string]any{"statusCode": upstreamErr.StatusCode, "errorId": upstreamErr.ErrorID}
		}
	}
	return &toolError{payload: payload, err: err}
}
