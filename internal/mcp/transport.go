package mcp

import (
	"encoding/json"
	"net/http"
	"strconv"

	"golang.org/x/time/rate"
)

const (
	defaultMCPMaxBodyBytes int64 = 1 << 20 // 1MiB
	defaultMCPRatePerMin         = 60
)

type HTTPHandlerConfig struct {
	RateLimitPerMin int
	MaxBodyBytes    int64
}

func wrapHTTPHandler(base http.Handler, cfg HTTPHandlerConfig) http.Handler {
	h := withBodyLimit(base, cfg.MaxBodyBytes)
	h = withRateLimit(h, newHTTPRateLimiter(cfg.RateLimitPerMin))
	return h
}

func withBodyLimit(next http.Handler, limit int64) http.Handler {
	if limit <= 0 {
		limit = defaultMCPMaxBodyBytes
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
		}
		next.ServeHTTP(w, r)
	})
}

func withRateLimit(next http.Handler, limiter *rate.Limiter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if limiter == nil {
			next.ServeHTTP(w, r)
			return
		}
		if !limiter.Allow() {
			w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(limiter)))
			writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// newHTTPRateLimiter returns one process-wide bucket refilling perMin tokens a minute.
func newHTTPRateLimiter(perMin int) *rate.Limiter {
	if perMin <= 0 {
		perMin = defaultMCPRatePerMin
	}
	return rate.NewLimiter(rate.Limit(float64(perMin)/60.0), perMin)
}

func retryAfterSeconds(limiter *rate.Limiter) int {
	limit := float64(limiter.Limit())
	if limit <= 0 {
		return 60
	}
	missing := 1 - limiter.Tokens()
	secs := int(missing/limit) + 1
	if secs < 1 {
		secs = 1
	}
	return secs
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "rate_limit_error", "message": message})
}
