package coinbase

import (
	"time"

	"market-bridge/internal/domain"

	"golang.org/x/time/rate"
)

// Budget caps outbound calls per minute and per hour for the whole process.
// A nil Budget allows everything.
type Budget struct {
	limiters []*rate.Limiter
	now      func() time.Time
}

// NewBudget returns nil when both limits are disabled (<= 0).
func NewBudget(perMinute, perHour int) *Budget {
	var limiters []*rate.Limiter
	if perMinute > 0 {
		limiters = append(limiters, rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute))
	}
	if perHour > 0 {
		limiters = append(limiters, rate.NewLimiter(rate.Every(time.Hour/time.Duration(perHour)), perHour))
	}
	if len(limiters) == 0 {
		return nil
	}
	return &Budget{limiters: limiters, now: time.Now}
}

// Take consumes one token from every window or none of them. When any window
// is empty it fails fast with the wait that window would impose.
func (b *Budget) Take() error {
	if b == nil {
		return nil
	}
	now := b.now()
	reservations := make([]*rate.Reservation, 0, len(b.limiters))
	var wait time.Duration
	for _, l := range b.limiters {
		r := l.ReserveN(now, 1)
		reservations = append(reservations, r)
		if d := r.DelayFrom(now); d > wait {
			wait = d
		}
	}
	if wait == 0 {
		return nil
	}
	for _, r := range reservations {
		r.CancelAt(now)
	}
	return &domain.RateLimitError{RetryAfter: wait}
}
