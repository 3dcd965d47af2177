// Package analysis derives PriceAnalysis figures from a historical series.
package analysis

import (
	"fmt"
	"math"
	"time"

	"market-bridge/internal/domain"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// DefaultTrendThreshold is the ±0.5% band around the mean classified as sideways.
const DefaultTrendThreshold = 0.005

const referenceOffset = 24 * time.Hour

type Engine struct {
	trendThreshold float64
}

type sample struct {
	at    time.Time
	price float64
}

func NewEngine(trendThreshold float64) *Engine {
	if trendThreshold <= 0 || math.IsNaN(trendThreshold) || math.IsInf(trendThreshold, 0) {
		trendThreshold = DefaultTrendThreshold
	}
	return &Engine{trendThreshold: trendThreshold}
}

func (e *Engine) TrendThreshold() float64 {
	return e.trendThreshold
}

// Analyze expects series in ascending timestamp order and never re-sorts it.
// Support and resistance are the plain min/max of the window, not pivot points.
func (e *Engine) Analyze(req domain.AnalysisRequest, series *domain.HistoricalSeries) (*domain.PriceAnalysis, error) {
	if series == nil || len(series.Prices) < 2 {
		n := 0
		if series != nil {
			n = len(series.Prices)
		}
		return nil, &domain.AnalysisError{Reason: fmt.Sprintf("need at least 2 price points, got %d", n)}
	}

	samples, err := parseSamples(series.Prices)
	if err != nil {
		return nil, err
	}

	prices := make([]float64, len(samples))
	for i, s := range samples {
		prices[i] = s.price
	}

	current := samples[len(samples)-1]
	reference := referencePoint(samples, current.at.Add(-referenceOffset))
	change := current.price - reference.price
	changePct := 0.0
	if reference.price != 0 {
		changePct = change / reference.price * 100
	}

	mean := stat.Mean(prices, nil)
	result := &domain.PriceAnalysis{
		CurrencyPair:          req.Pair.String(),
		Period:                req.Period,
		CurrentPrice:          current.price,
		PriceChange24h:        change,
		PriceChangePercent24h: changePct,
		Volatility:            volatility(prices),
		Trend:                 e.classify(current.price, mean),
		Mean:                  mean,
		DataPoints:            len(samples),
	}

	if req.Metrics.Has(domain.MetricSupportResistance) {
		support, resistance := bounds(prices)
		result.SupportLevel = &support
		result.ResistanceLevel = &resistance
	}
	return result, nil
}

// ApplyVolume sets Volume24h from stats when the volume metric was requested
// and stats carry a parseable figure.
func ApplyVolume(result *domain.PriceAnalysis, req domain.AnalysisRequest, stats *domain.MarketStats) {
	if result == nil || stats == nil || !req.Metrics.Has(domain.MetricVolume) {
		return
	}
	d, err := decimal.NewFromString(stats.Volume)
	if err != nil {
		return
	}
	volume := d.InexactFloat64()
	result.Volume24h = &volume
}

func (e *Engine) classify(current, mean float64) domain.Trend {
	switch {
	case current > mean*(1+e.trendThreshold):
		return domain.TrendBullish
	case current < mean*(1-e.trendThreshold):
		return domain.TrendBearish
	default:
		return domain.TrendSideways
	}
}

func parseSamples(points []domain.HistoricalPricePoint) ([]sample, error) {
	out := make([]sample, 0, len(points))
	for i, p := range points {
		d, err := decimal.NewFromString(p.Price)
		if err != nil {
			return nil, &domain.AnalysisError{Reason: fmt.Sprintf("malformed price %q at index %d", p.Price, i)}
		}
		at, err := time.Parse(time.RFC3339, p.Timestamp)
		if err != nil {
			return nil, &domain.AnalysisError{Reason: fmt.Sprintf("malformed timestamp %q at index %d", p.Timestamp, i)}
		}
		out = append(out, sample{at: at, price: d.InexactFloat64()})
	}
	return out, nil
}

// referencePoint returns the latest sample at or before target, or the first
// sample when none precedes it.
func referencePoint(samples []sample, target time.Time) sample {
	for i := len(samples) - 1; i >= 0; i-- {
		if !samples[i].at.After(target) {
			return samples[i]
		}
	}
	return samples[0]
}

// volatility is the sample standard deviation of step returns in percent.
// Steps starting from a zero price are skipped.
func volatility(prices []float64) float64 {
	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		prev := prices[i-1]
		if prev == 0 {
			continue
		}
		returns = append(returns, (prices[i]-prev)/prev)
	}
	if len(returns) < 2 {
		return 0
	}
	std := stat.StdDev(returns, nil)
	if math.IsNaN(std) || math.IsInf(std, 0) {
		return 0
	}
	return std * 100
}

func bounds(prices []float64) (lo, hi float64) {
	lo, hi = prices[0], prices[0]
	for _, p := range prices[1:] {
		lo = math.Min(lo, p)
		hi = math.Max(hi, p)
	}
	return lo, hi
}
