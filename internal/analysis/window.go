package analysis

import (
	"fmt"
	"time"

	"market-bridge/internal/domain"
)

type window struct {
	granularity domain.HistoricPeriod
	span        time.Duration
}

var windows = map[domain.AnalysisPeriod]window{
	domain.AnalysisPeriod1D:  {granularity: domain.HistoricPeriodDay, span: 24 * time.Hour},
	domain.AnalysisPeriod7D:  {granularity: domain.HistoricPeriodWeek, span: 7 * 24 * time.Hour},
	domain.AnalysisPeriod30D: {granularity: domain.HistoricPeriodMonth, span: 30 * 24 * time.Hour},
	domain.AnalysisPeriod1Y:  {granularity: domain.HistoricPeriodYear, span: 365 * 24 * time.Hour},
}

// HistoricalRequestFor maps an analysis period onto the upstream window ending
// at now, truncated to the minute so repeated analyses share a window.
func HistoricalRequestFor(pair domain.CurrencyPair, period domain.AnalysisPeriod, now time.Time) (domain.HistoricalRequest, error) {
	w, ok := windows[period]
	if !ok {
		return domain.HistoricalRequest{}, domain.NewValidationError("period", fmt.Sprintf("unsupported analysis period %q", period))
	}
	end := now.UTC().Truncate(time.Minute)
	start := end.Add(-w.span)
	return domain.HistoricalRequest{
		Pair:   pair,
		Period: w.granularity,
		Start:  &start,
		End:    &end,
	}, nil
}
