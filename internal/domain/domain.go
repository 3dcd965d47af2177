package domain

import "time"

type AssetType string

const (
	AssetTypeFiat   AssetType = "fiat"
	AssetTypeCrypto AssetType = "crypto"
)

type Asset struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Color     string    `json:"color,omitempty"`
	Type      AssetType `json:"type"`
	SortIndex int       `json:"sort_index"`
	Exponent  int       `json:"exponent"`
	Slug      string    `json:"slug,omitempty"`
}

// SpotPrice is a point-in-time quote. Amount stays a decimal string.
type SpotPrice struct {
	Amount   string `json:"amount"`
	Base     string `json:"base"`
	Currency string `json:"currency"`
}

type HistoricalPricePoint struct {
	Timestamp string `json:"timestamp"`
	Price     string `json:"price"`
}

// HistoricalSeries holds points in ascending timestamp order.
type HistoricalSeries struct {
	Base     string                 `json:"base"`
	Currency string                 `json:"currency"`
	Period   HistoricPeriod         `json:"period,omitempty"`
	Prices   []HistoricalPricePoint `json:"prices"`
}

type ExchangeRateSet struct {
	Currency string            `json:"currency"`
	Rates    map[string]string `json:"rates"`
}

type MarketStats struct {
	Open        string `json:"open"`
	High        string `json:"high"`
	Low         string `json:"low"`
	Last        string `json:"last"`
	Volume      string `json:"volume"`
	Volume30Day string `json:"volume_30day"`
}

type ServerTime struct {
	ISO   string `json:"iso"`
	Epoch int64  `json:"epoch"`
}

type Trend string

const (
	TrendBullish  Trend = "bullish"
	TrendBearish  Trend = "bearish"
	TrendSideways Trend = "sideways"
)

// PriceAnalysis is derived per request from a HistoricalSeries and never stored.
type PriceAnalysis struct {
	CurrencyPair          string         `json:"currencyPair"`
	Period                AnalysisPeriod `json:"period"`
	CurrentPrice          float64        `json:"currentPrice"`
	PriceChange24h        float64        `json:"priceChange24h"`
	PriceChangePercent24h float64        `json:"priceChangePercent24h"`
	Volatility            float64        `json:"volatility"`
	Trend                 Trend          `json:"trend"`
	SupportLevel          *float64       `json:"supportLevel,omitempty"`
	ResistanceLevel       *float64       `json:"resistanceLevel,omitempty"`
	Volume24h             *float64       `json:"volume24h,omitempty"`
	Mean                  float64        `json:"mean"`
	DataPoints            int            `json:"dataPoints"`
}

type HistoricPeriod string

const (
	HistoricPeriodHour  HistoricPeriod = "hour"
	HistoricPeriodDay   HistoricPeriod = "day"
	HistoricPeriodWeek  HistoricPeriod = "week"
	HistoricPeriodMonth HistoricPeriod = "month"
	HistoricPeriodYear  HistoricPeriod = "year"
)

// RequestableHistoricPeriods are the granularities callers may ask for directly.
var RequestableHistoricPeriods = []HistoricPeriod{HistoricPeriodHour, HistoricPeriodDay}

type AnalysisPeriod string

const (
	AnalysisPeriod1D  AnalysisPeriod = "1d"
	AnalysisPeriod7D  AnalysisPeriod = "7d"
	AnalysisPeriod30D AnalysisPeriod = "30d"
	AnalysisPeriod1Y  AnalysisPeriod = "1y"
)

var SupportedAnalysisPeriods = []AnalysisPeriod{
	AnalysisPeriod1D,
	AnalysisPeriod7D,
	AnalysisPeriod30D,
	AnalysisPeriod1Y,
}

type Metric string

const (
	MetricVolatility        Metric = "volatility"
	MetricTrend             Metric = "trend"
	MetricSupportResistance Metric = "support_resistance"
	MetricVolume            Metric = "volume"
)

var SupportedMetrics = []Metric{
	MetricVolatility,
	MetricTrend,
	MetricSupportResistance,
	MetricVolume,
}

// MetricSet is a deduplicated, non-empty set of requested metrics.
type MetricSet []Metric

func NewMetricSet(metrics ...Metric) MetricSet {
	seen := make(map[Metric]struct{}, len(metrics))
	out := make(MetricSet, 0, len(metrics))
	for _, m := range metrics {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}

func (s MetricSet) Has(m Metric) bool {
	for _, candidate := range s {
		if candidate == m {
			return true
		}
	}
	return false
}

type HistoricalRequest struct {
	Pair   CurrencyPair
	Period HistoricPeriod
	Start  *time.Time
	End    *time.Time
}

type AssetSearchRequest struct {
	Query string
	Limit int
}

type AnalysisRequest struct {
	Pair    CurrencyPair
	Period  AnalysisPeriod
	Metrics MetricSet
}

type ChartImage struct {
	MimeType string
	Width    int
	Height   int
	Bytes    []byte
}
