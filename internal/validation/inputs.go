package validation

// Raw inputs shared by the HTTP handlers, MCP tools and the chat bot. JSON
// names are the public field names reported in violations.

type SpotPriceInput struct {
	CurrencyPair string `json:"currencyPair,omitempty" jsonschema:"currency pair in BASE-QUOTE form, e.g. BTC-USD" validate:"required,currency_pair"`
}

type HistoricalPricesInput struct {
	CurrencyPair string `json:"currencyPair,omitempty" jsonschema:"currency pair in BASE-QUOTE form, e.g. BTC-USD" validate:"required,currency_pair"`
	Start        string `json:"start,omitempty" jsonschema:"window start as YYYY-MM-DD or RFC3339" validate:"omitempty,iso_date"`
	End          string `json:"end,omitempty" jsonschema:"window end as YYYY-MM-DD or RFC3339" validate:"omitempty,iso_date"`
	Period       string `json:"period,omitempty" jsonschema:"sampling period: hour or day" validate:"omitempty,oneof=hour day"`
}

type ExchangeRatesInput struct {
	Currency string `json:"currency,omitempty" jsonschema:"base currency code, e.g. USD or BTC" validate:"required,alphanum,max=10"`
}

type SearchAssetsInput struct {
	Query string `json:"query,omitempty" jsonschema:"text matched against asset id, code, name and slug" validate:"required,max=100"`
	Limit *int   `json:"limit,omitempty" jsonschema:"maximum number of results (default 25)"`
}

type AssetDetailsInput struct {
	AssetID string `json:"assetId,omitempty" jsonschema:"asset id or ticker code, e.g. BTC" validate:"required,max=64"`
}

type MarketStatsInput struct {
	CurrencyPair string `json:"currencyPair,omitempty" jsonschema:"currency pair in BASE-QUOTE form, e.g. BTC-USD" validate:"required,currency_pair"`
}

type AnalyzePriceInput struct {
	CurrencyPair string   `json:"currencyPair,omitempty" jsonschema:"currency pair in BASE-QUOTE form, e.g. BTC-USD" validate:"required,currency_pair"`
	Period       string   `json:"period,omitempty" jsonschema:"analysis window: 1d, 7d, 30d or 1y" validate:"required,oneof=1d 7d 30d 1y"`
	Metrics      []string `json:"metrics,omitempty" jsonschema:"metrics to compute: volatility, trend, support_resistance, volume" validate:"required,min=1,dive,oneof=volatility trend support_resistance volume"`
}
