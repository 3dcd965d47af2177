// Package validation turns raw façade input into typed, constraint-checked
// requests. Every failure is a *domain.ValidationError and happens before any
// upstream call.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"market-bridge/internal/domain"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultSearchLimit = 25
	dateLayout         = "2006-01-02"
)

var (
	pairPattern = regexp.MustCompile(`^[A-Z0-9]+-[A-Z0-9]+$`)
	validate    = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("currency_pair", func(fl validator.FieldLevel) bool {
		return pairPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("iso_date", func(fl validator.FieldLevel) bool {
		_, err := parseDate(fl.Field().String())
		return err == nil
	})
	return v
}

func SpotPrice(in SpotPriceInput) (domain.CurrencyPair, error) {
	in.CurrencyPair = normalizeCode(in.CurrencyPair)
	if err := check(in); err != nil {
		return domain.CurrencyPair{}, err
	}
	return toPair("currencyPair", in.CurrencyPair)
}

func HistoricalPrices(in HistoricalPricesInput) (domain.HistoricalRequest, error) {
	in.CurrencyPair = normalizeCode(in.CurrencyPair)
	in.Start = strings.TrimSpace(in.Start)
	in.End = strings.TrimSpace(in.End)
	in.Period = strings.ToLower(strings.TrimSpace(in.Period))
	if err := check(in); err != nil {
		return domain.HistoricalRequest{}, err
	}

	pair, err := toPair("currencyPair", in.CurrencyPair)
	if err != nil {
		return domain.HistoricalRequest{}, err
	}
	req := domain.HistoricalRequest{Pair: pair, Period: domain.HistoricPeriod(in.Period)}
	if in.Start != "" {
		start, _ := parseDate(in.Start)
		req.Start = &start
	}
	if in.End != "" {
		end, _ := parseDate(in.End)
		req.End = &end
	}
	if req.Start != nil && req.End != nil && req.Start.After(*req.End) {
		return domain.HistoricalRequest{}, domain.NewValidationError("start", "must not be after end")
	}
	return req, nil
}

func ExchangeRates(in ExchangeRatesInput) (string, error) {
	in.Currency = normalizeCode(in.Currency)
	if err := check(in); err != nil {
		return "", err
	}
	return in.Currency, nil
}

func SearchAssets(in SearchAssetsInput) (domain.AssetSearchRequest, error) {
	in.Query = strings.TrimSpace(in.Query)
	var extra []domain.Violation
	if in.Limit != nil && *in.Limit <= 0 {
		extra = append(extra, domain.Violation{Field: "limit", Reason: "must be greater than 0"})
	}
	if err := check(in, extra...); err != nil {
		return domain.AssetSearchRequest{}, err
	}

	req := domain.AssetSearchRequest{Query: in.Query, Limit: DefaultSearchLimit}
	if in.Limit != nil {
		req.Limit = *in.Limit
	}
	return req, nil
}

func AssetDetails(in AssetDetailsInput) (string, error) {
	in.AssetID = strings.TrimSpace(in.AssetID)
	if err := check(in); err != nil {
		return "", err
	}
	return in.AssetID, nil
}

func MarketStats(in MarketStatsInput) (domain.CurrencyPair, error) {
	in.CurrencyPair = normalizeCode(in.CurrencyPair)
	if err := check(in); err != nil {
		return domain.CurrencyPair{}, err
	}
	return toPair("currencyPair", in.CurrencyPair)
}

func AnalyzePrice(in AnalyzePriceInput) (domain.AnalysisRequest, error) {
	in.CurrencyPair = normalizeCode(in.CurrencyPair)
	in.Period = strings.ToLower(strings.TrimSpace(in.Period))
	if in.Metrics != nil {
		metrics := make([]string, len(in.Metrics))
		for i, m := range in.Metrics {
			metrics[i] = strings.ToLower(strings.TrimSpace(m))
		}
		in.Metrics = metrics
	}
	if err := check(in); err != nil {
		return domain.AnalysisRequest{}, err
	}

	pair, err := toPair("currencyPair", in.CurrencyPair)
	if err != nil {
		return domain.AnalysisRequest{}, err
	}
	metrics := make([]domain.Metric, 0, len(in.Metrics))
	for _, m := range in.Metrics {
		metrics = append(metrics, domain.Metric(m))
	}
	return domain.AnalysisRequest{
		Pair:    pair,
		Period:  domain.AnalysisPeriod(in.Period),
		Metrics: domain.NewMetricSet(metrics...),
	}, nil
}

func check(in any, extra ...domain.Violation) error {
	var violations []domain.Violation
	if err := validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validate %T: %w", in, err)
		}
		for _, fe := range fieldErrs {
			violations = append(violations, domain.Violation{Field: fe.Field(), Reason: reason(fe)})
		}
	}
	violations = append(violations, extra...)
	if len(violations) > 0 {
		return &domain.ValidationError{Violations: violations}
	}
	return nil
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "currency_pair":
		return "must be a currency pair in BASE-QUOTE form (e.g. BTC-USD)"
	case "iso_date":
		return "must be an ISO-8601 date (YYYY-MM-DD or RFC3339)"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		return "must contain at least " + fe.Param() + " value(s)"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "alphanum":
		return "must be alphanumeric"
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}

func toPair(field, raw string) (domain.CurrencyPair, error) {
	pair, err := domain.ParseCurrencyPair(raw)
	if err != nil {
		return domain.CurrencyPair{}, domain.NewValidationError(field, err.Error())
	}
	return pair, nil
}

func normalizeCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
