package bot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"market-bridge/internal/domain"
	"market-bridge/internal/validation"

	tele "gopkg.in/telebot.v3"
)

const (
	commandTimeout   = 15 * time.Second
	maxRatesListed   = 12
	maxMessageLength = 4000
)

var defaultAnalyzeMetrics = []string{
	string(domain.MetricVolatility),
	string(domain.MetricTrend),
	string(domain.MetricSupportResistance),
}

type MarketQuerier interface {
	SpotPrice(ctx context.Context, pair domain.CurrencyPair) (*domain.SpotPrice, error)
	ExchangeRates(ctx context.Context, currency string) (*domain.ExchangeRateSet, error)
	MarketStats(ctx context.Context, pair domain.CurrencyPair) (*domain.MarketStats, error)
	AnalyzePrice(ctx context.Context, req domain.AnalysisRequest) (*domain.PriceAnalysis, error)
	AnalysisChart(ctx context.Context, req domain.AnalysisRequest) (*domain.ChartImage, error)
}

// StartTelegramBot starts long polling in the background. It returns nil when
// token is empty or the bot cannot be created.
func StartTelegramBot(token string, market MarketQuerier) *tele.Bot {
	if strings.TrimSpace(token) == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return nil
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Printf("failed to create Telegram bot: %v", err)
		return nil
	}

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})
	b.Handle("/spot", textCommand(market, spotReply))
	b.Handle("/rates", textCommand(market, ratesReply))
	b.Handle("/stats", textCommand(market, statsReply))
	b.Handle("/analyze", textCommand(market, analyzeReply))
	b.Handle("/chart", func(c tele.Context) error {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		img, caption, err := chartReply(ctx, market, c.Args())
		if err != nil {
			return c.Send(formatError(err))
		}
		return c.Send(&tele.Photo{
			File:    tele.FromReader(bytes.NewReader(img.Bytes)),
			Caption: caption,
		})
	})

	log.Println("Telegram bot started")
	go b.Start()
	return b
}

type replyFunc func(ctx context.Context, market MarketQuerier, args []string) (string, error)

func textCommand(market MarketQuerier, fn replyFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		reply, err := fn(ctx, market, c.Args())
		if err != nil {
			return c.Send(formatError(err))
		}
		if len(reply) > maxMessageLength {
			reply = reply[:maxMessageLength] + "\n\n[truncated]"
		}
		return c.Send(reply)
	}
}

func spotReply(ctx context.Context, market MarketQuerier, args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: /spot BTC-USD", nil
	}
	pair, err := validation.SpotPrice(validation.SpotPriceInput{CurrencyPair: args[0]})
	if err != nil {
		return "", err
	}
	spot, err := market.SpotPrice(ctx, pair)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s spot: %s %s", spot.Base, spot.Currency, spot.Amount, spot.Currency), nil
}

// ratesReply lists the requested targets, or the first rates alphabetically
// when none are given.
func ratesReply(ctx context.Context, market MarketQuerier, args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: /rates USD [EUR BTC ...]", nil
	}
	currency, err := validation.ExchangeRates(validation.ExchangeRatesInput{Currency: args[0]})
	if err != nil {
		return "", err
	}
	rates, err := market.ExchangeRates(ctx, currency)
	if err != nil {
		return "", err
	}

	targets := make([]string, 0, len(args)-1)
	for _, a := range args[1:] {
		targets = append(targets, strings.ToUpper(strings.TrimSpace(a)))
	}
	if len(targets) == 0 {
		for code := range rates.Rates {
			targets = append(targets, code)
		}
		sort.Strings(targets)
		if len(targets) > maxRatesListed {
			targets = targets[:maxRatesListed]
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "1 %s =", rates.Currency)
	for _, code := range targets {
		rate, ok := rates.Rates[code]
		if !ok {
			rate = "n/a"
		}
		fmt.Fprintf(&sb, "\n  %s %s", rate, code)
	}
	return sb.String(), nil
}

func statsReply(ctx context.Context, market MarketQuerier, args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: /stats BTC-USD", nil
	}
	pair, err := validation.MarketStats(validation.MarketStatsInput{CurrencyPair: args[0]})
	if err != nil {
		return "", err
	}
	stats, err := market.MarketStats(ctx, pair)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"%s 24h\nOpen: %s\nHigh: %s\nLow: %s\nLast: %s\nVolume: %s",
		pair, stats.Open, stats.High, stats.Low, stats.Last, stats.Volume,
	), nil
}

// analyzeReply accepts /analyze PAIR [PERIOD] [METRIC ...].
func analyzeReply(ctx context.Context, market MarketQuerier, args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: /analyze BTC-USD [1d|7d|30d|1y] [volatility trend support_resistance volume]", nil
	}
	in := validation.AnalyzePriceInput{
		CurrencyPair: args[0],
		Period:       string(domain.AnalysisPeriod7D),
		Metrics:      defaultAnalyzeMetrics,
	}
	if len(args) > 1 {
		in.Period = args[1]
	}
	if len(args) > 2 {
		in.Metrics = args[2:]
	}
	req, err := validation.AnalyzePrice(in)
	if err != nil {
		return "", err
	}
	result, err := market.AnalyzePrice(ctx, req)
	if err != nil {
		return "", err
	}
	return formatAnalysis(result, req.Metrics), nil
}

func chartReply(ctx context.Context, market MarketQuerier, args []string) (*domain.ChartImage, string, error) {
	if len(args) == 0 {
		return nil, "", domain.NewValidationError("currencyPair", "usage: /chart BTC-USD [1d|7d|30d|1y]")
	}
	in := validation.AnalyzePriceInput{
		CurrencyPair: args[0],
		Period:       string(domain.AnalysisPeriod7D),
		Metrics:      []string{string(domain.MetricSupportResistance)},
	}
	if len(args) > 1 {
		in.Period = args[1]
	}
	req, err := validation.AnalyzePrice(in)
	if err != nil {
		return nil, "", err
	}
	img, err := market.AnalysisChart(ctx, req)
	if err != nil {
		return nil, "", err
	}
	return img, fmt.Sprintf("%s %s", req.Pair, req.Period), nil
}

func formatAnalysis(a *domain.PriceAnalysis, metrics domain.MetricSet) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s (%d points)\n", a.CurrencyPair, a.Period, a.DataPoints)
	fmt.Fprintf(&sb, "Price: %.2f\n24h: %+.2f (%+.2f%%)", a.CurrentPrice, a.PriceChange24h, a.PriceChangePercent24h)
	if metrics.Has(domain.MetricVolatility) {
		fmt.Fprintf(&sb, "\nVolatility: %.2f%%", a.Volatility)
	}
	if metrics.Has(domain.MetricTrend) {
		fmt.Fprintf(&sb, "\nTrend: %s (mean %.2f)", a.Trend, a.Mean)
	}
	if a.SupportLevel != nil && a.ResistanceLevel != nil {
		fmt.Fprintf(&sb, "\nSupport: %.2f\nResistance: %.2f", *a.SupportLevel, *a.ResistanceLevel)
	}
	if a.Volume24h != nil {
		fmt.Fprintf(&sb, "\nVolume 24h: %.2f", *a.Volume24h)
	}
	return sb.String()
}

func formatError(err error) string {
	var (
		validationErr *domain.ValidationError
		rateLimitErr  *domain.RateLimitError
		analysisErr   *domain.AnalysisError
		upstreamErr   *domain.UpstreamAPIError
	)
	switch {
	case errors.As(err, &validationErr):
		return "Invalid input: " + err.Error()
	case errors.As(err, &rateLimitErr):
		return fmt.Sprintf("Rate limited, try again in %ds.", rateLimitErr.RetryAfterSeconds())
	case errors.As(err, &analysisErr):
		return "Cannot analyse: " + analysisErr.Reason
	case errors.As(err, &upstreamErr):
		if upstreamErr.StatusCode == 404 {
			return "Not found: " + upstreamErr.Message
		}
		return "Market data unavailable right now."
	default:
		log.Printf("telegram command failed: %v", err)
		return "Something went wrong."
	}
}
