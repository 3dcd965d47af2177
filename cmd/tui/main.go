package main

import (
	"context"
	"log"
	"time"

	"market-bridge/internal/bootstrap"
	"market-bridge/internal/config"
	"market-bridge/internal/domain"
	"market-bridge/internal/tui"
	"market-bridge/pkg/tracing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

var (
	loadEnvFunc          = godotenv.Load
	loadConfigFunc       = config.Load
	initTracerFunc       = tracing.InitTracer
	newMarketServiceFunc = bootstrap.NewMarketService
	runProgramFunc       = func(model tea.Model) error {
		_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
		return err
	}
)

func main() {
	loadEnvFunc()
	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		if err := tp.Shutdown(flushCtx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	marketService := newMarketServiceFunc(ctx, cfg, tracer)

	model := tui.NewAppModel(tui.Services{
		Market: marketService,
		Pairs:  parsePairs(cfg.TUIPairs),
	})
	if err := runProgramFunc(model); err != nil {
		log.Fatalf("tui exited with error: %v", err)
	}
}

// parsePairs drops entries that are not BASE-QUOTE.
func parsePairs(raw []string) []domain.CurrencyPair {
	pairs := make([]domain.CurrencyPair, 0, len(raw))
	for _, r := range raw {
		p, err := domain.ParseCurrencyPair(r)
		if err != nil {
			log.Printf("skipping TUI pair: %v", err)
			continue
		}
		pairs = append(pairs, p)
	}
	return pairs
}
