package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"market-bridge/internal/domain"

	tea "github.com/charmbracelet/bubbletea"
)

func TestWatchlistStartsWithOneRowPerPair(t *testing.T) {
	m := NewWatchlistModel(testServices())
	rows := m.Rows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[1].Pair.String() != "ETH-USD" {
		t.Fatalf("expected ETH-USD, got %s", rows[1].Pair)
	}
	if m.pending != 2 {
		t.Fatalf("expected initial refresh pending for 2 rows, got %d", m.pending)
	}
}

func TestWatchlistFetchQuoteRequestsDayTrend(t *testing.T) {
	svc := testServices()
	m := NewWatchlistModel(svc)

	msg := m.fetchQuoteCmd(0, svc.Pairs[0])()
	quote, ok := msg.(quoteMsg)
	if !ok {
		t.Fatalf("expected quoteMsg, got %T", msg)
	}
	if quote.err != nil {
		t.Fatalf("unexpected error: %v", quote.err)
	}
	if quote.spot == nil || quote.spot.Amount != "98000.12" {
		t.Fatalf("unexpected spot: %+v", quote.spot)
	}

	stub := svc.Market.(*stubMarket)
	if len(stub.requests) != 1 {
		t.Fatalf("expected 1 analysis request, got %d", len(stub.requests))
	}
	req := stub.requests[0]
	if req.Period != domain.AnalysisPeriod1D {
		t.Fatalf("expected 1d period, got %s", req.Period)
	}
	if !req.Metrics.Has(domain.MetricTrend) || req.Metrics.Has(domain.MetricVolume) {
		t.Fatalf("unexpected metrics: %v", req.Metrics)
	}
}

func TestWatchlistFetchQuoteJoinsErrors(t *testing.T) {
	svc := testServices()
	stub := svc.Market.(*stubMarket)
	stub.spotErr = errors.New("spot down")
	stub.err = errors.New("history down")
	m := NewWatchlistModel(svc)

	quote := m.fetchQuoteCmd(1, svc.Pairs[1])().(quoteMsg)
	if quote.err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(quote.err.Error(), "spot down") || !strings.Contains(quote.err.Error(), "history down") {
		t.Fatalf("expected both errors, got %v", quote.err)
	}
}

func TestWatchlistFetchQuoteWithoutMarket(t *testing.T) {
	m := NewWatchlistModel(Services{Pairs: []domain.CurrencyPair{{Base: "BTC", Quote: "USD"}}})
	quote := m.fetchQuoteCmd(0, m.rows[0].Pair)().(quoteMsg)
	if !errors.Is(quote.err, errMarketUnavailable) {
		t.Fatalf("expected errMarketUnavailable, got %v", quote.err)
	}
}

func TestWatchlistUpdateKeepsLastGoodQuoteOnError(t *testing.T) {
	m := NewWatchlistModel(testServices())
	spot := &domain.SpotPrice{Amount: "100", Base: "BTC", Currency: "USD"}

	m, _ = m.Update(quoteMsg{index: 0, spot: spot, at: time.Now()})
	if m.pending != 1 {
		t.Fatalf("expected 1 pending, got %d", m.pending)
	}

	m, _ = m.Update(quoteMsg{index: 0, err: errors.New("boom"), at: time.Now()})
	row := m.Rows()[0]
	if row.Spot != spot {
		t.Fatal("expected previous spot to be kept")
	}
	if row.Err == nil {
		t.Fatal("expected row error to be recorded")
	}
	if m.pending != 0 {
		t.Fatalf("expected pending to floor at 0, got %d", m.pending)
	}
}

func TestWatchlistUpdateIgnoresOutOfRangeQuote(t *testing.T) {
	m := NewWatchlistModel(testServices())
	m, _ = m.Update(quoteMsg{index: 5, spot: &domain.SpotPrice{Amount: "1"}})
	for _, r := range m.Rows() {
		if r.Spot != nil {
			t.Fatalf("unexpected spot on %s", r.Pair)
		}
	}
}

func TestWatchlistTickSchedulesRefresh(t *testing.T) {
	m := NewWatchlistModel(testServices())
	m.pending = 0

	m, cmd := m.Update(watchTickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("expected refresh command")
	}
	if m.pending != 2 {
		t.Fatalf("expected 2 pending, got %d", m.pending)
	}
}

func TestWatchlistSelectionClamps(t *testing.T) {
	m := NewWatchlistModel(testServices())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.selected != 0 {
		t.Fatalf("expected selection to stay at 0, got %d", m.selected)
	}
	for range 3 {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.selected != 1 {
		t.Fatalf("expected selection clamped at 1, got %d", m.selected)
	}
	row, ok := m.Selected()
	if !ok || row.Pair.String() != "ETH-USD" {
		t.Fatalf("expected ETH-USD selected, got %+v", row)
	}
}

func TestWatchlistRefreshKey(t *testing.T) {
	m := NewWatchlistModel(testServices())
	m.pending = 0

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if cmd == nil {
		t.Fatal("expected refresh command")
	}
	if m.pending != 2 {
		t.Fatalf("expected 2 pending, got %d", m.pending)
	}
}

func TestWatchlistViewEmpty(t *testing.T) {
	m := NewWatchlistModel(Services{})
	m.SetSize(120, 40)

	if !strings.Contains(m.View(), "No pairs configured") {
		t.Fatalf("unexpected empty view: %q", m.View())
	}
}

func TestWatchlistViewWithData(t *testing.T) {
	svc := testServices()
	m := NewWatchlistModel(svc)
	m.SetSize(120, 40)

	m, _ = m.Update(m.fetchQuoteCmd(0, svc.Pairs[0])())
	m, _ = m.Update(m.fetchQuoteCmd(1, svc.Pairs[1])())

	view := m.View()
	for _, want := range []string{"BTC-USD", "ETH-USD", "98,000", "+2.30%", "BULLISH"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected view to contain %q, got:\n%s", want, view)
		}
	}
}

func TestServicesRefreshIntervalDefault(t *testing.T) {
	if got := (Services{}).refreshInterval(); got != defaultRefreshInterval {
		t.Fatalf("expected default interval, got %s", got)
	}
	if got := (Services{RefreshInterval: time.Second}).refreshInterval(); got != time.Second {
		t.Fatalf("expected 1s, got %s", got)
	}
}
