package tui

import (
	"context"
	"strings"
	"testing"

	"market-bridge/internal/domain"

	tea "github.com/charmbracelet/bubbletea"
)

// --- stub services ---

type stubMarket struct {
	spots    map[string]*domain.SpotPrice
	analyses map[string]*domain.PriceAnalysis
	spotErr  error
	err      error
	requests []domain.AnalysisRequest
}

func (s *stubMarket) SpotPrice(ctx context.Context, pair domain.CurrencyPair) (*domain.SpotPrice, error) {
	if s.spotErr != nil {
		return nil, s.spotErr
	}
	return s.spots[pair.String()], nil
}

func (s *stubMarket) AnalyzePrice(ctx context.Context, req domain.AnalysisRequest) (*domain.PriceAnalysis, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	return s.analyses[req.Pair.String()], nil
}

func floatPtr(v float64) *float64 { return &v }

func testServices() Services {
	return Services{
		Market: &stubMarket{
			spots: map[string]*domain.SpotPrice{
				"BTC-USD": {Amount: "98000.12", Base: "BTC", Currency: "USD"},
				"ETH-USD": {Amount: "3456.7", Base: "ETH", Currency: "USD"},
			},
			analyses: map[string]*domain.PriceAnalysis{
				"BTC-USD": {
					CurrencyPair:          "BTC-USD",
					Period:                domain.AnalysisPeriod1D,
					CurrentPrice:          98000.12,
					PriceChange24h:        2200,
					PriceChangePercent24h: 2.3,
					Volatility:            1.1,
					Trend:                 domain.TrendBullish,
					SupportLevel:          floatPtr(95000),
					ResistanceLevel:       floatPtr(99000),
					Mean:                  96500,
					DataPoints:            24,
				},
			},
		},
		Pairs: []domain.CurrencyPair{
			{Base: "BTC", Quote: "USD"},
			{Base: "ETH", Quote: "USD"},
		},
	}
}

func TestAppModelInitialTab(t *testing.T) {
	m := NewAppModel(testServices())
	if m.ActiveTab() != TabWatchlist {
		t.Fatalf("expected TabWatchlist, got %d", m.ActiveTab())
	}
}

func TestAppModelTabSwitchByNumber(t *testing.T) {
	m := NewAppModel(testServices())
	m.SetSize(120, 40)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	app := updated.(AppModel)
	if app.ActiveTab() != TabDetail {
		t.Fatalf("expected TabDetail after pressing 2, got %d", app.ActiveTab())
	}

	updated, _ = app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}})
	app = updated.(AppModel)
	if app.ActiveTab() != TabWatchlist {
		t.Fatalf("expected TabWatchlist after pressing 1, got %d", app.ActiveTab())
	}
}

func TestAppModelTabSwitchByTab(t *testing.T) {
	m := NewAppModel(testServices())
	m.SetSize(120, 40)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	app := updated.(AppModel)
	if app.ActiveTab() != TabDetail {
		t.Fatalf("expected TabDetail after Tab, got %d", app.ActiveTab())
	}

	updated, _ = app.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	app = updated.(AppModel)
	if app.ActiveTab() != TabWatchlist {
		t.Fatalf("expected TabWatchlist after Shift+Tab, got %d", app.ActiveTab())
	}

	updated, _ = app.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	app = updated.(AppModel)
	if app.ActiveTab() != TabDetail {
		t.Fatalf("expected Shift+Tab to wrap to TabDetail, got %d", app.ActiveTab())
	}
}

func TestAppModelQuit(t *testing.T) {
	m := NewAppModel(testServices())

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	app := updated.(AppModel)
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
	if app.View() != "Goodbye!\n" {
		t.Fatalf("unexpected quit view: %q", app.View())
	}
}

func TestAppModelWindowResize(t *testing.T) {
	m := NewAppModel(testServices())

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 50})
	app := updated.(AppModel)
	if app.width != 100 || app.height != 50 {
		t.Fatalf("expected 100x50, got %dx%d", app.width, app.height)
	}
	if app.watchlist.width != 100 || app.watchlist.height != 48 {
		t.Fatalf("expected watchlist 100x48, got %dx%d", app.watchlist.width, app.watchlist.height)
	}
}

func TestAppModelRoutesQuotesToWatchlist(t *testing.T) {
	m := NewAppModel(testServices())
	m.SetSize(120, 40)

	spot := &domain.SpotPrice{Amount: "1.5", Base: "BTC", Currency: "USD"}
	updated, _ := m.Update(quoteMsg{index: 0, spot: spot})
	app := updated.(AppModel)
	if app.watchlist.Rows()[0].Spot != spot {
		t.Fatal("expected quote routed to watchlist")
	}
}

func TestAppModelDetailViewShowsSelectedPair(t *testing.T) {
	svc := testServices()
	m := NewAppModel(svc)
	m.SetSize(120, 40)

	msg := m.watchlist.fetchQuoteCmd(0, svc.Pairs[0])()
	updated, _ := m.Update(msg)
	updated, _ = updated.Update(tea.KeyMsg{Type: tea.KeyTab})

	view := updated.View()
	for _, want := range []string{"BTC-USD", "Volatility", "98,000"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected detail view to contain %q, got:\n%s", want, view)
		}
	}
}

func TestAppModelViewRendersWithoutPanic(t *testing.T) {
	m := NewAppModel(testServices())
	m.SetSize(120, 40)

	for _, tab := range []Tab{TabWatchlist, TabDetail} {
		m.activeTab = tab
		if m.View() == "" {
			t.Fatalf("expected non-empty view for tab %d", tab)
		}
	}
}
