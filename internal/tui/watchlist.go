package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"market-bridge/internal/domain"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const fetchTimeout = 10 * time.Second

var watchMetrics = domain.NewMetricSet(
	domain.MetricVolatility,
	domain.MetricTrend,
	domain.MetricSupportResistance,
)

var errMarketUnavailable = errors.New("market service not available")

// WatchRow is the latest known state of one watched pair.
type WatchRow struct {
	Pair      domain.CurrencyPair
	Spot      *domain.SpotPrice
	Analysis  *domain.PriceAnalysis
	Err       error
	UpdatedAt time.Time
}

// Watchlist message types.
type quoteMsg struct {
	index    int
	spot     *domain.SpotPrice
	analysis *domain.PriceAnalysis
	err      error
	at       time.Time
}
type watchTickMsg time.Time

// WatchlistModel is the Bubble Tea model for the live watchlist screen.
type WatchlistModel struct {
	services Services
	rows     []WatchRow
	selected int
	pending  int
	spinner  spinner.Model
	width    int
	height   int
}

// NewWatchlistModel creates a watchlist with one row per configured pair.
func NewWatchlistModel(svc Services) WatchlistModel {
	rows := make([]WatchRow, len(svc.Pairs))
	for i, p := range svc.Pairs {
		rows[i] = WatchRow{Pair: p}
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(SpinnerColor)
	return WatchlistModel{
		services: svc,
		rows:     rows,
		pending:  len(rows),
		spinner:  sp,
	}
}

// Init fires the first refresh and schedules the next one.
func (m WatchlistModel) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), m.tickCmd(), m.spinner.Tick)
}

// Update handles incoming messages.
func (m WatchlistModel) Update(msg tea.Msg) (WatchlistModel, tea.Cmd) {
	switch msg := msg.(type) {
	case quoteMsg:
		if msg.index < 0 || msg.index >= len(m.rows) {
			return m, nil
		}
		row := &m.rows[msg.index]
		if msg.spot != nil {
			row.Spot = msg.spot
		}
		if msg.analysis != nil {
			row.Analysis = msg.analysis
		}
		row.Err = msg.err
		row.UpdatedAt = msg.at
		if m.pending > 0 {
			m.pending--
		}
		return m, nil

	case watchTickMsg:
		m.pending = len(m.rows)
		return m, tea.Batch(m.refreshCmd(), m.tickCmd())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.selected > 0 {
				m.selected--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.selected < len(m.rows)-1 {
				m.selected++
			}
		case key.Matches(msg, DefaultKeyMap.Refresh):
			m.pending = len(m.rows)
			return m, m.refreshCmd()
		}
	}

	return m, nil
}

// View renders the watchlist.
func (m WatchlistModel) View() string {
	if len(m.rows) == 0 {
		return SubtextStyle.Render("No pairs configured. Set TUI_PAIRS.")
	}

	tableWidth := m.width*2/3 - 2
	if tableWidth < 48 {
		tableWidth = 48
	}
	heatWidth := m.width - tableWidth - 4
	if heatWidth < 12 {
		heatWidth = 12
	}

	table := BorderStyle.Width(tableWidth).Render(m.renderTable())
	heat := BorderStyle.Width(heatWidth).Render(HeaderStyle.Render("  24h Heat") + "\n" + RenderHeatMap(m.rows, heatWidth))

	status := SubtextStyle.Render("  r refresh · ↑/↓ select · tab detail · q quit")
	if m.pending > 0 {
		status = m.spinner.View() + SubtextStyle.Render(" refreshing...")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, table, heat),
		status,
	)
}

// SetSize updates the model dimensions.
func (m *WatchlistModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Rows returns the current rows (for testing).
func (m WatchlistModel) Rows() []WatchRow { return m.rows }

// Selected returns the highlighted row, if any.
func (m WatchlistModel) Selected() (WatchRow, bool) {
	if m.selected < 0 || m.selected >= len(m.rows) {
		return WatchRow{}, false
	}
	return m.rows[m.selected], true
}

func (m WatchlistModel) renderTable() string {
	lines := []string{
		HeaderStyle.Render("  Watchlist"),
		SubtextStyle.Render("  Pair                Spot     24h      Trend"),
		SubtextStyle.Render("  " + strings.Repeat("─", 46)),
	}
	for i, r := range m.rows {
		prefix := "  "
		if i == m.selected {
			prefix = SelectedStyle.Render("> ")
		}
		lines = append(lines, prefix+FormatQuote(r))
	}
	return strings.Join(lines, "\n")
}

// renderDetail shows the full analysis of a single row.
func renderDetail(r WatchRow, width int) string {
	lines := []string{HeaderStyle.Render("  " + r.Pair.String())}

	if r.Spot != nil {
		lines = append(lines, fmt.Sprintf("  Spot:        %s %s", formatSpot(r.Spot.Amount), r.Spot.Currency))
	}
	if a := r.Analysis; a != nil {
		lines = append(lines,
			fmt.Sprintf("  24h change:  %+.2f (%+.2f%%)", a.PriceChange24h, a.PriceChangePercent24h),
			fmt.Sprintf("  Volatility:  %.2f%%", a.Volatility),
			fmt.Sprintf("  Trend:       %s (mean %s)", trendStyle(a.Trend).Render(string(a.Trend)), formatAmount(a.Mean)),
			fmt.Sprintf("  Data points: %d over %s", a.DataPoints, a.Period),
			"",
			"  "+RenderRangeBar(a, max(10, width/2)),
		)
	}
	if r.Err != nil {
		lines = append(lines, ErrorStyle.Render(fmt.Sprintf("  Error: %v", r.Err)))
	}
	if r.Spot == nil && r.Analysis == nil && r.Err == nil {
		lines = append(lines, SubtextStyle.Render("  Waiting for data..."))
	}
	if !r.UpdatedAt.IsZero() {
		lines = append(lines, SubtextStyle.Render("  Updated "+r.UpdatedAt.Format(time.TimeOnly)))
	}
	return strings.Join(lines, "\n")
}

func (m WatchlistModel) refreshCmd() tea.Cmd {
	cmds := make([]tea.Cmd, len(m.rows))
	for i, r := range m.rows {
		cmds[i] = m.fetchQuoteCmd(i, r.Pair)
	}
	return tea.Batch(cmds...)
}

func (m WatchlistModel) fetchQuoteCmd(index int, pair domain.CurrencyPair) tea.Cmd {
	market := m.services.Market
	return func() tea.Msg {
		if market == nil {
			return quoteMsg{index: index, err: errMarketUnavailable, at: time.Now()}
		}
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		spot, spotErr := market.SpotPrice(ctx, pair)
		analysis, analysisErr := market.AnalyzePrice(ctx, domain.AnalysisRequest{
			Pair:    pair,
			Period:  domain.AnalysisPeriod1D,
			Metrics: watchMetrics,
		})
		return quoteMsg{
			index:    index,
			spot:     spot,
			analysis: analysis,
			err:      errors.Join(spotErr, analysisErr),
			at:       time.Now(),
		}
	}
}

func (m WatchlistModel) tickCmd() tea.Cmd {
	return tea.Tick(m.services.refreshInterval(), func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}
