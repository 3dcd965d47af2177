package tui

import (
	"fmt"
	"math"
	"strings"

	"market-bridge/internal/domain"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// FormatQuote renders a watchlist row as a single line.
func FormatQuote(r WatchRow) string {
	if r.Err != nil && r.Spot == nil && r.Analysis == nil {
		return fmt.Sprintf("%-10s %s", r.Pair, ErrorStyle.Render("unavailable"))
	}

	price := "-"
	if r.Spot != nil {
		price = formatSpot(r.Spot.Amount)
	} else if r.Analysis != nil {
		price = formatAmount(r.Analysis.CurrentPrice)
	}

	change := SubtextStyle.Render("     -")
	trend := SubtextStyle.Render("-")
	if a := r.Analysis; a != nil {
		changeStyle := PriceZeroStyle
		if a.PriceChangePercent24h > 0 {
			changeStyle = PriceUpStyle
		} else if a.PriceChangePercent24h < 0 {
			changeStyle = PriceDownStyle
		}
		change = changeStyle.Render(fmt.Sprintf("%+6.2f%%", a.PriceChangePercent24h))
		trend = trendStyle(a.Trend).Render(strings.ToUpper(string(a.Trend)))
	}

	return fmt.Sprintf("%-10s %14s  %s  %s", r.Pair, price, change, trend)
}

// RenderHeatMap renders a colored grid showing 24h change for each pair.
func RenderHeatMap(rows []WatchRow, width int) string {
	if len(rows) == 0 {
		return SubtextStyle.Render("No pairs configured")
	}

	cellWidth := 10
	cols := width / cellWidth
	if cols < 1 {
		cols = 1
	}

	var lines []string
	var line []string
	for i, r := range rows {
		bg := HeatNeutral
		if r.Analysis != nil {
			pct := r.Analysis.PriceChangePercent24h
			if pct > 0 {
				bg = heatColorScale(pct, 10, HeatGreen)
			} else if pct < 0 {
				bg = heatColorScale(-pct, 10, HeatRed)
			}
		}

		cell := lipgloss.NewStyle().
			Background(bg).
			Foreground(lipgloss.Color("#000000")).
			Bold(true).
			Width(cellWidth - 1).
			Align(lipgloss.Center).
			Render(r.Pair.Base)

		line = append(line, cell)
		if (i+1)%cols == 0 || i == len(rows)-1 {
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, line...))
			line = nil
		}
	}

	return strings.Join(lines, "\n")
}

// RenderRangeBar places the current price between support and resistance.
func RenderRangeBar(a *domain.PriceAnalysis, barWidth int) string {
	if a == nil || a.SupportLevel == nil || a.ResistanceLevel == nil {
		return SubtextStyle.Render("No support/resistance data")
	}
	if barWidth <= 0 {
		barWidth = 20
	}
	support, resistance := *a.SupportLevel, *a.ResistanceLevel

	pos := 0
	if span := resistance - support; span > 0 {
		pos = int(math.Round((a.CurrentPrice - support) / span * float64(barWidth-1)))
	}
	pos = max(0, min(barWidth-1, pos))

	bar := SubtextStyle.Render(strings.Repeat("─", pos)) +
		RangeMarkerStyle.Render("●") +
		SubtextStyle.Render(strings.Repeat("─", barWidth-1-pos))
	return fmt.Sprintf("%s %s %s", formatAmount(support), bar, formatAmount(resistance))
}

func trendStyle(t domain.Trend) lipgloss.Style {
	switch t {
	case domain.TrendBullish:
		return TrendBullishStyle
	case domain.TrendBearish:
		return TrendBearishStyle
	default:
		return TrendSidewaysStyle
	}
}

// heatColorScale produces a color scaled by magnitude.
func heatColorScale(magnitude, maxMagnitude float64, baseColor lipgloss.Color) lipgloss.Color {
	intensity := magnitude / maxMagnitude
	if intensity > 1 {
		intensity = 1
	}
	if intensity < 0.01 {
		return HeatNeutral
	}
	return baseColor
}

func formatSpot(amount string) string {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return amount
	}
	return formatAmount(d.InexactFloat64())
}

func formatAmount(v float64) string {
	if v >= 1000 {
		return addCommas(fmt.Sprintf("%.0f", v))
	}
	if v >= 1 {
		return fmt.Sprintf("%.2f", v)
	}
	return fmt.Sprintf("%.4f", v)
}

func addCommas(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	var result strings.Builder
	for i, ch := range s {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteByte(',')
		}
		result.WriteRune(ch)
	}
	return result.String()
}
