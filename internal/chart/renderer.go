package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"market-bridge/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	defaultChartWidth  = 960
	defaultChartHeight = 640
	maxChartPoints     = 360
)

var (
	colBackground = color.RGBA{R: 250, G: 252, B: 255, A: 255}
	colGrid       = color.RGBA{R: 225, G: 232, B: 240, A: 255}
	colBull       = color.RGBA{R: 18, G: 140, B: 126, A: 255}
	colBear       = color.RGBA{R: 210, G: 61, B: 87, A: 255}
	colFlat       = color.RGBA{R: 62, G: 106, B: 214, A: 255}
	colMean       = color.RGBA{R: 255, G: 149, B: 0, A: 255}
	colBand       = color.RGBA{R: 104, G: 122, B: 146, A: 255}
	colMarker     = color.RGBA{R: 58, G: 64, B: 90, A: 255}
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderAnalysisChart draws the price line coloured by trend with mean,
// support and resistance overlays, plus a panel of per-step returns.
func (r *Renderer) RenderAnalysisChart(series *domain.HistoricalSeries, result *domain.PriceAnalysis) (*domain.ChartImage, error) {
	if series == nil || result == nil {
		return nil, fmt.Errorf("series and analysis are required")
	}
	prices, err := parsePrices(series.Prices)
	if err != nil {
		return nil, err
	}
	if len(prices) < 2 {
		return nil, fmt.Errorf("need at least 2 prices to render chart")
	}
	prices = downsample(prices, maxChartPoints)

	img := image.NewRGBA(image.Rect(0, 0, defaultChartWidth, defaultChartHeight))
	fillRect(img, img.Bounds(), colBackground)

	mainRect := image.Rect(60, 20, defaultChartWidth-20, (defaultChartHeight*72)/100)
	auxRect := image.Rect(60, mainRect.Max.Y+16, defaultChartWidth-20, defaultChartHeight-30)
	drawGrid(img, mainRect, 8, 6)
	drawGrid(img, auxRect, 8, 3)

	minV, maxV := finiteBounds(append(prices, overlayValues(result)...))
	pad := (maxV - minV) * 0.05
	minV, maxV = minV-pad, maxV+pad

	if result.SupportLevel != nil {
		drawHorizontalValueLine(img, mainRect, *result.SupportLevel, minV, maxV, colBand)
	}
	if result.ResistanceLevel != nil {
		drawHorizontalValueLine(img, mainRect, *result.ResistanceLevel, minV, maxV, colBand)
	}
	drawHorizontalValueLine(img, mainRect, result.Mean, minV, maxV, colMean)
	drawSeries(img, mainRect, prices, minV, maxV, trendColor(result.Trend))

	markerX := mapIndexToX(len(prices)-1, len(prices), mainRect)
	drawLine(img, markerX, mainRect.Min.Y, markerX, mainRect.Max.Y, colMarker)

	drawReturnBars(img, auxRect, prices)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return &domain.ChartImage{
		MimeType: "image/png",
		Width:    defaultChartWidth,
		Height:   defaultChartHeight,
		Bytes:    buf.Bytes(),
	}, nil
}

func parsePrices(points []domain.HistoricalPricePoint) ([]float64, error) {
	out := make([]float64, 0, len(points))
	for i, p := range points {
		d, err := decimal.NewFromString(p.Price)
		if err != nil {
			return nil, fmt.Errorf("price %q at index %d: %w", p.Price, i, err)
		}
		out = append(out, d.InexactFloat64())
	}
	return out, nil
}

// downsample keeps every k-th point and always the last one.
func downsample(values []float64, limit int) []float64 {
	if len(values) <= limit {
		return values
	}
	step := int(math.Ceil(float64(len(values)) / float64(limit)))
	out := make([]float64, 0, limit+1)
	for i := 0; i < len(values); i += step {
		out = append(out, values[i])
	}
	if last := values[len(values)-1]; (len(values)-1)%step != 0 {
		out = append(out, last)
	}
	return out
}

func overlayValues(result *domain.PriceAnalysis) []float64 {
	out := []float64{result.Mean}
	if result.SupportLevel != nil {
		out = append(out, *result.SupportLevel)
	}
	if result.ResistanceLevel != nil {
		out = append(out, *result.ResistanceLevel)
	}
	return out
}

func trendColor(trend domain.Trend) color.RGBA {
	switch trend {
	case domain.TrendBullish:
		return colBull
	case domain.TrendBearish:
		return colBear
	default:
		return colFlat
	}
}

func drawReturnBars(img *image.RGBA, rect image.Rectangle, prices []float64) {
	vals := make([]float64, len(prices))
	vals[0] = math.NaN()
	for i := 1; i < len(prices); i++ {
		if prices[i-1] == 0 {
			vals[i] = math.NaN()
			continue
		}
		vals[i] = (prices[i] - prices[i-1]) / prices[i-1] * 100
	}
	minV, maxV := finiteBounds(vals)
	minV = math.Min(minV, 0)
	maxV = math.Max(maxV, 0)
	if minV == maxV {
		maxV = minV + 1
	}
	drawHorizontalValueLine(img, rect, 0, minV, maxV, colBand)
	for i, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		col := colBull
		if v < 0 {
			col = colBear
		}
		drawBar(img, rect, i, len(vals), v, minV, maxV, col)
	}
}

func drawSeries(img *image.RGBA, rect image.Rectangle, series []float64, minV, maxV float64, col color.RGBA) {
	lastX, lastY := -1, -1
	for i, v := range series {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			lastX, lastY = -1, -1
			continue
		}
		x := mapIndexToX(i, len(series), rect)
		y := mapValueToY(v, minV, maxV, rect)
		if lastX >= 0 {
			drawLine(img, lastX, lastY, x, y, col)
		}
		lastX, lastY = x, y
	}
}

func drawBar(img *image.RGBA, rect image.Rectangle, idx, total int, v, minV, maxV float64, col color.RGBA) {
	barW := max(1, (rect.Dx()-10)/total-1)
	zeroY := mapValueToY(0, minV, maxV, rect)
	x := mapIndexToX(idx, total, rect)
	y := mapValueToY(v, minV, maxV, rect)
	fillRect(img, image.Rect(x-barW/2, min(y, zeroY), x+barW/2+1, max(y, zeroY)+1), col)
}

func drawGrid(img *image.RGBA, rect image.Rectangle, verticalLines, horizontalLines int) {
	for i := 0; i <= verticalLines; i++ {
		x := rect.Min.X + (rect.Dx()*i)/max(1, verticalLines)
		drawLine(img, x, rect.Min.Y, x, rect.Max.Y, colGrid)
	}
	for i := 0; i <= horizontalLines; i++ {
		y := rect.Min.Y + (rect.Dy()*i)/max(1, horizontalLines)
		drawLine(img, rect.Min.X, y, rect.Max.X, y, colGrid)
	}
}

func drawHorizontalValueLine(img *image.RGBA, rect image.Rectangle, value, minV, maxV float64, col color.RGBA) {
	y := mapValueToY(value, minV, maxV, rect)
	drawLine(img, rect.Min.X, y, rect.Max.X, y, col)
}

func mapIndexToX(idx, total int, rect image.Rectangle) int {
	if total <= 1 {
		return rect.Min.X
	}
	return rect.Min.X + (idx*(rect.Dx()-1))/(total-1)
}

func mapValueToY(value, minV, maxV float64, rect image.Rectangle) int {
	if maxV <= minV {
		return rect.Max.Y
	}
	ratio := (value - minV) / (maxV - minV)
	ratio = math.Max(0, math.Min(1, ratio))
	return rect.Max.Y - int(ratio*float64(rect.Dy()-1))
}

func finiteBounds(values []float64) (float64, float64) {
	minV := math.Inf(1)
	maxV := math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	if math.IsInf(minV, 1) || math.IsInf(maxV, -1) {
		return 0, 1
	}
	if minV == maxV {
		return minV, maxV + 1
	}
	return minV, maxV
}

func fillRect(img *image.RGBA, rect image.Rectangle, col color.RGBA) {
	r := rect.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, col)
		}
	}
}

// drawLine is Bresenham's algorithm clipped to the image bounds.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		if image.Pt(x0, y0).In(img.Bounds()) {
			img.SetRGBA(x0, y0, col)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
