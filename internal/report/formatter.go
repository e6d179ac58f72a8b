package report

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"StockAdvisor/internal/model"
)

// Zone classifies a probability the way the dashboard dial colours it.
type Zone string

const (
	ZoneLow     Zone = "low"
	ZoneNeutral Zone = "neutral"
	ZoneHigh    Zone = "high"
)

// GaugeZone returns the band a probability falls in: [0,50) low, [50,70) neutral, [70,100] high.
func GaugeZone(prob int) Zone {
	switch {
	case prob >= 70:
		return ZoneHigh
	case prob >= 50:
		return ZoneNeutral
	default:
		return ZoneLow
	}
}

// Gauge renders the probability as a fixed-width text bar.
func Gauge(prob, width int) string {
	if width <= 0 {
		width = 20
	}
	p := prob
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	filled := p * width / 100
	return fmt.Sprintf("[%s%s] %3d/100 (%s)",
		strings.Repeat("#", filled), strings.Repeat("-", width-filled), prob, GaugeZone(prob))
}

// ProfitLine renders the profit/loss banner.
func ProfitLine(rate decimal.Decimal) string {
	if rate.IsPositive() {
		return fmt.Sprintf("▲ %s%% in profit", rate.StringFixed(2))
	}
	return fmt.Sprintf("▼ %s%% at a loss", rate.StringFixed(2))
}

// FormatResult formats the dashboard view of one analysis.
func FormatResult(a *model.Analysis, gaugeWidth int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Rise probability\n%s\n\n", Gauge(a.Score.Probability, gaugeWidth)))
	b.WriteString(fmt.Sprintf("Verdict: %s [%s]\n", a.Decision.Label, a.Decision.Code))
	b.WriteString(ProfitLine(a.ProfitRate) + "\n\n")
	b.WriteString(fmt.Sprintf("Details: %s\n", a.Decision.Rationale))

	if len(a.Score.Reasons) > 0 {
		b.WriteString("\nSignals:\n")
		for _, r := range a.Score.Reasons {
			b.WriteString(fmt.Sprintf("  - %s\n", r))
		}
	}
	return b.String()
}

// FormatInputs summarises the indicator inputs of an analysis.
func FormatInputs(a *model.Analysis) string {
	s := a.Snapshot
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s | purchase %s | current %s\n", a.Ticker, a.PurchasePrice.StringFixed(2), a.CurrentPrice.StringFixed(2)))
	ma20Dev := 0.0
	if s.MA20 > 0 {
		ma20Dev = (s.CurrentPrice - s.MA20) / s.MA20 * 100
	}
	b.WriteString(fmt.Sprintf("MA20: %.2f (deviation %+.1f%%)\n", s.MA20, ma20Dev))
	b.WriteString(fmt.Sprintf("RSI: %.0f | MACD: %.3f / signal %.3f\n", s.RSI, s.MACD, s.MACDSignal))
	b.WriteString(fmt.Sprintf("Volume: %s (prior %s)\n", humanize.Comma(s.Volume), humanize.Comma(s.PreviousVolume)))
	return b.String()
}

// FormatAnalysisReport formats the plain-text automated analysis report.
func FormatAnalysisReport(a *model.Analysis) string {
	var b strings.Builder
	b.WriteString("[ Automated Analysis Report ]\n")
	b.WriteString(fmt.Sprintf("Date: %s | Ticker: %s\n", a.Date.Format("2006-01-02"), a.Ticker))
	b.WriteString(fmt.Sprintf("Current price: %s (profit rate: %s%%)\n", a.CurrentPrice.String(), a.ProfitRate.StringFixed(2)))
	b.WriteString(fmt.Sprintf("Rise probability: %d points\n", a.Score.Probability))
	b.WriteString(fmt.Sprintf("Verdict: %s\n", a.Decision.Label))
	return b.String()
}

// NoAnalysis is shown by the report view before anything was analysed.
const NoAnalysis = "No analysis result yet."
