package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"StockAdvisor/internal/advisor"
	"StockAdvisor/internal/collector"
	"StockAdvisor/internal/model"
	"StockAdvisor/internal/report"
)

var analyzeOpts struct {
	ticker         string
	purchase       string
	current        string
	ma20           float64
	rsi            float64
	macd           float64
	macdSignal     float64
	volume         int64
	previousVolume int64
	bars           string
	format         string
	save           string
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score indicators and recommend a position action",
	Long: `Score the indicator snapshot and resolve the recommended action for a
position bought at --purchase and now trading at --current.

Indicators come from the flags, or are computed from a daily bar file:
  advisor analyze --ticker IONQ --purchase 15 --bars ionq.csv
  advisor analyze --format json --save last.json`,
	RunE: runAnalyze,
}

func init() {
	d := advisor.DefaultRequest()
	f := analyzeCmd.Flags()
	f.StringVar(&analyzeOpts.ticker, "ticker", d.Ticker, "Ticker symbol")
	f.StringVar(&analyzeOpts.purchase, "purchase", d.PurchasePrice.StringFixed(2), "Average purchase price")
	f.StringVar(&analyzeOpts.current, "current", d.CurrentPrice.StringFixed(2), "Current price")
	f.Float64Var(&analyzeOpts.ma20, "ma20", d.MA20, "20-day moving average")
	f.Float64Var(&analyzeOpts.rsi, "rsi", d.RSI, "RSI (0-100)")
	f.Float64Var(&analyzeOpts.macd, "macd", d.MACD, "MACD line")
	f.Float64Var(&analyzeOpts.macdSignal, "macd-signal", d.MACDSignal, "MACD signal line")
	f.Int64Var(&analyzeOpts.volume, "volume", d.Volume, "Volume of the latest period")
	f.Int64Var(&analyzeOpts.previousVolume, "prev-volume", d.PreviousVolume, "Volume of the prior period")
	f.StringVar(&analyzeOpts.bars, "bars", "", "CSV of daily bars (date,open,high,low,close,volume) to compute indicators from")
	f.StringVar(&analyzeOpts.format, "format", "text", "Output format: text, json")
	f.StringVar(&analyzeOpts.save, "save", "", "Write the analysis as JSON to this file")
}

func buildRequest(cmd *cobra.Command) (advisor.Request, error) {
	o := analyzeOpts
	purchase, err := decimal.NewFromString(o.purchase)
	if err != nil {
		return advisor.Request{}, fmt.Errorf("%w: purchase price %q", advisor.ErrInvalidInput, o.purchase)
	}
	current, err := decimal.NewFromString(o.current)
	if err != nil {
		return advisor.Request{}, fmt.Errorf("%w: current price %q", advisor.ErrInvalidInput, o.current)
	}

	req := advisor.Request{
		Ticker:         o.ticker,
		PurchasePrice:  purchase,
		CurrentPrice:   current,
		MA20:           o.ma20,
		RSI:            o.rsi,
		MACD:           o.macd,
		MACDSignal:     o.macdSignal,
		Volume:         o.volume,
		PreviousVolume: o.previousVolume,
	}
	if o.bars == "" {
		return req, nil
	}

	price := 0.0
	if cmd.Flags().Changed("current") {
		price = current.InexactFloat64()
	}
	snap, err := collector.NewCollector(collector.NewCSVSource(o.bars)).Collect(price)
	if err != nil {
		return advisor.Request{}, err
	}
	log.Printf("[INFO] indicators computed from %s", o.bars)
	if price == 0 {
		req.CurrentPrice = decimal.NewFromFloat(snap.CurrentPrice)
	}
	req.MA20 = snap.MA20
	req.RSI = snap.RSI
	req.MACD = snap.MACD
	req.MACDSignal = snap.MACDSignal
	req.Volume = snap.Volume
	req.PreviousVolume = snap.PreviousVolume
	return req, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	req, err := buildRequest(cmd)
	if err != nil {
		return err
	}
	a, err := advisor.New().Analyze(req)
	if err != nil {
		return err
	}

	if analyzeOpts.save != "" {
		if err := saveAnalysis(analyzeOpts.save, a); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	switch strings.ToLower(analyzeOpts.format) {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	case "text":
		fmt.Fprintln(out, report.FormatInputs(a))
		fmt.Fprint(out, report.FormatResult(a, cfg.Report.GaugeWidth))
		return nil
	default:
		return fmt.Errorf("unknown format %q", analyzeOpts.format)
	}
}

func saveAnalysis(path string, a *model.Analysis) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("encode analysis: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write analysis: %w", err)
	}
	log.Printf("[INFO] analysis saved to %s", path)
	return nil
}

// loadAnalysis reads an analysis written by --save. An empty path yields nil.
func loadAnalysis(path string) (*model.Analysis, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read analysis: %w", err)
	}
	var a model.Analysis
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parse analysis: %w", err)
	}
	return &a, nil
}
