package collector

import (
	"errors"
	"fmt"
	"log"
	"time"

	"StockAdvisor/internal/calculator"
	"StockAdvisor/internal/model"
)

// StaticSource returns fixed bars, for development and testing.
type StaticSource struct {
	Price float64
	Bars  []model.OHLCV
	Count int
}

func (s *StaticSource) Name() string { return "static" }

func (s *StaticSource) LoadBars() ([]model.OHLCV, error) {
	if s.Bars != nil {
		return s.Bars, nil
	}
	return generateBars(s.Price, s.Count), nil
}

func generateBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000 + int64(i)*1000,
		}
	}
	return bars
}

// Collector turns a bar history into an indicator snapshot.
type Collector struct {
	Source BarSource
}

// NewCollector creates a new Collector.
func NewCollector(source BarSource) *Collector {
	return &Collector{Source: source}
}

// Collect loads bars and computes the snapshot. currentPrice overrides the
// last close when positive. A short history degrades single indicators to
// neutral values instead of failing.
func (c *Collector) Collect(currentPrice float64) (*model.IndicatorSnapshot, error) {
	bars, err := c.Source.LoadBars()
	if err != nil {
		return nil, fmt.Errorf("load bars from %s: %w", c.Source.Name(), err)
	}
	if len(bars) == 0 {
		return nil, errors.New("no bars available")
	}
	if currentPrice <= 0 {
		currentPrice = bars[len(bars)-1].Close
	}

	snap := &model.IndicatorSnapshot{CurrentPrice: currentPrice}

	if ma, err := calculator.CalculateMA20(bars); err != nil {
		log.Printf("[WARN] MA20 calculation failed: %v, using current price", err)
		snap.MA20 = currentPrice
	} else {
		snap.MA20 = ma
	}

	if rsi, err := calculator.CalculateRSI(bars, 14); err != nil {
		log.Printf("[WARN] RSI calculation failed: %v, defaulting to 50", err)
		snap.RSI = 50
	} else {
		snap.RSI = rsi
	}

	if macd, sig, err := calculator.CalculateMACD(bars, calculator.MACDFast, calculator.MACDSlow, calculator.MACDSignal); err != nil {
		log.Printf("[WARN] MACD calculation failed: %v, defaulting to 0", err)
	} else {
		snap.MACD = macd
		snap.MACDSignal = sig
	}

	if cur, prev, err := calculator.LatestVolumes(bars); err != nil {
		log.Printf("[WARN] volume comparison failed: %v, treating as flat", err)
		snap.Volume = bars[len(bars)-1].Volume
		snap.PreviousVolume = snap.Volume
	} else {
		snap.Volume = cur
		snap.PreviousVolume = prev
	}

	return snap, nil
}
