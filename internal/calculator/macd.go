package calculator

import (
	"errors"
	"fmt"

	"StockAdvisor/internal/model"
)

// Standard MACD parameters.
const (
	MACDFast   = 12
	MACDSlow   = 26
	MACDSignal = 9
)

// CalculateMACD returns the latest MACD line (EMA fast - EMA slow) and its
// signal line (EMA of the MACD line). Requires slow+signal-1 bars.
func CalculateMACD(bars []model.OHLCV, fast, slow, signal int) (macd, signalLine float64, err error) {
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return 0, 0, errors.New("periods must be positive")
	}
	if fast >= slow {
		return 0, 0, errors.New("fast period must be shorter than slow period")
	}
	need := slow + signal - 1
	if len(bars) < need {
		return 0, 0, fmt.Errorf("not enough data for MACD calculation: have %d bars, need %d", len(bars), need)
	}

	closes := extractCloses(bars)
	fastEMA, err := CalculateEMA(closes, fast)
	if err != nil {
		return 0, 0, fmt.Errorf("fast EMA: %w", err)
	}
	slowEMA, err := CalculateEMA(closes, slow)
	if err != nil {
		return 0, 0, fmt.Errorf("slow EMA: %w", err)
	}

	// MACD line is defined from the first bar the slow EMA exists.
	line := make([]float64, 0, len(closes)-slow+1)
	for i := slow - 1; i < len(closes); i++ {
		line = append(line, fastEMA[i]-slowEMA[i])
	}
	sig, err := CalculateEMA(line, signal)
	if err != nil {
		return 0, 0, fmt.Errorf("signal EMA: %w", err)
	}
	return line[len(line)-1], sig[len(sig)-1], nil
}

// LatestVolumes returns the volume of the last bar and the bar before it.
func LatestVolumes(bars []model.OHLCV) (current, previous int64, err error) {
	if len(bars) < 2 {
		return 0, 0, errors.New("need at least 2 bars for volume comparison")
	}
	n := len(bars)
	return bars[n-1].Volume, bars[n-2].Volume, nil
}
