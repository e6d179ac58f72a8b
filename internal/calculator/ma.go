package calculator

import (
	"errors"

	"StockAdvisor/internal/model"
)

// CalculateSMA computes the simple moving average of the most recent `period` prices.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// CalculateMA20 returns the 20-period simple moving average of closes.
func CalculateMA20(bars []model.OHLCV) (float64, error) {
	return CalculateSMA(extractCloses(bars), 20)
}

// CalculateEMA returns the exponential moving average series, seeded with the
// SMA of the first `period` values. Entries before period-1 are zero.
func CalculateEMA(data []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	if len(data) < period {
		return nil, errors.New("not enough data for EMA calculation")
	}
	ema := make([]float64, len(data))
	k := 2.0 / (float64(period) + 1.0)

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += data[i]
	}
	ema[period-1] = sum / float64(period)

	for i := period; i < len(data); i++ {
		ema[i] = data[i]*k + ema[i-1]*(1-k)
	}
	return ema, nil
}

func extractCloses(bars []model.OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
