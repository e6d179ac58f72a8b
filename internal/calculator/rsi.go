package calculator

import (
	"errors"

	"StockAdvisor/internal/model"
)

// CalculateRSI computes the Wilder-smoothed RSI over the given period.
// Fewer than period+1 bars, or a series that never moves, yields the neutral 50.
func CalculateRSI(bars []model.OHLCV, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(bars) < period+1 {
		return 50, nil
	}

	gains, losses := priceMoves(extractCloses(bars))
	up := wilderAverage(gains, period)
	down := wilderAverage(losses, period)

	switch {
	case up == 0 && down == 0:
		return 50, nil
	case down == 0:
		return 100, nil
	}
	return 100 - 100/(1+up/down), nil
}

// priceMoves splits close-to-close changes into gains and losses, both non-negative.
func priceMoves(closes []float64) (gains, losses []float64) {
	gains = make([]float64, len(closes)-1)
	losses = make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if d := closes[i] - closes[i-1]; d > 0 {
			gains[i-1] = d
		} else {
			losses[i-1] = -d
		}
	}
	return gains, losses
}

// wilderAverage seeds with the mean of the first period values, then applies
// Wilder smoothing (alpha = 1/period) over the rest.
func wilderAverage(values []float64, period int) float64 {
	var avg float64
	for _, v := range values[:period] {
		avg += v
	}
	avg /= float64(period)
	for _, v := range values[period:] {
		avg += (v - avg) / float64(period)
	}
	return avg
}
