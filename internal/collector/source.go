package collector

import "StockAdvisor/internal/model"

// BarSource supplies the bar history the indicators are computed from.
type BarSource interface {
	LoadBars() ([]model.OHLCV, error)
	Name() string
}
