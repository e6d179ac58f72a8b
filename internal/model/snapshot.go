package model

// IndicatorSnapshot is the set of technical indicators the scorer evaluates.
// It is built by the caller, consumed by one scoring call and discarded.
type IndicatorSnapshot struct {
	CurrentPrice   float64 `json:"current_price" yaml:"current_price"`
	MA20           float64 `json:"moving_average_20" yaml:"moving_average_20"`
	RSI            float64 `json:"rsi" yaml:"rsi"`
	MACD           float64 `json:"macd" yaml:"macd"`
	MACDSignal     float64 `json:"macd_signal" yaml:"macd_signal"`
	Volume         int64   `json:"volume" yaml:"volume"`
	PreviousVolume int64   `json:"previous_volume" yaml:"previous_volume"`
}

// ScoreResult is the output of the rise-probability scorer.
type ScoreResult struct {
	Probability int      `json:"probability"` // 0 ~ 100
	RawScore    int      `json:"raw_score"`   // unclamped rule sum
	Reasons     []string `json:"reasons"`
}
