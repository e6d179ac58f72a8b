package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Analysis is one evaluated request: the inputs, the score and the decision.
type Analysis struct {
	Ticker        string            `json:"ticker"`
	Date          time.Time         `json:"date"`
	PurchasePrice decimal.Decimal   `json:"purchase_price"`
	CurrentPrice  decimal.Decimal   `json:"current_price"`
	ProfitRate    decimal.Decimal   `json:"profit_rate"`
	Snapshot      IndicatorSnapshot `json:"snapshot"`
	Score         ScoreResult       `json:"score"`
	Decision      ActionDecision    `json:"decision"`
}
