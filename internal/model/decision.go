package model

import "github.com/shopspring/decimal"

// ActionCode is the recommended portfolio action.
type ActionCode string

const (
	ActionHold     ActionCode = "HOLD"
	ActionSell     ActionCode = "SELL"
	ActionSellPart ActionCode = "SELL_PART"
	ActionCut      ActionCode = "CUT"
)

// ActionDecision is the output of the action policy.
type ActionDecision struct {
	Code       ActionCode      `json:"action_code"`
	Label      string          `json:"action_label"`
	Rationale  string          `json:"rationale"`
	ProfitRate decimal.Decimal `json:"profit_rate"`
}
