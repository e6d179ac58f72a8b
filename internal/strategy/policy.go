package strategy

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"StockAdvisor/internal/model"
)

var (
	hundred = decimal.NewFromInt(100)

	rateTakeProfit = decimal.NewFromInt(10)
	rateHoldZone   = decimal.NewFromInt(7)
	rateEarlyGain  = decimal.RequireFromString("4.5")
	rateStopLoss   = decimal.NewFromInt(-10)
	rateFullCut    = decimal.NewFromInt(-20)
)

// anyProbability disables the probability condition of a row.
const anyProbability = math.MinInt

// actionRule is one row of the decision table. A row matches when the
// profit rate and probability both satisfy it.
type actionRule struct {
	Match     func(rate decimal.Decimal, prob int) bool
	Code      model.ActionCode
	Label     string
	Rationale func(rate string, prob int) string
}

// actionRules is evaluated top to bottom, first match wins.
// Bands: >=10, [7,10), [4.5,7), <=-10; anything else falls through to defaultAction.
var actionRules = []actionRule{
	{
		Match: rateAtLeast(rateTakeProfit, 70),
		Code:  model.ActionHold,
		Label: "strong hold",
		Rationale: func(rate string, p int) string {
			return fmt.Sprintf("Profit rate is %s%%, but rise probability is very high at %d points; further upside expected.", rate, p)
		},
	},
	{
		Match: rateAtLeast(rateTakeProfit, anyProbability),
		Code:  model.ActionSell,
		Label: "sell all (take profit)",
		Rationale: func(rate string, _ int) string {
			return fmt.Sprintf("Target profit rate %s%% reached and upward momentum is slowing; lock in the gain.", rate)
		},
	},
	{
		Match: rateAtLeast(rateHoldZone, 60),
		Code:  model.ActionHold,
		Label: "continue holding",
		Rationale: func(rate string, p int) string {
			return fmt.Sprintf("Profit rate entered %s%% and the uptrend (%d points) is intact; keep holding.", rate, p)
		},
	},
	{
		Match: rateAtLeast(rateHoldZone, anyProbability),
		Code:  model.ActionSellPart,
		Label: "partial sell (20–30%)",
		Rationale: func(rate string, _ int) string {
			return fmt.Sprintf("Profit rate %s%% reached. Realize part of the gain to manage risk.", rate)
		},
	},
	{
		Match: rateAtLeast(rateEarlyGain, 60),
		Code:  model.ActionHold,
		Label: "watch (holding)",
		Rationale: func(rate string, _ int) string {
			return fmt.Sprintf("Early profit zone (%s%%) with rising signals present.", rate)
		},
	},
	{
		Match: rateAtLeast(rateEarlyGain, anyProbability),
		Code:  model.ActionSellPart,
		Label: "reduce position",
		Rationale: func(rate string, _ int) string {
			return fmt.Sprintf("Profit rate %s%%. Upward momentum is weak; reducing the position is recommended.", rate)
		},
	},
	{
		Match: rateAtMost(rateStopLoss, 65),
		Code:  model.ActionHold,
		Label: "defer stop-loss",
		Rationale: func(rate string, p int) string {
			return fmt.Sprintf("Currently at a %s%% loss, but the technical rebound probability (%d points) is high; wait.", rate, p)
		},
	},
	{
		Match:     rateAtMost(rateFullCut, anyProbability),
		Code:      model.ActionCut,
		Label:     "full stop-loss",
		Rationale: cutRationale,
	},
	{
		Match:     rateAtMost(rateStopLoss, anyProbability),
		Code:      model.ActionCut,
		Label:     "partial stop-loss",
		Rationale: cutRationale,
	},
}

// rateAtLeast matches rate >= floor with probability >= minProb.
func rateAtLeast(floor decimal.Decimal, minProb int) func(decimal.Decimal, int) bool {
	return func(rate decimal.Decimal, prob int) bool {
		return rate.GreaterThanOrEqual(floor) && prob >= minProb
	}
}

// rateAtMost matches rate <= ceiling with probability >= minProb.
func rateAtMost(ceiling decimal.Decimal, minProb int) func(decimal.Decimal, int) bool {
	return func(rate decimal.Decimal, prob int) bool {
		return rate.LessThanOrEqual(ceiling) && prob >= minProb
	}
}

// defaultAction applies when no band matched, regardless of probability.
var defaultAction = actionRule{
	Code:  model.ActionHold,
	Label: "watch / no signal",
	Rationale: func(rate string, _ int) string {
		return fmt.Sprintf("Current move (%s%%) is within the threshold and there is no notable signal.", rate)
	},
}

func cutRationale(rate string, _ int) string {
	return fmt.Sprintf("Loss widened to %s%% with no rebound momentum; cut the risk.", rate)
}

// ProfitRate returns (current - purchase) / purchase * 100.
// purchase must be positive; callers reject anything else before calling.
func ProfitRate(purchase, current decimal.Decimal) decimal.Decimal {
	return current.Sub(purchase).Div(purchase).Mul(hundred)
}

// Decide maps a position and its rise probability to a recommended action.
func Decide(purchase, current decimal.Decimal, riseProbability int) model.ActionDecision {
	return DecideRate(ProfitRate(purchase, current), riseProbability)
}

// DecideRate runs the decision table against an already computed profit rate.
func DecideRate(rate decimal.Decimal, riseProbability int) model.ActionDecision {
	rule := defaultAction
	for _, r := range actionRules {
		if r.Match(rate, riseProbability) {
			rule = r
			break
		}
	}
	return model.ActionDecision{
		Code:       rule.Code,
		Label:      rule.Label,
		Rationale:  rule.Rationale(rate.StringFixed(2), riseProbability),
		ProfitRate: rate,
	}
}
