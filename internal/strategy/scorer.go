package strategy

import "StockAdvisor/internal/model"

// Reason labels, one per scoring rule outcome.
const (
	ReasonMABreakout    = "20-day MA breakout (+30)"
	ReasonRSIOversold   = "RSI oversold buy zone (+30)"
	ReasonRSIOverbought = "RSI overbought zone (−10)"
	ReasonMACDGolden    = "MACD golden cross (+20)"
	ReasonVolumeUp      = "Volume increase vs. prior period (+20)"
)

// scoringRule inspects the snapshot and returns its contribution.
// fired is false when the rule adds nothing and appends no reason.
type scoringRule func(s model.IndicatorSnapshot) (points int, reason string, fired bool)

// rules is the fixed evaluation order. Reasons are appended in this order.
var rules = []scoringRule{
	scoreTrend,
	scoreRSI,
	scoreMomentum,
	scoreVolume,
}

// scoreTrend rewards price above the 20-period moving average.
func scoreTrend(s model.IndicatorSnapshot) (int, string, bool) {
	if s.CurrentPrice > s.MA20 {
		return 30, ReasonMABreakout, true
	}
	return 0, "", false
}

// scoreRSI is a single 3-way branch so oversold and overbought can never both fire.
// Bounds: 30 and 45 inclusive on the oversold side, 70 exclusive on the overbought side.
func scoreRSI(s model.IndicatorSnapshot) (int, string, bool) {
	switch {
	case s.RSI >= 30 && s.RSI <= 45:
		return 30, ReasonRSIOversold, true
	case s.RSI > 70:
		return -10, ReasonRSIOverbought, true
	default:
		return 0, "", false
	}
}

func scoreMomentum(s model.IndicatorSnapshot) (int, string, bool) {
	if s.MACD > s.MACDSignal {
		return 20, ReasonMACDGolden, true
	}
	return 0, "", false
}

func scoreVolume(s model.IndicatorSnapshot) (int, string, bool) {
	if s.Volume > s.PreviousVolume {
		return 20, ReasonVolumeUp, true
	}
	return 0, "", false
}

// Score computes the rise probability of the snapshot.
// The rule sum is clamped to [0, 100]; no input is rejected.
func Score(s model.IndicatorSnapshot) model.ScoreResult {
	total := 0
	reasons := make([]string, 0, len(rules))
	for _, rule := range rules {
		points, reason, fired := rule(s)
		if !fired {
			continue
		}
		total += points
		reasons = append(reasons, reason)
	}
	return model.ScoreResult{
		Probability: clamp(total, 0, 100),
		RawScore:    total,
		Reasons:     reasons,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
