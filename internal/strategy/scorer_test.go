package strategy

import (
	"reflect"
	"testing"

	"StockAdvisor/internal/model"
)

// neutral fires no rule at all.
func neutral() model.IndicatorSnapshot {
	return model.IndicatorSnapshot{
		CurrentPrice:   10,
		MA20:           10,
		RSI:            50,
		MACD:           0.1,
		MACDSignal:     0.2,
		Volume:         100,
		PreviousVolume: 100,
	}
}

func TestScore_AllRulesFire(t *testing.T) {
	s := model.IndicatorSnapshot{
		CurrentPrice:   16.5,
		MA20:           15.8,
		RSI:            45,
		MACD:           0.5,
		MACDSignal:     0.3,
		Volume:         1_500_000,
		PreviousVolume: 1_200_000,
	}
	res := Score(s)
	if res.Probability != 100 {
		t.Errorf("expected probability 100, got %d", res.Probability)
	}
	if res.RawScore != 100 {
		t.Errorf("expected raw score 100, got %d", res.RawScore)
	}
	want := []string{ReasonMABreakout, ReasonRSIOversold, ReasonMACDGolden, ReasonVolumeUp}
	if !reflect.DeepEqual(res.Reasons, want) {
		t.Errorf("reasons out of order:\n got  %q\n want %q", res.Reasons, want)
	}
}

func TestScore_NothingFires(t *testing.T) {
	res := Score(neutral())
	if res.Probability != 0 {
		t.Errorf("expected probability 0, got %d", res.Probability)
	}
	if len(res.Reasons) != 0 {
		t.Errorf("expected no reasons, got %q", res.Reasons)
	}
}

func TestScore_ClampsNegativeSum(t *testing.T) {
	s := neutral()
	s.RSI = 85
	res := Score(s)
	if res.RawScore != -10 {
		t.Errorf("expected raw score -10, got %d", res.RawScore)
	}
	if res.Probability != 0 {
		t.Errorf("expected clamp to 0, got %d", res.Probability)
	}
	if len(res.Reasons) != 1 || res.Reasons[0] != ReasonRSIOverbought {
		t.Errorf("expected overbought reason only, got %q", res.Reasons)
	}
}

func TestScore_RSIBoundaries(t *testing.T) {
	tests := []struct {
		rsi    float64
		points int
		reason string
	}{
		{0, 0, ""},
		{29.9, 0, ""},
		{30, 30, ReasonRSIOversold},
		{37, 30, ReasonRSIOversold},
		{45, 30, ReasonRSIOversold},
		{45.1, 0, ""},
		{60, 0, ""},
		{70, 0, ""},
		{70.1, -10, ReasonRSIOverbought},
		{100, -10, ReasonRSIOverbought},
		{150, -10, ReasonRSIOverbought},
		{-5, 0, ""},
	}
	for _, tt := range tests {
		s := neutral()
		s.RSI = tt.rsi
		s.CurrentPrice = 11 // +30 keeps the overbought penalty visible above the clamp
		res := Score(s)
		if res.RawScore != 30+tt.points {
			t.Errorf("rsi %.1f: expected raw %d, got %d", tt.rsi, 30+tt.points, res.RawScore)
		}
		var rsiReasons []string
		for _, r := range res.Reasons {
			if r == ReasonRSIOversold || r == ReasonRSIOverbought {
				rsiReasons = append(rsiReasons, r)
			}
		}
		switch {
		case tt.reason == "" && len(rsiReasons) != 0:
			t.Errorf("rsi %.1f: expected no RSI reason, got %q", tt.rsi, rsiReasons)
		case tt.reason != "" && (len(rsiReasons) != 1 || rsiReasons[0] != tt.reason):
			t.Errorf("rsi %.1f: expected %q, got %q", tt.rsi, tt.reason, rsiReasons)
		}
	}
}

func TestScore_StrictComparisons(t *testing.T) {
	s := neutral()
	s.MACD = s.MACDSignal
	s.Volume = s.PreviousVolume
	s.CurrentPrice = s.MA20
	if res := Score(s); res.RawScore != 0 {
		t.Errorf("equal values must not fire, got raw %d (%q)", res.RawScore, res.Reasons)
	}
}

func TestScore_InvariantsOverGrid(t *testing.T) {
	prices := []float64{0, 5, 10, 15}
	rsis := []float64{-10, 0, 29, 30, 45, 46, 70, 71, 100, 120}
	macds := []float64{-1, 0, 1}
	vols := []int64{-5, 0, 100, 200}

	for _, p := range prices {
		for _, rsi := range rsis {
			for _, m := range macds {
				for _, v := range vols {
					s := model.IndicatorSnapshot{
						CurrentPrice: p, MA20: 10, RSI: rsi,
						MACD: m, MACDSignal: 0,
						Volume: v, PreviousVolume: 100,
					}
					res := Score(s)
					if res.Probability < 0 || res.Probability > 100 {
						t.Fatalf("probability out of range for %+v: %d", s, res.Probability)
					}
					if len(res.Reasons) > 4 {
						t.Fatalf("too many reasons for %+v: %q", s, res.Reasons)
					}
					hasLow, hasHigh := false, false
					for _, r := range res.Reasons {
						hasLow = hasLow || r == ReasonRSIOversold
						hasHigh = hasHigh || r == ReasonRSIOverbought
					}
					if hasLow && hasHigh {
						t.Fatalf("both RSI reasons fired for %+v", s)
					}
					if again := Score(s); !reflect.DeepEqual(again, res) {
						t.Fatalf("score not deterministic for %+v", s)
					}
				}
			}
		}
	}
}

func TestReasonLabels(t *testing.T) {
	want := map[string]string{
		ReasonMABreakout:    "20-day MA breakout (+30)",
		ReasonRSIOversold:   "RSI oversold buy zone (+30)",
		ReasonRSIOverbought: "RSI overbought zone (−10)",
		ReasonMACDGolden:    "MACD golden cross (+20)",
		ReasonVolumeUp:      "Volume increase vs. prior period (+20)",
	}
	for got, w := range want {
		if got != w {
			t.Errorf("label %q, want %q", got, w)
		}
	}
}
