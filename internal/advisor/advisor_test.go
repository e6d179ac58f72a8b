package advisor

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockAdvisor/internal/model"
	"StockAdvisor/internal/strategy"
)

func fixedAdvisor() *Advisor {
	a := New()
	a.now = func() time.Time { return time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC) }
	return a
}

func TestAnalyze_DefaultScenario(t *testing.T) {
	res, err := fixedAdvisor().Analyze(DefaultRequest())
	require.NoError(t, err)

	assert.Equal(t, "IONQ", res.Ticker)
	assert.Equal(t, 100, res.Score.Probability)
	assert.Equal(t, []string{
		strategy.ReasonMABreakout,
		strategy.ReasonRSIOversold,
		strategy.ReasonMACDGolden,
		strategy.ReasonVolumeUp,
	}, res.Score.Reasons)
	assert.True(t, res.ProfitRate.Equal(decimal.NewFromInt(10)), "profit rate %s", res.ProfitRate)
	assert.Equal(t, model.ActionHold, res.Decision.Code)
	assert.Equal(t, "strong hold", res.Decision.Label)
	assert.Equal(t, 2026, res.Date.Year())
}

func TestAnalyze_RejectsNonPositivePurchase(t *testing.T) {
	for _, p := range []string{"0", "-3.5"} {
		req := DefaultRequest()
		req.PurchasePrice = decimal.RequireFromString(p)
		_, err := fixedAdvisor().Analyze(req)
		require.Error(t, err, "purchase %s", p)
		assert.True(t, errors.Is(err, ErrInvalidInput))
		assert.Contains(t, err.Error(), "purchase_price")
	}
}

func TestAnalyze_RejectsMissingTicker(t *testing.T) {
	req := DefaultRequest()
	req.Ticker = "   "
	_, err := fixedAdvisor().Analyze(req)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "ticker")
}

func TestAnalyze_ToleratesOddIndicators(t *testing.T) {
	req := DefaultRequest()
	req.RSI = 140
	req.Volume = -10
	req.MA20 = 0
	res, err := fixedAdvisor().Analyze(req)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Score.Probability, 0)
	assert.LessOrEqual(t, res.Score.Probability, 100)
	assert.Contains(t, res.Score.Reasons, strategy.ReasonRSIOverbought)
}

func TestAnalyze_NormalizesTicker(t *testing.T) {
	req := DefaultRequest()
	req.Ticker = " aapl "
	res, err := fixedAdvisor().Analyze(req)
	require.NoError(t, err)
	assert.Equal(t, "AAPL", res.Ticker)
}

func TestRequest_DecodesJSONNumbersAndStrings(t *testing.T) {
	var req Request
	err := json.Unmarshal([]byte(`{"ticker":"X","purchase_price":"100","current_price":75,"rsi":20}`), &req)
	require.NoError(t, err)
	res, err := fixedAdvisor().Analyze(req)
	require.NoError(t, err)
	assert.Equal(t, model.ActionCut, res.Decision.Code)
	assert.Equal(t, "full stop-loss", res.Decision.Label)
}
