package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockAdvisor/internal/advisor"
	"StockAdvisor/internal/config"
	"StockAdvisor/internal/model"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{Author: "kim"}
	cfg.Server.Addr = ":0"
	cfg.Server.RateLimit = 100
	cfg.Server.Burst = 100
	cfg.Report.GaugeWidth = 20
	s := New(cfg, advisor.New())
	s.now = func() time.Time { return time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC) }
	return s
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

const ionqRequest = `{
	"ticker": "ionq",
	"purchase_price": "15.00",
	"current_price": "16.50",
	"moving_average_20": 15.8,
	"rsi": 45,
	"macd": 0.5,
	"macd_signal": 0.3,
	"volume": 1500000,
	"previous_volume": 1200000
}`

func TestHealth(t *testing.T) {
	rec := do(t, testServer(t), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestAnalyze(t *testing.T) {
	rec := do(t, testServer(t), http.MethodPost, "/api/v1/analyze", ionqRequest)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "IONQ", resp.Analysis.Ticker)
	assert.Equal(t, 100, resp.Analysis.Score.Probability)
	assert.Len(t, resp.Analysis.Score.Reasons, 4)
	assert.Equal(t, model.ActionHold, resp.Analysis.Decision.Code)
	assert.Equal(t, "strong hold", resp.Analysis.Decision.Label)
	assert.Contains(t, resp.Result, "▲ 10.00% in profit")
	assert.Contains(t, resp.Report, "Ticker: IONQ")
}

func TestAnalyze_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero purchase price", `{"ticker":"IONQ","purchase_price":0,"current_price":10}`},
		{"missing ticker", `{"purchase_price":10,"current_price":10}`},
		{"malformed json", `{"ticker":`},
		{"unknown field", `{"ticker":"IONQ","purchase_price":10,"price":3}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, testServer(t), http.MethodPost, "/api/v1/analyze", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Contains(t, resp.Error, "invalid input")
		})
	}
}

func TestWrongMethod(t *testing.T) {
	for _, target := range []string{"/api/v1/analyze", "/api/v1/thesis"} {
		rec := do(t, testServer(t), http.MethodGet, target, "")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, target)
		assert.JSONEq(t, `{"error":"method not allowed"}`, rec.Body.String(), target)
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"), target)
	}

	rec := do(t, testServer(t), http.MethodPost, "/healthz", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

const thesisRequest = `{
	"ticker": "IONQ",
	"price": 16.5,
	"period": "long",
	"ideas": ["quantum computing leader"],
	"risks": ["cash burn"],
	"risk_response": "watch",
	"verdict": "buy"
}`

func TestThesis_Markdown(t *testing.T) {
	rec := do(t, testServer(t), http.MethodPost, "/api/v1/thesis", thesisRequest)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, "text/markdown; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Investment_Thesis_IONQ_2026-10-14.md")
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "# Investment Thesis"))
	assert.Contains(t, body, "**Author:** kim")
	assert.Contains(t, body, "- quantum computing leader")
	assert.Contains(t, body, "Wait and watch")
}

func TestThesis_HTML(t *testing.T) {
	rec := do(t, testServer(t), http.MethodPost, "/api/v1/thesis?format=html", thesisRequest)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<li>quantum computing leader</li>")
}

func TestThesis_PDF(t *testing.T) {
	rec := do(t, testServer(t), http.MethodPost, "/api/v1/thesis?format=pdf", thesisRequest)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-"))
}

func TestThesis_Errors(t *testing.T) {
	s := testServer(t)

	rec := do(t, s, http.MethodPost, "/api/v1/thesis?format=docx", thesisRequest)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/v1/thesis", `{"ticker":"IONQ","verdict":"maybe"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "verdict")
}

func TestNotFound(t *testing.T) {
	for _, target := range []string{"/nope", "/api/v1/nope"} {
		rec := do(t, testServer(t), http.MethodGet, target, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
		assert.JSONEq(t, `{"error":"not found"}`, rec.Body.String(), target)
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"), target)
	}
}

func TestMetrics(t *testing.T) {
	s := testServer(t)
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/api/v1/analyze", ionqRequest).Code)
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/api/v1/thesis?format=html", thesisRequest).Code)

	rec := do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `advisor_analyses_total{action_code="HOLD"} 1`)
	assert.Contains(t, body, `advisor_theses_total{format="html"} 1`)
	assert.Contains(t, body, `advisor_http_requests_total{code="200",route="/api/v1/analyze"} 1`)
	assert.Contains(t, body, "advisor_rise_probability_count 1")
}

func TestRateLimit(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Addr = ":0"
	cfg.Server.RateLimit = 0.001
	cfg.Server.Burst = 1
	cfg.Report.GaugeWidth = 20
	s := New(cfg, advisor.New())

	assert.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/api/v1/analyze", ionqRequest).Code)
	rec := do(t, s, http.MethodPost, "/api/v1/analyze", ionqRequest)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, rec.Body.String())

	// health is not limited
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/healthz", "").Code)
}
