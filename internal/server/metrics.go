package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"StockAdvisor/internal/model"
)

// Metrics holds the Prometheus collectors of one server.
type Metrics struct {
	registry *prometheus.Registry

	Requests    *prometheus.CounterVec
	Duration    *prometheus.HistogramVec
	Analyses    *prometheus.CounterVec
	Probability prometheus.Histogram
	Theses      *prometheus.CounterVec
}

// NewMetrics registers the advisor collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "advisor_http_requests_total",
				Help: "HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "advisor_http_request_duration_seconds",
				Help:    "HTTP request latency by route",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"route"},
		),
		Analyses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "advisor_analyses_total",
				Help: "Completed analyses by recommended action",
			},
			[]string{"action_code"},
		),
		Probability: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "advisor_rise_probability",
				Help:    "Distribution of scored rise probabilities",
				Buckets: prometheus.LinearBuckets(0, 10, 11),
			},
		),
		Theses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "advisor_theses_total",
				Help: "Rendered thesis documents by format",
			},
			[]string{"format"},
		),
	}
	m.registry.MustRegister(m.Requests, m.Duration, m.Analyses, m.Probability, m.Theses)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observeAnalysis(a *model.Analysis) {
	m.Analyses.WithLabelValues(string(a.Decision.Code)).Inc()
	m.Probability.Observe(float64(a.Score.Probability))
}

// instrument records count and latency per matched route template.
func (m *Metrics) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		m.Requests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		m.Duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
