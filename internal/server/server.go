package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"StockAdvisor/internal/advisor"
	"StockAdvisor/internal/config"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

// Server is the stateless JSON API in front of the advisor.
type Server struct {
	router  *mux.Router
	srv     *http.Server
	cfg     *config.Config
	advisor *advisor.Advisor
	metrics *Metrics
	limiter *clientLimiter
	now     func() time.Time
}

// New creates a server listening on cfg.Server.Addr.
func New(cfg *config.Config, adv *advisor.Advisor) *Server {
	s := &Server{
		router:  mux.NewRouter(),
		cfg:     cfg,
		advisor: adv,
		metrics: NewMetrics(),
		limiter: newClientLimiter(cfg.Server.RateLimit, cfg.Server.Burst),
		now:     time.Now,
	}
	s.routes()
	s.srv = &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) routes() {
	s.router.Use(requestID, logRequests, s.metrics.instrument)

	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api/v1").Subrouter()
	api.Use(s.limiter.middleware)
	api.HandleFunc("/analyze", s.handleAnalyze).Methods(http.MethodPost)
	api.HandleFunc("/thesis", s.handleThesis).Methods(http.MethodPost)

	// Use middleware only wraps matched routes.
	notFound := fallback(http.StatusNotFound, "not found")
	notAllowed := fallback(http.StatusMethodNotAllowed, "method not allowed")
	for _, r := range []*mux.Router{s.router, api} {
		r.NotFoundHandler = notFound
		r.MethodNotAllowedHandler = notAllowed
	}
}

func fallback(status int, msg string) http.Handler {
	return requestID(logRequests(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, status, msg)
	})))
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler { return s.router }

// Start blocks serving requests until Shutdown is called.
func (s *Server) Start() error {
	log.Printf("[INFO] listening on %s", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("[INFO] shutting down http server...")
	return s.srv.Shutdown(ctx)
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()[:8]
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("[INFO] %v %s %s %d %v", r.Context().Value(requestIDKey), r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
