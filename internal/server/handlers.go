package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"StockAdvisor/internal/advisor"
	"StockAdvisor/internal/model"
	"StockAdvisor/internal/report"
	"StockAdvisor/internal/thesis"
)

// AnalyzeResponse is returned by POST /api/v1/analyze.
type AnalyzeResponse struct {
	Analysis *model.Analysis `json:"analysis"`
	Result   string          `json:"result"`
	Report   string          `json:"report"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[ERROR] encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeFailure maps invalid input to 400 and anything else to 500.
func writeFailure(w http.ResponseWriter, err error) {
	if errors.Is(err, advisor.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	log.Printf("[ERROR] %v", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: request body: %v", advisor.ErrInvalidInput, err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req advisor.Request
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, err)
		return
	}

	a, err := s.advisor.Analyze(req)
	if err != nil {
		writeFailure(w, err)
		return
	}
	s.metrics.observeAnalysis(a)

	writeJSON(w, http.StatusOK, AnalyzeResponse{
		Analysis: a,
		Result:   report.FormatResult(a, s.cfg.Report.GaugeWidth),
		Report:   report.FormatAnalysisReport(a),
	})
}

func (s *Server) handleThesis(w http.ResponseWriter, r *http.Request) {
	in := thesis.NewInput(s.cfg.Author, s.now())
	if err := decodeBody(r, &in); err != nil {
		writeFailure(w, err)
		return
	}
	if err := thesis.Validate(in); err != nil {
		writeFailure(w, err)
		return
	}

	md := thesis.Render(in)
	name := strings.TrimSuffix(thesis.FileName(in), ".md")
	title := "Investment Thesis " + in.Ticker

	var (
		body        []byte
		contentType string
		ext         string
	)
	switch format := r.URL.Query().Get("format"); format {
	case "", thesis.FormatMarkdown:
		body, contentType, ext = []byte(md), "text/markdown; charset=utf-8", thesis.FormatMarkdown
	case thesis.FormatHTML:
		page, err := thesis.RenderHTML(md, title)
		if err != nil {
			writeFailure(w, err)
			return
		}
		body, contentType, ext = []byte(page), "text/html; charset=utf-8", thesis.FormatHTML
	case thesis.FormatPDF:
		doc, err := thesis.RenderPDF(md, title)
		if err != nil {
			writeFailure(w, err)
			return
		}
		body, contentType, ext = doc, "application/pdf", thesis.FormatPDF
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown format %q", format))
		return
	}

	s.metrics.Theses.WithLabelValues(ext).Inc()
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+"."+ext))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Printf("[ERROR] write thesis: %v", err)
	}
}
