package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sentratech/roi-engine/internal/metrics"
	"github.com/sentratech/roi-engine/internal/report"
	"github.com/sentratech/roi-engine/internal/roi"
)

type countryView struct {
	Name string `json:"name"`
	roi.CountryRate
}

type countriesResponse struct {
	Countries      []countryView `json:"countries"`
	AICostPerAgent float64       `json:"ai_cost_per_agent"`
}

type agentsRequest struct {
	Country string  `json:"country"`
	Agents  float64 `json:"agents"`
}

type reportCreatedResponse struct {
	ID     string     `json:"id"`
	Result roi.Result `json:"result"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *server) handleCountries(w http.ResponseWriter, r *http.Request) {
	rates := s.engine.Rates()
	resp := countriesResponse{
		Countries:      make([]countryView, 0, rates.Len()),
		AICostPerAgent: rates.AICostPerAgent(),
	}
	for _, name := range rates.Countries() {
		rate, _ := rates.Lookup(name)
		resp.Countries = append(resp.Countries, countryView{Name: name, CountryRate: rate})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	req, err := decodeROIRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.calculate(r, req)
	if err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *server) handleAgents(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAgentsRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cmp, err := s.engine.CompareAgents(req.Country, req.Agents)
	if err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, cmp)
}

func (s *server) handleReportCreate(w http.ResponseWriter, r *http.Request) {
	req, err := decodeSaveRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.calculate(r, req.Input)
	if err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}

	id, err := s.insertReport(r.Context(), req, result)
	if err != nil {
		s.requestLog(r).Error("failed to save report", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save report")
		return
	}
	metrics.ReportsSavedTotal.Inc()

	writeJSON(w, http.StatusCreated, reportCreatedResponse{ID: id, Result: result})
}

func (s *server) handleReportDetail(w http.ResponseWriter, r *http.Request) {
	detail, ok := s.loadReport(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *server) handleReportText(w http.ResponseWriter, r *http.Request) {
	detail, ok := s.loadReport(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := report.WriteText(w, detail.meta(), detail.Result); err != nil {
		s.requestLog(r).Error("failed to write text report", zap.Error(err))
	}
}

func (s *server) handleReportXLSX(w http.ResponseWriter, r *http.Request) {
	detail, ok := s.loadReport(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="roi-`+detail.ID+`.xlsx"`)
	if err := report.WriteXLSX(w, detail.meta(), detail.Result); err != nil {
		s.requestLog(r).Error("failed to write xlsx report", zap.Error(err))
	}
}

func (s *server) handleAdminReports(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	reports, err := s.listReports(r.Context(), query)
	if err != nil {
		s.requestLog(r).Error("failed to list reports", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load reports")
		return
	}

	writeJSON(w, http.StatusOK, reports)
}

func (s *server) loadReport(w http.ResponseWriter, r *http.Request) (reportDetail, bool) {
	id := chi.URLParam(r, "id")
	detail, err := s.getReport(r.Context(), id)
	if errors.Is(err, errReportNotFound) {
		writeError(w, http.StatusNotFound, "report not found")
		return reportDetail{}, false
	}
	if err != nil {
		s.requestLog(r).Error("failed to load report", zap.String("report_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load report")
		return reportDetail{}, false
	}
	return detail, true
}

// calculate runs the engine and records metrics; the engine itself stays free of I/O.
func (s *server) calculate(r *http.Request, req roi.Request) (roi.Result, error) {
	start := time.Now()
	result, err := s.engine.CalculateRequest(req)
	metrics.ObserveCalculation(result, err, time.Since(start))

	log := s.requestLog(r).With(zap.String("country", req.Country), zap.String("mode", string(req.Mode)))
	if err != nil {
		log.Info("calculation rejected", zap.String("kind", roi.ErrorKind(err)), zap.Error(err))
		return roi.Result{}, err
	}
	log.Debug("calculation done", zap.Float64("monthly_savings", result.MonthlySavings), zap.Float64("roi_percent", result.ROIPercent))
	return result, nil
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, roi.ErrInvalidCountry),
		errors.Is(err, roi.ErrInvalidMode),
		errors.Is(err, roi.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON encodes before writing the header so an encoding failure still yields a 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		buf.Reset()
		_ = json.NewEncoder(&buf).Encode(errorResponse{Error: "failed to encode response"})
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
