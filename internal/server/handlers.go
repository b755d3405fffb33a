package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/alexiusacademia/gobearing/internal/catalog"
	"github.com/alexiusacademia/gobearing/internal/report"
	"github.com/alexiusacademia/gobearing/internal/shaft"
	"github.com/alexiusacademia/gobearing/internal/version"
)

// maxBodyBytes bounds request bodies; an input is eleven numbers
const maxBodyBytes = 64 << 10

// CalculateResponse is the body of a successful calculation
type CalculateResponse struct {
	Input     shaft.Input     `json:"input"`
	Result    shaft.Formatted `json:"result"`
	Stations  []shaft.Station `json:"stations"`
	RequestID string          `json:"request_id"`
}

// ReportRequest is an input plus the report title block
type ReportRequest struct {
	shaft.Input
	Meta report.Meta `json:"meta"`
}

// UnmarshalJSON reads the input fields and an optional "meta" object
func (req *ReportRequest) UnmarshalJSON(data []byte) error {
	in, extra, err := shaft.DecodeInput(data, "meta")
	if err != nil {
		return err
	}
	req.Input = in

	if raw, ok := extra["meta"]; ok {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req.Meta); err != nil {
			return fmt.Errorf("meta: %w", err)
		}
	}
	return nil
}

// CatalogResponse lists both selection tables
type CatalogResponse struct {
	Bearing1 catalog.Table `json:"bearing1"`
	Bearing2 catalog.Table `json:"bearing2"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version":    version.Version,
		"git_commit": version.GitCommit,
		"build_time": version.BuildTime,
	})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, CatalogResponse{Bearing1: catalog.Bearing1, Bearing2: catalog.Bearing2})
}

// handleCalculate handles POST /api/bearing/calculate
func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	requestID := RequestIDFromContext(r.Context())

	var in shaft.Input
	if !s.decodeInput(w, r, &in) {
		return
	}

	res := s.compute(in)

	s.logger.Info("bearing calculation completed",
		zap.String("request_id", requestID),
		zap.Float64("c1", res.C1),
		zap.Float64("c2", res.C2),
		zap.String("bearing1", res.Bearing1Designation),
		zap.String("bearing2", res.Bearing2Designation),
	)

	writeJSON(w, http.StatusOK, CalculateResponse{
		Input:     in,
		Result:    res.Format(),
		Stations:  shaft.Stations(in, res),
		RequestID: requestID,
	})
}

// handleReport handles POST /api/bearing/report and answers with a PDF
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	requestID := RequestIDFromContext(r.Context())

	var req ReportRequest
	if !s.decodeInput(w, r, &req) {
		return
	}
	if err := req.Input.Validate(); err != nil {
		s.reject(w, r, "validation", err)
		return
	}

	res := s.compute(req.Input)

	var buf bytes.Buffer
	if err := report.WritePDF(&buf, req.Meta, req.Input, res); err != nil {
		s.metrics.errors.WithLabelValues("report").Inc()
		s.logger.Error("report generation failed", zap.String("request_id", requestID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "report generation error", requestID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="bearing-report.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// decodeInput decodes the body into dst and validates a plain Input.
// It writes the error response and returns false on failure.
func (s *Server) decodeInput(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		s.reject(w, r, "decode", fmt.Errorf("invalid request body: %w", err))
		return false
	}

	if in, ok := dst.(*shaft.Input); ok {
		if err := in.Validate(); err != nil {
			s.reject(w, r, "validation", err)
			return false
		}
	}
	return true
}

func (s *Server) compute(in shaft.Input) shaft.Result {
	start := time.Now()
	res := shaft.Calculate(in)
	s.metrics.duration.Observe(time.Since(start).Seconds())
	s.metrics.calculations.WithLabelValues(res.Bearing1Designation, res.Bearing2Designation).Inc()
	return res
}

func (s *Server) reject(w http.ResponseWriter, r *http.Request, reason string, err error) {
	requestID := RequestIDFromContext(r.Context())
	s.metrics.errors.WithLabelValues(reason).Inc()
	s.logger.Warn("calculation request rejected",
		zap.String("reason", reason),
		zap.String("request_id", requestID),
		zap.Error(err),
	)

	resp := errorResponse{Error: err.Error(), RequestID: requestID}
	var verr *shaft.ValidationError
	if errors.As(err, &verr) {
		resp.Fields = verr.Fields
	}
	writeJSON(w, http.StatusBadRequest, resp)
}
