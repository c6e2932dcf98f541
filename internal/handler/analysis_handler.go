// Package handler provides HTTP handlers for the API.
package handler

import (
	"fmt"
	"io"
	"net/http"

	"contract-analyzer/internal/domain"
	apperrors "contract-analyzer/pkg/errors"

	"github.com/gorilla/mux"
)

// AnalysisHandler handles contract analysis HTTP requests
type AnalysisHandler struct {
	analysisService domain.AnalysisService
	reportRenderer  domain.ReportRenderer
	logger          domain.Logger
	maxFileSize     int64
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysisService domain.AnalysisService, reportRenderer domain.ReportRenderer, logger domain.Logger, maxFileSize int64) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		reportRenderer:  reportRenderer,
		logger:          logger,
		maxFileSize:     maxFileSize,
	}
}

// AnalyzeContract accepts a multipart upload and runs the full
// analysis pipeline on it.
func (h *AnalysisHandler) AnalyzeContract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeServiceError(w, apperrors.NewValidationError("File is required"))
		return
	}
	defer file.Close()

	if header.Size > h.maxFileSize {
		writeServiceError(w, apperrors.NewValidationError(
			fmt.Sprintf("File too large. Maximum size is %dMB.", h.maxFileSize/(1024*1024))))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeServiceError(w, apperrors.NewValidationError("Failed to read uploaded file"))
		return
	}
	if len(data) == 0 {
		writeServiceError(w, apperrors.NewValidationError("Uploaded file is empty"))
		return
	}

	analysis, err := h.analysisService.Analyze(r.Context(), data, header.Filename)
	if err != nil {
		h.logger.Error("Contract analysis failed", err, "filename", header.Filename)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, analysis)
}

// GetAnalysis returns a stored analysis by id.
func (h *AnalysisHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		writeServiceError(w, apperrors.NewValidationError("Contract ID is required"))
		return
	}

	analysis, err := h.analysisService.GetAnalysis(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, analysis)
}

// DownloadReport renders the stored analysis as a PDF attachment.
func (h *AnalysisHandler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		writeServiceError(w, apperrors.NewValidationError("Contract ID is required"))
		return
	}

	analysis, err := h.analysisService.GetAnalysis(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	report, err := h.reportRenderer.Render(analysis)
	if err != nil {
		h.logger.Error("Report generation failed", err, "id", id)
		writeServiceError(w, err)
		return
	}

	shortID := id
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=Contract_Report_%s.pdf", shortID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(report)
}
