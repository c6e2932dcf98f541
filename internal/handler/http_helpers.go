package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"contract-analyzer/internal/domain"
	apperrors "contract-analyzer/pkg/errors"
)

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeServiceError maps domain sentinels and AppError values onto
// HTTP status codes. Anything unrecognized is a 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrAnalysisNotFound):
		writeError(w, http.StatusNotFound, "Contract analysis not found")
	case errors.Is(err, domain.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "Chat session not found")
	case errors.Is(err, domain.ErrUnsupportedFile):
		writeError(w, http.StatusBadRequest, "Unsupported file type")
	case errors.Is(err, domain.ErrEmptyDocument):
		writeError(w, http.StatusBadRequest, "Could not extract text from document")
	case errors.Is(err, domain.ErrExternalService):
		writeError(w, http.StatusServiceUnavailable, "Analysis service is temporarily unavailable")
	default:
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			writeError(w, apperrors.GetStatusCode(appErr), appErr.Message)
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
