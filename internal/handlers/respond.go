package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"codereview-backend/internal/middleware"
	"codereview-backend/internal/models"
	"codereview-backend/internal/services"
)

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(text))
}

func errorResp(message string) models.ErrorResponse {
	return models.ErrorResponse{Error: message}
}

// handleServiceError writes the envelope for err. Agent failures are logged
// with their cause and answered with failureMsg only.
func handleServiceError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, agent string, err error, failureMsg string) {
	var reqErr *services.RequestError
	if errors.As(err, &reqErr) && reqErr.Kind != services.KindAgentFailure {
		writeJSON(w, reqErr.Status(), errorResp(reqErr.Message))
		return
	}

	logger.Error("agent failed",
		zap.String("agent", agent),
		zap.String("request_id", middleware.GetRequestID(r.Context())),
		zap.Error(err),
	)
	writeJSON(w, http.StatusInternalServerError, errorResp(failureMsg))
}
