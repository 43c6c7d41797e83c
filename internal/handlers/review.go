package handlers

import (
	"context"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"codereview-backend/internal/models"
	"codereview-backend/internal/observability"
	"codereview-backend/internal/services"
)

const msgReviewFailed = "代码评审失败，请稍后再试。"

type ReviewHandler struct {
	invoker *services.Invoker
	logger  *zap.Logger
}

func NewReviewHandler(agent services.Agent, metrics *observability.Metrics, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		invoker: services.NewInvoker(services.ReviewAgent.Name, agent, metrics),
		logger:  logger,
	}
}

func (h *ReviewHandler) Review(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp(services.MsgInvalidJSON))
		return
	}

	req, err := services.DecodeReviewRequest(body)
	if err != nil {
		handleServiceError(w, r, h.logger, h.invoker.Name(), err, msgReviewFailed)
		return
	}

	// The stream is read to the end even if the client goes away.
	report, err := h.invoker.Invoke(context.WithoutCancel(r.Context()), services.ReviewMessages(req))
	if err != nil {
		handleServiceError(w, r, h.logger, h.invoker.Name(), err, msgReviewFailed)
		return
	}

	writeJSON(w, http.StatusOK, models.ReviewResponse{
		Success: true,
		Report:  strings.TrimSpace(report),
	})
}
