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

const msgWeatherFailed = "天气助手暂时不可用，请稍后再试。"

type WeatherHandler struct {
	invoker *services.Invoker
	logger  *zap.Logger
}

func NewWeatherHandler(agent services.Agent, metrics *observability.Metrics, logger *zap.Logger) *WeatherHandler {
	return &WeatherHandler{
		invoker: services.NewInvoker(services.WeatherAgent.Name, agent, metrics),
		logger:  logger,
	}
}

func (h *WeatherHandler) Generate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp(services.MsgInvalidJSON))
		return
	}

	payload, err := services.DecodeAgentPayload(body)
	if err != nil {
		handleServiceError(w, r, h.logger, h.invoker.Name(), err, msgWeatherFailed)
		return
	}

	messages, err := services.NormalizeMessages(payload)
	if err != nil {
		handleServiceError(w, r, h.logger, h.invoker.Name(), err, msgWeatherFailed)
		return
	}

	text, err := h.invoker.Invoke(context.WithoutCancel(r.Context()), messages)
	if err != nil {
		handleServiceError(w, r, h.logger, h.invoker.Name(), err, msgWeatherFailed)
		return
	}

	writeJSON(w, http.StatusOK, models.GenerateResponse{
		Success: true,
		Text:    strings.TrimSpace(text),
	})
}
