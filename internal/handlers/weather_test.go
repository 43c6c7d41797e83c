package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"codereview-backend/internal/models"
	"codereview-backend/internal/services"
)

func postGenerate(t *testing.T, agent services.Agent, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewWeatherHandler(agent, nil, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/agents/weatherAgent/generate", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.Generate(rr, req)
	return rr
}

func TestWeatherHandler_CityOnly(t *testing.T) {
	agent := &services.FakeAgent{Chunks: []string{"a", "b", "c"}}

	rr := postGenerate(t, agent, `{"city":"上海"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp models.GenerateResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.True(t, resp.Success)
	require.Equal(t, "abc", resp.Text)

	require.Equal(t, [][]models.AgentMessage{{
		{Role: models.RoleUser, Content: "请根据 上海 的天气情况提供详细的活动建议。"},
	}}, agent.Calls())
}

func TestWeatherHandler_ForwardsMessages(t *testing.T) {
	agent := &services.FakeAgent{Chunks: []string{" 晴转多云 "}}

	rr := postGenerate(t, agent, `{"messages":[{"role":"user","content":"济南？"},{"role":"assistant","content":"晴"},{"role":"user","content":"明天？"}]}`)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "晴转多云", decodeBody(t, rr)["text"])
	require.Len(t, agent.Calls()[0], 3)
}

func TestWeatherHandler_RejectsWithoutCallingAgent(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"malformed json", `{`, services.MsgInvalidJSON},
		{"empty object", `{}`, services.MsgMissingQuery},
		{"blank prompt only", `{"prompt":"  "}`, services.MsgMissingQuery},
		{"empty messages only", `{"messages":[]}`, services.MsgMissingQuery},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			agent := &services.FakeAgent{}

			rr := postGenerate(t, agent, tc.body)

			require.Equal(t, http.StatusBadRequest, rr.Code)
			require.Equal(t, map[string]interface{}{"error": tc.message}, decodeBody(t, rr))
			require.Empty(t, agent.Calls())
		})
	}
}

func TestWeatherHandler_AgentFailure(t *testing.T) {
	agent := &services.FakeAgent{OpenErr: errors.New("model overloaded: trace id 42")}

	rr := postGenerate(t, agent, `{"prompt":"今天热吗"}`)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.Equal(t, map[string]interface{}{"error": msgWeatherFailed}, decodeBody(t, rr))
}

func TestHealthAndNotFound(t *testing.T) {
	rr := httptest.NewRecorder()
	Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "ok", rr.Body.String())
	require.Equal(t, "text/plain; charset=utf-8", rr.Header().Get("Content-Type"))

	rr = httptest.NewRecorder()
	NotFound(rr, httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, "Not Found", rr.Body.String())
}
