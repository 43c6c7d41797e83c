package services

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/require"

	"codereview-backend/internal/models"
)

func TestToGeminiContents(t *testing.T) {
	system, history, last, err := toGeminiContents("instructions", []models.AgentMessage{
		{Role: models.RoleSystem, Content: "use celsius"},
		{Role: models.RoleUser, Content: "济南天气"},
		{Role: models.RoleAssistant, Content: "晴"},
		{Role: "friend", Content: "那明天呢？"},
	})
	require.NoError(t, err)

	require.Equal(t, "instructions\n\nuse celsius", system)
	require.Len(t, history, 2)
	require.Equal(t, "user", history[0].Role)
	require.Equal(t, "model", history[1].Role)
	require.Equal(t, "user", last.Role)
	require.Equal(t, []genai.Part{genai.Text("那明天呢？")}, last.Parts)
}

func TestToGeminiContents_RequiresTurn(t *testing.T) {
	_, _, _, err := toGeminiContents("", []models.AgentMessage{{Role: models.RoleSystem, Content: "only system"}})
	require.Error(t, err)
}

func TestExtractText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("foo"), genai.Blob{MIMEType: "image/png"}, genai.Text("bar")}}},
			{Content: nil},
		},
	}
	require.Equal(t, "foobar", extractText(resp))
}
