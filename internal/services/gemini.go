package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"codereview-backend/internal/models"
)

// GeminiProvider hands out agents backed by one shared Gemini client.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiProvider(ctx context.Context, apiKey, model string, opts ...option.ClientOption) (*GeminiProvider, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{client: client, model: model}, nil
}

func (p *GeminiProvider) Close() error {
	return p.client.Close()
}

// Agent returns an agent running the definition's instructions.
func (p *GeminiProvider) Agent(def AgentDefinition) Agent {
	return &geminiAgent{client: p.client, model: p.model, name: def.Name, instructions: def.Instructions}
}

type geminiAgent struct {
	client       *genai.Client
	model        string
	name         string
	instructions string
}

// Stream opens a chat session seeded with every turn but the last, then sends
// the last turn in streaming mode.
func (a *geminiAgent) Stream(ctx context.Context, messages []models.AgentMessage) (TextStream, error) {
	system, history, last, err := toGeminiContents(a.instructions, messages)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.name, err)
	}

	model := a.client.GenerativeModel(a.model)
	model.SetTemperature(0.3)
	model.SetTopP(0.95)
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}

	cs := model.StartChat()
	cs.History = history
	return &geminiStream{it: cs.SendMessageStream(ctx, last.Parts...)}, nil
}

type geminiStream struct {
	it *genai.GenerateContentResponseIterator
}

// Next passes iterator.Done through unchanged.
func (s *geminiStream) Next() (string, error) {
	resp, err := s.it.Next()
	if err != nil {
		return "", err
	}
	return extractText(resp), nil
}

func (s *geminiStream) Close() error { return nil }

// toGeminiContents folds system turns into the system instruction and maps
// assistant turns to the "model" role. Any other role is sent as "user".
func toGeminiContents(instructions string, messages []models.AgentMessage) (string, []*genai.Content, *genai.Content, error) {
	systemParts := []string{}
	if s := strings.TrimSpace(instructions); s != "" {
		systemParts = append(systemParts, s)
	}

	var turns []*genai.Content
	for _, m := range messages {
		switch m.Role {
		case models.RoleSystem:
			systemParts = append(systemParts, m.Content)
		case models.RoleAssistant:
			turns = append(turns, &genai.Content{Role: "model", Parts: []genai.Part{genai.Text(m.Content)}})
		default:
			turns = append(turns, &genai.Content{Role: "user", Parts: []genai.Part{genai.Text(m.Content)}})
		}
	}

	if len(turns) == 0 {
		return "", nil, nil, fmt.Errorf("no conversation turns to send")
	}

	system := strings.Join(systemParts, "\n\n")
	return system, turns[:len(turns)-1], turns[len(turns)-1], nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
