package services

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"google.golang.org/api/iterator"

	"codereview-backend/internal/models"
)

// OpenAIProvider hands out agents backed by an OpenAI-compatible
// chat-completions endpoint.
type OpenAIProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// NewOpenAIProvider constructs a provider. The HTTP client has no timeout;
// a stream runs until the upstream ends or fails.
func NewOpenAIProvider(baseURL, apiKey, model string) *OpenAIProvider {
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	return &OpenAIProvider{
		client:  &http.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
	}
}

func (p *OpenAIProvider) Close() error {
	p.client.CloseIdleConnections()
	return nil
}

// Agent returns an agent running the definition's instructions.
func (p *OpenAIProvider) Agent(def AgentDefinition) Agent {
	return &openAIAgent{provider: p, def: def}
}

type openAIAgent struct {
	provider *OpenAIProvider
	def      AgentDefinition
}

func (a *openAIAgent) Stream(ctx context.Context, messages []models.AgentMessage) (TextStream, error) {
	p := a.provider
	if p.model == "" {
		return nil, fmt.Errorf("model is required")
	}

	payload, err := json.Marshal(openAIChatRequest{
		Model:    p.model,
		Messages: toOpenAIMessages(a.def.Instructions, messages),
		Stream:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	if p.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	res, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}

	if res.StatusCode >= 300 {
		defer res.Body.Close()
		b, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("openai: status %d: %s", res.StatusCode, string(b))
	}

	scanner := bufio.NewScanner(res.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	return &sseStream{body: res.Body, scanner: scanner}, nil
}

// sseStream reads "data:" events from a chat-completions stream.
type sseStream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	done    bool
}

func (s *sseStream) Next() (string, error) {
	if s.done {
		return "", iterator.Done
	}

	for s.scanner.Scan() {
		line := strings.TrimSpace(s.scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "[DONE]" {
			s.done = true
			return "", iterator.Done
		}

		var chunk openAIStreamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			return "", fmt.Errorf("decode stream chunk: %w", err)
		}
		if chunk.Error != nil {
			return "", fmt.Errorf("openai: %s", chunk.Error.Message)
		}

		var text strings.Builder
		for _, c := range chunk.Choices {
			text.WriteString(c.Delta.Content)
		}
		return text.String(), nil
	}

	if err := s.scanner.Err(); err != nil {
		return "", fmt.Errorf("read stream: %w", err)
	}
	s.done = true
	return "", iterator.Done
}

func (s *sseStream) Close() error {
	return s.body.Close()
}

type openAIChatRequest struct {
	Model    string          `json:"model"`
	Messages []openAIMessage `json:"messages"`
	Stream   bool            `json:"stream"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIStreamChunk struct {
	Choices []struct {
		Index int `json:"index"`
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		FinishReason *string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// toOpenAIMessages prepends the agent instructions as a system turn.
func toOpenAIMessages(instructions string, msgs []models.AgentMessage) []openAIMessage {
	out := make([]openAIMessage, 0, len(msgs)+1)
	if s := strings.TrimSpace(instructions); s != "" {
		out = append(out, openAIMessage{Role: models.RoleSystem, Content: s})
	}
	for _, m := range msgs {
		out = append(out, openAIMessage{Role: m.Role, Content: m.Content})
	}
	return out
}
