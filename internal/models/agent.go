package models

import "encoding/json"

// Conventional message roles. Roles arriving from callers are forwarded as-is
// and are not checked against this set.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// AgentMessage represents a single conversation turn passed to the model.
type AgentMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AgentRequestPayload is the body of the weather generate endpoint. Fields
// stay raw so that a malformed messages list can fall back to prompt or city.
type AgentRequestPayload struct {
	Messages json.RawMessage `json:"messages,omitempty"`
	Prompt   json.RawMessage `json:"prompt,omitempty"`
	City     json.RawMessage `json:"city,omitempty"`
}

// GenerateResponse is the success envelope of the weather endpoint.
type GenerateResponse struct {
	Success bool   `json:"success"`
	Text    string `json:"text"`
}
