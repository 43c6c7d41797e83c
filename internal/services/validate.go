package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"codereview-backend/internal/models"
)

type reviewPayload struct {
	Code      json.RawMessage `json:"code"`
	Filename  json.RawMessage `json:"filename"`
	Framework json.RawMessage `json:"framework"`
	Context   json.RawMessage `json:"context"`
}

// DecodeReviewRequest parses a review body. Optional fields that are not
// strings are dropped; a code field that is not a non-blank string is treated
// as missing.
func DecodeReviewRequest(body []byte) (models.ReviewRequest, error) {
	if !json.Valid(body) {
		return models.ReviewRequest{}, invalidJSON(fmt.Errorf("review body is not valid JSON"))
	}

	// Valid JSON that is not an object carries no fields.
	var p reviewPayload
	_ = json.Unmarshal(body, &p)

	code, ok := rawString(p.Code)
	if !ok || strings.TrimSpace(code) == "" {
		return models.ReviewRequest{}, &RequestError{Kind: KindMissingCode, Message: MsgMissingCode}
	}

	req := models.ReviewRequest{Code: code}
	req.Filename, _ = rawString(p.Filename)
	req.Framework, _ = rawString(p.Framework)
	req.Context, _ = rawString(p.Context)
	return req, nil
}

// DecodeAgentPayload parses a generate body without interpreting its fields.
func DecodeAgentPayload(body []byte) (models.AgentRequestPayload, error) {
	if !json.Valid(body) {
		return models.AgentRequestPayload{}, invalidJSON(fmt.Errorf("generate body is not valid JSON"))
	}

	var p models.AgentRequestPayload
	_ = json.Unmarshal(body, &p)
	return p, nil
}

// NormalizeMessages picks the conversation to send to the agent: a well-formed
// messages list wins, then a non-blank prompt, then a city.
//
// Roles are forwarded without checking them against user/assistant/system.
func NormalizeMessages(p models.AgentRequestPayload) ([]models.AgentMessage, error) {
	if msgs, ok := decodeMessages(p.Messages); ok {
		return msgs, nil
	}

	if prompt, ok := rawString(p.Prompt); ok && strings.TrimSpace(prompt) != "" {
		return []models.AgentMessage{{Role: models.RoleUser, Content: strings.TrimSpace(prompt)}}, nil
	}

	if city, ok := cityName(p.City); ok {
		return []models.AgentMessage{{Role: models.RoleUser, Content: CityPrompt(city)}}, nil
	}

	return nil, &RequestError{Kind: KindMissingQuery, Message: MsgMissingQuery}
}

// CityPrompt is the message synthesized when only a city is supplied.
func CityPrompt(city string) string {
	return fmt.Sprintf("请根据 %s 的天气情况提供详细的活动建议。", city)
}

func decodeMessages(raw json.RawMessage) ([]models.AgentMessage, bool) {
	if isAbsent(raw) {
		return nil, false
	}

	var items []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || len(items) == 0 {
		return nil, false
	}

	msgs := make([]models.AgentMessage, 0, len(items))
	for _, item := range items {
		role, ok := rawString(item["role"])
		if !ok {
			return nil, false
		}
		content, ok := rawString(item["content"])
		if !ok {
			return nil, false
		}
		msgs = append(msgs, models.AgentMessage{Role: role, Content: content})
	}
	return msgs, true
}

// cityName accepts a non-blank string or a bare number.
func cityName(raw json.RawMessage) (string, bool) {
	if isAbsent(raw) {
		return "", false
	}
	if s, ok := rawString(raw); ok {
		s = strings.TrimSpace(s)
		return s, s != ""
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), true
	}
	return "", false
}

func rawString(raw json.RawMessage) (string, bool) {
	if isAbsent(raw) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
