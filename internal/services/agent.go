package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"google.golang.org/api/iterator"

	"codereview-backend/internal/models"
	"codereview-backend/internal/observability"
)

// Agent is a hosted language model invoked with a role-tagged message list.
type Agent interface {
	Stream(ctx context.Context, messages []models.AgentMessage) (TextStream, error)
}

// TextStream yields response text in chunks. Next returns iterator.Done once
// the stream is exhausted.
type TextStream interface {
	Next() (string, error)
	Close() error
}

// Provider builds agents on top of one hosted model backend.
type Provider interface {
	Agent(def AgentDefinition) Agent
	Close() error
}

// AgentDefinition names an agent and the fixed instructions it runs with.
type AgentDefinition struct {
	Name         string
	Instructions string
}

// CollectText drains the stream and concatenates every chunk in arrival
// order. It returns the number of chunks read alongside the text.
func CollectText(stream TextStream) (string, int, error) {
	defer stream.Close()

	var text strings.Builder
	chunks := 0
	for {
		chunk, err := stream.Next()
		if errors.Is(err, iterator.Done) {
			return text.String(), chunks, nil
		}
		if err != nil {
			return text.String(), chunks, err
		}
		text.WriteString(chunk)
		chunks++
	}
}

// Invoker runs one agent and folds its stream into a single string.
type Invoker struct {
	name    string
	agent   Agent
	metrics *observability.Metrics
}

func NewInvoker(name string, agent Agent, metrics *observability.Metrics) *Invoker {
	return &Invoker{name: name, agent: agent, metrics: metrics}
}

// Name returns the agent name used for logs and metrics.
func (i *Invoker) Name() string {
	return i.name
}

// Invoke streams the agent response to completion. Any failure while opening
// or reading the stream is reported as an AgentFailure; the returned text is
// not trimmed.
func (i *Invoker) Invoke(ctx context.Context, messages []models.AgentMessage) (string, error) {
	start := time.Now()

	stream, err := i.agent.Stream(ctx, messages)
	if err != nil {
		i.metrics.RecordAgentRun(i.name, err, time.Since(start), 0)
		return "", agentFailure(err)
	}

	text, chunks, err := CollectText(stream)
	i.metrics.RecordAgentRun(i.name, err, time.Since(start), chunks)
	if err != nil {
		return "", agentFailure(err)
	}
	return text, nil
}
