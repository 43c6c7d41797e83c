package services

import (
	"context"
	"strings"
	"sync"

	"google.golang.org/api/iterator"

	"codereview-backend/internal/models"
)

// FakeAgent replays canned chunks without calling a model.
type FakeAgent struct {
	Chunks []string
	// OpenErr is returned by Stream; StreamErr by Next after all chunks.
	OpenErr   error
	StreamErr error

	mu    sync.Mutex
	calls [][]models.AgentMessage
}

func (f *FakeAgent) Stream(ctx context.Context, messages []models.AgentMessage) (TextStream, error) {
	f.mu.Lock()
	f.calls = append(f.calls, append([]models.AgentMessage(nil), messages...))
	f.mu.Unlock()

	if f.OpenErr != nil {
		return nil, f.OpenErr
	}
	return &sliceStream{chunks: f.Chunks, err: f.StreamErr}, nil
}

// Calls returns the message lists the agent has been invoked with.
func (f *FakeAgent) Calls() [][]models.AgentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]models.AgentMessage(nil), f.calls...)
}

type sliceStream struct {
	chunks []string
	err    error
	pos    int
}

func (s *sliceStream) Next() (string, error) {
	if s.pos < len(s.chunks) {
		chunk := s.chunks[s.pos]
		s.pos++
		return chunk, nil
	}
	if s.err != nil {
		return "", s.err
	}
	return "", iterator.Done
}

func (s *sliceStream) Close() error { return nil }

// FakeProvider serves agents that answer with a fixed reply, for running the
// server without model credentials.
type FakeProvider struct {
	Reply string
}

func (p FakeProvider) Agent(def AgentDefinition) Agent {
	reply := p.Reply
	if reply == "" {
		reply = "fake response from " + def.Name
	}
	return &FakeAgent{Chunks: strings.SplitAfter(reply, " ")}
}

func (FakeProvider) Close() error { return nil }
