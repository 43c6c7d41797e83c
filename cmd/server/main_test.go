package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"codereview-backend/internal/config"
	"codereview-backend/internal/observability"
	"codereview-backend/internal/services"
)

func TestVersionFlag(t *testing.T) {
	cmd := newRootCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--version"})

	require.NoError(t, cmd.Execute())
	require.Contains(t, buf.String(), version)
}

func TestRejectsUnknownVariant(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--agent", "chat", "--provider", "fake"})

	err := cmd.Execute()
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown agent variant")
}

func TestApplyFlagsOverridesEnv(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.Flags().Parse([]string{"--provider", "openai"}))

	cfg := &config.Config{AgentVariant: config.VariantAll, AgentProvider: config.ProviderGemini}
	applyFlags(cmd, cfg, "", "openai")

	require.Equal(t, config.VariantAll, cfg.AgentVariant)
	require.Equal(t, config.ProviderOpenAI, cfg.AgentProvider)
}

func TestNewProvider(t *testing.T) {
	p, err := newProvider(context.Background(), &config.Config{AgentProvider: config.ProviderFake})
	require.NoError(t, err)
	require.IsType(t, services.FakeProvider{}, p)

	p, err = newProvider(context.Background(), &config.Config{AgentProvider: config.ProviderOpenAI, OpenAIModel: "gpt-4o-mini"})
	require.NoError(t, err)
	require.IsType(t, &services.OpenAIProvider{}, p)

	_, err = newProvider(context.Background(), &config.Config{AgentProvider: "ollama"})
	require.Error(t, err)
}

func TestNewHandlersFollowsVariant(t *testing.T) {
	logger := zap.NewNop()
	metrics := observability.NewMetrics()

	rh, wh := newHandlers(&config.Config{AgentVariant: config.VariantWeather}, services.FakeProvider{}, metrics, logger)
	require.Nil(t, rh)
	require.NotNil(t, wh)

	rh, wh = newHandlers(&config.Config{AgentVariant: config.VariantAll}, services.FakeProvider{}, metrics, logger)
	require.NotNil(t, rh)
	require.NotNil(t, wh)
}
